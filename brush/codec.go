package brush

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/milk9111/mapedit/tile"
)

const textHeader = "mapedit-brush"

// MarshalText encodes the brush as a header line followed by one line per row
// of space separated index:flags cells.
func (b *Brush) MarshalText() ([]byte, error) {
	if b.IsEmpty() {
		return nil, fmt.Errorf("brush: marshal: empty brush")
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s %dx%d\n", textHeader, b.Width, b.Height)
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if x > 0 {
				buf.WriteByte(' ')
			}
			buf.WriteString(b.At(x, y).String())
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// UnmarshalText replaces the brush with the encoded contents. The brush is left
// untouched on error.
func (b *Brush) UnmarshalText(text []byte) error {
	lines := strings.Split(strings.TrimSpace(string(text)), "\n")
	var w, h int
	if _, err := fmt.Sscanf(strings.TrimSpace(lines[0]), textHeader+" %dx%d", &w, &h); err != nil {
		return fmt.Errorf("brush: unmarshal header %q: %w", lines[0], err)
	}
	if w <= 0 || h <= 0 {
		return fmt.Errorf("brush: unmarshal: bad size %dx%d", w, h)
	}
	if len(lines)-1 != h {
		return fmt.Errorf("brush: unmarshal: expected %d rows, got %d", h, len(lines)-1)
	}

	tiles := make([]tile.Tile, 0, w*h)
	for y, line := range lines[1:] {
		cells := strings.Fields(line)
		if len(cells) != w {
			return fmt.Errorf("brush: unmarshal row %d: expected %d cells, got %d", y, w, len(cells))
		}
		for _, cell := range cells {
			t, err := parseCell(cell)
			if err != nil {
				return fmt.Errorf("brush: unmarshal row %d: %w", y, err)
			}
			tiles = append(tiles, t)
		}
	}
	b.Set(tiles, w, h)
	return nil
}

func parseCell(cell string) (tile.Tile, error) {
	idx, flags, ok := strings.Cut(cell, ":")
	if !ok {
		return tile.Tile{}, fmt.Errorf("cell %q: missing flags", cell)
	}
	i, err := strconv.ParseUint(idx, 10, 8)
	if err != nil {
		return tile.Tile{}, fmt.Errorf("cell %q: %w", cell, err)
	}
	f, err := strconv.ParseUint(flags, 10, 8)
	if err != nil {
		return tile.Tile{}, fmt.Errorf("cell %q: %w", cell, err)
	}
	return tile.Tile{Index: uint8(i), Flags: tile.Flags(f)}, nil
}
