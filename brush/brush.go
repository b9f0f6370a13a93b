package brush

import (
	"fmt"

	"github.com/milk9111/mapedit/tile"
)

// Brush is a rectangular, row-major buffer of tiles used as a stamp and
// clipboard. The zero value is an empty brush.
type Brush struct {
	Width  int
	Height int
	Tiles  []tile.Tile
}

// New returns a brush holding a copy of tiles. It panics when the dimensions
// are not positive or do not match len(tiles).
func New(tiles []tile.Tile, w, h int) *Brush {
	b := &Brush{}
	b.Set(tiles, w, h)
	return b
}

// Set replaces the brush contents wholesale.
func (b *Brush) Set(tiles []tile.Tile, w, h int) {
	if w <= 0 || h <= 0 {
		panic(fmt.Sprintf("brush: wrong dimensions %dx%d", w, h))
	}
	if len(tiles) != w*h {
		panic(fmt.Sprintf("brush: %d tiles do not fill %dx%d", len(tiles), w, h))
	}
	b.Width = w
	b.Height = h
	b.Tiles = append(make([]tile.Tile, 0, len(tiles)), tiles...)
}

func (b *Brush) Clear() {
	b.Width = 0
	b.Height = 0
	b.Tiles = nil
}

func (b *Brush) IsEmpty() bool {
	return b == nil || b.Width <= 0 || b.Height <= 0
}

func (b *Brush) At(x, y int) tile.Tile {
	return b.Tiles[y*b.Width+x]
}

func (b *Brush) Clone() *Brush {
	if b.IsEmpty() {
		return &Brush{}
	}
	return New(b.Tiles, b.Width, b.Height)
}

// Equal reports whether both brushes have the same size and tiles.
func (b *Brush) Equal(o *Brush) bool {
	if b.IsEmpty() || o.IsEmpty() {
		return b.IsEmpty() == o.IsEmpty()
	}
	if b.Width != o.Width || b.Height != o.Height {
		return false
	}
	for i := range b.Tiles {
		if b.Tiles[i] != o.Tiles[i] {
			return false
		}
	}
	return true
}
