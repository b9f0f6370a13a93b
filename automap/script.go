package automap

import (
	"fmt"
	"image"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/mapedit/tile"
)

// scriptGlobals are the variables a ruleset script sees for every cell. The
// neighbour globals hold the neighbour's index, 0 for empty and -1 outside the
// layer. A script rewrites a cell by assigning index and flags.
var scriptGlobals = []string{"x", "y", "index", "flags", "n", "ne", "e", "se", "s", "sw", "w", "nw"}

var scriptOffsets = [8]image.Point{
	{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

// Script runs a compiled tengo script once per non-empty cell.
type Script struct {
	name     string
	path     string
	compiled *tengo.Compiled
}

// NewScript compiles src. path is only used in messages.
func NewScript(name, path string, src []byte) (*Script, error) {
	script := tengo.NewScript(src)
	for _, g := range scriptGlobals {
		if err := script.Add(g, 0); err != nil {
			return nil, fmt.Errorf("automap: script %s: %w", path, err)
		}
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("automap: compile %s: %w", path, err)
	}
	return &Script{name: name, path: path, compiled: compiled}, nil
}

func (s *Script) Name() string { return s.name }
func (s *Script) Reach() int   { return 1 }

// Apply leaves dst untouched when the script fails on any cell.
func (s *Script) Apply(src, dst []tile.Tile, w, h int, area image.Rectangle) {
	type result struct {
		i int
		t tile.Tile
	}
	var results []result
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			i := y*w + x
			if src[i].IsEmpty() {
				continue
			}
			out, err := s.run(src, w, h, x, y)
			if err != nil {
				log.Printf("automap: script %s at (%d, %d): %v", s.path, x, y, err)
				return
			}
			results = append(results, result{i, out})
		}
	}
	for _, r := range results {
		dst[r.i] = r.t
	}
}

func (s *Script) run(src []tile.Tile, w, h, x, y int) (tile.Tile, error) {
	cur := src[y*w+x]
	values := []int{x, y, int(cur.Index), int(cur.Flags)}
	for _, off := range scriptOffsets {
		n := lookup(src, w, h, x+off.X, y+off.Y)
		if !n.inside {
			values = append(values, -1)
			continue
		}
		values = append(values, int(n.index))
	}
	for i, g := range scriptGlobals {
		if err := s.compiled.Set(g, values[i]); err != nil {
			return tile.Tile{}, err
		}
	}
	if err := s.compiled.Run(); err != nil {
		return tile.Tile{}, err
	}

	index := s.compiled.Get("index").Int()
	flags := s.compiled.Get("flags").Int()
	if index < 0 || index > 255 {
		return tile.Tile{}, fmt.Errorf("index %d out of range", index)
	}
	if flags < 0 || flags > 255 {
		return tile.Tile{}, fmt.Errorf("flags %d out of range", flags)
	}
	return tile.Tile{Index: uint8(index), Flags: tile.Flags(flags)}, nil
}
