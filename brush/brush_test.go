package brush

import (
	"image"
	"testing"

	"github.com/milk9111/mapedit/tile"
)

type testGrid struct {
	w, h  int
	tiles []tile.Tile
}

func newTestGrid(w, h int) *testGrid {
	g := &testGrid{w: w, h: h, tiles: make([]tile.Tile, w*h)}
	for i := range g.tiles {
		g.tiles[i] = tile.Tile{Index: uint8(i%250 + 1)}
	}
	return g
}

func (g *testGrid) Width() int                    { return g.w }
func (g *testGrid) Height() int                   { return g.h }
func (g *testGrid) Tile(x, y int) tile.Tile       { return g.tiles[y*g.w+x] }
func (g *testGrid) SetTile(x, y int, t tile.Tile) { g.tiles[y*g.w+x] = t }

func tiles(pairs ...int) []tile.Tile {
	out := make([]tile.Tile, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, tile.Tile{Index: uint8(pairs[i]), Flags: tile.Flags(pairs[i+1])})
	}
	return out
}

// mixedBrush covers every orientation state plus the opaque bit.
func mixedBrush() *Brush {
	ts := make([]tile.Tile, 0, 12)
	for i := 0; i < 12; i++ {
		f := tile.Orientation(i % 8).Flags()
		if i%3 == 0 {
			f |= tile.FlagOpaque
		}
		ts = append(ts, tile.Tile{Index: uint8(i + 1), Flags: f})
	}
	return New(ts, 4, 3)
}

func TestFlipXScenario(t *testing.T) {
	b := New(tiles(1, 0, 2, 0, 3, 0, 4, 0), 2, 2)
	b.FlipX()
	want := New(tiles(2, 1, 1, 1, 4, 1, 3, 1), 2, 2)
	if !b.Equal(want) {
		t.Fatalf("expected %v, got %v", want.Tiles, b.Tiles)
	}
}

func TestTransformRoundTrips(t *testing.T) {
	cases := []struct {
		name  string
		steps []tile.Op
	}{
		{"flipx_twice", []tile.Op{tile.OpFlipX, tile.OpFlipX}},
		{"flipy_twice", []tile.Op{tile.OpFlipY, tile.OpFlipY}},
		{"cw_then_ccw", []tile.Op{tile.OpRotateCW, tile.OpRotateCCW}},
		{"ccw_then_cw", []tile.Op{tile.OpRotateCCW, tile.OpRotateCW}},
		{"four_cw", []tile.Op{tile.OpRotateCW, tile.OpRotateCW, tile.OpRotateCW, tile.OpRotateCW}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := mixedBrush()
			orig := b.Clone()
			for _, op := range c.steps {
				b.Apply(op)
			}
			if !b.Equal(orig) {
				t.Fatalf("expected %dx%d %v, got %dx%d %v", orig.Width, orig.Height, orig.Tiles, b.Width, b.Height, b.Tiles)
			}
		})
	}
}

func TestRotateCWMovesTiles(t *testing.T) {
	// 1 2 3
	// 4 5 6
	b := New(tiles(1, 0, 2, 0, 3, 0, 4, 0, 5, 0, 6, 0), 3, 2)
	b.RotateCW()
	if b.Width != 2 || b.Height != 3 {
		t.Fatalf("expected 2x3, got %dx%d", b.Width, b.Height)
	}
	// 4 1
	// 5 2
	// 6 3
	wantIdx := []uint8{4, 1, 5, 2, 6, 3}
	for i, tl := range b.Tiles {
		if tl.Index != wantIdx[i] {
			t.Fatalf("cell %d: expected index %d, got %d", i, wantIdx[i], tl.Index)
		}
		if tl.Flags != tile.FlagRotate {
			t.Fatalf("cell %d: expected rotate flag only, got %d", i, tl.Flags)
		}
	}
}

func TestRotateCCWMovesTiles(t *testing.T) {
	b := New(tiles(1, 0, 2, 0, 3, 0, 4, 0, 5, 0, 6, 0), 3, 2)
	b.RotateCCW()
	// 3 6
	// 2 5
	// 1 4
	wantIdx := []uint8{3, 6, 2, 5, 1, 4}
	for i, tl := range b.Tiles {
		if tl.Index != wantIdx[i] {
			t.Fatalf("cell %d: expected index %d, got %d", i, wantIdx[i], tl.Index)
		}
		if tl.Flags != tile.FlagFlipH|tile.FlagFlipV|tile.FlagRotate {
			t.Fatalf("cell %d: expected HVR flags, got %d", i, tl.Flags)
		}
	}
}

func TestTransformsOnEmptyBrush(t *testing.T) {
	var b Brush
	for _, op := range []tile.Op{tile.OpFlipX, tile.OpFlipY, tile.OpRotateCW, tile.OpRotateCCW} {
		b.Apply(op)
	}
	if !b.IsEmpty() {
		t.Fatalf("expected empty brush, got %dx%d", b.Width, b.Height)
	}
}

func TestNewPanicsOnBadDimensions(t *testing.T) {
	cases := []struct {
		name  string
		tiles []tile.Tile
		w, h  int
	}{
		{"zero_width", tiles(1, 0), 0, 1},
		{"negative_height", tiles(1, 0), 1, -1},
		{"length_mismatch", tiles(1, 0, 2, 0), 3, 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatalf("expected panic")
				}
			}()
			New(c.tiles, c.w, c.h)
		})
	}
}

func TestNewCopiesInput(t *testing.T) {
	in := tiles(1, 0, 2, 0)
	b := New(in, 2, 1)
	in[0].Index = 9
	if b.Tiles[0].Index != 1 {
		t.Fatalf("brush aliases its input")
	}
}

func TestFillRectRepeatSingleTile(t *testing.T) {
	g := newTestGrid(10, 8)
	b := New(tiles(200, 0), 1, 1)
	got := b.FillRectRepeat(g, 2, 1, 5, 4)
	if got != image.Rect(2, 1, 7, 5) {
		t.Fatalf("unexpected footprint %v", got)
	}
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			in := image.Pt(x, y).In(got)
			if idx := g.Tile(x, y).Index; in && idx != 200 {
				t.Fatalf("(%d,%d): expected 200, got %d", x, y, idx)
			} else if !in && idx == 200 {
				t.Fatalf("(%d,%d): painted outside the rectangle", x, y)
			}
		}
	}
}

func TestFillRectRepeatPattern(t *testing.T) {
	g := newTestGrid(6, 6)
	b := New(tiles(1, 0, 2, 0, 3, 0, 4, 0), 2, 2)
	b.FillRectRepeat(g, 1, 1, 5, 3)
	cases := []struct {
		x, y int
		want uint8
	}{
		{1, 1, 1}, {2, 1, 2}, {3, 1, 1}, {5, 1, 1},
		{1, 2, 3}, {2, 2, 4}, {4, 2, 4},
		{1, 3, 1}, {2, 3, 2},
	}
	for _, c := range cases {
		if got := g.Tile(c.x, c.y).Index; got != c.want {
			t.Fatalf("(%d,%d): expected %d, got %d", c.x, c.y, c.want, got)
		}
	}
}

func TestStampClipping(t *testing.T) {
	cases := []struct {
		name   string
		x, y   int
		expect image.Rectangle
	}{
		{"inside", 1, 1, image.Rect(1, 1, 3, 3)},
		{"top_left", -1, -1, image.Rect(0, 0, 1, 1)},
		{"bottom_right", 3, 3, image.Rect(3, 3, 4, 4)},
		{"fully_outside", 10, 10, image.Rectangle{}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := newTestGrid(4, 4)
			b := New(tiles(100, 0, 101, 0, 102, 0, 103, 0), 2, 2)
			got := b.Stamp(g, c.x, c.y)
			if got != c.expect {
				t.Fatalf("expected footprint %v, got %v", c.expect, got)
			}
			for y := 0; y < 4; y++ {
				for x := 0; x < 4; x++ {
					painted := g.Tile(x, y).Index >= 100
					if painted != image.Pt(x, y).In(c.expect) {
						t.Fatalf("(%d,%d): painted=%v", x, y, painted)
					}
				}
			}
		})
	}
}

func TestExtractStampRoundTrip(t *testing.T) {
	g := newTestGrid(8, 6)
	before := append([]tile.Tile(nil), g.tiles...)

	b := Extract(g, 5, 4, 2, 1)
	if b.Width != 4 || b.Height != 4 {
		t.Fatalf("expected 4x4 brush, got %dx%d", b.Width, b.Height)
	}
	b.Stamp(g, 2, 1)
	for i := range before {
		if before[i] != g.tiles[i] {
			t.Fatalf("cell %d changed: %v -> %v", i, before[i], g.tiles[i])
		}
	}
}

func TestExtractClamps(t *testing.T) {
	cases := []struct {
		name           string
		x0, y0, x1, y1 int
		w, h           int
		first          uint8
	}{
		{"partial", -2, -2, 1, 1, 2, 2, 1},
		{"past_right", 3, 0, 9, 0, 2, 1, 4},
		{"fully_outside_collapses", 10, 10, 12, 12, 1, 1, 20},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := newTestGrid(5, 4)
			b := Extract(g, c.x0, c.y0, c.x1, c.y1)
			if b.Width != c.w || b.Height != c.h {
				t.Fatalf("expected %dx%d, got %dx%d", c.w, c.h, b.Width, b.Height)
			}
			if b.Tiles[0].Index != c.first {
				t.Fatalf("expected first index %d, got %d", c.first, b.Tiles[0].Index)
			}
		})
	}
}

func TestSelection(t *testing.T) {
	var s Selection
	s.Select(5, 5, 3, 7)
	if s.StartX != 3 || s.StartY != 5 || s.EndX != 5 || s.EndY != 7 {
		t.Fatalf("unexpected normalization %+v", s)
	}
	if s.Rect() != image.Rect(3, 5, 6, 8) {
		t.Fatalf("unexpected rect %v", s.Rect())
	}

	cases := []struct {
		name   string
		w, h   int
		active bool
		endX   int
	}{
		{"fits", 10, 10, true, 5},
		{"clamped", 5, 10, true, 4},
		{"outside", 3, 10, false, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sel := s
			sel.FitLayer(c.w, c.h)
			if sel.Active != c.active {
				t.Fatalf("expected active=%v, got %+v", c.active, sel)
			}
			if sel.EndX != c.endX {
				t.Fatalf("expected endX %d, got %d", c.endX, sel.EndX)
			}
		})
	}
}

func TestTextCodec(t *testing.T) {
	b := mixedBrush()
	text, err := b.MarshalText()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got Brush
	if err := got.UnmarshalText(text); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !got.Equal(b) {
		t.Fatalf("expected %v, got %v", b.Tiles, got.Tiles)
	}

	bad := []string{
		"",
		"hello 2x2\n1:0 1:0\n1:0 1:0",
		"mapedit-brush 2x1\n1:0",
		"mapedit-brush 2x1\n1:0 300:0",
		"mapedit-brush 1x1\n1",
	}
	for _, in := range bad {
		if err := got.UnmarshalText([]byte(in)); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}
