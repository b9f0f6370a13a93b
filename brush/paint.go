package brush

import (
	"image"

	"github.com/milk9111/mapedit/tile"
)

// Grid is a writable tile surface, typically a tile layer.
type Grid interface {
	Width() int
	Height() int
	Tile(x, y int) tile.Tile
	SetTile(x, y int, t tile.Tile)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Extract copies the tiles inside the inclusive rectangle (startX, startY) to
// (endX, endY) into a new brush. The rectangle is normalized and clamped to the
// grid, so the brush can be smaller than what was requested. A rectangle lying
// entirely outside the grid collapses onto the nearest edge cells.
func Extract(g Grid, startX, startY, endX, endY int) *Brush {
	w, h := g.Width(), g.Height()
	if w <= 0 || h <= 0 {
		return &Brush{}
	}

	minX := clamp(min(startX, endX), 0, w-1)
	minY := clamp(min(startY, endY), 0, h-1)
	maxX := clamp(max(startX, endX), 0, w-1) + 1
	maxY := clamp(max(startY, endY), 0, h-1) + 1

	bw, bh := maxX-minX, maxY-minY
	tiles := make([]tile.Tile, 0, bw*bh)
	for y := minY; y < maxY; y++ {
		for x := minX; x < maxX; x++ {
			tiles = append(tiles, g.Tile(x, y))
		}
	}
	return New(tiles, bw, bh)
}

// Stamp writes the brush once with its top-left corner at (originX, originY).
// Cells that land outside the grid are skipped. It returns the rectangle that
// was actually written, empty when nothing was.
func (b *Brush) Stamp(g Grid, originX, originY int) image.Rectangle {
	if b.IsEmpty() {
		return image.Rectangle{}
	}
	gw, gh := g.Width(), g.Height()
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			tx, ty := originX+x, originY+y
			if tx < 0 || ty < 0 || tx >= gw || ty >= gh {
				continue
			}
			g.SetTile(tx, ty, b.At(x, y))
		}
	}
	r := image.Rect(originX, originY, originX+b.Width, originY+b.Height)
	return r.Intersect(image.Rect(0, 0, gw, gh))
}

// FillRectRepeat tiles the brush over the rectangle (x, y, w, h), repeating it
// from the rectangle origin. Cells outside the grid are skipped. It returns the
// clipped rectangle that was written.
func (b *Brush) FillRectRepeat(g Grid, rectX, rectY, rectW, rectH int) image.Rectangle {
	if b.IsEmpty() || rectW <= 0 || rectH <= 0 {
		return image.Rectangle{}
	}
	gw, gh := g.Width(), g.Height()
	for y := 0; y < rectH; y++ {
		for x := 0; x < rectW; x++ {
			tx, ty := rectX+x, rectY+y
			if tx < 0 || ty < 0 || tx >= gw || ty >= gh {
				continue
			}
			g.SetTile(tx, ty, b.At(x%b.Width, y%b.Height))
		}
	}
	r := image.Rect(rectX, rectY, rectX+rectW, rectY+rectH)
	return r.Intersect(image.Rect(0, 0, gw, gh))
}
