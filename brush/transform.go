package brush

import "github.com/milk9111/mapedit/tile"

// FlipX mirrors the brush left to right.
func (b *Brush) FlipX() {
	if b.IsEmpty() {
		return
	}
	src := append([]tile.Tile(nil), b.Tiles...)
	for ty := 0; ty < b.Height; ty++ {
		for tx := 0; tx < b.Width; tx++ {
			b.Tiles[ty*b.Width+tx] = src[ty*b.Width+(b.Width-tx-1)].Transform(tile.OpFlipX)
		}
	}
}

// FlipY mirrors the brush top to bottom.
func (b *Brush) FlipY() {
	if b.IsEmpty() {
		return
	}
	src := append([]tile.Tile(nil), b.Tiles...)
	for ty := 0; ty < b.Height; ty++ {
		for tx := 0; tx < b.Width; tx++ {
			b.Tiles[ty*b.Width+tx] = src[(b.Height-ty-1)*b.Width+tx].Transform(tile.OpFlipY)
		}
	}
}

// RotateCW turns the brush 90 degrees clockwise. Width and height swap.
func (b *Brush) RotateCW() {
	if b.IsEmpty() {
		return
	}
	w, h := b.Width, b.Height
	src := append([]tile.Tile(nil), b.Tiles...)
	for ty := 0; ty < h; ty++ {
		for tx := 0; tx < w; tx++ {
			// new width is h: (tx, ty) lands on column h-1-ty, row tx
			b.Tiles[tx*h+(h-1-ty)] = src[ty*w+tx].Transform(tile.OpRotateCW)
		}
	}
	b.Width, b.Height = h, w
}

// RotateCCW turns the brush 90 degrees counter-clockwise. Width and height swap.
func (b *Brush) RotateCCW() {
	if b.IsEmpty() {
		return
	}
	w, h := b.Width, b.Height
	src := append([]tile.Tile(nil), b.Tiles...)
	for ty := 0; ty < h; ty++ {
		for tx := 0; tx < w; tx++ {
			// (tx, ty) lands on column ty, row w-1-tx
			b.Tiles[(w-1-tx)*h+ty] = src[ty*w+tx].Transform(tile.OpRotateCCW)
		}
	}
	b.Width, b.Height = h, w
}

// Apply runs the transform named by op.
func (b *Brush) Apply(op tile.Op) {
	switch op {
	case tile.OpFlipX:
		b.FlipX()
	case tile.OpFlipY:
		b.FlipY()
	case tile.OpRotateCW:
		b.RotateCW()
	case tile.OpRotateCCW:
		b.RotateCCW()
	}
}
