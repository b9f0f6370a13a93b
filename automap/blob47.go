package automap

import (
	"fmt"
	"image"

	"github.com/milk9111/mapedit/tile"
)

const (
	maskN uint8 = 1 << iota
	maskNE
	maskE
	maskSE
	maskS
	maskSW
	maskW
	maskNW
)

// blobMaskOrder lists the 47 distinct neighbour masks in tileset order.
var blobMaskOrder = [47]uint8{
	28, 124, 112, 16, 247, 223, 125, 31, 255, 241, 17, 253, 127, 95, 7, 199, 193, 1, 117, 87, 245, 4, 68, 64, 0, 213, 93, 215, 23, 209, 116, 92, 20, 84, 80, 29, 113, 197, 71, 21, 85, 81, 221, 119, 5, 69, 65,
}

var blobMaskToSlot = func() [256]int {
	var lookup [256]int
	for i := range lookup {
		lookup[i] = -1
	}
	for slot, mask := range blobMaskOrder {
		lookup[mask] = slot
	}
	return lookup
}()

// Blob47 picks one of 47 tiles from the 8-neighbour mask of each non-empty
// cell. Corners only count when both adjacent edges are set.
type Blob47 struct {
	name     string
	BaseTile int
	// Indices optionally maps each of the 47 slots to a tile index.
	Indices []int
	Outside Match
}

func NewBlob47(name string, baseTile int, indices []int, outside Match) (*Blob47, error) {
	if len(indices) != 0 && len(indices) != len(blobMaskOrder) {
		return nil, fmt.Errorf("blob47 %s: indices must have %d entries, got %d", name, len(blobMaskOrder), len(indices))
	}
	if len(indices) == 0 && (baseTile < 0 || baseTile+len(blobMaskOrder) > 256) {
		return nil, fmt.Errorf("blob47 %s: base tile %d leaves no room for 47 tiles", name, baseTile)
	}
	for _, idx := range indices {
		if idx < 0 || idx > 255 {
			return nil, fmt.Errorf("blob47 %s: index %d out of range", name, idx)
		}
	}
	return &Blob47{name: name, BaseTile: baseTile, Indices: indices, Outside: outside}, nil
}

func (b *Blob47) Name() string { return b.name }
func (b *Blob47) Reach() int   { return 1 }

func (b *Blob47) Apply(src, dst []tile.Tile, w, h int, area image.Rectangle) {
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			i := y*w + x
			if src[i].IsEmpty() {
				continue
			}
			slot := blobMaskToSlot[b.mask(src, w, h, x, y)]
			dst[i] = tile.Tile{Index: b.tileFor(slot), Flags: src[i].Flags & tile.FlagOpaque}
		}
	}
}

func (b *Blob47) tileFor(slot int) uint8 {
	if len(b.Indices) == len(blobMaskOrder) {
		return uint8(b.Indices[slot])
	}
	return uint8(b.BaseTile + slot)
}

func (b *Blob47) full(src []tile.Tile, w, h, x, y int) bool {
	n := lookup(src, w, h, x, y)
	if !n.inside {
		return b.Outside == MatchFull
	}
	return n.index != 0
}

func (b *Blob47) mask(src []tile.Tile, w, h, x, y int) uint8 {
	var mask uint8
	n := b.full(src, w, h, x, y-1)
	e := b.full(src, w, h, x+1, y)
	s := b.full(src, w, h, x, y+1)
	west := b.full(src, w, h, x-1, y)
	if n {
		mask |= maskN
	}
	if e {
		mask |= maskE
	}
	if s {
		mask |= maskS
	}
	if west {
		mask |= maskW
	}
	if n && e && b.full(src, w, h, x+1, y-1) {
		mask |= maskNE
	}
	if s && e && b.full(src, w, h, x+1, y+1) {
		mask |= maskSE
	}
	if s && west && b.full(src, w, h, x-1, y+1) {
		mask |= maskSW
	}
	if n && west && b.full(src, w, h, x-1, y-1) {
		mask |= maskNW
	}
	return mask
}
