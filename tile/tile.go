package tile

import "fmt"

// Flags holds the per-tile orientation and render bits.
type Flags uint8

const (
	FlagFlipH  Flags = 1 << 0
	FlagFlipV  Flags = 1 << 1
	FlagOpaque Flags = 1 << 2
	FlagRotate Flags = 1 << 3

	orientationMask = FlagFlipH | FlagFlipV | FlagRotate
)

// Tile is a single cell of a tile layer or brush. Index 0 is the empty tile.
type Tile struct {
	Index uint8
	Flags Flags
}

func (t Tile) IsEmpty() bool {
	return t.Index == 0
}

// Orientation returns the 3-bit orientation state of the tile.
func (t Tile) Orientation() Orientation {
	return orientationFromFlags(t.Flags)
}

// WithOrientation returns a copy of t with its orientation bits replaced by o.
// Bits that are not part of the orientation (FlagOpaque) are kept.
func (t Tile) WithOrientation(o Orientation) Tile {
	t.Flags = (t.Flags &^ orientationMask) | o.Flags()
	return t
}

// Transform applies op to the tile's orientation.
func (t Tile) Transform(op Op) Tile {
	return t.WithOrientation(t.Orientation().Apply(op))
}

func (t Tile) String() string {
	return fmt.Sprintf("%d:%d", t.Index, t.Flags)
}
