package tile

// Orientation packs the three orientation bits of a tile into a table index:
// bit 0 = horizontal flip, bit 1 = vertical flip, bit 2 = rotate 90.
//
// The rotate bit changes which flip bit a geometric mirror lands on, so every
// brush transform is a lookup in the tables below instead of ad hoc XORs.
type Orientation uint8

const (
	OrientNone Orientation = 0
	OrientH    Orientation = 1
	OrientV    Orientation = 2
	OrientHV   Orientation = 3
	OrientR    Orientation = 4
	OrientHR   Orientation = 5
	OrientVR   Orientation = 6
	OrientHVR  Orientation = 7

	orientationCount = 8
)

// Op is a brush transform.
type Op uint8

const (
	OpFlipX Op = iota
	OpFlipY
	OpRotateCW
	OpRotateCCW
)

func (op Op) String() string {
	switch op {
	case OpFlipX:
		return "FlipX"
	case OpFlipY:
		return "FlipY"
	case OpRotateCW:
		return "RotateCW"
	case OpRotateCCW:
		return "RotateCCW"
	default:
		return "Unknown"
	}
}

// FlipX: rotated tiles toggle V, others toggle H.
// FlipY: rotated tiles toggle H, others toggle V.
// RotateCW: rotated tiles toggle H and V, then R toggles.
// RotateCCW: unrotated tiles toggle H and V, then R toggles.
var transitions = [4][orientationCount]Orientation{
	OpFlipX: {
		OrientNone: OrientH,
		OrientH:    OrientNone,
		OrientV:    OrientHV,
		OrientHV:   OrientV,
		OrientR:    OrientVR,
		OrientHR:   OrientHVR,
		OrientVR:   OrientR,
		OrientHVR:  OrientHR,
	},
	OpFlipY: {
		OrientNone: OrientV,
		OrientH:    OrientHV,
		OrientV:    OrientNone,
		OrientHV:   OrientH,
		OrientR:    OrientHR,
		OrientHR:   OrientR,
		OrientVR:   OrientHVR,
		OrientHVR:  OrientVR,
	},
	OpRotateCW: {
		OrientNone: OrientR,
		OrientH:    OrientHR,
		OrientV:    OrientVR,
		OrientHV:   OrientHVR,
		OrientR:    OrientHV,
		OrientHR:   OrientV,
		OrientVR:   OrientH,
		OrientHVR:  OrientNone,
	},
	OpRotateCCW: {
		OrientNone: OrientHVR,
		OrientH:    OrientVR,
		OrientV:    OrientHR,
		OrientHV:   OrientR,
		OrientR:    OrientNone,
		OrientHR:   OrientH,
		OrientVR:   OrientV,
		OrientHVR:  OrientHV,
	},
}

// Apply returns the orientation reached from o by op.
func (o Orientation) Apply(op Op) Orientation {
	if int(op) >= len(transitions) {
		panic("tile: unknown transform op")
	}
	return transitions[op][o&7]
}

func (o Orientation) Rotated() bool { return o&OrientR != 0 }

// Flags returns the flag bits encoding o.
func (o Orientation) Flags() Flags {
	var f Flags
	if o&OrientH != 0 {
		f |= FlagFlipH
	}
	if o&OrientV != 0 {
		f |= FlagFlipV
	}
	if o&OrientR != 0 {
		f |= FlagRotate
	}
	return f
}

func orientationFromFlags(f Flags) Orientation {
	var o Orientation
	if f&FlagFlipH != 0 {
		o |= OrientH
	}
	if f&FlagFlipV != 0 {
		o |= OrientV
	}
	if f&FlagRotate != 0 {
		o |= OrientR
	}
	return o
}
