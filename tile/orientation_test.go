package tile

import "testing"

// xorRule is the flag arithmetic the tables encode, written out bit by bit.
func xorRule(f Flags, op Op) Flags {
	rotated := f&FlagRotate != 0
	switch op {
	case OpFlipX:
		if rotated {
			return f ^ FlagFlipV
		}
		return f ^ FlagFlipH
	case OpFlipY:
		if rotated {
			return f ^ FlagFlipH
		}
		return f ^ FlagFlipV
	case OpRotateCW:
		if rotated {
			f ^= FlagFlipH | FlagFlipV
		}
		return f ^ FlagRotate
	case OpRotateCCW:
		if !rotated {
			f ^= FlagFlipH | FlagFlipV
		}
		return f ^ FlagRotate
	}
	return f
}

func TestTransitionTablesMatchFlagRule(t *testing.T) {
	ops := []Op{OpFlipX, OpFlipY, OpRotateCW, OpRotateCCW}
	for _, op := range ops {
		for o := Orientation(0); o < orientationCount; o++ {
			got := Tile{Index: 1, Flags: o.Flags()}.Transform(op).Flags
			want := xorRule(o.Flags(), op)
			if got != want {
				t.Fatalf("%s from %d: expected flags %d, got %d", op, o, want, got)
			}
		}
	}
}

func TestTransitionAlgebra(t *testing.T) {
	cases := []struct {
		name  string
		steps []Op
	}{
		{"flipx_involution", []Op{OpFlipX, OpFlipX}},
		{"flipy_involution", []Op{OpFlipY, OpFlipY}},
		{"cw_then_ccw", []Op{OpRotateCW, OpRotateCCW}},
		{"ccw_then_cw", []Op{OpRotateCCW, OpRotateCW}},
		{"four_cw", []Op{OpRotateCW, OpRotateCW, OpRotateCW, OpRotateCW}},
		{"four_ccw", []Op{OpRotateCCW, OpRotateCCW, OpRotateCCW, OpRotateCCW}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			for o := Orientation(0); o < orientationCount; o++ {
				cur := o
				for _, op := range c.steps {
					cur = cur.Apply(op)
				}
				if cur != o {
					t.Fatalf("orientation %d came back as %d", o, cur)
				}
			}
		})
	}
}

func TestTransformKeepsOpaqueBit(t *testing.T) {
	in := Tile{Index: 7, Flags: FlagOpaque | FlagRotate}
	out := in.Transform(OpRotateCW)
	if out.Flags&FlagOpaque == 0 {
		t.Fatalf("opaque bit lost: %v", out)
	}
	if out.Index != 7 {
		t.Fatalf("index changed: %v", out)
	}
	if out.Orientation() != OrientHV {
		t.Fatalf("expected HV after rotating a rotated tile, got %d", out.Orientation())
	}
}

func TestOrientationFlagsRoundTrip(t *testing.T) {
	for o := Orientation(0); o < orientationCount; o++ {
		if got := orientationFromFlags(o.Flags()); got != o {
			t.Fatalf("orientation %d -> flags %d -> %d", o, o.Flags(), got)
		}
	}
}
