package automap

import (
	"encoding/binary"
	"hash/fnv"
	"image"

	"github.com/milk9111/mapedit/tile"
)

type Match uint8

const (
	MatchFull Match = iota
	MatchEmpty
	MatchIndex
)

func (m Match) String() string {
	switch m {
	case MatchFull:
		return "full"
	case MatchEmpty:
		return "empty"
	case MatchIndex:
		return "index"
	default:
		return "unknown"
	}
}

// Condition tests the neighbour at offset (X, Y) of the cell being resolved.
type Condition struct {
	X, Y  int
	Match Match
	Index uint8
	Not   bool
}

func (c Condition) matches(n neighbour, outside Match) bool {
	var ok bool
	if !n.inside {
		ok = c.Match == outside
	} else {
		switch c.Match {
		case MatchFull:
			ok = n.index != 0
		case MatchEmpty:
			ok = n.index == 0
		case MatchIndex:
			ok = n.index == c.Index
		}
	}
	return ok != c.Not
}

// Rule replaces a non-empty cell with Index and Flags when every condition
// holds. Random > 1 applies the rule to about one matching cell in Random.
type Rule struct {
	Index      uint8
	Flags      tile.Flags
	Random     int
	Conditions []Condition
}

func (r Rule) matches(src []tile.Tile, w, h, x, y int, outside Match, seed int) bool {
	for _, c := range r.Conditions {
		if !c.matches(lookup(src, w, h, x+c.X, y+c.Y), outside) {
			return false
		}
	}
	if r.Random > 1 {
		return hashCell(x, y, seed)%uint32(r.Random) == 0
	}
	return true
}

// Rules is an ordered list of rules; for each cell the last matching rule
// wins.
type Rules struct {
	name    string
	Outside Match
	Rules   []Rule
}

func NewRules(name string, outside Match, rules []Rule) *Rules {
	return &Rules{name: name, Outside: outside, Rules: rules}
}

func (rs *Rules) Name() string { return rs.name }

func (rs *Rules) Reach() int {
	reach := 0
	for _, r := range rs.Rules {
		for _, c := range r.Conditions {
			reach = max(reach, abs(c.X), abs(c.Y))
		}
	}
	return reach
}

func (rs *Rules) Apply(src, dst []tile.Tile, w, h int, area image.Rectangle) {
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			i := y*w + x
			if src[i].IsEmpty() {
				continue
			}
			for ri, r := range rs.Rules {
				if r.matches(src, w, h, x, y, rs.Outside, ri) {
					dst[i] = tile.Tile{Index: r.Index, Flags: r.Flags}
				}
			}
		}
	}
}

type neighbour struct {
	index  uint8
	flags  tile.Flags
	inside bool
}

func lookup(src []tile.Tile, w, h, x, y int) neighbour {
	if x < 0 || y < 0 || x >= w || y >= h {
		return neighbour{}
	}
	t := src[y*w+x]
	return neighbour{index: t.Index, flags: t.Flags, inside: true}
}

// hashCell is a stable per-cell hash so random rules give the same result on
// every pass.
func hashCell(x, y, seed int) uint32 {
	var buf [12]byte
	binary.LittleEndian.PutUint32(buf[0:], uint32(x))
	binary.LittleEndian.PutUint32(buf[4:], uint32(y))
	binary.LittleEndian.PutUint32(buf[8:], uint32(seed))
	h := fnv.New32a()
	h.Write(buf[:])
	return h.Sum32()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
