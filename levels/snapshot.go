package levels

import (
	"unsafe"

	"github.com/milk9111/mapedit/tile"
)

// Snapshot is an independent deep copy of the mutable map state. It shares no
// memory with the map it was taken from, nor with maps restored from it.
type Snapshot struct {
	groups      Slots[Group]
	layers      Slots[Layer]
	groupOrder  []int
	images      []Image
	gameGroupID int
	gameLayerID int
}

func (m *Map) SaveSnapshot() *Snapshot {
	return &Snapshot{
		groups:      m.Groups.clone((*Group).clone),
		layers:      m.Layers.clone((*Layer).clone),
		groupOrder:  append([]int(nil), m.GroupOrder...),
		images:      append([]Image(nil), m.Images...),
		gameGroupID: m.GameGroupID,
		gameLayerID: m.GameLayerID,
	}
}

// RestoreSnapshot overwrites the map state with s. The snapshot stays
// untouched and can be restored again.
func (m *Map) RestoreSnapshot(s *Snapshot) {
	if s == nil {
		panic("levels: restore of a nil snapshot")
	}
	m.Groups = s.groups.clone((*Group).clone)
	m.Layers = s.layers.clone((*Layer).clone)
	m.GroupOrder = append([]int(nil), s.groupOrder...)
	m.Images = append([]Image(nil), s.images...)
	m.GameGroupID = s.gameGroupID
	m.GameLayerID = s.gameLayerID
}

// Size is the approximate number of bytes held by the snapshot.
func (s *Snapshot) Size() int {
	n := int(unsafe.Sizeof(*s))
	n += len(s.groupOrder) * int(unsafe.Sizeof(int(0)))
	for _, img := range s.images {
		n += int(unsafe.Sizeof(img)) + len(img.Name)
	}
	for _, g := range s.groups.items {
		if g == nil {
			continue
		}
		n += int(unsafe.Sizeof(*g)) + len(g.Name) + len(g.LayerIDs)*int(unsafe.Sizeof(int(0)))
	}
	for _, l := range s.layers.items {
		if l == nil {
			continue
		}
		n += int(unsafe.Sizeof(*l)) + len(l.Name)
		n += len(l.tiles) * int(unsafe.Sizeof(tile.Tile{}))
		n += len(l.Quads) * int(unsafe.Sizeof(Quad{}))
	}
	return n
}
