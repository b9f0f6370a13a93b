package levels

import (
	"fmt"

	"github.com/milk9111/mapedit/tile"
)

const (
	MaxGroups      = 64
	MaxGroupLayers = 64

	// NoImage marks a layer without a tileset image.
	NoImage = -1

	DefaultColor = "#ffffff"
)

type LayerKind uint8

const (
	LayerTiles LayerKind = iota
	LayerQuads
)

func (k LayerKind) String() string {
	switch k {
	case LayerTiles:
		return "Tile"
	case LayerQuads:
		return "Quad"
	default:
		return "Unknown"
	}
}

// Map is the editable map. Groups and layers are addressed by id; GroupOrder
// is the draw order of groups.
type Map struct {
	Path string

	Groups      Slots[Group]
	Layers      Slots[Layer]
	GroupOrder  []int
	Images      []Image
	GameGroupID int
	GameLayerID int
}

type Group struct {
	Name                 string
	OffsetX, OffsetY     int
	ParallaxX, ParallaxY int
	UseClipping          bool
	ClipX, ClipY         int
	ClipWidth            int
	ClipHeight           int
	LayerIDs             []int
}

// IndexOf returns the position of layerID inside the group, or -1.
func (g *Group) IndexOf(layerID int) int {
	for i, id := range g.LayerIDs {
		if id == layerID {
			return i
		}
	}
	return -1
}

func (g *Group) IsFull() bool { return len(g.LayerIDs) >= MaxGroupLayers }

func (g *Group) insertLayer(at, layerID int) {
	if g.IsFull() {
		panic("levels: group is full of layers")
	}
	g.LayerIDs = append(g.LayerIDs, 0)
	copy(g.LayerIDs[at+1:], g.LayerIDs[at:])
	g.LayerIDs[at] = layerID
}

func (g *Group) removeAt(i int) {
	g.LayerIDs = append(g.LayerIDs[:i], g.LayerIDs[i+1:]...)
}

func (g *Group) clone() *Group {
	c := *g
	c.LayerIDs = append([]int(nil), g.LayerIDs...)
	return &c
}

type Quad struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"w"`
	Height int    `json:"h"`
	Color  string `json:"color,omitempty"`
}

// Layer is either a tile layer (a width x height grid) or a quad layer.
type Layer struct {
	Kind       LayerKind
	Name       string
	ImageID    int
	Color      string
	HighDetail bool
	Quads      []Quad

	width  int
	height int
	tiles  []tile.Tile
}

func newTileLayer(w, h int) Layer {
	if w <= 0 || h <= 0 {
		panic(fmt.Sprintf("levels: wrong tile layer size %dx%d", w, h))
	}
	return Layer{
		Kind:    LayerTiles,
		ImageID: NoImage,
		Color:   DefaultColor,
		width:   w,
		height:  h,
		tiles:   make([]tile.Tile, w*h),
	}
}

func (l *Layer) IsTileLayer() bool { return l.Kind == LayerTiles }
func (l *Layer) IsQuadLayer() bool { return l.Kind == LayerQuads }

func (l *Layer) Width() int  { return l.width }
func (l *Layer) Height() int { return l.height }

func (l *Layer) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < l.width && y < l.height
}

func (l *Layer) Tile(x, y int) tile.Tile {
	return l.tiles[y*l.width+x]
}

func (l *Layer) SetTile(x, y int, t tile.Tile) {
	l.tiles[y*l.width+x] = t
}

// Tiles exposes the row-major tile storage for in-place rewrites.
func (l *Layer) Tiles() []tile.Tile { return l.tiles }

// Resize changes the grid size, keeping the top-left overlap and clearing the
// rest. It reports whether the size changed.
func (l *Layer) Resize(w, h int) bool {
	if !l.IsTileLayer() {
		panic("levels: resize of a non tile layer")
	}
	if w <= 0 || h <= 0 {
		panic(fmt.Sprintf("levels: wrong tile layer size %dx%d", w, h))
	}
	if w == l.width && h == l.height {
		return false
	}
	tiles := make([]tile.Tile, w*h)
	for y := 0; y < min(h, l.height); y++ {
		copy(tiles[y*w:y*w+min(w, l.width)], l.tiles[y*l.width:])
	}
	l.tiles = tiles
	l.width = w
	l.height = h
	return true
}

func (l *Layer) clone() *Layer {
	c := *l
	c.Quads = append([]Quad(nil), l.Quads...)
	c.tiles = append([]tile.Tile(nil), l.tiles...)
	return &c
}

// Image is a tileset image referenced by layers through its index in
// Map.Images.
type Image struct {
	Name     string
	Width    int
	Height   int
	External bool
}

// New returns a map holding one game group with one w x h game layer.
func New(w, h int) *Map {
	m := &Map{}
	m.GameGroupID = m.Groups.Push(newGroup("Game"))
	m.GroupOrder = append(m.GroupOrder, m.GameGroupID)
	game := newTileLayer(w, h)
	game.Name = "Game"
	m.GameLayerID = m.Layers.Push(game)
	g := m.Groups.Get(m.GameGroupID)
	g.LayerIDs = append(g.LayerIDs, m.GameLayerID)
	return m
}

func newGroup(name string) Group {
	return Group{Name: name, ParallaxX: 100, ParallaxY: 100}
}

func (m *Map) GameLayer() *Layer { return m.Layers.Get(m.GameLayerID) }

func (m *Map) CanAddGroup() bool { return len(m.GroupOrder) < MaxGroups }

// AddGroup appends a new empty group to the group order.
func (m *Map) AddGroup() int {
	if !m.CanAddGroup() {
		panic("levels: group list is full")
	}
	id := m.Groups.Push(newGroup(""))
	m.GroupOrder = append(m.GroupOrder, id)
	return id
}

// AddTileLayerUnder creates a tile layer in groupID right after underID, or at
// the top of the group when underID is -1. Size and image are copied from
// underID when it is a tile layer, from the game layer otherwise.
func (m *Map) AddTileLayerUnder(underID, groupID int) int {
	g := m.Groups.Get(groupID)
	ref := m.GameLayer()
	imageID := NoImage
	at := 0
	if underID != -1 {
		under := m.Layers.Get(underID)
		if under.IsTileLayer() {
			ref = under
			imageID = under.ImageID
		}
		at = m.mustIndexOf(g, underID) + 1
	}

	l := newTileLayer(ref.width, ref.height)
	l.ImageID = imageID
	if g.IsFull() {
		panic("levels: group is full of layers")
	}
	id := m.Layers.Push(l)
	g.insertLayer(at, id)
	return id
}

// AddQuadLayerUnder creates an empty quad layer in groupID right after underID.
func (m *Map) AddQuadLayerUnder(underID, groupID int) int {
	g := m.Groups.Get(groupID)
	m.Layers.Get(underID)
	at := m.mustIndexOf(g, underID) + 1
	if g.IsFull() {
		panic("levels: group is full of layers")
	}
	id := m.Layers.Push(Layer{Kind: LayerQuads, ImageID: NoImage, Color: DefaultColor})
	g.insertLayer(at, id)
	return id
}

func (m *Map) mustIndexOf(g *Group, layerID int) int {
	i := g.IndexOf(layerID)
	if i == -1 {
		panic(fmt.Sprintf("levels: layer %d not found in parent group", layerID))
	}
	return i
}

// DeleteLayer removes layerID from groupID and frees it. The game layer can
// not be deleted.
func (m *Map) DeleteLayer(layerID, groupID int) {
	if layerID == m.GameLayerID {
		panic("levels: can't delete game layer")
	}
	g := m.Groups.Get(groupID)
	m.Layers.Get(layerID)
	g.removeAt(m.mustIndexOf(g, layerID))
	m.Layers.Remove(layerID)
}

// DeleteGroup deletes every layer of groupID and then the group itself.
func (m *Map) DeleteGroup(groupID int) {
	if groupID == m.GameGroupID {
		panic("levels: can't delete game group")
	}
	g := m.Groups.Get(groupID)
	for len(g.LayerIDs) > 0 {
		m.DeleteLayer(g.LayerIDs[0], groupID)
	}
	i := m.GroupListIndex(groupID)
	if i == -1 {
		panic(fmt.Sprintf("levels: group %d not in group order", groupID))
	}
	m.GroupOrder = append(m.GroupOrder[:i], m.GroupOrder[i+1:]...)
	m.Groups.Remove(groupID)
}

// GroupListIndex returns the draw order position of groupID, or -1.
func (m *Map) GroupListIndex(groupID int) int {
	for i, id := range m.GroupOrder {
		if id == groupID {
			return i
		}
	}
	return -1
}

// ParentGroup returns the id of the group holding layerID, or -1.
func (m *Map) ParentGroup(layerID int) int {
	for _, gid := range m.GroupOrder {
		if m.Groups.Get(gid).IndexOf(layerID) != -1 {
			return gid
		}
	}
	return -1
}

// MoveGroup moves the group at listIndex by rel positions, clamped to the
// list, and returns its new list index.
func (m *Map) MoveGroup(listIndex, rel int) int {
	if listIndex < 0 || listIndex >= len(m.GroupOrder) {
		panic(fmt.Sprintf("levels: group list index %d out of bounds", listIndex))
	}
	to := clamp(listIndex+rel, 0, len(m.GroupOrder)-1)
	m.GroupOrder[listIndex], m.GroupOrder[to] = m.GroupOrder[to], m.GroupOrder[listIndex]
	return to
}

// MoveLayer moves the layer at layerIndex of the group at groupIndex one step
// up (rel < 0) or down (rel > 0). Moving past either end of the group
// reparents the layer into the neighbouring group, unless it is the game
// layer, there is no neighbour or the neighbour is full. It returns the
// resulting parent group list index and whether anything moved.
func (m *Map) MoveLayer(groupIndex, layerIndex, rel int) (int, bool) {
	if groupIndex < 0 || groupIndex >= len(m.GroupOrder) {
		panic(fmt.Sprintf("levels: group list index %d out of bounds", groupIndex))
	}
	parent := m.Groups.Get(m.GroupOrder[groupIndex])
	if layerIndex < 0 || layerIndex >= len(parent.LayerIDs) {
		panic(fmt.Sprintf("levels: layer list index %d out of bounds", layerIndex))
	}

	rel = clamp(rel, -1, 1)
	if rel == 0 {
		return groupIndex, false
	}

	layerID := parent.LayerIDs[layerIndex]
	isGame := layerID == m.GameLayerID
	to := layerIndex + rel

	switch {
	case to < 0:
		if groupIndex == 0 || isGame {
			return groupIndex, false
		}
		above := m.Groups.Get(m.GroupOrder[groupIndex-1])
		if above.IsFull() {
			return groupIndex, false
		}
		parent.removeAt(layerIndex)
		above.LayerIDs = append(above.LayerIDs, layerID)
		return groupIndex - 1, true
	case to >= len(parent.LayerIDs):
		if groupIndex == len(m.GroupOrder)-1 || isGame {
			return groupIndex, false
		}
		below := m.Groups.Get(m.GroupOrder[groupIndex+1])
		if below.IsFull() {
			return groupIndex, false
		}
		parent.removeAt(layerIndex)
		below.insertLayer(0, layerID)
		return groupIndex + 1, true
	default:
		parent.LayerIDs[layerIndex], parent.LayerIDs[to] = parent.LayerIDs[to], parent.LayerIDs[layerIndex]
		return groupIndex, true
	}
}

// AddImage appends img and returns its id.
func (m *Map) AddImage(img Image) int {
	m.Images = append(m.Images, img)
	return len(m.Images) - 1
}

func (m *Map) IsValidImage(id int) bool { return id >= 0 && id < len(m.Images) }

// DeleteImage removes image id. Layers using it lose their image and layers
// using a later image are re-pointed to its new index.
func (m *Map) DeleteImage(id int) {
	if !m.IsValidImage(id) {
		panic(fmt.Sprintf("levels: image %d out of bounds", id))
	}
	m.Images = append(m.Images[:id], m.Images[id+1:]...)
	for _, lid := range m.Layers.IDs() {
		l := m.Layers.Get(lid)
		switch {
		case l.ImageID == id:
			l.ImageID = NoImage
		case l.ImageID > id:
			l.ImageID--
		}
	}
}

// ImageName returns the name of image id, or "none".
func (m *Map) ImageName(id int) string {
	if !m.IsValidImage(id) {
		return "none"
	}
	return m.Images[id].Name
}

// LayerName returns the display name of a layer.
func (m *Map) LayerName(id int) string {
	l := m.Layers.Get(id)
	if l.Name != "" {
		return fmt.Sprintf("%s %d", l.Name, id)
	}
	return fmt.Sprintf("%s %d", l.Kind, id)
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
