package editor

import (
	"fmt"

	"github.com/milk9111/mapedit/automap"
	"github.com/milk9111/mapedit/brush"
	"github.com/milk9111/mapedit/levels"
	"github.com/milk9111/mapedit/tile"
)

// DeleteLayer removes layerID from groupID. The game layer is selected
// instead when the deleted layer was selected.
func (e *Editor) DeleteLayer(layerID, groupID int) {
	desc := e.Map.LayerName(layerID)
	e.Map.DeleteLayer(layerID, groupID)
	if e.selectedLayer == layerID {
		e.selectGame()
	}
	e.NewEntry("Deleted layer", desc)
}

// DeleteGroup removes groupID and all of its layers as a single edit.
func (e *Editor) DeleteGroup(groupID int) {
	e.Map.DeleteGroup(groupID)
	if e.selectedGroup == groupID {
		e.selectGame()
	}
	e.NewEntry("Deleted group", fmt.Sprintf("Group %d", groupID))
}

// AddImage loads the png at path into the map's image list.
func (e *Editor) AddImage(path string) (int, error) {
	img, err := levels.LoadImage(path)
	if err != nil {
		return levels.NoImage, fmt.Errorf("editor: add image: %w", err)
	}
	id := e.Map.AddImage(img)
	e.NewEntry("Added image", path)
	return id, nil
}

func (e *Editor) DeleteImage(id int) {
	if !e.Map.IsValidImage(id) {
		panic(fmt.Sprintf("editor: image %d out of bounds", id))
	}
	desc := e.Map.Images[id].Name
	e.Map.DeleteImage(id)
	if !e.AutomapAvailable(e.selectedLayer) {
		e.automapRule = NoRule
	}
	e.NewEntry("Deleted image", desc)
}

// CreateGroup appends an empty group and returns its id.
func (e *Editor) CreateGroup() int {
	id := e.Map.AddGroup()
	e.NewEntry("New group", fmt.Sprintf("Group %d", id))
	return id
}

// CreateTileLayerUnder adds a tile layer right after underID in groupID, or at
// the top of the group when underID is -1.
func (e *Editor) CreateTileLayerUnder(underID, groupID int) int {
	id := e.Map.AddTileLayerUnder(underID, groupID)
	e.NewEntry("New tile layer", fmt.Sprintf("Tile %d", id))
	return id
}

func (e *Editor) CreateQuadLayerUnder(underID, groupID int) int {
	id := e.Map.AddQuadLayerUnder(underID, groupID)
	e.NewEntry("New Quad layer", fmt.Sprintf("Quad %d", id))
	return id
}

// SetLayerImage points layerID at image imageID, or levels.NoImage.
func (e *Editor) SetLayerImage(layerID, imageID int) {
	l := e.Map.Layers.Get(layerID)
	if imageID != levels.NoImage && !e.Map.IsValidImage(imageID) {
		panic(fmt.Sprintf("editor: image %d out of bounds", imageID))
	}
	old := l.ImageID
	if old == imageID {
		return
	}
	l.ImageID = imageID
	if layerID == e.selectedLayer {
		e.automapRule = NoRule
	}
	e.NewEntry(fmt.Sprintf("%s: changed image", e.Map.LayerName(layerID)),
		fmt.Sprintf("%s > %s", e.Map.ImageName(old), e.Map.ImageName(imageID)))
}

func (e *Editor) SetLayerHighDetail(layerID int, on bool) {
	l := e.Map.Layers.Get(layerID)
	if l.HighDetail == on {
		return
	}
	old := l.HighDetail
	l.HighDetail = on
	e.NewEntry(fmt.Sprintf("Layer %d: high detail", layerID), fmt.Sprintf("%s > %s", onOff(old), onOff(on)))
}

func (e *Editor) SetGroupClipping(groupID int, on bool) {
	g := e.Map.Groups.Get(groupID)
	if g.UseClipping == on {
		return
	}
	old := g.UseClipping
	g.UseClipping = on
	e.NewEntry(fmt.Sprintf("Group %d: use clipping", groupID), fmt.Sprintf("%t > %t", old, on))
}

// MoveGroup moves the group at listIndex by rel and returns its new index.
func (e *Editor) MoveGroup(listIndex, rel int) int {
	to := e.Map.MoveGroup(listIndex, rel)
	if to == listIndex {
		return listIndex
	}
	e.NewEntry(fmt.Sprintf("Group %d: change order", listIndex), fmt.Sprintf("%d > %d", listIndex, to))
	return to
}

// MoveLayer moves a layer one step inside its group or into the neighbouring
// group. It returns the group list index now holding the layer.
func (e *Editor) MoveLayer(groupIndex, layerIndex, rel int) int {
	if groupIndex < 0 || groupIndex >= len(e.Map.GroupOrder) {
		panic(fmt.Sprintf("editor: group list index %d out of bounds", groupIndex))
	}
	g := e.Map.Groups.Get(e.Map.GroupOrder[groupIndex])
	if layerIndex < 0 || layerIndex >= len(g.LayerIDs) {
		panic(fmt.Sprintf("editor: layer list index %d out of bounds", layerIndex))
	}
	layerID := g.LayerIDs[layerIndex]

	to, moved := e.Map.MoveLayer(groupIndex, layerIndex, rel)
	if !moved {
		return groupIndex
	}
	if to != groupIndex {
		if e.selectedLayer == layerID {
			e.selectedGroup = e.Map.GroupOrder[to]
		}
		e.NewEntry(fmt.Sprintf("Layer %d: change group", layerID), fmt.Sprintf("%d > %d", groupIndex, to))
		return to
	}
	e.NewEntry(fmt.Sprintf("Layer %d: change order", layerID), fmt.Sprintf("%d > %d", layerIndex, layerIndex+max(-1, min(1, rel))))
	return to
}

// FlipSelectionX mirrors the tiles under the tile selection of layerID. The
// brush is left alone.
func (e *Editor) FlipSelectionX(layerID int) bool {
	return e.transformSelection(layerID, tile.OpFlipX, "Flipped X")
}

func (e *Editor) FlipSelectionY(layerID int) bool {
	return e.transformSelection(layerID, tile.OpFlipY, "Flipped Y")
}

func (e *Editor) transformSelection(layerID int, op tile.Op, desc string) bool {
	l := e.mustTileLayer(layerID)
	// the selection is only kept fitted to the selected layer
	s := e.Selection
	s.FitLayer(l.Width(), l.Height())
	if !s.Active {
		return false
	}
	b := brush.Extract(l, s.StartX, s.StartY, s.EndX, s.EndY)
	b.Apply(op)
	if b.Stamp(l, s.StartX, s.StartY).Empty() {
		return false
	}
	e.NewEntry(fmt.Sprintf("Layer %d: tile selection", layerID), desc)
	return true
}

// ResizeTileLayer resizes layerID, keeping the top-left tiles.
func (e *Editor) ResizeTileLayer(layerID, w, h int) {
	l := e.mustTileLayer(layerID)
	oldW, oldH := l.Width(), l.Height()
	if !l.Resize(w, h) {
		return
	}
	if layerID == e.selectedLayer {
		e.Selection.FitLayer(w, h)
	}
	e.NewEntry(fmt.Sprintf("Layer %d: resized", layerID), fmt.Sprintf("(%d, %d) > (%d, %d)", oldW, oldH, w, h))
}

// AutomapLayer runs rulesetID over the whole of layerID.
func (e *Editor) AutomapLayer(layerID, rulesetID int) {
	l := e.mustTileLayer(layerID)
	b := e.bridge(layerID)
	automap.AutomapWhole(b, l.Tiles(), l.Width(), l.Height(), rulesetID)
	e.NewEntry(fmt.Sprintf("Layer %d: tileset automap", layerID), "Ruleset: "+b.RuleSetName(rulesetID))
}

// AutomapSection runs rulesetID over a w x h section of layerID.
func (e *Editor) AutomapSection(layerID, rulesetID, x, y, w, h int) {
	l := e.mustTileLayer(layerID)
	b := e.bridge(layerID)
	b.AutomapRegion(l.Tiles(), x, y, w, h, l.Width(), l.Height(), rulesetID)
	e.NewEntry(fmt.Sprintf("Layer %d: tileset automap section", layerID), "Ruleset: "+b.RuleSetName(rulesetID))
}

// The setters below back sliders and text fields: they always apply the value
// but only record an entry when commit is true, typically on release. A call
// whose value is already applied does nothing, even with commit set, so a drag
// must commit its last change rather than repeat the final value on release.
// Front ends that only learn about the release afterwards should restore the
// value from before the drag with commit false and then set the final one with
// commit true.

func (e *Editor) SetLayerName(layerID int, name string, commit bool) {
	l := e.Map.Layers.Get(layerID)
	if l.Name == name {
		return
	}
	old := l.Name
	l.Name = name
	if commit {
		e.NewEntry(fmt.Sprintf("Layer %d: changed name", layerID), fmt.Sprintf("'%s' -> '%s'", old, name))
	}
}

// SetLayerColor sets the "#rrggbb" or "#rrggbbaa" tint of layerID.
func (e *Editor) SetLayerColor(layerID int, color string, commit bool) {
	l := e.Map.Layers.Get(layerID)
	if l.Color == color {
		return
	}
	l.Color = color
	if commit {
		e.NewEntry(fmt.Sprintf("%s: changed layer color", e.Map.LayerName(layerID)), color)
	}
}

func (e *Editor) SetGroupName(groupID int, name string, commit bool) {
	g := e.Map.Groups.Get(groupID)
	if g.Name == name {
		return
	}
	old := g.Name
	g.Name = name
	if commit {
		e.NewEntry(fmt.Sprintf("Group %d: changed name", groupID), fmt.Sprintf("'%s' -> '%s'", old, name))
	}
}

func (e *Editor) SetGroupParallax(groupID, x, y int, commit bool) {
	g := e.Map.Groups.Get(groupID)
	if g.ParallaxX == x && g.ParallaxY == y {
		return
	}
	oldX, oldY := g.ParallaxX, g.ParallaxY
	g.ParallaxX, g.ParallaxY = x, y
	if commit {
		e.NewEntry(fmt.Sprintf("Group %d: changed parallax", groupID), fmt.Sprintf("(%d, %d) > (%d, %d)", oldX, oldY, x, y))
	}
}

func (e *Editor) SetGroupOffset(groupID, x, y int, commit bool) {
	g := e.Map.Groups.Get(groupID)
	if g.OffsetX == x && g.OffsetY == y {
		return
	}
	oldX, oldY := g.OffsetX, g.OffsetY
	g.OffsetX, g.OffsetY = x, y
	if commit {
		e.NewEntry(fmt.Sprintf("Group %d: changed offset", groupID), fmt.Sprintf("(%d, %d) > (%d, %d)", oldX, oldY, x, y))
	}
}

// SetGroupClipLeft moves the left clip edge, keeping the right edge in place.
func (e *Editor) SetGroupClipLeft(groupID, x int, commit bool) {
	g := e.Map.Groups.Get(groupID)
	if g.ClipX == x {
		return
	}
	oldX, oldW := g.ClipX, g.ClipWidth
	g.ClipWidth = max(0, g.ClipWidth+g.ClipX-x)
	g.ClipX = x
	if commit {
		e.NewEntry(fmt.Sprintf("Group %d: changed clip left", groupID), fmt.Sprintf("(%d, %d) > (%d, %d)", oldX, oldW, g.ClipX, g.ClipWidth))
	}
}

// SetGroupClipTop moves the top clip edge, keeping the bottom edge in place.
func (e *Editor) SetGroupClipTop(groupID, y int, commit bool) {
	g := e.Map.Groups.Get(groupID)
	if g.ClipY == y {
		return
	}
	oldY, oldH := g.ClipY, g.ClipHeight
	g.ClipHeight = max(0, g.ClipHeight+g.ClipY-y)
	g.ClipY = y
	if commit {
		e.NewEntry(fmt.Sprintf("Group %d: changed clip top", groupID), fmt.Sprintf("(%d, %d) > (%d, %d)", oldY, oldH, g.ClipY, g.ClipHeight))
	}
}

func (e *Editor) SetGroupClipRight(groupID, right int, commit bool) {
	g := e.Map.Groups.Get(groupID)
	if right-g.ClipX == g.ClipWidth {
		return
	}
	old := g.ClipWidth
	g.ClipWidth = max(0, right-g.ClipX)
	if commit {
		e.NewEntry(fmt.Sprintf("Group %d: changed clip width", groupID), fmt.Sprintf("%d > %d", old, g.ClipWidth))
	}
}

func (e *Editor) SetGroupClipBottom(groupID, bottom int, commit bool) {
	g := e.Map.Groups.Get(groupID)
	if bottom-g.ClipY == g.ClipHeight {
		return
	}
	old := g.ClipHeight
	g.ClipHeight = max(0, bottom-g.ClipY)
	if commit {
		e.NewEntry(fmt.Sprintf("Group %d: changed clip height", groupID), fmt.Sprintf("%d > %d", old, g.ClipHeight))
	}
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
