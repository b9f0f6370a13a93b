// Package editor is the map editing session: selection state, the tile brush,
// painting and every structural edit, each recorded as one history entry.
package editor

import (
	"fmt"
	"log"

	"github.com/milk9111/mapedit/automap"
	"github.com/milk9111/mapedit/brush"
	"github.com/milk9111/mapedit/history"
	"github.com/milk9111/mapedit/levels"
	"github.com/milk9111/mapedit/tile"
)

// NoRule disables automapping while painting.
const NoRule = -1

type Options struct {
	HistorySize int
	MapsDir     string
	// Automap finds rules for tileset images. Nil disables automapping.
	Automap automap.Source
}

type Editor struct {
	Map       *levels.Map
	History   *history.Pool[Snapshot]
	Brush     brush.Brush
	Selection brush.Selection
	Automap   automap.Source
	MapsDir   string

	tool          Tool
	selectedLayer int
	selectedGroup int
	automapRule   int
}

// New starts a session on m.
func New(m *levels.Map, opts Options) *Editor {
	size := opts.HistorySize
	if size == 0 {
		size = history.DefaultCapacity
	}
	mapsDir := opts.MapsDir
	if mapsDir == "" {
		mapsDir = "maps"
	}
	e := &Editor{Automap: opts.Automap, MapsDir: mapsDir, automapRule: NoRule}
	e.History = history.New[Snapshot](size, snapshotCodec{e})
	e.LoadMap(m)
	return e
}

// LoadMap replaces the edited map and starts a fresh history.
func (e *Editor) LoadMap(m *levels.Map) {
	if m == nil {
		panic("editor: load of a nil map")
	}
	e.Map = m
	e.selectedLayer = m.GameLayerID
	e.selectedGroup = m.GameGroupID
	e.tool = ToolSelect
	e.automapRule = NoRule
	e.Brush.Clear()
	e.Selection.Deselect()

	e.History.Seed("Map loaded", m.Path)
	snap := e.History.Snapshot(e.History.Current())
	log.Printf("editor: loaded %q, %d groups, %d layers, snapshot %d bytes",
		m.Path, m.Groups.Count(), m.Layers.Count(), snap.Map.Size())
}

// NewEntry records the current state as a new history entry. It must be called
// after the mutation it describes.
func (e *Editor) NewEntry(action, desc string) history.Ref {
	return e.History.NewEntry(action, desc)
}

func (e *Editor) Undo() bool { return e.History.Undo() }
func (e *Editor) Redo() bool { return e.History.Redo() }

func (e *Editor) RestoreToEntry(r history.Ref) { e.History.RestoreToEntry(r) }

// JumpToEntry restores r unless it is already the current entry. History
// lists report the row they show back as a pick, and restoring the current
// entry would drop the brush and tile selection. It reports whether r was
// restored.
func (e *Editor) JumpToEntry(r history.Ref) bool {
	if r == e.History.Current() {
		return false
	}
	e.RestoreToEntry(r)
	return true
}

func (e *Editor) Tool() Tool { return e.tool }

// SetTool switches tools. Leaving the brush tool drops the brush.
func (e *Editor) SetTool(t Tool) {
	if t < 0 || t >= toolCount {
		panic(fmt.Sprintf("editor: invalid tool %d", t))
	}
	if e.tool == t {
		return
	}
	if e.tool == ToolBrush {
		e.Brush.Clear()
	}
	e.tool = t
}

// SelectingSource reports whether the next brush drag picks up tiles instead
// of painting.
func (e *Editor) SelectingSource() bool {
	return e.tool == ToolBrush && e.Brush.IsEmpty()
}

func (e *Editor) SelectedLayerID() int { return e.selectedLayer }
func (e *Editor) SelectedGroupID() int { return e.selectedGroup }

func (e *Editor) SelectedLayer() *levels.Layer { return e.Map.Layers.Get(e.selectedLayer) }

// SelectLayer selects layerID inside groupID. The automap rule is reset when
// the layer changes and the tile selection is fitted to the new layer.
func (e *Editor) SelectLayer(layerID, groupID int) {
	l := e.Map.Layers.Get(layerID)
	g := e.Map.Groups.Get(groupID)
	if g.IndexOf(layerID) == -1 {
		panic(fmt.Sprintf("editor: layer %d is not in group %d", layerID, groupID))
	}
	if layerID != e.selectedLayer {
		e.automapRule = NoRule
	}
	e.selectedLayer = layerID
	e.selectedGroup = groupID
	if l.IsTileLayer() {
		e.Selection.FitLayer(l.Width(), l.Height())
	} else {
		e.Selection.Deselect()
	}
}

func (e *Editor) selectGame() {
	e.SelectLayer(e.Map.GameLayerID, e.Map.GameGroupID)
}

// SetBrush replaces the brush with a copy of tiles.
func (e *Editor) SetBrush(tiles []tile.Tile, w, h int) { e.Brush.Set(tiles, w, h) }

func (e *Editor) ClearBrush() { e.Brush.Clear() }

func (e *Editor) FlipX()     { e.Brush.FlipX() }
func (e *Editor) FlipY()     { e.Brush.FlipY() }
func (e *Editor) RotateCW()  { e.Brush.RotateCW() }
func (e *Editor) RotateCCW() { e.Brush.RotateCCW() }

func (e *Editor) AutomapRule() int { return e.automapRule }

// SetAutomapRule picks the ruleset used when painting on the selected layer,
// or NoRule.
func (e *Editor) SetAutomapRule(id int) {
	if id == NoRule {
		e.automapRule = NoRule
		return
	}
	b := e.bridge(e.selectedLayer)
	if id < 0 || id >= b.RuleSetCount() {
		panic(fmt.Sprintf("editor: ruleset %d out of range", id))
	}
	e.automapRule = id
}

// AutomapAvailable reports whether layerID is a tile layer whose image has
// automap rules.
func (e *Editor) AutomapAvailable(layerID int) bool {
	return len(e.RuleSetNames(layerID)) > 0
}

// RuleSetNames lists the automap rulesets usable on layerID.
func (e *Editor) RuleSetNames(layerID int) []string {
	if e.Automap == nil {
		return nil
	}
	l := e.Map.Layers.Get(layerID)
	if !l.IsTileLayer() || !e.Map.IsValidImage(l.ImageID) {
		return nil
	}
	b, err := e.Automap.Bridge(e.Map.Images[l.ImageID].Name)
	if err != nil {
		return nil
	}
	names := make([]string, b.RuleSetCount())
	for i := range names {
		names[i] = b.RuleSetName(i)
	}
	return names
}

// bridge returns the automapper of layerID's image. A missing mapper is a
// caller bug: the UI only offers automapping when AutomapAvailable is true.
func (e *Editor) bridge(layerID int) automap.Bridge {
	l := e.Map.Layers.Get(layerID)
	if !e.Map.IsValidImage(l.ImageID) {
		panic(fmt.Sprintf("editor: layer %d has no valid image", layerID))
	}
	if e.Automap == nil {
		panic("editor: no automap source")
	}
	b, err := e.Automap.Bridge(e.Map.Images[l.ImageID].Name)
	if err != nil {
		panic(fmt.Sprintf("editor: tileset mapper not found: %v", err))
	}
	return b
}

func (e *Editor) mustTileLayer(layerID int) *levels.Layer {
	l := e.Map.Layers.Get(layerID)
	if !l.IsTileLayer() {
		panic(fmt.Sprintf("editor: layer %d is not a tile layer", layerID))
	}
	return l
}
