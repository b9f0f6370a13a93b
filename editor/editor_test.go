package editor

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/milk9111/mapedit/automap"
	"github.com/milk9111/mapedit/history"
	"github.com/milk9111/mapedit/levels"
	"github.com/milk9111/mapedit/tile"
)

// testSource serves one ruleset for the "test" image: every tile becomes 1,
// or 2 when the tile above is empty.
type testSource struct{}

func (testSource) Bridge(name string) (automap.Bridge, error) {
	if name != "test" {
		return nil, automap.ErrNoRuleFile
	}
	return &automap.Mapper{Image: name, RuleSets: []automap.RuleSet{
		automap.NewRules("Top", automap.MatchFull, []automap.Rule{
			{Index: 1},
			{Index: 2, Conditions: []automap.Condition{{X: 0, Y: -1, Match: automap.MatchEmpty}}},
		}),
	}}, nil
}

// newTestEditor returns an editor on an 8x6 map with a "test" tile layer
// selected above the game layer.
func newTestEditor(t *testing.T, capacity int) (*Editor, int) {
	t.Helper()
	m := levels.New(8, 6)
	m.Path = "maps/test.json"
	img := m.AddImage(levels.Image{Name: "test", Width: 256, Height: 256})
	layer := m.AddTileLayerUnder(-1, m.GameGroupID)
	m.Layers.Get(layer).ImageID = img

	e := New(m, Options{HistorySize: capacity, Automap: testSource{}})
	e.SelectLayer(layer, m.GameGroupID)
	return e, layer
}

func idx(e *Editor, layer, x, y int) uint8 {
	return e.Map.Layers.Get(layer).Tile(x, y).Index
}

func currentAction(e *Editor) string {
	return e.History.Info(e.History.Current()).Action
}

func TestLoadMapSeedsHistory(t *testing.T) {
	e, _ := newTestEditor(t, 0)
	info := e.History.Info(e.History.Current())
	if info.Action != "Map loaded" || info.Description != "maps/test.json" {
		t.Fatalf("unexpected seed entry %+v", info)
	}
	if e.History.Cap() != history.DefaultCapacity {
		t.Fatalf("expected capacity %d, got %d", history.DefaultCapacity, e.History.Cap())
	}
	if e.History.CanUndo() || e.History.CanRedo() {
		t.Fatalf("fresh history should have nothing to undo or redo")
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	e, layer := newTestEditor(t, 0)
	e.SetBrush([]tile.Tile{{Index: 5}}, 1, 1)
	if !e.PaintStamp(layer, 3, 2) {
		t.Fatalf("expected paint to be recorded")
	}
	if got := currentAction(e); got != "Layer 1: brush paint" {
		t.Fatalf("unexpected action %q", got)
	}

	if !e.Undo() {
		t.Fatalf("expected undo")
	}
	if idx(e, layer, 3, 2) != 0 {
		t.Fatalf("undo did not restore the tile")
	}
	if e.SelectedLayerID() != e.Map.GameLayerID {
		t.Fatalf("undo should restore the selection of the seed entry, got layer %d", e.SelectedLayerID())
	}

	if !e.Redo() {
		t.Fatalf("expected redo")
	}
	if idx(e, layer, 3, 2) != 5 {
		t.Fatalf("redo did not restore the tile")
	}
	if e.SelectedLayerID() != layer {
		t.Fatalf("redo should select layer %d, got %d", layer, e.SelectedLayerID())
	}
	if e.Redo() {
		t.Fatalf("redo at the end of the timeline should be a no-op")
	}
}

func TestNewEditDropsRedo(t *testing.T) {
	e, layer := newTestEditor(t, 0)
	e.SetBrush([]tile.Tile{{Index: 5}}, 1, 1)
	e.PaintStamp(layer, 0, 0)
	e.PaintStamp(layer, 1, 0)
	e.Undo()
	e.Undo()

	e.SetBrush([]tile.Tile{{Index: 7}}, 1, 1)
	e.PaintStamp(layer, 2, 0)
	if e.Redo() {
		t.Fatalf("redo after a new edit should be a no-op")
	}
	if idx(e, layer, 0, 0) != 0 || idx(e, layer, 2, 0) != 7 {
		t.Fatalf("unexpected tiles after new edit")
	}
	if got := len(e.History.Timeline()); got != 2 {
		t.Fatalf("expected 2 entries in the timeline, got %d", got)
	}
}

func TestHistoryRecyclesOldestEdit(t *testing.T) {
	const capacity = 5
	e, layer := newTestEditor(t, capacity)
	for i := 0; i < capacity+1; i++ {
		e.SetBrush([]tile.Tile{{Index: uint8(i + 1)}}, 1, 1)
		e.PaintStamp(layer, i, 0)
	}

	if got := len(e.History.Timeline()); got != capacity {
		t.Fatalf("expected %d entries, got %d", capacity, got)
	}
	undos := 0
	for e.Undo() {
		undos++
	}
	if undos != capacity-1 {
		t.Fatalf("expected %d undos, got %d", capacity-1, undos)
	}
	if got := currentAction(e); got == "Map loaded" {
		t.Fatalf("the seed entry should have been recycled")
	}
	// the oldest surviving entry is the second edit
	if idx(e, layer, 1, 0) != 2 || idx(e, layer, 2, 0) != 0 {
		t.Fatalf("expected the state after the second edit, got %d %d", idx(e, layer, 1, 0), idx(e, layer, 2, 0))
	}
}

func TestUIRestoreDropsBrushAndSelection(t *testing.T) {
	e, layer := newTestEditor(t, 0)
	e.SetTool(ToolBrush)
	e.SetBrush([]tile.Tile{{Index: 5}}, 1, 1)
	e.PaintStamp(layer, 0, 0)

	e.SetTool(ToolSelect)
	e.ReleaseDrag(0, 0, 2, 2)
	e.SetBrush([]tile.Tile{{Index: 6}}, 1, 1)

	e.Undo()
	e.Redo()
	if !e.Brush.IsEmpty() {
		t.Fatalf("restore should clear the brush")
	}
	if e.Selection.Active {
		t.Fatalf("restore should drop the tile selection")
	}
	if e.Tool() != ToolBrush {
		t.Fatalf("expected the recorded tool %v, got %v", ToolBrush, e.Tool())
	}
}

func TestRestoreToEntry(t *testing.T) {
	e, layer := newTestEditor(t, 0)
	e.SetBrush([]tile.Tile{{Index: 5}}, 1, 1)
	e.PaintStamp(layer, 0, 0)
	e.PaintStamp(layer, 1, 0)

	first := e.History.Timeline()[1]
	e.RestoreToEntry(first)
	if idx(e, layer, 0, 0) != 5 || idx(e, layer, 1, 0) != 0 {
		t.Fatalf("unexpected tiles after restore")
	}
	if !e.History.CanRedo() {
		t.Fatalf("restoring an older entry should keep the redo branch")
	}
}

func TestJumpToCurrentEntryKeepsBrush(t *testing.T) {
	e, layer := newTestEditor(t, 0)
	e.SetTool(ToolBrush)
	e.SetBrush([]tile.Tile{{Index: 5}}, 1, 1)
	e.ReleaseDrag(0, 0, 0, 0)

	// the history list reports the row it just showed
	if e.JumpToEntry(e.History.Current()) {
		t.Fatalf("jumping to the current entry should be a no-op")
	}
	if e.Brush.IsEmpty() {
		t.Fatalf("the brush should survive a jump to the current entry")
	}
	n := e.History.Len()
	e.ReleaseDrag(1, 0, 1, 0)
	if e.History.Len() != n+1 || idx(e, layer, 1, 0) != 5 {
		t.Fatalf("second click should paint again, got index %d", idx(e, layer, 1, 0))
	}

	if !e.JumpToEntry(e.History.Timeline()[0]) {
		t.Fatalf("jumping to an older entry should restore it")
	}
	if !e.Brush.IsEmpty() || idx(e, layer, 0, 0) != 0 {
		t.Fatalf("restore should clear the brush and the painted tiles")
	}
}

func TestReleaseDragBrushProtocol(t *testing.T) {
	e, layer := newTestEditor(t, 0)
	l := e.Map.Layers.Get(layer)
	l.SetTile(0, 0, tile.Tile{Index: 3})
	l.SetTile(1, 0, tile.Tile{Index: 4})

	e.SetTool(ToolBrush)
	if !e.SelectingSource() {
		t.Fatalf("empty brush should select a source region")
	}
	before := e.History.Len()
	e.ReleaseDrag(1, 0, 0, 0)
	if e.SelectingSource() || e.Brush.Width != 2 || e.Brush.Height != 1 {
		t.Fatalf("expected a 2x1 brush, got %dx%d", e.Brush.Width, e.Brush.Height)
	}
	if e.History.Len() != before {
		t.Fatalf("picking up a brush should not record history")
	}

	cases := []struct {
		name                       string
		startX, startY, endX, endY int
		desc                       string
	}{
		{"click", 4, 4, 4, 4, "at (4, 4)"},
		{"drag", 5, 3, 2, 1, "at (2, 1)(4, 3)"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			n := e.History.Len()
			e.ReleaseDrag(c.startX, c.startY, c.endX, c.endY)
			if e.History.Len() != n+1 {
				t.Fatalf("expected exactly one entry")
			}
			info := e.History.Info(e.History.Current())
			if info.Action != "Layer 1: brush paint" || info.Description != c.desc {
				t.Fatalf("unexpected entry %+v", info)
			}
		})
	}
	if idx(e, layer, 2, 1) != 3 || idx(e, layer, 3, 1) != 4 || idx(e, layer, 4, 1) != 3 {
		t.Fatalf("fill did not repeat the brush from the rectangle origin")
	}
}

func TestReleaseDragAutomap(t *testing.T) {
	e, layer := newTestEditor(t, 0)
	e.SetTool(ToolBrush)
	e.SetBrush([]tile.Tile{{Index: 9}}, 1, 1)
	e.SetAutomapRule(0)

	e.ReleaseDrag(2, 2, 2, 2)
	if got := currentAction(e); got != "Layer 1: brush paint auto" {
		t.Fatalf("unexpected action %q", got)
	}
	if idx(e, layer, 2, 2) != 2 {
		t.Fatalf("expected automapped index 2, got %d", idx(e, layer, 2, 2))
	}

	e.ReleaseDrag(2, 3, 2, 4)
	if idx(e, layer, 2, 2) != 2 || idx(e, layer, 2, 3) != 1 || idx(e, layer, 2, 4) != 1 {
		t.Fatalf("expected a column of 2 1 1, got %d %d %d", idx(e, layer, 2, 2), idx(e, layer, 2, 3), idx(e, layer, 2, 4))
	}

	e.SelectLayer(e.Map.GameLayerID, e.Map.GameGroupID)
	if e.AutomapRule() != NoRule {
		t.Fatalf("changing layer should reset the automap rule")
	}
	if e.AutomapAvailable(e.Map.GameLayerID) {
		t.Fatalf("game layer has no image and no rules")
	}
}

func TestSelectToolSelection(t *testing.T) {
	e, _ := newTestEditor(t, 0)
	e.ReleaseDrag(5, 5, 3, 7)
	s := e.Selection
	if !s.Active || s.StartX != 3 || s.StartY != 5 || s.EndX != 5 || s.EndY != 5 {
		t.Fatalf("unexpected selection %+v", s)
	}

	e.ResizeTileLayer(e.SelectedLayerID(), 2, 2)
	if e.Selection.Active {
		t.Fatalf("selection outside the resized layer should be dropped")
	}
}

func TestSetToolLeavingBrushClearsIt(t *testing.T) {
	e, _ := newTestEditor(t, 0)
	e.SetTool(ToolBrush)
	e.SetBrush([]tile.Tile{{Index: 1}}, 1, 1)
	e.SetTool(ToolBrush)
	if e.Brush.IsEmpty() {
		t.Fatalf("selecting the same tool should keep the brush")
	}
	e.SetTool(ToolDimension)
	if !e.Brush.IsEmpty() {
		t.Fatalf("leaving the brush tool should clear the brush")
	}
}

func TestPaintOutsideRecordsNothing(t *testing.T) {
	e, layer := newTestEditor(t, 0)
	e.SetBrush([]tile.Tile{{Index: 1}}, 1, 1)
	n := e.History.Len()
	if e.PaintStamp(layer, -3, -3) || e.PaintFillRectRepeat(layer, 20, 20, 2, 2) {
		t.Fatalf("painting outside the layer should report false")
	}
	if e.History.Len() != n {
		t.Fatalf("painting outside the layer should not record history")
	}
}

func TestExec(t *testing.T) {
	e, layer := newTestEditor(t, 0)
	e.MapsDir = t.TempDir()
	e.SetBrush([]tile.Tile{{Index: 4}}, 1, 1)
	e.PaintStamp(layer, 1, 1)

	if err := e.Exec("save level1"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if want := filepath.Join(e.MapsDir, "level1.json"); e.Map.Path != want {
		t.Fatalf("expected path %s, got %s", want, e.Map.Path)
	}
	if err := e.Exec("undo"); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if idx(e, layer, 1, 1) != 0 {
		t.Fatalf("undo did not run")
	}

	if err := e.Exec("load level1.json"); err != nil {
		t.Fatalf("load: %v", err)
	}
	// ids are handed out again in file order on load
	layer = e.Map.Groups.Get(e.Map.GameGroupID).LayerIDs[0]
	if idx(e, layer, 1, 1) != 4 {
		t.Fatalf("loaded map lost the painted tile")
	}
	if e.History.CanUndo() {
		t.Fatalf("loading should reset history")
	}

	if err := e.Exec("explode"); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand, got %v", err)
	}
	if err := e.Exec("delete_image 7"); err == nil {
		t.Fatalf("expected error for a missing image")
	}
	if err := e.Exec("load missing"); err == nil {
		t.Fatalf("expected error for a missing map")
	}
	if err := e.Exec("delete_image 0"); err != nil {
		t.Fatalf("delete_image: %v", err)
	}
	if got := currentAction(e); got != "Deleted image" {
		t.Fatalf("unexpected action %q", got)
	}
}

func TestExecEdits(t *testing.T) {
	cases := []struct {
		line   string
		action string
		check  func(e *Editor, layer int) bool
	}{
		{"rename Floor", "Layer 1: changed name", func(e *Editor, layer int) bool {
			return e.Map.Layers.Get(layer).Name == "Floor"
		}},
		{"color #ff000080", "Walls 1: changed layer color", nil},
		{"resize 4 3", "Layer 1: resized", func(e *Editor, layer int) bool {
			l := e.Map.Layers.Get(layer)
			return l.Width() == 4 && l.Height() == 3 && e.Selection.EndX <= 3
		}},
		{"high_detail on", "Layer 1: high detail", func(e *Editor, layer int) bool {
			return e.Map.Layers.Get(layer).HighDetail
		}},
		{"image none", "Walls 1: changed image", func(e *Editor, layer int) bool {
			return e.Map.Layers.Get(layer).ImageID == levels.NoImage
		}},
		{"new_group", "New group", func(e *Editor, _ int) bool {
			return len(e.Map.GroupOrder) == 2
		}},
		{"new_layer", "New tile layer", func(e *Editor, layer int) bool {
			return e.SelectedLayerID() != layer && e.SelectedLayer().IsTileLayer()
		}},
		{"new_quad", "New Quad layer", func(e *Editor, _ int) bool {
			return e.SelectedLayer().IsQuadLayer()
		}},
		{"group_name Back", "Group 0: changed name", nil},
		{"parallax 50 100", "Group 0: changed parallax", func(e *Editor, _ int) bool {
			return e.Map.Groups.Get(e.SelectedGroupID()).ParallaxX == 50
		}},
		{"offset -3 4", "Group 0: changed offset", nil},
		{"clipping on", "Group 0: use clipping", nil},
		{"automap 0", "Layer 1: tileset automap", func(e *Editor, layer int) bool {
			return idx(e, layer, 1, 1) == 2 && idx(e, layer, 1, 2) == 1
		}},
		{"automap 0 1 2 1 1", "Layer 1: tileset automap section", func(e *Editor, layer int) bool {
			return idx(e, layer, 1, 2) == 1
		}},
	}
	for _, c := range cases {
		t.Run(c.line, func(t *testing.T) {
			e, layer := newTestEditor(t, 0)
			e.SetLayerName(layer, "Walls", false)
			e.SetBrush([]tile.Tile{{Index: 4}, {Index: 4}}, 1, 2)
			e.PaintStamp(layer, 1, 1)
			e.ReleaseDrag(0, 0, 7, 5)
			n := e.History.Len()

			if err := e.Exec(c.line); err != nil {
				t.Fatalf("exec: %v", err)
			}
			if e.History.Len() != n+1 {
				t.Fatalf("expected one entry, got %d", e.History.Len()-n)
			}
			if got := currentAction(e); got != c.action {
				t.Fatalf("expected action %q, got %q", c.action, got)
			}
			if c.check != nil && !c.check(e, layer) {
				t.Fatalf("%q did not apply", c.line)
			}
		})
	}

	e, _ := newTestEditor(t, 0)
	if err := e.Exec("new_group"); err != nil {
		t.Fatalf("new_group: %v", err)
	}
	if err := e.Exec("move_group 1"); err != nil {
		t.Fatalf("move_group: %v", err)
	}
	if e.Map.GroupOrder[1] != e.Map.GameGroupID {
		t.Fatalf("game group was not moved down")
	}
	if got := currentAction(e); got != "Group 0: change order" {
		t.Fatalf("unexpected action %q", got)
	}
}

func TestExecRejectsBadArguments(t *testing.T) {
	lines := []string{
		"rename",
		"color red",
		"color #12345",
		"resize 4",
		"resize 0 3",
		"resize a b",
		"high_detail maybe",
		"image 5",
		"parallax 1",
		"move_group up",
		"automap 3",
		"automap 0 1 1",
		"automap 0 6 0 4 4",
	}
	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			e, _ := newTestEditor(t, 0)
			n := e.History.Len()
			if err := e.Exec(line); err == nil {
				t.Fatalf("expected an error")
			}
			if e.History.Len() != n {
				t.Fatalf("a rejected command recorded history")
			}
		})
	}

	e, _ := newTestEditor(t, 0)
	e.SelectLayer(e.Map.GameLayerID, e.Map.GameGroupID)
	if err := e.Exec("automap 0"); err == nil {
		t.Fatalf("expected an error on a layer without rules")
	}
}

func TestMapPath(t *testing.T) {
	e, _ := newTestEditor(t, 0)
	cases := []struct {
		name string
		want string
	}{
		{"level", filepath.Join("maps", "level.json")},
		{"level.json", filepath.Join("maps", "level.json")},
		{"maps/level", filepath.Join("maps", "level.json")},
		{"sub/level.JSON", filepath.Join("maps", "sub", "level.JSON")},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := e.MapPath(c.name); got != c.want {
				t.Fatalf("expected %s, got %s", c.want, got)
			}
		})
	}
}
