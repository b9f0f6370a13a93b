package editor

import (
	"fmt"

	"github.com/milk9111/mapedit/levels"
)

type Tool int

const (
	ToolSelect Tool = iota
	ToolDimension
	ToolBrush
	toolCount
)

func (t Tool) String() string {
	switch t {
	case ToolSelect:
		return "Select"
	case ToolDimension:
		return "Dimension"
	case ToolBrush:
		return "Brush"
	default:
		return fmt.Sprintf("Tool(%d)", int(t))
	}
}

// UISnapshot is the part of the editor state recorded next to each map
// snapshot. Its ids are always valid against the map snapshot stored with it.
type UISnapshot struct {
	SelectedLayerID int
	SelectedGroupID int
	Tool            Tool
}

// Snapshot is one history entry's payload.
type Snapshot struct {
	Map *levels.Snapshot
	UI  UISnapshot
}

// snapshotCodec captures and restores an editor's map and UI state together.
type snapshotCodec struct {
	e *Editor
}

func (c snapshotCodec) Save() Snapshot {
	return Snapshot{Map: c.e.Map.SaveSnapshot(), UI: c.e.saveUISnapshot()}
}

func (c snapshotCodec) Restore(s Snapshot) {
	c.e.Map.RestoreSnapshot(s.Map)
	c.e.restoreUISnapshot(s.UI)
}

func (e *Editor) saveUISnapshot() UISnapshot {
	return UISnapshot{
		SelectedLayerID: e.selectedLayer,
		SelectedGroupID: e.selectedGroup,
		Tool:            e.tool,
	}
}

// restoreUISnapshot must run after the map was restored. Brush and tile
// selection are not part of history and are dropped.
func (e *Editor) restoreUISnapshot(s UISnapshot) {
	if !e.Map.Layers.IsValid(s.SelectedLayerID) {
		panic(fmt.Sprintf("editor: restored selected layer %d is invalid", s.SelectedLayerID))
	}
	if !e.Map.Groups.IsValid(s.SelectedGroupID) {
		panic(fmt.Sprintf("editor: restored selected group %d is invalid", s.SelectedGroupID))
	}
	e.selectedLayer = s.SelectedLayerID
	e.selectedGroup = s.SelectedGroupID
	e.tool = s.Tool
	e.Brush.Clear()
	e.Selection.Deselect()
}
