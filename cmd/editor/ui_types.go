package main

import (
	"fmt"

	"github.com/ebitenui/ebitenui/widget"

	"github.com/milk9111/mapedit/editor"
	"github.com/milk9111/mapedit/history"
	"github.com/milk9111/mapedit/levels"
)

// LayerEntry is one row of the layer list.
type LayerEntry struct {
	GroupID int
	LayerID int
	Label   string
}

// HistoryEntry is one row of the history list, oldest first.
type HistoryEntry struct {
	Ref   history.Ref
	Label string
}

// RuleEntry is one row of the automap ruleset list. ID is editor.NoRule for
// the "no automap" row.
type RuleEntry struct {
	ID   int
	Name string
}

// listPanel wraps a widget.List whose selection mirrors editor state.
//
// ebitenui queues selection events until the next UI update, so a row picked
// here is reported back to the handlers like a click. Handlers must treat a
// pick of the state already shown as a no-op.
type listPanel struct {
	list    *widget.List
	entries []any
}

func (lp *listPanel) SetEntries(entries []any) {
	lp.entries = entries
	lp.list.SetEntries(entries)
}

func (lp *listPanel) selectWhere(match func(any) bool) {
	for _, e := range lp.entries {
		if match(e) {
			lp.list.SetSelectedEntry(e)
			return
		}
	}
}

type LayerPanel struct{ listPanel }

func (lp *LayerPanel) SelectLayer(layerID int) {
	lp.selectWhere(func(e any) bool { return e.(LayerEntry).LayerID == layerID })
}

type HistoryPanel struct{ listPanel }

func (hp *HistoryPanel) SelectRef(r history.Ref) {
	hp.selectWhere(func(e any) bool { return e.(HistoryEntry).Ref == r })
}

type RulesPanel struct{ listPanel }

func (rp *RulesPanel) SelectRule(id int) {
	rp.selectWhere(func(e any) bool { return e.(RuleEntry).ID == id })
}

func layerEntries(m *levels.Map) []any {
	var entries []any
	for _, gid := range m.GroupOrder {
		grp := m.Groups.Get(gid)
		gname := grp.Name
		if gname == "" {
			gname = fmt.Sprintf("Group %d", gid)
		}
		for _, lid := range grp.LayerIDs {
			label := fmt.Sprintf("%s / %s", gname, m.LayerName(lid))
			if lid == m.GameLayerID {
				label += " (game)"
			}
			entries = append(entries, LayerEntry{GroupID: gid, LayerID: lid, Label: label})
		}
	}
	return entries
}

func historyEntries(p *history.Pool[editor.Snapshot]) []any {
	refs := p.Timeline()
	entries := make([]any, len(refs))
	for i, r := range refs {
		info := p.Info(r)
		label := info.Action
		if info.Description != "" {
			label += ": " + info.Description
		}
		entries[i] = HistoryEntry{Ref: r, Label: label}
	}
	return entries
}

func ruleEntries(names []string) []any {
	if len(names) == 0 {
		return nil
	}
	entries := []any{RuleEntry{ID: editor.NoRule, Name: "No automap"}}
	for i, n := range names {
		entries = append(entries, RuleEntry{ID: i, Name: n})
	}
	return entries
}
