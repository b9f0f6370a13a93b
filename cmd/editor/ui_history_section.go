package main

import (
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/milk9111/mapedit/history"
)

// addHistorySection lists the undo timeline. Picking a row jumps straight to
// that entry.
func addHistorySection(parent *widget.Container, fontFace *text.Face, onEntrySelected func(history.Ref)) *HistoryPanel {
	parent.AddChild(newSectionLabel(fontFace, "History"))

	hp := &HistoryPanel{}
	hp.list = widget.NewList(
		widget.ListOpts.Entries([]any{}),
		widget.ListOpts.ContainerOpts(widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(rightPanelWidth-16, 360),
		)),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			if entry, ok := e.(HistoryEntry); ok {
				return entry.Label
			}
			return ""
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			entry, ok := args.Entry.(HistoryEntry)
			if !ok || onEntrySelected == nil {
				return
			}
			onEntrySelected(entry.Ref)
		}),
	)
	parent.AddChild(hp.list)
	return hp
}
