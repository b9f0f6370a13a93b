package main

import (
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

func addLayersSection(parent *widget.Container, theme *widget.Theme, fontFace *text.Face, h Handlers) *LayerPanel {
	parent.AddChild(newSectionLabel(fontFace, "Layers"))

	lp := &LayerPanel{}
	lp.list = widget.NewList(
		widget.ListOpts.Entries([]any{}),
		widget.ListOpts.ContainerOpts(widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(leftPanelWidth-16, 320),
		)),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			if entry, ok := e.(LayerEntry); ok {
				return entry.Label
			}
			return ""
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			entry, ok := args.Entry.(LayerEntry)
			if !ok || h.OnLayerSelected == nil {
				return
			}
			h.OnLayerSelected(entry.LayerID, entry.GroupID)
		}),
	)
	parent.AddChild(lp.list)

	buttonsRow := newButtonRow()
	buttonsRow.AddChild(newButton(theme, fontFace, "New", h.OnNewTileLayer))
	buttonsRow.AddChild(newButton(theme, fontFace, "Up", func() {
		if h.OnMoveLayer != nil {
			h.OnMoveLayer(-1)
		}
	}))
	buttonsRow.AddChild(newButton(theme, fontFace, "Down", func() {
		if h.OnMoveLayer != nil {
			h.OnMoveLayer(1)
		}
	}))
	buttonsRow.AddChild(newButton(theme, fontFace, "Delete", h.OnDeleteLayer))
	parent.AddChild(buttonsRow)

	return lp
}
