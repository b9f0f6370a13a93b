package main

import (
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

func addRulesSection(parent *widget.Container, theme *widget.Theme, fontFace *text.Face, h Handlers) *RulesPanel {
	parent.AddChild(newSectionLabel(fontFace, "Automap"))

	rp := &RulesPanel{}
	rp.list = widget.NewList(
		widget.ListOpts.Entries([]any{}),
		widget.ListOpts.ContainerOpts(widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(rightPanelWidth-16, 160),
		)),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			if entry, ok := e.(RuleEntry); ok {
				return entry.Name
			}
			return ""
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			entry, ok := args.Entry.(RuleEntry)
			if !ok || h.OnRuleSelected == nil {
				return
			}
			h.OnRuleSelected(entry.ID)
		}),
	)
	parent.AddChild(rp.list)

	row := newButtonRow()
	row.AddChild(newButton(theme, fontFace, "Automap layer", h.OnAutomapLayer))
	parent.AddChild(row)
	return rp
}
