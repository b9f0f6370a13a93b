package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/milk9111/mapedit/editor"
)

var toolOrder = []editor.Tool{editor.ToolSelect, editor.ToolDimension, editor.ToolBrush}

// ToolBar contains the radio-group state for the floating tool buttons.
type ToolBar struct {
	group   *widget.RadioGroup
	buttons []*widget.Button
}

// SetTool shows t as active. The change is reported back through the radio
// group on the next UI update; Editor.SetTool ignores the unchanged tool.
func (tb *ToolBar) SetTool(t editor.Tool) {
	for i, tool := range toolOrder {
		if tool == t {
			tb.group.SetActive(tb.buttons[i])
			return
		}
	}
}

func buildToolBar(theme *widget.Theme, fontFace *text.Face, onToolSelected func(editor.Tool), initialTool editor.Tool) (*widget.Container, *ToolBar) {
	toolbar := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(260, 48),
		),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(8),
			),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{220, 220, 240, 255})),
	)

	tb := &ToolBar{}
	for _, tool := range toolOrder {
		btn := widget.NewButton(
			widget.ButtonOpts.Image(theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(tool.String(), fontFace, toolButtonColor),
			widget.ButtonOpts.ToggleMode(),
			widget.ButtonOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(72, 40),
			),
		)
		tb.buttons = append(tb.buttons, btn)
		toolbar.AddChild(btn)
	}

	elements := make([]widget.RadioGroupElement, 0, len(tb.buttons))
	for _, b := range tb.buttons {
		elements = append(elements, b)
	}

	tb.group = widget.NewRadioGroup(
		widget.RadioGroupOpts.Elements(elements...),
		widget.RadioGroupOpts.ChangedHandler(func(args *widget.RadioGroupChangedEventArgs) {
			if onToolSelected == nil {
				return
			}
			for i, b := range tb.buttons {
				if args.Active == b {
					onToolSelected(toolOrder[i])
					return
				}
			}
		}),
	)
	tb.SetTool(initialTool)

	return toolbar, tb
}
