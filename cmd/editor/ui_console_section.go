package main

import (
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// addConsoleSection adds the command line. Editor.Exec lists the commands.
func addConsoleSection(parent *widget.Container, fontFace *text.Face, onCommand func(line string)) *widget.TextInput {
	var input *widget.TextInput
	input = widget.NewTextInput(
		widget.TextInputOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(leftPanelWidth-16, 28),
		),
		widget.TextInputOpts.Image(inputImage),
		widget.TextInputOpts.Color(inputTextColor),
		widget.TextInputOpts.Face(fontFace),
		widget.TextInputOpts.SubmitOnEnter(true),
		widget.TextInputOpts.SubmitHandler(func(args *widget.TextInputChangedEventArgs) {
			if onCommand != nil {
				onCommand(args.InputText)
			}
			input.SetText("")
		}),
	)
	parent.AddChild(newSectionLabel(fontFace, "Console"))
	parent.AddChild(input)
	return input
}
