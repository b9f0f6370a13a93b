package main

import (
	"bytes"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/milk9111/mapedit/editor"
	"github.com/milk9111/mapedit/history"
)

// Handlers are the editor actions the widgets trigger.
type Handlers struct {
	OnToolSelected  func(editor.Tool)
	OnLayerSelected func(layerID, groupID int)
	OnEntrySelected func(history.Ref)
	OnRuleSelected  func(id int)
	OnCommand       func(line string)
	OnNewTileLayer  func()
	OnDeleteLayer   func()
	OnMoveLayer     func(rel int)
	OnAutomapLayer  func()
}

// Panels gives the game access to the widgets it refreshes.
type Panels struct {
	ToolBar *ToolBar
	Layers  *LayerPanel
	History *HistoryPanel
	Rules   *RulesPanel
	console *widget.TextInput
}

// Typing reports whether keyboard input belongs to the console.
func (p *Panels) Typing() bool {
	return p.console != nil && p.console.IsFocused()
}

func BuildEditorUI(h Handlers, initialTool editor.Tool) (*ebitenui.UI, *Panels) {
	ui := &ebitenui.UI{}

	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic("Failed to load font: " + err.Error())
	}

	var fontFace text.Face = &text.GoTextFace{Source: s, Size: 14}
	ui.PrimaryTheme = newEditorTheme(&fontFace)

	panels := &Panels{}
	toolbarContainer, toolBar := buildToolBar(ui.PrimaryTheme, &fontFace, h.OnToolSelected, initialTool)
	panels.ToolBar = toolBar

	leftPanel := newPanel(leftPanelWidth, 400)
	panels.Layers = addLayersSection(leftPanel, ui.PrimaryTheme, &fontFace, h)
	panels.console = addConsoleSection(leftPanel, &fontFace, h.OnCommand)

	rightPanel := newPanel(rightPanelWidth, 400)
	panels.Rules = addRulesSection(rightPanel, ui.PrimaryTheme, &fontFace, h)
	panels.History = addHistorySection(rightPanel, &fontFace, h.OnEntrySelected)

	// Root container: anchor layout
	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	leftPanel.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionStart,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
		StretchVertical:    true,
	}
	rightPanel.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionEnd,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
		StretchVertical:    true,
	}
	// Toolbar: top center
	toolbarContainer.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionStart,
	}
	root.AddChild(leftPanel)
	root.AddChild(rightPanel)
	root.AddChild(toolbarContainer)

	ui.Container = root
	return ui, panels
}
