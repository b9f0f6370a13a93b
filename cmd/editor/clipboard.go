package main

import (
	"golang.design/x/clipboard"

	"github.com/milk9111/mapedit/brush"
	"github.com/milk9111/mapedit/editor"
)

// copyBrush puts the brush, or the selected tiles when no brush is held, on
// the system clipboard as text.
func (g *Game) copyBrush() {
	if !g.clipboardOK {
		g.setStatus("Clipboard unavailable")
		return
	}
	b := &g.ed.Brush
	if b.IsEmpty() {
		s := g.ed.Selection
		l := g.ed.SelectedLayer()
		if !s.Active || !l.IsTileLayer() {
			return
		}
		b = brush.Extract(l, s.StartX, s.StartY, s.EndX, s.EndY)
	}
	data, err := b.MarshalText()
	if err != nil {
		g.setStatus(err.Error())
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	g.setStatus("Copied brush to clipboard")
}

// pasteBrush loads a brush from the clipboard and switches to the brush tool.
func (g *Game) pasteBrush() {
	if !g.clipboardOK {
		g.setStatus("Clipboard unavailable")
		return
	}
	data := clipboard.Read(clipboard.FmtText)
	if len(data) == 0 {
		return
	}
	var b brush.Brush
	if err := b.UnmarshalText(data); err != nil {
		g.setStatus(err.Error())
		return
	}
	g.ed.SetTool(editor.ToolBrush)
	g.ed.SetBrush(b.Tiles, b.Width, b.Height)
}
