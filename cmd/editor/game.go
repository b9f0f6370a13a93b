package main

import (
	"fmt"
	"log"

	"github.com/ebitenui/ebitenui"
	ebuiinput "github.com/ebitenui/ebitenui/input"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/mapedit/automap"
	"github.com/milk9111/mapedit/editor"
	"github.com/milk9111/mapedit/history"
	"github.com/milk9111/mapedit/levels"
)

// Game is the ebiten front end around an editor.Editor.
type Game struct {
	ed      *editor.Editor
	rules   *automap.Registry
	watcher *automap.Watcher

	ui     *ebitenui.UI
	panels *Panels
	canvas *Canvas

	clipboardOK bool
	status      string

	// last state pushed to the panels
	shownCurrent history.Ref
	shownLen     int
	shownLayer   int
	shownRules   int
	shownTool    editor.Tool
	shownMap     *levels.Map
	rulesDirty   bool
}

func NewGame(ed *editor.Editor, rules *automap.Registry, watcher *automap.Watcher, tileSize int, clipboardOK bool) *Game {
	g := &Game{
		ed:           ed,
		rules:        rules,
		watcher:      watcher,
		canvas:       NewCanvas(tileSize),
		clipboardOK:  clipboardOK,
		shownCurrent: history.None,
		shownLayer:   -1,
		rulesDirty:   true,
	}
	g.ui, g.panels = BuildEditorUI(Handlers{
		OnToolSelected: g.ed.SetTool,
		OnLayerSelected: func(layerID, groupID int) {
			if layerID != g.ed.SelectedLayerID() || groupID != g.ed.SelectedGroupID() {
				g.ed.SelectLayer(layerID, groupID)
			}
		},
		OnEntrySelected: func(r history.Ref) { g.ed.JumpToEntry(r) },
		OnRuleSelected: func(id int) {
			if id != g.ed.AutomapRule() {
				g.ed.SetAutomapRule(id)
			}
		},
		OnCommand:       g.exec,
		OnNewTileLayer: func() {
			g.ed.CreateTileLayerUnder(g.ed.SelectedLayerID(), g.ed.SelectedGroupID())
		},
		OnDeleteLayer: func() {
			if g.ed.SelectedLayerID() == g.ed.Map.GameLayerID {
				g.setStatus("The game layer cannot be deleted")
				return
			}
			g.ed.DeleteLayer(g.ed.SelectedLayerID(), g.ed.SelectedGroupID())
		},
		OnMoveLayer: g.moveSelectedLayer,
		OnAutomapLayer: func() {
			if g.ed.AutomapRule() == editor.NoRule {
				g.setStatus("Pick a ruleset first")
				return
			}
			g.ed.AutomapLayer(g.ed.SelectedLayerID(), g.ed.AutomapRule())
		},
	}, g.ed.Tool())
	g.refreshPanels()
	return g
}

func (g *Game) Update() error {
	g.drainWatcher()
	g.ui.Update()

	if !g.panels.Typing() {
		g.handleKeys()
	}
	g.canvas.UpdateView()
	if !ebuiinput.UIHovered {
		g.handleMouse()
	}

	g.refreshPanels()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	g.canvas.DrawMap(screen, g.ed)
	g.canvas.DrawOverlay(screen, g.ed)
	g.ui.Draw(screen)

	info := fmt.Sprintf("%s | layer %d | zoom %.2f", g.ed.Tool(), g.ed.SelectedLayerID(), g.canvas.Zoom)
	if g.ed.SelectingSource() {
		info += " | drag to pick a brush"
	}
	h := screen.Bounds().Dy()
	ebitenutil.DebugPrintAt(screen, info, leftPanelWidth+8, h-36)
	if g.status != "" {
		ebitenutil.DebugPrintAt(screen, g.status, leftPanelWidth+8, h-20)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

func (g *Game) setStatus(s string) {
	g.status = s
	log.Printf("editor: %s", s)
}

func (g *Game) exec(line string) {
	if err := g.ed.Exec(line); err != nil {
		g.setStatus(err.Error())
		return
	}
	g.status = ""
}

// drainWatcher applies rule file changes without blocking the frame.
func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case paths, ok := <-g.watcher.Changes:
			if !ok {
				g.watcher = nil
				return
			}
			for _, path := range paths {
				if err := g.rules.Reload(path); err != nil {
					g.setStatus(fmt.Sprintf("Rules not reloaded: %v", err))
				}
			}
			g.rulesDirty = true
		default:
			return
		}
	}
}

func (g *Game) handleKeys() {
	ctrl := ctrlPressed()
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)

	switch {
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyZ) && shift:
		g.ed.Redo()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyZ):
		g.ed.Undo()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyY):
		g.ed.Redo()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.copyBrush()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyV):
		g.pasteBrush()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyS):
		if g.ed.Map.Path == "" {
			g.setStatus("Use 'save <name>' in the console")
			return
		}
		if err := g.ed.SaveFile(g.ed.Map.Path); err != nil {
			g.setStatus(err.Error())
		}
	case ctrl:
		// shortcuts below are plain keys
	case inpututil.IsKeyJustPressed(ebiten.KeyX):
		g.flip(true)
	case inpututil.IsKeyJustPressed(ebiten.KeyY):
		g.flip(false)
	case inpututil.IsKeyJustPressed(ebiten.KeyR) && shift:
		g.ed.RotateCCW()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.ed.RotateCW()
	case inpututil.IsKeyJustPressed(ebiten.Key1):
		g.ed.SetTool(editor.ToolSelect)
	case inpututil.IsKeyJustPressed(ebiten.Key2):
		g.ed.SetTool(editor.ToolDimension)
	case inpututil.IsKeyJustPressed(ebiten.Key3):
		g.ed.SetTool(editor.ToolBrush)
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		g.ed.ClearBrush()
		g.ed.Selection.Deselect()
	}
}

// flip mirrors the brush when one is held, otherwise the selected tiles.
func (g *Game) flip(horizontal bool) {
	if !g.ed.Brush.IsEmpty() {
		if horizontal {
			g.ed.FlipX()
		} else {
			g.ed.FlipY()
		}
		return
	}
	if !g.ed.Selection.Active || !g.ed.SelectedLayer().IsTileLayer() {
		return
	}
	if horizontal {
		g.ed.FlipSelectionX(g.ed.SelectedLayerID())
	} else {
		g.ed.FlipSelectionY(g.ed.SelectedLayerID())
	}
}

func (g *Game) handleMouse() {
	l := g.ed.SelectedLayer()
	if !l.IsTileLayer() {
		return
	}
	tx, ty := g.canvas.CursorTile()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && g.canvas.OverCanvas() {
		g.canvas.BeginDrag(tx, ty)
	}
	if !g.canvas.Dragging {
		return
	}
	g.canvas.DragTo(tx, ty)
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		sx, sy, ex, ey := g.canvas.EndDrag()
		g.ed.ReleaseDrag(sx, sy, ex, ey)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.canvas.CancelDrag()
	}
}

func (g *Game) moveSelectedLayer(rel int) {
	gid := g.ed.SelectedGroupID()
	grp := g.ed.Map.Groups.Get(gid)
	g.ed.MoveLayer(g.ed.Map.GroupListIndex(gid), grp.IndexOf(g.ed.SelectedLayerID()), rel)
}

// refreshPanels pushes editor state into the widgets when it changed.
func (g *Game) refreshPanels() {
	p := g.panels
	mapChanged := g.shownMap != g.ed.Map
	if cur, n := g.ed.History.Current(), g.ed.History.Len(); mapChanged || cur != g.shownCurrent || n != g.shownLen {
		p.History.SetEntries(historyEntries(g.ed.History))
		p.History.SelectRef(cur)
		p.Layers.SetEntries(layerEntries(g.ed.Map))
		g.shownCurrent, g.shownLen = cur, n
		g.shownLayer = -1
	}
	if lid := g.ed.SelectedLayerID(); mapChanged || lid != g.shownLayer {
		p.Layers.SelectLayer(lid)
		g.shownLayer = lid
		g.rulesDirty = true
	}
	if g.rulesDirty || g.shownRules != g.ed.AutomapRule() {
		p.Rules.SetEntries(ruleEntries(g.ed.RuleSetNames(g.ed.SelectedLayerID())))
		p.Rules.SelectRule(g.ed.AutomapRule())
		g.shownRules = g.ed.AutomapRule()
		g.rulesDirty = false
	}
	if t := g.ed.Tool(); mapChanged || t != g.shownTool {
		p.ToolBar.SetTool(t)
		g.shownTool = t
	}
	g.shownMap = g.ed.Map
}
