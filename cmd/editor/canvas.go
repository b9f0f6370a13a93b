package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/mapedit/editor"
	"github.com/milk9111/mapedit/levels"
	"github.com/milk9111/mapedit/tile"
)

const (
	leftPanelWidth  = 220
	rightPanelWidth = 240

	minZoom = 0.25
	maxZoom = 8.0
)

// Canvas holds the map view transform and the tile drag in progress.
type Canvas struct {
	CellSize int

	Zoom    float64
	OffsetX float64
	OffsetY float64

	panActive    bool
	lastMX       int
	lastMY       int
	Dragging     bool
	dragStartX   int
	dragStartY   int
	dragEndX     int
	dragEndY     int
	screenRightX int
}

func NewCanvas(cellSize int) *Canvas {
	return &Canvas{CellSize: cellSize, Zoom: 1, OffsetX: 16, OffsetY: 16}
}

// screenToCanvas converts screen coordinates into unzoomed map pixels. It
// fails when the point is over a side panel.
func (c *Canvas) screenToCanvas(sx, sy int) (float64, float64, bool) {
	if sx < leftPanelWidth || (c.screenRightX > 0 && sx >= c.screenRightX) {
		return 0, 0, false
	}
	lx := float64(sx - leftPanelWidth)
	ly := float64(sy)
	return (lx - c.OffsetX) / c.Zoom, (ly - c.OffsetY) / c.Zoom, true
}

func (c *Canvas) OverCanvas() bool {
	_, _, ok := c.screenToCanvas(ebiten.CursorPosition())
	return ok
}

// CursorTile is the tile under the cursor. It may lie outside the layer.
func (c *Canvas) CursorTile() (int, int) {
	mx, my := ebiten.CursorPosition()
	lx := float64(mx-leftPanelWidth) - c.OffsetX
	ly := float64(my) - c.OffsetY
	cell := float64(c.CellSize) * c.Zoom
	return int(math.Floor(lx / cell)), int(math.Floor(ly / cell))
}

// UpdateView applies wheel zoom around the cursor and middle-button panning.
func (c *Canvas) UpdateView() {
	w, _ := ebiten.WindowSize()
	c.screenRightX = w - rightPanelWidth
	mx, my := ebiten.CursorPosition()

	if localX, localY, ok := c.screenToCanvas(mx, my); ok {
		if _, wy := ebiten.Wheel(); wy != 0 {
			factor := 1.1
			if wy < 0 {
				factor = 1.0 / 1.1
			}
			c.Zoom = math.Min(maxZoom, math.Max(minZoom, c.Zoom*factor))
			// keep the point under the cursor fixed
			c.OffsetX = float64(mx-leftPanelWidth) - localX*c.Zoom
			c.OffsetY = float64(my) - localY*c.Zoom
		}
	}

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
		if c.panActive {
			c.OffsetX += float64(mx - c.lastMX)
			c.OffsetY += float64(my - c.lastMY)
		}
		c.panActive = true
		c.lastMX, c.lastMY = mx, my
	} else {
		c.panActive = false
	}
}

func (c *Canvas) BeginDrag(x, y int) {
	c.Dragging = true
	c.dragStartX, c.dragStartY = x, y
	c.dragEndX, c.dragEndY = x, y
}

func (c *Canvas) DragTo(x, y int) {
	c.dragEndX, c.dragEndY = x, y
}

func (c *Canvas) EndDrag() (startX, startY, endX, endY int) {
	c.Dragging = false
	return c.dragStartX, c.dragStartY, c.dragEndX, c.dragEndY
}

func (c *Canvas) CancelDrag() { c.Dragging = false }

// tileRect is the screen rectangle of tile (x, y) at the current zoom.
func (c *Canvas) tileRect(x, y int) (float32, float32, float32) {
	cell := float64(c.CellSize) * c.Zoom
	px := float64(leftPanelWidth) + c.OffsetX + float64(x)*cell
	py := c.OffsetY + float64(y)*cell
	return float32(px), float32(py), float32(cell)
}

// DrawMap draws every group back to front with its layers in list order.
func (c *Canvas) DrawMap(screen *ebiten.Image, ed *editor.Editor) {
	m := ed.Map
	for _, gid := range m.GroupOrder {
		grp := m.Groups.Get(gid)
		for _, lid := range grp.LayerIDs {
			l := m.Layers.Get(lid)
			switch l.Kind {
			case levels.LayerTiles:
				c.drawTileLayer(screen, l, lid == ed.SelectedLayerID())
			case levels.LayerQuads:
				c.drawQuadLayer(screen, l)
			}
		}
	}
}

func (c *Canvas) drawTileLayer(screen *ebiten.Image, l *levels.Layer, selected bool) {
	tint := parseHexColor(l.Color)
	for y := 0; y < l.Height(); y++ {
		for x := 0; x < l.Width(); x++ {
			t := l.Tile(x, y)
			if t.IsEmpty() {
				continue
			}
			px, py, size := c.tileRect(x, y)
			vector.FillRect(screen, px, py, size, size, tileColor(t, tint), false)
			c.drawOrientation(screen, t, px, py, size)
		}
	}
	if selected {
		px, py, size := c.tileRect(0, 0)
		vector.StrokeRect(screen, px, py, size*float32(l.Width()), size*float32(l.Height()), 1, colornames.Lightgrey, false)
	}
}

// drawOrientation marks the tile's top edge after its flips and rotation.
func (c *Canvas) drawOrientation(screen *ebiten.Image, t tile.Tile, px, py, size float32) {
	if size < 8 {
		return
	}
	f := t.Flags
	x0, y0, x1, y1 := px, py+1, px+size, py+1
	if f&tile.FlagFlipV != 0 {
		y0, y1 = py+size-1, py+size-1
	}
	if f&tile.FlagRotate != 0 {
		x0, y0, x1, y1 = px+size-1, py, px+size-1, py+size
		if f&tile.FlagFlipH != 0 {
			x0, x1 = px+1, px+1
		}
	}
	vector.StrokeLine(screen, x0, y0, x1, y1, 2, colornames.White, false)
}

func (c *Canvas) drawQuadLayer(screen *ebiten.Image, l *levels.Layer) {
	for _, q := range l.Quads {
		px, py, _ := c.tileRect(0, 0)
		scale := float32(c.Zoom)
		col := parseHexColor(q.Color)
		col.A = 0x80
		vector.FillRect(screen, px+float32(q.X)*scale, py+float32(q.Y)*scale, float32(q.Width)*scale, float32(q.Height)*scale, col, false)
	}
}

// DrawOverlay draws the tile selection, the brush preview and the drag
// rectangle.
func (c *Canvas) DrawOverlay(screen *ebiten.Image, ed *editor.Editor) {
	if s := ed.Selection; s.Active {
		px, py, size := c.tileRect(s.StartX, s.StartY)
		vector.StrokeRect(screen, px, py, size*float32(s.Width()), size*float32(s.Height()), 2, colornames.Yellow, false)
	}

	if c.Dragging {
		x0, y0 := min(c.dragStartX, c.dragEndX), min(c.dragStartY, c.dragEndY)
		x1, y1 := max(c.dragStartX, c.dragEndX), max(c.dragStartY, c.dragEndY)
		px, py, size := c.tileRect(x0, y0)
		col := colornames.Cyan
		if ed.Tool() == editor.ToolBrush && !ed.SelectingSource() {
			col = colornames.Orange
		}
		vector.StrokeRect(screen, px, py, size*float32(x1-x0+1), size*float32(y1-y0+1), 2, col, false)
		return
	}

	b := ed.Brush
	if ed.Tool() != editor.ToolBrush || b.IsEmpty() || !c.OverCanvas() {
		return
	}
	tx, ty := c.CursorTile()
	tint := parseHexColor(ed.SelectedLayer().Color)
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			t := b.At(x, y)
			if t.IsEmpty() {
				continue
			}
			px, py, size := c.tileRect(tx+x, ty+y)
			col := tileColor(t, tint)
			col.A = 0xa0
			vector.FillRect(screen, px, py, size, size, col, false)
		}
	}
}
