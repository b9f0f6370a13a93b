package editor

import (
	"fmt"

	"github.com/milk9111/mapedit/brush"
)

// PaintStamp stamps the brush once on layerID. It reports whether anything
// was painted and recorded.
func (e *Editor) PaintStamp(layerID, x, y int) bool {
	l := e.mustTileLayer(layerID)
	if e.Brush.Stamp(l, x, y).Empty() {
		return false
	}
	e.NewEntry(fmt.Sprintf("Layer %d: brush paint", layerID), fmt.Sprintf("at (%d, %d)", x, y))
	return true
}

// PaintFillRectRepeat repeats the brush over the rectangle on layerID.
func (e *Editor) PaintFillRectRepeat(layerID, x, y, w, h int) bool {
	l := e.mustTileLayer(layerID)
	if e.Brush.FillRectRepeat(l, x, y, w, h).Empty() {
		return false
	}
	e.NewEntry(fmt.Sprintf("Layer %d: brush paint", layerID), fmt.Sprintf("at (%d, %d)(%d, %d)", x, y, w, h))
	return true
}

// PaintWithAutomap stamps the brush and lets ruleset rulesetID of the layer's
// tileset rework the stamped area and its neighbourhood.
func (e *Editor) PaintWithAutomap(layerID, x, y, rulesetID int) bool {
	l := e.mustTileLayer(layerID)
	b := e.bridge(layerID)
	if e.Brush.Stamp(l, x, y).Empty() {
		return false
	}
	b.AutomapRegion(l.Tiles(), x, y, e.Brush.Width, e.Brush.Height, l.Width(), l.Height(), rulesetID)
	e.NewEntry(fmt.Sprintf("Layer %d: brush paint auto", layerID), fmt.Sprintf("at (%d, %d)", x, y))
	return true
}

// PaintFillRectAutomap is PaintFillRectRepeat followed by automapping the
// rectangle.
func (e *Editor) PaintFillRectAutomap(layerID, x, y, w, h, rulesetID int) bool {
	l := e.mustTileLayer(layerID)
	b := e.bridge(layerID)
	if e.Brush.FillRectRepeat(l, x, y, w, h).Empty() {
		return false
	}
	b.AutomapRegion(l.Tiles(), x, y, w, h, l.Width(), l.Height(), rulesetID)
	e.NewEntry(fmt.Sprintf("Layer %d: brush paint auto", layerID), fmt.Sprintf("at (%d, %d)(%d, %d)", x, y, w, h))
	return true
}

// ReleaseDrag handles the end of a mouse drag over the map, in tile
// coordinates of the selected layer. A click is a drag that starts and ends on
// the same tile.
func (e *Editor) ReleaseDrag(startX, startY, endX, endY int) {
	l := e.SelectedLayer()
	if !l.IsTileLayer() {
		return
	}

	switch e.tool {
	case ToolSelect:
		e.Selection.Select(startX, startY, endX, endY)
		e.Selection.FitLayer(l.Width(), l.Height())
	case ToolBrush:
		if e.Brush.IsEmpty() {
			e.Brush = *brush.Extract(l, startX, startY, endX, endY)
			return
		}

		rectX, rectY := min(startX, endX), min(startY, endY)
		rectW, rectH := max(startX, endX)-rectX+1, max(startY, endY)-rectY+1
		click := startX == endX && startY == endY

		// rules may have been reloaded with fewer rulesets since the pick
		if e.automapRule != NoRule && e.automapRule < len(e.RuleSetNames(e.selectedLayer)) {
			if click {
				e.PaintWithAutomap(e.selectedLayer, endX, endY, e.automapRule)
			} else {
				e.PaintFillRectAutomap(e.selectedLayer, rectX, rectY, rectW, rectH, e.automapRule)
			}
			return
		}
		if click {
			e.PaintStamp(e.selectedLayer, endX, endY)
		} else {
			e.PaintFillRectRepeat(e.selectedLayer, rectX, rectY, rectW, rectH)
		}
	}
}
