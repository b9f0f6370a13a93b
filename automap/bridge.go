// Package automap resolves raw tile indices into context sensitive ones using
// per-tileset rulesets.
package automap

import (
	"fmt"
	"image"

	"github.com/milk9111/mapedit/tile"
)

// Bridge is what the editor needs from an automapper bound to one tileset.
type Bridge interface {
	RuleSetCount() int
	RuleSetName(id int) string
	// AutomapRegion rewrites the tiles of a layerW x layerH layer around the
	// given region in place.
	AutomapRegion(tiles []tile.Tile, originX, originY, regionW, regionH, layerW, layerH, rulesetID int)
}

// Source finds the bridge for a tileset image name.
type Source interface {
	Bridge(imageName string) (Bridge, error)
}

// AutomapWhole runs a ruleset over an entire layer.
func AutomapWhole(b Bridge, tiles []tile.Tile, layerW, layerH, rulesetID int) {
	b.AutomapRegion(tiles, 0, 0, layerW, layerH, layerW, layerH, rulesetID)
}

// RuleSet rewrites tiles. Apply reads neighbourhoods from src, a copy taken
// before the pass, and writes the cells of area into dst.
type RuleSet interface {
	Name() string
	// Reach is how far, in tiles, a cell's result depends on its neighbours.
	Reach() int
	Apply(src, dst []tile.Tile, layerW, layerH int, area image.Rectangle)
}

// Mapper is the Bridge for one tileset image.
type Mapper struct {
	Image    string
	RuleSets []RuleSet
}

func (m *Mapper) RuleSetCount() int { return len(m.RuleSets) }

func (m *Mapper) RuleSetName(id int) string {
	if id < 0 || id >= len(m.RuleSets) {
		return ""
	}
	return m.RuleSets[id].Name()
}

// AutomapRegion runs ruleset id over the region grown by the ruleset's reach,
// so that neighbours of freshly painted tiles are updated too.
func (m *Mapper) AutomapRegion(tiles []tile.Tile, originX, originY, regionW, regionH, layerW, layerH, rulesetID int) {
	if rulesetID < 0 || rulesetID >= len(m.RuleSets) {
		panic(fmt.Sprintf("automap: %s has no ruleset %d", m.Image, rulesetID))
	}
	if len(tiles) != layerW*layerH {
		panic(fmt.Sprintf("automap: %d tiles do not fill %dx%d", len(tiles), layerW, layerH))
	}
	if regionW <= 0 || regionH <= 0 {
		return
	}
	rs := m.RuleSets[rulesetID]
	area := image.Rect(originX, originY, originX+regionW, originY+regionH).
		Inset(-rs.Reach()).
		Intersect(image.Rect(0, 0, layerW, layerH))
	if area.Empty() {
		return
	}
	src := append([]tile.Tile(nil), tiles...)
	rs.Apply(src, tiles, layerW, layerH, area)
}
