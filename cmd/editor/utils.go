package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/mapedit/tile"
)

var backgroundColor = color.RGBA{R: 0x20, G: 0x22, B: 0x28, A: 0xff}

// parseHexColor parses a color in the form #rrggbb or #rrggbbaa. Returns white
// if parse fails.
func parseHexColor(s string) color.RGBA {
	c := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	if (len(s) != 7 && len(s) != 9) || s[0] != '#' {
		return c
	}
	var r, g, b, a uint32 = 0, 0, 0, 0xff
	if _, err := fmt.Sscanf(s[1:7], "%02x%02x%02x", &r, &g, &b); err != nil {
		return c
	}
	if len(s) == 9 {
		if _, err := fmt.Sscanf(s[7:], "%02x", &a); err != nil {
			return c
		}
	}
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: uint8(a)}
}

// tileColor gives every tile index a stable color, multiplied by the layer
// tint. Opaque tiles are drawn brighter.
func tileColor(t tile.Tile, tint color.RGBA) color.RGBA {
	h := uint32(t.Index) * 2654435761
	r, g, b := uint32(64+h>>24%160), uint32(64+h>>16%160), uint32(64+h>>8%160)
	if t.Flags&tile.FlagOpaque != 0 {
		r, g, b = min(r+40, 255), min(g+40, 255), min(b+40, 255)
	}
	return color.RGBA{
		R: uint8(r * uint32(tint.R) / 255),
		G: uint8(g * uint32(tint.G) / 255),
		B: uint8(b * uint32(tint.B) / 255),
		A: 0xff,
	}
}

func ctrlPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
}
