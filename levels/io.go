package levels

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/milk9111/mapedit/tile"
)

const fileVersion = 1

type mapFile struct {
	Version int         `json:"version"`
	Images  []imageFile `json:"images,omitempty"`
	Groups  []groupFile `json:"groups"`
}

type imageFile struct {
	Name     string `json:"name"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	External bool   `json:"external,omitempty"`
}

type groupFile struct {
	Name        string      `json:"name,omitempty"`
	Game        bool        `json:"game,omitempty"`
	OffsetX     int         `json:"offset_x,omitempty"`
	OffsetY     int         `json:"offset_y,omitempty"`
	ParallaxX   int         `json:"parallax_x"`
	ParallaxY   int         `json:"parallax_y"`
	UseClipping bool        `json:"use_clipping,omitempty"`
	ClipX       int         `json:"clip_x,omitempty"`
	ClipY       int         `json:"clip_y,omitempty"`
	ClipWidth   int         `json:"clip_w,omitempty"`
	ClipHeight  int         `json:"clip_h,omitempty"`
	Layers      []layerFile `json:"layers"`
}

type layerFile struct {
	Kind       string `json:"kind"`
	Name       string `json:"name,omitempty"`
	Game       bool   `json:"game,omitempty"`
	Image      int    `json:"image"`
	Color      string `json:"color,omitempty"`
	HighDetail bool   `json:"high_detail,omitempty"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	// Tiles packs each cell as index | flags<<8, row-major. Empty means a
	// blank layer.
	Tiles []int  `json:"tiles,omitempty"`
	Quads []Quad `json:"quads,omitempty"`
}

// Load reads a map file from disk.
func Load(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", path, err)
	}
	m, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("levels: load %s: %w", path, err)
	}
	m.Path = path
	return m, nil
}

// Save writes the map to path, creating parent directories, and sets m.Path.
func (m *Map) Save(path string) error {
	data, err := m.Encode()
	if err != nil {
		return fmt.Errorf("levels: save %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("levels: save %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("levels: save %s: %w", path, err)
	}
	m.Path = path
	return nil
}

// Encode returns the indented JSON form of the map.
func (m *Map) Encode() ([]byte, error) {
	f := mapFile{Version: fileVersion}
	for _, img := range m.Images {
		f.Images = append(f.Images, imageFile(img))
	}
	for _, gid := range m.GroupOrder {
		g := m.Groups.Get(gid)
		gf := groupFile{
			Name:        g.Name,
			Game:        gid == m.GameGroupID,
			OffsetX:     g.OffsetX,
			OffsetY:     g.OffsetY,
			ParallaxX:   g.ParallaxX,
			ParallaxY:   g.ParallaxY,
			UseClipping: g.UseClipping,
			ClipX:       g.ClipX,
			ClipY:       g.ClipY,
			ClipWidth:   g.ClipWidth,
			ClipHeight:  g.ClipHeight,
		}
		for _, lid := range g.LayerIDs {
			gf.Layers = append(gf.Layers, encodeLayer(m.Layers.Get(lid), lid == m.GameLayerID))
		}
		f.Groups = append(f.Groups, gf)
	}
	return json.MarshalIndent(f, "", "  ")
}

func encodeLayer(l *Layer, game bool) layerFile {
	lf := layerFile{
		Name:       l.Name,
		Game:       game,
		Image:      l.ImageID,
		Color:      l.Color,
		HighDetail: l.HighDetail,
	}
	if l.IsQuadLayer() {
		lf.Kind = "quads"
		lf.Quads = append([]Quad(nil), l.Quads...)
		return lf
	}
	lf.Kind = "tiles"
	lf.Width = l.width
	lf.Height = l.height
	blank := true
	for _, t := range l.tiles {
		if t != (tile.Tile{}) {
			blank = false
			break
		}
	}
	if !blank {
		lf.Tiles = make([]int, len(l.tiles))
		for i, t := range l.tiles {
			lf.Tiles[i] = int(t.Index) | int(t.Flags)<<8
		}
	}
	return lf
}

// Decode parses and validates a JSON map.
func Decode(data []byte) (*Map, error) {
	var f mapFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("unmarshal map: %w", err)
	}
	if f.Version != fileVersion {
		return nil, fmt.Errorf("unsupported map version %d", f.Version)
	}
	if len(f.Groups) > MaxGroups {
		return nil, fmt.Errorf("%d groups, at most %d allowed", len(f.Groups), MaxGroups)
	}

	m := &Map{GameGroupID: -1, GameLayerID: -1}
	for _, img := range f.Images {
		m.Images = append(m.Images, Image(img))
	}
	for gi, gf := range f.Groups {
		if len(gf.Layers) > MaxGroupLayers {
			return nil, fmt.Errorf("group %d: %d layers, at most %d allowed", gi, len(gf.Layers), MaxGroupLayers)
		}
		g := Group{
			Name:        gf.Name,
			OffsetX:     gf.OffsetX,
			OffsetY:     gf.OffsetY,
			ParallaxX:   gf.ParallaxX,
			ParallaxY:   gf.ParallaxY,
			UseClipping: gf.UseClipping,
			ClipX:       gf.ClipX,
			ClipY:       gf.ClipY,
			ClipWidth:   gf.ClipWidth,
			ClipHeight:  gf.ClipHeight,
		}
		for li, lf := range gf.Layers {
			l, err := decodeLayer(lf, len(m.Images))
			if err != nil {
				return nil, fmt.Errorf("group %d layer %d: %w", gi, li, err)
			}
			id := m.Layers.Push(l)
			g.LayerIDs = append(g.LayerIDs, id)
			if lf.Game {
				if m.GameLayerID != -1 {
					return nil, errors.New("more than one game layer")
				}
				if !gf.Game {
					return nil, errors.New("game layer outside the game group")
				}
				if l.Kind != LayerTiles {
					return nil, errors.New("game layer is not a tile layer")
				}
				m.GameLayerID = id
			}
		}
		gid := m.Groups.Push(g)
		m.GroupOrder = append(m.GroupOrder, gid)
		if gf.Game {
			if m.GameGroupID != -1 {
				return nil, errors.New("more than one game group")
			}
			m.GameGroupID = gid
		}
	}
	if m.GameGroupID == -1 || m.GameLayerID == -1 {
		return nil, errors.New("missing game group or game layer")
	}
	return m, nil
}

func decodeLayer(lf layerFile, imageCount int) (Layer, error) {
	if lf.Image < NoImage || lf.Image >= imageCount {
		return Layer{}, fmt.Errorf("image %d out of bounds", lf.Image)
	}
	var l Layer
	switch lf.Kind {
	case "tiles":
		if lf.Width <= 0 || lf.Height <= 0 {
			return Layer{}, fmt.Errorf("wrong size %dx%d", lf.Width, lf.Height)
		}
		l = newTileLayer(lf.Width, lf.Height)
		if len(lf.Tiles) != 0 && len(lf.Tiles) != lf.Width*lf.Height {
			return Layer{}, fmt.Errorf("%d tiles do not fill %dx%d", len(lf.Tiles), lf.Width, lf.Height)
		}
		for i, v := range lf.Tiles {
			if v < 0 || v > 0xffff {
				return Layer{}, fmt.Errorf("tile %d: bad value %d", i, v)
			}
			l.tiles[i] = tile.Tile{Index: uint8(v), Flags: tile.Flags(v >> 8)}
		}
	case "quads":
		l = Layer{Kind: LayerQuads, Quads: append([]Quad(nil), lf.Quads...)}
	default:
		return Layer{}, fmt.Errorf("unknown layer kind %q", lf.Kind)
	}
	l.Name = lf.Name
	l.ImageID = lf.Image
	l.Color = lf.Color
	if l.Color == "" {
		l.Color = DefaultColor
	}
	l.HighDetail = lf.HighDetail
	return l, nil
}

// LoadImage reads the size of a png tileset so it can be added to a map. The
// image name is the file name without extension.
func LoadImage(path string) (Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return Image{}, fmt.Errorf("levels: open image %s: %w", path, err)
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return Image{}, fmt.Errorf("levels: decode image %s: %w", path, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Image{Name: name, Width: cfg.Width, Height: cfg.Height, External: true}, nil
}
