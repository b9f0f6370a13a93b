package levels

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed *.json
var MapsFS embed.FS

// LoadFromFS loads one of the starter maps bundled with the editor.
func LoadFromFS(name string) (*Map, error) {
	data, err := fs.ReadFile(MapsFS, name)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	m, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("levels: load %s: %w", name, err)
	}
	m.Path = name
	return m, nil
}
