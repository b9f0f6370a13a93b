package editor

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/milk9111/mapedit/levels"
)

const mapExt = ".json"

var ErrUnknownCommand = errors.New("editor: unknown command")

// Exec runs one console command line. Besides undo, redo, load, save and
// delete_image it edits the selected layer (rename, color, resize,
// high_detail, image, new_layer, new_quad, automap) and the selected group
// (group_name, parallax, offset, clipping, move_group, new_group). Property
// commands always commit one history entry.
func (e *Editor) Exec(line string) error {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "":
		return nil
	case "undo":
		e.Undo()
	case "redo":
		e.Redo()
	case "load":
		if arg == "" {
			return fmt.Errorf("editor: load: missing map name")
		}
		return e.LoadFile(e.MapPath(arg))
	case "save":
		if arg == "" {
			return fmt.Errorf("editor: save: missing map name")
		}
		return e.SaveFile(e.MapPath(arg))
	case "delete_image":
		id, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("editor: delete_image: %w", err)
		}
		if !e.Map.IsValidImage(id) {
			return fmt.Errorf("editor: delete_image: no image %d", id)
		}
		e.DeleteImage(id)
	case "rename":
		if arg == "" {
			return fmt.Errorf("editor: rename: missing name")
		}
		e.SetLayerName(e.selectedLayer, arg, true)
	case "color":
		if !validColor(arg) {
			return fmt.Errorf("editor: color: want #rrggbb or #rrggbbaa, got %q", arg)
		}
		e.SetLayerColor(e.selectedLayer, arg, true)
	case "resize":
		v, err := ints(cmd, arg, 2)
		if err != nil {
			return err
		}
		if !e.SelectedLayer().IsTileLayer() {
			return fmt.Errorf("editor: resize: layer %d is not a tile layer", e.selectedLayer)
		}
		if v[0] <= 0 || v[1] <= 0 {
			return fmt.Errorf("editor: resize: wrong size %dx%d", v[0], v[1])
		}
		e.ResizeTileLayer(e.selectedLayer, v[0], v[1])
	case "high_detail":
		on, err := parseOnOff(cmd, arg)
		if err != nil {
			return err
		}
		e.SetLayerHighDetail(e.selectedLayer, on)
	case "image":
		id := levels.NoImage
		if arg != "none" {
			v, err := ints(cmd, arg, 1)
			if err != nil {
				return err
			}
			if id = v[0]; !e.Map.IsValidImage(id) {
				return fmt.Errorf("editor: image: no image %d", id)
			}
		}
		e.SetLayerImage(e.selectedLayer, id)
	case "new_group":
		if !e.Map.CanAddGroup() {
			return fmt.Errorf("editor: new_group: at most %d groups", levels.MaxGroups)
		}
		id := e.CreateGroup()
		log.Printf("editor: created group %d", id)
	case "new_layer", "new_quad":
		if e.Map.Groups.Get(e.selectedGroup).IsFull() {
			return fmt.Errorf("editor: %s: group %d is full", cmd, e.selectedGroup)
		}
		var id int
		if cmd == "new_layer" {
			id = e.CreateTileLayerUnder(e.selectedLayer, e.selectedGroup)
		} else {
			id = e.CreateQuadLayerUnder(e.selectedLayer, e.selectedGroup)
		}
		e.SelectLayer(id, e.selectedGroup)
	case "group_name":
		if arg == "" {
			return fmt.Errorf("editor: group_name: missing name")
		}
		e.SetGroupName(e.selectedGroup, arg, true)
	case "parallax", "offset":
		v, err := ints(cmd, arg, 2)
		if err != nil {
			return err
		}
		if cmd == "parallax" {
			e.SetGroupParallax(e.selectedGroup, v[0], v[1], true)
		} else {
			e.SetGroupOffset(e.selectedGroup, v[0], v[1], true)
		}
	case "clipping":
		on, err := parseOnOff(cmd, arg)
		if err != nil {
			return err
		}
		e.SetGroupClipping(e.selectedGroup, on)
	case "move_group":
		v, err := ints(cmd, arg, 1)
		if err != nil {
			return err
		}
		e.MoveGroup(e.Map.GroupListIndex(e.selectedGroup), v[0])
	case "automap":
		return e.execAutomap(arg)
	default:
		return fmt.Errorf("%w %q", ErrUnknownCommand, cmd)
	}
	return nil
}

// execAutomap runs "automap <ruleset>" over the selected layer, or
// "automap <ruleset> <x> <y> <w> <h>" over a section of it.
func (e *Editor) execAutomap(arg string) error {
	var v []int
	var err error
	if len(strings.Fields(arg)) == 1 {
		v, err = ints("automap", arg, 1)
	} else {
		v, err = ints("automap", arg, 5)
	}
	if err != nil {
		return err
	}
	n := len(e.RuleSetNames(e.selectedLayer))
	if n == 0 {
		return fmt.Errorf("editor: automap: no rules for layer %d", e.selectedLayer)
	}
	if v[0] < 0 || v[0] >= n {
		return fmt.Errorf("editor: automap: ruleset %d out of range", v[0])
	}
	if len(v) == 1 {
		e.AutomapLayer(e.selectedLayer, v[0])
		return nil
	}
	l := e.SelectedLayer()
	x, y, w, h := v[1], v[2], v[3], v[4]
	if w <= 0 || h <= 0 || x < 0 || y < 0 || x+w > l.Width() || y+h > l.Height() {
		return fmt.Errorf("editor: automap: section (%d, %d, %d, %d) outside the layer", x, y, w, h)
	}
	e.AutomapSection(e.selectedLayer, v[0], x, y, w, h)
	return nil
}

// ints parses exactly n whitespace separated integers from arg.
func ints(cmd, arg string, n int) ([]int, error) {
	fields := strings.Fields(arg)
	if len(fields) != n {
		return nil, fmt.Errorf("editor: %s: want %d numbers, got %d", cmd, n, len(fields))
	}
	v := make([]int, n)
	for i, f := range fields {
		x, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("editor: %s: %w", cmd, err)
		}
		v[i] = x
	}
	return v, nil
}

func parseOnOff(cmd, arg string) (bool, error) {
	switch arg {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	return false, fmt.Errorf("editor: %s: want on or off, got %q", cmd, arg)
}

func validColor(s string) bool {
	if (len(s) != 7 && len(s) != 9) || s[0] != '#' {
		return false
	}
	_, err := strconv.ParseUint(s[1:], 16, 32)
	return err == nil
}

// MapPath turns a map name into a file path inside MapsDir with the map
// extension, leaving either part alone when already present.
func (e *Editor) MapPath(name string) string {
	path := filepath.ToSlash(name)
	prefix := strings.ToLower(filepath.ToSlash(filepath.Clean(e.MapsDir))) + "/"
	if !strings.HasPrefix(strings.ToLower(path), prefix) {
		path = filepath.Join(e.MapsDir, name)
	}
	if !strings.EqualFold(filepath.Ext(path), mapExt) {
		path += mapExt
	}
	return filepath.FromSlash(path)
}

// LoadFile loads the map at path. The current map is kept on error.
func (e *Editor) LoadFile(path string) error {
	m, err := levels.Load(path)
	if err != nil {
		return err
	}
	e.LoadMap(m)
	return nil
}

func (e *Editor) SaveFile(path string) error {
	if err := e.Map.Save(path); err != nil {
		return err
	}
	log.Printf("editor: saved %s", path)
	return nil
}
