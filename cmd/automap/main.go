// Command automap runs an automap ruleset over a tile layer of a map file
// without opening the editor.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/milk9111/mapedit/automap"
	"github.com/milk9111/mapedit/config"
	"github.com/milk9111/mapedit/levels"
)

func main() {
	configPath := flag.String("config", "mapedit.yaml", "Path to the editor config file")
	mapPath := flag.String("map", "", "Map file to automap")
	layerID := flag.Int("layer", -1, "Tile layer id (defaults to the game layer)")
	ruleset := flag.String("ruleset", "", "Ruleset name; empty lists the rulesets of the layer image")
	out := flag.String("out", "", "Output file (defaults to overwriting -map)")
	flag.Parse()

	if *mapPath == "" {
		flag.Usage()
		os.Exit(2)
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	m, err := levels.Load(*mapPath)
	if err != nil {
		log.Fatalf("Failed to load map: %v", err)
	}

	id := *layerID
	if id == -1 {
		id = m.GameLayerID
	}
	if !m.Layers.IsValid(id) || !m.Layers.Get(id).IsTileLayer() {
		log.Fatalf("Layer %d is not a tile layer", id)
	}
	l := m.Layers.Get(id)
	if !m.IsValidImage(l.ImageID) {
		log.Fatalf("Layer %d has no image", id)
	}

	mapper, err := automap.NewRegistry(cfg.RulesDir).Find(m.Images[l.ImageID].Name)
	if err != nil {
		log.Fatalf("Failed to load rules: %v", err)
	}

	if *ruleset == "" {
		for i := 0; i < mapper.RuleSetCount(); i++ {
			fmt.Printf("%d\t%s\n", i, mapper.RuleSetName(i))
		}
		return
	}

	rid := -1
	for i := 0; i < mapper.RuleSetCount(); i++ {
		if mapper.RuleSetName(i) == *ruleset {
			rid = i
			break
		}
	}
	if rid == -1 {
		log.Fatalf("No ruleset %q for image %s", *ruleset, m.Images[l.ImageID].Name)
	}

	automap.AutomapWhole(mapper, l.Tiles(), l.Width(), l.Height(), rid)

	dst := *out
	if dst == "" {
		dst = *mapPath
	}
	if err := m.Save(dst); err != nil {
		log.Fatalf("Failed to save map: %v", err)
	}
	log.Printf("automap: %s applied to layer %d, saved %s", *ruleset, id, dst)
}
