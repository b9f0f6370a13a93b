package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.design/x/clipboard"

	"github.com/milk9111/mapedit/automap"
	"github.com/milk9111/mapedit/config"
	"github.com/milk9111/mapedit/editor"
	"github.com/milk9111/mapedit/levels"
)

// rulesQuiet is how long rule files must stay untouched before a reload.
const rulesQuiet = 150 * time.Millisecond

func main() {
	configPath := flag.String("config", "mapedit.yaml", "Path to the editor config file")
	mapName := flag.String("map", "", "Map to open from the maps directory (basename or path, .json optional)")
	rulesDir := flag.String("rules", "", "Directory with automap rule files, overrides rules_dir from the config")
	flag.Parse()

	log.Println("Editor starting...")
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *rulesDir != "" {
		cfg.RulesDir = *rulesDir
	}

	blank, err := levels.LoadFromFS("blank.json")
	if err != nil {
		log.Fatalf("Failed to load blank map: %v", err)
	}
	registry := automap.NewRegistry(cfg.RulesDir)
	ed := editor.New(blank, editor.Options{
		HistorySize: cfg.HistorySize,
		MapsDir:     cfg.MapsDir,
		Automap:     registry,
	})
	if *mapName != "" {
		if err := ed.LoadFile(ed.MapPath(*mapName)); err != nil {
			log.Printf("Failed to load map %s: %v", *mapName, err)
		}
	}

	var watcher *automap.Watcher
	if cfg.WatchRules {
		if st, err := os.Stat(cfg.RulesDir); err == nil && st.IsDir() {
			watcher, err = automap.NewWatcher(registry.Watches, rulesQuiet, cfg.RulesDir)
			if err != nil {
				log.Printf("Failed to watch %s: %v", cfg.RulesDir, err)
			} else {
				defer watcher.Close()
				log.Printf("Watching %s for rule changes", cfg.RulesDir)
			}
		}
	}

	clipboardOK := true
	if err := clipboard.Init(); err != nil {
		log.Printf("Clipboard unavailable: %v", err)
		clipboardOK = false
	}

	game := NewGame(ed, registry, watcher, cfg.TileSize, clipboardOK)

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle("mapedit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
