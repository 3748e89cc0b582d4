package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Oneiron/internal/config"
	"github.com/Garsondee/Oneiron/internal/host"
)

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "YAML settings file (default: built-in settings)")
	flag.Parse()

	cfg, err := config.Load(cfgPath, ".env")
	if err != nil {
		log.Fatal(err)
	}
	g, err := host.New(cfg)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
