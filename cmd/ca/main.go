//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"pca-sim/internal/app"
	"pca-sim/internal/core"
	_ "pca-sim/internal/epidemic"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	factory, err := core.Lookup(cfg.Sim)
	if err != nil {
		log.Fatal(err)
	}

	sim, err := factory(cfg.Set)
	if err != nil {
		log.Fatal(err)
	}
	if err := sim.Reset(cfg.Seed); err != nil {
		log.Fatal(err)
	}

	game := app.New(sim, cfg)

	ebiten.SetWindowTitle("pca-sim: " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(game.Layout(0, 0))

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
