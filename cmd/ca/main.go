//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"d2ca/internal/app"
	_ "d2ca/pkg/sims/life"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg, err := app.Load(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	sim, err := cfg.NewSim()
	if err != nil {
		log.Fatal(err)
	}

	game := app.New(sim, cfg)
	size := sim.Size()

	ebiten.SetWindowTitle("d2ca — " + sim.Name())
	ebiten.SetTPS(cfg.Run.TPS)
	ebiten.SetWindowSize(size.W*cfg.Run.Scale, size.H*cfg.Run.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
