package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"d2ca/internal/app"
	"d2ca/internal/term"
	"d2ca/pkg/core"
	_ "d2ca/pkg/sims/life"
)

func main() {
	plain := flag.Bool("plain", false, "print text frames to stdout instead of drawing on the terminal")
	cfg, err := app.Load(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	sim, err := cfg.NewSim()
	if err != nil {
		log.Fatal(err)
	}

	if *plain {
		if err := printFrames(sim, cfg.Run.Generations); err != nil {
			log.Fatal(err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("opening terminal: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("initializing terminal: %v", err)
	}

	err = term.Run(ctx, screen, sim, term.Options{
		TPS:         cfg.Run.TPS,
		Generations: cfg.Run.Generations,
		Seed:        cfg.Grid.Seed,
	})
	screen.Fini()
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}

// printFrames writes generations 0 through gens, separated by blank lines.
func printFrames(sim core.Sim, gens int) error {
	w := bufio.NewWriter(os.Stdout)
	for gen := 0; ; gen++ {
		if gen > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprint(w, sim.Render())
		if gen >= gens {
			break
		}
		sim.Step()
	}
	return w.Flush()
}
