// Package term runs a simulation on a terminal screen.
package term

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"d2ca/pkg/core"
	"d2ca/pkg/sims/life"
)

// Options configures Run.
type Options struct {
	TPS int
	// Generations stops the run after this many steps. Zero runs until quit.
	Generations int
	// Seed is used by the reset key.
	Seed int64

	Logger *log.Logger
}

type host struct {
	screen tcell.Screen
	sim    core.Sim
	opts   Options
	log    *log.Logger

	paused bool
	steps  int
}

// Run draws sim on screen and advances it at opts.TPS until the user quits,
// the generation limit is reached or ctx is cancelled. The caller owns the
// screen: it must be initialized before Run and finalized afterwards.
//
// Keys: q or Esc quits, space pauses, n steps once while paused, r resets
// with opts.Seed and s resets with a fresh seed.
func Run(ctx context.Context, screen tcell.Screen, sim core.Sim, opts Options) error {
	h := newHost(screen, sim, opts)

	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	fs := core.NewFixedStep(opts.TPS)
	ticker := time.NewTicker(fs.Interval())
	defer ticker.Stop()

	h.draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
				h.draw()
			case *tcell.EventKey:
				if h.handleKey(ev) {
					h.draw()
					h.log.Printf("stopped at generation %d", h.sim.Generation())
					return nil
				}
				h.draw()
			}
		case now := <-ticker.C:
			if h.paused {
				continue
			}
			if h.advance(fs.Due(now)) {
				h.draw()
				h.log.Printf("reached generation limit %d", h.opts.Generations)
				return nil
			}
			h.draw()
		}
	}
}

func newHost(screen tcell.Screen, sim core.Sim, opts Options) *host {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &host{screen: screen, sim: sim, opts: opts, log: logger}
}

// advance steps up to n times and reports whether the generation limit was
// reached.
func (h *host) advance(n int) bool {
	for i := 0; i < n; i++ {
		if h.limitReached() {
			break
		}
		h.sim.Step()
		h.steps++
	}
	return h.limitReached()
}

func (h *host) limitReached() bool {
	return h.opts.Generations > 0 && h.steps >= h.opts.Generations
}

func (h *host) reset(seed int64) {
	h.sim.Reset(seed)
	h.steps = 0
}

// handleKey applies a key press and reports whether the run should end,
// either because the user quit or a single step reached the generation limit.
func (h *host) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
	default:
		return false
	}
	switch ev.Rune() {
	case 'q':
		return true
	case ' ':
		h.paused = !h.paused
	case 'n':
		if h.paused {
			return h.advance(1)
		}
	case 'r':
		h.reset(h.opts.Seed)
	case 's':
		h.reset(time.Now().UnixNano())
	}
	return false
}

func (h *host) draw() {
	size := h.sim.Size()
	cells := h.sim.Cells()
	alive := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	dead := tcell.StyleDefault.Foreground(tcell.ColorGray)

	h.screen.Clear()
	sw, sh := h.screen.Size()
	for y := 0; y < size.H && y < sh-1; y++ {
		for x := 0; x < size.W && x < sw; x++ {
			if cells[y*size.W+x] != 0 {
				h.screen.SetContent(x, y, life.AliveGlyph, nil, alive)
				continue
			}
			h.screen.SetContent(x, y, life.DeadGlyph, nil, dead)
		}
	}

	pop := 0
	for _, c := range cells {
		pop += int(c)
	}
	status := fmt.Sprintf("gen %d  pop %d", h.sim.Generation(), pop)
	if h.paused {
		status += "  [paused]"
	}
	row := min(size.H, sh-1)
	for i, r := range []rune(status) {
		if i >= sw {
			break
		}
		h.screen.SetContent(i, row, r, nil, tcell.StyleDefault)
	}
	h.screen.Show()
}
