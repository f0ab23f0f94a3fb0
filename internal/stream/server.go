package stream

import (
	"context"
	"image/color"
	"image/png"
	"io"
	"log"
	"net/http"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"d2ca/internal/render"
	"d2ca/pkg/core"
)

// Options configures a Server.
type Options struct {
	TPS int
	// Generations stops Run after this many steps. Zero runs until ctx ends.
	Generations int
	// Scale is the pixel size of one cell in /frame.png.
	Scale int

	Logger *log.Logger
}

// Server steps a simulation on a single goroutine and publishes each
// generation. HTTP handlers only ever read a copied snapshot, so the
// simulation itself is never shared between goroutines.
type Server struct {
	sim      core.Sim
	size     core.Size
	hub      *Hub
	opts     Options
	log      *log.Logger
	upgrader websocket.Upgrader

	mu    sync.RWMutex
	gen   uint64
	cells []uint8
	text  string
	frame []byte
}

// NewServer wraps sim. The caller must not touch sim once Run has started.
func NewServer(sim core.Sim, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	s := &Server{
		sim:  sim,
		size: sim.Size(),
		hub:  NewHub(logger),
		opts: opts,
		log:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	s.snapshot()
	return s
}

// snapshot copies the simulation's current generation for readers and
// returns its wire frame.
func (s *Server) snapshot() []byte {
	cells := slices.Clone(s.sim.Cells())
	text := s.sim.Render()
	gen := s.sim.Generation()
	frame := EncodeFrame(s.size.W, s.size.H, gen, cells)

	s.mu.Lock()
	s.gen, s.cells, s.text, s.frame = gen, cells, text, frame
	s.mu.Unlock()
	return frame
}

// Run advances the simulation at the configured rate and broadcasts every
// generation until ctx is done or the generation limit is reached. Connected
// clients are closed when Run returns. Run must only be called once.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	go s.hub.Run(ctx)
	defer func() {
		cancel()
		<-s.hub.Done()
	}()

	s.mu.RLock()
	first := s.frame
	s.mu.RUnlock()
	if err := s.hub.Publish(ctx, first); err != nil {
		return err
	}

	steps := 0
	fs := core.NewFixedStep(s.opts.TPS)
	ticker := time.NewTicker(fs.Interval())
	defer ticker.Stop()

	s.log.Printf("streaming %s %dx%d at %d tps", s.sim.Name(), s.size.W, s.size.H, s.opts.TPS)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			for n := fs.Due(now); n > 0; n-- {
				s.sim.Step()
				steps++
				if err := s.hub.Publish(ctx, s.snapshot()); err != nil {
					return err
				}
				if s.opts.Generations > 0 && steps >= s.opts.Generations {
					s.log.Printf("reached generation limit %d", s.opts.Generations)
					return nil
				}
			}
		}
	}
}

// Handler returns the HTTP routes: /ws streams binary frames, /frame.txt and
// /frame.png serve the latest generation.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWS)
	mux.HandleFunc("/frame.txt", s.serveText)
	mux.HandleFunc("/frame.png", s.servePNG)
	return mux
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Printf("upgrade failed: %v", err)
		return
	}
	client := newClient(s.hub, conn)
	if !s.hub.add(r.Context(), client) {
		s.sendFinal(conn)
		return
	}
	go client.writePump()
	go client.readPump()
}

// sendFinal gives a viewer that connects after Run has stopped the last
// generation, then closes the connection.
func (s *Server) sendFinal(conn *websocket.Conn) {
	defer conn.Close()
	s.mu.RLock()
	frame := s.frame
	s.mu.RUnlock()

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
		s.log.Printf("writing final frame: %v", err)
		return
	}
	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "simulation stopped"))
}

func (s *Server) serveText(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	gen, text := s.gen, s.text
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Generation", strconv.FormatUint(gen, 10))
	io.WriteString(w, text)
}

func (s *Server) servePNG(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	gen, cells := s.gen, s.cells
	s.mu.RUnlock()

	img := render.Image(cells, s.size.W, s.size.H, s.opts.Scale, color.White, color.Black)
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Generation", strconv.FormatUint(gen, 10))
	if err := png.Encode(w, img); err != nil {
		s.log.Printf("encoding png: %v", err)
	}
}
