package stream

import (
	"context"
	"errors"
	"log"
	"sync"
)

// ErrHubClosed is returned when publishing to a hub that has stopped.
var ErrHubClosed = errors.New("stream: hub closed")

// Hub maintains the set of active clients and broadcasts frames to them.
// A client that falls behind by more than its send buffer is dropped.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	logger     *log.Logger

	mu     sync.Mutex
	latest []byte
}

// NewHub initializes a new Hub.
func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run handles client connections and broadcasts until ctx is done. It must
// only be called once.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.logger.Printf("hub shutting down")
			return
		case client := <-h.register:
			h.clients[client] = true
			if latest := h.Latest(); latest != nil {
				client.send <- latest
			}
			h.logger.Printf("client connected (%d active)", len(h.clients))
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.logger.Printf("client disconnected (%d active)", len(h.clients))
			}
		case frame := <-h.broadcast:
			h.mu.Lock()
			h.latest = frame
			h.mu.Unlock()
			for client := range h.clients {
				select {
				case client.send <- frame:
				default:
					delete(h.clients, client)
					close(client.send)
					h.logger.Printf("dropping slow client")
				}
			}
		}
	}
}

// Done is closed once Run has returned.
func (h *Hub) Done() <-chan struct{} { return h.done }

// Latest returns the most recently broadcast frame, or nil.
func (h *Hub) Latest() []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.latest
}

// Publish hands frame to every connected client. frame must not be modified
// afterwards.
func (h *Hub) Publish(ctx context.Context, frame []byte) error {
	select {
	case h.broadcast <- frame:
		return nil
	case <-h.done:
		return ErrHubClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Hub) add(ctx context.Context, c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
	case <-ctx.Done():
	}
	return false
}

func (h *Hub) remove(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}
