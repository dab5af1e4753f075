package server

import (
	"sync"

	"github.com/gorilla/websocket"
)

// hub fans one game's state out to its websocket subscribers. Every
// mutation of the game broadcasts the fresh state document, so clients
// never poll.
type hub struct {
	mu          sync.Mutex
	subscribers map[*websocket.Conn]struct{}
}

func newHub() *hub {
	return &hub{subscribers: make(map[*websocket.Conn]struct{})}
}

// join delivers the opening state and registers the connection in one
// critical section, so no broadcast can slip between the two.
func (h *hub) join(conn *websocket.Conn, state GameState) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := conn.WriteJSON(state); err != nil {
		conn.Close()
		return err
	}
	h.subscribers[conn] = struct{}{}
	return nil
}

func (h *hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	if _, ok := h.subscribers[conn]; ok {
		delete(h.subscribers, conn)
		conn.Close()
	}
	h.mu.Unlock()
}

// broadcast pushes the state to every subscriber. A failed write drops
// that subscriber; the game does not care whether anyone is listening.
func (h *hub) broadcast(state GameState) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.subscribers {
		if err := conn.WriteJSON(state); err != nil {
			delete(h.subscribers, conn)
			conn.Close()
		}
	}
}

func (h *hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.subscribers {
		conn.Close()
		delete(h.subscribers, conn)
	}
}
