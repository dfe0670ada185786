package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ayusman/fingerspell/internal/server/api"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// captionInterval is the broadcast rate for live captions (~15 FPS,
// matching the active pipeline rate).
const captionInterval = 66 * time.Millisecond

// CaptionHandler broadcasts the live smoothed symbol and transcript via
// WebSocket. The smoothed symbol is shown to the user every frame,
// whether or not it ever commits.
type CaptionHandler struct {
	session api.Session
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
}

// NewCaptionHandler creates a CaptionHandler for the given session.
func NewCaptionHandler(s api.Session) *CaptionHandler {
	h := &CaptionHandler{
		session: s,
		clients: make(map[*websocket.Conn]bool),
	}
	go h.broadcast()
	return h
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *CaptionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// broadcast pushes caption updates to all connected clients.
func (h *CaptionHandler) broadcast() {
	ticker := time.NewTicker(captionInterval)
	defer ticker.Stop()

	for range ticker.C {
		h.mu.RLock()
		idle := len(h.clients) == 0
		h.mu.RUnlock()
		if idle {
			continue
		}

		msg, _ := json.Marshal(map[string]any{
			"symbol":    string(h.session.Smoothed()),
			"text":      h.session.Text(),
			"timestamp": time.Now().UnixMilli(),
		})

		h.mu.RLock()
		for conn := range h.clients {
			conn.WriteMessage(websocket.TextMessage, msg)
		}
		h.mu.RUnlock()
	}
}
