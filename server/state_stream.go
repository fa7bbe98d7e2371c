// Package server streams the globe's per-frame state to websocket clients.
// It is a debugging aid; the render loop only ever calls Publish.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/TheRayOfSeasons/tech-sharing-globe/core"
)

const (
	// broadcast at most this often regardless of the frame rate
	broadcastInterval = 100 * time.Millisecond
	writeTimeout      = time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// StateServer fans frame snapshots out to connected clients
type StateServer struct {
	addr    string
	updates chan core.FrameState

	latestMutex sync.RWMutex
	latest      core.FrameState
	hasLatest   bool

	clientsMutex sync.RWMutex
	clients      map[*websocket.Conn]*sync.Mutex
}

// NewStateServer creates a server that will listen on addr
func NewStateServer(addr string) *StateServer {
	return &StateServer{
		addr:    addr,
		updates: make(chan core.FrameState, 16),
		clients: make(map[*websocket.Conn]*sync.Mutex),
	}
}

// Publish hands a snapshot to the server. It never blocks; when the server
// falls behind the snapshot is dropped.
func (s *StateServer) Publish(state core.FrameState) {
	select {
	case s.updates <- state:
	default:
	}
}

// Latest returns the most recent snapshot the server has seen
func (s *StateServer) Latest() (core.FrameState, bool) {
	s.latestMutex.RLock()
	defer s.latestMutex.RUnlock()
	return s.latest, s.hasLatest
}

// Handler serves /ws (stream) and /state (latest snapshot as JSON)
func (s *StateServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/state", s.handleState)
	return mux
}

// ListenAndServe runs the HTTP listener and the broadcast loop until ctx is done
func (s *StateServer) ListenAndServe(ctx context.Context) error {
	httpServer := &http.Server{Addr: s.addr, Handler: s.Handler()}

	go s.Serve(ctx)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	fmt.Printf("Debug state stream on ws://%s/ws\n", s.addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("debug server: %v", err)
	}
	return nil
}

// Serve consumes published snapshots and broadcasts the newest one on every
// tick until ctx is done.
func (s *StateServer) Serve(ctx context.Context) {
	ticker := time.NewTicker(broadcastInterval)
	defer ticker.Stop()

	dirty := false
	for {
		select {
		case <-ctx.Done():
			s.closeClients()
			return
		case state := <-s.updates:
			s.latestMutex.Lock()
			s.latest = state
			s.hasLatest = true
			s.latestMutex.Unlock()
			dirty = true
		case <-ticker.C:
			if dirty {
				s.broadcast()
				dirty = false
			}
		}
	}
}

func (s *StateServer) handleState(w http.ResponseWriter, r *http.Request) {
	state, ok := s.Latest()
	if !ok {
		http.Error(w, "no frame rendered yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(state)
}

func (s *StateServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	connMutex := &sync.Mutex{}
	s.clientsMutex.Lock()
	s.clients[conn] = connMutex
	s.clientsMutex.Unlock()
	defer func() {
		s.clientsMutex.Lock()
		delete(s.clients, conn)
		s.clientsMutex.Unlock()
	}()

	// Send the current state right away
	if state, ok := s.Latest(); ok {
		if err := writeState(conn, connMutex, state); err != nil {
			return
		}
	}

	// Clients never send anything meaningful; read only to notice the close
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *StateServer) broadcast() {
	state, ok := s.Latest()
	if !ok {
		return
	}

	s.clientsMutex.RLock()
	defer s.clientsMutex.RUnlock()
	for conn, mutex := range s.clients {
		if err := writeState(conn, mutex, state); err != nil {
			log.Println("WebSocket write error:", err)
			conn.Close()
		}
	}
}

func (s *StateServer) closeClients() {
	s.clientsMutex.RLock()
	defer s.clientsMutex.RUnlock()
	for conn := range s.clients {
		conn.Close()
	}
}

func writeState(conn *websocket.Conn, mutex *sync.Mutex, state core.FrameState) error {
	mutex.Lock()
	defer mutex.Unlock()
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteJSON(state)
}
