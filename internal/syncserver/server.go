// Package syncserver exposes the active stage over HTTP and websockets so an
// external step list can follow and drive the viewer.
package syncserver

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Message types on the websocket.
const (
	TypeStage = "stage" // server -> client: the active stage changed
	TypeGoto  = "goto"  // client -> server: please show this stage
)

const writeWait = 10 * time.Second

// Message is the websocket and REST payload.
type Message struct {
	Type  string `json:"type,omitempty"`
	Stage int    `json:"stage"`
	Count int    `json:"count"`
}

// RequestFunc receives stage requests from remote clients. It is called from
// server goroutines and must be safe for concurrent use.
type RequestFunc func(stage int)

// Server publishes stage transitions and forwards remote step requests.
type Server struct {
	hub       *Hub
	log       *zap.Logger
	onRequest RequestFunc
	router    *mux.Router
	upgrader  websocket.Upgrader

	mu    sync.RWMutex
	state Message

	httpMu sync.Mutex
	http   *http.Server
}

// New creates a server and starts its hub.
func New(onRequest RequestFunc, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		hub:       NewHub(),
		log:       log,
		onRequest: onRequest,
		state:     Message{Type: TypeStage, Stage: 1, Count: 0},
		upgrader: websocket.Upgrader{
			// Local tool; any page may follow along
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/v1/stage", s.getStage).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/stage", s.postStage).Methods(http.MethodPost)
	r.HandleFunc("/ws/stage", s.serveWS).Methods(http.MethodGet)
	s.router = r

	go s.hub.Run()
	return s
}

// Handler returns the HTTP handler with CORS applied.
func (s *Server) Handler() http.Handler {
	return cors(s.router)
}

// Publish records the active stage and pushes it to every websocket client.
// It never blocks; clients that miss an update while the hub is backed up
// still get the recorded stage from the REST endpoint or on reconnect.
func (s *Server) Publish(stage, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Message{Type: TypeStage, Stage: stage, Count: count}
	data, err := json.Marshal(s.state)
	if err != nil {
		s.log.Error("encoding stage", zap.Error(err))
		return
	}
	if !s.hub.Broadcast(data) {
		s.log.Warn("stage update not broadcast", zap.Int("stage", stage))
	}
}

// State returns the last published stage.
func (s *Server) State() Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Clients returns the number of connected websocket clients.
func (s *Server) Clients() int {
	return s.hub.Len()
}

// Start listens on addr and serves in the background. It returns the bound
// address, which differs from addr when the port is 0.
func (s *Server) Start(addr string) (string, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", err
	}
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.httpMu.Lock()
	s.http = srv
	s.httpMu.Unlock()

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("sync server stopped", zap.Error(err))
		}
	}()
	s.log.Info("sync server listening", zap.String("addr", ln.Addr().String()))
	return ln.Addr().String(), nil
}

// Shutdown stops the listener, if any, and disconnects every client.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Stop()
	s.httpMu.Lock()
	srv := s.http
	s.httpMu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

func (s *Server) getStage(w http.ResponseWriter, r *http.Request) {
	state := s.State()
	state.Type = ""
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) postStage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Stage int `json:"stage"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := s.validate(req.Stage); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.request(req.Stage, "http")
	writeJSON(w, http.StatusAccepted, Message{Stage: req.Stage, Count: s.State().Count})
}

func (s *Server) validate(stage int) error {
	if stage < 1 {
		return errors.New("stage must be 1 or greater")
	}
	if count := s.State().Count; count > 0 && stage > count {
		return errors.New("stage is past the last stage")
	}
	return nil
}

func (s *Server) request(stage int, source string) {
	s.log.Debug("stage requested", zap.Int("stage", stage), zap.String("source", source))
	if s.onRequest != nil {
		s.onRequest(stage)
	}
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &Client{
		ID:   uuid.NewString(),
		Send: make(chan []byte, 256),
		Conn: conn,
	}
	log := s.log.With(zap.String("client", client.ID))

	// Queue the current stage before joining so no publish slips between
	s.mu.RLock()
	hello, _ := json.Marshal(s.state)
	client.Send <- hello
	ok := s.hub.Register(client)
	s.mu.RUnlock()
	if !ok {
		conn.Close()
		return
	}
	log.Info("websocket client connected", zap.String("remote", r.RemoteAddr))

	go s.readPump(client, log)
	go writePump(client, log)
}

func (s *Server) readPump(client *Client, log *zap.Logger) {
	defer func() {
		s.hub.Unregister(client)
		client.Conn.Close()
		log.Info("websocket client disconnected")
	}()
	for {
		_, data, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn("websocket read error", zap.Error(err))
			}
			return
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Debug("ignoring malformed message", zap.Error(err))
			continue
		}
		if msg.Type != TypeGoto {
			log.Debug("ignoring message", zap.String("type", msg.Type))
			continue
		}
		if err := s.validate(msg.Stage); err != nil {
			log.Debug("ignoring stage request", zap.Int("stage", msg.Stage), zap.Error(err))
			continue
		}
		s.request(msg.Stage, client.ID)
	}
}

func writePump(client *Client, log *zap.Logger) {
	defer client.Conn.Close()
	for message := range client.Send {
		client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Debug("websocket write error", zap.Error(err))
			return
		}
	}
	// Hub closed the channel
	client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
	client.Conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
