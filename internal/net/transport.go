package net

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"LocalAnnotate/internal/command"
	"LocalAnnotate/internal/engine"
)

// Path is where the command endpoint is served.
const Path = "/ws"

const (
	sendBuffer = 16
	writeWait  = 5 * time.Second
)

// Dispatcher runs fn on the goroutine that owns the engine and waits for it.
type Dispatcher func(fn func())

// Peer is one connected control panel.
type Peer struct {
	ID   string
	conn *websocket.Conn
	send chan any
}

// Server exposes a command channel over websocket and pushes engine
// notifications to every connected peer.
type Server struct {
	channel  *command.Channel
	dispatch Dispatcher
	upgrader websocket.Upgrader

	peers map[string]*Peer
	mu    sync.RWMutex
}

func NewServer(ch *command.Channel, dispatch Dispatcher) *Server {
	return &Server{
		channel:  ch,
		dispatch: dispatch,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		peers: make(map[string]*Peer),
	}
}

// Handler returns the HTTP handler serving Path.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(Path, s)
	return mux
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()
	log.Printf("[NET] Command endpoint listening on %s%s", addr, Path)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[NET] Upgrade failed for %s: %v", r.RemoteAddr, err)
		return
	}
	p := &Peer{ID: uuid.NewString(), conn: conn, send: make(chan any, sendBuffer)}
	s.add(p)
	go s.writeLoop(p)
	s.readLoop(p)
}

func (s *Server) add(p *Peer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.peers[p.ID] = p
	log.Printf("[NET] Control panel %s connected from %s", p.ID, p.conn.RemoteAddr())
}

func (s *Server) remove(p *Peer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.peers[p.ID]; !ok {
		return
	}
	delete(s.peers, p.ID)
	close(p.send)
	log.Printf("[NET] Control panel %s disconnected", p.ID)
}

// Peers returns the number of connected control panels.
func (s *Server) Peers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.peers)
}

func (s *Server) readLoop(p *Peer) {
	defer s.remove(p)
	defer p.conn.Close()
	for {
		_, data, err := p.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[NET] Read from %s: %v", p.ID, err)
			}
			return
		}
		var req command.Request
		if err := json.Unmarshal(data, &req); err != nil {
			log.Printf("[NET] Bad request from %s: %v", p.ID, err)
			continue
		}
		if err := req.Validate(); err != nil {
			log.Printf("[NET] Ignoring %q from %s", req.Type, p.ID)
			continue
		}

		var (
			resp command.Response
			ok   bool
		)
		s.dispatch(func() { resp, ok = s.channel.Handle(req) })
		if ok {
			s.enqueue(p, resp)
		}
	}
}

func (s *Server) writeLoop(p *Peer) {
	for msg := range p.send {
		p.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := p.conn.WriteJSON(msg); err != nil {
			log.Printf("[NET] Write to %s: %v", p.ID, err)
			p.conn.Close()
			for range p.send {
			}
			return
		}
	}
	p.conn.SetWriteDeadline(time.Now().Add(writeWait))
	p.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func (s *Server) enqueue(p *Peer, msg any) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.peers[p.ID]; !ok {
		return
	}
	select {
	case p.send <- msg:
	default:
		log.Printf("[NET] Dropping message to slow peer %s", p.ID)
	}
}

// Notify pushes ev to every connected peer without blocking. Peers that are
// gone or backed up miss the event.
func (s *Server) Notify(ev engine.Event) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.peers {
		select {
		case p.send <- ev:
		default:
			log.Printf("[NET] Dropping %s for slow peer %s", ev.Type, p.ID)
		}
	}
}
