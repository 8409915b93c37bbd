// Package server bridges the museum to web pages over a websocket: pages
// send navigation commands in and receive museum events out as JSON.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"virtual-museum/internal/logger"
	"virtual-museum/internal/museum"
)

const (
	writeWait  = 5 * time.Second
	sendBuffer = 32
	maxMessage = 4 << 10
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Controller accepts commands for the next museum tick.
type Controller interface {
	Enqueue(museum.Command)
}

// Inbound message types.
const (
	TypeSwitchRoom = "switch_room"
	TypeStartTour  = "start_tour"
	TypeStopTour   = "stop_tour"
	TypeRelease    = "release"
	TypeSelect     = "select"
)

type inboundMessage struct {
	Type      string `json:"type"`
	RoomID    string `json:"roomId,omitempty"`
	ArtworkID string `json:"artworkId,omitempty"`
}

// Command converts the message into a museum command.
func (m inboundMessage) Command() (museum.Command, error) {
	switch m.Type {
	case TypeSwitchRoom:
		if m.RoomID == "" {
			return museum.Command{}, errors.New("switch_room needs roomId")
		}
		return museum.Command{Kind: museum.SwitchRoomCommand, RoomID: m.RoomID}, nil
	case TypeStartTour:
		return museum.Command{Kind: museum.StartTourCommand}, nil
	case TypeStopTour:
		return museum.Command{Kind: museum.StopTourCommand}, nil
	case TypeRelease:
		return museum.Command{Kind: museum.ReleaseCommand}, nil
	case TypeSelect:
		if m.ArtworkID == "" {
			return museum.Command{}, errors.New("select needs artworkId")
		}
		return museum.Command{Kind: museum.SelectCommand, ArtworkID: m.ArtworkID}, nil
	}
	return museum.Command{}, fmt.Errorf("unknown message type %q", m.Type)
}

type roomDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type artworkDTO struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Wall   string `json:"wall"`
	Slot   int    `json:"slot"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

type eventMsg struct {
	Type    string      `json:"type"`
	Room    roomDTO     `json:"room"`
	Artwork *artworkDTO `json:"artwork,omitempty"`
}

type errorMsg struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Envelope encodes a museum event for the wire.
func Envelope(e museum.Event) ([]byte, error) {
	msg := eventMsg{
		Type: e.Kind.String(),
		Room: roomDTO{ID: e.Room.ID, Name: e.Room.Name, Description: e.Room.Description},
	}
	if e.Artwork != nil {
		a := &artworkDTO{
			ID:    e.Artwork.Artwork.ID,
			Title: e.Artwork.Artwork.Title,
			Wall:  e.Artwork.Wall.String(),
			Slot:  e.Artwork.Slot,
		}
		if e.Asset != nil {
			a.Width, a.Height = e.Asset.Width, e.Asset.Height
		}
		msg.Artwork = a
	}
	return json.Marshal(msg)
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Server is an http.Handler for the /ws endpoint plus an event listener
// that fans museum events out to every connected page.
type Server struct {
	target Controller
	log    *logger.Logger

	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
}

// New returns a server queuing commands on target.
func New(target Controller, log *logger.Logger) *Server {
	return &Server{target: target, log: log, clients: make(map[*client]struct{})}
}

// Handler returns the routes served by the bridge.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.ServeWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return mux
}

// ServeWS upgrades the request and serves one page until it disconnects.
func (s *Server) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Logf("server: upgrade: %v", err)
		return
	}
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	if !s.add(c) {
		conn.Close()
		return
	}
	go c.writePump()
	defer s.remove(c)

	conn.SetReadLimit(maxMessage)
	for {
		var msg inboundMessage
		if err := conn.ReadJSON(&msg); err != nil {
			var syntax *json.SyntaxError
			var typ *json.UnmarshalTypeError
			if errors.As(err, &syntax) || errors.As(err, &typ) {
				s.reply(c, errorMsg{Type: "error", Message: "malformed message"})
				continue
			}
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Logf("server: read: %v", err)
			}
			return
		}
		cmd, err := msg.Command()
		if err != nil {
			s.reply(c, errorMsg{Type: "error", Message: err.Error()})
			continue
		}
		s.target.Enqueue(cmd)
	}
}

func (s *Server) add(c *client) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.clients[c] = struct{}{}
	return true
}

func (s *Server) remove(c *client) {
	s.mu.Lock()
	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		close(c.send)
	}
	s.mu.Unlock()
}

func (s *Server) reply(c *client, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c]; ok {
		select {
		case c.send <- data:
		default:
		}
	}
}

// Clients returns the number of connected pages.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// OnEvent is a museum listener. Pages that fall behind miss events rather
// than stall the tick.
func (s *Server) OnEvent(e museum.Event) {
	data, err := Envelope(e)
	if err != nil {
		s.log.Logf("server: encode %s: %v", e.Kind, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		select {
		case c.send <- data:
		default:
			s.log.Logf("server: dropping %s for a slow page", e.Kind)
		}
	}
}

// Close disconnects every page and refuses new ones.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for c := range s.clients {
		delete(s.clients, c)
		close(c.send)
	}
}

func (c *client) writePump() {
	defer c.conn.Close()
	for data := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// ListenAndServe serves the bridge on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.log.Logf("server: listening on %s", addr)

	select {
	case err := <-errc:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}
	s.Close()
	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdown); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
