package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"LocalAnnotate/internal/command"
	"LocalAnnotate/internal/engine"
)

// ErrClosed is returned for requests on a closed client.
var ErrClosed = errors.New("net: client closed")

// inbound is either a command.Response (matched by ID) or an engine.Event
// (carries a Type).
type inbound struct {
	command.Response
	Type string `json:"type"`
}

// Client is a remote control panel's connection to a host.
type Client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex

	mu      sync.Mutex
	pending map[string]chan command.Response
	onEvent func(engine.Event)
	closed  bool
	done    chan struct{}
}

// Dial connects to the command endpoint at addr (host:port).
func Dial(ctx context.Context, addr string) (*Client, error) {
	u := url.URL{Scheme: "ws", Host: addr, Path: Path}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", u.String(), err)
	}
	c := &Client{
		conn:    conn,
		pending: make(map[string]chan command.Response),
		done:    make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

// OnEvent sets the callback for pushed notifications. It runs on the
// client's read goroutine.
func (c *Client) OnEvent(fn func(engine.Event)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onEvent = fn
}

// Do sends req with a fresh ID and waits for the matching response.
func (c *Client) Do(ctx context.Context, req command.Request) (command.Response, error) {
	if err := req.Validate(); err != nil {
		return command.Response{}, err
	}
	req.ID = uuid.NewString()
	ch := make(chan command.Response, 1)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return command.Response{}, ErrClosed
	}
	c.pending[req.ID] = ch
	c.mu.Unlock()
	defer c.forget(req.ID)

	if err := c.write(req); err != nil {
		return command.Response{}, err
	}
	select {
	case resp := <-ch:
		return resp, nil
	case <-c.done:
		return command.Response{}, ErrClosed
	case <-ctx.Done():
		return command.Response{}, ctx.Err()
	}
}

// Send fires req without waiting for its response.
func (c *Client) Send(req command.Request) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return c.write(req)
}

func (c *Client) write(req command.Request) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.conn.WriteJSON(req); err != nil {
		return fmt.Errorf("send %s: %w", req.Type, err)
	}
	return nil
}

func (c *Client) forget(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pending, id)
}

func (c *Client) readLoop() {
	defer c.shutdown()
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[PANEL] Connection lost: %v", err)
			}
			return
		}
		var msg inbound
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("[PANEL] Bad message: %v", err)
			continue
		}
		c.route(msg)
	}
}

func (c *Client) route(msg inbound) {
	c.mu.Lock()
	if msg.Type != "" {
		fn := c.onEvent
		c.mu.Unlock()
		if fn != nil {
			fn(engine.Event{Type: msg.Type, Mode: msg.Mode})
		}
		return
	}
	ch, ok := c.pending[msg.ID]
	c.mu.Unlock()
	if ok {
		ch <- msg.Response
	}
}

func (c *Client) shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.done)
}

// Done is closed once the connection has ended.
func (c *Client) Done() <-chan struct{} { return c.done }

// Close ends the connection.
func (c *Client) Close() error {
	c.writeMu.Lock()
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.writeMu.Unlock()
	return c.conn.Close()
}
