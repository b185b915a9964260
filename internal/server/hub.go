package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/runoshun/kanban/internal/domain"
	"github.com/runoshun/kanban/internal/tool"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 1024 * 1024 // 1MB

	// Per-client and hub queue sizes
	sendBuffer      = 256
	broadcastBuffer = 256
)

// Message types.
const (
	TypeCall         = "call"
	TypeReturn       = "return"
	TypeError        = "error"
	TypePing         = "ping"
	TypePong         = "pong"
	TypeBoardChanged = "board_changed"
)

// Message is the frame format for WebSocket communication.
type Message struct {
	Data    any             `json:"data,omitempty"`
	Type    string          `json:"type"`
	ID      string          `json:"id,omitempty"`
	Tool    string          `json:"tool,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Client is one connected WebSocket peer.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	subject string
}

// Hub tracks connected clients, broadcasts board changes and runs tool
// calls arriving over WebSocket.
type Hub struct {
	tools      *tool.Dispatcher
	logger     domain.Logger
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

const catWS = "ws"

// NewHub creates a new hub instance.
func NewHub(tools *tool.Dispatcher, logger domain.Logger) *Hub {
	return &Hub{
		tools:      tools,
		logger:     logger,
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Broadcast queues msg for every client. It never blocks; when the queue
// is full or the hub has stopped the message is dropped.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error(catWS, fmt.Sprintf("marshal %s: %v", msg.Type, err))
		return
	}
	select {
	case <-h.done:
	case h.broadcast <- data:
	default:
		h.logger.Warn(catWS, fmt.Sprintf("broadcast queue full, dropped %s", msg.Type))
	}
}

// Run starts the hub's main loop. It returns when ctx is canceled.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		close(h.done)
		for client := range h.clients {
			close(client.send)
			delete(h.clients, client)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			h.clients[client] = true
			h.logger.Info(catWS, fmt.Sprintf("client connected: %s", client.label()))
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.logger.Info(catWS, fmt.Sprintf("client disconnected: %s", client.label()))
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Client's send buffer is full, assume disconnected
					h.logger.Warn(catWS, fmt.Sprintf("send buffer full, removing client: %s", client.label()))
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}

// attach registers conn and starts its pumps.
func (h *Hub) attach(ctx context.Context, conn *websocket.Conn, subject string) error {
	client := &Client{
		hub:     h,
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
		subject: subject,
	}
	select {
	case h.register <- client:
	case <-h.done:
		return errors.New("hub stopped")
	case <-ctx.Done():
		return ctx.Err()
	}

	go client.writePump()
	go client.readPump()
	return nil
}

func (c *Client) label() string {
	if c.subject == "" {
		return c.conn.RemoteAddr().String()
	}
	return c.subject
}

// readPump pumps messages from the WebSocket connection and answers them.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn(catWS, fmt.Sprintf("read error: %v", err))
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.reply(Message{Type: TypeError, Data: errorBody{Error: "malformed message"}})
			continue
		}
		c.handle(msg)
	}
}

func (c *Client) handle(msg Message) {
	switch msg.Type {
	case TypePing:
		c.reply(Message{Type: TypePong, Data: map[string]string{"timestamp": time.Now().Format(time.RFC3339)}})
	case TypeCall:
		resp, err := c.hub.tools.CallJSON(context.Background(), msg.Tool, msg.Payload)
		if err != nil {
			c.reply(Message{Type: TypeError, ID: msg.ID, Data: errorBody{Error: err.Error()}})
			return
		}
		c.reply(Message{Type: TypeReturn, ID: msg.ID, Data: resp})
	default:
		c.reply(Message{Type: TypeError, ID: msg.ID, Data: errorBody{Error: fmt.Sprintf("unknown message type %q", msg.Type)}})
	}
}

// reply queues msg for this client only.
func (c *Client) reply(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		c.hub.logger.Error(catWS, fmt.Sprintf("marshal %s: %v", msg.Type, err))
		return
	}
	defer func() {
		// send is closed when the hub drops the client.
		_ = recover()
	}()
	select {
	case c.send <- data:
	default:
		c.hub.logger.Warn(catWS, fmt.Sprintf("send buffer full, dropped %s for %s", msg.Type, c.label()))
	}
}

// writePump pumps messages from the hub to the WebSocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			// One frame per message so clients can decode each as JSON.
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
