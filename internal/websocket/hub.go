package eventws

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/events"
	websocket "github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

const (
	TypeSessionInvalidated = "session_invalidated"
	TypeSessionExpired     = "session_expired"
	TypeRequestEvent       = "request_event"
	TypePong               = "pong"
	TypeError              = "error"
)

const invalidateTimeout = 5 * time.Second

var ErrHubStopped = errors.New("event hub stopped")

// Hub owns every live socket. All client bookkeeping happens on the Run
// goroutine; other goroutines talk to it through channels.
type Hub struct {
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan *envelope
	invalidate chan string
	expire     chan *Client
	done       chan struct{}
	signInPath string
	logger     *zap.Logger
}

type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	userID    string
	sessionID string
	expiresAt time.Time
	// send is never closed; closed signals the write pump to flush and stop.
	send      chan []byte
	closed    chan struct{}
	closeOnce sync.Once
	timer     *time.Timer
}

type Message struct {
	Type      string               `json:"type"`
	Redirect  string               `json:"redirect,omitempty"`
	Event     *events.RequestEvent `json:"event,omitempty"`
	Content   string               `json:"content,omitempty"`
	Timestamp string               `json:"timestamp"`
}

type envelope struct {
	recipients []string
	message    *Message
}

func NewHub(signInPath string, logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *envelope, 64),
		invalidate: make(chan string, 64),
		expire:     make(chan *Client, 16),
		done:       make(chan struct{}),
		signInPath: signInPath,
		logger:     logger,
	}
}

func NewClient(hub *Hub, conn *websocket.Conn, userID, sessionID string, expiresAt time.Time) *Client {
	return &Client{
		hub:       hub,
		conn:      conn,
		userID:    userID,
		sessionID: sessionID,
		expiresAt: expiresAt,
		send:      make(chan []byte, 32),
		closed:    make(chan struct{}),
	}
}

func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for _, set := range h.clients {
				for client := range set {
					h.drop(client)
				}
			}
			return
		case client := <-h.register:
			h.add(client)
		case client := <-h.unregister:
			h.drop(client)
		case client := <-h.expire:
			if h.registered(client) {
				h.sendTo(client, h.sessionMessage(TypeSessionExpired))
				h.drop(client)
			}
		case sessionID := <-h.invalidate:
			h.closeSession(sessionID)
		case env := <-h.broadcast:
			h.deliver(env)
		}
	}
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		client.shutdown()
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// InvalidateSession tells every socket of the session to go back to sign-in
// and closes them. It waits for the hub to take the request, up to
// invalidateTimeout.
func (h *Hub) InvalidateSession(sessionID string) {
	timer := time.NewTimer(invalidateTimeout)
	defer timer.Stop()
	select {
	case h.invalidate <- sessionID:
	case <-h.done:
	case <-timer.C:
		h.logger.Error("session invalidation timed out, hub busy", zap.String("session_id", sessionID))
	}
}

// Notify pushes a request event to the trainee's and the trainer's sockets.
func (h *Hub) Notify(ctx context.Context, event events.RequestEvent) error {
	env := &envelope{
		recipients: []string{event.TraineeID, event.TrainerID},
		message: &Message{
			Type:      TypeRequestEvent,
			Event:     &event,
			Timestamp: formatTimestamp(time.Now()),
		},
	}
	select {
	case h.broadcast <- env:
		return nil
	case <-h.done:
		return ErrHubStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Hub) add(client *Client) {
	set, ok := h.clients[client.userID]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[client.userID] = set
	}
	set[client] = struct{}{}

	if client.expiresAt.IsZero() {
		return
	}
	client.timer = time.AfterFunc(time.Until(client.expiresAt), func() {
		select {
		case h.expire <- client:
		case <-h.done:
		}
	})
}

func (h *Hub) registered(client *Client) bool {
	set, ok := h.clients[client.userID]
	if !ok {
		return false
	}
	_, exists := set[client]
	return exists
}

func (h *Hub) drop(client *Client) {
	set, ok := h.clients[client.userID]
	if !ok {
		return
	}
	if _, exists := set[client]; exists {
		delete(set, client)
		if client.timer != nil {
			client.timer.Stop()
		}
		client.shutdown()
	}
	if len(set) == 0 {
		delete(h.clients, client.userID)
	}
}

func (h *Hub) closeSession(sessionID string) {
	message := h.sessionMessage(TypeSessionInvalidated)
	for _, set := range h.clients {
		for client := range set {
			if client.sessionID != sessionID {
				continue
			}
			h.sendTo(client, message)
			h.drop(client)
		}
	}
}

func (h *Hub) deliver(env *envelope) {
	encoded, err := json.Marshal(env.message)
	if err != nil {
		h.logger.Error("event hub encode message", zap.Error(err))
		return
	}

	seen := make(map[string]struct{}, len(env.recipients))
	for _, userID := range env.recipients {
		if _, ok := seen[userID]; ok || userID == "" {
			continue
		}
		seen[userID] = struct{}{}
		h.sendToUser(userID, encoded)
	}
}

func (h *Hub) sendToUser(userID string, payload []byte) {
	set, ok := h.clients[userID]
	if !ok {
		return
	}

	for client := range set {
		select {
		case client.send <- payload:
		default:
			h.drop(client)
		}
	}
}

func (h *Hub) sendTo(client *Client, message *Message) {
	payload, err := json.Marshal(message)
	if err != nil {
		return
	}
	select {
	case client.send <- payload:
	default:
	}
}

func (h *Hub) sessionMessage(messageType string) *Message {
	return &Message{
		Type:      messageType,
		Redirect:  h.signInPath,
		Timestamp: formatTimestamp(time.Now()),
	}
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ReadPump only keeps the connection alive: clients may ping, anything else
// is answered with an error frame.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var incoming struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(payload, &incoming); err != nil {
			c.reply(TypeError, "invalid message payload")
			continue
		}
		if incoming.Type != "ping" {
			c.reply(TypeError, "unsupported message type")
			continue
		}
		c.reply(TypePong, "")
	}
}

func (c *Client) shutdown() {
	c.closeOnce.Do(func() { close(c.closed) })
}

// Done is closed once the hub has let go of the client.
func (c *Client) Done() <-chan struct{} {
	return c.closed
}

func (c *Client) WritePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload := <-c.send:
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-c.closed:
			// Flush what the hub queued before letting go, e.g. the redirect.
			for {
				select {
				case payload := <-c.send:
					if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
						return
					}
				default:
					return
				}
			}
		}
	}
}

func (c *Client) reply(messageType, content string) {
	payload, err := json.Marshal(Message{
		Type:      messageType,
		Content:   content,
		Timestamp: formatTimestamp(time.Now()),
	})
	if err != nil {
		return
	}
	select {
	case <-c.closed:
		return
	default:
	}
	select {
	case c.send <- payload:
	case <-c.closed:
	default:
		c.hub.Unregister(c)
	}
}
