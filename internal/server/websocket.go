package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/weaveloop/combat-server-go/internal/combat"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // local presentation clients only
	},
}

// Command is a client request forwarded to the simulation loop. The loop
// drains pending commands once per tick, so intents arriving between ticks
// collapse into that tick's raw-intent set.
type Command struct {
	Type    string
	Ability combat.AbilityID
}

const (
	// CommandAbility requests one ability this tick.
	CommandAbility = "ability"
	// CommandReset reinitializes the session.
	CommandReset = "reset"
)

type inboundMessage struct {
	Type    string `json:"type"`
	Ability string `json:"ability,omitempty"`
}

type outboundMessage struct {
	Type   string             `json:"type"`
	State  combat.SessionView `json:"state"`
	Events []combat.Event     `json:"events,omitempty"`
}

// Client is one websocket connection.
type Client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans the per-tick session view out to every connected client and
// funnels their commands back to the simulation loop.
type Hub struct {
	logger     *zap.Logger
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	commands   chan Command
}

// NewHub creates an idle hub; call Run to start it.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		logger:     logger,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 8),
		commands:   make(chan Command, 64),
	}
}

// Commands returns the channel the simulation loop drains each tick.
func (h *Hub) Commands() <-chan Command {
	return h.commands
}

// Run owns the client set until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.logger.Info("client connected", zap.Int("clients", len(h.clients)))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.logger.Info("client disconnected", zap.Int("clients", len(h.clients)))
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow consumer; drop it rather than stall the tick.
					close(client.send)
					delete(h.clients, client)
				}
			}

		case <-ctx.Done():
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			return
		}
	}
}

// BroadcastState sends the tick's view and events to every client.
func (h *Hub) BroadcastState(view combat.SessionView, events []combat.Event) {
	payload, err := json.Marshal(outboundMessage{
		Type:   "state",
		State:  view,
		Events: events,
	})
	if err != nil {
		h.logger.Error("marshal state", zap.Error(err))
		return
	}
	select {
	case h.broadcast <- payload:
	default:
		h.logger.Warn("broadcast queue full, dropping tick")
	}
}

// ServeWS upgrades an HTTP request to a websocket client.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade", zap.Error(err))
		return
	}

	client := &Client{
		conn: conn,
		send: make(chan []byte, 256),
	}
	h.register <- client

	go client.writePump()
	go client.readPump(h)
}

func (c *Client) readPump(h *Hub) {
	defer func() {
		h.unregister <- c
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg inboundMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			h.logger.Warn("bad client message", zap.Error(err))
			continue
		}

		switch msg.Type {
		case CommandAbility:
			id := combat.AbilityID(msg.Ability)
			if !combat.KnownAbility(id) {
				h.logger.Warn("unknown ability from client", zap.String("ability", msg.Ability))
				continue
			}
			select {
			case h.commands <- Command{Type: CommandAbility, Ability: id}:
			default:
				h.logger.Warn("command queue full, dropping intent")
			}
		case CommandReset:
			select {
			case h.commands <- Command{Type: CommandReset}:
			default:
			}
		default:
			h.logger.Warn("unknown command type", zap.String("type", msg.Type))
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}

// Start serves the websocket endpoint until ctx is cancelled.
func Start(ctx context.Context, address string, hub *Hub, logger *zap.Logger) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWS)

	srv := &http.Server{Addr: address, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("websocket server shutdown", zap.Error(err))
		}
	}()

	logger.Info("websocket server listening", zap.String("address", address))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
