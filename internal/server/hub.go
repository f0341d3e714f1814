package server

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rook-game/internal/ai"
	"rook-game/internal/game"
	"rook-game/internal/protocol"
)

// clientMessage is a helper struct to pass messages along with the client reference.
type clientMessage struct {
	client  *Client
	message protocol.Message
}

// Settings are the per-match options the hub hands to every new session.
type Settings struct {
	Target        int
	BotDelay      time.Duration
	AI            ai.Config
	AllowedOrigin string
}

// table is a running session plus the queue that feeds it the player's actions in order.
type table struct {
	session *game.Session
	actions chan protocol.Message
}

const actionQueueSize = 16

// Hub manages active WebSocket connections and the session each one is playing.
type Hub struct {
	clients        map[*Client]bool
	tables         map[*Client]*table
	processMessage chan clientMessage
	register       chan *Client
	unregister     chan *Client
	clientMu       sync.RWMutex
	settings       Settings
	recorder       game.ResultRecorder
	log            *zap.SugaredLogger
}

// NewHub creates a new Hub instance. recorder may be nil.
func NewHub(settings Settings, recorder game.ResultRecorder, log *zap.SugaredLogger) *Hub {
	return &Hub{
		clients:        make(map[*Client]bool),
		tables:         make(map[*Client]*table),
		processMessage: make(chan clientMessage),
		register:       make(chan *Client),
		unregister:     make(chan *Client),
		settings:       settings,
		recorder:       recorder,
		log:            log,
	}
}

// Run starts the Hub's main loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			client.ID = uuid.NewString()
			h.log.Infof("Client %s (%s) connected", client.ID, client.remoteAddr())
			h.clientMu.Lock()
			h.clients[client] = true
			h.clientMu.Unlock()

		case client := <-h.unregister:
			h.clientMu.Lock()
			_, exists := h.clients[client]
			if exists {
				delete(h.clients, client)
				close(client.send)
				h.log.Infof("Client %s (%s) disconnected", client.ID, client.Name)
			}
			h.clientMu.Unlock()
			if exists {
				h.closeTable(client)
			}

		case clientMsg := <-h.processMessage:
			h.handleMessage(clientMsg.client, clientMsg.message)
		}
	}
}

// handleMessage processes a message received from a client.
func (h *Hub) handleMessage(client *Client, msg protocol.Message) {
	switch msg.Type {
	case protocol.TypeNewMatch:
		h.handleNewMatch(client, msg)
	case protocol.TypeBid, protocol.TypePass, protocol.TypeKitty, protocol.TypePlayCard:
		h.handleGameAction(client, msg)
	case protocol.TypePing:
		pongMsg, _ := protocol.NewMessage(protocol.TypePong, nil)
		h.sendMessageToClient(client.ID, pongMsg)
	default:
		h.log.Warnf("Received unknown message type '%s' from client %s (%s)", msg.Type, client.ID, client.Name)
		h.sendErrorToClient(client, "Unknown message type.")
	}
}

// handleNewMatch seats the client at South against three bots. A match already in
// progress for the client is abandoned.
func (h *Hub) handleNewMatch(client *Client, msg protocol.Message) {
	payload, err := protocol.Decode[protocol.NewMatchPayload](msg)
	if err != nil {
		h.log.Infof("Error unmarshalling new_match payload from client %s: %v", client.ID, err)
		h.sendErrorToClient(client, "Invalid new_match message format.")
		return
	}
	if payload.Name == "" {
		h.sendErrorToClient(client, "Name cannot be empty.")
		return
	}
	target := h.settings.Target
	if payload.Target > 0 {
		target = payload.Target
	}

	h.closeTable(client)
	client.Name = payload.Name

	session := game.NewSession(game.SessionOptions{
		ClientID:   client.ID,
		PlayerName: payload.Name,
		Target:     target,
		BotDelay:   h.settings.BotDelay,
		AI:         h.settings.AI,
		Rand:       rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), uint64(len(h.tables)))),
		Sender:     h.sendMessageToClient,
		Recorder:   h.recorder,
		Logger:     h.log,
	})
	t := &table{session: session, actions: make(chan protocol.Message, actionQueueSize)}
	h.tables[client] = t
	h.log.Infof("Client %s (%s) started a match, target %d", client.ID, client.Name, target)

	go h.runTable(t)
}

// runTable starts the session and then feeds it actions until the table is closed.
func (h *Hub) runTable(t *table) {
	if err := t.session.Start(); err != nil {
		return
	}
	for msg := range t.actions {
		t.session.HandlePlayerAction(msg)
	}
}

// closeTable abandons the client's session, if any.
func (h *Hub) closeTable(client *Client) {
	t, ok := h.tables[client]
	if !ok {
		return
	}
	delete(h.tables, client)
	close(t.actions)
	t.session.HandleDisconnect()
}

// handleGameAction queues an action for the client's session.
func (h *Hub) handleGameAction(client *Client, msg protocol.Message) {
	t, ok := h.tables[client]
	if !ok {
		h.log.Infof("Received '%s' from client %s with no match in progress.", msg.Type, client.ID)
		h.sendErrorToClient(client, "Start a match first.")
		return
	}
	select {
	case t.actions <- msg:
	default:
		h.log.Warnf("Action queue full for client %s, dropping '%s'", client.ID, msg.Type)
		h.sendErrorToClient(client, "Too many pending actions.")
	}
}

// sendMessageToClient lets sessions send messages back via the hub/client.
func (h *Hub) sendMessageToClient(clientID string, message []byte) {
	h.clientMu.RLock()
	defer h.clientMu.RUnlock()

	var target *Client
	for client := range h.clients {
		if client.ID == clientID {
			target = client
			break
		}
	}
	if target == nil {
		h.log.Debugf("Could not find client %s to send message (already disconnected?).", clientID)
		return
	}

	select {
	case target.send <- message:
	default:
		h.log.Warnf("Failed to send message to client %s (channel full), initiating cleanup.", clientID)
		go func() { h.unregister <- target }()
	}
}

// sendErrorToClient sends a generic error message to a specific client.
func (h *Hub) sendErrorToClient(client *Client, errorMsg string) {
	msgBytes, err := protocol.NewMessage(protocol.TypeError, protocol.ErrorPayload{Message: errorMsg})
	if err != nil {
		h.log.Errorf("Error creating error message for client %s: %v", client.ID, err)
		return
	}
	h.sendMessageToClient(client.ID, msgBytes)
}
