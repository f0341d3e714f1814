package server

import (
	"net/http"

	"github.com/gorilla/websocket"
)

const (
	bufferSize    = 1024
	sendQueueSize = 256
	originHeader  = "Origin"
)

func (h *Hub) upgrader() *websocket.Upgrader {
	return &websocket.Upgrader{
		ReadBufferSize:  bufferSize,
		WriteBufferSize: bufferSize,
		CheckOrigin:     h.checkOrigin,
	}
}

// checkOrigin accepts every origin unless the hub was given one to pin to.
func (h *Hub) checkOrigin(r *http.Request) bool {
	if h.settings.AllowedOrigin == "" {
		return true
	}
	origin := r.Header.Get(originHeader)
	if origin != h.settings.AllowedOrigin {
		h.log.Warnf("Rejected websocket from origin %q", origin)
		return false
	}
	return true
}

// ServeWs upgrades the request and hands the connection to the hub.
func ServeWs(hub *Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := hub.upgrader().Upgrade(w, r, nil)
	if err != nil {
		hub.log.Errorf("Failed to upgrade connection: %v", err)
		return
	}

	client := &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, sendQueueSize),
	}
	hub.register <- client

	go client.WritePump()
	go client.ReadPump()
}
