// websocket/client.go
package websocket

import (
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Client - одно подключение к /ws
type Client struct {
	ID     string
	hub    *Hub
	Socket *websocket.Conn
	Send   chan []byte
}

func newClient(hub *Hub, socket *websocket.Conn) *Client {
	return &Client{
		ID:     uuid.NewString(),
		hub:    hub,
		Socket: socket,
		Send:   make(chan []byte, sendBufferSize),
	}
}
