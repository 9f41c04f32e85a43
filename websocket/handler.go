// websocket/handler.go
package websocket

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleConnections переводит запрос в WebSocket и регистрирует клиента
func (h *Hub) HandleConnections(w http.ResponseWriter, r *http.Request) {
	socket, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("Ошибка при установке WebSocket-соединения", zap.Error(err))
		return
	}

	client := newClient(h, socket)
	select {
	case h.register <- client:
	case <-h.done:
		socket.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}
