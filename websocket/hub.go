// websocket/hub.go
package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
)

var errHubStopped = errors.New("хаб остановлен")

// Hub хранит подключенных клиентов. Картой клиентов владеет только Run.
type Hub struct {
	logger     *zap.Logger
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
	count      atomic.Int64
}

// NewHub создает новый хаб
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		logger:     logger,
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, sendBufferSize),
		done:       make(chan struct{}),
	}
}

// Run обслуживает регистрацию клиентов и рассылку до отмены контекста
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			for id, client := range h.clients {
				close(client.Send)
				delete(h.clients, id)
			}
			h.count.Store(0)
			return

		case client := <-h.register:
			h.clients[client.ID] = client
			h.count.Store(int64(len(h.clients)))
			h.logger.Info("Клиент подключился", zap.String("client", client.ID))

		case client := <-h.unregister:
			if _, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				close(client.Send)
				h.count.Store(int64(len(h.clients)))
				h.logger.Info("Клиент отключился", zap.String("client", client.ID))
			}

		case message := <-h.broadcast:
			for id, client := range h.clients {
				select {
				case client.Send <- message:
				default:
					// Медленный клиент отключается
					close(client.Send)
					delete(h.clients, id)
				}
			}
			h.count.Store(int64(len(h.clients)))
		}
	}
}

// Broadcast ставит событие в очередь рассылки всем клиентам
func (h *Hub) Broadcast(event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("ошибка кодирования события: %w", err)
	}
	select {
	case <-h.done:
		return errHubStopped
	default:
	}
	select {
	case h.broadcast <- data:
		return nil
	case <-h.done:
		return errHubStopped
	}
}

// ClientCount - число подключенных клиентов
func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}
