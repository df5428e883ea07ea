package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Hub управляет всеми клиентами и рассылкой сообщений. Клиенты
// группируются по ID сессии дашборда: одна сессия может быть открыта
// в нескольких вкладках браузера.
type Hub struct {
	clients        map[*Client]bool
	sessionClients map[string][]*Client
	Register       chan *Client
	unregister     chan *Client
	logger         *zap.Logger
	mu             sync.RWMutex
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:        make(map[*Client]bool),
		sessionClients: make(map[string][]*Client),
		Register:       make(chan *Client),
		unregister:     make(chan *Client),
		logger:         logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = true
			h.sessionClients[client.SessionID] = append(h.sessionClients[client.SessionID], client)
			h.logger.Debug("WebSocket: клиент зарегистрирован", zap.String("sessionID", client.SessionID))
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				clients := h.sessionClients[client.SessionID]
				for i, c := range clients {
					if c == client {
						h.sessionClients[client.SessionID] = append(clients[:i], clients[i+1:]...)
						break
					}
				}
				if len(h.sessionClients[client.SessionID]) == 0 {
					delete(h.sessionClients, client.SessionID)
				}
				h.logger.Debug("WebSocket: клиент отсоединен", zap.String("sessionID", client.SessionID))
			}
			h.mu.Unlock()
		}
	}
}

// SendToSession — главный метод для отправки события во все вкладки
// одной сессии.
func (h *Hub) SendToSession(sessionID string, payload interface{}, messageType string) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	envelope := Envelope{
		Type:      messageType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}

	messageBytes, err := json.Marshal(envelope)
	if err != nil {
		h.logger.Error("Ошибка сериализации сообщения для WebSocket", zap.Error(err))
		return err
	}

	if clients, ok := h.sessionClients[sessionID]; ok {
		for _, client := range clients {
			select {
			case client.Send <- messageBytes:
			default:
				// Вкладка не читает — не блокируем остальных.
			}
		}
	}

	return nil
}
