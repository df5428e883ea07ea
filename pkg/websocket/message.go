package websocket

import "time"

// Envelope — это "конверт", в котором мы отправляем наши сообщения.
// Он содержит тип сообщения, что позволяет фронтенду понять, что делать.
type Envelope struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// Типы сообщений, которые умеет обрабатывать фронтенд дашборда.
const (
	MessageTypeToast        = "toast"
	MessageTypeToastExpired = "toast_expired"
	MessageTypeStateChanged = "state_changed"
)
