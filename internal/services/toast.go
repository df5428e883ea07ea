package services

import (
	"sync"
	"sync/atomic"
	"time"

	"fleet-dashboard/internal/entities"
	"fleet-dashboard/pkg/websocket"

	"go.uber.org/zap"
)

// toastSeq — сквозной счетчик ID уведомлений на весь процесс.
// Date.now() в качестве ID давал бы коллизии в пределах миллисекунды.
var toastSeq atomic.Int64

// ToastPusher — то, что умеет доставить уведомление во вкладки сессии.
// Реализуется websocket-хабом; в тестах подменяется заглушкой.
type ToastPusher interface {
	SendToSession(sessionID string, payload interface{}, messageType string) error
}

type ToastServiceInterface interface {
	Success(message string) entities.Toast
	Error(message string) entities.Toast
	Dismiss(id int64)
	List() []entities.Toast
}

// ToastService — очередь всплывающих уведомлений одной сессии. Каждое
// уведомление живет фиксированное время и удаляется по таймеру либо по
// явному закрытию.
type ToastService struct {
	sessionID string
	ttl       time.Duration
	pusher    ToastPusher
	logger    *zap.Logger

	mu     sync.Mutex
	toasts []entities.Toast
	timers map[int64]*time.Timer
}

func NewToastService(sessionID string, ttl time.Duration, pusher ToastPusher, logger *zap.Logger) *ToastService {
	return &ToastService{
		sessionID: sessionID,
		ttl:       ttl,
		pusher:    pusher,
		logger:    logger,
		timers:    make(map[int64]*time.Timer),
	}
}

func (s *ToastService) Success(message string) entities.Toast {
	return s.add(message, entities.ToastSuccess)
}

func (s *ToastService) Error(message string) entities.Toast {
	return s.add(message, entities.ToastError)
}

func (s *ToastService) add(message string, toastType entities.ToastType) entities.Toast {
	toast := entities.Toast{
		ID:      toastSeq.Add(1),
		Message: message,
		Type:    toastType,
	}

	s.mu.Lock()
	s.toasts = append(s.toasts, toast)
	s.timers[toast.ID] = time.AfterFunc(s.ttl, func() {
		s.expire(toast.ID)
	})
	s.mu.Unlock()

	if s.pusher != nil {
		if err := s.pusher.SendToSession(s.sessionID, toast, websocket.MessageTypeToast); err != nil {
			s.logger.Debug("ToastService: не удалось отправить уведомление по WebSocket", zap.Error(err))
		}
	}
	return toast
}

// Dismiss — явное закрытие уведомления пользователем.
func (s *ToastService) Dismiss(id int64) {
	s.mu.Lock()
	if timer, ok := s.timers[id]; ok {
		timer.Stop()
	}
	s.removeLocked(id)
	s.mu.Unlock()
}

func (s *ToastService) expire(id int64) {
	s.mu.Lock()
	s.removeLocked(id)
	s.mu.Unlock()

	if s.pusher != nil {
		_ = s.pusher.SendToSession(s.sessionID, map[string]int64{"id": id}, websocket.MessageTypeToastExpired)
	}
}

func (s *ToastService) removeLocked(id int64) {
	delete(s.timers, id)
	for i, t := range s.toasts {
		if t.ID == id {
			s.toasts = append(s.toasts[:i], s.toasts[i+1:]...)
			break
		}
	}
}

func (s *ToastService) List() []entities.Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entities.Toast, len(s.toasts))
	copy(out, s.toasts)
	return out
}

// Close останавливает все таймеры очереди. Вызывается при закрытии сессии.
func (s *ToastService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
	s.toasts = nil
}
