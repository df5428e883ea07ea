package services

import (
	"context"
	"sync"
	"time"

	"fleet-dashboard/internal/repositories"
	"fleet-dashboard/pkg/config"
	apperrors "fleet-dashboard/pkg/errors"
	"fleet-dashboard/pkg/service"
	"fleet-dashboard/pkg/websocket"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Session — одна сессия дашборда: её состояние и её очередь уведомлений.
type Session struct {
	ID        string
	Dashboard *DashboardService
	Toasts    *ToastService

	pusher ToastPusher

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// NotifyStateChanged сообщает всем вкладкам сессии, что состояние
// изменилось и его нужно перечитать. Вкладка, выполнившая действие,
// получает свежий снимок в ответе и событие игнорирует.
func (s *Session) NotifyStateChanged() {
	if s.pusher == nil {
		return
	}
	_ = s.pusher.SendToSession(s.ID, nil, websocket.MessageTypeStateChanged)
}

// SessionManager создает сессии дашборда и выселяет простаивающие.
// Состояние сессии живет только в памяти процесса.
type SessionManager struct {
	repo   repositories.EquipmentRepositoryInterface
	jwtSvc service.JWTService
	pusher ToastPusher
	cfg    config.DashboardConfig
	logger *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewSessionManager(
	repo repositories.EquipmentRepositoryInterface,
	jwtSvc service.JWTService,
	pusher ToastPusher,
	cfg config.DashboardConfig,
	logger *zap.Logger,
) *SessionManager {
	return &SessionManager{
		repo:     repo,
		jwtSvc:   jwtSvc,
		pusher:   pusher,
		cfg:      cfg,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// CreateSession создает новую сессию, запускает начальную загрузку
// списка листов и данных и возвращает токен для последующих запросов.
func (m *SessionManager) CreateSession(ctx context.Context) (string, error) {
	id := uuid.NewString()
	toasts := NewToastService(id, m.cfg.ToastTTL, m.pusher, m.logger)
	dashboard := NewDashboardService(
		m.repo,
		toasts,
		m.logger,
		m.cfg.PageSize,
		m.cfg.DebounceDelay,
		m.cfg.DefaultSheet,
	)

	session := &Session{
		ID:        id,
		Dashboard: dashboard,
		Toasts:    toasts,
		pusher:    m.pusher,
		lastSeen:  time.Now(),
	}

	token, err := m.jwtSvc.GenerateSessionToken(id)
	if err != nil {
		m.logger.Error("SessionManager: не удалось выпустить токен сессии", zap.Error(err))
		return "", err
	}

	m.mu.Lock()
	m.sessions[id] = session
	m.mu.Unlock()

	// Начальная загрузка идет в фоне: контекст запроса умрет раньше,
	// чем ответит удаленное API.
	go func() {
		bg := context.Background()
		dashboard.LoadSheets(bg)
		dashboard.Reload(bg)
	}()

	m.logger.Info("SessionManager: создана сессия дашборда", zap.String("sessionID", id))
	return token, nil
}

// Get возвращает живую сессию и продлевает её срок простоя.
func (m *SessionManager) Get(sessionID string) (*Session, error) {
	m.mu.RLock()
	session, ok := m.sessions[sessionID]
	m.mu.RUnlock()
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	session.touch()
	return session, nil
}

// StartJanitor запускает фоновое выселение простаивающих сессий.
// Останавливается отменой переданного контекста.
func (m *SessionManager) StartJanitor(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.evictIdle()
			}
		}
	}()
}

func (m *SessionManager) evictIdle() {
	deadline := time.Now().Add(-m.cfg.SessionIdleTTL)

	m.mu.Lock()
	var evicted []*Session
	for id, session := range m.sessions {
		if session.idleSince().Before(deadline) {
			delete(m.sessions, id)
			evicted = append(evicted, session)
		}
	}
	m.mu.Unlock()

	for _, session := range evicted {
		session.Dashboard.Close()
		session.Toasts.Close()
		m.logger.Info("SessionManager: сессия выселена по простою", zap.String("sessionID", session.ID))
	}
}
