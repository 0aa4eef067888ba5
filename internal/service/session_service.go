package service

import (
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/healthassist/healthassist-go/internal/model"
	"go.uber.org/zap"
)

var ErrUserOffline = errors.New("user is not connected")

// SessionService tracks live websocket connections per user
type SessionService struct {
	userSessions  map[string]*model.UserSession // username -> session
	sessionToUser map[string]string             // sessionId -> username
	mu            sync.RWMutex
	logger        *zap.Logger
}

// NewSessionService creates the session registry and starts the
// heartbeat sweeper
func NewSessionService(logger *zap.Logger) *SessionService {
	s := &SessionService{
		userSessions:  make(map[string]*model.UserSession),
		sessionToUser: make(map[string]string),
		logger:        logger,
	}

	go s.heartbeatChecker()

	return s
}

// RegisterUser registers a connection, closing any previous one for the
// same user
func (s *SessionService) RegisterUser(username string, conn *websocket.Conn, sessionID string, clientIP string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.userSessions[username]; ok {
		s.logger.Info("user reconnected, closing old connection",
			zap.String("username", username),
			zap.String("oldSessionId", existing.SessionID))
		existing.Conn.Close()
		delete(s.sessionToUser, existing.SessionID)
	}

	session := &model.UserSession{
		Username:      username,
		Conn:          conn,
		SessionID:     sessionID,
		ClientIP:      clientIP,
		LastHeartbeat: time.Now(),
		MissedBeats:   0,
	}

	s.userSessions[username] = session
	s.sessionToUser[sessionID] = username

	s.logger.Info("user session registered",
		zap.String("username", username),
		zap.String("sessionId", sessionID))
}

// SendMessageToUser pushes a message to the user's connection
func (s *SessionService) SendMessageToUser(username string, message interface{}) error {
	s.mu.RLock()
	session, ok := s.userSessions[username]
	s.mu.RUnlock()

	if !ok {
		return ErrUserOffline
	}

	if err := session.WriteMessage(message); err != nil {
		s.logger.Error("pushing message failed",
			zap.String("username", username),
			zap.Error(err))
		// drop the dead connection asynchronously
		go s.RemoveUser(username)
		return err
	}

	return nil
}

// UpdateHeartbeat records a heartbeat for the user
func (s *SessionService) UpdateHeartbeat(username string) bool {
	s.mu.RLock()
	session, ok := s.userSessions[username]
	s.mu.RUnlock()

	if !ok {
		return false
	}

	session.UpdateHeartbeat()
	return true
}

// RemoveBySessionID removes the session with the given id
func (s *SessionService) RemoveBySessionID(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if username, ok := s.sessionToUser[sessionID]; ok {
		delete(s.userSessions, username)
		delete(s.sessionToUser, sessionID)
		s.logger.Info("user session removed",
			zap.String("username", username),
			zap.String("sessionId", sessionID))
	}
}

// RemoveUser removes the user's session
func (s *SessionService) RemoveUser(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session, ok := s.userSessions[username]; ok {
		delete(s.sessionToUser, session.SessionID)
		delete(s.userSessions, username)
		s.logger.Info("user session removed", zap.String("username", username))
	}
}

// GetOnlineCount returns the number of connected users
func (s *SessionService) GetOnlineCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.userSessions)
}

// heartbeatChecker reaps sessions that stopped sending heartbeats
func (s *SessionService) heartbeatChecker() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.Lock()

		now := time.Now()
		for username, session := range s.userSessions {
			if now.Sub(session.LastHeartbeat) <= 60*time.Second {
				continue
			}

			session.IncrementMissedBeats()

			if session.ShouldBeCleaned() {
				s.logger.Info("cleaning stale session",
					zap.String("username", username),
					zap.Int("missedBeats", session.MissedBeats))

				session.Conn.Close()
				delete(s.userSessions, username)
				delete(s.sessionToUser, session.SessionID)
			} else {
				s.logger.Warn("user heartbeat missed",
					zap.String("username", username),
					zap.Int("missedBeats", session.MissedBeats))
			}
		}

		s.mu.Unlock()
	}
}
