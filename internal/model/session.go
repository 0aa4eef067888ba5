package model

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// UserSession is one websocket connection for a logged-in user
type UserSession struct {
	Username      string
	Conn          *websocket.Conn
	SessionID     string
	ClientIP      string
	LastHeartbeat time.Time
	MissedBeats   int
	mu            sync.RWMutex // guards session fields
}

// UpdateHeartbeat records a fresh heartbeat
func (s *UserSession) UpdateHeartbeat() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LastHeartbeat = time.Now()
	s.MissedBeats = 0
}

// IncrementMissedBeats bumps the missed heartbeat count
func (s *UserSession) IncrementMissedBeats() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.MissedBeats++
}

// ShouldBeCleaned reports whether the session has gone stale
func (s *UserSession) ShouldBeCleaned() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.MissedBeats >= 3
}

// WriteMessage writes to the websocket (gorilla conns allow one writer at a time)
func (s *UserSession) WriteMessage(message interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Conn.WriteJSON(message)
}
