package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/healthassist/healthassist-go/internal/model"
	"github.com/healthassist/healthassist-go/internal/store"
	"go.uber.org/zap"
)

// ReminderService periodically sweeps upcoming appointments and pushes a
// reminder to users who are connected over websocket. Recurring
// appointments are reminded on every occurrence.
type ReminderService struct {
	store    *store.SQLiteStore
	sessions *SessionService
	interval time.Duration
	window   time.Duration
	logger   *zap.Logger

	mu   sync.Mutex
	sent map[string]time.Time // appointment occurrence -> when reminded
}

// NewReminderService creates the reminder sweeper
func NewReminderService(st *store.SQLiteStore, sessions *SessionService, interval, window time.Duration, logger *zap.Logger) *ReminderService {
	return &ReminderService{
		store:    st,
		sessions: sessions,
		interval: interval,
		window:   window,
		logger:   logger,
		sent:     make(map[string]time.Time),
	}
}

// Start runs the sweep loop in the background
func (s *ReminderService) Start() {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for range ticker.C {
			s.Sweep(time.Now())
		}
	}()
}

// Sweep pushes reminders for appointments due within the window
func (s *ReminderService) Sweep(now time.Time) {
	appts, err := s.store.ListAllWithOwners()
	if err != nil {
		s.logger.Error("loading appointments for reminder sweep", zap.Error(err))
		return
	}

	for _, appt := range appts {
		occurrence, ok := NextOccurrence(appt.Appointment, now)
		if !ok || occurrence.Sub(now) > s.window {
			continue
		}

		key := fmt.Sprintf("%d:%s", appt.ID, occurrence.UTC().Format(time.RFC3339))
		if s.alreadySent(key, now) {
			continue
		}

		msg := model.PushMessage{
			MessageID: uuid.New().String(),
			Type:      "REMINDER",
			Content:   fmt.Sprintf("Upcoming appointment: %s at %s", appt.Title, occurrence.Local().Format("Mon 2 Jan 15:04")),
			Timestamp: now,
		}

		if err := s.sessions.SendMessageToUser(appt.Username, msg); err != nil {
			// user offline or connection gone; try again next occurrence
			s.forget(key)
			continue
		}

		s.logger.Info("reminder pushed",
			zap.String("username", appt.Username),
			zap.Int64("appointmentId", appt.ID),
			zap.Time("occurrence", occurrence))
	}

	s.prune(now)
}

// NextOccurrence returns the next time the appointment happens at or
// after now. One-off appointments in the past have no next occurrence.
func NextOccurrence(appt model.Appointment, now time.Time) (time.Time, bool) {
	at := appt.AppointmentTime

	switch appt.Recurring {
	case model.RecurringDaily:
		for !at.After(now.Add(-time.Minute)) {
			at = at.AddDate(0, 0, 1)
		}
		return at, true
	case model.RecurringWeekly:
		for !at.After(now.Add(-time.Minute)) {
			at = at.AddDate(0, 0, 7)
		}
		return at, true
	default:
		if at.Before(now.Add(-time.Minute)) {
			return time.Time{}, false
		}
		return at, true
	}
}

func (s *ReminderService) alreadySent(key string, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sent[key]; ok {
		return true
	}
	s.sent[key] = now
	return false
}

func (s *ReminderService) forget(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sent, key)
}

// prune drops bookkeeping for occurrences that are long past
func (s *ReminderService) prune(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, at := range s.sent {
		if now.Sub(at) > 24*time.Hour {
			delete(s.sent, key)
		}
	}
}
