package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/healthassist/healthassist-go/internal/model"
	"github.com/healthassist/healthassist-go/internal/store"
	"go.uber.org/zap"
)

var (
	ErrBadAppointmentTime = errors.New("invalid appointment time")
	ErrBadRecurring       = errors.New("recurring must be none, daily or weekly")
	ErrUnknownUser        = errors.New("unknown user")
)

// AppointmentService manages appointment persistence
type AppointmentService struct {
	store  *store.SQLiteStore
	logger *zap.Logger
}

// NewAppointmentService creates the appointment service
func NewAppointmentService(st *store.SQLiteStore, logger *zap.Logger) *AppointmentService {
	return &AppointmentService{
		store:  st,
		logger: logger,
	}
}

// Create stores a new appointment for the user
func (s *AppointmentService) Create(username, title, appointmentTime, recurring string) error {
	at, err := parseAppointmentTime(appointmentTime)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrBadAppointmentTime, appointmentTime)
	}

	if recurring == "" {
		recurring = model.RecurringNone
	}
	switch recurring {
	case model.RecurringNone, model.RecurringDaily, model.RecurringWeekly:
	default:
		return ErrBadRecurring
	}

	user, err := s.store.GetUserByUsername(username)
	if err != nil {
		return fmt.Errorf("looking up user: %w", err)
	}
	if user == nil {
		return ErrUnknownUser
	}

	if err := s.store.CreateAppointment(user.ID, title, at, recurring); err != nil {
		return fmt.Errorf("saving appointment: %w", err)
	}

	s.logger.Info("appointment created",
		zap.String("username", username),
		zap.String("title", title),
		zap.Time("at", at),
		zap.String("recurring", recurring))

	return nil
}

// List returns the user's appointments
func (s *AppointmentService) List(username string) ([]model.Appointment, error) {
	user, err := s.store.GetUserByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	if user == nil {
		return nil, ErrUnknownUser
	}

	appts, err := s.store.ListAppointments(user.ID)
	if err != nil {
		return nil, fmt.Errorf("listing appointments: %w", err)
	}
	if appts == nil {
		appts = []model.Appointment{}
	}
	return appts, nil
}

// parseAppointmentTime accepts RFC3339 and bare local timestamps
func parseAppointmentTime(value string) (time.Time, error) {
	if at, err := time.Parse(time.RFC3339, value); err == nil {
		return at, nil
	}
	return time.ParseInLocation("2006-01-02T15:04:05", value, time.Local)
}
