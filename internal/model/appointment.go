package model

import "time"

// Recurrence values for an appointment
const (
	RecurringNone   = "none"
	RecurringDaily  = "daily"
	RecurringWeekly = "weekly"
)

// Appointment is a scheduled appointment
type Appointment struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	AppointmentTime time.Time `json:"appointment_time"`
	Recurring       string    `json:"recurring"`
	UserID          int64     `json:"-"`
}

// UserAppointment pairs an appointment with its owner's username,
// used by the reminder sweep
type UserAppointment struct {
	Appointment
	Username string
}

// AppointmentRequest creates an appointment
type AppointmentRequest struct {
	Title           string `json:"title" binding:"required"`
	AppointmentTime string `json:"appointment_time" binding:"required"`
	Recurring       string `json:"recurring"`
}
