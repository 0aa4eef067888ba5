package service

import (
	"testing"
	"time"

	"github.com/healthassist/healthassist-go/internal/model"
)

func TestNextOccurrence_OneOff(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	future := model.Appointment{AppointmentTime: now.Add(30 * time.Minute), Recurring: model.RecurringNone}
	occ, ok := NextOccurrence(future, now)
	if !ok || !occ.Equal(future.AppointmentTime) {
		t.Errorf("future one-off: got %v, %v", occ, ok)
	}

	past := model.Appointment{AppointmentTime: now.Add(-2 * time.Hour), Recurring: model.RecurringNone}
	if _, ok := NextOccurrence(past, now); ok {
		t.Error("past one-off should have no next occurrence")
	}
}

func TestNextOccurrence_Daily(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	start := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)

	appt := model.Appointment{AppointmentTime: start, Recurring: model.RecurringDaily}
	occ, ok := NextOccurrence(appt, now)
	if !ok {
		t.Fatal("daily appointment should always have a next occurrence")
	}

	want := time.Date(2026, 3, 10, 10, 30, 0, 0, time.UTC)
	if !occ.Equal(want) {
		t.Errorf("daily occurrence: got %v, want %v", occ, want)
	}
}

func TestNextOccurrence_Weekly(t *testing.T) {
	// appointment started on a Sunday; now is the following Tuesday
	start := time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)

	appt := model.Appointment{AppointmentTime: start, Recurring: model.RecurringWeekly}
	occ, ok := NextOccurrence(appt, now)
	if !ok {
		t.Fatal("weekly appointment should always have a next occurrence")
	}

	want := time.Date(2026, 3, 8, 14, 0, 0, 0, time.UTC)
	if !occ.Equal(want) {
		t.Errorf("weekly occurrence: got %v, want %v", occ, want)
	}
	if occ.Weekday() != start.Weekday() {
		t.Errorf("weekly occurrence changed weekday: %v", occ.Weekday())
	}
}
