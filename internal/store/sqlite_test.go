package store

import (
	"testing"
	"time"

	"github.com/healthassist/healthassist-go/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("opening in-memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestUserRoundtrip(t *testing.T) {
	s := newTestStore(t)

	if err := s.CreateUser("alice", "hashed-secret"); err != nil {
		t.Fatalf("creating user: %v", err)
	}

	user, err := s.GetUserByUsername("alice")
	if err != nil {
		t.Fatalf("fetching user: %v", err)
	}
	if user == nil || user.Username != "alice" || user.HashedPassword != "hashed-secret" {
		t.Errorf("unexpected user: %+v", user)
	}

	missing, err := s.GetUserByUsername("bob")
	if err != nil {
		t.Fatalf("fetching unknown user: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown user, got %+v", missing)
	}
}

func TestDuplicateUsernameRejected(t *testing.T) {
	s := newTestStore(t)

	if err := s.CreateUser("alice", "h1"); err != nil {
		t.Fatalf("creating user: %v", err)
	}
	if err := s.CreateUser("alice", "h2"); err == nil {
		t.Fatal("expected unique constraint violation")
	}
}

func TestAppointmentRoundtrip(t *testing.T) {
	s := newTestStore(t)

	if err := s.CreateUser("alice", "h"); err != nil {
		t.Fatalf("creating user: %v", err)
	}
	user, err := s.GetUserByUsername("alice")
	if err != nil {
		t.Fatalf("fetching user: %v", err)
	}

	at := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	if err := s.CreateAppointment(user.ID, "GP checkup", at, model.RecurringWeekly); err != nil {
		t.Fatalf("creating appointment: %v", err)
	}

	appts, err := s.ListAppointments(user.ID)
	if err != nil {
		t.Fatalf("listing appointments: %v", err)
	}
	if len(appts) != 1 {
		t.Fatalf("expected 1 appointment, got %d", len(appts))
	}
	if appts[0].Title != "GP checkup" || appts[0].Recurring != model.RecurringWeekly {
		t.Errorf("unexpected appointment: %+v", appts[0])
	}
	if !appts[0].AppointmentTime.Equal(at) {
		t.Errorf("appointment time mismatch: got %v, want %v", appts[0].AppointmentTime, at)
	}
}

func TestListAllWithOwners(t *testing.T) {
	s := newTestStore(t)

	for _, name := range []string{"alice", "bob"} {
		if err := s.CreateUser(name, "h"); err != nil {
			t.Fatalf("creating user %s: %v", name, err)
		}
		user, err := s.GetUserByUsername(name)
		if err != nil {
			t.Fatalf("fetching user %s: %v", name, err)
		}
		if err := s.CreateAppointment(user.ID, name+"'s visit", time.Now().Add(time.Hour), model.RecurringNone); err != nil {
			t.Fatalf("creating appointment for %s: %v", name, err)
		}
	}

	appts, err := s.ListAllWithOwners()
	if err != nil {
		t.Fatalf("listing all appointments: %v", err)
	}
	if len(appts) != 2 {
		t.Fatalf("expected 2 appointments, got %d", len(appts))
	}

	owners := map[string]bool{}
	for _, appt := range appts {
		owners[appt.Username] = true
	}
	if !owners["alice"] || !owners["bob"] {
		t.Errorf("missing owners in %v", appts)
	}
}
