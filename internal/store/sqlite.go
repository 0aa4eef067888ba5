package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/healthassist/healthassist-go/internal/model"
	_ "modernc.org/sqlite"
)

// SQLiteStore persists users and appointments
type SQLiteStore struct {
	conn *sql.DB
}

// NewSQLiteStore opens the database and creates tables if needed
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            username TEXT NOT NULL UNIQUE,
            hashed_password TEXT NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS appointments (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            title TEXT NOT NULL,
            appointment_time TIMESTAMP NOT NULL,
            recurring TEXT NOT NULL DEFAULT 'none',
            user_id INTEGER NOT NULL REFERENCES users(id)
        );`,
	}

	for _, q := range queries {
		if _, err := db.Exec(q); err != nil {
			return nil, fmt.Errorf("initializing schema: %w", err)
		}
	}

	return &SQLiteStore{conn: db}, nil
}

// Close closes the underlying connection
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

// CreateUser inserts a new user row
func (s *SQLiteStore) CreateUser(username, hashedPassword string) error {
	query := `INSERT INTO users (username, hashed_password) VALUES (?, ?)`
	_, err := s.conn.Exec(query, username, hashedPassword)
	return err
}

// GetUserByUsername returns the user, or nil when the username is unknown
func (s *SQLiteStore) GetUserByUsername(username string) (*model.User, error) {
	query := `SELECT id, username, hashed_password FROM users WHERE username = ?`

	var user model.User
	err := s.conn.QueryRow(query, username).Scan(&user.ID, &user.Username, &user.HashedPassword)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// CreateAppointment inserts an appointment for the user
func (s *SQLiteStore) CreateAppointment(userID int64, title string, at time.Time, recurring string) error {
	query := `INSERT INTO appointments (title, appointment_time, recurring, user_id) VALUES (?, ?, ?, ?)`
	_, err := s.conn.Exec(query, title, at.UTC().Format(time.RFC3339), recurring, userID)
	return err
}

// ListAppointments returns the user's appointments in creation order
func (s *SQLiteStore) ListAppointments(userID int64) ([]model.Appointment, error) {
	query := `SELECT id, title, appointment_time, recurring, user_id FROM appointments WHERE user_id = ? ORDER BY id`

	rows, err := s.conn.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// ListAllWithOwners returns every appointment joined with its owner's
// username, for the reminder sweep
func (s *SQLiteStore) ListAllWithOwners() ([]model.UserAppointment, error) {
	query := `SELECT a.id, a.title, a.appointment_time, a.recurring, a.user_id, u.username
        FROM appointments a JOIN users u ON u.id = a.user_id`

	rows, err := s.conn.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appts []model.UserAppointment
	for rows.Next() {
		var appt model.UserAppointment
		var rawTime string
		if err := rows.Scan(&appt.ID, &appt.Title, &rawTime, &appt.Recurring, &appt.UserID, &appt.Username); err != nil {
			return nil, err
		}
		at, err := time.Parse(time.RFC3339, rawTime)
		if err != nil {
			return nil, fmt.Errorf("parsing stored appointment time %q: %w", rawTime, err)
		}
		appt.AppointmentTime = at
		appts = append(appts, appt)
	}
	return appts, rows.Err()
}

func scanAppointments(rows *sql.Rows) ([]model.Appointment, error) {
	var appts []model.Appointment
	for rows.Next() {
		var appt model.Appointment
		var rawTime string
		if err := rows.Scan(&appt.ID, &appt.Title, &rawTime, &appt.Recurring, &appt.UserID); err != nil {
			return nil, err
		}
		at, err := time.Parse(time.RFC3339, rawTime)
		if err != nil {
			return nil, fmt.Errorf("parsing stored appointment time %q: %w", rawTime, err)
		}
		appt.AppointmentTime = at
		appts = append(appts, appt)
	}
	return appts, rows.Err()
}
