package model

import "time"

// PushMessage is a frame exchanged on the websocket channel
type PushMessage struct {
	MessageID string    `json:"messageId"`
	Type      string    `json:"type"` // REMINDER, HEARTBEAT
	Content   string    `json:"content,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
