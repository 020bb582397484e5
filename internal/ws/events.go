package ws

import (
	"encoding/json"
	"time"

	"feedblog/internal/models"
)

// Server → client event types.
const (
	EventTypePostCreated = "post.created"
	EventTypePostUpdated = "post.updated"
	EventTypePostDeleted = "post.deleted"
	EventTypePong        = "pong"
)

// Client → server event types.
const (
	EventTypePing = "ping"
)

// Event is the envelope for every WebSocket message.
type Event struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"ts,omitempty"`
}

type PostPayload struct {
	Post models.Post `json:"post"`
}

type PostDeletedPayload struct {
	PostID string `json:"postId"`
}

// NewEvent builds a server→client event with the current timestamp.
func NewEvent(eventType string, payload any) (*Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Event{
		Type:      eventType,
		Payload:   data,
		Timestamp: time.Now().Unix(),
	}, nil
}
