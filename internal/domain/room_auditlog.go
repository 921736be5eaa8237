package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type RoomEventType string

const (
	EventRoomCreated    RoomEventType = "room_created"
	EventAnswerReceived RoomEventType = "answer_received"
	EventAnswerConsumed RoomEventType = "answer_consumed"
	EventRoomExpired    RoomEventType = "room_expired"
)

// RoomAuditLog records a single room lifecycle transition for the audit
// trail. It never carries the offer or answer payloads; those stay in memory
// only and die with the room.
type RoomAuditLog struct {
	ID        string         `bson:"_id" json:"id"`
	RoomCode  string         `bson:"room_code" json:"roomCode"`
	EventType RoomEventType  `bson:"event_type" json:"eventType"`
	Timestamp time.Time      `bson:"timestamp" json:"timestamp"`
	Metadata  map[string]any `bson:"metadata,omitempty" json:"metadata,omitempty"`
}

// RoomAuditRepository is the write side of the audit trail. Reads go through
// Mongo tooling directly; retention is the TTL index's job.
type RoomAuditRepository interface {
	Log(ctx context.Context, log *RoomAuditLog) error
	EnsureIndexes(ctx context.Context) error
}

// NewRoomAuditLog stamps an audit entry for a lifecycle event. A zero ts
// falls back to the current time.
func NewRoomAuditLog(roomCode string, eventType RoomEventType, ts time.Time, metadata map[string]any) *RoomAuditLog {
	if ts.IsZero() {
		ts = time.Now()
	}
	return &RoomAuditLog{
		ID:        uuid.NewString(),
		RoomCode:  roomCode,
		EventType: eventType,
		Timestamp: ts,
		Metadata:  metadata,
	}
}
