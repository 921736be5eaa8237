package messaging

import (
	"time"

	"github.com/hilthontt/rendezvous/internal/domain"
)

const (
	RoomEventsQueue = "room_events"
	DeadLetterQueue = "dead_letter_queue"
)

// RoomEventData describes a room lifecycle transition. Offer/answer payloads
// never leave the registry, so the event carries state flags only.
type RoomEventData struct {
	RoomCode  string               `json:"roomCode"`
	EventType domain.RoomEventType `json:"eventType"`
	Answered  bool                 `json:"answered"`
	Timestamp time.Time            `json:"timestamp"`
}
