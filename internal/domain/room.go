package domain

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
	"time"
)

const (
	// DefaultCodeLength is short enough to read aloud over a call.
	DefaultCodeLength = 4

	// DefaultCodeAlphabet excludes visually ambiguous characters (0/O, 1/I/L).
	DefaultCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

	// DefaultRoomTTL bounds how long a room may live past its creation.
	DefaultRoomTTL = 5 * time.Minute

	// DefaultMaxCodeAttempts bounds the collision retry loop during creation.
	DefaultMaxCodeAttempts = 10
)

var (
	ErrRoomNotFound       = errors.New("room not found")
	ErrAnswerNotReady     = errors.New("answer not ready")
	ErrEmptyPayload       = errors.New("payload must not be empty")
	ErrCodeSpaceExhausted = errors.New("room code space exhausted")
)

// Room is the short-lived association between a code and an in-flight
// offer/answer exchange. The offer and answer are opaque to the relay; they
// are never parsed or validated beyond non-emptiness.
type Room struct {
	Code      string    `json:"code"`
	Offer     string    `json:"offer"`
	Answer    string    `json:"answer,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Answered reports whether the guest has submitted an answer.
func (r *Room) Answered() bool {
	return r.Answer != ""
}

// ExpiresAt is the deadline past which the room is reclaimed by a sweep.
func (r *Room) ExpiresAt(ttl time.Duration) time.Time {
	return r.CreatedAt.Add(ttl)
}

// RegistrySnapshot is the health view over the registry.
type RegistrySnapshot struct {
	ActiveRooms int `json:"activeRooms"`
}

// RoomRegistry is the concurrency-safe store behind the relay. ConsumeAnswer
// is the only operation that both reads and deletes; its at-most-once
// semantics are the registry's key correctness guarantee.
type RoomRegistry interface {
	Create(ctx context.Context, offer string) (string, error)
	GetOffer(ctx context.Context, code string) (string, error)
	SubmitAnswer(ctx context.Context, code string, answer string) error
	ConsumeAnswer(ctx context.Context, code string) (string, error)
	Sweep(ctx context.Context) []Room
	Snapshot(ctx context.Context) RegistrySnapshot
}

// NormalizeCode maps user-supplied codes onto the stored form: surrounding
// whitespace is dropped and lookup is case-insensitive.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// GenerateCode draws a candidate room code uniformly at random from the
// given alphabet. Uniqueness against live rooms is the caller's concern.
func GenerateCode(alphabet string, length int) (string, error) {
	if alphabet == "" {
		alphabet = DefaultCodeAlphabet
	}
	if length <= 0 {
		length = DefaultCodeLength
	}

	charsetLen := big.NewInt(int64(len(alphabet)))

	var sb strings.Builder
	sb.Grow(length)

	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, charsetLen)
		if err != nil {
			return "", err
		}
		sb.WriteByte(alphabet[n.Int64()])
	}

	return sb.String(), nil
}
