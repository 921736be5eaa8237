package repository

import (
	"context"
	"sync"
	"time"

	"github.com/hilthontt/rendezvous/internal/domain"
	"github.com/hilthontt/rendezvous/internal/infrastructure/metrics"
)

// Options tune the in-memory registry. Zero values fall back to the domain
// defaults, so Options{} is a usable configuration.
type Options struct {
	CodeLength      int
	CodeAlphabet    string
	TTL             time.Duration
	MaxCodeAttempts int

	// Now is injectable for expiry tests; defaults to time.Now.
	Now func() time.Time

	// OnExpired is invoked once per reclaimed room, after the lock is
	// released, no matter which operation triggered the sweep. Lifecycle
	// event publishing hangs off this hook.
	OnExpired func(room domain.Room)
}

// RoomRegistry is the relay core: a single mutex-guarded map from code to
// room. All five operations serialize on the mutex, which is what upholds
// code uniqueness during create and at-most-once answer consumption.
type RoomRegistry struct {
	opts    Options
	metrics *metrics.Metrics

	mu    sync.RWMutex
	rooms map[string]*domain.Room
}

func NewRoomRegistry(opts Options, m *metrics.Metrics) *RoomRegistry {
	if opts.CodeLength <= 0 {
		opts.CodeLength = domain.DefaultCodeLength
	}
	if opts.CodeAlphabet == "" {
		opts.CodeAlphabet = domain.DefaultCodeAlphabet
	}
	if opts.TTL <= 0 {
		opts.TTL = domain.DefaultRoomTTL
	}
	if opts.MaxCodeAttempts <= 0 {
		opts.MaxCodeAttempts = domain.DefaultMaxCodeAttempts
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &RoomRegistry{
		opts:    opts,
		metrics: m,
		rooms:   make(map[string]*domain.Room),
	}
}

// Create reclaims expired rooms, then allocates a fresh code and stores the
// offer under it. Candidate codes that collide with a live room are retried
// up to MaxCodeAttempts times; exhaustion is reported as
// domain.ErrCodeSpaceExhausted rather than reusing a live code.
func (r *RoomRegistry) Create(ctx context.Context, offer string) (string, error) {
	if offer == "" {
		return "", domain.ErrEmptyPayload
	}

	code, expired, err := r.allocate(offer)
	r.notifyExpired(expired)
	return code, err
}

func (r *RoomRegistry) allocate(offer string) (string, []domain.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	expired := r.sweepLocked()

	for attempt := 0; attempt < r.opts.MaxCodeAttempts; attempt++ {
		code, err := domain.GenerateCode(r.opts.CodeAlphabet, r.opts.CodeLength)
		if err != nil {
			return "", expired, err
		}
		if _, taken := r.rooms[code]; taken {
			r.metrics.CodeCollision()
			continue
		}

		r.rooms[code] = &domain.Room{
			Code:      code,
			Offer:     offer,
			CreatedAt: r.opts.Now(),
		}
		r.metrics.RoomCreated()
		r.metrics.SetActiveRooms(len(r.rooms))
		return code, expired, nil
	}

	return "", expired, domain.ErrCodeSpaceExhausted
}

// GetOffer returns the offer stored under code. It does not mutate the room
// and may be called any number of times while the room is live.
func (r *RoomRegistry) GetOffer(ctx context.Context, code string) (string, error) {
	code = domain.NormalizeCode(code)

	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[code]
	if !ok || r.expiredLocked(room) {
		return "", domain.ErrRoomNotFound
	}
	return room.Offer, nil
}

// SubmitAnswer stores the guest's answer on the room. A second submission
// before the host consumes overwrites the previous answer; first-write-wins
// is deliberately not promised to callers.
func (r *RoomRegistry) SubmitAnswer(ctx context.Context, code string, answer string) error {
	if answer == "" {
		return domain.ErrEmptyPayload
	}
	code = domain.NormalizeCode(code)

	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[code]
	if !ok || r.expiredLocked(room) {
		return domain.ErrRoomNotFound
	}

	room.Answer = answer
	r.metrics.AnswerSubmitted()
	return nil
}

// ConsumeAnswer returns the stored answer and deletes the room in the same
// critical section. Exactly one caller can win; every later call, concurrent
// or not, observes domain.ErrRoomNotFound. An unanswered room yields
// domain.ErrAnswerNotReady so pollers know to keep retrying.
func (r *RoomRegistry) ConsumeAnswer(ctx context.Context, code string) (string, error) {
	code = domain.NormalizeCode(code)

	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[code]
	if !ok || r.expiredLocked(room) {
		return "", domain.ErrRoomNotFound
	}
	if !room.Answered() {
		return "", domain.ErrAnswerNotReady
	}

	delete(r.rooms, code)
	r.metrics.AnswerConsumed()
	r.metrics.SetActiveRooms(len(r.rooms))
	return room.Answer, nil
}

// Sweep deletes every room past its TTL, answered or not, and returns
// copies of the reclaimed rooms.
func (r *RoomRegistry) Sweep(ctx context.Context) []domain.Room {
	r.mu.Lock()
	expired := r.sweepLocked()
	r.mu.Unlock()

	r.notifyExpired(expired)
	return expired
}

// Snapshot sweeps, then reports the live room count.
func (r *RoomRegistry) Snapshot(ctx context.Context) domain.RegistrySnapshot {
	r.mu.Lock()
	expired := r.sweepLocked()
	snapshot := domain.RegistrySnapshot{ActiveRooms: len(r.rooms)}
	r.mu.Unlock()

	r.notifyExpired(expired)
	return snapshot
}

func (r *RoomRegistry) notifyExpired(rooms []domain.Room) {
	if r.opts.OnExpired == nil {
		return
	}
	for _, room := range rooms {
		r.opts.OnExpired(room)
	}
}

func (r *RoomRegistry) expiredLocked(room *domain.Room) bool {
	return r.opts.Now().After(room.ExpiresAt(r.opts.TTL))
}

func (r *RoomRegistry) sweepLocked() []domain.Room {
	var expired []domain.Room
	for code, room := range r.rooms {
		if r.expiredLocked(room) {
			delete(r.rooms, code)
			expired = append(expired, *room)
		}
	}

	r.metrics.RoomsExpired(len(expired))
	r.metrics.SetActiveRooms(len(r.rooms))
	return expired
}
