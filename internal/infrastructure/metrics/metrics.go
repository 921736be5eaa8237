package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the relay's prometheus collectors. A nil *Metrics is valid
// and drops every observation, so wiring stays optional in tests.
type Metrics struct {
	roomsCreated     prometheus.Counter
	answersSubmitted prometheus.Counter
	answersConsumed  prometheus.Counter
	roomsExpired     prometheus.Counter
	codeCollisions   prometheus.Counter
	activeRooms      prometheus.Gauge

	requestDuration *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		roomsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rendezvous_rooms_created_total",
			Help: "Rooms created by hosts.",
		}),
		answersSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rendezvous_answers_submitted_total",
			Help: "Answers submitted by guests, including overwrites.",
		}),
		answersConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rendezvous_answers_consumed_total",
			Help: "Answers fetched by hosts; each fetch deletes the room.",
		}),
		roomsExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rendezvous_rooms_expired_total",
			Help: "Rooms reclaimed by the TTL sweep.",
		}),
		codeCollisions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rendezvous_code_collisions_total",
			Help: "Candidate room codes rejected because a live room held them.",
		}),
		activeRooms: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rendezvous_active_rooms",
			Help: "Rooms currently live in the registry.",
		}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rendezvous_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
	}

	if reg != nil {
		reg.MustRegister(
			m.roomsCreated,
			m.answersSubmitted,
			m.answersConsumed,
			m.roomsExpired,
			m.codeCollisions,
			m.activeRooms,
			m.requestDuration,
		)
	}

	return m
}

func (m *Metrics) RoomCreated() {
	if m == nil {
		return
	}
	m.roomsCreated.Inc()
}

func (m *Metrics) AnswerSubmitted() {
	if m == nil {
		return
	}
	m.answersSubmitted.Inc()
}

func (m *Metrics) AnswerConsumed() {
	if m == nil {
		return
	}
	m.answersConsumed.Inc()
}

func (m *Metrics) RoomsExpired(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.roomsExpired.Add(float64(n))
}

func (m *Metrics) CodeCollision() {
	if m == nil {
		return
	}
	m.codeCollisions.Inc()
}

func (m *Metrics) SetActiveRooms(n int) {
	if m == nil {
		return
	}
	m.activeRooms.Set(float64(n))
}

func (m *Metrics) ObserveRequest(method, path, status string, seconds float64) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(method, path, status).Observe(seconds)
}
