package health

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/hilthontt/rendezvous/internal/domain"
	"github.com/hilthontt/rendezvous/internal/infrastructure/json"
)

var (
	startTime       = time.Now()
	healthy   int32 = 1 // 1: healthy, 0 = unhealthy
)

type Handler struct {
	registry domain.RoomRegistry
	service  string
}

func NewHandler(registry domain.RoomRegistry, service string) *Handler {
	return &Handler{
		registry: registry,
		service:  service,
	}
}

// GetHealth godoc
// @Summary      Health check
// @Description  Sweeps expired rooms, then reports status and the live room count
// @Tags         health
// @Produce      json
// @Success      200 {object} healthResponse "Service is healthy"
// @Failure      503 {object} healthResponse "Service is unhealthy"
// @Router       /health [get]
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	snapshot := h.registry.Snapshot(r.Context())

	if atomic.LoadInt32(&healthy) == 0 {
		json.Write(w, http.StatusServiceUnavailable, healthResponse{
			Status:      "unhealthy",
			ActiveRooms: snapshot.ActiveRooms,
			Timestamp:   time.Now().UTC().Format(time.RFC3339),
			Uptime:      time.Since(startTime).Round(time.Second).String(),
		})
		return
	}

	json.Write(w, http.StatusOK, healthResponse{
		Status:      "ok",
		ActiveRooms: snapshot.ActiveRooms,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Uptime:      time.Since(startTime).Round(time.Second).String(),
	})
}

// GetRoot godoc
// @Summary      Service banner
// @Description  Identifies the relay so load balancers and humans get a sane root response
// @Tags         health
// @Produce      json
// @Success      200 {object} rootResponse
// @Router       / [get]
func (h *Handler) GetRoot(w http.ResponseWriter, r *http.Request) {
	json.Write(w, http.StatusOK, rootResponse{
		Service: h.service,
		Status:  "running",
	})
}
