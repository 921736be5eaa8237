package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hilthontt/rendezvous/internal/infrastructure/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHealth(t *testing.T) {
	reg := repository.NewRoomRegistry(repository.Options{}, nil)
	h := NewHandler(reg, "rendezvous-relay")

	for i := 0; i < 2; i++ {
		_, err := reg.Create(t.Context(), "offer")
		require.NoError(t, err)
	}

	rec := httptest.NewRecorder()
	h.GetHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, float64(2), body["active_rooms"])
	assert.NotEmpty(t, body["timestamp"])
	assert.NotEmpty(t, body["uptime"])
}

func TestGetRoot(t *testing.T) {
	reg := repository.NewRoomRegistry(repository.Options{}, nil)
	h := NewHandler(reg, "rendezvous-relay")

	rec := httptest.NewRecorder()
	h.GetRoot(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "rendezvous-relay", body["service"])
	assert.Equal(t, "running", body["status"])
}
