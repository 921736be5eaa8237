package signal

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/hilthontt/rendezvous/internal/infrastructure/logging"
	"github.com/hilthontt/rendezvous/internal/infrastructure/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Init() {}
func (nopLogger) Debug(logging.Category, logging.SubCategory, string, map[logging.ExtraKey]any) {}
func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Info(logging.Category, logging.SubCategory, string, map[logging.ExtraKey]any) {}
func (nopLogger) Infof(string, ...any) {}
func (nopLogger) Warn(logging.Category, logging.SubCategory, string, map[logging.ExtraKey]any) {}
func (nopLogger) Warnf(string, ...any) {}
func (nopLogger) Error(logging.Category, logging.SubCategory, string, map[logging.ExtraKey]any) {}
func (nopLogger) Errorf(string, ...any) {}
func (nopLogger) Fatal(logging.Category, logging.SubCategory, string, map[logging.ExtraKey]any) {}
func (nopLogger) Fatalf(string, ...any) {}

func newTestRouter(opts repository.Options) *chi.Mux {
	reg := repository.NewRoomRegistry(opts, nil)
	h := NewHandler(reg, nil, nopLogger{})

	r := chi.NewRouter()
	r.Post("/create", h.CreateRoomHandler)
	r.Get("/join/{code}", h.GetOfferHandler)
	r.Post("/answer/{code}", h.SubmitAnswerHandler)
	r.Get("/answer/{code}", h.GetAnswerHandler)
	return r
}

func doJSON(t *testing.T, router http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	decoded := map[string]any{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func TestSignalingFlow(t *testing.T) {
	router := newTestRouter(repository.Options{})

	// Host creates a room.
	rec, body := doJSON(t, router, http.MethodPost, "/create", `{"sdp":"host-offer"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	code, ok := body["code"].(string)
	require.True(t, ok)
	require.NotEmpty(t, code)

	// Host polls before any answer exists.
	rec, body = doJSON(t, router, http.MethodGet, "/answer/"+code, "")
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, true, body["waiting"])

	// Guest joins with a lowercased code; lookup is case-insensitive.
	rec, body = doJSON(t, router, http.MethodGet, "/join/"+strings.ToLower(code), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "host-offer", body["offer"])

	// Guest submits the answer.
	rec, body = doJSON(t, router, http.MethodPost, "/answer/"+code, `{"sdp":"guest-answer"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])

	// Host retrieves the answer; the room is deleted in the same step.
	rec, body = doJSON(t, router, http.MethodGet, "/answer/"+code, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "guest-answer", body["answer"])

	// Everything afterwards is a 404.
	rec, body = doJSON(t, router, http.MethodGet, "/answer/"+code, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Room not found or expired", body["error"])

	rec, _ = doJSON(t, router, http.MethodGet, "/join/"+code, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCodeLookupTrimsSurroundingWhitespace(t *testing.T) {
	router := newTestRouter(repository.Options{})

	rec, body := doJSON(t, router, http.MethodPost, "/create", `{"sdp":"host-offer"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	code := body["code"].(string)

	padded := "%20" + strings.ToLower(code) + "%20"

	rec, body = doJSON(t, router, http.MethodGet, "/join/"+padded, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "host-offer", body["offer"])

	rec, body = doJSON(t, router, http.MethodGet, "/answer/"+padded, "")
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, true, body["waiting"])

	rec, body = doJSON(t, router, http.MethodPost, "/answer/"+padded, `{"sdp":"guest-answer"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])

	rec, body = doJSON(t, router, http.MethodGet, "/answer/"+padded, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "guest-answer", body["answer"])
}

func TestCreateRoomRejectsEmptyOffer(t *testing.T) {
	router := newTestRouter(repository.Options{})

	rec, body := doJSON(t, router, http.MethodPost, "/create", `{"sdp":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body["error"], "sdp")
}

func TestCreateRoomRejectsMalformedBody(t *testing.T) {
	router := newTestRouter(repository.Options{})

	rec, body := doJSON(t, router, http.MethodPost, "/create", `{"sdp":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotEmpty(t, body["error"])
}

func TestCreateRoomRejectsUnknownFields(t *testing.T) {
	router := newTestRouter(repository.Options{})

	rec, _ := doJSON(t, router, http.MethodPost, "/create", `{"sdp":"offer","extra":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateRoomCodeSpaceExhausted(t *testing.T) {
	router := newTestRouter(repository.Options{
		CodeAlphabet:    "A",
		CodeLength:      1,
		MaxCodeAttempts: 3,
	})

	rec, _ := doJSON(t, router, http.MethodPost, "/create", `{"sdp":"offer-1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body := doJSON(t, router, http.MethodPost, "/create", `{"sdp":"offer-2"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Server error", body["error"])
}

func TestGetOfferUnknownRoom(t *testing.T) {
	router := newTestRouter(repository.Options{})

	rec, body := doJSON(t, router, http.MethodGet, "/join/ZZZZ", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Room not found or expired", body["error"])
}

func TestSubmitAnswerUnknownRoom(t *testing.T) {
	router := newTestRouter(repository.Options{})

	rec, body := doJSON(t, router, http.MethodPost, "/answer/ZZZZ", `{"sdp":"guest-answer"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Room not found or expired", body["error"])
}

func TestSubmitAnswerRejectsEmptyAnswer(t *testing.T) {
	router := newTestRouter(repository.Options{})

	rec, body := doJSON(t, router, http.MethodPost, "/create", `{"sdp":"host-offer"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	code := body["code"].(string)

	rec, _ = doJSON(t, router, http.MethodPost, "/answer/"+code, `{"sdp":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitAnswerOverwrites(t *testing.T) {
	router := newTestRouter(repository.Options{})

	rec, body := doJSON(t, router, http.MethodPost, "/create", `{"sdp":"host-offer"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	code := body["code"].(string)

	rec, _ = doJSON(t, router, http.MethodPost, "/answer/"+code, `{"sdp":"first"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec, _ = doJSON(t, router, http.MethodPost, "/answer/"+code, `{"sdp":"second"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body = doJSON(t, router, http.MethodGet, "/answer/"+code, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "second", body["answer"])
}
