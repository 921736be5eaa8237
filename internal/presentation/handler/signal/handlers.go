package signal

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hilthontt/rendezvous/internal/domain"
	"github.com/hilthontt/rendezvous/internal/infrastructure/events"
	"github.com/hilthontt/rendezvous/internal/infrastructure/json"
	"github.com/hilthontt/rendezvous/internal/infrastructure/logging"
	"github.com/hilthontt/rendezvous/internal/infrastructure/validate"
)

var (
	validateSDP  = validate.Field("sdp", validate.Required())
	validateCode = validate.Field("code", validate.Required(), validate.NoSpaces())
)

type Handler struct {
	registry      domain.RoomRegistry
	roomPublisher *events.RoomPublisher
	logger        logging.Logger
}

func NewHandler(registry domain.RoomRegistry, roomPublisher *events.RoomPublisher, logger logging.Logger) *Handler {
	return &Handler{
		registry:      registry,
		roomPublisher: roomPublisher,
		logger:        logger,
	}
}

// CreateRoomHandler godoc
// @Summary      Create a signaling room
// @Description  Stores the host's offer and returns the short room code to share with the guest
// @Tags         signal
// @Accept       json
// @Produce      json
// @Param        request body sdpRequest true "Host offer"
// @Success      200 {object} createRoomResponse "Room created"
// @Failure      400 {object} map[string]interface{} "Bad request - empty offer"
// @Failure      500 {object} map[string]interface{} "Code space exhausted"
// @Router       /create [post]
func (h *Handler) CreateRoomHandler(w http.ResponseWriter, r *http.Request) {
	var req sdpRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	if err := validateSDP(req.SDP); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	ctx := r.Context()
	code, err := h.registry.Create(ctx, req.SDP)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyPayload):
			json.WriteValidationError(w, err)
		case errors.Is(err, domain.ErrCodeSpaceExhausted):
			h.logger.Error(logging.Registry, logging.RoomLifecycle, "room code space exhausted", nil)
			json.WriteInternalError(w, err)
		default:
			h.logger.Errorf("Failed to create room: %v", err)
			json.WriteInternalError(w, err)
		}
		return
	}

	if err := h.roomPublisher.PublishRoomCreated(ctx, code); err != nil {
		h.logger.Errorf("Error publishing room created: %v", err)
	}

	h.logger.Info(logging.Registry, logging.RoomLifecycle, "room created", map[logging.ExtraKey]any{
		logging.RoomCode: code,
	})

	json.Write(w, http.StatusOK, createRoomResponse{Code: code})
}

// GetOfferHandler godoc
// @Summary      Fetch the host's offer
// @Description  Returns the offer stored under the room code so the guest can build an answer
// @Tags         signal
// @Produce      json
// @Param        code path string true "Room code (case-insensitive)"
// @Success      200 {object} offerResponse "Stored offer"
// @Failure      400 {object} map[string]interface{} "Bad request - missing code"
// @Failure      404 {object} map[string]interface{} "Room not found or expired"
// @Router       /join/{code} [get]
func (h *Handler) GetOfferHandler(w http.ResponseWriter, r *http.Request) {
	code := domain.NormalizeCode(chi.URLParam(r, "code"))
	if err := validateCode(code); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	offer, err := h.registry.GetOffer(r.Context(), code)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRoomNotFound):
			json.WriteError(w, http.StatusNotFound, err, "Room not found or expired")
		default:
			h.logger.Errorf("Failed to fetch offer for room %s: %v", code, err)
			json.WriteInternalError(w, err)
		}
		return
	}

	json.Write(w, http.StatusOK, offerResponse{Offer: offer})
}

// SubmitAnswerHandler godoc
// @Summary      Submit the guest's answer
// @Description  Stores the guest's answer on the room; the host picks it up by polling
// @Tags         signal
// @Accept       json
// @Produce      json
// @Param        code path string true "Room code (case-insensitive)"
// @Param        request body sdpRequest true "Guest answer"
// @Success      200 {object} submitAnswerResponse "Answer stored"
// @Failure      400 {object} map[string]interface{} "Bad request - empty answer"
// @Failure      404 {object} map[string]interface{} "Room not found or expired"
// @Router       /answer/{code} [post]
func (h *Handler) SubmitAnswerHandler(w http.ResponseWriter, r *http.Request) {
	code := domain.NormalizeCode(chi.URLParam(r, "code"))
	if err := validateCode(code); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	var req sdpRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	if err := validateSDP(req.SDP); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	ctx := r.Context()
	if err := h.registry.SubmitAnswer(ctx, code, req.SDP); err != nil {
		switch {
		case errors.Is(err, domain.ErrRoomNotFound):
			json.WriteError(w, http.StatusNotFound, err, "Room not found or expired")
		case errors.Is(err, domain.ErrEmptyPayload):
			json.WriteValidationError(w, err)
		default:
			h.logger.Errorf("Failed to submit answer for room %s: %v", code, err)
			json.WriteInternalError(w, err)
		}
		return
	}

	if err := h.roomPublisher.PublishAnswerReceived(ctx, code); err != nil {
		h.logger.Errorf("Error publishing answer received: %v", err)
	}

	json.Write(w, http.StatusOK, submitAnswerResponse{Success: true})
}

// GetAnswerHandler godoc
// @Summary      Poll for the guest's answer
// @Description  Returns the answer once submitted and deletes the room; 202 means keep polling
// @Tags         signal
// @Produce      json
// @Param        code path string true "Room code (case-insensitive)"
// @Success      200 {object} answerResponse "Answer; the room is deleted"
// @Success      202 {object} waitingResponse "No answer yet - retry"
// @Failure      400 {object} map[string]interface{} "Bad request - missing code"
// @Failure      404 {object} map[string]interface{} "Room not found, expired, or already consumed"
// @Router       /answer/{code} [get]
func (h *Handler) GetAnswerHandler(w http.ResponseWriter, r *http.Request) {
	code := domain.NormalizeCode(chi.URLParam(r, "code"))
	if err := validateCode(code); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	ctx := r.Context()
	answer, err := h.registry.ConsumeAnswer(ctx, code)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAnswerNotReady):
			json.Write(w, http.StatusAccepted, waitingResponse{Waiting: true})
		case errors.Is(err, domain.ErrRoomNotFound):
			json.WriteError(w, http.StatusNotFound, err, "Room not found or expired")
		default:
			h.logger.Errorf("Failed to consume answer for room %s: %v", code, err)
			json.WriteInternalError(w, err)
		}
		return
	}

	if err := h.roomPublisher.PublishAnswerConsumed(ctx, code); err != nil {
		h.logger.Errorf("Error publishing answer consumed: %v", err)
	}

	h.logger.Info(logging.Registry, logging.RoomLifecycle, "answer consumed, room deleted", map[logging.ExtraKey]any{
		logging.RoomCode: code,
	})

	json.Write(w, http.StatusOK, answerResponse{Answer: answer})
}
