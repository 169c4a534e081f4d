package handle_event

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-BookingBot/internal/api/handlers"
	"github.com/m04kA/SMC-BookingBot/internal/api/middleware"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
)

type Handler struct {
	machine  EventHandler
	limiter  RateLimiter
	validate *validator.Validate
	logger   Logger
}

func NewHandler(machine EventHandler, limiter RateLimiter, logger Logger) *Handler {
	return &Handler{
		machine:  machine,
		limiter:  limiter,
		validate: validator.New(),
		logger:   logger,
	}
}

// Handle POST /api/v1/events
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	var req HandleEventRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /events - Invalid request body: user_id=%d, error=%v", userID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		var validateErr validator.ValidationErrors
		if errors.As(err, &validateErr) {
			h.logger.Warn("POST /events - Validation failed: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, handlers.ValidationMessage(validateErr))
			return
		}
		h.logger.Error("POST /events - Validator failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	if h.limiter != nil && !h.limiter.Allow(userID) {
		h.logger.Warn("POST /events - Rate limit exceeded: user_id=%d", userID)
		handlers.RespondTooManyRequests(w)
		return
	}

	ev := req.ToEvent(userID)
	reply, err := h.machine.Handle(r.Context(), ev)
	if err != nil {
		h.logger.Error("POST /events - Failed to handle event: user_id=%d, kind=%s, error=%v", userID, ev.Kind, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /events - Event handled: user_id=%d, kind=%s", userID, ev.Kind)
	handlers.RespondJSON(w, http.StatusOK, FromReply(reply))
}
