package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Prometheus-P/tee-up-new/internal/pkg/validate"

	modsvc "github.com/Prometheus-P/tee-up-new/internal/services/moderation"
	"github.com/Prometheus-P/tee-up-new/internal/transport/http/dto"
	httperrors "github.com/Prometheus-P/tee-up-new/internal/transport/http/errors"
	pgrepo "github.com/Prometheus-P/tee-up-new/internal/repo/postgres"
)

type ModerationHandler struct {
	controller *modsvc.Controller
}

func NewModerationHandler(controller *modsvc.Controller) *ModerationHandler {
	return &ModerationHandler{controller: controller}
}

// List returns the active flagged-message queue plus the controller's
// observables so the console can render a spinner and the last failure.
func (h *ModerationHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.controller == nil {
		writeInternal(w, "MODERATION_UNAVAILABLE", "moderation is unavailable")
		return
	}

	resp := dto.FlaggedMessagesResponse{Items: []dto.FlaggedMessageItem{}}
	for _, msg := range h.controller.List() {
		resp.Items = append(resp.Items, dto.FlaggedMessageItem{
			ID:         msg.ID,
			ChatRoomID: msg.ChatRoomID,
			Sender:     msg.Sender,
			Content:    msg.Content,
			FlagReason: msg.FlagReason,
			FlaggedAt:  msg.FlaggedAt,
		})
	}
	if id, busy := h.controller.ProcessingID(); busy {
		resp.ProcessingID = id
	}
	resp.LastError = h.controller.LastError()

	httperrors.Write(w, http.StatusOK, resp)
}

func (h *ModerationHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if h.controller == nil {
		writeInternal(w, "MODERATION_UNAVAILABLE", "moderation is unavailable")
		return
	}
	if err := h.controller.Refresh(r.Context()); err != nil {
		writeInternal(w, "MODERATION_REFRESH_FAILED", "failed to refresh flagged messages")
		return
	}
	h.List(w, r)
}

func (h *ModerationHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	if h.controller == nil {
		writeInternal(w, "MODERATION_UNAVAILABLE", "moderation is unavailable")
		return
	}

	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if !validate.Required(id) {
		writeBadRequest(w, "INVALID_MESSAGE_ID", "message id is required")
		return
	}

	var req dto.ResolveFlaggedMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "INVALID_BODY", "request body must be valid json")
		return
	}
	outcome, err := modsvc.ParseOutcome(req.Outcome)
	if err != nil {
		writeBadRequest(w, "INVALID_OUTCOME", err.Error())
		return
	}

	if err := h.controller.Resolve(r.Context(), id, outcome); err != nil {
		switch {
		case errors.Is(err, modsvc.ErrActionInFlight):
			writeConflict(w, "ACTION_IN_FLIGHT", "another moderation action is in progress")
		case errors.Is(err, pgrepo.ErrFlaggedMessageNotFound):
			writeNotFound(w, "MESSAGE_NOT_FOUND", "flagged message is not in the active queue")
		default:
			writeInternal(w, "RESOLVE_FAILED", "failed to resolve flagged message")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, dto.ResolveFlaggedMessageResponse{
		ID:      id,
		Outcome: string(outcome),
	})
}
