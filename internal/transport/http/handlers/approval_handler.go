package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Prometheus-P/tee-up-new/internal/pkg/validate"

	"github.com/Prometheus-P/tee-up-new/internal/domain/model"
	approvalsvc "github.com/Prometheus-P/tee-up-new/internal/services/approval"
	"github.com/Prometheus-P/tee-up-new/internal/transport/http/dto"
	httperrors "github.com/Prometheus-P/tee-up-new/internal/transport/http/errors"
	pgrepo "github.com/Prometheus-P/tee-up-new/internal/repo/postgres"
)

type ApprovalHandler struct {
	controller *approvalsvc.Controller
}

func NewApprovalHandler(controller *approvalsvc.Controller) *ApprovalHandler {
	return &ApprovalHandler{controller: controller}
}

func (h *ApprovalHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.controller == nil {
		writeInternal(w, "APPROVAL_UNAVAILABLE", "profile approval is unavailable")
		return
	}

	lists := h.controller.List()
	resp := dto.ProProfilesResponse{
		Pending:  profileItems(lists.Pending),
		Approved: profileItems(lists.Approved),
	}
	if id, busy := h.controller.ProcessingID(); busy {
		resp.ProcessingID = id
	}
	resp.LastError = h.controller.LastError()

	httperrors.Write(w, http.StatusOK, resp)
}

func (h *ApprovalHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if h.controller == nil {
		writeInternal(w, "APPROVAL_UNAVAILABLE", "profile approval is unavailable")
		return
	}
	if err := h.controller.Refresh(r.Context()); err != nil {
		writeInternal(w, "APPROVAL_REFRESH_FAILED", "failed to refresh pro profiles")
		return
	}
	h.List(w, r)
}

// Queue returns the oldest pending submission with presigned media URLs.
func (h *ApprovalHandler) Queue(w http.ResponseWriter, r *http.Request) {
	if h.controller == nil {
		writeInternal(w, "APPROVAL_UNAVAILABLE", "profile approval is unavailable")
		return
	}

	item, err := h.controller.NextQueueItem(r.Context())
	if err != nil {
		if errors.Is(err, approvalsvc.ErrQueueEmpty) {
			writeNotFound(w, "QUEUE_EMPTY", "no pending profiles to review")
			return
		}
		writeInternal(w, "QUEUE_FAILED", "failed to load the approval queue")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.ApprovalQueueItemResponse{
		Profile:         profileItem(item.Profile),
		ProfileImageURL: item.ProfileImageURL,
		GalleryURLs:     item.GalleryURLs,
		QueueSize:       item.QueueSize,
	})
}

func (h *ApprovalHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, "approved", h.controllerApprove)
}

func (h *ApprovalHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, "rejected", h.controllerReject)
}

func (h *ApprovalHandler) decide(w http.ResponseWriter, r *http.Request, decision string, act func(*http.Request, string) error) {
	if h.controller == nil {
		writeInternal(w, "APPROVAL_UNAVAILABLE", "profile approval is unavailable")
		return
	}

	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if !validate.Required(id) {
		writeBadRequest(w, "INVALID_PROFILE_ID", "profile id is required")
		return
	}

	if err := act(r, id); err != nil {
		switch {
		case errors.Is(err, approvalsvc.ErrActionInFlight):
			writeConflict(w, "ACTION_IN_FLIGHT", "another approval action is in progress")
		case errors.Is(err, pgrepo.ErrProProfileNotFound):
			writeNotFound(w, "PROFILE_NOT_FOUND", "profile is not in the pending queue")
		default:
			writeInternal(w, "DECISION_FAILED", "failed to apply the profile decision")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, dto.ProfileDecisionResponse{ID: id, Decision: decision})
}

func (h *ApprovalHandler) controllerApprove(r *http.Request, id string) error {
	return h.controller.Approve(r.Context(), id)
}

func (h *ApprovalHandler) controllerReject(r *http.Request, id string) error {
	return h.controller.Reject(r.Context(), id)
}

func profileItems(profiles []model.ProProfile) []dto.ProProfileItem {
	items := make([]dto.ProProfileItem, 0, len(profiles))
	for _, p := range profiles {
		items = append(items, profileItem(p))
	}
	return items
}

func profileItem(p model.ProProfile) dto.ProProfileItem {
	return dto.ProProfileItem{
		ID:             p.ID,
		UserID:         p.UserID,
		Slug:           p.Slug,
		Title:          p.Title,
		Bio:            p.Bio,
		Specialties:    p.Specialties,
		Location:       p.Location,
		Certifications: p.Certifications,
		IsApproved:     p.IsApproved,
		ProfileViews:   p.ProfileViews,
		MonthlyChats:   p.MonthlyChats,
		TotalLeads:     p.TotalLeads,
		MatchedLessons: p.MatchedLessons,
		Rating:         p.Rating,
		Tier:           string(p.Tier),
		SubmittedAt:    p.CreatedAt,
	}
}
