package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Prometheus-P/tee-up-new/internal/pkg/validate"

	bookingsvc "github.com/Prometheus-P/tee-up-new/internal/services/bookings"
	"github.com/Prometheus-P/tee-up-new/internal/transport/http/dto"
	httperrors "github.com/Prometheus-P/tee-up-new/internal/transport/http/errors"
)

type BookingsHandler struct {
	service *bookingsvc.Service
}

func NewBookingsHandler(service *bookingsvc.Service) *BookingsHandler {
	return &BookingsHandler{service: service}
}

func (h *BookingsHandler) ListByPro(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "BOOKINGS_UNAVAILABLE", "bookings are unavailable")
		return
	}

	proID := strings.TrimSpace(chi.URLParam(r, "id"))
	if !validate.Required(proID) {
		writeBadRequest(w, "INVALID_PRO_ID", "pro id is required")
		return
	}
	filter, err := bookingsvc.ParseFilter(r.URL.Query().Get("filter"))
	if err != nil {
		writeBadRequest(w, "INVALID_FILTER", err.Error())
		return
	}

	views, err := h.service.ListByPro(r.Context(), proID, filter)
	if err != nil {
		writeInternal(w, "BOOKINGS_FAILED", "failed to load bookings")
		return
	}

	resp := dto.BookingsResponse{Items: []dto.BookingItem{}, Filter: string(filter)}
	for _, v := range views {
		resp.Items = append(resp.Items, dto.BookingItem{
			ID:            v.ID,
			ProID:         v.ProID,
			StartAt:       v.StartAt,
			EndAt:         v.EndAt,
			Status:        string(v.Status),
			PaymentStatus: string(v.PaymentStatus),
			PriceAmount:   v.PriceAmount,
			DisplayStatus: string(v.DisplayStatus),
			Badge:         string(v.Badge),
		})
	}

	httperrors.Write(w, http.StatusOK, resp)
}
