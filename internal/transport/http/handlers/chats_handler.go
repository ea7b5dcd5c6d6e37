package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Prometheus-P/tee-up-new/internal/domain/enums"
	"github.com/Prometheus-P/tee-up-new/internal/pkg/validate"
	pgrepo "github.com/Prometheus-P/tee-up-new/internal/repo/postgres"
	chatsvc "github.com/Prometheus-P/tee-up-new/internal/services/chatrooms"
	"github.com/Prometheus-P/tee-up-new/internal/transport/http/dto"
	httperrors "github.com/Prometheus-P/tee-up-new/internal/transport/http/errors"
)

type ChatsHandler struct {
	service *chatsvc.Service
}

func NewChatsHandler(service *chatsvc.Service) *ChatsHandler {
	return &ChatsHandler{service: service}
}

func (h *ChatsHandler) Rooms(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CHATS_UNAVAILABLE", "chat oversight is unavailable")
		return
	}

	rooms, err := h.service.Rooms(r.Context())
	if err != nil {
		writeInternal(w, "ROOMS_FAILED", "failed to load chat rooms")
		return
	}

	resp := dto.ChatRoomsResponse{Items: []dto.ChatRoomItem{}}
	for _, room := range rooms {
		resp.Items = append(resp.Items, dto.ChatRoomItem{
			ID:            room.ID,
			ProID:         room.ProID,
			GolferID:      room.GolferID,
			ProName:       room.ProName,
			GolferName:    room.GolferName,
			LastMessage:   room.LastMessage,
			LastMessageAt: room.LastMessageAt,
			UnreadCount:   room.UnreadCount,
			Status:        string(room.Status),
			CreatedAt:     room.CreatedAt,
		})
	}

	httperrors.Write(w, http.StatusOK, resp)
}

func (h *ChatsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CHATS_UNAVAILABLE", "chat oversight is unavailable")
		return
	}

	stats, err := h.service.Stats(r.Context())
	if err != nil {
		writeInternal(w, "STATS_FAILED", "failed to load chat stats")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.ChatStatsResponse{
		TotalRooms:      stats.TotalRooms,
		ActiveRooms:     stats.ActiveRooms,
		MatchedRooms:    stats.MatchedRooms,
		FlaggedMessages: stats.FlaggedMessages,
	})
}

func (h *ChatsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CHATS_UNAVAILABLE", "chat oversight is unavailable")
		return
	}

	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if !validate.Required(id) {
		writeBadRequest(w, "INVALID_ROOM_ID", "room id is required")
		return
	}

	var req dto.UpdateRoomStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "INVALID_BODY", "request body must be valid json")
		return
	}

	if err := h.service.UpdateStatus(r.Context(), id, req.Status); err != nil {
		switch {
		case errors.Is(err, pgrepo.ErrChatRoomNotFound):
			writeNotFound(w, "ROOM_NOT_FOUND", "chat room does not exist")
		case errors.Is(err, enums.ErrUnknownRoomStatus):
			writeBadRequest(w, "INVALID_STATUS", err.Error())
		default:
			writeInternal(w, "STATUS_UPDATE_FAILED", "failed to update room status")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, dto.UpdateRoomStatusResponse{ID: id, Status: req.Status})
}
