package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Prometheus-P/tee-up-new/internal/domain/enums"
	"github.com/Prometheus-P/tee-up-new/internal/domain/model"
	chatsvc "github.com/Prometheus-P/tee-up-new/internal/services/chatrooms"
	"github.com/Prometheus-P/tee-up-new/internal/transport/http/dto"
)

type stubRoomStore struct {
	rooms       []model.ChatRoom
	stats       model.ChatStats
	updateCalls []string
}

func (s *stubRoomStore) ListRooms(ctx context.Context) ([]model.ChatRoom, error) {
	return s.rooms, nil
}

func (s *stubRoomStore) Stats(ctx context.Context) (model.ChatStats, error) {
	return s.stats, nil
}

func (s *stubRoomStore) UpdateStatus(ctx context.Context, roomID string, status enums.RoomStatus) error {
	s.updateCalls = append(s.updateCalls, roomID+":"+string(status))
	return nil
}

func chatsRouter(store *stubRoomStore) http.Handler {
	svc := chatsvc.NewService(store, chatsvc.Config{}, zap.NewNop())
	h := NewChatsHandler(svc)
	r := chi.NewRouter()
	r.Get("/admin/chats", h.Rooms)
	r.Get("/admin/chats/stats", h.Stats)
	r.Patch("/admin/chats/{id}/status", h.UpdateStatus)
	return r
}

func TestChatStatsEndpoint(t *testing.T) {
	router := chatsRouter(&stubRoomStore{stats: model.ChatStats{TotalRooms: 3, FlaggedMessages: 1}})

	req := httptest.NewRequest(http.MethodGet, "/admin/chats/stats", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d", rr.Code)
	}
	var resp dto.ChatStatsResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.TotalRooms != 3 || resp.FlaggedMessages != 1 {
		t.Fatalf("stats = %+v", resp)
	}
}

func TestUpdateRoomStatusEndpoint(t *testing.T) {
	store := &stubRoomStore{}
	router := chatsRouter(store)

	body := strings.NewReader(`{"status":"closed"}`)
	req := httptest.NewRequest(http.MethodPatch, "/admin/chats/room-1/status", body)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d body=%s", rr.Code, rr.Body.String())
	}
	if len(store.updateCalls) != 1 || store.updateCalls[0] != "room-1:closed" {
		t.Fatalf("update calls = %v", store.updateCalls)
	}
}

func TestUpdateRoomStatusRejectsUnknownValue(t *testing.T) {
	store := &stubRoomStore{}
	router := chatsRouter(store)

	body := strings.NewReader(`{"status":"archived"}`)
	req := httptest.NewRequest(http.MethodPatch, "/admin/chats/room-1/status", body)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got=%d", rr.Code)
	}
	if len(store.updateCalls) != 0 {
		t.Fatalf("invalid status must not reach the store: %v", store.updateCalls)
	}
}
