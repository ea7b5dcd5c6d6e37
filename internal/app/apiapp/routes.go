package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Prometheus-P/tee-up-new/internal/config"
	authsvc "github.com/Prometheus-P/tee-up-new/internal/services/adminauth"
	approvalsvc "github.com/Prometheus-P/tee-up-new/internal/services/approval"
	bookingsvc "github.com/Prometheus-P/tee-up-new/internal/services/bookings"
	chatsvc "github.com/Prometheus-P/tee-up-new/internal/services/chatrooms"
	modsvc "github.com/Prometheus-P/tee-up-new/internal/services/moderation"
	ratesvc "github.com/Prometheus-P/tee-up-new/internal/services/rate"
	"github.com/Prometheus-P/tee-up-new/internal/transport/http/handlers"
)

type Dependencies struct {
	AuthService          *authsvc.Service
	LoginLimiter         *ratesvc.Limiter
	ModerationController *modsvc.Controller
	ApprovalController   *approvalsvc.Controller
	ChatService          *chatsvc.Service
	BookingService       *bookingsvc.Service
	Logger               *zap.Logger
	Config               config.Config
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(deps.AuthService)
	authHandler.AttachLoginLimiter(deps.LoginLimiter)
	moderationHandler := handlers.NewModerationHandler(deps.ModerationController)
	approvalHandler := handlers.NewApprovalHandler(deps.ApprovalController)
	chatsHandler := handlers.NewChatsHandler(deps.ChatService)
	bookingsHandler := handlers.NewBookingsHandler(deps.BookingService)

	r.Get("/health", healthHandler.Handle)
	r.Post("/admin/auth/login", authHandler.Login)

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(deps.AuthService, deps.Logger))

		r.Post("/admin/auth/logout", authHandler.Logout)
		r.Post("/admin/auth/totp/setup", authHandler.TOTPSetup)

		r.Route("/admin/moderation", func(r chi.Router) {
			r.Use(RequireRole("moderator"))
			r.Get("/flagged", moderationHandler.List)
			r.Post("/flagged/refresh", moderationHandler.Refresh)
			r.Post("/flagged/{id}/resolve", moderationHandler.Resolve)
		})

		r.Route("/admin/pros", func(r chi.Router) {
			r.Use(RequireRole("moderator"))
			r.Get("/", approvalHandler.List)
			r.Post("/refresh", approvalHandler.Refresh)
			r.Get("/queue", approvalHandler.Queue)
			r.Post("/{id}/approve", approvalHandler.Approve)
			r.Post("/{id}/reject", approvalHandler.Reject)
			r.Get("/{id}/bookings", bookingsHandler.ListByPro)
		})

		r.Route("/admin/chats", func(r chi.Router) {
			r.Use(RequireRole("moderator"))
			r.Get("/", chatsHandler.Rooms)
			r.Get("/stats", chatsHandler.Stats)
			r.Patch("/{id}/status", chatsHandler.UpdateStatus)
		})
	})
}
