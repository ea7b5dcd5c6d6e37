package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Prometheus-P/tee-up-new/internal/config"
	s3infra "github.com/Prometheus-P/tee-up-new/internal/infra/s3"
	"github.com/Prometheus-P/tee-up-new/internal/infra/telegram"
	"github.com/Prometheus-P/tee-up-new/internal/jobs/cleanup"
	pgrepo "github.com/Prometheus-P/tee-up-new/internal/repo/postgres"
	redrepo "github.com/Prometheus-P/tee-up-new/internal/repo/redis"
	authsvc "github.com/Prometheus-P/tee-up-new/internal/services/adminauth"
	approvalsvc "github.com/Prometheus-P/tee-up-new/internal/services/approval"
	bookingsvc "github.com/Prometheus-P/tee-up-new/internal/services/bookings"
	chatsvc "github.com/Prometheus-P/tee-up-new/internal/services/chatrooms"
	modsvc "github.com/Prometheus-P/tee-up-new/internal/services/moderation"
	ratesvc "github.com/Prometheus-P/tee-up-new/internal/services/rate"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	postgres   *pgxpool.Pool
	redis      *goredis.Client
	s3         *minio.Client
	httpRouter http.Handler
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	var pool *pgxpool.Pool
	if p, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN); err != nil {
		log.Warn("postgres init failed, continuing in degraded mode", zap.Error(err))
	} else {
		pool = p
	}

	redisClient := redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)

	flaggedRepo := pgrepo.NewFlaggedMessageRepo(pool)
	roomRepo := pgrepo.NewChatRoomRepo(pool)
	profileRepo := pgrepo.NewProProfileRepo(pool)
	bookingRepo := pgrepo.NewBookingRepo(pool)
	adminUserRepo := pgrepo.NewAdminUserRepo(pool)
	statsCache := redrepo.NewStatsCacheRepo(redisClient)
	sessionRepo := redrepo.NewAdminSessionRepo(redisClient)

	authService := authsvc.NewService(authsvc.Config{
		JWTSecret:   cfg.Admin.JWTSecret,
		AccessTTL:   cfg.Admin.AccessTTL,
		SessionIdle: cfg.Admin.SessionIdle,
		TOTPIssuer:  cfg.Admin.TOTPIssuer,
	}, adminUserRepo, sessionRepo)

	moderationController := modsvc.NewController(flaggedRepo, modsvc.Config{
		ActionTimeout: cfg.Moderation.ActionTimeout,
	})
	approvalController := approvalsvc.NewController(profileRepo, approvalsvc.Config{
		ActionTimeout: cfg.Moderation.ActionTimeout,
		MediaURLTTL:   cfg.Moderation.MediaURLTTL,
	})
	chatService := chatsvc.NewService(roomRepo, chatsvc.Config{
		StatsCacheTTL: cfg.Moderation.StatsCacheTTL,
	}, log)
	chatService.AttachCache(statsCache)
	bookingService := bookingsvc.NewService(bookingRepo)
	loginLimiter := ratesvc.NewLimiter(redrepo.NewRateRepo(redisClient), cfg.Admin.LoginRatePerMinute)

	var s3Client *minio.Client
	if c, err := s3infra.NewClient(s3infra.Config{
		Endpoint:  cfg.S3.Endpoint,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		UseSSL:    cfg.S3.UseSSL,
	}); err != nil {
		log.Warn("s3 init failed, continuing in degraded mode", zap.Error(err))
	} else {
		s3Client = c
		approvalController.AttachSigner(s3infra.NewSigner(s3Client, cfg.S3.Bucket))
	}

	if cfg.Alerts.TelegramToken != "" && cfg.Alerts.TelegramChatID != 0 {
		if notifier, err := telegram.NewNotifier(cfg.Alerts.TelegramToken, cfg.Alerts.TelegramChatID); err != nil {
			log.Warn("telegram alerts init failed, continuing without alerts", zap.Error(err))
		} else {
			moderationController.AttachAlerts(notifier)
			approvalController.AttachAlerts(notifier)
		}
	}

	if pool != nil {
		retentionJob := cleanup.NewReviewedRetentionJob(
			flaggedRepo,
			cfg.Moderation.ReviewedRetention,
			cfg.Moderation.CleanupInterval,
			log,
		)
		go retentionJob.Start(ctx)
	}

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	RegisterRoutes(r, Dependencies{
		AuthService:          authService,
		LoginLimiter:         loginLimiter,
		ModerationController: moderationController,
		ApprovalController:   approvalController,
		ChatService:          chatService,
		BookingService:       bookingService,
		Logger:               log,
		Config:               cfg,
	})

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		postgres:   pool,
		redis:      redisClient,
		s3:         s3Client,
		httpRouter: r,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info("admin api server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.postgres != nil {
		a.postgres.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
