package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/fjallet/uploadbox-go/internal/cache"
	"github.com/fjallet/uploadbox-go/internal/config"
	"github.com/fjallet/uploadbox-go/internal/db"
	"github.com/fjallet/uploadbox-go/internal/handler"
	"github.com/fjallet/uploadbox-go/internal/handler/api"
	"github.com/fjallet/uploadbox-go/internal/logger"
	"github.com/fjallet/uploadbox-go/internal/mailer"
	cMiddleware "github.com/fjallet/uploadbox-go/internal/middleware"
	"github.com/fjallet/uploadbox-go/internal/notifier"
	"github.com/fjallet/uploadbox-go/internal/port"
	"github.com/fjallet/uploadbox-go/internal/repository/mariadb"
	"github.com/fjallet/uploadbox-go/internal/storage"
	"github.com/fjallet/uploadbox-go/internal/task"
	"github.com/fjallet/uploadbox-go/internal/transcoder"
	accountSvc "github.com/fjallet/uploadbox-go/internal/usecase/account"
	feedSvc "github.com/fjallet/uploadbox-go/internal/usecase/feed"
	uploadSvc "github.com/fjallet/uploadbox-go/internal/usecase/upload"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	logger.Init()

	database := initDb(ctx, cfg)

	r := initRouter(ctx)

	strg := initStorage(ctx, cfg)
	if err := strg.InitBucket(cfg.Bucket); err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize bucket %q: %v", cfg.Bucket, err)
		os.Exit(1)
	}

	uploadRepo := mariadb.NewUploadRepository(database.DB)
	userRepo := mariadb.NewUserRepository(database.DB)

	var ca port.Cache
	var feedNotifier port.FeedNotifier
	var dispatcher port.TaskDispatcher
	if cfg.RedisAddr != "" {
		ca = cache.NewCache(cfg.RedisAddr, cfg.RedisPassword)
		feedNotifier = notifier.NewRedisNotifier(cfg.RedisAddr, cfg.RedisPassword)
		dispatcher = task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword)
		logger.Info(ctx, "✅  Redis cache, feed notifier and task queue enabled")
	} else {
		ca = cache.NewNoop()
		feedNotifier = notifier.NewMemoryNotifier()
		dispatcher = task.NewInlineDispatcher(uploadSvc.NewUploadAnalyser(uploadRepo, feedNotifier))
		logger.Warn(ctx, "⚠️  Redis not configured, running single-instance with inline analysis")
	}

	sessions := accountSvc.NewSessionBroadcaster()
	issuer := accountSvc.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	consoleMailer := mailer.NewConsoleMailer()

	registrarSvc := accountSvc.NewRegistrar(userRepo, consoleMailer, db.NewUUID)
	r.Post("/auth/register", api.RegisterHandler(registrarSvc))

	authenticatorSvc := accountSvc.NewAuthenticator(userRepo, consoleMailer, issuer, sessions)
	r.Post("/auth/login", api.LoginHandler(authenticatorSvc))

	verifierSvc := accountSvc.NewEmailVerifier(userRepo)
	r.Post("/auth/verify", api.VerifyEmailHandler(verifierSvc))

	trc := transcoder.NewFileTranscoder(transcoder.NewWebPEncoder(), transcoder.NewPDFOptimizer(), cfg.ImageMaxWidth)
	uploaderSvc := uploadSvc.NewUploader(uploadRepo, strg, trc, feedNotifier, db.NewUUID, cfg.Bucket, cfg.MaxUploadSize)
	requesterSvc := uploadSvc.NewAnalysisRequester(uploadRepo, dispatcher)
	listerSvc := feedSvc.NewUploadLister(uploadRepo, strg, ca, cfg.Bucket, cfg.DownloadURLTTL)
	subscriberSvc := feedSvc.NewFeedSubscriber(listerSvc, feedNotifier)

	r.Group(func(r chi.Router) {
		r.Use(cMiddleware.WithAuth(cfg.JWTSecret))

		r.Post("/auth/logout", api.LogoutHandler(sessions))
		r.Post("/uploads", api.UploadHandler(uploaderSvc, cfg.MaxUploadSize))
		r.Get("/uploads", api.ListUploadsHandler(listerSvc))
		r.Get("/uploads/feed", api.FeedWSHandler(subscriberSvc, sessions))
		r.With(cMiddleware.WithRecordID()).
			Post("/uploads/{id}/analyse", api.AnalyseHandler(requesterSvc))
	})

	listenRouter(ctx, r, cfg, database)
}

func initDb(ctx context.Context, cfg *config.Settings) *db.Database {
	logger.Info(ctx, "initialising database...")

	database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}

	return database
}

func initRouter(ctx context.Context) *chi.Mux {
	logger.Info(ctx, "initialising router...")

	r := chi.NewRouter()

	r.Use(middleware.Logger)

	r.NotFound(handler.NotFoundHandler())
	r.MethodNotAllowed(api.MethodNotAllowedHandler())

	return r
}

func initStorage(ctx context.Context, cfg *config.Settings) port.Storage {
	strg, err := storage.NewMinioStorage(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioUseSSL,
	)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize MinIO client: %v", err)
		os.Exit(1)
	}

	return strg
}

func listenRouter(ctx context.Context, r *chi.Mux, cfg *config.Settings, database *db.Database) {
	srv := &http.Server{Addr: ":" + strconv.Itoa(cfg.ServerPort), Handler: r}

	// start serving
	go func() {
		logger.Infof(ctx, "🚀 API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "❌  Listen error: %v", err)
			os.Exit(1)
		}
	}()

	// block until we get SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "❌  Server shutdown failed: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "✅  Server gracefully stopped")

	if err := database.Close(); err != nil {
		logger.Errorf(ctx, "DB close error: %v", err)
		os.Exit(1)
	}
}
