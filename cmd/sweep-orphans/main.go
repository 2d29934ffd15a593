package main

import (
	"context"
	"os"
	"time"

	"github.com/fjallet/uploadbox-go/internal/cache"
	"github.com/fjallet/uploadbox-go/internal/config"
	"github.com/fjallet/uploadbox-go/internal/db"
	"github.com/fjallet/uploadbox-go/internal/port"
	"github.com/fjallet/uploadbox-go/internal/repository/mariadb"
	"github.com/fjallet/uploadbox-go/internal/storage"
	uploadSvc "github.com/fjallet/uploadbox-go/internal/usecase/upload"

	"github.com/fjallet/uploadbox-go/internal/logger"
)

// objects younger than this may belong to an attempt that is still committing
const orphanGrace = time.Hour

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Warnf(ctx, "DB close error: %v", err)
		}
	}()

	strg, err := storage.NewMinioStorage(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize MinIO client: %v", err)
		os.Exit(1)
	}

	var ca port.Cache = cache.NewNoop()
	if cfg.RedisAddr != "" {
		ca = cache.NewCache(cfg.RedisAddr, cfg.RedisPassword)
	}

	repo := mariadb.NewUploadRepository(database.DB)
	sweeper := uploadSvc.NewOrphanSweeper(repo, strg, ca, cfg.Bucket, orphanGrace)

	removed, err := sweeper.SweepOrphans(ctx)
	if err != nil {
		logger.Errorf(ctx, "❌  Orphan sweep failed: %v", err)
		os.Exit(1)
	}
	logger.Infof(ctx, "✅  Orphan sweep completed, removed %d object(s)", removed)
}
