package app

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"readiness/internal/gateway/config"
	"readiness/internal/gateway/repository/assessmentstore"
	"readiness/internal/gateway/repository/reportarchive"
)

type gatewayStores struct {
	assessments assessmentstore.Store
	archive     reportarchive.Store
}

func initStores(cfg *config.Config, log *zap.Logger) (*gatewayStores, error) {
	origin, label, err := initAssessmentOrigin(cfg)
	if err != nil {
		return nil, err
	}
	log.Info("assessment store initialized", zap.String("backend", label))

	archive, err := initArchive(cfg, log)
	if err != nil {
		return nil, err
	}

	return &gatewayStores{
		assessments: assessmentstore.NewCachedStore(origin, assessmentstore.DefaultCacheConfig()),
		archive:     archive,
	}, nil
}

func initAssessmentOrigin(cfg *config.Config) (assessmentstore.Store, string, error) {
	if dsn := strings.TrimSpace(cfg.DatabaseURL); dsn != "" {
		db, err := sql.Open("pgx", dsn)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open db: %w", err)
		}
		return assessmentstore.NewPostgresStore(db), "postgres", nil
	}
	if addr := strings.TrimSpace(cfg.Redis.Address); addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return assessmentstore.NewRedisStore(client, 0), "redis", nil
	}
	return assessmentstore.NewMemoryStore(), "in-memory", nil
}

func initArchive(cfg *config.Config, log *zap.Logger) (reportarchive.Store, error) {
	if cfg.Archive.CanUseS3() {
		s3Store, err := reportarchive.NewS3Store(reportarchive.S3Config{
			Endpoint:  cfg.Archive.Endpoint,
			Region:    cfg.Archive.Region,
			AccessKey: cfg.Archive.AccessKey,
			SecretKey: cfg.Archive.SecretKey,
			Bucket:    cfg.Archive.Bucket,
			UseSSL:    cfg.Archive.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize report archive: %w", err)
		}
		log.Info("report archive initialized",
			zap.String("bucket", cfg.Archive.Bucket), zap.String("endpoint", cfg.Archive.Endpoint))
		return s3Store, nil
	}
	if cfg.Archive.Enabled {
		log.Info("report archive: using in-memory fallback (s3 config incomplete)")
	}
	return reportarchive.NewMemoryStore(), nil
}
