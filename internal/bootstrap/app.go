package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"

	"internship-tracker/internal/applications"
	"internship-tracker/internal/services/health"
	"internship-tracker/internal/shared/config"
	"internship-tracker/internal/shared/server"
	"internship-tracker/internal/shared/storage/db"
	"internship-tracker/internal/shared/storage/kv"
	localstore "internship-tracker/internal/shared/storage/object/local"
	s3store "internship-tracker/internal/shared/storage/object/s3"
	"internship-tracker/internal/shared/telemetry"
)

const defaultRegion = "us-east-1"

// Storage holds the opened key-value backend and the store loaded from it.
type Storage struct {
	Backend string
	KV      kv.Store
	DB      *sql.DB
	Redis   *goredis.Client
	Store   *applications.Store
}

// App holds shared dependencies for the HTTP entry points.
type App struct {
	*Storage
	Config              config.Config
	Router              *gin.Engine
	Health              *health.Service
	ApplicationsHandler *applications.Handler
}

// Build opens storage, loads the store and wires the router.
func Build(cfg config.Config) (*App, error) {
	ctx := context.Background()

	storage, err := OpenStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Storage:             storage,
		Config:              cfg,
		Health:              health.NewService(storage.Backend, storage.Store),
		ApplicationsHandler: applications.NewHandler(storage.Store),
	}
	app.Router = server.NewRouter(server.RouterDeps{
		Config:              cfg,
		ApplicationsHandler: app.ApplicationsHandler,
		Health:              app.Health,
	})
	return app, nil
}

// OpenStorage connects the configured backend and loads the application store.
func OpenStorage(ctx context.Context, cfg config.Config) (*Storage, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	storage := &Storage{Backend: cfg.StoreBackend}
	if err := buildKV(ctx, cfg, storage); err != nil {
		return nil, err
	}

	storage.Store = applications.NewStore(storage.KV, applications.WithKey(cfg.StoreKey))
	apps, err := storage.Store.Load(ctx)
	if err != nil {
		_ = storage.Close()
		return nil, err
	}

	telemetry.Info("bootstrap.store_loaded", map[string]any{
		"backend":      storage.Backend,
		"key":          cfg.StoreKey,
		"applications": len(apps),
	})
	return storage, nil
}

// Close releases backend connections. The Lambda database singleton is left open.
func (s *Storage) Close() error {
	var errs []error
	if s.Redis != nil {
		errs = append(errs, s.Redis.Close())
	}
	if s.DB != nil && !db.IsLambdaRuntime() {
		errs = append(errs, s.DB.Close())
	}
	return errors.Join(errs...)
}

func buildKV(ctx context.Context, cfg config.Config, storage *Storage) error {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		storage.KV = kv.NewMemoryStore()
	case config.BackendS3:
		region := strings.TrimSpace(cfg.AWSRegion)
		if region == "" {
			region = defaultRegion
		}
		objects, err := s3store.New(ctx, region, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
		if err != nil {
			return err
		}
		storage.KV = kv.NewObjectStore(objects)
	case config.BackendPostgres:
		sqlDB, err := buildDB(ctx, cfg)
		if err != nil {
			return err
		}
		storage.DB = sqlDB
		storage.KV = &kv.PGStore{DB: sqlDB}
	case config.BackendRedis:
		client, err := kv.DialRedis(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		storage.Redis = client
		storage.KV = kv.NewRedisStore(client)
	case config.BackendLocal, "":
		storage.KV = kv.NewObjectStore(localstore.New(cfg.LocalStoreDir))
	default:
		return fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
	return nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	var (
		sqlDB *sql.DB
		err   error
	)
	if db.IsLambdaRuntime() {
		opts := db.OptionsFromEnv(db.DefaultLambdaOptions())
		sqlDB, err = db.GetSingleton(ctx, cfg.DatabaseURL, opts)
	} else {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, opts)
	}
	if err != nil {
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		if !db.IsLambdaRuntime() {
			sqlDB.Close()
		}
		return nil, err
	}
	return sqlDB, nil
}
