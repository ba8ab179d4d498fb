package cli

import (
	"context"
	"fmt"
	"time"

	"career-guidance-service/internal/app"
	"career-guidance-service/internal/config"
	"career-guidance-service/internal/infra/badger"
	"career-guidance-service/internal/infra/memory"
	pgloader "career-guidance-service/internal/infra/postgres"
	rediscache "career-guidance-service/internal/infra/redis"
	"career-guidance-service/internal/logging"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
)

// runtime holds the wired service and everything that must be closed with it.
type runtime struct {
	service *app.CareerService
	store   *app.RecommendationStore
	closers []func()
}

func (r *runtime) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i]()
	}
}

// buildRuntime wires storage, content and the service from cfg.
func buildRuntime(ctx context.Context, cfg config.Config) (*runtime, error) {
	rt := &runtime{}
	ok := false
	defer func() {
		if !ok {
			rt.Close()
		}
	}()

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		rt.closers = append(rt.closers, func() { _ = redisClient.Close() })
	}

	kv, err := openProfileStore(cfg, redisClient, rt)
	if err != nil {
		return nil, err
	}
	rt.store = app.NewRecommendationStore(kv, cfg.Storage.Key)

	var loader memory.ContentLoader = memory.NewReferenceContentLoader()
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		rt.closers = append(rt.closers, pool.Close)
		loader = pgloader.NewContentLoader(pool)
	}

	contentTTL := config.Duration(cfg.Content.TTL, 10*time.Minute)
	var content app.ContentRepository
	if redisClient != nil {
		content = rediscache.NewContentRepository(redisClient, loader, contentTTL)
	} else {
		content = memory.NewContentRepository(loader, contentTTL)
	}

	delay := config.Duration(cfg.Quiz.AdvanceDelay, app.DefaultAdvanceDelay)
	rt.service = app.NewCareerService(content, rt.store, app.RealScheduler{}, delay)

	logging.Info().
		Str("storage", cfg.Storage.Driver).
		Bool("postgres", cfg.Postgres.URL != "").
		Bool("redis", redisClient != nil).
		Dur("advance_delay", delay).
		Msg("runtime wired")
	ok = true
	return rt, nil
}

func openProfileStore(cfg config.Config, redisClient *redis.Client, rt *runtime) (app.KeyValueStore, error) {
	switch cfg.Storage.Driver {
	case "", "badger":
		store, err := badger.Open(cfg.Storage.Path)
		if err != nil {
			return nil, err
		}
		rt.closers = append(rt.closers, func() {
			if err := store.Close(); err != nil {
				logging.Warn().Err(err).Msg("close profile store failed")
			}
		})
		return store, nil
	case "redis":
		if redisClient == nil {
			return nil, fmt.Errorf("storage driver redis requires redis.addr")
		}
		return rediscache.NewKVStore(redisClient, cfg.Storage.ProfileID, config.Duration(cfg.Redis.TTL, 0)), nil
	case "memory":
		return memory.NewKVStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func loadConfig(path string) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	return cfg, nil
}
