package integration

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	"career-guidance-service/internal/app"
	"career-guidance-service/internal/domain"
	"career-guidance-service/internal/infra/memory"
	pgloader "career-guidance-service/internal/infra/postgres"
	pgmigrations "career-guidance-service/internal/infra/postgres/migrations"
	infraredis "career-guidance-service/internal/infra/redis"
	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

func TestQuizToCatalogEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	migrateDB(t, ctx, pgURL)

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	loader := pgloader.NewContentLoader(pool)
	if err := loader.Seed(ctx, memory.ReferenceQuiz(), memory.ReferenceCourses(), memory.ReferenceColleges()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	defer redisClient.Close()

	content := infraredis.NewContentRepository(redisClient, loader, 5*time.Minute)
	kv := infraredis.NewKVStore(redisClient, "student-1", 0)
	store := app.NewRecommendationStore(kv, "")
	service := app.NewCareerService(content, store, app.RealScheduler{}, time.Millisecond)

	done := make(chan domain.Recommendation, 1)
	engine, err := service.NewQuiz(ctx, memory.ReferenceQuizID, app.QuizCallbacks{
		OnComplete: func(rec domain.Recommendation) { done <- rec },
	})
	if err != nil {
		t.Fatalf("new quiz: %v", err)
	}
	defer engine.Close()
	engine.Start(ctx)

	// Commerce on every question; wait for each auto-advance before the next answer
	for i := 0; i < 6; i++ {
		if err := engine.SelectOption(ctx, 3); err != nil {
			t.Fatalf("select on question %d: %v", i, err)
		}
		waitForIndex(t, engine, i+1)
	}

	select {
	case rec := <-done:
		if rec != domain.Recommend(domain.Commerce) {
			t.Fatalf("expected Commerce, got %s", rec)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("quiz did not complete")
	}

	// a second store over the same profile sees the persisted value
	reloaded := app.NewRecommendationStore(infraredis.NewKVStore(redisClient, "student-1", 0), "")
	if got := reloaded.Get(ctx); got != domain.Recommend(domain.Commerce) {
		t.Fatalf("expected persisted Commerce, got %s", got)
	}

	courses, err := service.ListCourses(ctx, app.CatalogQuery{})
	if err != nil {
		t.Fatalf("list courses: %v", err)
	}
	if len(courses.Entries) != 2 {
		t.Fatalf("expected 2 commerce courses, got %d", len(courses.Entries))
	}

	colleges, err := service.ListColleges(ctx, app.CatalogQuery{})
	if err != nil {
		t.Fatalf("list colleges: %v", err)
	}
	if len(colleges.Entries) != 0 {
		t.Fatalf("expected no commerce colleges, got %d", len(colleges.Entries))
	}

	if _, err := service.NewQuiz(ctx, "missing", app.QuizCallbacks{}); err == nil {
		t.Fatalf("expected unknown quiz to fail")
	}
}

func TestRedisSwapRecoversCorruptProfile(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	redisURL, cleanup := startRedis(t, ctx)
	defer cleanup()
	client, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	defer client.Close()

	if err := client.Set(ctx, "career:profile:p1:recommendedStream", "Astrology", 0).Err(); err != nil {
		t.Fatalf("seed corrupt value: %v", err)
	}
	store := app.NewRecommendationStore(infraredis.NewKVStore(client, "p1", 0), "")
	if got := store.Get(ctx); !got.IsNone() {
		t.Fatalf("expected none, got %s", got)
	}
	if n, _ := client.Exists(ctx, "career:profile:p1:recommendedStream").Result(); n != 0 {
		t.Fatalf("expected corrupt key removed")
	}
}

func waitForIndex(t *testing.T, engine *app.QuizEngine, index int) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if engine.State().Index >= index {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("engine did not reach question %d", index)
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "career", "POSTGRES_PASSWORD": "careerpass", "POSTGRES_DB": "careerdb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://career:careerpass@%s:%s/careerdb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	url := fmt.Sprintf("redis://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

func migrateDB(t *testing.T, ctx context.Context, dsn string) {
	t.Helper()
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("migrator init: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(opts), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
