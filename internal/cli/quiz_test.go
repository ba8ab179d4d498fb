package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"career-guidance-service/internal/config"
	"career-guidance-service/internal/domain"
)

func memoryConfig() config.Config {
	cfg := config.Default()
	cfg.Storage.Driver = "memory"
	cfg.Quiz.AdvanceDelay = "1h"
	return cfg
}

func TestRunQuizPrintsRecommendationAndCatalogs(t *testing.T) {
	ctx := context.Background()
	rt, err := buildRuntime(ctx, memoryConfig())
	if err != nil {
		t.Fatalf("build runtime: %v", err)
	}
	defer rt.Close()

	// a back step and a bad entry in the middle should not change the outcome
	input := strings.Join([]string{"2", "b", "x", "2", "2", "2", "2", "2", "2"}, "\n") + "\n"
	var out bytes.Buffer
	if err := runQuiz(ctx, rt.service, "aptitude", strings.NewReader(input), &out); err != nil {
		t.Fatalf("run quiz: %v\n%s", err, out.String())
	}

	text := out.String()
	if !strings.Contains(text, "Recommended stream: Medicine") {
		t.Fatalf("expected Medicine recommendation, got:\n%s", text)
	}
	if !strings.Contains(text, "MBBS") || strings.Contains(text, "BBA") {
		t.Fatalf("expected medicine-only courses, got:\n%s", text)
	}
	if got := rt.service.Recommendation(ctx); got != domain.Recommend(domain.Medicine) {
		t.Fatalf("expected stored Medicine, got %s", got)
	}
}

func TestRunQuizAbortsOnEOF(t *testing.T) {
	ctx := context.Background()
	rt, err := buildRuntime(ctx, memoryConfig())
	if err != nil {
		t.Fatalf("build runtime: %v", err)
	}
	defer rt.Close()

	var out bytes.Buffer
	if err := runQuiz(ctx, rt.service, "aptitude", strings.NewReader("1\n"), &out); err == nil {
		t.Fatalf("expected error for incomplete quiz")
	}
	if got := rt.service.Recommendation(ctx); !got.IsNone() {
		t.Fatalf("expected no recommendation after abort, got %s", got)
	}
}

func TestBuildRuntimeRejectsUnknownDriver(t *testing.T) {
	cfg := memoryConfig()
	cfg.Storage.Driver = "sqlite"
	if _, err := buildRuntime(context.Background(), cfg); err == nil {
		t.Fatalf("expected unknown driver error")
	}

	cfg.Storage.Driver = "redis"
	if _, err := buildRuntime(context.Background(), cfg); err == nil {
		t.Fatalf("expected redis driver without addr to fail")
	}
}

func TestBuildRuntimeBadgerPersistsAcrossRuns(t *testing.T) {
	ctx := context.Background()
	cfg := memoryConfig()
	cfg.Storage.Driver = "badger"
	cfg.Storage.Path = t.TempDir()

	rt, err := buildRuntime(ctx, cfg)
	if err != nil {
		t.Fatalf("build runtime: %v", err)
	}
	rt.store.Set(ctx, domain.Recommend(domain.Commerce))
	rt.Close()

	rt, err = buildRuntime(ctx, cfg)
	if err != nil {
		t.Fatalf("reopen runtime: %v", err)
	}
	defer rt.Close()
	if got := rt.service.Recommendation(ctx); got != domain.Recommend(domain.Commerce) {
		t.Fatalf("expected Commerce after reopen, got %s", got)
	}
}
