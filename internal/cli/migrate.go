package cli

import (
	"context"
	"database/sql"
	"fmt"

	"career-guidance-service/internal/config"
	"career-guidance-service/internal/infra/memory"
	pgloader "career-guidance-service/internal/infra/postgres"
	pgmigrations "career-guidance-service/internal/infra/postgres/migrations"
	"career-guidance-service/internal/logging"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

// NewMigrateCmd applies database migrations and optionally seeds reference content.
func NewMigrateCmd(configPath *string) *cobra.Command {
	var seed bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if err := runMigrationsWithConfig(cmd.Context(), cfg); err != nil {
				return err
			}
			if seed {
				return seedReferenceContent(cmd.Context(), cfg)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&seed, "seed", false, "upsert the built-in quiz and catalogs")
	return cmd
}

func runMigrationsWithConfig(ctx context.Context, cfg config.Config) error {
	if cfg.Postgres.URL == "" {
		return fmt.Errorf("postgres url not configured")
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.URL)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)

	if err := migrator.Init(ctx); err != nil {
		return err
	}

	group, err := migrator.Migrate(ctx)
	if err != nil {
		return err
	}
	if group.IsZero() {
		logging.Info().Msg("no new migrations")
		return nil
	}
	logging.Info().Str("group", group.String()).Msg("migrations applied")
	return nil
}

func seedReferenceContent(ctx context.Context, cfg config.Config) error {
	pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	courses, colleges := memory.ReferenceCourses(), memory.ReferenceColleges()
	if err := pgloader.NewContentLoader(pool).Seed(ctx, memory.ReferenceQuiz(), courses, colleges); err != nil {
		return err
	}
	logging.Info().
		Int("courses", len(courses)).
		Int("colleges", len(colleges)).
		Msg("reference content seeded")
	return nil
}
