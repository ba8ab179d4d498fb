package migrations

import (
	"context"
	_ "embed"
	"strings"

	"github.com/uptrace/bun"
)

//go:embed 0002_create_catalogs.sql
var createCatalogsSQL string

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			return execStatements(ctx, db, createCatalogsSQL)
		},
		func(ctx context.Context, db *bun.DB) error {
			return execStatements(ctx, db, `DROP TABLE IF EXISTS colleges; DROP TABLE IF EXISTS courses`)
		},
	)
}

// execStatements runs each ;-separated statement on its own.
func execStatements(ctx context.Context, db *bun.DB, script string) error {
	for _, stmt := range strings.Split(script, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
