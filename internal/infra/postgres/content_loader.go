package postgres

import (
	"context"
	"errors"
	"fmt"

	"career-guidance-service/internal/domain"
	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// ContentLoader loads quiz and catalog JSONB documents from Postgres.
type ContentLoader struct {
	pool *pgxpool.Pool
}

func NewContentLoader(pool *pgxpool.Pool) *ContentLoader {
	return &ContentLoader{pool: pool}
}

func (l *ContentLoader) LoadQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM quizzes WHERE id=$1`, quizID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("load quiz: %w", err)
	}
	var quiz domain.Quiz
	if err := json.Unmarshal(raw, &quiz); err != nil {
		return domain.Quiz{}, fmt.Errorf("unmarshal quiz: %w", err)
	}
	if quiz.ID == "" {
		quiz.ID = quizID
	}
	return quiz, nil
}

func (l *ContentLoader) LoadCourses(ctx context.Context) ([]domain.Course, error) {
	return loadDocuments[domain.Course](ctx, l.pool, `SELECT data FROM courses ORDER BY id`)
}

func (l *ContentLoader) LoadColleges(ctx context.Context) ([]domain.College, error) {
	return loadDocuments[domain.College](ctx, l.pool, `SELECT data FROM colleges ORDER BY id`)
}

func loadDocuments[T any](ctx context.Context, pool *pgxpool.Pool, query string) ([]T, error) {
	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		var doc T
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("unmarshal document: %w", err)
		}
		out = append(out, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	return out, nil
}

// Seed upserts a quiz and both catalogs in one transaction.
func (l *ContentLoader) Seed(ctx context.Context, quiz domain.Quiz, courses []domain.Course, colleges []domain.College) error {
	return l.pool.BeginFunc(ctx, func(tx pgx.Tx) error {
		data, err := json.Marshal(quiz)
		if err != nil {
			return fmt.Errorf("marshal quiz: %w", err)
		}
		if _, err := tx.Exec(ctx, `INSERT INTO quizzes (id, data) VALUES ($1, $2::jsonb) ON CONFLICT (id) DO UPDATE SET data=EXCLUDED.data`, quiz.ID, string(data)); err != nil {
			return fmt.Errorf("upsert quiz: %w", err)
		}
		for _, c := range courses {
			data, err := json.Marshal(c)
			if err != nil {
				return fmt.Errorf("marshal course %d: %w", c.ID, err)
			}
			if _, err := tx.Exec(ctx, `INSERT INTO courses (id, data) VALUES ($1, $2::jsonb) ON CONFLICT (id) DO UPDATE SET data=EXCLUDED.data`, c.ID, string(data)); err != nil {
				return fmt.Errorf("upsert course %d: %w", c.ID, err)
			}
		}
		for _, c := range colleges {
			data, err := json.Marshal(c)
			if err != nil {
				return fmt.Errorf("marshal college %d: %w", c.ID, err)
			}
			if _, err := tx.Exec(ctx, `INSERT INTO colleges (id, data) VALUES ($1, $2::jsonb) ON CONFLICT (id) DO UPDATE SET data=EXCLUDED.data`, c.ID, string(data)); err != nil {
				return fmt.Errorf("upsert college %d: %w", c.ID, err)
			}
		}
		return nil
	})
}
