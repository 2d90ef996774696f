package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"wordbubble/internal/models"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var analysisColumns = []string{"id", "topic", "source", "keywords", "keyword_count", "token_count", "created_at"}

// RecordAnalysis inserts an analysis and fills in its ID and creation time.
func (d *DB) RecordAnalysis(ctx context.Context, a *models.Analysis) error {
	kws, err := json.Marshal(a.Keywords)
	if err != nil {
		return fmt.Errorf("encode keywords: %w", err)
	}

	err = d.Pool.QueryRow(ctx, `
		INSERT INTO analyses (topic, source, keywords, keyword_count, token_count)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, a.Topic, a.Source, kws, a.KeywordCount, a.TokenCount).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}
	return nil
}

// GetAnalysis returns the analysis with the given ID.
func (d *DB) GetAnalysis(ctx context.Context, id uuid.UUID) (*models.Analysis, error) {
	query, args, err := psql.Select(analysisColumns...).
		From("analyses").
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	a, err := scanAnalysis(d.Pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAnalysisNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ListAnalyses returns the most recent analyses matching the filter.
func (d *DB) ListAnalyses(ctx context.Context, filter models.AnalysisFilter) ([]models.Analysis, error) {
	builder := psql.Select(analysisColumns...).
		From("analyses").
		OrderBy("created_at DESC", "id").
		Limit(uint64(models.ClampLimit(filter.Limit)))

	if filter.Topic != "" {
		builder = builder.Where(sq.ILike{"topic": "%" + escapeLike(filter.Topic) + "%"})
	}
	if filter.Source != "" {
		builder = builder.Where(sq.Eq{"source": filter.Source})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := d.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query analyses: %w", err)
	}
	defer rows.Close()

	analyses := []models.Analysis{}
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, *a)
	}
	return analyses, rows.Err()
}

// DeleteAnalysesOlderThan removes analyses created before cutoff and returns
// how many were deleted.
func (d *DB) DeleteAnalysesOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := psql.Delete("analyses").
		Where(sq.Lt{"created_at": cutoff}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	tag, err := d.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete analyses: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanAnalysis(row pgx.Row) (*models.Analysis, error) {
	var (
		a   models.Analysis
		raw []byte
	)
	if err := row.Scan(&a.ID, &a.Topic, &a.Source, &raw, &a.KeywordCount, &a.TokenCount, &a.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &a.Keywords); err != nil {
		return nil, fmt.Errorf("decode keywords for %s: %w", a.ID, err)
	}
	return &a, nil
}

// escapeLike escapes LIKE wildcards so the filter matches literally.
func escapeLike(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '%' || r == '_' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}
