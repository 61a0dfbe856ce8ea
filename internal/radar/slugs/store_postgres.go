// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

package slugs

import (
	"context"
	"fmt"
	"time"

	"github.com/mc-aweaver/techradar-1/internal/platform/database/schema"
	"github.com/mc-aweaver/techradar-1/internal/platform/dberr"
	"github.com/mc-aweaver/techradar-1/internal/platform/postgres"
	"github.com/mc-aweaver/techradar-1/pkg/uuid"
)

// PostgresRepository implements [Repository] on radar.slug.
type PostgresRepository struct {
	db postgres.DB
}

// NewPostgresRepository creates the Postgres slug history store.
func NewPostgresRepository(db postgres.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Record(context context.Context, record *SlugRecord) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5, $6)`,
		schema.RadarSlug.Table,
		schema.RadarSlug.ID, schema.RadarSlug.Slug, schema.RadarSlug.SluggableID,
		schema.RadarSlug.SluggableType, schema.RadarSlug.Scope, schema.RadarSlug.CreatedAt,
	)

	if record.ID == "" {
		record.ID = uuid.New()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	_, err := postgres.QuerierFromCtx(context, repository.db).Exec(context, query,
		record.ID, record.Slug, record.SluggableID, record.SluggableType, record.Scope, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_slug_repo_record_failed: %w", err)
	}

	return nil
}

func (repository *PostgresRepository) Exists(context context.Context, slug, sluggableType, scope string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2 AND %s = $3)`,
		schema.RadarSlug.Table, schema.RadarSlug.Slug, schema.RadarSlug.SluggableType, schema.RadarSlug.Scope,
	)

	var exists bool
	err := postgres.QuerierFromCtx(context, repository.db).QueryRow(context, query, slug, sluggableType, scope).Scan(&exists)
	if err != nil {
		return false, dberr.Wrap(err, "slug_exists")
	}

	return exists, nil
}

func (repository *PostgresRepository) Resolve(context context.Context, slug, sluggableType, scope string) (string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2 AND %s = $3`,
		schema.RadarSlug.SluggableID, schema.RadarSlug.Table,
		schema.RadarSlug.Slug, schema.RadarSlug.SluggableType, schema.RadarSlug.Scope,
	)

	var id string
	err := postgres.QuerierFromCtx(context, repository.db).QueryRow(context, query, slug, sluggableType, scope).Scan(&id)
	if err != nil {
		return "", dberr.WrapResource(err, "resolve_slug", sluggableType)
	}

	return id, nil
}

func (repository *PostgresRepository) History(context context.Context, sluggableID, sluggableType string) ([]*SlugRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = $2
		ORDER BY %s ASC`,
		schema.RadarSlug.ID, schema.RadarSlug.Slug, schema.RadarSlug.SluggableID,
		schema.RadarSlug.SluggableType, schema.RadarSlug.Scope, schema.RadarSlug.CreatedAt,
		schema.RadarSlug.Table,
		schema.RadarSlug.SluggableID, schema.RadarSlug.SluggableType,
		schema.RadarSlug.CreatedAt,
	)

	rows, err := postgres.QuerierFromCtx(context, repository.db).Query(context, query, sluggableID, sluggableType)
	if err != nil {
		return nil, dberr.Wrap(err, "list_slug_history")
	}
	defer rows.Close()

	var records []*SlugRecord
	for rows.Next() {
		record := &SlugRecord{}
		if err := rows.Scan(&record.ID, &record.Slug, &record.SluggableID, &record.SluggableType, &record.Scope, &record.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_slug")
		}
		records = append(records, record)
	}

	return records, dberr.Wrap(rows.Err(), "iterate_slugs")
}

func (repository *PostgresRepository) DeleteFor(context context.Context, sluggableID, sluggableType string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.RadarSlug.Table, schema.RadarSlug.SluggableID, schema.RadarSlug.SluggableType,
	)

	_, err := postgres.QuerierFromCtx(context, repository.db).Exec(context, query, sluggableID, sluggableType)
	return dberr.Wrap(err, "delete_slug_history")
}
