// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

package radar

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/mc-aweaver/techradar-1/internal/platform/database/schema"
	"github.com/mc-aweaver/techradar-1/internal/platform/dberr"
	"github.com/mc-aweaver/techradar-1/internal/platform/postgres"
)

const (
	resourceRadar = "Radar"
	resourceBlip  = "Blip"
)

// # Radars

// PostgresRepository implements [Repository] on radar.radar.
type PostgresRepository struct {
	db postgres.DB
}

// NewPostgresRepository creates the Postgres radar store.
func NewPostgresRepository(db postgres.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListByOwner(context context.Context, ownerID string, limit, offset int) ([]*Radar, int, error) {
	querier := postgres.QuerierFromCtx(context, repository.db)
	byOwner := squirrel.Eq{schema.RadarRadar.OwnerID: ownerID}

	countSQL, countArgs, err := postgres.Builder().
		Select("count(*)").
		From(schema.RadarRadar.Table).
		Where(byOwner).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_radar_repo_build_count_failed: %w", err)
	}

	var total int
	if err := querier.QueryRow(context, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_radars")
	}

	listSQL, listArgs, err := postgres.Builder().
		Select(schema.RadarRadar.Columns()...).
		From(schema.RadarRadar.Table).
		Where(byOwner).
		OrderBy(schema.RadarRadar.CreatedAt + " DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_radar_repo_build_list_failed: %w", err)
	}

	rows, err := querier.Query(context, listSQL, listArgs...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_radars")
	}
	defer rows.Close()

	radars := []*Radar{}
	for rows.Next() {
		radar, err := scanRadar(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_radar")
		}
		radars = append(radars, radar)
	}

	return radars, total, dberr.Wrap(rows.Err(), "iterate_radars")
}

func (repository *PostgresRepository) FindByUUID(context context.Context, uuid string) (*Radar, error) {
	sql, args, err := postgres.Builder().
		Select(schema.RadarRadar.Columns()...).
		From(schema.RadarRadar.Table).
		Where(squirrel.Eq{schema.RadarRadar.UUID: uuid}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("postgres_radar_repo_build_find_failed: %w", err)
	}

	radar, err := scanRadar(postgres.QuerierFromCtx(context, repository.db).QueryRow(context, sql, args...))
	if err != nil {
		return nil, dberr.WrapResource(err, "find_radar", resourceRadar)
	}

	return radar, nil
}

func (repository *PostgresRepository) Create(context context.Context, radar *Radar) error {
	sql, args, err := postgres.Builder().
		Insert(schema.RadarRadar.Table).
		Columns(schema.RadarRadar.Columns()...).
		Values(radar.ID, radar.UUID, radar.Name, radar.Description, radar.OwnerID, radar.CreatedAt, radar.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("postgres_radar_repo_build_insert_failed: %w", err)
	}

	_, err = postgres.QuerierFromCtx(context, repository.db).Exec(context, sql, args...)
	return dberr.WrapResource(err, "create_radar", resourceRadar)
}

func (repository *PostgresRepository) Update(context context.Context, radar *Radar) error {
	sql, args, err := postgres.Builder().
		Update(schema.RadarRadar.Table).
		Set(schema.RadarRadar.Name, radar.Name).
		Set(schema.RadarRadar.Description, radar.Description).
		Set(schema.RadarRadar.UpdatedAt, radar.UpdatedAt).
		Where(squirrel.Eq{schema.RadarRadar.ID: radar.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("postgres_radar_repo_build_update_failed: %w", err)
	}

	return repository.execOne(context, "update_radar", resourceRadar, sql, args)
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	sql, args, err := postgres.Builder().
		Delete(schema.RadarRadar.Table).
		Where(squirrel.Eq{schema.RadarRadar.ID: id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("postgres_radar_repo_build_delete_failed: %w", err)
	}

	return repository.execOne(context, "delete_radar", resourceRadar, sql, args)
}

func (repository *PostgresRepository) execOne(context context.Context, action, resource, sql string, args []any) error {
	return execOne(context, repository.db, action, resource, sql, args)
}

func scanRadar(row pgx.Row) (*Radar, error) {
	radar := &Radar{}
	err := row.Scan(
		&radar.ID, &radar.UUID, &radar.Name, &radar.Description,
		&radar.OwnerID, &radar.CreatedAt, &radar.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return radar, nil
}

// # Blips

// PostgresBlipRepository implements [BlipRepository] on radar.blip.
type PostgresBlipRepository struct {
	db postgres.DB
}

// NewPostgresBlipRepository creates the Postgres blip store.
func NewPostgresBlipRepository(db postgres.DB) *PostgresBlipRepository {
	return &PostgresBlipRepository{db: db}
}

func (repository *PostgresBlipRepository) selectBlips() squirrel.SelectBuilder {
	return postgres.Builder().
		Select(
			"b."+schema.RadarBlip.ID, "b."+schema.RadarBlip.RadarID, "b."+schema.RadarBlip.TopicID,
			"b."+schema.RadarBlip.Quadrant, "b."+schema.RadarBlip.Ring, "b."+schema.RadarBlip.Notes,
			"b."+schema.RadarBlip.CreatedAt, "b."+schema.RadarBlip.UpdatedAt,
			"t."+schema.RadarTopic.Name, "t."+schema.RadarTopic.Slug,
		).
		From(schema.RadarBlip.Table + " b").
		Join(fmt.Sprintf("%s t ON t.%s = b.%s", schema.RadarTopic.Table, schema.RadarTopic.ID, schema.RadarBlip.TopicID))
}

func (repository *PostgresBlipRepository) ListByRadar(context context.Context, radarID string) ([]*Blip, error) {
	sql, args, err := repository.selectBlips().
		Where(squirrel.Eq{"b." + schema.RadarBlip.RadarID: radarID}).
		OrderBy("lower(t." + schema.RadarTopic.Name + ") ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("postgres_blip_repo_build_list_failed: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(context, repository.db).Query(context, sql, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_blips")
	}
	defer rows.Close()

	blips := []*Blip{}
	for rows.Next() {
		blip, err := scanBlip(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_blip")
		}
		blips = append(blips, blip)
	}

	return blips, dberr.Wrap(rows.Err(), "iterate_blips")
}

func (repository *PostgresBlipRepository) FindByID(context context.Context, radarID, blipID string) (*Blip, error) {
	sql, args, err := repository.selectBlips().
		Where(squirrel.Eq{"b." + schema.RadarBlip.ID: blipID, "b." + schema.RadarBlip.RadarID: radarID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("postgres_blip_repo_build_find_failed: %w", err)
	}

	blip, err := scanBlip(postgres.QuerierFromCtx(context, repository.db).QueryRow(context, sql, args...))
	if err != nil {
		return nil, dberr.WrapResource(err, "find_blip", resourceBlip)
	}

	return blip, nil
}

func (repository *PostgresBlipRepository) Create(context context.Context, blip *Blip) error {
	sql, args, err := postgres.Builder().
		Insert(schema.RadarBlip.Table).
		Columns(schema.RadarBlip.Columns()...).
		Values(blip.ID, blip.RadarID, blip.TopicID, blip.Quadrant, blip.Ring, blip.Notes, blip.CreatedAt, blip.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("postgres_blip_repo_build_insert_failed: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(context, repository.db).Exec(context, sql, args...); err != nil {
		return fmt.Errorf("postgres_blip_repo_create_failed: %w", err)
	}

	return nil
}

func (repository *PostgresBlipRepository) Update(context context.Context, blip *Blip) error {
	sql, args, err := postgres.Builder().
		Update(schema.RadarBlip.Table).
		Set(schema.RadarBlip.Quadrant, blip.Quadrant).
		Set(schema.RadarBlip.Ring, blip.Ring).
		Set(schema.RadarBlip.Notes, blip.Notes).
		Set(schema.RadarBlip.UpdatedAt, blip.UpdatedAt).
		Where(squirrel.Eq{schema.RadarBlip.ID: blip.ID, schema.RadarBlip.RadarID: blip.RadarID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("postgres_blip_repo_build_update_failed: %w", err)
	}

	return execOne(context, repository.db, "update_blip", resourceBlip, sql, args)
}

func (repository *PostgresBlipRepository) Delete(context context.Context, radarID, blipID string) error {
	sql, args, err := postgres.Builder().
		Delete(schema.RadarBlip.Table).
		Where(squirrel.Eq{schema.RadarBlip.ID: blipID, schema.RadarBlip.RadarID: radarID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("postgres_blip_repo_build_delete_failed: %w", err)
	}

	return execOne(context, repository.db, "delete_blip", resourceBlip, sql, args)
}

func scanBlip(row pgx.Row) (*Blip, error) {
	blip := &Blip{}
	err := row.Scan(
		&blip.ID, &blip.RadarID, &blip.TopicID, &blip.Quadrant, &blip.Ring, &blip.Notes,
		&blip.CreatedAt, &blip.UpdatedAt, &blip.TopicName, &blip.TopicSlug,
	)
	if err != nil {
		return nil, err
	}
	return blip, nil
}

// execOne runs a write that must touch exactly one row.
func execOne(context context.Context, db postgres.DB, action, resource, sql string, args []any) error {
	tag, err := postgres.QuerierFromCtx(context, db).Exec(context, sql, args...)
	if err != nil {
		return dberr.WrapResource(err, action, resource)
	}
	if tag.RowsAffected() == 0 {
		return dberr.WrapResource(pgx.ErrNoRows, action, resource)
	}
	return nil
}
