// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

package topic

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/mc-aweaver/techradar-1/internal/platform/database/schema"
	"github.com/mc-aweaver/techradar-1/internal/platform/dberr"
	"github.com/mc-aweaver/techradar-1/internal/platform/postgres"
)

const resourceTopic = "Topic"

// PostgresRepository implements [Repository] on radar.topic.
type PostgresRepository struct {
	db postgres.DB
}

// NewPostgresRepository creates the Postgres topic store.
func NewPostgresRepository(db postgres.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) selectTopics() squirrel.SelectBuilder {
	return postgres.Builder().Select(schema.RadarTopic.Columns()...).From(schema.RadarTopic.Table)
}

func applyFilter(builder squirrel.SelectBuilder, filter Filter) squirrel.SelectBuilder {
	if filter.CreatorID != "" {
		builder = builder.Where(squirrel.Eq{schema.RadarTopic.CreatorID: filter.CreatorID})
	}
	if query := strings.TrimSpace(filter.Query); query != "" {
		builder = builder.Where(squirrel.Like{"lower(" + schema.RadarTopic.Name + ")": escapeLike(strings.ToLower(query)) + "%"})
	}
	return builder
}

func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Topic, int, error) {
	querier := postgres.QuerierFromCtx(context, repository.db)

	countSQL, countArgs, err := applyFilter(
		postgres.Builder().Select("count(*)").From(schema.RadarTopic.Table), filter,
	).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_topic_repo_build_count_failed: %w", err)
	}

	var total int
	if err := querier.QueryRow(context, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_topics")
	}

	listSQL, listArgs, err := applyFilter(repository.selectTopics(), filter).
		OrderBy("lower("+schema.RadarTopic.Name+") ASC", schema.RadarTopic.ID+" ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_topic_repo_build_list_failed: %w", err)
	}

	topics, err := repository.query(context, listSQL, listArgs...)
	if err != nil {
		return nil, 0, err
	}

	return topics, total, nil
}

func (repository *PostgresRepository) ListAll(context context.Context) ([]*Topic, error) {
	sql, args, err := repository.selectTopics().
		OrderBy("lower(" + schema.RadarTopic.Name + ") ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("postgres_topic_repo_build_list_all_failed: %w", err)
	}

	return repository.query(context, sql, args...)
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Topic, error) {
	return repository.findOne(context, squirrel.Eq{schema.RadarTopic.ID: id})
}

func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*Topic, error) {
	return repository.findOne(context, squirrel.Eq{schema.RadarTopic.Slug: slug})
}

func (repository *PostgresRepository) Create(context context.Context, topic *Topic) error {
	sql, args, err := postgres.Builder().
		Insert(schema.RadarTopic.Table).
		Columns(schema.RadarTopic.Columns()...).
		Values(
			topic.ID, topic.Name, topic.Slug, topic.CreatorID, topic.Username,
			topic.TwitterUsername, topic.TwitterProfileImage, topic.CreatedAt, topic.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("postgres_topic_repo_build_insert_failed: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(context, repository.db).Exec(context, sql, args...); err != nil {
		return fmt.Errorf("postgres_topic_repo_create_failed: %w", err)
	}

	return nil
}

func (repository *PostgresRepository) Update(context context.Context, topic *Topic) error {
	sql, args, err := postgres.Builder().
		Update(schema.RadarTopic.Table).
		Set(schema.RadarTopic.Name, topic.Name).
		Set(schema.RadarTopic.Slug, topic.Slug).
		Set(schema.RadarTopic.TwitterUsername, topic.TwitterUsername).
		Set(schema.RadarTopic.TwitterProfileImage, topic.TwitterProfileImage).
		Set(schema.RadarTopic.UpdatedAt, topic.UpdatedAt).
		Where(squirrel.Eq{schema.RadarTopic.ID: topic.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("postgres_topic_repo_build_update_failed: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(context, repository.db).Exec(context, sql, args...)
	if err != nil {
		return fmt.Errorf("postgres_topic_repo_update_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dberr.WrapResource(pgx.ErrNoRows, "update_topic", resourceTopic)
	}

	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	sql, args, err := postgres.Builder().
		Delete(schema.RadarTopic.Table).
		Where(squirrel.Eq{schema.RadarTopic.ID: id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("postgres_topic_repo_build_delete_failed: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(context, repository.db).Exec(context, sql, args...)
	if err != nil {
		return dberr.Wrap(err, "delete_topic")
	}
	if tag.RowsAffected() == 0 {
		return dberr.WrapResource(pgx.ErrNoRows, "delete_topic", resourceTopic)
	}

	return nil
}

func (repository *PostgresRepository) CountByCreator(context context.Context, userID string) (int, error) {
	sql, args, err := postgres.Builder().
		Select("count(*)").
		From(schema.RadarTopic.Table).
		Where(squirrel.Eq{schema.RadarTopic.CreatorID: userID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("postgres_topic_repo_build_count_failed: %w", err)
	}

	var count int
	if err := postgres.QuerierFromCtx(context, repository.db).QueryRow(context, sql, args...).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "count_topics_by_creator")
	}

	return count, nil
}

// # Helpers

func (repository *PostgresRepository) findOne(context context.Context, where squirrel.Sqlizer) (*Topic, error) {
	sql, args, err := repository.selectTopics().Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("postgres_topic_repo_build_find_failed: %w", err)
	}

	topic, err := scanTopic(postgres.QuerierFromCtx(context, repository.db).QueryRow(context, sql, args...))
	if err != nil {
		return nil, dberr.WrapResource(err, "find_topic", resourceTopic)
	}

	return topic, nil
}

func (repository *PostgresRepository) query(context context.Context, sql string, args ...any) ([]*Topic, error) {
	rows, err := postgres.QuerierFromCtx(context, repository.db).Query(context, sql, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_topics")
	}
	defer rows.Close()

	topics := []*Topic{}
	for rows.Next() {
		topic, err := scanTopic(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_topic")
		}
		topics = append(topics, topic)
	}

	return topics, dberr.Wrap(rows.Err(), "iterate_topics")
}

func scanTopic(row pgx.Row) (*Topic, error) {
	topic := &Topic{}
	err := row.Scan(
		&topic.ID, &topic.Name, &topic.Slug, &topic.CreatorID, &topic.Username,
		&topic.TwitterUsername, &topic.TwitterProfileImage, &topic.CreatedAt, &topic.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return topic, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
