// Package item implements the vocabulary item repository using PostgreSQL.
// Single-row writes are built with squirrel; the schedule-joined reads use
// raw SQL.
package item

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vocastudy/backend/internal/adapter/postgres"
	"github.com/vocastudy/backend/internal/domain"
)

// Repo provides vocabulary item persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	txm  *postgres.TxManager
	sb   sq.StatementBuilderType
}

// New creates a new item repository. The TxManager covers the multi-row
// insert: one item row plus one schedule row per modality.
func New(pool *pgxpool.Pool, txm *postgres.TxManager) *Repo {
	return &Repo{
		pool: pool,
		txm:  txm,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// ---------------------------------------------------------------------------
// Raw SQL for the schedule-joined reads
// ---------------------------------------------------------------------------

const fetchAllSQL = `
SELECT i.id, i.text, i.topic, i.relevant_translations, i.created_at, i.updated_at,
       s.modality, s.status, s.checkpoint, s.last_reviewed
FROM vocabulary_items i
LEFT JOIN item_schedules s ON s.item_id = i.id
ORDER BY i.created_at, i.id`

const fetchOneSQL = `
SELECT i.id, i.text, i.topic, i.relevant_translations, i.created_at, i.updated_at,
       s.modality, s.status, s.checkpoint, s.last_reviewed
FROM vocabulary_items i
LEFT JOIN item_schedules s ON s.item_id = i.id
WHERE i.id = $1
ORDER BY s.modality`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// FetchAll returns every vocabulary item with its full per-modality schedule,
// in creation order.
func (r *Repo) FetchAll(ctx context.Context) ([]*domain.VocabularyItem, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, fetchAllSQL)
	if err != nil {
		return nil, postgres.MapError(err, "items", uuid.Nil)
	}
	defer rows.Close()

	var (
		items []*domain.VocabularyItem
		byID  = make(map[uuid.UUID]*domain.VocabularyItem)
	)
	for rows.Next() {
		item, mode, entry, err := scanItemRow(rows)
		if err != nil {
			return nil, postgres.MapError(err, "items", uuid.Nil)
		}
		existing, ok := byID[item.ID]
		if !ok {
			existing = item
			byID[item.ID] = item
			items = append(items, item)
		}
		if mode != nil {
			existing.Schedule[*mode] = entry
		}
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "items", uuid.Nil)
	}
	return items, nil
}

// GetByID returns one item with its full schedule.
func (r *Repo) GetByID(ctx context.Context, itemID uuid.UUID) (*domain.VocabularyItem, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, fetchOneSQL, itemID)
	if err != nil {
		return nil, postgres.MapError(err, "item", itemID)
	}
	defer rows.Close()

	var item *domain.VocabularyItem
	for rows.Next() {
		row, mode, entry, err := scanItemRow(rows)
		if err != nil {
			return nil, postgres.MapError(err, "item", itemID)
		}
		if item == nil {
			item = row
		}
		if mode != nil {
			item.Schedule[*mode] = entry
		}
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "item", itemID)
	}
	if item == nil {
		return nil, fmt.Errorf("item %s: %w", itemID, domain.ErrNotFound)
	}
	return item, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Insert creates a vocabulary item together with a NEW schedule row for every
// modality, atomically, and returns the stored record.
func (r *Repo) Insert(ctx context.Context, text string, topic, relevantTranslations *string) (*domain.VocabularyItem, error) {
	var itemID uuid.UUID

	err := r.txm.RunInTx(ctx, func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, r.pool)

		insert := r.sb.Insert("vocabulary_items").
			Columns("text", "text_normalized", "topic", "relevant_translations").
			Values(text, domain.NormalizeText(text), topic, relevantTranslations).
			Suffix("RETURNING id")
		sql, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("build insert: %w", err)
		}
		if err := q.QueryRow(ctx, sql, args...).Scan(&itemID); err != nil {
			return postgres.MapError(err, "item", uuid.Nil)
		}

		sched := r.sb.Insert("item_schedules").
			Columns("item_id", "modality", "status", "checkpoint")
		for _, mode := range domain.Modalities() {
			sched = sched.Values(itemID, mode, domain.ReviewStatusNew, 0)
		}
		sql, args, err = sched.ToSql()
		if err != nil {
			return fmt.Errorf("build schedule insert: %w", err)
		}
		if _, err := q.Exec(ctx, sql, args...); err != nil {
			return postgres.MapError(err, "item", itemID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, itemID)
}

// UpdateSchedule writes one modality's scheduling fields and returns the full
// refreshed item. The upsert covers items recorded before a modality existed.
func (r *Repo) UpdateSchedule(ctx context.Context, itemID uuid.UUID, mode domain.Modality, upd domain.ScheduleUpdate) (*domain.VocabularyItem, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	upsert := r.sb.Insert("item_schedules").
		Columns("item_id", "modality", "status", "checkpoint", "last_reviewed").
		Values(itemID, mode, upd.Status, upd.Checkpoint, upd.LastReviewed).
		Suffix(`ON CONFLICT (item_id, modality) DO UPDATE
SET status = EXCLUDED.status,
    checkpoint = EXCLUDED.checkpoint,
    last_reviewed = EXCLUDED.last_reviewed,
    updated_at = now()`)
	sql, args, err := upsert.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build schedule upsert: %w", err)
	}
	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return nil, postgres.MapError(err, "schedule", itemID)
	}

	return r.GetByID(ctx, itemID)
}

// ---------------------------------------------------------------------------
// Row mapping
// ---------------------------------------------------------------------------

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItemRow(row rowScanner) (*domain.VocabularyItem, *domain.Modality, *domain.ScheduleEntry, error) {
	var (
		item         domain.VocabularyItem
		modality     *string
		status       *string
		checkpoint   *int
		lastReviewed *time.Time
	)
	if err := row.Scan(
		&item.ID, &item.Text, &item.Topic, &item.RelevantTranslations,
		&item.CreatedAt, &item.UpdatedAt,
		&modality, &status, &checkpoint, &lastReviewed,
	); err != nil {
		return nil, nil, nil, err
	}
	item.Schedule = make(map[domain.Modality]*domain.ScheduleEntry)

	if modality == nil {
		return &item, nil, nil, nil
	}
	mode := domain.Modality(*modality)
	entry := &domain.ScheduleEntry{
		Status:       domain.ReviewStatus(*status),
		Checkpoint:   *checkpoint,
		LastReviewed: lastReviewed,
	}
	return &item, &mode, entry, nil
}
