package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/minisamantha/notes-client/internal/logger"
)

// Persistent slot names used across the client. Each slot holds one JSON
// payload; callers never share a slot.
const (
	SlotNotes  = "notes"
	SlotToken  = "token"
	SlotLabels = "labels"
	SlotDraft  = "draft"
)

type slotRepository struct {
	*DB
	logger *logger.Logger
}

// NewSlotRepository returns a SlotRepository backed by the slots table of the
// client SQLite database.
func NewSlotRepository(db *DB, log *logger.Logger) SlotRepository {
	return &slotRepository{DB: db, logger: log}
}

func (r *slotRepository) GetSlot(ctx context.Context, name string) ([]byte, error) {
	query, args, err := sq.Select("value").
		From("slots").
		Where(sq.Eq{"name": name}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	var value []byte
	err = r.DB.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		r.logger.Err(err).Str("slot", name).Msg("failed to read slot")
		return nil, fmt.Errorf("failed to read slot %q: %w", name, err)
	}

	return value, nil
}

func (r *slotRepository) PutSlot(ctx context.Context, name string, value []byte) error {
	query, args, err := sq.Insert("slots").
		Columns("name", "value", "updated_at").
		Values(name, value, time.Now().UTC()).
		Suffix("ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).Str("slot", name).Msg("failed to write slot")
		return fmt.Errorf("failed to write slot %q: %w", name, err)
	}

	return nil
}

func (r *slotRepository) DeleteSlot(ctx context.Context, name string) error {
	query, args, err := sq.Delete("slots").
		Where(sq.Eq{"name": name}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).Str("slot", name).Msg("failed to delete slot")
		return fmt.Errorf("failed to delete slot %q: %w", name, err)
	}

	return nil
}
