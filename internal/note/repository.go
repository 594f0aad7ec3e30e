package note

//go:generate mockgen -source=repository.go -destination=../mocks/note/mock_repository.go -package=mock_note

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/imjang/internal/apperr"
	"github.com/at-ishikawa/imjang/internal/database"
)

// Repository defines operations for managing notes.
type Repository interface {
	Upsert(ctx context.Context, n *Note) error
	FindByTarget(ctx context.Context, ownerID string, target Target) (*Note, error)
	ListByPlace(ctx context.Context, ownerID, placeID string) ([]Note, error)
}

var (
	noteColumns = []string{
		"id", "owner_id", "place_id", "unit_id", "target_key", "template_id",
		"answers", "evaluation", "score", "created_at", "updated_at",
	}
	noteUpdateColumns = []string{"template_id", "answers", "evaluation", "score", "updated_at"}
)

// DBRepository implements Repository with sqlx.
type DBRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{
		db: db,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Upsert creates the note of n's owner and target, or replaces the answers, template and verdict of the
// existing one. The unique (owner_id, target_key) index makes concurrent saves collapse into one row.
// n is filled with the stored row.
func (r *DBRepository) Upsert(ctx context.Context, n *Note) error {
	now := r.now()
	query := database.BuildUpsert(r.db.DriverName(), "notes", noteColumns, []string{"owner_id", "target_key"}, noteUpdateColumns)

	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, query,
			uuid.NewString(), n.OwnerID, n.PlaceID, n.UnitID, n.TargetKey, n.TemplateID,
			n.Answers, n.Evaluation, n.Score, now, now,
		); err != nil {
			return fmt.Errorf("upsert note: %w", err)
		}
		if err := tx.GetContext(ctx, n,
			"SELECT * FROM notes WHERE owner_id = ? AND target_key = ?", n.OwnerID, n.TargetKey,
		); err != nil {
			return fmt.Errorf("select upserted note: %w", err)
		}
		return nil
	})
}

// FindByTarget returns the owner's note for target, or a NotFound error.
func (r *DBRepository) FindByTarget(ctx context.Context, ownerID string, target Target) (*Note, error) {
	var n Note
	if err := r.db.GetContext(ctx, &n,
		"SELECT * FROM notes WHERE owner_id = ? AND target_key = ?", ownerID, target.Key(),
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("no note for %s", target)
		}
		return nil, fmt.Errorf("select note: %w", err)
	}
	return &n, nil
}

// ListByPlace returns the owner's notes on a place and on its units, the place-level note first.
func (r *DBRepository) ListByPlace(ctx context.Context, ownerID, placeID string) ([]Note, error) {
	var notes []Note
	if err := r.db.SelectContext(ctx, &notes, `SELECT * FROM notes
WHERE owner_id = ? AND (place_id = ? OR unit_id IN (SELECT id FROM units WHERE place_id = ?))
ORDER BY unit_id IS NOT NULL, created_at, id`, ownerID, placeID, placeID); err != nil {
		return nil, fmt.Errorf("select notes: %w", err)
	}
	return notes, nil
}
