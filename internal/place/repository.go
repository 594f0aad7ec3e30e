package place

//go:generate mockgen -source=repository.go -destination=../mocks/place/mock_repository.go -package=mock_place

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

// Repository defines operations for managing places and what hangs off them.
type Repository interface {
	UpsertPlace(ctx context.Context, p *Place) error
	FindPlace(ctx context.Context, id string) (*Place, error)
	ListPlaces(ctx context.Context, ownerID string) ([]Summary, error)
	DeletePlace(ctx context.Context, id string) error

	CreateUnit(ctx context.Context, u *Unit) error
	FindUnit(ctx context.Context, id string) (*Unit, error)
	ListUnits(ctx context.Context, placeID string) ([]Unit, error)
	DeleteUnit(ctx context.Context, id string) error

	UpsertFavorite(ctx context.Context, f *Favorite) error

	CreateLink(ctx context.Context, l *ExternalLink) error
	FindLink(ctx context.Context, id string) (*ExternalLink, error)
	ListLinks(ctx context.Context, placeID string) ([]ExternalLink, error)
	DeleteLink(ctx context.Context, id string) error
}

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

// UpsertPlace inserts the place, or refreshes the name, coordinates and addresses of the place the owner
// already saved with the same Kakao id. p is filled with the stored row.
func (r *DBRepository) UpsertPlace(ctx context.Context, p *Place) error {
	now := r.now()
	query := database.BuildUpsert(r.db.DriverName(), "places",
		[]string{"id", "owner_id", "kakao_id", "name", "lat", "lng", "address", "road_address", "created_at", "updated_at"},
		[]string{"owner_id", "kakao_id"},
		[]string{"name", "lat", "lng", "address", "road_address", "updated_at"},
	)

	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, query,
			uuid.NewString(), p.OwnerID, p.KakaoID, p.Name, p.Lat, p.Lng, p.Address, p.RoadAddress, now, now,
		); err != nil {
			return fmt.Errorf("upsert place: %w", err)
		}
		if err := tx.GetContext(ctx, p,
			"SELECT * FROM places WHERE owner_id = ? AND kakao_id = ?", p.OwnerID, p.KakaoID,
		); err != nil {
			return fmt.Errorf("select upserted place: %w", err)
		}
		return nil
	})
}

// FindPlace returns a place or a NotFound error.
func (r *DBRepository) FindPlace(ctx context.Context, id string) (*Place, error) {
	var p Place
	if err := r.db.GetContext(ctx, &p, "SELECT * FROM places WHERE id = ?", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("place %s does not exist", id)
		}
		return nil, fmt.Errorf("select place: %w", err)
	}
	return &p, nil
}

// ListPlaces returns the owner's places, newest first, with the verdict of each place-level note and the
// favorite colour.
func (r *DBRepository) ListPlaces(ctx context.Context, ownerID string) ([]Summary, error) {
	var summaries []Summary
	if err := r.db.SelectContext(ctx, &summaries, `SELECT p.*, n.evaluation AS evaluation, f.color AS favorite_color
FROM places p
LEFT JOIN notes n ON n.place_id = p.id AND n.owner_id = p.owner_id
LEFT JOIN favorites f ON f.place_id = p.id
WHERE p.owner_id = ?
ORDER BY p.created_at DESC, p.id`, ownerID); err != nil {
		return nil, fmt.Errorf("select places: %w", err)
	}
	return summaries, nil
}

// DeletePlace removes a place together with its notes, units, links and favorite.
func (r *DBRepository) DeletePlace(ctx context.Context, id string) error {
	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM notes WHERE place_id = ? OR unit_id IN (SELECT id FROM units WHERE place_id = ?)", id, id,
		); err != nil {
			return fmt.Errorf("delete place notes: %w", err)
		}
		for _, table := range []string{"units", "external_links", "favorites"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE place_id = ?", id); err != nil {
				return fmt.Errorf("delete place %s: %w", table, err)
			}
		}
		result, err := tx.ExecContext(ctx, "DELETE FROM places WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("delete place: %w", err)
		}
		return expectAffected(result, "place", id)
	})
}

// CreateUnit inserts a unit with a new id.
func (r *DBRepository) CreateUnit(ctx context.Context, u *Unit) error {
	u.ID = uuid.NewString()
	u.CreatedAt = r.now()
	u.UpdatedAt = u.CreatedAt
	if _, err := r.db.ExecContext(ctx,
		"INSERT INTO units (id, place_id, owner_id, label, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		u.ID, u.PlaceID, u.OwnerID, u.Label, u.CreatedAt, u.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert unit: %w", err)
	}
	return nil
}

// FindUnit returns a unit or a NotFound error.
func (r *DBRepository) FindUnit(ctx context.Context, id string) (*Unit, error) {
	var u Unit
	if err := r.db.GetContext(ctx, &u, "SELECT * FROM units WHERE id = ?", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("unit %s does not exist", id)
		}
		return nil, fmt.Errorf("select unit: %w", err)
	}
	return &u, nil
}

// ListUnits returns the units of a place in creation order.
func (r *DBRepository) ListUnits(ctx context.Context, placeID string) ([]Unit, error) {
	var units []Unit
	if err := r.db.SelectContext(ctx, &units,
		"SELECT * FROM units WHERE place_id = ? ORDER BY created_at, id", placeID,
	); err != nil {
		return nil, fmt.Errorf("select units: %w", err)
	}
	return units, nil
}

// DeleteUnit removes a unit and its notes.
func (r *DBRepository) DeleteUnit(ctx context.Context, id string) error {
	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM notes WHERE unit_id = ?", id); err != nil {
			return fmt.Errorf("delete unit notes: %w", err)
		}
		result, err := tx.ExecContext(ctx, "DELETE FROM units WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("delete unit: %w", err)
		}
		return expectAffected(result, "unit", id)
	})
}

// UpsertFavorite sets the colour of the place's favorite, creating it when needed.
func (r *DBRepository) UpsertFavorite(ctx context.Context, f *Favorite) error {
	now := r.now()
	query := database.BuildUpsert(r.db.DriverName(), "favorites",
		[]string{"id", "place_id", "owner_id", "color", "created_at", "updated_at"},
		[]string{"place_id"},
		[]string{"color", "updated_at"},
	)

	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, query, uuid.NewString(), f.PlaceID, f.OwnerID, f.Color, now, now); err != nil {
			return fmt.Errorf("upsert favorite: %w", err)
		}
		if err := tx.GetContext(ctx, f, "SELECT * FROM favorites WHERE place_id = ?", f.PlaceID); err != nil {
			return fmt.Errorf("select upserted favorite: %w", err)
		}
		return nil
	})
}

// CreateLink inserts a link with a new id.
func (r *DBRepository) CreateLink(ctx context.Context, l *ExternalLink) error {
	l.ID = uuid.NewString()
	l.CreatedAt = r.now()
	if _, err := r.db.ExecContext(ctx,
		"INSERT INTO external_links (id, place_id, owner_id, title, url, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		l.ID, l.PlaceID, l.OwnerID, l.Title, l.URL, l.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert external link: %w", err)
	}
	return nil
}

// FindLink returns a link or a NotFound error.
func (r *DBRepository) FindLink(ctx context.Context, id string) (*ExternalLink, error) {
	var l ExternalLink
	if err := r.db.GetContext(ctx, &l, "SELECT * FROM external_links WHERE id = ?", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("link %s does not exist", id)
		}
		return nil, fmt.Errorf("select external link: %w", err)
	}
	return &l, nil
}

// ListLinks returns the links of a place in creation order.
func (r *DBRepository) ListLinks(ctx context.Context, placeID string) ([]ExternalLink, error) {
	var links []ExternalLink
	if err := r.db.SelectContext(ctx, &links,
		"SELECT * FROM external_links WHERE place_id = ? ORDER BY created_at, id", placeID,
	); err != nil {
		return nil, fmt.Errorf("select external links: %w", err)
	}
	return links, nil
}

// DeleteLink removes a link.
func (r *DBRepository) DeleteLink(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM external_links WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete external link: %w", err)
	}
	return expectAffected(result, "link", id)
}

func expectAffected(result sql.Result, entity, id string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get deleted %s rows: %w", entity, err)
	}
	if affected == 0 {
		return apperr.NotFound("%s %s does not exist", entity, id)
	}
	return nil
}
