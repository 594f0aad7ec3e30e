package questionnaire

//go:generate mockgen -source=repository.go -destination=../mocks/questionnaire/mock_repository.go -package=mock_questionnaire

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

// TemplateRepository defines operations for managing templates and their questions.
type TemplateRepository interface {
	ListVisible(ctx context.Context, ownerID string) ([]Template, error)
	FindByID(ctx context.Context, id string) (*Template, error)
	Create(ctx context.Context, t *Template) error
	Update(ctx context.Context, t *Template) error
	Delete(ctx context.Context, id string) error
}

var questionColumns = []string{
	"id", "template_id", "text", "type", "options", "category",
	"order_idx", "critical_level", "is_bad", "is_active", "`required`",
}

// DBTemplateRepository implements TemplateRepository with sqlx.
type DBTemplateRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewDBTemplateRepository creates a new DBTemplateRepository.
func NewDBTemplateRepository(db *sqlx.DB) *DBTemplateRepository {
	return &DBTemplateRepository{
		db: db,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// ListVisible returns the default templates and the templates owned by ownerID, with their questions.
func (r *DBTemplateRepository) ListVisible(ctx context.Context, ownerID string) ([]Template, error) {
	var templates []Template
	if err := r.db.SelectContext(ctx, &templates,
		"SELECT * FROM templates WHERE owner_id IS NULL OR owner_id = ? ORDER BY created_at, id",
		ownerID,
	); err != nil {
		return nil, fmt.Errorf("select templates: %w", err)
	}
	if err := r.loadQuestions(ctx, templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// FindByID returns a template with its questions, or a NotFound error.
func (r *DBTemplateRepository) FindByID(ctx context.Context, id string) (*Template, error) {
	var t Template
	if err := r.db.GetContext(ctx, &t, "SELECT * FROM templates WHERE id = ?", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("template %s does not exist", id)
		}
		return nil, fmt.Errorf("select template: %w", err)
	}
	templates := []Template{t}
	if err := r.loadQuestions(ctx, templates); err != nil {
		return nil, err
	}
	return &templates[0], nil
}

// Create inserts a template and its questions. A new id is generated unless t.ID is already set.
func (r *DBTemplateRepository) Create(ctx context.Context, t *Template) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	now := r.now()
	t.CreatedAt = now
	t.UpdatedAt = now

	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO templates (id, owner_id, title, scope, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
			t.ID, t.OwnerID, t.Title, t.Scope, t.CreatedAt, t.UpdatedAt,
		); err != nil {
			return fmt.Errorf("insert template: %w", err)
		}
		return insertQuestions(ctx, tx, t)
	})
}

// Update rewrites the template header and replaces its whole question list.
// Existing question ids are not preserved.
func (r *DBTemplateRepository) Update(ctx context.Context, t *Template) error {
	t.UpdatedAt = r.now()

	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx,
			"UPDATE templates SET title = ?, scope = ?, updated_at = ? WHERE id = ?",
			t.Title, t.Scope, t.UpdatedAt, t.ID,
		)
		if err != nil {
			return fmt.Errorf("update template: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("get updated template rows: %w", err)
		}
		if affected == 0 {
			return apperr.NotFound("template %s does not exist", t.ID)
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM questions WHERE template_id = ?", t.ID); err != nil {
			return fmt.Errorf("delete questions: %w", err)
		}
		return insertQuestions(ctx, tx, t)
	})
}

// Delete removes a template. Its questions are removed by the foreign key cascade.
func (r *DBTemplateRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM templates WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get deleted template rows: %w", err)
	}
	if affected == 0 {
		return apperr.NotFound("template %s does not exist", id)
	}
	return nil
}

func insertQuestions(ctx context.Context, tx *sqlx.Tx, t *Template) error {
	if len(t.Questions) == 0 {
		return nil
	}

	var args []interface{}
	for i := range t.Questions {
		q := &t.Questions[i]
		q.ID = uuid.NewString()
		q.TemplateID = t.ID
		args = append(args, q.ID, q.TemplateID, q.Text, q.Type, q.Options, q.Category,
			q.OrderIdx, q.CriticalLevel, q.IsBad, q.IsActive, q.Required)
	}
	query := database.BuildMultiRowInsert("questions", questionColumns, len(t.Questions))
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert questions: %w", err)
	}
	return nil
}

func (r *DBTemplateRepository) loadQuestions(ctx context.Context, templates []Template) error {
	if len(templates) == 0 {
		return nil
	}

	ids := make([]string, len(templates))
	byID := make(map[string]*Template, len(templates))
	for i := range templates {
		ids[i] = templates[i].ID
		byID[templates[i].ID] = &templates[i]
	}

	query, args, err := sqlx.In("SELECT * FROM questions WHERE template_id IN (?) ORDER BY template_id, order_idx", ids)
	if err != nil {
		return fmt.Errorf("build questions query: %w", err)
	}
	var questions []Question
	if err := r.db.SelectContext(ctx, &questions, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("load questions: %w", err)
	}
	for _, q := range questions {
		t := byID[q.TemplateID]
		t.Questions = append(t.Questions, q)
	}
	return nil
}
