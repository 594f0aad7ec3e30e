package questionnaire

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/imjang/internal/apperr"
)

var (
	templateRowColumns = []string{"id", "owner_id", "title", "scope", "created_at", "updated_at"}
	questionRowColumns = []string{
		"id", "template_id", "text", "type", "options", "category",
		"order_idx", "critical_level", "is_bad", "is_active", "required",
	}
)

func newMockRepository(t *testing.T) (*DBTemplateRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := NewDBTemplateRepository(sqlx.NewDb(db, "mysql"))
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }
	return repo, mock
}

func TestDBTemplateRepository_ListVisible(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		want      []Template
		wantErr   bool
	}{
		{
			name: "returns default and owned templates with ordered questions",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT \\* FROM templates WHERE owner_id IS NULL OR owner_id = \\? ORDER BY created_at, id").
					WithArgs("alice").
					WillReturnRows(sqlmock.NewRows(templateRowColumns).
						AddRow(DefaultPlaceTemplateID, nil, "Default", "PLACE", now, now).
						AddRow("tpl-alice", "alice", "Mine", "BOTH", now, now))
				mock.ExpectQuery("SELECT \\* FROM questions WHERE template_id IN \\(\\?,\\s*\\?\\) ORDER BY template_id, order_idx").
					WithArgs(DefaultPlaceTemplateID, "tpl-alice").
					WillReturnRows(sqlmock.NewRows(questionRowColumns).
						AddRow("q1", DefaultPlaceTemplateID, "Noise", "rating", []byte("[]"), "Outside", 0, 2, false, true, false).
						AddRow("q2", "tpl-alice", "Facilities", "multiselect", []byte(`["A","B"]`), "기타", 0, 1, true, true, true))
			},
			want: []Template{
				{
					ID: DefaultPlaceTemplateID, Title: "Default", Scope: ScopePlace, CreatedAt: now, UpdatedAt: now,
					Questions: []Question{
						{ID: "q1", TemplateID: DefaultPlaceTemplateID, Text: "Noise", Type: TypeRating, Options: Options{}, Category: "Outside", CriticalLevel: 2, IsActive: true},
					},
				},
				{
					ID: "tpl-alice", OwnerID: sql.NullString{String: "alice", Valid: true}, Title: "Mine", Scope: ScopeBoth, CreatedAt: now, UpdatedAt: now,
					Questions: []Question{
						{ID: "q2", TemplateID: "tpl-alice", Text: "Facilities", Type: TypeMultiSelect, Options: Options{"A", "B"}, Category: "기타", CriticalLevel: 1, IsBad: true, IsActive: true, Required: true},
					},
				},
			},
		},
		{
			name: "no templates skips question lookup",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT \\* FROM templates").
					WithArgs("alice").
					WillReturnRows(sqlmock.NewRows(templateRowColumns))
			},
			want: nil,
		},
		{
			name: "select templates db error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT \\* FROM templates").
					WithArgs("alice").
					WillReturnError(fmt.Errorf("connection refused"))
			},
			wantErr: true,
		},
		{
			name: "load questions db error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT \\* FROM templates").
					WithArgs("alice").
					WillReturnRows(sqlmock.NewRows(templateRowColumns).
						AddRow("tpl-alice", "alice", "Mine", "BOTH", now, now))
				mock.ExpectQuery("SELECT \\* FROM questions").
					WithArgs("tpl-alice").
					WillReturnError(fmt.Errorf("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			tt.setupMock(mock)

			got, err := repo.ListVisible(context.Background(), "alice")
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBTemplateRepository_FindByID(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery("SELECT \\* FROM templates WHERE id = \\?").
			WithArgs("tpl-1").
			WillReturnRows(sqlmock.NewRows(templateRowColumns).AddRow("tpl-1", "alice", "Mine", "UNIT", now, now))
		mock.ExpectQuery("SELECT \\* FROM questions WHERE template_id IN \\(\\?\\)").
			WithArgs("tpl-1").
			WillReturnRows(sqlmock.NewRows(questionRowColumns).
				AddRow("q1", "tpl-1", "Leak", "yesno", "[]", "기타", 0, 3, true, true, true))

		got, err := repo.FindByID(context.Background(), "tpl-1")
		require.NoError(t, err)
		assert.Equal(t, "tpl-1", got.ID)
		assert.Equal(t, ScopeUnit, got.Scope)
		require.Len(t, got.Questions, 1)
		assert.Equal(t, TypeYesNo, got.Questions[0].Type)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery("SELECT \\* FROM templates WHERE id = \\?").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(templateRowColumns))

		_, err := repo.FindByID(context.Background(), "missing")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDBTemplateRepository_Create(t *testing.T) {
	tests := []struct {
		name      string
		template  Template
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   bool
	}{
		{
			name: "inserts template and questions in one transaction",
			template: Template{
				ID:      "tpl-1",
				OwnerID: sql.NullString{String: "alice", Valid: true},
				Title:   "Mine",
				Scope:   ScopePlace,
				Questions: []Question{
					{Text: "Noise", Type: TypeRating, Category: "기타", OrderIdx: 0, CriticalLevel: 2, IsActive: true},
					{Text: "Facilities", Type: TypeMultiSelect, Options: Options{"A"}, Category: "기타", OrderIdx: 1, CriticalLevel: 1, IsBad: true, IsActive: true, Required: true},
				},
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO templates \\(id, owner_id, title, scope, created_at, updated_at\\)").
					WithArgs("tpl-1", "alice", "Mine", "PLACE", sqlmock.AnyArg(), sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec("INSERT INTO questions \\(id, template_id, text, type, options, category, order_idx, critical_level, is_bad, is_active, `required`\\) VALUES \\(.+\\), \\(.+\\)").
					WithArgs(
						sqlmock.AnyArg(), "tpl-1", "Noise", "rating", "[]", "기타", int64(0), int64(2), false, true, false,
						sqlmock.AnyArg(), "tpl-1", "Facilities", "multiselect", `["A"]`, "기타", int64(1), int64(1), true, true, true,
					).
					WillReturnResult(sqlmock.NewResult(0, 2))
				mock.ExpectCommit()
			},
		},
		{
			name:     "template without questions",
			template: Template{Title: "Empty", Scope: ScopeBoth},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO templates").
					WithArgs(sqlmock.AnyArg(), nil, "Empty", "BOTH", sqlmock.AnyArg(), sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "question insert error rolls back",
			template: Template{ID: "tpl-1", Title: "Mine", Scope: ScopeUnit, Questions: []Question{
				{Text: "Noise", Type: TypeRating, Category: "기타", CriticalLevel: 1, IsActive: true},
			}},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO templates").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec("INSERT INTO questions").WillReturnError(fmt.Errorf("duplicate entry"))
				mock.ExpectRollback()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			tt.setupMock(mock)

			tpl := tt.template
			err := repo.Create(context.Background(), &tpl)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, tpl.ID)
				assert.Equal(t, repo.now(), tpl.CreatedAt)
				for _, q := range tpl.Questions {
					assert.NotEmpty(t, q.ID)
					assert.Equal(t, tpl.ID, q.TemplateID)
				}
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBTemplateRepository_Update(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   error
	}{
		{
			name: "replaces all questions",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("UPDATE templates SET title = \\?, scope = \\?, updated_at = \\? WHERE id = \\?").
					WithArgs("Renamed", "PLACE", sqlmock.AnyArg(), "tpl-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec("DELETE FROM questions WHERE template_id = \\?").
					WithArgs("tpl-1").
					WillReturnResult(sqlmock.NewResult(0, 3))
				mock.ExpectExec("INSERT INTO questions").
					WithArgs(sqlmock.AnyArg(), "tpl-1", "Noise", "rating", "[]", "기타", int64(0), int64(1), false, true, false).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "missing template",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("UPDATE templates").WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectRollback()
			},
			wantErr: apperr.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			tt.setupMock(mock)

			tpl := Template{ID: "tpl-1", Title: "Renamed", Scope: ScopePlace, Questions: []Question{
				{ID: "stale", Text: "Noise", Type: TypeRating, Category: "기타", CriticalLevel: 1, IsActive: true},
			}}
			err := repo.Update(context.Background(), &tpl)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.NotEqual(t, "stale", tpl.Questions[0].ID)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBTemplateRepository_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   bool
	}{
		{
			name: "deletes template",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("DELETE FROM templates WHERE id = \\?").
					WithArgs("tpl-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "missing template",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("DELETE FROM templates WHERE id = \\?").
					WithArgs("tpl-1").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: true,
		},
		{
			name: "db error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("DELETE FROM templates WHERE id = \\?").
					WithArgs("tpl-1").
					WillReturnError(fmt.Errorf("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			tt.setupMock(mock)

			err := repo.Delete(context.Background(), "tpl-1")
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
