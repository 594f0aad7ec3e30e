package questionnaire

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/at-ishikawa/imjang/internal/apperr"
)

// Service applies the ownership rules of templates on top of a TemplateRepository.
// Ownership is checked against freshly loaded rows on every call.
type Service struct {
	repo TemplateRepository
}

// NewService creates a new Service.
func NewService(repo TemplateRepository) *Service {
	return &Service{repo: repo}
}

// List returns the default templates and the caller's own templates.
func (s *Service) List(ctx context.Context, callerID string) ([]Template, error) {
	callerID, err := apperr.RequireCaller(callerID)
	if err != nil {
		return nil, err
	}
	templates, err := s.repo.ListVisible(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return templates, nil
}

// GetByScope returns the template to use for a questionnaire of the given scope.
// A template owned by the caller is preferred over a default one.
func (s *Service) GetByScope(ctx context.Context, scope Scope, callerID string) (*Template, error) {
	if scope != ScopePlace && scope != ScopeUnit {
		return nil, apperr.Validation("scope %q must be PLACE or UNIT", scope)
	}
	templates, err := s.List(ctx, callerID)
	if err != nil {
		return nil, err
	}

	var fallback *Template
	for i := range templates {
		t := &templates[i]
		if !t.Scope.Matches(scope) {
			continue
		}
		if t.OwnedBy(callerID) {
			return t, nil
		}
		if fallback == nil {
			fallback = t
		}
	}
	if fallback == nil {
		return nil, apperr.NotFound("no template for scope %s", scope)
	}
	return fallback, nil
}

// Get returns a template the caller can use.
func (s *Service) Get(ctx context.Context, id string, callerID string) (*Template, error) {
	callerID, err := apperr.RequireCaller(callerID)
	if err != nil {
		return nil, err
	}
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find template: %w", err)
	}
	if !t.VisibleTo(callerID) {
		return nil, apperr.Forbidden("template %s belongs to another user", id)
	}
	return t, nil
}

// Save creates a template owned by the caller when t has no id, and otherwise replaces the
// caller's existing template including all of its questions.
func (s *Service) Save(ctx context.Context, t Template, callerID string) (*Template, error) {
	callerID, err := apperr.RequireCaller(callerID)
	if err != nil {
		return nil, err
	}
	normalized, err := Normalize(t)
	if err != nil {
		return nil, err
	}

	if normalized.ID == "" {
		normalized.OwnerID = sql.NullString{String: callerID, Valid: true}
		if err := s.repo.Create(ctx, &normalized); err != nil {
			return nil, fmt.Errorf("create template: %w", err)
		}
		slog.Info("template created", "owner", callerID, "template", normalized.ID, "questions", len(normalized.Questions))
		return &normalized, nil
	}

	existing, err := s.repo.FindByID(ctx, normalized.ID)
	if err != nil {
		return nil, fmt.Errorf("find template: %w", err)
	}
	if !existing.OwnedBy(callerID) {
		return nil, apperr.Forbidden("template %s is not owned by the caller", normalized.ID)
	}
	normalized.OwnerID = existing.OwnerID
	normalized.CreatedAt = existing.CreatedAt
	if err := s.repo.Update(ctx, &normalized); err != nil {
		return nil, fmt.Errorf("update template: %w", err)
	}
	slog.Info("template updated", "owner", callerID, "template", normalized.ID, "questions", len(normalized.Questions))
	return &normalized, nil
}

// Delete removes a template owned by the caller. Notes that used it keep their template id.
func (s *Service) Delete(ctx context.Context, id string, callerID string) error {
	callerID, err := apperr.RequireCaller(callerID)
	if err != nil {
		return err
	}
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find template: %w", err)
	}
	if !existing.OwnedBy(callerID) {
		return apperr.Forbidden("template %s is not owned by the caller", id)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	slog.Info("template deleted", "owner", callerID, "template", id)
	return nil
}
