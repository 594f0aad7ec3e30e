package note

//go:generate mockgen -source=service.go -destination=../mocks/note/mock_service.go -package=mock_note

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/at-ishikawa/imjang/internal/answer"
	"github.com/at-ishikawa/imjang/internal/apperr"
	"github.com/at-ishikawa/imjang/internal/evaluation"
	"github.com/at-ishikawa/imjang/internal/place"
	"github.com/at-ishikawa/imjang/internal/questionnaire"
)

// OwnershipResolver confirms that a place or unit exists and belongs to the caller.
type OwnershipResolver interface {
	AssertPlaceOwnership(ctx context.Context, placeID, callerID string) (*place.Place, error)
	AssertUnitOwnership(ctx context.Context, unitID, callerID string) (*place.Unit, error)
}

// TemplateProvider returns a template the caller may use.
type TemplateProvider interface {
	Get(ctx context.Context, id string, callerID string) (*questionnaire.Template, error)
}

// SaveInput is one submission of a questionnaire.
type SaveInput struct {
	Target     Target
	TemplateID string
	Answers    json.RawMessage
}

// Saved is the stored note, with the scoring breakdown when a template was used.
type Saved struct {
	Note   *Note
	Result *evaluation.Result
}

type Service struct {
	repo      Repository
	owners    OwnershipResolver
	templates TemplateProvider
}

func NewService(repo Repository, owners OwnershipResolver, templates TemplateProvider) *Service {
	return &Service{
		repo:      repo,
		owners:    owners,
		templates: templates,
	}
}

// Save stores the caller's answers for a place or unit, replacing the previous note of that target.
// With a template, required questions are checked and the answers are evaluated; without one the
// evaluation stays null. Nothing is written when any check fails.
func (s *Service) Save(ctx context.Context, in SaveInput, callerID string) (*Saved, error) {
	callerID, err := apperr.RequireCaller(callerID)
	if err != nil {
		return nil, err
	}
	target, err := s.authorize(ctx, in.Target, callerID)
	if err != nil {
		return nil, err
	}

	body := bytes.TrimSpace(in.Answers)
	raw, err := answer.ParseRaw(body)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		body = []byte("{}")
	}

	n := &Note{
		OwnerID:   callerID,
		PlaceID:   nullString(target.PlaceID),
		UnitID:    nullString(target.UnitID),
		TargetKey: target.Key(),
		Answers:   string(body),
	}

	var result *evaluation.Result
	if in.TemplateID != "" {
		tpl, err := s.templates.Get(ctx, in.TemplateID, callerID)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return nil, apperr.Validation("template %s does not exist", in.TemplateID)
			}
			return nil, fmt.Errorf("get template: %w", err)
		}
		questions := tpl.ActiveQuestions()
		if missing := answer.MissingRequired(questions, raw); len(missing) > 0 {
			slog.Warn("note rejected", "owner", callerID, "target", target.Key(), "template", tpl.ID, "missing", missing)
			return nil, apperr.MissingRequired(missing)
		}
		set, err := answer.DecodeSet(questions, raw)
		if err != nil {
			return nil, err
		}
		r := evaluation.Evaluate(set, questions)
		result = &r

		n.TemplateID = sql.NullString{String: tpl.ID, Valid: true}
		n.Evaluation = &r.Verdict
		n.Score = sql.NullFloat64{Float64: r.Total, Valid: true}
	}

	if err := s.repo.Upsert(ctx, n); err != nil {
		return nil, fmt.Errorf("upsert note: %w", err)
	}

	attrs := []any{"owner", callerID, "target", target.Key(), "template", n.TemplateID.String}
	if n.Evaluation != nil {
		attrs = append(attrs, "verdict", string(*n.Evaluation), "score", n.Score.Float64)
	}
	slog.Info("note saved", attrs...)
	return &Saved{Note: n, Result: result}, nil
}

// Get returns the caller's note for a target they own.
func (s *Service) Get(ctx context.Context, target Target, callerID string) (*Note, error) {
	callerID, err := apperr.RequireCaller(callerID)
	if err != nil {
		return nil, err
	}
	target, err = s.authorize(ctx, target, callerID)
	if err != nil {
		return nil, err
	}
	n, err := s.repo.FindByTarget(ctx, callerID, target)
	if err != nil {
		return nil, fmt.Errorf("find note: %w", err)
	}
	return n, nil
}

// ListByPlace returns the caller's notes on a place and its units.
func (s *Service) ListByPlace(ctx context.Context, placeID, callerID string) ([]Note, error) {
	callerID, err := apperr.RequireCaller(callerID)
	if err != nil {
		return nil, err
	}
	if _, err := s.owners.AssertPlaceOwnership(ctx, placeID, callerID); err != nil {
		return nil, fmt.Errorf("assert place ownership: %w", err)
	}
	notes, err := s.repo.ListByPlace(ctx, callerID, placeID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

func (s *Service) authorize(ctx context.Context, target Target, callerID string) (Target, error) {
	target, err := target.Normalize()
	if err != nil {
		return Target{}, err
	}
	if target.IsUnit() {
		if _, err := s.owners.AssertUnitOwnership(ctx, target.UnitID, callerID); err != nil {
			return Target{}, fmt.Errorf("assert unit ownership: %w", err)
		}
		return target, nil
	}
	if _, err := s.owners.AssertPlaceOwnership(ctx, target.PlaceID, callerID); err != nil {
		return Target{}, fmt.Errorf("assert place ownership: %w", err)
	}
	return target, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
