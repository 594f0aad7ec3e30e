package questionnaire

import (
	"strings"

	"github.com/at-ishikawa/imjang/internal/apperr"
)

// Normalize validates a template submitted for saving and returns a cleaned copy.
// Question order follows the submitted slice: OrderIdx becomes the 0-based position.
// Question ids and template ids on questions are cleared since questions are recreated on every save.
func Normalize(t Template) (Template, error) {
	title := strings.TrimSpace(t.Title)
	if title == "" {
		return Template{}, apperr.Validation("title is required")
	}
	scope := Scope(strings.ToUpper(strings.TrimSpace(string(t.Scope))))
	if scope == "" {
		scope = ScopeBoth
	}
	if !scope.Valid() {
		return Template{}, apperr.Validation("scope %q is not one of PLACE, UNIT, BOTH", t.Scope)
	}

	normalized := Template{
		ID:        strings.TrimSpace(t.ID),
		OwnerID:   t.OwnerID,
		Title:     title,
		Scope:     scope,
		Questions: make([]Question, 0, len(t.Questions)),
	}
	for i, q := range t.Questions {
		nq, err := normalizeQuestion(q, i)
		if err != nil {
			return Template{}, err
		}
		normalized.Questions = append(normalized.Questions, nq)
	}
	return normalized, nil
}

func normalizeQuestion(q Question, position int) (Question, error) {
	text := strings.TrimSpace(q.Text)
	if text == "" {
		return Question{}, apperr.Validation("question %d: text is required", position+1)
	}
	qType := QuestionType(strings.ToLower(strings.TrimSpace(string(q.Type))))
	if !qType.Valid() {
		return Question{}, apperr.Validation("question %d: type %q is not supported", position+1, q.Type)
	}
	if q.CriticalLevel < 0 {
		return Question{}, apperr.Validation("question %d: critical level must be positive", position+1)
	}
	criticalLevel := q.CriticalLevel
	if criticalLevel == 0 {
		criticalLevel = 1
	}

	var options Options
	if qType.HasOptions() {
		options = dedupeOptions(q.Options)
		if len(options) == 0 {
			return Question{}, apperr.Validation("question %d: %s needs at least one option", position+1, qType)
		}
	}

	category := strings.TrimSpace(q.Category)
	if category == "" {
		category = DefaultCategory
	}

	return Question{
		Text:          text,
		Type:          qType,
		Options:       options,
		Category:      category,
		OrderIdx:      position,
		CriticalLevel: criticalLevel,
		IsBad:         q.IsBad,
		IsActive:      q.IsActive,
		Required:      q.Required,
	}, nil
}

func dedupeOptions(options Options) Options {
	seen := make(map[string]bool, len(options))
	var result Options
	for _, o := range options {
		o = strings.TrimSpace(o)
		if o == "" || seen[o] {
			continue
		}
		seen[o] = true
		result = append(result, o)
	}
	return result
}
