package answer

import (
	"encoding/json"
	"strings"

	"github.com/at-ishikawa/imjang/internal/apperr"
	"github.com/at-ishikawa/imjang/internal/questionnaire"
)

// IsProvided reports whether raw counts as an answer to a question of type t.
//   - null or absent: not provided
//   - multiselect: a non-empty list
//   - rating: a finite number, or a string holding one
//   - any string: non-blank after trimming
//   - anything else: provided
func IsProvided(raw json.RawMessage, t questionnaire.QuestionType) bool {
	if isNull(raw) {
		return false
	}
	if t == questionnaire.TypeMultiSelect {
		var values []json.RawMessage
		if err := json.Unmarshal(raw, &values); err != nil {
			return false
		}
		return len(values) > 0
	}
	if t == questionnaire.TypeRating {
		_, ok, err := parseNumber(raw)
		return ok && err == nil
	}
	if s, err := decodeString(raw); err == nil {
		return strings.TrimSpace(s) != ""
	}
	return true
}

// MissingRequired returns the ids of the active, required questions that have no provided answer,
// in the order of questions.
func MissingRequired(questions []questionnaire.Question, raw map[string]json.RawMessage) []string {
	var missing []string
	for _, q := range questions {
		if !q.IsActive || !q.Required {
			continue
		}
		if !IsProvided(raw[q.ID], q.Type) {
			missing = append(missing, q.ID)
		}
	}
	return missing
}

// CheckRequired fails with a validation error carrying the missing question ids.
func CheckRequired(questions []questionnaire.Question, raw map[string]json.RawMessage) error {
	if missing := MissingRequired(questions, raw); len(missing) > 0 {
		return apperr.MissingRequired(missing)
	}
	return nil
}
