// Package note stores questionnaire submissions and their verdicts, one per owner and target.
package note

import (
	"database/sql"
	"strings"
	"time"

	"github.com/at-ishikawa/imjang/internal/apperr"
	"github.com/at-ishikawa/imjang/internal/evaluation"
)

// Target is what a note evaluates: a whole place or one unit. Exactly one id is set.
type Target struct {
	PlaceID string `json:"place_id,omitempty"`
	UnitID  string `json:"unit_id,omitempty"`
}

// PlaceTarget is the place-level target of placeID.
func PlaceTarget(placeID string) Target {
	return Target{PlaceID: placeID}
}

// UnitTarget is the unit-level target of unitID.
func UnitTarget(unitID string) Target {
	return Target{UnitID: unitID}
}

// Normalize trims the ids and checks that exactly one of them is set.
func (t Target) Normalize() (Target, error) {
	t.PlaceID = strings.TrimSpace(t.PlaceID)
	t.UnitID = strings.TrimSpace(t.UnitID)
	if (t.PlaceID == "") == (t.UnitID == "") {
		return Target{}, apperr.Validation("exactly one of place id and unit id is required")
	}
	return t, nil
}

// IsUnit reports whether t is a unit-level target.
func (t Target) IsUnit() bool {
	return t.UnitID != ""
}

// Key is the value of the unique target column, "place:<id>" or "unit:<id>".
func (t Target) Key() string {
	if t.IsUnit() {
		return "unit:" + t.UnitID
	}
	return "place:" + t.PlaceID
}

func (t Target) String() string {
	return t.Key()
}

// Note is one committed questionnaire submission.
// Answers holds the submitted JSON object verbatim. Evaluation and Score are null when no template was used.
type Note struct {
	ID         string              `db:"id"`
	OwnerID    string              `db:"owner_id"`
	PlaceID    sql.NullString      `db:"place_id"`
	UnitID     sql.NullString      `db:"unit_id"`
	TargetKey  string              `db:"target_key"`
	TemplateID sql.NullString      `db:"template_id"`
	Answers    string              `db:"answers"`
	Evaluation *evaluation.Verdict `db:"evaluation"`
	Score      sql.NullFloat64     `db:"score"`
	CreatedAt  time.Time           `db:"created_at"`
	UpdatedAt  time.Time           `db:"updated_at"`
}

// Target returns the target of the note.
func (n Note) Target() Target {
	return Target{PlaceID: n.PlaceID.String, UnitID: n.UnitID.String}
}
