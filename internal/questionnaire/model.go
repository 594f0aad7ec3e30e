// Package questionnaire holds evaluation templates and their questions.
package questionnaire

import (
	"database/sql"
	"time"
)

// Scope tells which questionnaire context a template can be selected for.
type Scope string

const (
	ScopePlace Scope = "PLACE"
	ScopeUnit  Scope = "UNIT"
	ScopeBoth  Scope = "BOTH"
)

// Valid reports whether s is one of the known scopes.
func (s Scope) Valid() bool {
	switch s {
	case ScopePlace, ScopeUnit, ScopeBoth:
		return true
	}
	return false
}

// Matches reports whether a template with scope s can be used for the requested context.
func (s Scope) Matches(requested Scope) bool {
	return s == ScopeBoth || s == requested
}

// QuestionType decides the answer shape and how the question is scored.
type QuestionType string

const (
	TypeRating      QuestionType = "rating"
	TypeYesNo       QuestionType = "yesno"
	TypeMultiSelect QuestionType = "multiselect"
	TypeSelect      QuestionType = "select"
	TypeText        QuestionType = "text"
)

// Valid reports whether t is one of the known question types.
func (t QuestionType) Valid() bool {
	switch t {
	case TypeRating, TypeYesNo, TypeMultiSelect, TypeSelect, TypeText:
		return true
	}
	return false
}

// HasOptions reports whether questions of this type carry a list of choices.
func (t QuestionType) HasOptions() bool {
	return t == TypeMultiSelect || t == TypeSelect
}

// DefaultCategory is the display bucket for questions saved without a category.
const DefaultCategory = "기타"

// Template is a named, ordered questionnaire. OwnerID is null for shared default templates.
type Template struct {
	ID        string         `db:"id" json:"id" yaml:"id,omitempty"`
	OwnerID   sql.NullString `db:"owner_id" json:"-" yaml:"-"`
	Title     string         `db:"title" json:"title" yaml:"title"`
	Scope     Scope          `db:"scope" json:"scope" yaml:"scope"`
	CreatedAt time.Time      `db:"created_at" json:"created_at" yaml:"-"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at" yaml:"-"`
	Questions []Question     `db:"-" json:"questions" yaml:"questions"`
}

// IsDefault reports whether the template is a shared, read-only default.
func (t Template) IsDefault() bool {
	return !t.OwnerID.Valid
}

// OwnedBy reports whether callerID owns the template.
func (t Template) OwnedBy(callerID string) bool {
	return t.OwnerID.Valid && t.OwnerID.String == callerID
}

// VisibleTo reports whether callerID can read and use the template.
func (t Template) VisibleTo(callerID string) bool {
	return t.IsDefault() || t.OwnedBy(callerID)
}

// ActiveQuestions returns the questions that are rendered and scored, in orderIdx order.
func (t Template) ActiveQuestions() []Question {
	active := make([]Question, 0, len(t.Questions))
	for _, q := range t.Questions {
		if q.IsActive {
			active = append(active, q)
		}
	}
	return active
}

// Question is one item of a template.
type Question struct {
	ID            string       `db:"id" json:"id" yaml:"id,omitempty"`
	TemplateID    string       `db:"template_id" json:"template_id" yaml:"-"`
	Text          string       `db:"text" json:"text" yaml:"text"`
	Type          QuestionType `db:"type" json:"type" yaml:"type"`
	Options       Options      `db:"options" json:"options" yaml:"options,omitempty"`
	Category      string       `db:"category" json:"category" yaml:"category,omitempty"`
	OrderIdx      int          `db:"order_idx" json:"order_idx" yaml:"-"`
	CriticalLevel int          `db:"critical_level" json:"critical_level" yaml:"critical_level,omitempty"`
	IsBad         bool         `db:"is_bad" json:"is_bad" yaml:"is_bad,omitempty"`
	IsActive      bool         `db:"is_active" json:"is_active" yaml:"is_active"`
	Required      bool         `db:"required" json:"required" yaml:"required,omitempty"`
}

// CategoryGroup is a display group of questions sharing a category, in first-appearance order.
type CategoryGroup struct {
	Category  string
	Questions []Question
}

// GroupByCategory groups questions by category while keeping their relative order.
func GroupByCategory(questions []Question) []CategoryGroup {
	var groups []CategoryGroup
	index := make(map[string]int)
	for _, q := range questions {
		category := q.Category
		if category == "" {
			category = DefaultCategory
		}
		i, ok := index[category]
		if !ok {
			i = len(groups)
			index[category] = i
			groups = append(groups, CategoryGroup{Category: category})
		}
		groups[i].Questions = append(groups[i].Questions, q)
	}
	return groups
}
