// Package report renders a saved evaluation as a Markdown or PDF document.
package report

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/at-ishikawa/imjang/internal/answer"
	"github.com/at-ishikawa/imjang/internal/evaluation"
	"github.com/at-ishikawa/imjang/internal/questionnaire"
)

const noAnswer = "(no answer)"

// Report is the data passed to the report template.
type Report struct {
	Subject       string
	TemplateTitle string
	Scope         questionnaire.Scope
	Verdict       evaluation.Verdict
	Total         float64
	Answered      int
	Unanswered    int
	Sections      []Section
	GeneratedAt   time.Time
}

// Section is one category of the template.
type Section struct {
	Category string
	Items    []Item
}

// Item is one active question with its rendered answer.
// Score is empty when the question did not contribute to the total.
type Item struct {
	Number   int
	Text     string
	Type     questionnaire.QuestionType
	Answer   string
	Critical int
	IsBad    bool
	Required bool
	Score    string
}

// Build evaluates rawAnswers against the active questions of t and lays them out by category.
// Answers that no longer fit their question are shown verbatim and not scored.
func Build(subject string, t questionnaire.Template, rawAnswers []byte, now time.Time) (Report, error) {
	raw, err := answer.ParseRaw(rawAnswers)
	if err != nil {
		return Report{}, fmt.Errorf("parse answers: %w", err)
	}

	questions := t.ActiveQuestions()
	decoded := make(answer.Set, len(questions))
	rendered := make(map[string]string, len(questions))
	for _, q := range questions {
		value, ok := raw[q.ID]
		if !ok {
			continue
		}
		a, err := answer.Decode(q, value)
		if err != nil {
			rendered[q.ID] = string(value)
			continue
		}
		if a != nil {
			decoded[q.ID] = a
			rendered[q.ID] = Format(a)
		}
	}

	result := evaluation.Evaluate(decoded, questions)
	scores := make(map[string]float64, len(result.Contributions))
	for _, c := range result.Contributions {
		scores[c.QuestionID] = c.Score
	}

	r := Report{
		Subject:       subject,
		TemplateTitle: t.Title,
		Scope:         t.Scope,
		Verdict:       result.Verdict,
		Total:         result.Total,
		GeneratedAt:   now,
	}
	number := 0
	for _, group := range questionnaire.GroupByCategory(questions) {
		section := Section{Category: group.Category}
		for _, q := range group.Questions {
			number++
			item := Item{
				Number:   number,
				Text:     q.Text,
				Type:     q.Type,
				Answer:   noAnswer,
				Critical: q.CriticalLevel,
				IsBad:    q.IsBad,
				Required: q.Required,
			}
			if text, ok := rendered[q.ID]; ok {
				item.Answer = text
				r.Answered++
			} else {
				r.Unanswered++
			}
			if score, ok := scores[q.ID]; ok {
				item.Score = formatScore(score)
			}
			section.Items = append(section.Items, item)
		}
		r.Sections = append(r.Sections, section)
	}
	return r, nil
}

// BuildFromJSON is Build for answers held as a string, as they are stored in a note.
func BuildFromJSON(subject string, t questionnaire.Template, answers string, now time.Time) (Report, error) {
	return Build(subject, t, json.RawMessage(answers), now)
}

// Format renders an answer for display.
func Format(a answer.Answer) string {
	switch v := a.(type) {
	case answer.Rating:
		return strconv.FormatFloat(v.Value, 'f', -1, 64) + " / 5"
	case answer.YesNo:
		if v.Marker == answer.MarkerUnknown {
			return v.Raw
		}
		return v.Marker.String()
	case answer.MultiSelect:
		if len(v.Values) == 0 {
			return noAnswer
		}
		return strings.Join(v.Values, ", ")
	case answer.Select:
		return v.Value
	case answer.Text:
		return v.Value
	}
	return noAnswer
}

func formatScore(score float64) string {
	if score > 0 {
		return "+" + strconv.FormatFloat(score, 'f', -1, 64)
	}
	return strconv.FormatFloat(score, 'f', -1, 64)
}
