// Package evaluation scores questionnaire answers and turns the total into a verdict.
package evaluation

import (
	"math"

	"github.com/at-ishikawa/imjang/internal/answer"
	"github.com/at-ishikawa/imjang/internal/questionnaire"
)

// Verdict is the grade of a place or unit.
type Verdict string

const (
	Pass Verdict = "PASS"
	Hold Verdict = "HOLD"
	Fail Verdict = "FAIL"
)

// Valid reports whether v is one of the three verdicts.
func (v Verdict) Valid() bool {
	return v == Pass || v == Hold || v == Fail
}

const (
	// PassThreshold is the lowest total that passes.
	PassThreshold = 3.0
	// HoldThreshold is the lowest total that is held rather than failed.
	HoldThreshold = 0.0
)

// Contribution is the score one answered question added to the total.
type Contribution struct {
	QuestionID string  `json:"question_id"`
	BaseScore  float64 `json:"base_score"`
	Multiplier int     `json:"multiplier"`
	Polarity   int     `json:"polarity"`
	Score      float64 `json:"score"`
}

// Result is the outcome of Evaluate.
// Contributions lists the scored questions in the order they were given; skipped questions are absent.
type Result struct {
	Verdict       Verdict        `json:"verdict"`
	Total         float64        `json:"total"`
	Contributions []Contribution `json:"contributions"`
}

// Evaluate sums the weighted contribution of every active, answered question and grades the total.
// Unanswered questions, answers of the wrong shape and unknown yes/no markers contribute nothing.
// It has no side effects and is safe for concurrent use.
func Evaluate(answers answer.Set, questions []questionnaire.Question) Result {
	result := Result{Contributions: []Contribution{}}
	for _, q := range questions {
		if !q.IsActive {
			continue
		}
		a, ok := answers[q.ID]
		if !ok || a == nil {
			continue
		}
		base, scored := baseScore(q, a)
		if !scored {
			continue
		}

		c := Contribution{
			QuestionID: q.ID,
			BaseScore:  base,
			Multiplier: multiplier(q),
			Polarity:   polarity(q),
		}
		if c.BaseScore != 0 {
			c.Score = c.BaseScore * float64(c.Multiplier) * float64(c.Polarity)
		}
		result.Total += c.Score
		result.Contributions = append(result.Contributions, c)
	}
	result.Verdict = VerdictFor(result.Total)
	return result
}

// VerdictFor grades a total score.
func VerdictFor(total float64) Verdict {
	switch {
	case total >= PassThreshold:
		return Pass
	case total >= HoldThreshold:
		return Hold
	default:
		return Fail
	}
}

func multiplier(q questionnaire.Question) int {
	if q.CriticalLevel < 1 {
		return 1
	}
	return q.CriticalLevel
}

func polarity(q questionnaire.Question) int {
	if q.IsBad {
		return -1
	}
	return 1
}

// baseScore returns the unweighted score of a in [-2, 2]. scored is false when the question is skipped.
func baseScore(q questionnaire.Question, a answer.Answer) (score float64, scored bool) {
	switch v := a.(type) {
	case answer.Rating:
		if q.Type != questionnaire.TypeRating || math.IsNaN(v.Value) {
			return 0, false
		}
		return roundHalfUp(clamp(v.Value, 1, 5)) - 3, true

	case answer.YesNo:
		if q.Type != questionnaire.TypeYesNo {
			return 0, false
		}
		switch v.Marker {
		case answer.MarkerYes:
			return 2, true
		case answer.MarkerNo:
			return -2, true
		case answer.MarkerNeutral:
			return 0, true
		}
		return 0, false

	case answer.MultiSelect:
		if q.Type != questionnaire.TypeMultiSelect {
			return 0, false
		}
		return coverage(q.Options, v.Values) * 2, true

	case answer.Select, answer.Text:
		return 0, true
	}
	return 0, false
}

// coverage is the share of distinct options that were selected. Selections outside options are ignored.
func coverage(options questionnaire.Options, selected []string) float64 {
	choices := make(map[string]bool, len(options))
	for _, o := range options {
		choices[o] = true
	}
	if len(choices) == 0 {
		return 0
	}

	hits := make(map[string]bool, len(selected))
	for _, s := range selected {
		if choices[s] {
			hits[s] = true
		}
	}
	return clamp(float64(len(hits))/float64(len(choices)), 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// roundHalfUp rounds halves towards positive infinity, so 2.5 becomes 3.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
