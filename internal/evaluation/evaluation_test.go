package evaluation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/at-ishikawa/imjang/internal/answer"
	"github.com/at-ishikawa/imjang/internal/questionnaire"
)

func question(id string, qType questionnaire.QuestionType, criticalLevel int, isBad bool, options ...string) questionnaire.Question {
	return questionnaire.Question{
		ID:            id,
		Type:          qType,
		Options:       options,
		CriticalLevel: criticalLevel,
		IsBad:         isBad,
		IsActive:      true,
	}
}

func TestEvaluate_Scenarios(t *testing.T) {
	tests := []struct {
		name        string
		questions   []questionnaire.Question
		answers     answer.Set
		wantTotal   float64
		wantVerdict Verdict
	}{
		{
			name:        "top rating with weight 1 holds",
			questions:   []questionnaire.Question{question("q1", questionnaire.TypeRating, 1, false)},
			answers:     answer.Set{"q1": answer.Rating{Value: 5}},
			wantTotal:   2,
			wantVerdict: Hold,
		},
		{
			name:        "top rating with weight 2 passes",
			questions:   []questionnaire.Question{question("q1", questionnaire.TypeRating, 2, false)},
			answers:     answer.Set{"q1": answer.Rating{Value: 5}},
			wantTotal:   4,
			wantVerdict: Pass,
		},
		{
			name:        "confirmed bad yes/no fails",
			questions:   []questionnaire.Question{question("q1", questionnaire.TypeYesNo, 1, true)},
			answers:     answer.Set{"q1": answer.YesNo{Marker: answer.MarkerYes}},
			wantTotal:   -2,
			wantVerdict: Fail,
		},
		{
			name:        "half coverage of a multiselect holds",
			questions:   []questionnaire.Question{question("q1", questionnaire.TypeMultiSelect, 1, false, "A", "B", "C", "D")},
			answers:     answer.Set{"q1": answer.MultiSelect{Values: []string{"A", "B"}}},
			wantTotal:   1,
			wantVerdict: Hold,
		},
		{
			name: "only text answers hold at zero",
			questions: []questionnaire.Question{
				question("q1", questionnaire.TypeText, 3, false),
				question("q2", questionnaire.TypeText, 1, true),
			},
			answers:     answer.Set{"q1": answer.Text{Value: "quiet"}, "q2": answer.Text{Value: "far"}},
			wantTotal:   0,
			wantVerdict: Hold,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.answers, tt.questions)
			assert.Equal(t, tt.wantTotal, got.Total)
			assert.Equal(t, tt.wantVerdict, got.Verdict)
		})
	}
}

func TestEvaluate_BaseScores(t *testing.T) {
	tests := []struct {
		name      string
		question  questionnaire.Question
		answer    answer.Answer
		wantTotal float64
		wantSkip  bool
	}{
		{name: "rating 1", question: question("q", questionnaire.TypeRating, 1, false), answer: answer.Rating{Value: 1}, wantTotal: -2},
		{name: "rating 2", question: question("q", questionnaire.TypeRating, 1, false), answer: answer.Rating{Value: 2}, wantTotal: -1},
		{name: "rating 4", question: question("q", questionnaire.TypeRating, 1, false), answer: answer.Rating{Value: 4}, wantTotal: 1},
		{name: "rating above range is clamped", question: question("q", questionnaire.TypeRating, 1, false), answer: answer.Rating{Value: 9}, wantTotal: 2},
		{name: "rating below range is clamped", question: question("q", questionnaire.TypeRating, 1, false), answer: answer.Rating{Value: -4}, wantTotal: -2},
		{name: "rating half rounds up", question: question("q", questionnaire.TypeRating, 1, false), answer: answer.Rating{Value: 3.5}, wantTotal: 1},
		{name: "rating below half rounds down", question: question("q", questionnaire.TypeRating, 1, false), answer: answer.Rating{Value: 2.4}, wantTotal: -1},
		{name: "yes", question: question("q", questionnaire.TypeYesNo, 1, false), answer: answer.YesNo{Marker: answer.MarkerYes}, wantTotal: 2},
		{name: "no", question: question("q", questionnaire.TypeYesNo, 1, false), answer: answer.YesNo{Marker: answer.MarkerNo}, wantTotal: -2},
		{name: "neutral", question: question("q", questionnaire.TypeYesNo, 3, true), answer: answer.YesNo{Marker: answer.MarkerNeutral}, wantTotal: 0},
		{name: "unknown marker is skipped", question: question("q", questionnaire.TypeYesNo, 1, false), answer: answer.YesNo{Marker: answer.MarkerUnknown, Raw: "maybe"}, wantSkip: true},
		{
			name:      "duplicate selections count once",
			question:  question("q", questionnaire.TypeMultiSelect, 1, false, "A", "B"),
			answer:    answer.MultiSelect{Values: []string{"A", "A", "A"}},
			wantTotal: 1,
		},
		{
			name:      "selections outside options are ignored",
			question:  question("q", questionnaire.TypeMultiSelect, 1, false, "A", "B"),
			answer:    answer.MultiSelect{Values: []string{"A", "B", "Z"}},
			wantTotal: 2,
		},
		{
			name:      "multiselect without options scores zero",
			question:  question("q", questionnaire.TypeMultiSelect, 2, false),
			answer:    answer.MultiSelect{Values: []string{"A"}},
			wantTotal: 0,
		},
		{
			name:      "weighted bad multiselect",
			question:  question("q", questionnaire.TypeMultiSelect, 2, true, "변전실", "대형종교시설", "물류시설", "기타"),
			answer:    answer.MultiSelect{Values: []string{"변전실"}},
			wantTotal: -1,
		},
		{name: "select scores zero", question: question("q", questionnaire.TypeSelect, 3, false, "South"), answer: answer.Select{Value: "South"}, wantTotal: 0},
		{name: "answer of another shape is skipped", question: question("q", questionnaire.TypeRating, 1, false), answer: answer.YesNo{Marker: answer.MarkerYes}, wantSkip: true},
		{name: "zero critical level weighs as one", question: question("q", questionnaire.TypeRating, 0, false), answer: answer.Rating{Value: 5}, wantTotal: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(answer.Set{"q": tt.answer}, []questionnaire.Question{tt.question})
			assert.Equal(t, tt.wantTotal, got.Total)
			if tt.wantSkip {
				assert.Empty(t, got.Contributions)
			} else {
				assert.Len(t, got.Contributions, 1)
			}
		})
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	questions := []questionnaire.Question{
		question("q1", questionnaire.TypeRating, 2, false),
		question("q2", questionnaire.TypeYesNo, 3, true),
		question("q3", questionnaire.TypeMultiSelect, 2, true, "A", "B", "C"),
	}
	answers := answer.Set{
		"q1": answer.Rating{Value: 4},
		"q2": answer.YesNo{Marker: answer.MarkerNo},
		"q3": answer.MultiSelect{Values: []string{"C"}},
	}

	first := Evaluate(answers, questions)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Evaluate(answers, questions))
	}

	reversed := []questionnaire.Question{questions[2], questions[1], questions[0]}
	assert.InDelta(t, first.Total, Evaluate(answers, reversed).Total, 1e-9)
	assert.Equal(t, first.Verdict, Evaluate(answers, reversed).Verdict)
}

func TestEvaluate_NeutralRatingContributesZero(t *testing.T) {
	for _, criticalLevel := range []int{1, 2, 3, 5} {
		for _, isBad := range []bool{false, true} {
			t.Run(fmt.Sprintf("critical=%d/bad=%v", criticalLevel, isBad), func(t *testing.T) {
				got := Evaluate(
					answer.Set{"q": answer.Rating{Value: 3}},
					[]questionnaire.Question{question("q", questionnaire.TypeRating, criticalLevel, isBad)},
				)
				assert.Equal(t, 0.0, got.Total)
				assert.Equal(t, Hold, got.Verdict)
			})
		}
	}
}

func TestEvaluate_PolarityInversion(t *testing.T) {
	cases := []struct {
		name     string
		question questionnaire.Question
		answer   answer.Answer
	}{
		{name: "rating", question: question("q", questionnaire.TypeRating, 2, false), answer: answer.Rating{Value: 5}},
		{name: "low rating", question: question("q", questionnaire.TypeRating, 3, false), answer: answer.Rating{Value: 1}},
		{name: "yes", question: question("q", questionnaire.TypeYesNo, 3, false), answer: answer.YesNo{Marker: answer.MarkerYes}},
		{name: "no", question: question("q", questionnaire.TypeYesNo, 1, false), answer: answer.YesNo{Marker: answer.MarkerNo}},
		{name: "multiselect", question: question("q", questionnaire.TypeMultiSelect, 2, false, "A", "B", "C"), answer: answer.MultiSelect{Values: []string{"A", "C"}}},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			good := tt.question
			bad := tt.question
			bad.IsBad = true

			goodResult := Evaluate(answer.Set{"q": tt.answer}, []questionnaire.Question{good})
			badResult := Evaluate(answer.Set{"q": tt.answer}, []questionnaire.Question{bad})
			assert.Equal(t, -goodResult.Contributions[0].Score, badResult.Contributions[0].Score)
			assert.Equal(t, -goodResult.Total, badResult.Total)
		})
	}
}

func TestEvaluate_SkipsUnansweredAndInactive(t *testing.T) {
	inactive := question("q2", questionnaire.TypeRating, 5, false)
	inactive.IsActive = false
	questions := []questionnaire.Question{
		question("q1", questionnaire.TypeRating, 1, false),
		inactive,
		question("q3", questionnaire.TypeYesNo, 3, true),
	}

	got := Evaluate(answer.Set{"q1": answer.Rating{Value: 5}, "q2": answer.Rating{Value: 5}}, questions)
	assert.Equal(t, 2.0, got.Total)
	assert.Equal(t, []Contribution{{QuestionID: "q1", BaseScore: 2, Multiplier: 1, Polarity: 1, Score: 2}}, got.Contributions)

	empty := Evaluate(nil, questions)
	assert.Equal(t, 0.0, empty.Total)
	assert.Equal(t, Hold, empty.Verdict)
	assert.Empty(t, empty.Contributions)
}

func TestVerdictFor(t *testing.T) {
	tests := []struct {
		total float64
		want  Verdict
	}{
		{total: 3, want: Pass},
		{total: 2.999, want: Hold},
		{total: 0, want: Hold},
		{total: -0.5, want: Fail},
		{total: 12, want: Pass},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.total), func(t *testing.T) {
			assert.Equal(t, tt.want, VerdictFor(tt.total))
			assert.True(t, tt.want.Valid())
		})
	}
	assert.False(t, Verdict("MAYBE").Valid())
}
