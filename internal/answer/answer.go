// Package answer decodes questionnaire answers into typed values and checks that required questions are answered.
package answer

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/at-ishikawa/imjang/internal/apperr"
	"github.com/at-ishikawa/imjang/internal/questionnaire"
)

// Answer is one of Rating, YesNo, MultiSelect, Select or Text.
type Answer interface {
	questionType() questionnaire.QuestionType
}

// Rating is the answer to a rating question. Value is kept as submitted; scoring rounds and clamps it.
type Rating struct {
	Value float64
}

// Marker is the tri-state value of a yes/no answer.
type Marker int

const (
	// MarkerUnknown is any value that is not one of the recognised markers.
	MarkerUnknown Marker = iota
	MarkerYes
	MarkerNo
	MarkerNeutral
)

func (m Marker) String() string {
	switch m {
	case MarkerYes:
		return "Yes"
	case MarkerNo:
		return "No"
	case MarkerNeutral:
		return "-"
	}
	return "unknown"
}

// YesNo is the answer to a yesno question. Raw holds the submitted text when the marker is unknown.
type YesNo struct {
	Marker Marker
	Raw    string
}

// MultiSelect is the answer to a multiselect question, in submitted order.
type MultiSelect struct {
	Values []string
}

// Select is the answer to a select question.
type Select struct {
	Value string
}

// Text is a free-form answer.
type Text struct {
	Value string
}

func (Rating) questionType() questionnaire.QuestionType      { return questionnaire.TypeRating }
func (YesNo) questionType() questionnaire.QuestionType       { return questionnaire.TypeYesNo }
func (MultiSelect) questionType() questionnaire.QuestionType { return questionnaire.TypeMultiSelect }
func (Select) questionType() questionnaire.QuestionType      { return questionnaire.TypeSelect }
func (Text) questionType() questionnaire.QuestionType        { return questionnaire.TypeText }

// Set maps question ids to decoded answers. Unanswered questions have no entry.
type Set map[string]Answer

// ParseRaw splits a stored or submitted answers document into its raw values.
// The document must be a JSON object; values are kept verbatim.
func ParseRaw(data []byte) (map[string]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return map[string]json.RawMessage{}, nil
	}
	if trimmed[0] != '{' {
		return nil, apperr.Validation("answers must be a JSON object")
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, apperr.Validation("answers are not valid JSON: %v", err)
	}
	return raw, nil
}

// Decode converts a raw value into the answer shape of q.
// It returns a nil Answer when the value counts as unanswered.
func Decode(q questionnaire.Question, raw json.RawMessage) (Answer, error) {
	if isNull(raw) {
		return nil, nil
	}

	switch q.Type {
	case questionnaire.TypeRating:
		n, ok, err := parseNumber(raw)
		if err != nil {
			return nil, apperr.Validation("question %s: rating must be a number", q.ID)
		}
		if !ok {
			return nil, nil
		}
		return Rating{Value: n}, nil

	case questionnaire.TypeYesNo:
		return decodeYesNo(raw), nil

	case questionnaire.TypeMultiSelect:
		var values []string
		if err := json.Unmarshal(raw, &values); err != nil {
			return nil, apperr.Validation("question %s: multiselect must be a list of strings", q.ID)
		}
		return MultiSelect{Values: values}, nil

	case questionnaire.TypeSelect:
		s, err := decodeString(raw)
		if err != nil {
			return nil, apperr.Validation("question %s: select must be a string", q.ID)
		}
		if strings.TrimSpace(s) == "" {
			return nil, nil
		}
		if !q.Options.Contains(s) {
			return nil, apperr.Validation("question %s: %q is not one of the options", q.ID, s)
		}
		return Select{Value: s}, nil

	case questionnaire.TypeText:
		s, err := decodeString(raw)
		if err != nil {
			return nil, apperr.Validation("question %s: text must be a string", q.ID)
		}
		if strings.TrimSpace(s) == "" {
			return nil, nil
		}
		return Text{Value: s}, nil
	}
	return nil, apperr.Validation("question %s: type %q is not supported", q.ID, q.Type)
}

// DecodeSet decodes the answers to questions. Raw keys that do not belong to any of the questions are ignored.
func DecodeSet(questions []questionnaire.Question, raw map[string]json.RawMessage) (Set, error) {
	set := make(Set, len(questions))
	for _, q := range questions {
		value, ok := raw[q.ID]
		if !ok {
			continue
		}
		a, err := Decode(q, value)
		if err != nil {
			return nil, err
		}
		if a != nil {
			set[q.ID] = a
		}
	}
	return set, nil
}

func decodeYesNo(raw json.RawMessage) YesNo {
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		if b {
			return YesNo{Marker: MarkerYes}
		}
		return YesNo{Marker: MarkerNo}
	}
	s, err := decodeString(raw)
	if err != nil {
		return YesNo{Marker: MarkerUnknown, Raw: string(raw)}
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes":
		return YesNo{Marker: MarkerYes}
	case "no":
		return YesNo{Marker: MarkerNo}
	case "-":
		return YesNo{Marker: MarkerNeutral}
	}
	return YesNo{Marker: MarkerUnknown, Raw: s}
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func decodeString(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", err
	}
	return s, nil
}

// parseNumber accepts a JSON number or a numeric string. ok is false for a blank string.
func parseNumber(raw json.RawMessage) (n float64, ok bool, err error) {
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, true, nil
	}
	s, err := decodeString(raw)
	if err != nil {
		return 0, false, err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false, nil
	}
	n, err = strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, err
	}
	if math.IsInf(n, 0) || math.IsNaN(n) {
		return 0, false, strconv.ErrRange
	}
	return n, true, nil
}
