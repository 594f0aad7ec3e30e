package questionnaire

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Options is the ordered list of choices of a select or multiselect question.
// It is stored as a JSON array column.
type Options []string

// Value implements driver.Valuer.
func (o Options) Value() (driver.Value, error) {
	if o == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(o))
	if err != nil {
		return nil, fmt.Errorf("marshal options: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (o *Options) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*o = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("scan options: unsupported type %T", src)
	}
	if len(raw) == 0 {
		*o = nil
		return nil
	}
	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return fmt.Errorf("unmarshal options: %w", err)
	}
	*o = values
	return nil
}

// Contains reports whether option is one of the choices.
func (o Options) Contains(option string) bool {
	for _, v := range o {
		if v == option {
			return true
		}
	}
	return false
}
