package questionnaire

// TemplateInput is the editable form of a template, as submitted over the API or read from YAML files.
type TemplateInput struct {
	ID        string          `json:"id,omitempty" yaml:"id,omitempty"`
	Title     string          `json:"title" yaml:"title"`
	Scope     Scope           `json:"scope" yaml:"scope"`
	Questions []QuestionInput `json:"questions" yaml:"questions"`
}

// QuestionInput is the editable form of a question. IsActive defaults to true when omitted.
type QuestionInput struct {
	Text          string       `json:"text" yaml:"text"`
	Type          QuestionType `json:"type" yaml:"type"`
	Options       []string     `json:"options,omitempty" yaml:"options,omitempty"`
	Category      string       `json:"category,omitempty" yaml:"category,omitempty"`
	CriticalLevel int          `json:"critical_level,omitempty" yaml:"critical_level,omitempty"`
	IsBad         bool         `json:"is_bad,omitempty" yaml:"is_bad,omitempty"`
	IsActive      *bool        `json:"is_active,omitempty" yaml:"is_active,omitempty"`
	Required      bool         `json:"required,omitempty" yaml:"required,omitempty"`
}

// Template converts the input into an unsaved Template.
func (in TemplateInput) Template() Template {
	t := Template{
		ID:        in.ID,
		Title:     in.Title,
		Scope:     in.Scope,
		Questions: make([]Question, 0, len(in.Questions)),
	}
	for _, q := range in.Questions {
		active := true
		if q.IsActive != nil {
			active = *q.IsActive
		}
		t.Questions = append(t.Questions, Question{
			Text:          q.Text,
			Type:          q.Type,
			Options:       Options(q.Options),
			Category:      q.Category,
			CriticalLevel: q.CriticalLevel,
			IsBad:         q.IsBad,
			IsActive:      active,
			Required:      q.Required,
		})
	}
	return t
}

// NewTemplateInput returns the editable form of a stored template.
func NewTemplateInput(t Template) TemplateInput {
	in := TemplateInput{
		ID:        t.ID,
		Title:     t.Title,
		Scope:     t.Scope,
		Questions: make([]QuestionInput, 0, len(t.Questions)),
	}
	for _, q := range t.Questions {
		active := q.IsActive
		in.Questions = append(in.Questions, QuestionInput{
			Text:          q.Text,
			Type:          q.Type,
			Options:       []string(q.Options),
			Category:      q.Category,
			CriticalLevel: q.CriticalLevel,
			IsBad:         q.IsBad,
			IsActive:      &active,
			Required:      q.Required,
		})
	}
	return in
}
