package questionnaire

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/imjang/internal/apperr"
)

const (
	DefaultPlaceTemplateID = "00000000-0000-0000-0000-000000000001"
	DefaultUnitTemplateID  = "00000000-0000-0000-0000-000000000002"
)

//go:embed seeds/*.yaml
var seedFS embed.FS

// DefaultTemplates returns the built-in shared templates, ordered by id.
func DefaultTemplates() ([]Template, error) {
	entries, err := fs.ReadDir(seedFS, "seeds")
	if err != nil {
		return nil, fmt.Errorf("read seeds: %w", err)
	}

	var templates []Template
	for _, entry := range entries {
		content, err := seedFS.ReadFile(path.Join("seeds", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read seed %s: %w", entry.Name(), err)
		}
		t, err := DecodeTemplateYAML(content)
		if err != nil {
			return nil, fmt.Errorf("decode seed %s: %w", entry.Name(), err)
		}
		templates = append(templates, t)
	}
	sort.Slice(templates, func(i, j int) bool {
		return templates[i].ID < templates[j].ID
	})
	return templates, nil
}

// DecodeTemplateYAML parses and normalizes a template written in YAML.
func DecodeTemplateYAML(content []byte) (Template, error) {
	var in TemplateInput
	if err := yaml.Unmarshal(content, &in); err != nil {
		return Template{}, apperr.Validation("invalid template YAML: %v", err)
	}
	return Normalize(in.Template())
}

// EncodeTemplateYAML writes the editable form of t as YAML.
func EncodeTemplateYAML(t Template) ([]byte, error) {
	content, err := yaml.Marshal(NewTemplateInput(t))
	if err != nil {
		return nil, fmt.Errorf("marshal template: %w", err)
	}
	return content, nil
}

// SeedDefaults stores the built-in templates without an owner.
// Templates that already exist are left alone unless overwrite is set, in which case their
// title, scope and questions are replaced.
func (s *Service) SeedDefaults(ctx context.Context, overwrite bool) (int, error) {
	defaults, err := DefaultTemplates()
	if err != nil {
		return 0, err
	}

	var seeded int
	for i := range defaults {
		t := defaults[i]
		existing, err := s.repo.FindByID(ctx, t.ID)
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			if err := s.repo.Create(ctx, &t); err != nil {
				return seeded, fmt.Errorf("create default template %s: %w", t.ID, err)
			}
		case err != nil:
			return seeded, fmt.Errorf("find default template %s: %w", t.ID, err)
		case !overwrite:
			slog.Debug("default template already exists", "template", t.ID)
			continue
		default:
			t.CreatedAt = existing.CreatedAt
			if err := s.repo.Update(ctx, &t); err != nil {
				return seeded, fmt.Errorf("update default template %s: %w", t.ID, err)
			}
		}
		seeded++
		slog.Info("default template seeded", "template", t.ID, "scope", t.Scope, "questions", len(t.Questions))
	}
	return seeded, nil
}
