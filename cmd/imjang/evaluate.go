package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/imjang/internal/answer"
	"github.com/at-ishikawa/imjang/internal/apperr"
	"github.com/at-ishikawa/imjang/internal/evaluation"
	"github.com/at-ishikawa/imjang/internal/questionnaire"
)

func newEvaluateCommand() *cobra.Command {
	var (
		templateFile string
		templateID   string
		userID       string
	)

	command := &cobra.Command{
		Use:   "evaluate <answers-file>",
		Short: "Score an answers file against a template",
		Long: `Score an answers file (YAML or JSON object keyed by question id) against a template.
With --template-file, the questions of the file are addressed as q1, q2, ... in file order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readAnswers(args[0])
			if err != nil {
				return err
			}

			var t questionnaire.Template
			switch {
			case templateFile != "" && templateID != "":
				return errors.New("use either --template-file or --template-id")
			case templateFile != "":
				t, err = loadTemplateFile(templateFile)
				if err != nil {
					return err
				}
			case templateID != "":
				err = withStore(func(s *store) error {
					user, err := requireUser(userID)
					if err != nil {
						return err
					}
					found, err := s.templates.Get(cmd.Context(), templateID, user)
					if err != nil {
						return fmt.Errorf("Get() > %w", err)
					}
					t = *found
					return nil
				})
				if err != nil {
					return err
				}
			default:
				return errors.New("--template-file or --template-id is required")
			}

			result, err := evaluateAnswers(t, raw)
			if err != nil {
				return err
			}
			return printEvaluation(cmd.OutOrStdout(), t, result)
		},
	}
	command.Flags().StringVar(&templateFile, "template-file", "", "Template YAML file")
	command.Flags().StringVar(&templateID, "template-id", "", "ID of a stored template")
	command.Flags().StringVar(&userID, "user", "", "ID of the user evaluating, required with --template-id")
	return command
}

// readAnswers reads an answers file and returns it as a JSON object.
func readAnswers(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		var values map[string]any
		if err := yaml.Unmarshal(content, &values); err != nil {
			return nil, fmt.Errorf("yaml.Unmarshal(%s) > %w", path, err)
		}
		if values == nil {
			values = map[string]any{}
		}
		encoded, err := json.Marshal(values)
		if err != nil {
			return nil, fmt.Errorf("json.Marshal() > %w", err)
		}
		return encoded, nil
	case ".json":
		return content, nil
	}
	return nil, fmt.Errorf("unsupported answers file %s: use .yml, .yaml or .json", path)
}

// loadTemplateFile reads a template YAML file and names its questions q1, q2, ... in file order.
func loadTemplateFile(path string) (questionnaire.Template, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return questionnaire.Template{}, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}
	t, err := questionnaire.DecodeTemplateYAML(content)
	if err != nil {
		return questionnaire.Template{}, err
	}
	for i := range t.Questions {
		t.Questions[i].ID = "q" + strconv.Itoa(i+1)
	}
	return t, nil
}

func evaluateAnswers(t questionnaire.Template, data []byte) (evaluation.Result, error) {
	raw, err := answer.ParseRaw(data)
	if err != nil {
		return evaluation.Result{}, err
	}
	questions := t.ActiveQuestions()
	if missing := answer.MissingRequired(questions, raw); len(missing) > 0 {
		return evaluation.Result{}, fmt.Errorf("%w: %s", apperr.MissingRequired(missing), strings.Join(missing, ", "))
	}
	set, err := answer.DecodeSet(questions, raw)
	if err != nil {
		return evaluation.Result{}, err
	}
	return evaluation.Evaluate(set, questions), nil
}

func verdictColor(v evaluation.Verdict) *color.Color {
	switch v {
	case evaluation.Pass:
		return color.New(color.FgGreen, color.Bold)
	case evaluation.Hold:
		return color.New(color.FgYellow, color.Bold)
	}
	return color.New(color.FgRed, color.Bold)
}

func printEvaluation(w io.Writer, t questionnaire.Template, result evaluation.Result) error {
	texts := make(map[string]string, len(t.Questions))
	for _, q := range t.Questions {
		texts[q.ID] = q.Text
	}

	if _, err := fmt.Fprintln(w, t.Title); err != nil {
		return err
	}
	for _, c := range result.Contributions {
		if _, err := fmt.Fprintf(w, "  %6s  x%d  %s\n", signed(c.Score), c.Multiplier, texts[c.QuestionID]); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprint(w, "Verdict: "); err != nil {
		return err
	}
	if _, err := verdictColor(result.Verdict).Fprint(w, result.Verdict); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, " (total %s)\n", signed(result.Total))
	return err
}

func signed(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if v > 0 {
		return "+" + s
	}
	return s
}
