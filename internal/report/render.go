package report

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"

	"github.com/mandolyte/mdtopdf"
)

const embeddedTemplateName = "report.md.go.tmpl"

//go:embed templates/report.md.go.tmpl
var fallbackReportTemplate string

var funcMap = template.FuncMap{
	"add": func(a, b int) int { return a + b },
	"score": func(v float64) string {
		return strconv.FormatFloat(v, 'f', -1, 64)
	},
	// cell keeps a value inside one Markdown table cell
	"cell": func(s string) string {
		s = strings.ReplaceAll(s, "|", "\\|")
		return strings.Join(strings.Fields(s), " ")
	},
}

// ParseTemplate parses the template at templatePath, falling back to the embedded one when
// the path is empty, missing or invalid.
func ParseTemplate(templatePath string) (*template.Template, error) {
	if templatePath != "" {
		if _, err := os.Stat(templatePath); err == nil {
			tmpl, err := template.New(filepath.Base(templatePath)).
				Funcs(funcMap).
				ParseFiles(templatePath)
			if err == nil {
				return tmpl, nil
			}
			slog.Default().Warn("failed to parse a report template",
				slog.String("templatePath", templatePath),
				slog.Any("error", err),
			)
		}
	}

	tmpl, err := template.New(embeddedTemplateName).
		Funcs(funcMap).
		Parse(fallbackReportTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template: %w", err)
	}
	return tmpl, nil
}

// WriteMarkdown renders r with the template at templatePath.
func WriteMarkdown(output io.Writer, templatePath string, r Report) error {
	tmpl, err := ParseTemplate(templatePath)
	if err != nil {
		return fmt.Errorf("ParseTemplate() > %w", err)
	}
	if err := tmpl.Execute(output, r); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}

// ConvertMarkdownToPDF converts a markdown file to PDF using mdtopdf package.
// The PDF file is created next to the markdown file and its absolute path is returned.
func ConvertMarkdownToPDF(markdownPath string) (string, error) {
	if !strings.HasSuffix(markdownPath, ".md") {
		return "", fmt.Errorf("input file must have .md extension: %s", markdownPath)
	}

	content, err := os.ReadFile(markdownPath)
	if err != nil {
		return "", fmt.Errorf("os.ReadFile(%s) > %w", markdownPath, err)
	}

	pdfPath := strings.TrimSuffix(markdownPath, ".md") + ".pdf"
	renderer := mdtopdf.NewPdfRenderer("P", "A4", pdfPath, "", nil, mdtopdf.LIGHT)
	if err := renderer.Process(content); err != nil {
		return "", fmt.Errorf("renderer.Process() > %w", err)
	}

	absPath, err := filepath.Abs(pdfPath)
	if err != nil {
		return pdfPath, nil
	}
	return absPath, nil
}
