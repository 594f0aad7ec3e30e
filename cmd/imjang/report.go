package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/imjang/internal/note"
	"github.com/at-ishikawa/imjang/internal/report"
)

func newReportCommand() *cobra.Command {
	var (
		placeID string
		unitID  string
		userID  string
		output  string
		pdf     bool
	)

	command := &cobra.Command{
		Use:   "report",
		Short: "Write the evaluation report of a place or unit as Markdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			if pdf && output == "" {
				return errors.New("--pdf requires --output")
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			s, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			user, err := requireUser(userID)
			if err != nil {
				return err
			}
			rep, err := buildReport(cmd, s, note.Target{PlaceID: placeID, UnitID: unitID}, user)
			if err != nil {
				return err
			}

			if output == "" {
				return report.WriteMarkdown(cmd.OutOrStdout(), cfg.Report.Template, rep)
			}
			file, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("os.Create(%s) > %w", output, err)
			}
			if err := report.WriteMarkdown(file, cfg.Report.Template, rep); err != nil {
				_ = file.Close()
				return err
			}
			if err := file.Close(); err != nil {
				return fmt.Errorf("file.Close() > %w", err)
			}
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", output); err != nil {
				return err
			}

			if !pdf {
				return nil
			}
			pdfPath, err := report.ConvertMarkdownToPDF(output)
			if err != nil {
				return fmt.Errorf("ConvertMarkdownToPDF() > %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "PDF written to %s\n", pdfPath)
			return err
		},
	}
	command.Flags().StringVar(&placeID, "place", "", "Place ID")
	command.Flags().StringVar(&unitID, "unit", "", "Unit ID")
	command.Flags().StringVar(&userID, "user", "", "ID of the user who owns the note")
	command.Flags().StringVarP(&output, "output", "o", "", "Markdown output file, ending in .md (default: stdout)")
	command.Flags().BoolVar(&pdf, "pdf", false, "Also convert the Markdown file to PDF")
	return command
}

func buildReport(cmd *cobra.Command, s *store, target note.Target, userID string) (report.Report, error) {
	ctx := cmd.Context()
	n, err := s.notes.Get(ctx, target, userID)
	if err != nil {
		return report.Report{}, fmt.Errorf("get note: %w", err)
	}
	if !n.TemplateID.Valid {
		return report.Report{}, fmt.Errorf("the note of %s was saved without a template", n.Target())
	}
	t, err := s.templates.Get(ctx, n.TemplateID.String, userID)
	if err != nil {
		return report.Report{}, fmt.Errorf("get template: %w", err)
	}

	subject, err := s.places.Subject(ctx, n.PlaceID.String, n.UnitID.String, userID)
	if err != nil {
		return report.Report{}, err
	}
	return report.BuildFromJSON(subject, *t, n.Answers, time.Now())
}
