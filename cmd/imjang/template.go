package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/imjang/internal/questionnaire"
)

func newTemplateCommand() *cobra.Command {
	var userID string

	command := &cobra.Command{
		Use:   "template",
		Short: "Manage questionnaire templates",
	}
	command.PersistentFlags().StringVar(&userID, "user", "", "ID of the user who owns the templates")

	command.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List the default templates and the user's templates",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withStore(func(s *store) error {
					user, err := requireUser(userID)
					if err != nil {
						return err
					}
					templates, err := s.templates.List(cmd.Context(), user)
					if err != nil {
						return fmt.Errorf("List() > %w", err)
					}
					return writeTemplateList(cmd.OutOrStdout(), templates)
				})
			},
		},
		newTemplateExportCommand(&userID),
		newTemplateImportCommand(&userID),
	)
	return command
}

func newTemplateExportCommand(userID *string) *cobra.Command {
	var output string

	command := &cobra.Command{
		Use:   "export <template-id>",
		Short: "Write a template as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(s *store) error {
				user, err := requireUser(*userID)
				if err != nil {
					return err
				}
				t, err := s.templates.Get(cmd.Context(), args[0], user)
				if err != nil {
					return fmt.Errorf("Get() > %w", err)
				}
				content, err := questionnaire.EncodeTemplateYAML(*t)
				if err != nil {
					return err
				}
				if output == "" {
					_, err = cmd.OutOrStdout().Write(content)
					return err
				}
				if err := os.WriteFile(output, content, 0644); err != nil {
					return fmt.Errorf("os.WriteFile(%s) > %w", output, err)
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "Template %s written to %s\n", t.ID, output)
				return err
			})
		},
	}
	command.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	return command
}

func newTemplateImportCommand(userID *string) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Create or replace one of the user's templates from a YAML file",
		Long:  "Create a template from a YAML file. When the file has an id, the user's template with that id is replaced.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("os.ReadFile(%s) > %w", args[0], err)
			}
			t, err := questionnaire.DecodeTemplateYAML(content)
			if err != nil {
				return err
			}

			return withStore(func(s *store) error {
				user, err := requireUser(*userID)
				if err != nil {
					return err
				}
				saved, err := s.templates.Save(cmd.Context(), t, user)
				if err != nil {
					return fmt.Errorf("Save() > %w", err)
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "Template %s saved with %d question(s)\n", saved.ID, len(saved.Questions))
				return err
			})
		},
	}
}

func writeTemplateList(w io.Writer, templates []questionnaire.Template) error {
	for _, t := range templates {
		owner := "default"
		if !t.IsDefault() {
			owner = "owned"
		}
		if _, err := fmt.Fprintf(w, "%s  %-5s  %-7s  %3d  %s\n",
			t.ID, t.Scope, owner, len(t.ActiveQuestions()), t.Title); err != nil {
			return err
		}
	}
	return nil
}
