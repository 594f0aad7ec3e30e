package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/imjang/internal/database"
	"github.com/at-ishikawa/imjang/internal/questionnaire"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := database.Migrate(cfg.Database); err != nil {
				return fmt.Errorf("database.Migrate() > %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Migrations applied to the %s database.\n", cfg.Database.Driver)
			return err
		},
	}
}

func newSeedCommand() *cobra.Command {
	var overwrite bool

	command := &cobra.Command{
		Use:   "seed",
		Short: "Store the default place and unit templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(s *store) error {
				n, err := s.templates.SeedDefaults(cmd.Context(), overwrite)
				if err != nil {
					return fmt.Errorf("SeedDefaults() > %w", err)
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d default template(s) seeded (place: %s, unit: %s).\n",
					n, questionnaire.DefaultPlaceTemplateID, questionnaire.DefaultUnitTemplateID)
				return err
			})
		},
	}
	command.Flags().BoolVar(&overwrite, "overwrite", false, "Replace default templates that already exist")
	return command
}
