package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/imjang/internal/kakao"
)

func newSearchCommand() *cobra.Command {
	var (
		page   int
		save   int
		userID string
	)

	command := &cobra.Command{
		Use:   "search <query>",
		Short: "Search places with the Kakao Local API",
		Long:  "Search places with the Kakao Local API. With --save N, the N-th result is saved as a place of --user.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			client := kakao.NewClient(cfg.Kakao)
			defer func() { _ = client.Close() }()

			response, err := client.SearchKeyword(cmd.Context(), strings.Join(args, " "), page)
			if err != nil {
				return fmt.Errorf("SearchKeyword() > %w", err)
			}
			if err := writeDocuments(cmd.OutOrStdout(), response); err != nil {
				return err
			}
			if save == 0 {
				return nil
			}
			if save < 0 || save > len(response.Documents) {
				return fmt.Errorf("--save must be between 1 and %d", len(response.Documents))
			}

			return withStore(func(s *store) error {
				user, err := requireUser(userID)
				if err != nil {
					return err
				}
				p, err := s.places.SavePlace(cmd.Context(), response.Documents[save-1].PlaceInput(), user)
				if err != nil {
					return fmt.Errorf("SavePlace() > %w", err)
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "Saved %s as place %s\n", p.Name, p.ID)
				return err
			})
		},
	}
	command.Flags().IntVar(&page, "page", 1, "Result page, from 1")
	command.Flags().IntVar(&save, "save", 0, "Save the N-th result as a place")
	command.Flags().StringVar(&userID, "user", "", "ID of the user who saves the place")
	return command
}

func writeDocuments(w io.Writer, response kakao.SearchResponse) error {
	if len(response.Documents) == 0 {
		_, err := fmt.Fprintln(w, "No places found.")
		return err
	}
	for i, d := range response.Documents {
		address := d.RoadAddressName
		if address == "" {
			address = d.AddressName
		}
		if _, err := fmt.Fprintf(w, "%2d. %s (%s) %s\n", i+1, d.PlaceName, d.ID, address); err != nil {
			return err
		}
	}
	if !response.Meta.IsEnd {
		_, err := fmt.Fprintf(w, "%d of %d result(s) shown; use --page for more.\n", len(response.Documents), response.Meta.PageableCount)
		return err
	}
	return nil
}
