package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) dashboardCommand() *cobra.Command {
	return authed(&cobra.Command{
		Use:   "dashboard",
		Short: "Show the coach dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.loader.LoadDashboard(cmd.Context())
			if err != nil {
				return err
			}
			renderDashboard(cmd.OutOrStdout(), d)
			return nil
		},
	})
}

func (a *app) rosterCommand() *cobra.Command {
	var search, sector string

	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Show athletes with their goals and records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.loader.LoadRoster(cmd.Context())
			if err != nil {
				return err
			}
			renderRoster(cmd.OutOrStdout(), r, r.Filter(search, sector))
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Search by first or last name")
	cmd.Flags().StringVar(&sector, "sector", "", "Only athletes in this sector")
	return authed(cmd)
}

func (a *app) programCommand() *cobra.Command {
	var athleteID string

	cmd := &cobra.Command{
		Use:   "program <program-id>",
		Short: "Show a training program with its sessions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if athleteID == "" {
				return errors.New("athlete id must be provided via --athlete flag")
			}
			d, err := a.loader.LoadProgramDetail(cmd.Context(), athleteID, args[0])
			if err != nil {
				return err
			}
			renderProgram(cmd.OutOrStdout(), d)
			return nil
		},
	}

	cmd.Flags().StringVar(&athleteID, "athlete", "", "Athlete the program belongs to")
	return authed(cmd)
}

func (a *app) athleteCommand() *cobra.Command {
	return authed(&cobra.Command{
		Use:   "athlete <athlete-id>",
		Short: "Show an athlete's profile, analytics, goals and records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.loader.LoadAthleteDetail(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("athlete %s: %w", args[0], err)
			}
			renderAthlete(cmd.OutOrStdout(), d)
			return nil
		},
	})
}
