package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"coachboard/internal/views"
)

// snapshot is the TOML document written by export. Records keep the
// backend's snake_case keys; null fields are left out.
type snapshot struct {
	ExportedAt  time.Time        `toml:"exported_at"`
	Backend     string           `toml:"backend"`
	Summary     snapshotSummary  `toml:"summary"`
	Athletes    []map[string]any `toml:"athletes"`
	Goals       []map[string]any `toml:"goals"`
	Sessions    []map[string]any `toml:"sessions"`
	Assessments []map[string]any `toml:"assessments"`
}

type snapshotSummary struct {
	Athletes         int    `toml:"athletes"`
	ActiveGoals      int    `toml:"active_goals"`
	UpcomingSessions int    `toml:"upcoming_sessions"`
	CompletionRate   int    `toml:"completion_rate"`
	LatestAssessment string `toml:"latest_assessment,omitempty"`
}

// records converts typed values to generic tables through their JSON form
func records(v any) ([]map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out []map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func newSnapshot(d *views.Dashboard, backend string, now time.Time) (*snapshot, error) {
	s := &snapshot{
		ExportedAt: now.UTC().Truncate(time.Second),
		Backend:    backend,
		Summary: snapshotSummary{
			Athletes:         d.AthleteCount(),
			ActiveGoals:      len(d.ActiveGoals),
			UpcomingSessions: len(d.UpcomingSessions),
			CompletionRate:   d.CompletionRate,
		},
	}
	if d.LatestAssessment != nil {
		s.Summary.LatestAssessment = d.LatestAssessment.ID
	}

	var err error
	if s.Athletes, err = records(d.Athletes); err != nil {
		return nil, fmt.Errorf("failed to convert athletes: %w", err)
	}
	if s.Goals, err = records(d.Goals); err != nil {
		return nil, fmt.Errorf("failed to convert goals: %w", err)
	}
	if s.Sessions, err = records(d.Sessions); err != nil {
		return nil, fmt.Errorf("failed to convert sessions: %w", err)
	}
	if s.Assessments, err = records(d.Assessments); err != nil {
		return nil, fmt.Errorf("failed to convert assessments: %w", err)
	}
	return s, nil
}

func (a *app) exportCommand() *cobra.Command {
	return authed(&cobra.Command{
		Use:   "export [file]",
		Short: "Write the dashboard datasets to a TOML file (stdout by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.loader.LoadDashboard(cmd.Context())
			if err != nil {
				return err
			}

			snap, err := newSnapshot(d, a.cfg.BackendURL, time.Now())
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Create(args[0])
				if err != nil {
					return fmt.Errorf("failed to create export file: %w", err)
				}
				defer f.Close()
				w = f
			}

			if err := toml.NewEncoder(w).Encode(snap); err != nil {
				return fmt.Errorf("failed to encode snapshot: %w", err)
			}

			if len(args) == 1 && args[0] != "-" {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s Exported %d athletes, %d goals, %d sessions, %d assessments to %s\n",
					green("✓"), len(snap.Athletes), len(snap.Goals), len(snap.Sessions), len(snap.Assessments), args[0])
			}
			return nil
		},
	})
}
