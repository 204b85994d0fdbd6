package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"coachboard/internal/api"
)

// readDocument reads a JSON document given inline, as @file or as - for stdin
func readDocument(cmd *cobra.Command, data string) ([]byte, error) {
	switch {
	case data == "":
		return nil, errors.New("a JSON document must be provided via --data")
	case data == "-":
		return io.ReadAll(cmd.InOrStdin())
	case strings.HasPrefix(data, "@"):
		return os.ReadFile(strings.TrimPrefix(data, "@"))
	}
	return []byte(data), nil
}

func decodeDocument(cmd *cobra.Command, data string, v any) error {
	raw, err := readDocument(cmd, data)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid document: %w", err)
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func createCommand[In, T any](noun string, create func(context.Context, In) (*T, error)) *cobra.Command {
	var data string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a " + noun + " from a JSON document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var in In
			if err := decodeDocument(cmd, data, &in); err != nil {
				return err
			}
			if err := api.Validate(in); err != nil {
				return fmt.Errorf("invalid %s: %w", noun, err)
			}
			out, err := create(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", noun, err)
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVar(&data, "data", "", "JSON document, @file or - for stdin")
	return cmd
}

func updateCommand[Upd, T any](noun string, update func(context.Context, string, Upd) (*T, error)) *cobra.Command {
	var data string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a " + noun + " with a partial JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch Upd
			if err := decodeDocument(cmd, data, &patch); err != nil {
				return err
			}
			out, err := update(cmd.Context(), args[0], patch)
			if err != nil {
				return fmt.Errorf("failed to update %s: %w", noun, err)
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVar(&data, "data", "", "JSON document, @file or - for stdin")
	return cmd
}

func deleteCommand(noun string, del func(context.Context, string) error) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a " + noun,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := del(cmd.Context(), args[0]); err != nil {
				if api.IsNotFound(err) {
					return fmt.Errorf("%s %s not found", noun, args[0])
				}
				return fmt.Errorf("failed to delete %s: %w", noun, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Deleted %s %s\n", green("✓"), noun, args[0])
			return nil
		},
	}
}

func listCommand[T any](noun string, list func(context.Context) ([]T, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List " + noun + "s",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := list(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list %ss: %w", noun, err)
			}
			if items == nil {
				items = []T{}
			}
			return printJSON(cmd.OutOrStdout(), items)
		},
	}
}

func (a *app) athletesCommand() *cobra.Command {
	var filter api.AthleteFilter

	cmd := &cobra.Command{Use: "athletes", Short: "Manage athletes"}

	list := listCommand("athlete", func(ctx context.Context) ([]api.Athlete, error) {
		return a.client.ListAthletes(ctx, filter)
	})
	list.Flags().StringVar(&filter.Name, "name", "", "Filter by name")
	list.Flags().StringVar(&filter.Sector, "sector", "", "Filter by sector")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one athlete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			athlete, err := a.client.GetAthlete(cmd.Context(), args[0])
			if err != nil {
				if api.IsNotFound(err) {
					return fmt.Errorf("athlete %s not found", args[0])
				}
				return fmt.Errorf("failed to get athlete: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), athlete)
		},
	}

	cmd.AddCommand(
		list,
		get,
		createCommand("athlete", func(ctx context.Context, in api.AthleteInput) (*api.Athlete, error) {
			return a.client.CreateAthlete(ctx, in)
		}),
		updateCommand("athlete", func(ctx context.Context, id string, in api.AthleteUpdate) (*api.Athlete, error) {
			return a.client.UpdateAthlete(ctx, id, in)
		}),
		deleteCommand("athlete", func(ctx context.Context, id string) error {
			return a.client.DeleteAthlete(ctx, id)
		}),
	)
	return authed(cmd)
}

func (a *app) goalsCommand() *cobra.Command {
	var athleteID string

	cmd := &cobra.Command{Use: "goals", Short: "Manage goals"}

	list := listCommand("goal", func(ctx context.Context) ([]api.Goal, error) {
		return a.client.ListGoals(ctx, athleteID)
	})
	list.Flags().StringVar(&athleteID, "athlete", "", "Filter by athlete id")

	cmd.AddCommand(
		list,
		createCommand("goal", func(ctx context.Context, in api.GoalInput) (*api.Goal, error) {
			return a.client.CreateGoal(ctx, in)
		}),
		updateCommand("goal", func(ctx context.Context, id string, in api.GoalUpdate) (*api.Goal, error) {
			return a.client.UpdateGoal(ctx, id, in)
		}),
		deleteCommand("goal", func(ctx context.Context, id string) error {
			return a.client.DeleteGoal(ctx, id)
		}),
	)
	return authed(cmd)
}

func (a *app) programsCommand() *cobra.Command {
	var athleteID string

	cmd := &cobra.Command{Use: "programs", Short: "Manage training programs"}

	list := listCommand("program", func(ctx context.Context) ([]api.Program, error) {
		return a.client.ListPrograms(ctx, athleteID)
	})
	list.Flags().StringVar(&athleteID, "athlete", "", "Filter by athlete id")

	cmd.AddCommand(
		list,
		createCommand("program", func(ctx context.Context, in api.ProgramInput) (*api.Program, error) {
			return a.client.CreateProgram(ctx, in)
		}),
		updateCommand("program", func(ctx context.Context, id string, in api.ProgramUpdate) (*api.Program, error) {
			return a.client.UpdateProgram(ctx, id, in)
		}),
		deleteCommand("program", func(ctx context.Context, id string) error {
			return a.client.DeleteProgram(ctx, id)
		}),
	)
	return authed(cmd)
}

func (a *app) sessionsCommand() *cobra.Command {
	var filter api.SessionFilter

	cmd := &cobra.Command{Use: "sessions", Short: "Manage training sessions"}

	list := listCommand("session", func(ctx context.Context) ([]api.Session, error) {
		return a.client.ListSessions(ctx, filter)
	})
	list.Flags().StringVar(&filter.AthleteID, "athlete", "", "Filter by athlete id")
	list.Flags().StringVar(&filter.ProgramID, "program", "", "Filter by program id")
	list.Flags().StringVar(&filter.StartDate, "from", "", "Only sessions starting on or after this date")
	list.Flags().StringVar(&filter.EndDate, "to", "", "Only sessions starting on or before this date")

	cmd.AddCommand(
		list,
		createCommand("session", func(ctx context.Context, in api.SessionInput) (*api.Session, error) {
			return a.client.CreateSession(ctx, in)
		}),
		updateCommand("session", func(ctx context.Context, id string, in api.SessionUpdate) (*api.Session, error) {
			return a.client.UpdateSession(ctx, id, in)
		}),
		deleteCommand("session", func(ctx context.Context, id string) error {
			return a.client.DeleteSession(ctx, id)
		}),
	)
	return authed(cmd)
}

func (a *app) exercisesCommand() *cobra.Command {
	var category string

	cmd := &cobra.Command{Use: "exercises", Short: "Manage the exercise catalog"}

	list := listCommand("exercise", func(ctx context.Context) ([]api.Exercise, error) {
		return a.client.ListExercises(ctx, category)
	})
	list.Flags().StringVar(&category, "category", "", "Filter by category")

	cmd.AddCommand(
		list,
		createCommand("exercise", func(ctx context.Context, in api.ExerciseInput) (*api.Exercise, error) {
			return a.client.CreateExercise(ctx, in)
		}),
		updateCommand("exercise", func(ctx context.Context, id string, in api.ExerciseUpdate) (*api.Exercise, error) {
			return a.client.UpdateExercise(ctx, id, in)
		}),
		deleteCommand("exercise", func(ctx context.Context, id string) error {
			return a.client.DeleteExercise(ctx, id)
		}),
	)
	return authed(cmd)
}

func (a *app) assessmentsCommand() *cobra.Command {
	var athleteID string

	cmd := &cobra.Command{Use: "assessments", Short: "Manage physical assessments"}

	list := listCommand("assessment", func(ctx context.Context) ([]api.PhysicalAssessment, error) {
		return a.client.ListAssessments(ctx, athleteID)
	})
	list.Flags().StringVar(&athleteID, "athlete", "", "Filter by athlete id")

	cmd.AddCommand(
		list,
		createCommand("assessment", func(ctx context.Context, in api.AssessmentInput) (*api.PhysicalAssessment, error) {
			return a.client.CreateAssessment(ctx, in)
		}),
		updateCommand("assessment", func(ctx context.Context, id string, in api.AssessmentUpdate) (*api.PhysicalAssessment, error) {
			return a.client.UpdateAssessment(ctx, id, in)
		}),
		deleteCommand("assessment", func(ctx context.Context, id string) error {
			return a.client.DeleteAssessment(ctx, id)
		}),
	)
	return authed(cmd)
}

func (a *app) recordsCommand() *cobra.Command {
	var athleteID string

	cmd := &cobra.Command{Use: "records", Short: "Manage personal records"}

	list := listCommand("record", func(ctx context.Context) ([]api.PersonalRecord, error) {
		return a.client.ListRecords(ctx, athleteID)
	})
	list.Flags().StringVar(&athleteID, "athlete", "", "Filter by athlete id")

	cmd.AddCommand(
		list,
		createCommand("record", func(ctx context.Context, in api.RecordInput) (*api.PersonalRecord, error) {
			return a.client.CreateRecord(ctx, in)
		}),
		updateCommand("record", func(ctx context.Context, id string, in api.RecordUpdate) (*api.PersonalRecord, error) {
			return a.client.UpdateRecord(ctx, id, in)
		}),
		deleteCommand("record", func(ctx context.Context, id string) error {
			return a.client.DeleteRecord(ctx, id)
		}),
	)
	return authed(cmd)
}

func (a *app) templatesCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "templates", Short: "Manage session templates"}

	cmd.AddCommand(
		listCommand("template", func(ctx context.Context) ([]api.SessionTemplate, error) {
			return a.client.ListSessionTemplates(ctx)
		}),
		createCommand("template", func(ctx context.Context, in api.TemplateInput) (*api.SessionTemplate, error) {
			return a.client.CreateSessionTemplate(ctx, in)
		}),
		updateCommand("template", func(ctx context.Context, id string, in api.TemplateUpdate) (*api.SessionTemplate, error) {
			return a.client.UpdateSessionTemplate(ctx, id, in)
		}),
		deleteCommand("template", func(ctx context.Context, id string) error {
			return a.client.DeleteSessionTemplate(ctx, id)
		}),
	)
	return authed(cmd)
}

func (a *app) analyticsCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "analytics", Short: "Server-side athlete analytics"}

	overview := &cobra.Command{
		Use:   "overview <athlete-id>",
		Short: "Weekly volume, intensity and upcoming events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			overview, err := a.client.AthleteOverview(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to load overview: %w", err)
			}
			renderOverview(cmd.OutOrStdout(), overview)
			return nil
		},
	}

	assessments := &cobra.Command{
		Use:   "assessments <athlete-id>",
		Short: "Assessment history per dimension",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			series, err := a.client.AthleteAssessmentSeries(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to load assessment series: %w", err)
			}
			renderSeries(cmd.OutOrStdout(), series)
			return nil
		},
	}

	cmd.AddCommand(overview, assessments)
	return authed(cmd)
}
