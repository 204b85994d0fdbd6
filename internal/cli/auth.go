package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"coachboard/internal/api"
)

const passwordEnv = "COACHBOARD_PASSWORD"

func (a *app) loginCommand() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and keep the session for later commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				return errors.New("email must be provided via --email flag")
			}
			if password == "" {
				password = os.Getenv(passwordEnv)
			}
			if password == "" {
				return fmt.Errorf("password must be provided via --password flag or %s", passwordEnv)
			}

			if err := a.session.Login(cmd.Context(), email, password); err != nil {
				return errors.New(a.session.State().Error)
			}

			user := a.session.User()
			fmt.Fprintf(cmd.OutOrStdout(), "%s Logged in as %s (%s)\n", green("✓"), bold(user.FullName()), user.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password (or set "+passwordEnv+")")
	return cmd
}

func (a *app) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.session.Logout(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "%s Logged out\n", green("✓"))
			return nil
		},
	}
}

func (a *app) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			state := a.session.State()
			if state.Error != "" {
				return errors.New(state.Error)
			}
			if !state.IsAuthenticated() {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
				return nil
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n", bold(state.User.FullName()))
			fmt.Fprintf(out, "%s: %s\n", cyan("Email"), state.User.Email)
			fmt.Fprintf(out, "%s: %s\n", cyan("Role"), state.User.Role)
			fmt.Fprintf(out, "%s: %s\n", cyan("ID"), state.User.ID)
			return nil
		},
	}
}

func (a *app) registerCommand() *cobra.Command {
	var in api.RegisterRequest
	var role string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if in.Email == "" || in.FirstName == "" || in.LastName == "" {
				return errors.New("--email, --first-name and --last-name are required")
			}
			in.Role = api.Role(role)
			if in.Role != api.RoleCoach && in.Role != api.RoleAthlete {
				return fmt.Errorf("invalid role %q (expected coach or athlete)", role)
			}
			if in.Password == "" {
				in.Password = os.Getenv(passwordEnv)
			}
			if in.Password == "" {
				return fmt.Errorf("password must be provided via --password flag or %s", passwordEnv)
			}

			user, err := a.client.Register(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("registration failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Registered %s (%s)\n", green("✓"), bold(user.FullName()), user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&in.Password, "password", "", "Account password (or set "+passwordEnv+")")
	cmd.Flags().StringVar(&in.FirstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&in.LastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&role, "role", string(api.RoleCoach), "Account role (coach or athlete)")
	return cmd
}

func (a *app) healthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the backend is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := a.client.Health(cmd.Context())
			if err != nil {
				return fmt.Errorf("health check failed: %w", err)
			}
			if err := a.store.Health(); err != nil {
				return fmt.Errorf("session store unhealthy: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", green("✓"), status.Message, status.Status)
			return nil
		},
	}
}
