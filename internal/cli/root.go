package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"coachboard/internal/api"
	"coachboard/internal/config"
	"coachboard/internal/cookiestore"
	"coachboard/internal/session"
	"coachboard/internal/views"
)

// annotation marking commands that need a logged-in session
const requiresAuth = "requires_auth"

var errNotLoggedIn = errors.New("not logged in, run 'coachboard login' first")

// app is the per-invocation wiring shared by every command
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   *cookiestore.Store
	client  *api.Client
	session *session.Manager
	loader  *views.Loader
}

var (
	green  = color.New(color.FgGreen).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

// NewRootCommand builds the command tree. The returned cleanup releases the
// session store and must be called once the command has run.
func NewRootCommand() (*cobra.Command, func() error) {
	a := &app{}

	root := &cobra.Command{
		Use:           "coachboard",
		Short:         "Training dashboard for coaches",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.AddCommand(
		a.loginCommand(),
		a.logoutCommand(),
		a.whoamiCommand(),
		a.registerCommand(),
		a.healthCommand(),
		a.athletesCommand(),
		a.goalsCommand(),
		a.programsCommand(),
		a.sessionsCommand(),
		a.exercisesCommand(),
		a.assessmentsCommand(),
		a.recordsCommand(),
		a.templatesCommand(),
		a.analyticsCommand(),
		a.dashboardCommand(),
		a.rosterCommand(),
		a.programCommand(),
		a.athleteCommand(),
		a.exportCommand(),
		a.watchCommand(),
	)

	return root, a.close
}

// Execute runs the CLI and returns the process exit code
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root, cleanup := NewRootCommand()
	err := root.ExecuteContext(ctx)
	if cerr := cleanup(); cerr != nil {
		slog.Error("Failed to close session store", "error", cerr)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", red("Error:"), err)
		return 1
	}
	return 0
}

// setup loads configuration, opens the credential store and resolves the
// session before any command runs
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	a.cfg = cfg

	if cmd.Name() == "watch" {
		a.logger = newLogger(cmd.OutOrStdout(), "json", cfg.LogLevel)
	} else {
		a.logger = newLogger(cmd.ErrOrStderr(), cfg.LogFormat, cfg.LogLevel)
	}
	slog.SetDefault(a.logger)

	store, err := cookiestore.Open(cfg.CookieStorePath)
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}
	a.store = store

	a.client = api.New(cfg.BackendURL, api.WithJar(store), api.WithLogger(a.logger))
	a.session = session.NewManager(a.client, a.logger)
	a.loader = views.NewLoader(a.client, a.session, a.notifier(cmd), a.logger)

	a.session.Init(cmd.Context())

	if cmd.Annotations[requiresAuth] == "true" {
		state := a.session.State()
		if state.Error != "" {
			return errors.New(state.Error)
		}
		if !state.IsAuthenticated() {
			return errNotLoggedIn
		}
	}
	return nil
}

func (a *app) close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}

// notifier prints view failures for the user and logs the cause
func (a *app) notifier(cmd *cobra.Command) views.Notifier {
	logged := views.LogNotifier{Logger: a.logger}
	return views.NotifierFunc(func(message string, err error) {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", red("✗"), message)
		logged.Notify(message, err)
	})
}

func newLogger(w io.Writer, format, level string) *slog.Logger {
	logLevel := slog.LevelInfo
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func authed(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[requiresAuth] = "true"
	for _, sub := range cmd.Commands() {
		authed(sub)
	}
	return cmd
}
