package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"coachboard/internal/api"
	"coachboard/internal/metrics"
	"coachboard/internal/session"
	"coachboard/internal/views"
)

const storeCollectInterval = 15 * time.Second

func (a *app) watchCommand() *cobra.Command {
	return authed(&cobra.Command{
		Use:   "watch",
		Short: "Reload the dashboard periodically and expose metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.watch(cmd.Context())
		},
	})
}

func (a *app) watch(ctx context.Context) error {
	logger := a.logger
	logger.Info("Starting dashboard watch",
		"backend", a.cfg.BackendURL,
		"refresh_interval", a.cfg.RefreshInterval.String(),
		"metrics_enabled", a.cfg.MetricsEnabled)

	unsubscribe := a.session.Subscribe(func(s session.State) {
		if !s.Loading {
			logger.Info("Session state changed", "status", s.Status.String(), "error", s.Error)
		}
	})
	defer unsubscribe()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var metricsServer *http.Server
	if a.cfg.MetricsEnabled {
		go func() {
			logger.Info("Starting cookie store collector")
			metrics.StartStoreCollector(ctx, a.store, storeCollectInterval)
		}()

		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", promhttp.Handler())
		metricsServer = &http.Server{
			Addr:    a.cfg.MetricsAddr(),
			Handler: metricsMux,
		}

		go func() {
			logger.Info("Metrics server listening", "addr", metricsServer.Addr)
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("Metrics server failed", "error", err)
			}
		}()
	}

	ticker := time.NewTicker(a.cfg.RefreshInterval)
	defer ticker.Stop()

	a.refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			logger.Info("Shutting down gracefully...")
			if metricsServer != nil {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer shutdownCancel()
				if err := metricsServer.Shutdown(shutdownCtx); err != nil {
					logger.Error("Metrics server shutdown failed", "error", err)
				}
			}
			logger.Info("Watch stopped")
			return nil
		case <-ticker.C:
			a.refresh(ctx)
		}
	}
}

// refresh loads the dashboard once. A 401 means the session expired, so
// the session is re-checked and later loads are skipped until login.
func (a *app) refresh(ctx context.Context) {
	d, err := a.loader.LoadDashboard(ctx)
	switch {
	case err == nil:
		a.logger.Info("Dashboard refreshed",
			"athletes", d.AthleteCount(),
			"active_goals", len(d.ActiveGoals),
			"upcoming_sessions", len(d.UpcomingSessions),
			"completion_rate", d.CompletionRate)
	case errors.Is(err, views.ErrNotAuthenticated):
		a.logger.Warn("Skipping refresh, not logged in")
	case api.IsUnauthorized(err):
		a.logger.Warn("Session expired, re-checking authentication")
		a.session.Init(ctx)
	case ctx.Err() != nil:
		// shutting down
	default:
		a.logger.Error("Dashboard refresh failed", "error", err)
	}
}
