package metrics

import (
	"context"
	"log/slog"
	"time"
)

// Store is the cookie store surface the collector needs
type Store interface {
	PurgeExpired() (int, error)
	Count() (int, error)
}

// StartStoreCollector starts a loop that periodically purges expired
// cookies and records how many remain. It blocks until ctx is done.
func StartStoreCollector(ctx context.Context, store Store, interval time.Duration) {
	logger := slog.Default()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Collect once immediately
	collectStore(store, logger)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Cookie store collector stopping")
			return
		case <-ticker.C:
			collectStore(store, logger)
		}
	}
}

func collectStore(store Store, logger *slog.Logger) {
	if purged, err := store.PurgeExpired(); err != nil {
		logger.Error("Failed to purge expired cookies", "error", err)
	} else if purged > 0 {
		logger.Debug("Purged expired cookies", "count", purged)
	}

	if count, err := store.Count(); err != nil {
		logger.Error("Failed to count cookies", "error", err)
	} else {
		StoreCookies.Set(float64(count))
	}
}
