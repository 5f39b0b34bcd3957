package session

import (
	"context"
	"time"

	"github.com/dmitrijs2005/siteback/internal/logging"
)

// RunSweeper calls store.Sweep every interval until ctx is done.
func RunSweeper(ctx context.Context, store Store, interval time.Duration, l logging.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := store.Sweep(ctx)
			if err != nil {
				l.Error(ctx, "session sweep failed", "error", err)
				continue
			}
			if n > 0 {
				l.Debug(ctx, "expired sessions removed", "count", n)
			}
		}
	}
}
