package console

import (
	"context"
	"log/slog"
	"time"
)

// sessionSweeper ends sessions that are expired or gone from the store.
type sessionSweeper interface {
	Sweep(ctx context.Context, ids ...string) int
}

// sweepSessions runs the sweeper every interval until ctx is done. Each tracked
// func reports the session ids holding per-session state in this process.
func sweepSessions(ctx context.Context, every time.Duration, sweeper sessionSweeper, logger *slog.Logger, tracked ...func() []string) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		var ids []string
		for _, list := range tracked {
			ids = append(ids, list()...)
		}
		if ended := sweeper.Sweep(ctx, ids...); ended > 0 {
			logger.Info("ended idle sessions", slog.Int("count", ended))
		}
	}
}
