package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// StartReconcileSweep runs a periodic full reconciliation of all package
// totals. It is the safety net behind the targeted reconcile jobs: even a
// job lost to a redis outage converges within one sweep interval.
func StartReconcileSweep(ctx context.Context, rec *Reconciler, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("reconcile sweep shutting down")
				return
			case <-ticker.C:
				start := time.Now()
				if err := rec.SweepAll(ctx); err != nil {
					log.Error().Err(err).Msg("reconcile sweep failed")
					continue
				}
				log.Info().Dur("took", time.Since(start)).Msg("reconcile sweep completed")
			}
		}
	}()
}
