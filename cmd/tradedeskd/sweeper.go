package main

import (
	"context"
	"time"

	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/domain"
	log "github.com/sirupsen/logrus"
)

type tradeSweeper interface {
	SweepExpiredTrades(ctx context.Context, league string) ([]*domain.Trade, error)
}

// sweepPeriodically expires the overdue trades of every league at each
// interval until ctx is done.
func sweepPeriodically(ctx context.Context, svc tradeSweeper, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			expired, err := svc.SweepExpiredTrades(ctx, "")
			if err != nil {
				log.WithError(err).Warn("sweeper: failed to expire overdue trades")
				continue
			}
			if len(expired) > 0 {
				log.Debugf("sweeper: expired %d trades", len(expired))
			}
		}
	}
}
