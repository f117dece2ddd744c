// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"context"
	"time"

	"github.com/pageza/recipebox/backend/internal/logger"
)

// TrashPurger deletes trashed recipes older than a retention period.
type TrashPurger interface {
	PurgeTrash(ctx context.Context, olderThan time.Duration) (int64, error)
}

// Purger empties the recipe trash on a fixed interval.
type Purger struct {
	recipes   TrashPurger
	interval  time.Duration
	retention time.Duration
}

func NewPurger(recipes TrashPurger, interval, retention time.Duration) *Purger {
	return &Purger{recipes: recipes, interval: interval, retention: retention}
}

// Run purges every interval until ctx is cancelled. Failures are logged and
// retried on the next tick.
func (p *Purger) Run(ctx context.Context) {
	log := logger.For("scheduler")
	if p.interval <= 0 {
		log.Warn("Trash purge disabled: interval is not positive")
		return
	}
	log.Infof("Started background scheduler: trash will be purged every %s", p.interval)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info("Background scheduler stopped")
			return
		case <-ticker.C:
			_, _ = p.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single purge.
func (p *Purger) RunOnce(ctx context.Context) (int64, error) {
	log := logger.For("scheduler")
	n, err := p.recipes.PurgeTrash(ctx, p.retention)
	if err != nil {
		log.WithError(err).Error("Error during scheduled trash purge")
		return 0, err
	}
	if n > 0 {
		log.Infof("Scheduled purge: deleted %d recipes from trash", n)
	} else {
		log.Debug("Scheduled purge: trash was empty")
	}
	return n, nil
}
