package queue

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusly/lms-platform/internal/core/domain"
)

const (
	defaultSweepInterval = time.Minute
	sweepBatch           = 100
)

// OrphanSource lists orphans waiting for reconciliation.
type OrphanSource interface {
	Pending(ctx context.Context, limit int) ([]*domain.OrphanedAccount, error)
}

// Sweeper periodically lists the orphan ledger and feeds the dispatcher.
type Sweeper struct {
	source     OrphanSource
	dispatcher *Dispatcher
	interval   time.Duration
	log        zerolog.Logger
}

func NewSweeper(source OrphanSource, dispatcher *Dispatcher, interval time.Duration, log zerolog.Logger) *Sweeper {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	return &Sweeper{source: source, dispatcher: dispatcher, interval: interval, log: log}
}

// Run sweeps once immediately and then on every interval until ctx is done.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		s.SweepOnce(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// SweepOnce enqueues one batch and reports how many entries were accepted.
func (s *Sweeper) SweepOnce(ctx context.Context) int {
	orphans, err := s.source.Pending(ctx, sweepBatch)
	if err != nil {
		s.log.Error().Err(err).Msg("orphan sweep: list failed")
		return 0
	}

	queued := 0
	for _, o := range orphans {
		if s.dispatcher.Enqueue(o) {
			queued++
		}
	}
	if len(orphans) > 0 {
		s.log.Info().Int("found", len(orphans)).Int("queued", queued).Msg("orphan sweep")
	}
	return queued
}
