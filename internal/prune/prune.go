// Package prune periodically removes cleanup activities older than the
// feed's 24-hour retention window, along with their likes and comments.
package prune

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ecotrack/backend/internal/logger"
	"github.com/ecotrack/backend/internal/store"
)

const (
	// RetentionWindow is how long an activity stays in the feed
	RetentionWindow = 24 * time.Hour

	// DefaultInterval is the default sweep cadence
	DefaultInterval = 10 * time.Minute
)

// Service sweeps expired feed activities on an interval
type Service struct {
	store    store.Store
	ctx      context.Context
	cancel   context.CancelFunc
	interval time.Duration
}

// NewService creates a prune service. A non-positive interval falls back
// to the default.
func NewService(st store.Store, interval time.Duration) *Service {
	if interval <= 0 {
		interval = DefaultInterval
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		store:    st,
		ctx:      ctx,
		cancel:   cancel,
		interval: interval,
	}
}

// Start begins the periodic sweep. The first sweep runs immediately.
func (s *Service) Start() {
	logger.Log.Info("starting feed prune service",
		zap.Duration("interval", s.interval),
		zap.Duration("retention", RetentionWindow),
	)
	go s.run()
}

// Stop stops the sweep loop
func (s *Service) Stop() {
	logger.Log.Info("stopping feed prune service")
	s.cancel()
}

func (s *Service) run() {
	s.Sweep(s.ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep(s.ctx)
		case <-s.ctx.Done():
			return
		}
	}
}

// Sweep deletes every activity cleaned strictly more than 24 hours ago.
// A failed sweep is logged and retried on the next tick.
func (s *Service) Sweep(ctx context.Context) {
	start := time.Now()
	cutoff := start.UTC().Add(-RetentionWindow)

	removed, err := s.store.PruneActivities(ctx, cutoff)
	if err != nil {
		logger.ErrorWithFields("feed prune sweep failed", err)
		return
	}
	if removed == 0 {
		return
	}

	logger.Log.Info("feed prune sweep completed",
		zap.Int64("removed", removed),
		zap.Time("cutoff", cutoff),
		zap.Duration("took", time.Since(start)),
	)
}
