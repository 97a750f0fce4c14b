package feed

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler re-warms the feed cache on a fixed interval so frontend
// requests rarely pay upstream latency.
type Scheduler struct {
	cron *cron.Cron
	svc  *Service
	log  *slog.Logger
}

// NewScheduler creates a Scheduler refreshing the feed every interval.
func NewScheduler(
	svc *Service,
	interval time.Duration,
	log *slog.Logger,
) (*Scheduler, error) {
	c := cron.New()

	s := &Scheduler{
		cron: c,
		svc:  svc,
		log:  log,
	}

	if _, err := c.AddFunc("@every "+interval.String(), s.runRefresh); err != nil {
		return nil, err
	}

	return s, nil
}

// Start begins running the scheduled refresh.
func (s *Scheduler) Start() {
	s.log.Info("feed refresh scheduler started")
	s.cron.Start()
}

// Stop gracefully stops the scheduler, waiting for a running refresh to
// finish.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("feed refresh scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

func (s *Scheduler) runRefresh() {
	ctx := context.Background()
	res := s.svc.Refresh(ctx)
	if res.Degraded() {
		s.log.Warn("scheduled feed refresh degraded", "reason", res.Reason)
		return
	}
	s.log.Info("scheduled feed refresh complete", "count", len(res.Products))
}
