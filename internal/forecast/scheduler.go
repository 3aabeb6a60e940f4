// internal/forecast/scheduler.go
package forecast

import (
	"context"
	"time"

	"github.com/oogway7h/ShopIA-web/internal/common/logger"
	"github.com/oogway7h/ShopIA-web/internal/common/metrics"
)

// Scheduler runs the forecast service on a fixed interval. Run blocks until
// the context is canceled; start it in its own goroutine.
type Scheduler struct {
	svc      *Service
	interval time.Duration
	log      logger.Logger
}

func NewScheduler(svc *Service, interval time.Duration, log logger.Logger) *Scheduler {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &Scheduler{svc: svc, interval: interval, log: log}
}

func (s *Scheduler) Run(ctx context.Context) {
	s.log.Info("forecast scheduler started", map[string]interface{}{
		"interval": s.interval.String(),
	})
	s.runOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.log.Info("forecast scheduler stopped", nil)
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if _, err := s.svc.Run(ctx); err != nil {
		metrics.ForecastRuns.WithLabelValues("failure").Inc()
		s.log.WithError(err).Error("forecast run failed", nil)
		return
	}
	metrics.ForecastRuns.WithLabelValues("success").Inc()
}
