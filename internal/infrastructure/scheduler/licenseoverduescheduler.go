package scheduler

import (
	"context"
	"sync"
	"time"

	licenseUsecases "atrium/internal/application/license/usecases"
	"atrium/internal/shared/logger"
)

// LicenseOverdueScheduler runs the daily sweep that flips expired licenses
// to overdue. Access decisions do not depend on it (the evaluator compares
// dates itself); the sweep keeps status usable for reports and billing.
type LicenseOverdueScheduler struct {
	markOverdueUC *licenseUsecases.MarkOverdueLicensesUseCase
	logger        logger.Interface
	stopChan      chan struct{}
	stopOnce      sync.Once
	wg            sync.WaitGroup
	interval      time.Duration
}

// NewLicenseOverdueScheduler creates a new LicenseOverdueScheduler
func NewLicenseOverdueScheduler(
	markOverdueUC *licenseUsecases.MarkOverdueLicensesUseCase,
	logger logger.Interface,
) *LicenseOverdueScheduler {
	return &LicenseOverdueScheduler{
		markOverdueUC: markOverdueUC,
		logger:        logger,
		stopChan:      make(chan struct{}),
		interval:      24 * time.Hour,
	}
}

// Start starts the scheduler
func (s *LicenseOverdueScheduler) Start(ctx context.Context) {
	s.logger.Infow("starting license overdue scheduler", "interval", s.interval)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runLoop(ctx)
	}()
}

// Stop stops the scheduler gracefully
func (s *LicenseOverdueScheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Infow("stopping license overdue scheduler")
		close(s.stopChan)
		s.wg.Wait()
		s.logger.Infow("license overdue scheduler stopped")
	})
}

func (s *LicenseOverdueScheduler) runLoop(ctx context.Context) {
	// Run immediately on startup to clear any backlog from downtime
	s.processOverdueLicenses(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Infow("license overdue scheduler stopped due to context cancellation")
			return
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.processOverdueLicenses(ctx)
		}
	}
}

func (s *LicenseOverdueScheduler) processOverdueLicenses(ctx context.Context) {
	s.logger.Debugw("overdue license sweep started")

	startTime := time.Now()

	markedCount, err := s.markOverdueUC.Execute(ctx)
	if err != nil {
		s.logger.Errorw("overdue license sweep failed",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	if markedCount > 0 {
		s.logger.Infow("overdue licenses processed",
			"count", markedCount,
			"duration", time.Since(startTime),
		)
	} else {
		s.logger.Debugw("no overdue licenses to process",
			"duration", time.Since(startTime),
		)
	}
}
