package scheduler

import (
	"context"
	"sync"
	"time"

	licenseUsecases "atrium/internal/application/license/usecases"
	"atrium/internal/shared/logger"
)

// LicenseWarningScheduler runs the daily expiry warning sweep.
type LicenseWarningScheduler struct {
	warnExpiringUC *licenseUsecases.WarnExpiringLicensesUseCase
	logger         logger.Interface
	stopChan       chan struct{}
	stopOnce       sync.Once
	wg             sync.WaitGroup
	interval       time.Duration
}

// NewLicenseWarningScheduler creates a new LicenseWarningScheduler
func NewLicenseWarningScheduler(
	warnExpiringUC *licenseUsecases.WarnExpiringLicensesUseCase,
	logger logger.Interface,
) *LicenseWarningScheduler {
	return &LicenseWarningScheduler{
		warnExpiringUC: warnExpiringUC,
		logger:         logger,
		stopChan:       make(chan struct{}),
		interval:       24 * time.Hour,
	}
}

// Start starts the scheduler
func (s *LicenseWarningScheduler) Start(ctx context.Context) {
	s.logger.Infow("starting license warning scheduler", "interval", s.interval)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runLoop(ctx)
	}()
}

// Stop stops the scheduler gracefully
func (s *LicenseWarningScheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Infow("stopping license warning scheduler")
		close(s.stopChan)
		s.wg.Wait()
		s.logger.Infow("license warning scheduler stopped")
	})
}

func (s *LicenseWarningScheduler) runLoop(ctx context.Context) {
	s.processWarnings(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Infow("license warning scheduler stopped due to context cancellation")
			return
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.processWarnings(ctx)
		}
	}
}

func (s *LicenseWarningScheduler) processWarnings(ctx context.Context) {
	s.logger.Debugw("license warning sweep started")

	startTime := time.Now()

	sentCount, err := s.warnExpiringUC.Execute(ctx)
	if err != nil {
		s.logger.Errorw("license warning sweep failed",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	if sentCount > 0 {
		s.logger.Infow("license expiry warnings sent",
			"count", sentCount,
			"duration", time.Since(startTime),
		)
	} else {
		s.logger.Debugw("no licenses inside warning window",
			"duration", time.Since(startTime),
		)
	}
}
