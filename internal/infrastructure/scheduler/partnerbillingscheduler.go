package scheduler

import (
	"context"
	"sync"
	"time"

	billingUsecases "atrium/internal/application/billing/usecases"
	"atrium/internal/shared/logger"
)

// PartnerBillingScheduler refreshes partner billing snapshots for the
// current month. The recompute is an upsert on the period key, so rerunning
// within the same month only updates the existing rows.
type PartnerBillingScheduler struct {
	recomputeUC       *billingUsecases.RecomputePartnerBillingUseCase
	platformCompanyID uint
	logger            logger.Interface
	stopChan          chan struct{}
	stopOnce          sync.Once
	wg                sync.WaitGroup
	interval          time.Duration
}

// NewPartnerBillingScheduler creates a new PartnerBillingScheduler
func NewPartnerBillingScheduler(
	recomputeUC *billingUsecases.RecomputePartnerBillingUseCase,
	platformCompanyID uint,
	logger logger.Interface,
) *PartnerBillingScheduler {
	return &PartnerBillingScheduler{
		recomputeUC:       recomputeUC,
		platformCompanyID: platformCompanyID,
		logger:            logger,
		stopChan:          make(chan struct{}),
		interval:          24 * time.Hour,
	}
}

// Start starts the scheduler
func (s *PartnerBillingScheduler) Start(ctx context.Context) {
	s.logger.Infow("starting partner billing scheduler", "interval", s.interval)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runLoop(ctx)
	}()
}

// Stop stops the scheduler gracefully
func (s *PartnerBillingScheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Infow("stopping partner billing scheduler")
		close(s.stopChan)
		s.wg.Wait()
		s.logger.Infow("partner billing scheduler stopped")
	})
}

func (s *PartnerBillingScheduler) runLoop(ctx context.Context) {
	s.recomputeSnapshots(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Infow("partner billing scheduler stopped due to context cancellation")
			return
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.recomputeSnapshots(ctx)
		}
	}
}

func (s *PartnerBillingScheduler) recomputeSnapshots(ctx context.Context) {
	s.logger.Debugw("partner billing recompute started")

	startTime := time.Now()

	output, err := s.recomputeUC.Execute(ctx, billingUsecases.RecomputePartnerBillingInput{
		RequesterCompanyID: s.platformCompanyID,
	})
	if err != nil {
		s.logger.Errorw("partner billing recompute failed",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	s.logger.Infow("partner billing snapshots refreshed",
		"period_start", output.PeriodStart.String(),
		"period_end", output.PeriodEnd.String(),
		"snapshots", output.Created,
		"duration", time.Since(startTime),
	)
}
