package usecases

import (
	"context"
	"fmt"

	"atrium/internal/domain/company"
	apperrors "atrium/internal/shared/errors"
	"atrium/internal/shared/logger"
)

// AccessBlockEventPublisher announces parent block changes so affected
// sessions can react immediately. Delivery is best-effort.
type AccessBlockEventPublisher interface {
	PublishAccessBlockChanged(ctx context.Context, comp *company.Company, blocked bool) error
}

type transactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// SetParentBlockInput carries the block/unblock request.
type SetParentBlockInput struct {
	RequesterCompanyID uint
	TargetCompanyID    uint
	Blocked            bool
}

// SetParentBlockUseCase lets a whitelabel partner block or unblock one of
// its child companies. The flag feeds the access cascade; it does not touch
// licenses.
type SetParentBlockUseCase struct {
	companyRepo    company.Repository
	eventPublisher AccessBlockEventPublisher
	txMgr          transactionManager
	logger         logger.Interface
}

// NewSetParentBlockUseCase creates a new SetParentBlockUseCase
func NewSetParentBlockUseCase(
	companyRepo company.Repository,
	eventPublisher AccessBlockEventPublisher,
	txMgr transactionManager,
	logger logger.Interface,
) *SetParentBlockUseCase {
	return &SetParentBlockUseCase{
		companyRepo:    companyRepo,
		eventPublisher: eventPublisher,
		txMgr:          txMgr,
		logger:         logger,
	}
}

// Execute applies the block flag. The requester must be the target's parent.
// The read-check-write runs in one transaction so a concurrent block on the
// same company cannot interleave; the event fires only after commit.
func (uc *SetParentBlockUseCase) Execute(ctx context.Context, input SetParentBlockInput) (*company.Company, error) {
	var target *company.Company
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		target, err = uc.companyRepo.GetByID(txCtx, input.TargetCompanyID)
		if err != nil {
			if apperrors.IsNotFoundError(err) {
				return err
			}
			return fmt.Errorf("failed to get company: %w", err)
		}

		if target.ParentCompanyID() == nil || *target.ParentCompanyID() != input.RequesterCompanyID {
			return apperrors.NewForbiddenError("requester is not the parent of this company")
		}

		if input.Blocked {
			err = target.BlockByParent()
		} else {
			err = target.UnblockByParent()
		}
		if err != nil {
			return apperrors.NewValidationError(err.Error())
		}

		if err := uc.companyRepo.Update(txCtx, target); err != nil {
			return fmt.Errorf("failed to update company: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := uc.eventPublisher.PublishAccessBlockChanged(ctx, target, input.Blocked); err != nil {
		uc.logger.Warnw("failed to publish access block event",
			"company_id", target.ID(),
			"blocked", input.Blocked,
			"error", err,
		)
	}

	uc.logger.Infow("parent access block updated",
		"company_id", target.ID(),
		"parent_company_id", input.RequesterCompanyID,
		"blocked", input.Blocked,
	)
	return target, nil
}
