package usecases

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"atrium/internal/domain/license"
	"atrium/internal/shared/logger"
)

// PlanView is the read model returned to API consumers.
type PlanView struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	Amount       decimal.Decimal `json:"amount"`
	AmountAnnual decimal.Decimal `json:"amount_annual"`
	TargetType   string          `json:"target_type"`
	Status       string          `json:"status"`
}

type ListActivePlansUseCase struct {
	planRepo license.PlanRepository
	logger   logger.Interface
}

func NewListActivePlansUseCase(
	planRepo license.PlanRepository,
	logger logger.Interface,
) *ListActivePlansUseCase {
	return &ListActivePlansUseCase{
		planRepo: planRepo,
		logger:   logger,
	}
}

func (uc *ListActivePlansUseCase) Execute(ctx context.Context) ([]PlanView, error) {
	plans, err := uc.planRepo.GetAllActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active plans: %w", err)
	}

	views := make([]PlanView, 0, len(plans))
	for _, p := range plans {
		views = append(views, PlanView{
			ID:           p.ID(),
			Name:         p.Name(),
			Amount:       p.Amount(),
			AmountAnnual: p.AmountAnnual(),
			TargetType:   string(p.TargetType()),
			Status:       string(p.Status()),
		})
	}

	return views, nil
}
