package service

import (
	"context"

	"pricegenie/backend/internal/domain"
	"pricegenie/backend/internal/pricing"
)

func stateName(state pricing.SimulationState) string {
	switch state.(type) {
	case pricing.Manual:
		return "manual"
	case pricing.GenieOverlay:
		return "genie"
	}
	return "baseline"
}

// GetSummary returns the simulation-aware view of a stored profile.
func (s *Service) GetSummary(ctx context.Context, id string) (domain.ProfileSummary, error) {
	record, p, err := s.load(ctx, id)
	if err != nil {
		return domain.ProfileSummary{}, err
	}
	return buildSummary(*record, p), nil
}

func buildSummary(record domain.ProfileRecord, p *pricing.Profile) domain.ProfileSummary {
	meta := &p.Metadata
	currency := meta.Currency
	income := meta.Breakdown.Income
	margin := p.GetProfitMargin()

	summary := domain.ProfileSummary{
		ID:               record.ID,
		Name:             meta.Name,
		Currency:         currency,
		State:            stateName(meta.State()),
		TotalSupply:      p.GetTotalSupply(),
		SRP:              p.GetSRP(),
		GrossIncome:      income.Income.Gross,
		TotalCost:        meta.Breakdown.Costing.TotalAmount,
		NetProfit:        income.Profit.Net,
		ProfitMargin:     margin,
		ProfitMarginText: pricing.FormatPercentage(margin, false),
		GrossIncomeText:  pricing.FormatAmountCurrency(income.Income.Gross, currency),
		NetProfitText:    pricing.FormatAmountCurrency(income.Profit.Net, currency),
		Tier:             pricing.ClassifyProfitMargin(margin),
		Items:            make([]domain.CostItemView, 0, len(meta.Breakdown.Costing.Items)),
		Valid:            true,
	}

	if item, ok := p.GetMostExpensiveCostItem(); ok {
		summary.MostExpensive = &item
	}
	for i, item := range meta.Breakdown.Costing.Items {
		summary.Items = append(summary.Items, domain.CostItemView{
			Index:      i,
			Label:      item.Label,
			UnitPrice:  p.GetCostItemUnitPrice(i),
			Quantity:   p.GetCostItemQuantity(i),
			Amount:     item.Amount,
			CostMargin: item.CostMargin,
		})
	}

	if err := p.ValidateSelf(); err != nil {
		summary.Valid = false
		summary.ValidationMessages = []string{err.Error()}
	}
	return summary
}
