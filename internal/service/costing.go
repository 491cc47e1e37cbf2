package service

import (
	"context"
	"fmt"
	"strings"

	"pricegenie/backend/internal/domain"
	"pricegenie/backend/internal/pricing"
)

func costingItemFromRequest(req domain.CostItemRequest) (pricing.CostingItem, error) {
	label := strings.TrimSpace(req.Label)
	if label == "" {
		return pricing.CostingItem{}, fmt.Errorf("%w: cost item label is required", pricing.ErrValidation)
	}
	if req.UnitPrice < 0 || req.Quantity < 0 {
		return pricing.CostingItem{}, fmt.Errorf("%w: cost item %q", pricing.ErrInvalidValue, label)
	}
	item := pricing.NewCostingItem(label, strings.TrimSpace(req.Unit), req.UnitPrice, req.Quantity)
	item.Description = req.Description
	return item, nil
}

func (s *Service) ReplaceCosting(ctx context.Context, id string, reqs []domain.CostItemRequest) (domain.ProfileRecord, error) {
	items := make([]pricing.CostingItem, 0, len(reqs))
	for _, req := range reqs {
		item, err := costingItemFromRequest(req)
		if err != nil {
			return domain.ProfileRecord{}, err
		}
		items = append(items, item)
	}

	return s.mutate(ctx, id, "costing_replace", func(p *pricing.Profile) (string, error) {
		p.SetListCostingBreakdown(items)
		return fmt.Sprintf("items=%d", len(items)), nil
	})
}

func (s *Service) ClearCosting(ctx context.Context, id string) (domain.ProfileRecord, error) {
	return s.mutate(ctx, id, "costing_clear", func(p *pricing.Profile) (string, error) {
		p.ClearListCostingBreakdown()
		return "", nil
	})
}

func (s *Service) AddCostingItem(ctx context.Context, id string, req domain.CostItemRequest) (domain.ProfileRecord, error) {
	item, err := costingItemFromRequest(req)
	if err != nil {
		return domain.ProfileRecord{}, err
	}

	return s.mutate(ctx, id, "costing_add", func(p *pricing.Profile) (string, error) {
		if _, err := p.AddCostingItem(item); err != nil {
			return "", err
		}
		return "label=" + item.Label, nil
	})
}

func (s *Service) RemoveCostingItem(ctx context.Context, id string, index int) (domain.ProfileRecord, error) {
	return s.mutate(ctx, id, "costing_remove", func(p *pricing.Profile) (string, error) {
		if _, err := p.RemoveCostingItem(index); err != nil {
			return "", err
		}
		return fmt.Sprintf("index=%d", index), nil
	})
}

// UpdateCostItem applies absolute values first, then multipliers.
func (s *Service) UpdateCostItem(ctx context.Context, id string, index int, req domain.CostItemUpdateRequest) (domain.ProfileRecord, error) {
	if req.UnitPrice == nil && req.Quantity == nil && req.UnitPriceMultiplier == nil && req.QuantityMultiplier == nil {
		return domain.ProfileRecord{}, fmt.Errorf("%w: no fields to update", pricing.ErrValidation)
	}

	return s.mutate(ctx, id, "costing_update", func(p *pricing.Profile) (string, error) {
		changed := make([]string, 0, 4)
		if req.UnitPrice != nil {
			if _, err := p.UpdateCostItemUnitPrice(index, *req.UnitPrice); err != nil {
				return "", err
			}
			changed = append(changed, fmt.Sprintf("unit_price=%g", *req.UnitPrice))
		}
		if req.Quantity != nil {
			if _, err := p.UpdateCostItemQuantity(index, *req.Quantity); err != nil {
				return "", err
			}
			changed = append(changed, fmt.Sprintf("quantity=%g", *req.Quantity))
		}
		if req.UnitPriceMultiplier != nil {
			if _, err := p.UpdateCostItemUnitPriceMultiplier(index, *req.UnitPriceMultiplier); err != nil {
				return "", err
			}
			changed = append(changed, fmt.Sprintf("unit_price_multiplier=%g", *req.UnitPriceMultiplier))
		}
		if req.QuantityMultiplier != nil {
			if _, err := p.UpdateCostItemQuantityMultiplier(index, *req.QuantityMultiplier); err != nil {
				return "", err
			}
			changed = append(changed, fmt.Sprintf("quantity_multiplier=%g", *req.QuantityMultiplier))
		}
		return fmt.Sprintf("index=%d,%s", index, strings.Join(changed, ",")), nil
	})
}

func (s *Service) ReplaceOPEX(ctx context.Context, id string, items []pricing.OPEXItem) (domain.ProfileRecord, error) {
	for _, item := range items {
		if strings.TrimSpace(item.Label) == "" || item.Amount < 0 {
			return domain.ProfileRecord{}, fmt.Errorf("%w: opex items need a label and a non-negative amount", pricing.ErrValidation)
		}
	}
	return s.mutate(ctx, id, "opex_replace", func(p *pricing.Profile) (string, error) {
		p.SetListOPEXBreakdown(items)
		return fmt.Sprintf("items=%d", len(items)), nil
	})
}

func (s *Service) ReplaceCAPEX(ctx context.Context, id string, items []pricing.CAPEXItem) (domain.ProfileRecord, error) {
	for _, item := range items {
		if strings.TrimSpace(item.Label) == "" || item.Amount < 0 {
			return domain.ProfileRecord{}, fmt.Errorf("%w: capex items need a label and a non-negative amount", pricing.ErrValidation)
		}
	}
	return s.mutate(ctx, id, "capex_replace", func(p *pricing.Profile) (string, error) {
		p.SetListCAPEXBreakdown(items)
		return fmt.Sprintf("items=%d", len(items)), nil
	})
}
