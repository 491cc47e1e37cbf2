package pricing

// GetTotalSupply returns the total supply scaled by the active supply multiplier.
func (p *Profile) GetTotalSupply() float64 {
	global := globalMultipliers(p.Metadata.State())
	return round2(p.Metadata.Breakdown.Costing.TotalSupply * global.TotalSupply)
}

// GetSRP returns the base price scaled by the active SRP multiplier.
func (p *Profile) GetSRP() float64 {
	global := globalMultipliers(p.Metadata.State())
	return p.Metadata.Pricing.BasePrice * global.SRP
}

func (p *Profile) costItem(index int) (CostingItem, bool) {
	items := p.Metadata.Breakdown.Costing.Items
	if index < 0 || index >= len(items) {
		return CostingItem{}, false
	}
	return items[index], true
}

// GetCostItemQuantity returns the simulated quantity of the item at index,
// including the global supply multiplier. Out-of-range indexes yield 0.
func (p *Profile) GetCostItemQuantity(index int) float64 {
	item, ok := p.costItem(index)
	if !ok {
		return 0
	}
	state := p.Metadata.State()
	m := itemMultipliers(state, item)
	return round2(item.Quantity * m.Quantity * globalMultipliers(state).TotalSupply)
}

// GetCostItemUnitPrice returns the simulated unit price of the item at index.
// Out-of-range indexes yield 0.
func (p *Profile) GetCostItemUnitPrice(index int) float64 {
	item, ok := p.costItem(index)
	if !ok {
		return 0
	}
	m := itemMultipliers(p.Metadata.State(), item)
	return item.UnitPrice * m.UnitPrice
}

// GetMostExpensiveCostItem returns the first item with the largest amount.
func (p *Profile) GetMostExpensiveCostItem() (CostingItem, bool) {
	items := p.Metadata.Breakdown.Costing.Items
	if len(items) == 0 {
		return CostingItem{}, false
	}
	top := items[0]
	for _, item := range items[1:] {
		if item.Amount > top.Amount {
			top = item
		}
	}
	top.Description = cloneString(top.Description)
	return top, true
}
