package pricing

import "math"

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// RefreshCalculations recomputes costing amounts, cost margins and profit
// figures from the current state.
func (p *Profile) RefreshCalculations() *Profile {
	p.computeCosting()
	p.computeProfit()
	return p
}

// GetProfitMargin recomputes the profit figures and returns the margin ratio.
func (p *Profile) GetProfitMargin() float64 {
	p.computeProfit()
	return p.Metadata.Breakdown.Income.ProfitMargin
}

func (p *Profile) computeCosting() {
	costing := &p.Metadata.Breakdown.Costing
	if len(costing.Items) == 0 {
		costing.Items = []CostingItem{}
		costing.TotalAmount = 0
		return
	}

	state := p.Metadata.State()
	_, baseline := state.(Baseline)
	supply := globalMultipliers(state).TotalSupply

	var total float64
	for i := range costing.Items {
		item := &costing.Items[i]
		if baseline {
			item.Multipliers = baselineItemMultipliers()
			item.Amount = round2(item.UnitPrice * item.Quantity)
		} else {
			m := itemMultipliers(state, *item)
			item.Amount = round2((item.UnitPrice * m.UnitPrice) * (item.Quantity * m.Quantity * supply))
		}
		total += item.Amount
	}
	costing.TotalAmount = total

	p.computeCostMargins()
}

// computeCostMargins leaves previous margins in place when the total is zero.
func (p *Profile) computeCostMargins() {
	items := p.Metadata.Breakdown.Costing.Items
	var total float64
	for _, item := range items {
		total += item.Amount
	}
	if len(items) == 0 || total == 0 {
		return
	}
	for i := range items {
		items[i].CostMargin = items[i].Amount / total
	}
}

func (p *Profile) computeProfit() {
	global := globalMultipliers(p.Metadata.State())

	srp := p.Metadata.Pricing.BasePrice * global.SRP
	supply := p.Metadata.Breakdown.Costing.TotalSupply * global.TotalSupply

	gross := srp * supply
	net := gross - p.Metadata.Breakdown.Costing.TotalAmount

	var margin float64
	if gross > 0 {
		margin = net / gross
	}

	income := &p.Metadata.Breakdown.Income
	income.Income = GrossNet{Gross: gross, Net: gross}
	income.Profit = GrossNet{Gross: net, Net: net}
	income.ProfitMargin = margin
}
