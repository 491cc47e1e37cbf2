package pricing

import (
	"fmt"
	"strconv"
	"strings"
)

const costingSeparator = "========="

// ParseCostingForGemini renders every costing item as a labelled text block.
func (p *Profile) ParseCostingForGemini() (string, error) {
	items := p.Metadata.Breakdown.Costing.Items
	if len(items) == 0 {
		return "", fmt.Errorf("%w: there are no items in the costing breakdown", ErrEmptyList)
	}

	blocks := make([]string, 0, len(items))
	for i, item := range items {
		blocks = append(blocks, costingSeparator+"\n"+formatCostingItem(item, i, p.Metadata.Currency))
	}
	return strings.Join(blocks, "\n\n"), nil
}

// ParseForGemini renders the profile summary followed by the costing blocks.
// The output is deterministic for a given state and is fed to the
// recommendation prompt.
func (p *Profile) ParseForGemini() (string, error) {
	costing, err := p.ParseCostingForGemini()
	if err != nil {
		return "", err
	}

	m := p.Metadata
	var b strings.Builder
	fmt.Fprintf(&b, "Total Supply (with multipliers): %s\n", formatNumber(p.GetTotalSupply()))
	fmt.Fprintf(&b, "Original SRP (with multipliers): %s %s\n", m.Currency, formatNumber(p.GetSRP()))
	fmt.Fprintf(&b, "Estimated Gross Sales: %s\n", formatNumber(m.Breakdown.Income.Income.Gross))
	fmt.Fprintf(&b, "Estimated Total Cost: %s\n", formatNumber(m.Breakdown.Costing.TotalAmount))
	fmt.Fprintf(&b, "Estimated Net Profit: %s\n", formatNumber(m.Breakdown.Income.Profit.Net))
	fmt.Fprintf(&b, "Profit Margin: %s\n", FormatPercentage(m.Breakdown.Income.ProfitMargin, false))
	fmt.Fprintf(&b, "SRP Multiplier: %s\n", formatNumber(m.Multipliers.SRP))
	fmt.Fprintf(&b, "Total Supply Multiplier: %s\n", formatNumber(m.Multipliers.TotalSupply))
	fmt.Fprintf(&b, "Simulation Mode: %s\n", strconv.FormatBool(m.IsSimulating))
	b.WriteString("\n\n")
	b.WriteString(costing)
	return b.String(), nil
}

func formatCostingItem(item CostingItem, index int, currency string) string {
	lines := []string{
		"Index: " + strconv.Itoa(index),
		"Name: " + item.Label,
		"Unit Price: " + FormatAmountCurrency(item.UnitPrice, currency),
		"Quantity: " + formatNumber(item.Quantity),
		"Unit: " + item.Unit,
		"Subtotal Amount: " + FormatAmountCurrency(item.Amount, currency),
		"Cost Margin: " + FormatPercentage(item.CostMargin, false),
		"Unit Price Multiplier: " + formatNumber(item.Multipliers.UnitPrice),
		"Quantity Multiplier: " + formatNumber(item.Multipliers.Quantity),
	}
	return strings.Join(lines, "\n")
}
