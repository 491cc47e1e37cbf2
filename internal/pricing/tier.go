package pricing

import "math"

// ProfitTier is a display bucket for a profit margin ratio.
type ProfitTier struct {
	Label       string `json:"label"`
	Description string `json:"description"`
}

var profitTiers = []struct {
	ceiling float64
	tier    ProfitTier
}{
	{10, ProfitTier{"BARE MINIMUM", "Applies the lowest possible markup. Suited to break-even pricing, bulk sales or market entry."}},
	{20, ProfitTier{"STANDARD", "Uses a typical profit margin that is safe and steady for most products and services."}},
	{35, ProfitTier{"FAIR ENOUGH", "Applies a slightly higher markup for a reasonable profit at a competitive price."}},
	{50, ProfitTier{"HIGH DEMAND", "Takes advantage of high market demand where customers are willing to pay more."}},
	{70, ProfitTier{"RISKY", "Applies a margin that compensates for uncertain outcomes, high costs or volatile markets."}},
}

var (
	unsustainableTier = ProfitTier{"UNSUSTAINABLE", "Warning: a 0% profit margin will likely make the business unsustainable. Consider applying at least a minimal markup."}
	capitalistTier    = ProfitTier{"CAPITALIST", "Maximizes profit aggressively. Best for niche products, exclusive offers or luxury pricing."}
)

// ClassifyProfitMargin buckets a margin ratio. Ratios are clamped to [0, 1];
// anything at or below zero is unsustainable.
func ClassifyProfitMargin(ratio float64) ProfitTier {
	if math.IsNaN(ratio) {
		ratio = 0
	}
	percent := math.Max(0, math.Min(1, ratio)) * 100
	if percent == 0 {
		return unsustainableTier
	}
	for _, t := range profitTiers {
		if percent <= t.ceiling {
			return t.tier
		}
	}
	return capitalistTier
}
