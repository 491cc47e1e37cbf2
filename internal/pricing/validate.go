package pricing

import (
	"fmt"
	"math"
	"strings"
)

// ValidateSelf checks the fields required before a profile is submitted and
// reports the first one that is missing or invalid.
func (p *Profile) ValidateSelf() error {
	m := p.Metadata
	required := []struct {
		name  string
		value string
	}{
		{"ID", p.ID},
		{"Item Name", m.Name},
		{"Item Category", m.Category},
		{"Item Type", string(m.Type)},
		{"Item Currency", m.Currency},
		{"Pricing Type", string(m.Pricing.Type)},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return fmt.Errorf("%w: missing or invalid property - %s", ErrValidation, field.name)
		}
	}
	if math.IsNaN(m.Pricing.BasePrice) || math.IsInf(m.Pricing.BasePrice, 0) {
		return fmt.Errorf("%w: missing or invalid property - Base Price", ErrValidation)
	}
	return nil
}

func (p *Profile) IsValid() bool {
	return p.ValidateSelf() == nil
}
