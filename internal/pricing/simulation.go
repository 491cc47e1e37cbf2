package pricing

import (
	"encoding/json"
	"fmt"
	"math"
)

// SetSimulation enters or leaves manual simulation. Entering keeps whatever
// multipliers are already stored; leaving resets them all to baseline.
func (p *Profile) SetSimulation(on bool) *Profile {
	p.Metadata.IsSimulating = on
	if !on {
		p.resetMultipliers()
	}
	return p.RefreshCalculations()
}

// ToggleSimulation flips the simulation flag.
func (p *Profile) ToggleSimulation() *Profile {
	return p.SetSimulation(!p.Metadata.IsSimulating)
}

func (p *Profile) resetMultipliers() {
	p.Metadata.IsGenieMagic = false
	for i := range p.Metadata.Breakdown.Costing.Items {
		item := &p.Metadata.Breakdown.Costing.Items[i]
		item.Multipliers = baselineItemMultipliers()
		item.Amount = round2(item.UnitPrice * item.Quantity)
	}
	p.Metadata.Multipliers = baselineGlobalMultipliers()
}

func checkMultiplier(m float64) error {
	if math.IsNaN(m) || m < 0 {
		return fmt.Errorf("%w: multiplier must be a non-negative number", ErrInvalidMultiplier)
	}
	return nil
}

func (p *Profile) UpdateCostItemUnitPriceMultiplier(index int, multiplier float64) (*Profile, error) {
	if err := p.checkIndex(index); err != nil {
		return p, err
	}
	if err := checkMultiplier(multiplier); err != nil {
		return p, err
	}
	p.Metadata.Breakdown.Costing.Items[index].Multipliers.UnitPrice = multiplier
	return p.RefreshCalculations(), nil
}

func (p *Profile) UpdateCostItemQuantityMultiplier(index int, multiplier float64) (*Profile, error) {
	if err := p.checkIndex(index); err != nil {
		return p, err
	}
	if err := checkMultiplier(multiplier); err != nil {
		return p, err
	}
	p.Metadata.Breakdown.Costing.Items[index].Multipliers.Quantity = multiplier
	return p.RefreshCalculations(), nil
}

func (p *Profile) UpdateTotalSupplyMultiplier(multiplier float64) (*Profile, error) {
	if err := checkMultiplier(multiplier); err != nil {
		return p, err
	}
	p.Metadata.Multipliers.TotalSupply = multiplier
	return p.RefreshCalculations(), nil
}

func (p *Profile) UpdateSRPMultiplier(multiplier float64) (*Profile, error) {
	if err := checkMultiplier(multiplier); err != nil {
		return p, err
	}
	p.Metadata.Multipliers.SRP = multiplier
	return p.RefreshCalculations(), nil
}

// ValidateGeniePayload checks the fields the calculation engine reads.
func ValidateGeniePayload(payload *GenieSuggestionPayload) error {
	if payload == nil {
		return fmt.Errorf("%w: payload is empty", ErrInvalidPayload)
	}
	if payload.Suggestions.Costing == nil {
		return fmt.Errorf("%w: suggestions.costing must be a list", ErrInvalidPayload)
	}
	global := payload.Suggestions.Multipliers
	if !finite(global.TotalSupply) || !finite(global.SRP) {
		return fmt.Errorf("%w: suggestions.multipliers must be numbers", ErrInvalidPayload)
	}
	for _, s := range payload.Suggestions.Costing {
		if !finite(s.Multiplier.UnitPrice) || !finite(s.Multiplier.Quantity) {
			return fmt.Errorf("%w: multiplier for %q must be numbers", ErrInvalidPayload, s.ID)
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ApplyGenieResults attaches a copy of payload and switches to the Genie
// overlay. Suggested multipliers are not copied onto items and nothing is
// recomputed.
func (p *Profile) ApplyGenieResults(payload *GenieSuggestionPayload) (*Profile, error) {
	if err := ValidateGeniePayload(payload); err != nil {
		return p, err
	}
	p.Metadata.Genie = cloneGenie(payload)
	p.Metadata.IsSimulating = true
	p.Metadata.IsGenieMagic = true
	return p, nil
}

type rawGenieMultipliers struct {
	TotalSupply *float64 `json:"totalSupply"`
	SRP         *float64 `json:"srp"`
}

type rawGenieSuggestions struct {
	Costing     *[]ItemSuggestion    `json:"costing"`
	Multipliers *rawGenieMultipliers `json:"multipliers"`
	Insight     string               `json:"insight"`
}

type rawGeniePayload struct {
	Summary     *string              `json:"summary"`
	Suggestions *rawGenieSuggestions `json:"suggestions"`
}

// ParseGeniePayload decodes a recommendation payload, rejecting any document
// where summary is not a string, suggestions.costing is not a list, or either
// global multiplier is not a number.
func ParseGeniePayload(data []byte) (*GenieSuggestionPayload, error) {
	var raw rawGeniePayload
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	switch {
	case raw.Summary == nil:
		return nil, fmt.Errorf("%w: summary must be a string", ErrInvalidPayload)
	case raw.Suggestions == nil:
		return nil, fmt.Errorf("%w: suggestions is missing", ErrInvalidPayload)
	case raw.Suggestions.Costing == nil:
		return nil, fmt.Errorf("%w: suggestions.costing must be a list", ErrInvalidPayload)
	case raw.Suggestions.Multipliers == nil:
		return nil, fmt.Errorf("%w: suggestions.multipliers is missing", ErrInvalidPayload)
	case raw.Suggestions.Multipliers.TotalSupply == nil:
		return nil, fmt.Errorf("%w: suggestions.multipliers.totalSupply must be a number", ErrInvalidPayload)
	case raw.Suggestions.Multipliers.SRP == nil:
		return nil, fmt.Errorf("%w: suggestions.multipliers.srp must be a number", ErrInvalidPayload)
	}

	costing := *raw.Suggestions.Costing
	if costing == nil {
		costing = []ItemSuggestion{}
	}
	payload := &GenieSuggestionPayload{
		Summary: *raw.Summary,
		Suggestions: GenieSuggestions{
			Costing: costing,
			Multipliers: SimulationGlobalMultipliers{
				TotalSupply: *raw.Suggestions.Multipliers.TotalSupply,
				SRP:         *raw.Suggestions.Multipliers.SRP,
			},
			Insight: raw.Suggestions.Insight,
		},
	}
	return payload, nil
}

// ApplyGenieJSON parses data with ParseGeniePayload and applies the result.
func (p *Profile) ApplyGenieJSON(data []byte) (*Profile, error) {
	payload, err := ParseGeniePayload(data)
	if err != nil {
		return p, err
	}
	return p.ApplyGenieResults(payload)
}

// ClearGenieResults detaches the payload and returns to baseline.
func (p *Profile) ClearGenieResults() *Profile {
	p.Metadata.Genie = nil
	p.Metadata.IsSimulating = false
	p.resetMultipliers()
	return p.RefreshCalculations()
}

// GetGenieCostingItemByName returns the first suggestion whose ID equals name.
func (p *Profile) GetGenieCostingItemByName(name string) (ItemSuggestion, bool) {
	return p.Metadata.Genie.Suggestion(name)
}

// SetCostingItemMultipliersFromGenie copies matched suggestion multipliers onto
// the stored item multipliers. Unmatched items keep theirs.
func (p *Profile) SetCostingItemMultipliersFromGenie() (*Profile, error) {
	if p.Metadata.Genie == nil {
		return p, fmt.Errorf("%w: genie results are not present", ErrMissingGenieData)
	}
	items := p.Metadata.Breakdown.Costing.Items
	if len(items) == 0 {
		return p, nil
	}
	for i := range items {
		if suggestion, ok := p.Metadata.Genie.Suggestion(items[i].Label); ok {
			items[i].Multipliers = suggestion.Multiplier
		}
	}
	return p.RefreshCalculations(), nil
}
