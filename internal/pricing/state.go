package pricing

// SimulationState is one of Baseline, Manual or GenieOverlay.
type SimulationState interface {
	simulationState()
}

// Baseline: no multipliers apply.
type Baseline struct{}

// Manual: caller-controlled item and global multipliers apply.
type Manual struct {
	Global SimulationGlobalMultipliers
}

// GenieOverlay: item multipliers come from a label lookup into Payload and the
// global multipliers from its global suggestion.
type GenieOverlay struct {
	Payload *GenieSuggestionPayload
}

func (Baseline) simulationState() {}
func (Manual) simulationState() {}
func (GenieOverlay) simulationState() {}

// State derives the simulation state from the stored flags. A profile with
// IsGenieMagic set but no payload attached simulates manually.
func (m *ItemMetadata) State() SimulationState {
	if !m.IsSimulating {
		return Baseline{}
	}
	if m.IsGenieMagic && m.Genie != nil {
		return GenieOverlay{Payload: m.Genie}
	}
	return Manual{Global: m.Multipliers}
}

// Suggestion returns the first costing suggestion whose ID equals label.
func (g *GenieSuggestionPayload) Suggestion(label string) (ItemSuggestion, bool) {
	if g == nil {
		return ItemSuggestion{}, false
	}
	for _, s := range g.Suggestions.Costing {
		if s.ID == label {
			return s, true
		}
	}
	return ItemSuggestion{}, false
}

// itemMultipliers resolves the multipliers the calculation engine applies to item.
func itemMultipliers(state SimulationState, item CostingItem) SimulationCostingItemMultipliers {
	switch s := state.(type) {
	case Manual:
		return item.Multipliers
	case GenieOverlay:
		if suggestion, ok := s.Payload.Suggestion(item.Label); ok {
			return suggestion.Multiplier
		}
	}
	return baselineItemMultipliers()
}

// globalMultipliers resolves the global pair for the current state.
func globalMultipliers(state SimulationState) SimulationGlobalMultipliers {
	switch s := state.(type) {
	case Manual:
		return s.Global
	case GenieOverlay:
		return s.Payload.Suggestions.Multipliers
	}
	return baselineGlobalMultipliers()
}
