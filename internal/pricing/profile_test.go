package pricing

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func newTestProfile(t *testing.T) *Profile {
	t.Helper()
	return Initialize(ItemTypeProduct, WithClock(fixedClock))
}

// must fails the test when a fallible mutator returns an error.
func must(t *testing.T) func(*Profile, error) *Profile {
	t.Helper()
	return func(p *Profile, err error) *Profile {
		t.Helper()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return p
	}
}

func TestInitializeDefaults(t *testing.T) {
	p := newTestProfile(t)

	if p.ID != "pricing-my-product-1740830400" {
		t.Fatalf("unexpected id %q", p.ID)
	}
	if p.Timestamp != "2025-03-01T12:00:00.000Z" {
		t.Fatalf("unexpected timestamp %q", p.Timestamp)
	}
	m := p.Metadata
	if m.Name != "My Product" || m.Currency != "PHP" || m.Pricing.Type != PricingFixed {
		t.Fatalf("unexpected defaults: %+v", m)
	}
	if m.Breakdown.Costing.TotalSupply != 1 || len(m.Breakdown.Costing.Items) != 0 {
		t.Fatalf("unexpected costing defaults: %+v", m.Breakdown.Costing)
	}
	if m.Multipliers != (SimulationGlobalMultipliers{TotalSupply: 1, SRP: 1}) {
		t.Fatalf("unexpected multipliers: %+v", m.Multipliers)
	}
	if _, ok := m.State().(Baseline); !ok {
		t.Fatalf("expected baseline state, got %T", m.State())
	}

	svc := Initialize(ItemTypeService, WithClock(fixedClock))
	if svc.Metadata.Name != "My Service" || svc.Metadata.Type != ItemTypeService {
		t.Fatalf("unexpected service defaults: %+v", svc.Metadata)
	}
}

func TestParseFromJSONRoundTrip(t *testing.T) {
	p := newTestProfile(t)
	must(t)(p.SetItemDescription("Crunchy banana chips"))
	must(t)(p.SetCompanyAddress("Quezon City"))
	must(t)(p.SetPricingModel(PricingPerUnitBase, 50, "pack", 10, 12))
	p.SetCompanyContact("0917", "", "https://example.com")
	p.SetListCostingBreakdown([]CostingItem{
		NewCostingItem("Banana", "kg", 80, 3),
		NewCostingItem("Oil", "L", 120.5, 0.5),
	})
	p.SetListOPEXBreakdown([]OPEXItem{{Label: "Rent", Type: OPEXRent, Amount: 5000}})
	must(t)(p.ApplyGenieResults(&GenieSuggestionPayload{
		Summary: "ok",
		Suggestions: GenieSuggestions{
			Costing:     []ItemSuggestion{},
			Multipliers: SimulationGlobalMultipliers{TotalSupply: 1, SRP: 1},
		},
	}))

	restored, err := ParseFromJSON(p.ToJSON())
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if diff := cmp.Diff(p.ToJSON(), restored.ToJSON()); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}

	encoded, err := p.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	fromString, err := ParseFromJSON(string(encoded))
	if err != nil {
		t.Fatalf("parse string failed: %v", err)
	}
	if diff := cmp.Diff(p.ToJSON(), fromString.ToJSON()); diff != "" {
		t.Fatalf("string round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFromJSONDoesNotAlias(t *testing.T) {
	p := newTestProfile(t)
	p.SetListCostingBreakdown([]CostingItem{NewCostingItem("Banana", "kg", 80, 3)})
	snap := p.ToJSON()

	restored, err := ParseFromJSON(snap)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	must(t)(restored.UpdateCostItemUnitPrice(0, 10))

	if snap.Metadata.Breakdown.Costing.Items[0].UnitPrice != 80 {
		t.Fatalf("snapshot was mutated through restored profile")
	}
	if p.Metadata.Breakdown.Costing.Items[0].UnitPrice != 80 {
		t.Fatalf("source profile was mutated through restored profile")
	}
}

func TestParseFromJSONMissingFields(t *testing.T) {
	cases := []string{
		`{"metadata":{"name":"x"},"timestamp":"t"}`,
		`{"id":"pricing-x-1","timestamp":"t"}`,
	}
	for _, input := range cases {
		if _, err := ParseFromJSON(input); !errors.Is(err, ErrMissingField) {
			t.Fatalf("expected ErrMissingField for %s, got %v", input, err)
		}
	}

	restored, err := ParseFromJSON(`{"id":"pricing-x-1","metadata":{"name":"x"}}`, WithClock(fixedClock))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if restored.Timestamp != "2025-03-01T12:00:00.000Z" {
		t.Fatalf("expected clock timestamp, got %q", restored.Timestamp)
	}
}

func TestParseFromJSONMalformedInputIsValidationError(t *testing.T) {
	cases := []string{
		`{not json`,
		`{"id":"pricing-x-1","metadata":{"name":7}}`,
		`{"id":"pricing-x-1","metadata":{"breakdown":{"costing":{"items":"oops"}}}}`,
	}
	for _, input := range cases {
		if _, err := ParseFromJSON(input); !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation for %s, got %v", input, err)
		}
	}
}

func TestFinalizeRegeneratesID(t *testing.T) {
	p := newTestProfile(t)
	must(t)(p.SetItemName("Ube Jam"))

	later := fixedNow.Add(time.Hour)
	p.clock = func() time.Time { return later }
	snap := p.Finalize()

	if snap.ID != "pricing-ube-jam-1740834000" || p.ID != snap.ID {
		t.Fatalf("unexpected finalized id %q / %q", snap.ID, p.ID)
	}
	if p.Timestamp != "2025-03-01T13:00:00.000Z" {
		t.Fatalf("unexpected finalized timestamp %q", p.Timestamp)
	}
}

func TestSettersRejectInvalidInput(t *testing.T) {
	p := newTestProfile(t)

	if _, err := p.SetItemName("   "); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if p.Metadata.Name != "My Product" {
		t.Fatalf("name changed on failed set: %q", p.Metadata.Name)
	}
	if _, err := p.SetTotalSupply(0); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for zero supply, got %v", err)
	}
	if _, err := p.SetBasePrice(-1); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for negative base price, got %v", err)
	}
	if _, err := p.SetPricingUnit("kg"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected unit to be rejected for fixed pricing, got %v", err)
	}
	if _, err := p.SetItemPhoto(""); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for empty photo, got %v", err)
	}
	if p.Metadata.Image != nil {
		t.Fatalf("image changed on failed set")
	}
}

func TestPricingTypeTransitions(t *testing.T) {
	p := newTestProfile(t)
	must(t)(p.SetPricingModel(PricingPerUnit, 25, "piece", 4, 999))
	if p.Metadata.Pricing.UnitPrice != 25 {
		t.Fatalf("expected per-unit price to mirror base price, got %v", p.Metadata.Pricing.UnitPrice)
	}

	must(t)(p.SetBasePrice(30))
	if p.Metadata.Pricing.UnitPrice != 30 {
		t.Fatalf("expected base price to overwrite unit price, got %v", p.Metadata.Pricing.UnitPrice)
	}

	must(t)(p.SetPricingType(PricingFixed))
	pr := p.Metadata.Pricing
	if pr.Unit != nil || pr.UnitPrice != 0 || pr.UnitQuantity != 0 {
		t.Fatalf("expected fixed pricing to clear unit fields: %+v", pr)
	}
	if pr.BasePrice != 30 {
		t.Fatalf("expected base price to survive type change, got %v", pr.BasePrice)
	}
}

func TestValidateSelf(t *testing.T) {
	p := newTestProfile(t)
	if !p.IsValid() {
		t.Fatalf("expected defaults to be valid: %v", p.ValidateSelf())
	}

	p.Metadata.Currency = " "
	err := p.ValidateSelf()
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if p.IsValid() {
		t.Fatalf("expected invalid profile")
	}
}
