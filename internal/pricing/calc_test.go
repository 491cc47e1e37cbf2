package pricing

import (
	"errors"
	"math"
	"testing"
)

func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

// newExampleProfile is one 100 x 2 item, supply 5 and a base price of 1000.
func newExampleProfile(t *testing.T) *Profile {
	t.Helper()
	p := newTestProfile(t)
	must(t)(p.SetTotalSupply(5))
	must(t)(p.SetPrice(1000))
	p.SetListCostingBreakdown([]CostingItem{NewCostingItem("Flour", "kg", 100, 2)})
	return p
}

func TestBaselineCalculation(t *testing.T) {
	p := newExampleProfile(t)

	item := p.Metadata.Breakdown.Costing.Items[0]
	if item.Amount != 200 || item.CostMargin != 1 {
		t.Fatalf("unexpected item: %+v", item)
	}
	if p.Metadata.Breakdown.Costing.TotalAmount != 200 {
		t.Fatalf("expected total 200, got %v", p.Metadata.Breakdown.Costing.TotalAmount)
	}
	income := p.Metadata.Breakdown.Income
	if income.Income.Gross != 5000 || income.Profit.Net != 4800 {
		t.Fatalf("unexpected income: %+v", income)
	}
	if income.ProfitMargin != 0.96 || p.GetProfitMargin() != 0.96 {
		t.Fatalf("expected margin 0.96, got %v", income.ProfitMargin)
	}
}

func TestManualSimulationScalesAmount(t *testing.T) {
	p := newExampleProfile(t)
	p.SetSimulation(true)
	must(t)(p.UpdateCostItemQuantityMultiplier(0, 2))
	must(t)(p.UpdateTotalSupplyMultiplier(1))

	if got := p.Metadata.Breakdown.Costing.Items[0].Amount; got != 400 {
		t.Fatalf("expected simulated amount 400, got %v", got)
	}
	if _, ok := p.Metadata.State().(Manual); !ok {
		t.Fatalf("expected manual state, got %T", p.Metadata.State())
	}
}

func TestEmptyCostingKeepsSupply(t *testing.T) {
	p := newTestProfile(t)
	must(t)(p.SetTotalSupply(7))
	p.SetListCostingBreakdown([]CostingItem{})

	costing := p.Metadata.Breakdown.Costing
	if costing.TotalAmount != 0 || costing.TotalSupply != 7 {
		t.Fatalf("unexpected costing: %+v", costing)
	}
	if p.Metadata.Breakdown.Income.ProfitMargin != 0 {
		t.Fatalf("expected zero margin, got %v", p.Metadata.Breakdown.Income.ProfitMargin)
	}

	must(t)(p.SetPrice(10))
	p.RefreshCalculations()
	if p.Metadata.Breakdown.Income.ProfitMargin != 1 {
		t.Fatalf("expected full margin with no cost, got %v", p.Metadata.Breakdown.Income.ProfitMargin)
	}
}

func TestRefreshIsIdempotent(t *testing.T) {
	p := newExampleProfile(t)
	p.SetListCostingBreakdown([]CostingItem{
		NewCostingItem("Flour", "kg", 33.33, 3),
		NewCostingItem("Sugar", "kg", 12.5, 1.7),
	})
	p.SetSimulation(true)
	must(t)(p.UpdateCostItemUnitPriceMultiplier(1, 1.3))

	first := p.ToJSON()
	p.RefreshCalculations()
	second := p.ToJSON()

	if first.Metadata.Breakdown.Costing.TotalAmount != second.Metadata.Breakdown.Costing.TotalAmount {
		t.Fatalf("total changed between refreshes")
	}
	for i := range first.Metadata.Breakdown.Costing.Items {
		if first.Metadata.Breakdown.Costing.Items[i].CostMargin != second.Metadata.Breakdown.Costing.Items[i].CostMargin {
			t.Fatalf("cost margin %d changed between refreshes", i)
		}
	}
	if first.Metadata.Breakdown.Income.ProfitMargin != second.Metadata.Breakdown.Income.ProfitMargin {
		t.Fatalf("profit margin changed between refreshes")
	}
}

func TestCostMarginsSumToOne(t *testing.T) {
	p := newExampleProfile(t)
	p.SetListCostingBreakdown([]CostingItem{
		NewCostingItem("Flour", "kg", 33.33, 3),
		NewCostingItem("Sugar", "kg", 12.5, 1.7),
		NewCostingItem("Eggs", "tray", 7, 0.33),
	})

	var sum float64
	for _, item := range p.Metadata.Breakdown.Costing.Items {
		sum += item.CostMargin
	}
	if !nearlyEqual(sum, 1) {
		t.Fatalf("expected margins to sum to 1, got %v", sum)
	}
}

func TestCostMarginsKeptWhenTotalIsZero(t *testing.T) {
	p := newExampleProfile(t)
	must(t)(p.UpdateCostItemUnitPrice(0, 0))

	item := p.Metadata.Breakdown.Costing.Items[0]
	if item.Amount != 0 {
		t.Fatalf("expected zero amount, got %v", item.Amount)
	}
	if item.CostMargin != 1 {
		t.Fatalf("expected previous cost margin to be kept, got %v", item.CostMargin)
	}
}

func TestQuantityMultiplierIsMonotonic(t *testing.T) {
	p := newExampleProfile(t)
	p.SetListCostingBreakdown([]CostingItem{
		NewCostingItem("Flour", "kg", 100, 2),
		NewCostingItem("Sugar", "kg", 40, 1),
	})
	p.SetSimulation(true)

	prevAmount, prevTotal := -1.0, -1.0
	for _, m := range []float64{0, 0.5, 1, 1.25, 2, 3.5} {
		must(t)(p.UpdateCostItemQuantityMultiplier(0, m))
		amount := p.Metadata.Breakdown.Costing.Items[0].Amount
		total := p.Metadata.Breakdown.Costing.TotalAmount
		if amount <= prevAmount {
			t.Fatalf("amount did not increase at multiplier %v: %v <= %v", m, amount, prevAmount)
		}
		if total < prevTotal {
			t.Fatalf("total decreased at multiplier %v: %v < %v", m, total, prevTotal)
		}
		prevAmount, prevTotal = amount, total
	}
}

func TestToggleOffRestoresBaseline(t *testing.T) {
	p := newExampleProfile(t)
	p.SetListCostingBreakdown([]CostingItem{
		NewCostingItem("Flour", "kg", 33.335, 3),
		NewCostingItem("Sugar", "kg", 12.5, 1.7),
	})
	p.ToggleSimulation()
	must(t)(p.UpdateCostItemUnitPriceMultiplier(0, 1.7))
	must(t)(p.UpdateCostItemQuantityMultiplier(1, 0.4))
	must(t)(p.UpdateTotalSupplyMultiplier(2))
	must(t)(p.UpdateSRPMultiplier(1.2))

	p.SetSimulation(false)

	if p.Metadata.IsSimulating || p.Metadata.IsGenieMagic {
		t.Fatalf("expected simulation flags cleared")
	}
	if p.Metadata.Multipliers != baselineGlobalMultipliers() {
		t.Fatalf("expected baseline global multipliers, got %+v", p.Metadata.Multipliers)
	}
	for i, item := range p.Metadata.Breakdown.Costing.Items {
		if item.Multipliers != baselineItemMultipliers() {
			t.Fatalf("item %d multipliers not reset: %+v", i, item.Multipliers)
		}
		if item.Amount != round2(item.UnitPrice*item.Quantity) {
			t.Fatalf("item %d amount not baseline: %v", i, item.Amount)
		}
	}
}

func TestEnteringSimulationKeepsMultipliers(t *testing.T) {
	p := newExampleProfile(t)
	p.Metadata.Multipliers.SRP = 2
	p.SetSimulation(true)

	if p.Metadata.Multipliers.SRP != 2 {
		t.Fatalf("expected stored srp multiplier to survive, got %v", p.Metadata.Multipliers.SRP)
	}
	if p.GetSRP() != 2000 {
		t.Fatalf("expected simulated srp 2000, got %v", p.GetSRP())
	}
}

func TestMultiplierErrors(t *testing.T) {
	p := newTestProfile(t)
	if _, err := p.UpdateCostItemQuantityMultiplier(0, 1); !errors.Is(err, ErrEmptyList) {
		t.Fatalf("expected ErrEmptyList, got %v", err)
	}

	p = newExampleProfile(t)
	if _, err := p.UpdateCostItemUnitPriceMultiplier(3, 1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
	if _, err := p.UpdateCostItemUnitPriceMultiplier(0, -1); !errors.Is(err, ErrInvalidMultiplier) {
		t.Fatalf("expected ErrInvalidMultiplier, got %v", err)
	}
	if _, err := p.UpdateSRPMultiplier(math.NaN()); !errors.Is(err, ErrInvalidMultiplier) {
		t.Fatalf("expected ErrInvalidMultiplier for NaN, got %v", err)
	}
	if _, err := p.UpdateCostItemQuantity(0, -2); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
}

func TestAddAndRemoveCostingItems(t *testing.T) {
	p := newExampleProfile(t)
	must(t)(p.AddCostingItem(NewCostingItem("Sugar", "kg", 50, 2)))
	if p.Metadata.Breakdown.Costing.TotalAmount != 300 {
		t.Fatalf("expected total 300 after add, got %v", p.Metadata.Breakdown.Costing.TotalAmount)
	}

	must(t)(p.RemoveCostingItem(0))
	items := p.Metadata.Breakdown.Costing.Items
	if len(items) != 1 || items[0].Label != "Sugar" || items[0].CostMargin != 1 {
		t.Fatalf("unexpected items after remove: %+v", items)
	}
	if _, err := p.AddCostingItem(CostingItem{}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected unlabeled item to be rejected, got %v", err)
	}
}

func TestOPEXAndCAPEXDoNotRecompute(t *testing.T) {
	p := newExampleProfile(t)
	p.Metadata.Breakdown.Income.ProfitMargin = 0.5

	p.SetListOPEXBreakdown([]OPEXItem{{Label: "Rent", Type: OPEXRent, Amount: 1000}})
	p.SetListCAPEXBreakdown([]CAPEXItem{{Label: "Oven", Type: CAPEXToolsAndMachinery, Amount: 20000}})

	if p.Metadata.Breakdown.Income.ProfitMargin != 0.5 {
		t.Fatalf("expected expense lists to leave derived figures alone")
	}
}

func TestReadAccessors(t *testing.T) {
	p := newExampleProfile(t)
	p.SetListCostingBreakdown([]CostingItem{
		NewCostingItem("Flour", "kg", 100, 2),
		NewCostingItem("Sugar", "kg", 300, 1),
	})

	if got := p.GetCostItemUnitPrice(5); got != 0 {
		t.Fatalf("expected 0 for out of range index, got %v", got)
	}
	if got := p.GetCostItemQuantity(-1); got != 0 {
		t.Fatalf("expected 0 for negative index, got %v", got)
	}

	p.SetSimulation(true)
	must(t)(p.UpdateCostItemUnitPriceMultiplier(0, 1.5))
	must(t)(p.UpdateCostItemQuantityMultiplier(0, 2))
	must(t)(p.UpdateTotalSupplyMultiplier(1.5))

	if got := p.GetCostItemUnitPrice(0); got != 150 {
		t.Fatalf("expected simulated unit price 150, got %v", got)
	}
	if got := p.GetCostItemQuantity(0); got != 6 {
		t.Fatalf("expected simulated quantity 6, got %v", got)
	}
	if got := p.GetTotalSupply(); got != 7.5 {
		t.Fatalf("expected simulated supply 7.5, got %v", got)
	}

	top, ok := p.GetMostExpensiveCostItem()
	if !ok || top.Label != "Flour" {
		t.Fatalf("expected Flour to be most expensive, got %+v", top)
	}

	empty := newTestProfile(t)
	if _, ok := empty.GetMostExpensiveCostItem(); ok {
		t.Fatalf("expected no item for empty list")
	}
}
