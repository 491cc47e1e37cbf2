package pricing

import (
	"fmt"
	"math"
	"strings"
)

func requireText(field string, input string) error {
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("%w: %s must be a valid non-empty string", ErrValidation, field)
	}
	return nil
}

func requirePositive(field string, input float64) error {
	if math.IsNaN(input) || math.IsInf(input, 0) || input <= 0 {
		return fmt.Errorf("%w: %s must be greater than zero", ErrValidation, field)
	}
	return nil
}

func (p *Profile) SetItemName(input string) (*Profile, error) {
	if err := requireText("item name", input); err != nil {
		return p, err
	}
	p.Metadata.Name = input
	return p, nil
}

func (p *Profile) SetItemCategory(input string) (*Profile, error) {
	if err := requireText("item category", input); err != nil {
		return p, err
	}
	p.Metadata.Category = input
	return p, nil
}

func (p *Profile) SetItemType(input ItemType) (*Profile, error) {
	if !input.Valid() {
		return p, fmt.Errorf("%w: item type %q is not supported", ErrValidation, input)
	}
	p.Metadata.Type = input
	return p, nil
}

func (p *Profile) SetCurrency(input string) (*Profile, error) {
	if err := requireText("currency", input); err != nil {
		return p, err
	}
	p.Metadata.Currency = input
	return p, nil
}

func (p *Profile) SetItemDescription(input string) (*Profile, error) {
	if err := requireText("item description", input); err != nil {
		return p, err
	}
	p.Metadata.Description = &input
	return p, nil
}

// SetItemPhoto stores an image reference, usually a data URI.
func (p *Profile) SetItemPhoto(input string) (*Profile, error) {
	if err := requireText("item photo", input); err != nil {
		return p, err
	}
	p.Metadata.Image = &input
	return p, nil
}

func (p *Profile) ClearItemPhoto() *Profile {
	p.Metadata.Image = nil
	return p
}

func (p *Profile) SetCompanyName(input string) (*Profile, error) {
	if err := requireText("company name", input); err != nil {
		return p, err
	}
	p.Metadata.Company.Name = input
	return p, nil
}

func (p *Profile) SetCompanyLogo(input string) (*Profile, error) {
	if err := requireText("company logo", input); err != nil {
		return p, err
	}
	p.Metadata.Company.Image = &input
	return p, nil
}

func (p *Profile) SetCompanyDescription(input string) (*Profile, error) {
	if err := requireText("company description", input); err != nil {
		return p, err
	}
	p.Metadata.Company.Description = &input
	return p, nil
}

func (p *Profile) SetCompanyAddress(input string) (*Profile, error) {
	if err := requireText("company address", input); err != nil {
		return p, err
	}
	p.Metadata.Company.Address = &input
	return p, nil
}

// SetCompanyContact replaces the optional contact fields; blank values clear them.
func (p *Profile) SetCompanyContact(number string, email string, website string) *Profile {
	p.Metadata.Company.ContactNumber = optionalText(number)
	p.Metadata.Company.EmailAddress = optionalText(email)
	p.Metadata.Company.Website = optionalText(website)
	return p
}

func optionalText(input string) *string {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}
	return &input
}

func (p *Profile) SetProfitLevel(input ProfitLevel) (*Profile, error) {
	if !input.Valid() {
		return p, fmt.Errorf("%w: profit level %q is not supported", ErrValidation, input)
	}
	p.Metadata.Pricing.ProfitLevel = input
	return p, nil
}

// SetPrice sets the base price without any pricing-type side effects.
func (p *Profile) SetPrice(price float64) (*Profile, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return p, fmt.Errorf("%w: price must be a non-negative number", ErrValidation)
	}
	p.Metadata.Pricing.BasePrice = price
	return p, nil
}

// SetPricingModel replaces the whole pricing model. For PER_UNIT the unit
// price mirrors basePrice and the unitPrice argument is ignored.
func (p *Profile) SetPricingModel(pricingType PricingType, basePrice float64, unit string, unitQuantity float64, unitPrice float64) (*Profile, error) {
	level := p.Metadata.Pricing.ProfitLevel
	if level == "" {
		level = ProfitStandard
	}

	switch pricingType {
	case PricingFixed:
		p.Metadata.Pricing = PricingModel{
			Type:        pricingType,
			BasePrice:   basePrice,
			ProfitLevel: level,
		}
	case PricingPerUnit:
		if err := requireText("unit type", unit); err != nil {
			return p, err
		}
		if err := requirePositive("unit quantity", unitQuantity); err != nil {
			return p, err
		}
		p.Metadata.Pricing = PricingModel{
			Type:         pricingType,
			Unit:         &unit,
			UnitPrice:    basePrice,
			UnitQuantity: unitQuantity,
			BasePrice:    basePrice,
			ProfitLevel:  level,
		}
	case PricingPerUnitBase:
		if err := requirePositive("unit price", unitPrice); err != nil {
			return p, err
		}
		if err := requireText("unit type", unit); err != nil {
			return p, err
		}
		if err := requirePositive("unit quantity", unitQuantity); err != nil {
			return p, err
		}
		p.Metadata.Pricing = PricingModel{
			Type:         pricingType,
			Unit:         &unit,
			UnitPrice:    unitPrice,
			UnitQuantity: unitQuantity,
			BasePrice:    basePrice,
			ProfitLevel:  level,
		}
	default:
		return p, fmt.Errorf("%w: invalid pricing type %q", ErrValidation, pricingType)
	}
	return p, nil
}

func (p *Profile) SetPricingUnit(unit string) (*Profile, error) {
	if p.Metadata.Pricing.Type == PricingFixed {
		return p, fmt.Errorf("%w: unit type is not applicable for fixed pricing", ErrValidation)
	}
	if err := requireText("unit type", unit); err != nil {
		return p, err
	}
	p.Metadata.Pricing.Unit = &unit
	return p, nil
}

// SetPricingType switches the pricing type. Moving to FIXED clears the unit,
// unit price and unit quantity.
func (p *Profile) SetPricingType(pricingType PricingType) (*Profile, error) {
	if !pricingType.Valid() {
		return p, fmt.Errorf("%w: invalid pricing type %q", ErrValidation, pricingType)
	}
	p.Metadata.Pricing.Type = pricingType
	if pricingType == PricingFixed {
		p.Metadata.Pricing.Unit = nil
		p.Metadata.Pricing.UnitPrice = 0
		p.Metadata.Pricing.UnitQuantity = 0
	}
	return p, nil
}

func (p *Profile) SetUnitPrice(unitPrice float64) (*Profile, error) {
	if err := requirePositive("unit price", unitPrice); err != nil {
		return p, err
	}
	p.Metadata.Pricing.UnitPrice = unitPrice
	return p, nil
}

// SetBasePrice sets the base price. Under PER_UNIT pricing the base price and
// the unit price are the same value, so the unit price is overwritten too.
func (p *Profile) SetBasePrice(basePrice float64) (*Profile, error) {
	if err := requirePositive("base price", basePrice); err != nil {
		return p, err
	}
	p.Metadata.Pricing.BasePrice = basePrice
	if p.Metadata.Pricing.Type == PricingPerUnit {
		p.Metadata.Pricing.UnitPrice = basePrice
	}
	return p, nil
}

func (p *Profile) SetUnitQuantity(unitQuantity float64) (*Profile, error) {
	if err := requirePositive("unit quantity", unitQuantity); err != nil {
		return p, err
	}
	p.Metadata.Pricing.UnitQuantity = unitQuantity
	return p, nil
}

func (p *Profile) SetTotalSupply(input float64) (*Profile, error) {
	if err := requirePositive("total supply", input); err != nil {
		return p, err
	}
	p.Metadata.Breakdown.Costing.TotalSupply = input
	return p, nil
}

// SetListCostingBreakdown replaces the costing items and recomputes everything.
func (p *Profile) SetListCostingBreakdown(items []CostingItem) *Profile {
	p.Metadata.Breakdown.Costing.Items = cloneCostingItems(items)
	if p.Metadata.Breakdown.Costing.Items == nil {
		p.Metadata.Breakdown.Costing.Items = []CostingItem{}
	}
	return p.RefreshCalculations()
}

func (p *Profile) ClearListCostingBreakdown() *Profile {
	p.Metadata.Breakdown.Costing.Items = []CostingItem{}
	return p.RefreshCalculations()
}

// AddCostingItem appends one item and recomputes everything.
func (p *Profile) AddCostingItem(item CostingItem) (*Profile, error) {
	if err := requireText("costing item label", item.Label); err != nil {
		return p, err
	}
	items := cloneCostingItems([]CostingItem{item})
	p.Metadata.Breakdown.Costing.Items = append(p.Metadata.Breakdown.Costing.Items, items...)
	return p.RefreshCalculations(), nil
}

// RemoveCostingItem deletes the item at index and recomputes everything.
func (p *Profile) RemoveCostingItem(index int) (*Profile, error) {
	if err := p.checkIndex(index); err != nil {
		return p, err
	}
	items := p.Metadata.Breakdown.Costing.Items
	p.Metadata.Breakdown.Costing.Items = append(items[:index:index], items[index+1:]...)
	return p.RefreshCalculations(), nil
}

// OPEX and CAPEX lists do not feed profit, so replacing them never recomputes.

func (p *Profile) SetListOPEXBreakdown(items []OPEXItem) *Profile {
	p.Metadata.Breakdown.OPEX.Items = cloneOPEXItems(items)
	if p.Metadata.Breakdown.OPEX.Items == nil {
		p.Metadata.Breakdown.OPEX.Items = []OPEXItem{}
	}
	return p
}

func (p *Profile) ClearListOPEXBreakdown() *Profile {
	p.Metadata.Breakdown.OPEX.Items = []OPEXItem{}
	return p
}

func (p *Profile) SetListCAPEXBreakdown(items []CAPEXItem) *Profile {
	p.Metadata.Breakdown.CAPEX.Items = cloneCAPEXItems(items)
	if p.Metadata.Breakdown.CAPEX.Items == nil {
		p.Metadata.Breakdown.CAPEX.Items = []CAPEXItem{}
	}
	return p
}

func (p *Profile) ClearListCAPEXBreakdown() *Profile {
	p.Metadata.Breakdown.CAPEX.Items = []CAPEXItem{}
	return p
}

func (p *Profile) checkIndex(index int) error {
	items := p.Metadata.Breakdown.Costing.Items
	if len(items) == 0 {
		return ErrEmptyList
	}
	if index < 0 || index >= len(items) {
		return fmt.Errorf("%w: cost item at index %d does not exist", ErrIndexOutOfRange, index)
	}
	return nil
}

func validNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// UpdateCostItemUnitPrice sets the absolute unit price of one item.
func (p *Profile) UpdateCostItemUnitPrice(index int, unitPrice float64) (*Profile, error) {
	if err := p.checkIndex(index); err != nil {
		return p, err
	}
	if !validNonNegative(unitPrice) {
		return p, fmt.Errorf("%w: unit price", ErrInvalidValue)
	}
	item := &p.Metadata.Breakdown.Costing.Items[index]
	item.UnitPrice = unitPrice
	item.Amount = round2(item.UnitPrice * item.Quantity)
	return p.RefreshCalculations(), nil
}

// UpdateCostItemQuantity sets the absolute quantity of one item.
func (p *Profile) UpdateCostItemQuantity(index int, quantity float64) (*Profile, error) {
	if err := p.checkIndex(index); err != nil {
		return p, err
	}
	if !validNonNegative(quantity) {
		return p, fmt.Errorf("%w: quantity", ErrInvalidValue)
	}
	item := &p.Metadata.Breakdown.Costing.Items[index]
	item.Quantity = quantity
	item.Amount = round2(item.UnitPrice * item.Quantity)
	return p.RefreshCalculations(), nil
}
