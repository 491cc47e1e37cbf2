package pricing

type ItemType string

const (
	ItemTypeProduct ItemType = "Product"
	ItemTypeService ItemType = "Service"
)

func (t ItemType) Valid() bool {
	return t == ItemTypeProduct || t == ItemTypeService
}

type PricingType string

const (
	PricingFixed       PricingType = "Fixed"
	PricingPerUnit     PricingType = "Per Unit"
	PricingPerUnitBase PricingType = "Base plus Per Unit"
)

func (t PricingType) Valid() bool {
	switch t {
	case PricingFixed, PricingPerUnit, PricingPerUnitBase:
		return true
	}
	return false
}

// ProfitLevel is an informational tag. It never feeds the calculation engine.
type ProfitLevel string

const (
	ProfitBareMinimum ProfitLevel = "Bare Minimum"
	ProfitStandard    ProfitLevel = "Standard"
	ProfitFairEnough  ProfitLevel = "Fair Enough"
	ProfitHighDemand  ProfitLevel = "High Demand"
	ProfitRisky       ProfitLevel = "Risky"
	ProfitCapitalist  ProfitLevel = "Capitalist"
	ProfitCustom      ProfitLevel = "Custom"
)

func (l ProfitLevel) Valid() bool {
	switch l {
	case ProfitBareMinimum, ProfitStandard, ProfitFairEnough, ProfitHighDemand, ProfitRisky, ProfitCapitalist, ProfitCustom:
		return true
	}
	return false
}

type GrossNet struct {
	Gross float64 `json:"gross"`
	Net   float64 `json:"net"`
}

type SimulationCostingItemMultipliers struct {
	UnitPrice float64 `json:"unitPrice"`
	Quantity  float64 `json:"quantity"`
}

type SimulationGlobalMultipliers struct {
	TotalSupply float64 `json:"totalSupply"`
	SRP         float64 `json:"srp"`
}

func baselineItemMultipliers() SimulationCostingItemMultipliers {
	return SimulationCostingItemMultipliers{UnitPrice: 1, Quantity: 1}
}

func baselineGlobalMultipliers() SimulationGlobalMultipliers {
	return SimulationGlobalMultipliers{TotalSupply: 1, SRP: 1}
}

type CostingItem struct {
	Label       string                           `json:"label"`
	Description *string                          `json:"description"`
	Quantity    float64                          `json:"quantity"`
	Unit        string                           `json:"unit"`
	UnitPrice   float64                          `json:"unitPrice"`
	Amount      float64                          `json:"amount"`
	CostMargin  float64                          `json:"costMargin"`
	Multipliers SimulationCostingItemMultipliers `json:"multipliers"`
}

// NewCostingItem returns an item with baseline multipliers and its raw amount.
func NewCostingItem(label string, unit string, unitPrice float64, quantity float64) CostingItem {
	return CostingItem{
		Label:       label,
		Quantity:    quantity,
		Unit:        unit,
		UnitPrice:   unitPrice,
		Amount:      round2(unitPrice * quantity),
		Multipliers: baselineItemMultipliers(),
	}
}

type OPEXItem struct {
	Label       string   `json:"label"`
	Description *string  `json:"description"`
	Type        OPEXType `json:"type"`
	Amount      float64  `json:"amount"`
}

type CAPEXItem struct {
	Label       string    `json:"label"`
	Description *string   `json:"description"`
	Type        CAPEXType `json:"type"`
	Amount      float64   `json:"amount"`
}

type CostingBreakdown struct {
	Items       []CostingItem `json:"items"`
	TotalAmount float64       `json:"totalAmount"`
	TotalSupply float64       `json:"totalSupply"`
}

type OPEXBreakdown struct {
	Items       []OPEXItem `json:"items"`
	TotalAmount float64    `json:"totalAmount"`
}

type CAPEXBreakdown struct {
	Items       []CAPEXItem `json:"items"`
	TotalAmount float64     `json:"totalAmount"`
}

// IncomeBreakdown holds derived figures only; nothing sets them directly.
type IncomeBreakdown struct {
	Income       GrossNet `json:"income"`
	Profit       GrossNet `json:"profit"`
	ProfitMargin float64  `json:"profitMargin"`
}

type FinancialBreakdown struct {
	OPEX    OPEXBreakdown    `json:"opex"`
	CAPEX   CAPEXBreakdown   `json:"capex"`
	Income  IncomeBreakdown  `json:"income"`
	Costing CostingBreakdown `json:"costing"`
}

type PricingModel struct {
	Type         PricingType `json:"type"`
	Unit         *string     `json:"unit"`
	UnitPrice    float64     `json:"unitPrice"`
	UnitQuantity float64     `json:"unitQuantity"`
	BasePrice    float64     `json:"basePrice"`
	ProfitLevel  ProfitLevel `json:"profitLevel"`
}

type CompanyMetadata struct {
	Name          string  `json:"name"`
	Description   *string `json:"description"`
	Image         *string `json:"image"`
	Address       *string `json:"address"`
	ContactNumber *string `json:"contactNumber,omitempty"`
	EmailAddress  *string `json:"emailAddress,omitempty"`
	Website       *string `json:"website,omitempty"`
}

type ItemMetadata struct {
	Name         string                      `json:"name"`
	IsSimulating bool                        `json:"isSimulating"`
	IsGenieMagic bool                        `json:"isGenieMagic"`
	Description  *string                     `json:"description"`
	Image        *string                     `json:"image"`
	Category     string                      `json:"category"`
	Type         ItemType                    `json:"type"`
	Company      CompanyMetadata             `json:"company"`
	Breakdown    FinancialBreakdown          `json:"breakdown"`
	Pricing      PricingModel                `json:"pricing"`
	Currency     string                      `json:"currency"`
	Multipliers  SimulationGlobalMultipliers `json:"multipliers"`
	Genie        *GenieSuggestionPayload     `json:"genie,omitempty"`
}

// ItemSuggestion is one costing recommendation. ID matches a CostingItem label.
type ItemSuggestion struct {
	ID         string                           `json:"id"`
	Output     string                           `json:"output"`
	Multiplier SimulationCostingItemMultipliers `json:"multiplier"`
}

type GenieSuggestions struct {
	Costing     []ItemSuggestion            `json:"costing"`
	Multipliers SimulationGlobalMultipliers `json:"multipliers"`
	Insight     string                      `json:"insight"`
}

// GenieSuggestionPayload is the fixed-shape output of the recommendation backend.
type GenieSuggestionPayload struct {
	Summary     string           `json:"summary"`
	Suggestions GenieSuggestions `json:"suggestions"`
}

// Snapshot is the serialized form of a Profile.
type Snapshot struct {
	ID        string        `json:"id"`
	Metadata  *ItemMetadata `json:"metadata"`
	Timestamp string        `json:"timestamp"`
}
