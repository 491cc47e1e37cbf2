package domain

import (
	"time"

	"pricegenie/backend/internal/pricing"
)

const (
	RoleAdmin   = "admin"
	RolePlanner = "planner"
	RoleViewer  = "viewer"
)

// ProfileRecord is a persisted pricing profile.
type ProfileRecord struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Owner     string           `json:"owner"`
	Snapshot  pricing.Snapshot `json:"snapshot"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type ProfileListItem struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Category     string           `json:"category"`
	Type         pricing.ItemType `json:"type"`
	Currency     string           `json:"currency"`
	IsSimulating bool             `json:"is_simulating"`
	IsGenieMagic bool             `json:"is_genie_magic"`
	ProfitMargin float64          `json:"profit_margin"`
	Owner        string           `json:"owner"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

type ProfileCreateRequest struct {
	ItemType pricing.ItemType `json:"item_type"`
	Name     string           `json:"name"`
	Category string           `json:"category"`
	Currency string           `json:"currency"`
}

type ContactPatch struct {
	Number  string `json:"number"`
	Email   string `json:"email"`
	Website string `json:"website"`
}

type PricingModelRequest struct {
	Type         pricing.PricingType `json:"type"`
	BasePrice    float64             `json:"base_price"`
	Unit         string              `json:"unit"`
	UnitQuantity float64             `json:"unit_quantity"`
	UnitPrice    float64             `json:"unit_price"`
}

// ProfileUpdateRequest patches descriptive and pricing fields. Nil fields are
// left alone.
type ProfileUpdateRequest struct {
	Name               *string              `json:"name,omitempty"`
	Category           *string              `json:"category,omitempty"`
	Type               *pricing.ItemType    `json:"type,omitempty"`
	Currency           *string              `json:"currency,omitempty"`
	Description        *string              `json:"description,omitempty"`
	Image              *string              `json:"image,omitempty"`
	ClearImage         bool                 `json:"clear_image,omitempty"`
	CompanyName        *string              `json:"company_name,omitempty"`
	CompanyLogo        *string              `json:"company_logo,omitempty"`
	CompanyDescription *string              `json:"company_description,omitempty"`
	CompanyAddress     *string              `json:"company_address,omitempty"`
	CompanyContact     *ContactPatch        `json:"company_contact,omitempty"`
	ProfitLevel        *pricing.ProfitLevel `json:"profit_level,omitempty"`
	PricingModel       *PricingModelRequest `json:"pricing_model,omitempty"`
	PricingType        *pricing.PricingType `json:"pricing_type,omitempty"`
	PricingUnit        *string              `json:"pricing_unit,omitempty"`
	Price              *float64             `json:"price,omitempty"`
	BasePrice          *float64             `json:"base_price,omitempty"`
	UnitPrice          *float64             `json:"unit_price,omitempty"`
	UnitQuantity       *float64             `json:"unit_quantity,omitempty"`
	TotalSupply        *float64             `json:"total_supply,omitempty"`
}

type CostItemRequest struct {
	Label       string  `json:"label"`
	Description *string `json:"description,omitempty"`
	Unit        string  `json:"unit"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    float64 `json:"quantity"`
}

// CostItemUpdateRequest sets absolute values and/or multipliers on one item.
type CostItemUpdateRequest struct {
	UnitPrice           *float64 `json:"unit_price,omitempty"`
	Quantity            *float64 `json:"quantity,omitempty"`
	UnitPriceMultiplier *float64 `json:"unit_price_multiplier,omitempty"`
	QuantityMultiplier  *float64 `json:"quantity_multiplier,omitempty"`
}

// SimulationRequest enables or disables simulation. A nil Enabled toggles.
type SimulationRequest struct {
	Enabled *bool `json:"enabled,omitempty"`
}

type MultipliersRequest struct {
	TotalSupply *float64 `json:"total_supply,omitempty"`
	SRP         *float64 `json:"srp,omitempty"`
}

type GenieRequest struct {
	Language        string `json:"language"`
	SyncMultipliers bool   `json:"sync_multipliers"`
	Refresh         bool   `json:"refresh"`
}

type GenieInsightResponse struct {
	Summary string `json:"summary"`
	Insight string `json:"insight"`
	HTML    string `json:"html"`
}

type CostItemView struct {
	Index      int     `json:"index"`
	Label      string  `json:"label"`
	UnitPrice  float64 `json:"unit_price"`
	Quantity   float64 `json:"quantity"`
	Amount     float64 `json:"amount"`
	CostMargin float64 `json:"cost_margin"`
}

// ProfileSummary is the simulation-aware read view of a profile.
type ProfileSummary struct {
	ID                 string               `json:"id"`
	Name               string               `json:"name"`
	Currency           string               `json:"currency"`
	State              string               `json:"state"`
	TotalSupply        float64              `json:"total_supply"`
	SRP                float64              `json:"srp"`
	GrossIncome        float64              `json:"gross_income"`
	TotalCost          float64              `json:"total_cost"`
	NetProfit          float64              `json:"net_profit"`
	ProfitMargin       float64              `json:"profit_margin"`
	ProfitMarginText   string               `json:"profit_margin_text"`
	GrossIncomeText    string               `json:"gross_income_text"`
	NetProfitText      string               `json:"net_profit_text"`
	Tier               pricing.ProfitTier   `json:"tier"`
	MostExpensive      *pricing.CostingItem `json:"most_expensive,omitempty"`
	Items              []CostItemView       `json:"items"`
	Valid              bool                 `json:"valid"`
	ValidationMessages []string             `json:"validation_messages,omitempty"`
}

// ProfileSnapshot is a point-in-time copy kept in a profile's history.
type ProfileSnapshot struct {
	ID        string           `json:"id"`
	ProfileID string           `json:"profile_id"`
	Label     string           `json:"label"`
	Snapshot  pricing.Snapshot `json:"snapshot"`
	CreatedBy string           `json:"created_by"`
	CreatedAt time.Time        `json:"created_at"`
}

type SnapshotCreateRequest struct {
	Label string `json:"label"`
}

type ProfileDeleteRequest struct {
	ManagerPIN string `json:"manager_pin"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	Role        string `json:"role"`
	ExpiresAt   string `json:"expires_at"`
}

type Actor struct {
	Username string
	Role     string
}

type UserCreateRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type User struct {
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// UserAccount is an internal persistence model for auth credentials.
type UserAccount struct {
	Username  string
	Password  string
	Role      string
	Active    bool
	CreatedAt time.Time
}

type AuditLog struct {
	ID            string    `json:"id"`
	ActorUsername string    `json:"actor_username"`
	ActorRole     string    `json:"actor_role"`
	Action        string    `json:"action"`
	EntityType    string    `json:"entity_type"`
	EntityID      string    `json:"entity_id"`
	Detail        string    `json:"detail"`
	CreatedAt     time.Time `json:"created_at"`
}
