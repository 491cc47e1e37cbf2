package pricing

import (
	"encoding/json"
	"fmt"
	"time"

	"pricegenie/backend/internal/xid"
)

const (
	DefaultCurrency    = "PHP"
	defaultCategory    = "Other"
	defaultCompanyName = "The Zelijah World"

	// TimestampLayout is ISO 8601 in UTC with millisecond precision.
	TimestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

// Clock supplies the current time for identifiers and timestamps.
type Clock func() time.Time

// Option configures a Profile at construction time.
type Option func(*Profile)

// WithClock injects the clock used for ID and timestamp generation.
func WithClock(clock Clock) Option {
	return func(p *Profile) {
		if clock != nil {
			p.clock = clock
		}
	}
}

// Profile is a pricing profile: item metadata, its cost breakdown and the
// financials derived from them. A Profile is owned by a single caller and is
// not safe for concurrent use.
type Profile struct {
	ID        string
	Metadata  ItemMetadata
	Timestamp string

	clock Clock
}

func newProfile(opts []Option) *Profile {
	p := &Profile{clock: func() time.Time { return time.Now().UTC() }}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Profile) now() time.Time {
	return p.clock().UTC()
}

// Initialize returns a fully defaulted profile for the given item type.
func Initialize(itemType ItemType, opts ...Option) *Profile {
	if !itemType.Valid() {
		itemType = ItemTypeProduct
	}

	name, description := "My Product", "A new product"
	if itemType == ItemTypeService {
		name, description = "My Service", "A new service"
	}

	p := newProfile(opts)
	now := p.now()
	p.ID = xid.Pricing(name, now)
	p.Timestamp = now.Format(TimestampLayout)
	p.Metadata = ItemMetadata{
		Name:        name,
		Description: &description,
		Category:    defaultCategory,
		Type:        itemType,
		Company:     CompanyMetadata{Name: defaultCompanyName},
		Breakdown: FinancialBreakdown{
			OPEX:  OPEXBreakdown{Items: []OPEXItem{}},
			CAPEX: CAPEXBreakdown{Items: []CAPEXItem{}},
			Costing: CostingBreakdown{
				Items:       []CostingItem{},
				TotalSupply: 1,
			},
		},
		Pricing: PricingModel{
			Type:         PricingFixed,
			UnitQuantity: 1,
			ProfitLevel:  ProfitStandard,
		},
		Currency:    DefaultCurrency,
		Multipliers: baselineGlobalMultipliers(),
	}
	return p
}

// ParseFromJSON restores a profile from a JSON string, raw bytes, a Snapshot,
// another Profile or any JSON-encodable value. The result never aliases input.
func ParseFromJSON(input any, opts ...Option) (*Profile, error) {
	var raw []byte
	switch v := input.(type) {
	case nil:
		return nil, fmt.Errorf("%w: 'id'", ErrMissingField)
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	case json.RawMessage:
		raw = v
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode profile: %w", err)
		}
		raw = encoded
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("%w: decode profile: %w", ErrValidation, err)
	}
	if snap.ID == "" {
		return nil, fmt.Errorf("%w: 'id'", ErrMissingField)
	}
	if snap.Metadata == nil {
		return nil, fmt.Errorf("%w: 'metadata'", ErrMissingField)
	}

	p := newProfile(opts)
	p.ID = snap.ID
	p.Metadata = *snap.Metadata
	p.Timestamp = snap.Timestamp
	if p.Timestamp == "" {
		p.Timestamp = p.now().Format(TimestampLayout)
	}
	return p, nil
}

// ToJSON returns the profile's serialized form as stored; nothing is
// recomputed. The returned snapshot shares no memory with the profile.
func (p *Profile) ToJSON() Snapshot {
	metadata := cloneMetadata(p.Metadata)
	return Snapshot{
		ID:        p.ID,
		Metadata:  &metadata,
		Timestamp: p.Timestamp,
	}
}

func (p *Profile) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ToJSON())
}

// Clone returns an independent copy sharing the same clock.
func (p *Profile) Clone() *Profile {
	return &Profile{
		ID:        p.ID,
		Metadata:  cloneMetadata(p.Metadata),
		Timestamp: p.Timestamp,
		clock:     p.clock,
	}
}

// Finalize regenerates the ID from the current name and stamps the profile
// with the clock's time, returning the resulting snapshot.
func (p *Profile) Finalize() Snapshot {
	now := p.now()
	p.ID = xid.Pricing(p.Metadata.Name, now)
	p.Timestamp = now.Format(TimestampLayout)
	return p.ToJSON()
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	if s.Metadata == nil {
		return s
	}
	metadata := cloneMetadata(*s.Metadata)
	s.Metadata = &metadata
	return s
}

func cloneMetadata(m ItemMetadata) ItemMetadata {
	out := m
	out.Description = cloneString(m.Description)
	out.Image = cloneString(m.Image)
	out.Company = CompanyMetadata{
		Name:          m.Company.Name,
		Description:   cloneString(m.Company.Description),
		Image:         cloneString(m.Company.Image),
		Address:       cloneString(m.Company.Address),
		ContactNumber: cloneString(m.Company.ContactNumber),
		EmailAddress:  cloneString(m.Company.EmailAddress),
		Website:       cloneString(m.Company.Website),
	}
	out.Pricing.Unit = cloneString(m.Pricing.Unit)
	out.Breakdown.Costing.Items = cloneCostingItems(m.Breakdown.Costing.Items)
	out.Breakdown.OPEX.Items = cloneOPEXItems(m.Breakdown.OPEX.Items)
	out.Breakdown.CAPEX.Items = cloneCAPEXItems(m.Breakdown.CAPEX.Items)
	out.Genie = cloneGenie(m.Genie)
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneCostingItems(items []CostingItem) []CostingItem {
	if items == nil {
		return nil
	}
	out := make([]CostingItem, len(items))
	for i, item := range items {
		item.Description = cloneString(item.Description)
		out[i] = item
	}
	return out
}

func cloneOPEXItems(items []OPEXItem) []OPEXItem {
	if items == nil {
		return nil
	}
	out := make([]OPEXItem, len(items))
	for i, item := range items {
		item.Description = cloneString(item.Description)
		out[i] = item
	}
	return out
}

func cloneCAPEXItems(items []CAPEXItem) []CAPEXItem {
	if items == nil {
		return nil
	}
	out := make([]CAPEXItem, len(items))
	for i, item := range items {
		item.Description = cloneString(item.Description)
		out[i] = item
	}
	return out
}

func cloneGenie(g *GenieSuggestionPayload) *GenieSuggestionPayload {
	if g == nil {
		return nil
	}
	out := *g
	if g.Suggestions.Costing != nil {
		out.Suggestions.Costing = make([]ItemSuggestion, len(g.Suggestions.Costing))
		copy(out.Suggestions.Costing, g.Suggestions.Costing)
	}
	return &out
}

// Clone returns a deep copy of the payload. A nil payload clones to nil.
func (g *GenieSuggestionPayload) Clone() *GenieSuggestionPayload {
	return cloneGenie(g)
}
