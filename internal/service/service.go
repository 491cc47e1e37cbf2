package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"pricegenie/backend/internal/domain"
	"pricegenie/backend/internal/pricing"
	"pricegenie/backend/internal/recommendation"
	"pricegenie/backend/internal/store"
	"pricegenie/backend/internal/xid"
)

var (
	ErrForbidden        = errors.New("forbidden")
	ErrGenieUnavailable = errors.New("genie is unavailable")
)

type actorContextKey struct{}

func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(domain.Actor)
	return actor, ok
}

type Service struct {
	repo  store.Repository
	genie *recommendation.Engine
	clock func() time.Time

	// profileLocks serializes read-modify-write cycles per profile id.
	profileLocks sync.Map
}

func New(repo store.Repository, genie *recommendation.Engine) *Service {
	return &Service{
		repo:  repo,
		genie: genie,
		clock: func() time.Time { return time.Now().UTC() },
	}
}

// SetClock replaces the clock used for profile ids and timestamps.
func (s *Service) SetClock(clock func() time.Time) {
	if clock != nil {
		s.clock = clock
	}
}

func requireRole(ctx context.Context, roles ...string) (domain.Actor, error) {
	actor, ok := ActorFromContext(ctx)
	if !ok {
		return domain.Actor{}, fmt.Errorf("%w: authentication required", ErrForbidden)
	}
	for _, role := range roles {
		if actor.Role == role {
			return actor, nil
		}
	}
	return domain.Actor{}, fmt.Errorf("%w: %s role cannot perform this action", ErrForbidden, actor.Role)
}

func requireEditor(ctx context.Context) (domain.Actor, error) {
	return requireRole(ctx, domain.RoleAdmin, domain.RolePlanner)
}

func (s *Service) lockProfile(id string) func() {
	val, _ := s.profileLocks.LoadOrStore(id, &sync.Mutex{})
	mu := val.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (s *Service) restore(record domain.ProfileRecord) (*pricing.Profile, error) {
	p, err := pricing.ParseFromJSON(record.Snapshot, pricing.WithClock(s.clock))
	if err != nil {
		return nil, fmt.Errorf("restore profile %s: %w", record.ID, err)
	}
	return p, nil
}

func (s *Service) load(ctx context.Context, id string) (*domain.ProfileRecord, *pricing.Profile, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil, store.ErrInvalidInput
	}
	record, err := s.repo.GetProfile(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	p, err := s.restore(*record)
	if err != nil {
		return nil, nil, err
	}
	return record, p, nil
}

// mutate loads a profile, applies fn and persists the result. Nothing is
// saved when fn fails.
func (s *Service) mutate(ctx context.Context, id string, action string, fn func(p *pricing.Profile) (string, error)) (domain.ProfileRecord, error) {
	if _, err := requireEditor(ctx); err != nil {
		return domain.ProfileRecord{}, err
	}

	id = strings.TrimSpace(id)
	unlock := s.lockProfile(id)
	defer unlock()

	record, p, err := s.load(ctx, id)
	if err != nil {
		return domain.ProfileRecord{}, err
	}

	detail, err := fn(p)
	if err != nil {
		return domain.ProfileRecord{}, err
	}

	record.Name = p.Metadata.Name
	record.Snapshot = p.ToJSON()
	saved, err := s.repo.SaveProfile(ctx, *record)
	if err != nil {
		return domain.ProfileRecord{}, err
	}

	s.logAudit(ctx, action, "profile", saved.ID, detail)
	return *saved, nil
}

func (s *Service) ListProfiles(ctx context.Context, limit int) ([]domain.ProfileListItem, error) {
	if limit < 1 {
		limit = 100
	}
	records, err := s.repo.ListProfiles(ctx, limit)
	if err != nil {
		return nil, err
	}

	items := make([]domain.ProfileListItem, 0, len(records))
	for _, record := range records {
		meta := record.Snapshot.Metadata
		if meta == nil {
			continue
		}
		items = append(items, domain.ProfileListItem{
			ID:           record.ID,
			Name:         meta.Name,
			Category:     meta.Category,
			Type:         meta.Type,
			Currency:     meta.Currency,
			IsSimulating: meta.IsSimulating,
			IsGenieMagic: meta.IsGenieMagic,
			ProfitMargin: meta.Breakdown.Income.ProfitMargin,
			Owner:        record.Owner,
			UpdatedAt:    record.UpdatedAt,
		})
	}
	return items, nil
}

func (s *Service) GetProfile(ctx context.Context, id string) (domain.ProfileRecord, error) {
	record, err := s.repo.GetProfile(ctx, strings.TrimSpace(id))
	if err != nil {
		return domain.ProfileRecord{}, err
	}
	return *record, nil
}

func (s *Service) CreateProfile(ctx context.Context, req domain.ProfileCreateRequest) (domain.ProfileRecord, error) {
	actor, err := requireEditor(ctx)
	if err != nil {
		return domain.ProfileRecord{}, err
	}

	itemType := req.ItemType
	if itemType == "" {
		itemType = pricing.ItemTypeProduct
	}
	if !itemType.Valid() {
		return domain.ProfileRecord{}, fmt.Errorf("%w: unknown item type %q", pricing.ErrValidation, itemType)
	}

	p := pricing.Initialize(itemType, pricing.WithClock(s.clock))
	if name := strings.TrimSpace(req.Name); name != "" {
		if _, err := p.SetItemName(name); err != nil {
			return domain.ProfileRecord{}, err
		}
	}
	if category := strings.TrimSpace(req.Category); category != "" {
		if _, err := p.SetItemCategory(category); err != nil {
			return domain.ProfileRecord{}, err
		}
	}
	if currency := strings.TrimSpace(req.Currency); currency != "" {
		if _, err := p.SetCurrency(strings.ToUpper(currency)); err != nil {
			return domain.ProfileRecord{}, err
		}
	}
	p.RefreshCalculations()
	p.Finalize()

	created, err := s.repo.CreateProfile(ctx, domain.ProfileRecord{
		ID:       p.ID,
		Name:     p.Metadata.Name,
		Owner:    actor.Username,
		Snapshot: p.ToJSON(),
	})
	if err != nil {
		return domain.ProfileRecord{}, err
	}

	s.logAudit(ctx, "profile_create", "profile", created.ID, fmt.Sprintf("type=%s,name=%s", itemType, created.Name))
	return *created, nil
}

// ImportProfile stores a serialized profile as-is, replacing any profile with
// the same id. Stored figures are kept; nothing is recomputed.
func (s *Service) ImportProfile(ctx context.Context, raw []byte) (domain.ProfileRecord, error) {
	actor, err := requireEditor(ctx)
	if err != nil {
		return domain.ProfileRecord{}, err
	}

	p, err := pricing.ParseFromJSON(raw, pricing.WithClock(s.clock))
	if err != nil {
		return domain.ProfileRecord{}, err
	}
	if err := p.ValidateSelf(); err != nil {
		return domain.ProfileRecord{}, err
	}

	unlock := s.lockProfile(p.ID)
	defer unlock()

	saved, err := s.repo.SaveProfile(ctx, domain.ProfileRecord{
		ID:       p.ID,
		Name:     p.Metadata.Name,
		Owner:    actor.Username,
		Snapshot: p.ToJSON(),
	})
	if err != nil {
		return domain.ProfileRecord{}, err
	}

	s.logAudit(ctx, "profile_import", "profile", saved.ID, "name="+saved.Name)
	return *saved, nil
}

// UpdateDetails applies a partial update. Fields are applied in a fixed order
// and the first rejected field aborts the whole update.
func (s *Service) UpdateDetails(ctx context.Context, id string, req domain.ProfileUpdateRequest) (domain.ProfileRecord, error) {
	return s.mutate(ctx, id, "profile_update", func(p *pricing.Profile) (string, error) {
		changed := make([]string, 0, 8)
		apply := func(field string, err error) error {
			if err != nil {
				return err
			}
			changed = append(changed, field)
			return nil
		}
		text := func(field string, val *string, set func(string) (*pricing.Profile, error)) error {
			if val == nil {
				return nil
			}
			_, err := set(*val)
			return apply(field, err)
		}
		number := func(field string, val *float64, set func(float64) (*pricing.Profile, error)) error {
			if val == nil {
				return nil
			}
			_, err := set(*val)
			return apply(field, err)
		}

		steps := []func() error{
			func() error { return text("name", req.Name, p.SetItemName) },
			func() error { return text("category", req.Category, p.SetItemCategory) },
			func() error {
				if req.Type == nil {
					return nil
				}
				_, err := p.SetItemType(*req.Type)
				return apply("type", err)
			},
			func() error { return text("currency", req.Currency, p.SetCurrency) },
			func() error { return text("description", req.Description, p.SetItemDescription) },
			func() error {
				if req.ClearImage {
					p.ClearItemPhoto()
					return apply("image", nil)
				}
				return text("image", req.Image, p.SetItemPhoto)
			},
			func() error { return text("company_name", req.CompanyName, p.SetCompanyName) },
			func() error { return text("company_logo", req.CompanyLogo, p.SetCompanyLogo) },
			func() error { return text("company_description", req.CompanyDescription, p.SetCompanyDescription) },
			func() error { return text("company_address", req.CompanyAddress, p.SetCompanyAddress) },
			func() error {
				if req.CompanyContact == nil {
					return nil
				}
				p.SetCompanyContact(req.CompanyContact.Number, req.CompanyContact.Email, req.CompanyContact.Website)
				return apply("company_contact", nil)
			},
			func() error {
				if req.ProfitLevel == nil {
					return nil
				}
				_, err := p.SetProfitLevel(*req.ProfitLevel)
				return apply("profit_level", err)
			},
			func() error {
				if req.PricingModel == nil {
					return nil
				}
				m := req.PricingModel
				_, err := p.SetPricingModel(m.Type, m.BasePrice, m.Unit, m.UnitQuantity, m.UnitPrice)
				return apply("pricing_model", err)
			},
			func() error {
				if req.PricingType == nil {
					return nil
				}
				_, err := p.SetPricingType(*req.PricingType)
				return apply("pricing_type", err)
			},
			func() error { return text("pricing_unit", req.PricingUnit, p.SetPricingUnit) },
			func() error { return number("price", req.Price, p.SetPrice) },
			func() error { return number("base_price", req.BasePrice, p.SetBasePrice) },
			func() error { return number("unit_price", req.UnitPrice, p.SetUnitPrice) },
			func() error { return number("unit_quantity", req.UnitQuantity, p.SetUnitQuantity) },
			func() error { return number("total_supply", req.TotalSupply, p.SetTotalSupply) },
		}
		for _, step := range steps {
			if err := step(); err != nil {
				return "", err
			}
		}
		if len(changed) == 0 {
			return "", fmt.Errorf("%w: no fields to update", pricing.ErrValidation)
		}
		p.RefreshCalculations()
		return "fields=" + strings.Join(changed, ","), nil
	})
}

func (s *Service) Finalize(ctx context.Context, id string) (domain.ProfileRecord, error) {
	if _, err := requireEditor(ctx); err != nil {
		return domain.ProfileRecord{}, err
	}

	unlock := s.lockProfile(id)
	defer unlock()

	record, p, err := s.load(ctx, id)
	if err != nil {
		return domain.ProfileRecord{}, err
	}
	oldID := record.ID
	p.Finalize()

	record.ID = p.ID
	record.Name = p.Metadata.Name
	record.Snapshot = p.ToJSON()
	renamed, err := s.repo.RenameProfile(ctx, oldID, *record)
	if err != nil {
		return domain.ProfileRecord{}, err
	}
	if renamed.ID != oldID {
		s.profileLocks.Delete(oldID)
	}

	s.logAudit(ctx, "profile_finalize", "profile", renamed.ID, "previous_id="+oldID)
	return *renamed, nil
}

func (s *Service) SaveSnapshot(ctx context.Context, id string, req domain.SnapshotCreateRequest) (domain.ProfileSnapshot, error) {
	actor, err := requireEditor(ctx)
	if err != nil {
		return domain.ProfileSnapshot{}, err
	}

	record, err := s.repo.GetProfile(ctx, strings.TrimSpace(id))
	if err != nil {
		return domain.ProfileSnapshot{}, err
	}
	label := strings.TrimSpace(req.Label)
	if label == "" {
		label = record.Snapshot.Timestamp
	}

	created, err := s.repo.CreateSnapshot(ctx, domain.ProfileSnapshot{
		ID:        xid.New("snap"),
		ProfileID: record.ID,
		Label:     label,
		Snapshot:  record.Snapshot,
		CreatedBy: actor.Username,
		CreatedAt: s.clock(),
	})
	if err != nil {
		return domain.ProfileSnapshot{}, err
	}

	s.logAudit(ctx, "snapshot_create", "profile", record.ID, "snapshot="+created.ID)
	return *created, nil
}

func (s *Service) ListSnapshots(ctx context.Context, id string, limit int) ([]domain.ProfileSnapshot, error) {
	if limit < 1 {
		limit = 50
	}
	return s.repo.ListSnapshots(ctx, strings.TrimSpace(id), limit)
}

// DeleteProfile removes a profile and its history. Admin only; the manager PIN
// is checked by the caller.
func (s *Service) DeleteProfile(ctx context.Context, id string) error {
	if _, err := requireRole(ctx, domain.RoleAdmin); err != nil {
		return err
	}

	id = strings.TrimSpace(id)
	unlock := s.lockProfile(id)
	defer unlock()

	if err := s.repo.DeleteProfile(ctx, id); err != nil {
		return err
	}
	s.profileLocks.Delete(id)

	s.logAudit(ctx, "profile_delete", "profile", id, "")
	return nil
}

func (s *Service) ListAuditLogs(ctx context.Context, from time.Time, to time.Time, limit int) ([]domain.AuditLog, error) {
	if _, err := requireRole(ctx, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if to.IsZero() {
		to = s.clock().Add(time.Second)
	}
	if from.IsZero() {
		from = to.Add(-30 * 24 * time.Hour)
	}
	if !from.Before(to) {
		return nil, fmt.Errorf("%w: from must be before to", store.ErrInvalidInput)
	}
	if limit < 1 {
		limit = 100
	}
	return s.repo.ListAuditLogs(ctx, from, to, limit)
}

func (s *Service) logAudit(ctx context.Context, action string, entityType string, entityID string, detail string) {
	actor, ok := ActorFromContext(ctx)
	if !ok {
		actor = domain.Actor{Username: "system", Role: "system"}
	}

	if err := s.repo.CreateAuditLog(ctx, domain.AuditLog{
		ID:            xid.New("audit"),
		ActorUsername: actor.Username,
		ActorRole:     actor.Role,
		Action:        action,
		EntityType:    entityType,
		EntityID:      entityID,
		Detail:        detail,
		CreatedAt:     time.Now().UTC(),
	}); err != nil {
		log.Warn().Err(err).Str("component", "audit").
			Str("action", action).Str("entity", entityType+"/"+entityID).
			Msg("failed to write audit log")
	}
}
