package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"pricegenie/backend/internal/domain"
	"pricegenie/backend/internal/pricing"
	"pricegenie/backend/internal/recommendation"
)

// SetSimulation switches simulation on or off. A nil Enabled toggles.
func (s *Service) SetSimulation(ctx context.Context, id string, req domain.SimulationRequest) (domain.ProfileRecord, error) {
	return s.mutate(ctx, id, "simulation_set", func(p *pricing.Profile) (string, error) {
		if req.Enabled == nil {
			p.ToggleSimulation()
		} else {
			p.SetSimulation(*req.Enabled)
		}
		return fmt.Sprintf("simulating=%t", p.Metadata.IsSimulating), nil
	})
}

func (s *Service) UpdateGlobalMultipliers(ctx context.Context, id string, req domain.MultipliersRequest) (domain.ProfileRecord, error) {
	if req.TotalSupply == nil && req.SRP == nil {
		return domain.ProfileRecord{}, fmt.Errorf("%w: no multipliers to update", pricing.ErrValidation)
	}

	return s.mutate(ctx, id, "multipliers_update", func(p *pricing.Profile) (string, error) {
		if req.TotalSupply != nil {
			if _, err := p.UpdateTotalSupplyMultiplier(*req.TotalSupply); err != nil {
				return "", err
			}
		}
		if req.SRP != nil {
			if _, err := p.UpdateSRPMultiplier(*req.SRP); err != nil {
				return "", err
			}
		}
		m := p.Metadata.Multipliers
		return fmt.Sprintf("total_supply=%g,srp=%g", m.TotalSupply, m.SRP), nil
	})
}

// RequestGenie asks the recommendation engine for suggestions and attaches
// them to the profile.
func (s *Service) RequestGenie(ctx context.Context, id string, req domain.GenieRequest) (domain.ProfileRecord, error) {
	if _, err := requireEditor(ctx); err != nil {
		return domain.ProfileRecord{}, err
	}
	if !s.genie.Available() {
		return domain.ProfileRecord{}, ErrGenieUnavailable
	}

	_, current, err := s.load(ctx, id)
	if err != nil {
		return domain.ProfileRecord{}, err
	}

	payload, err := s.genie.Suggest(ctx, current, recommendation.Options{
		Language: strings.TrimSpace(req.Language),
		Refresh:  req.Refresh,
	})
	if err != nil {
		switch {
		case errors.Is(err, pricing.ErrEmptyList), errors.Is(err, pricing.ErrInvalidPayload):
			return domain.ProfileRecord{}, err
		case errors.Is(err, recommendation.ErrNoProvider):
			return domain.ProfileRecord{}, ErrGenieUnavailable
		}
		log.Error().Err(err).Str("component", "service").Str("profile_id", id).Msg("genie request failed")
		return domain.ProfileRecord{}, fmt.Errorf("%w: %v", ErrGenieUnavailable, err)
	}

	return s.mutate(ctx, id, "genie_apply", func(p *pricing.Profile) (string, error) {
		return applyGenie(p, payload, req.SyncMultipliers)
	})
}

// ApplyGeniePayload attaches a caller-supplied payload document.
func (s *Service) ApplyGeniePayload(ctx context.Context, id string, raw []byte, syncMultipliers bool) (domain.ProfileRecord, error) {
	payload, err := pricing.ParseGeniePayload(raw)
	if err != nil {
		return domain.ProfileRecord{}, err
	}
	return s.mutate(ctx, id, "genie_apply", func(p *pricing.Profile) (string, error) {
		return applyGenie(p, payload, syncMultipliers)
	})
}

func applyGenie(p *pricing.Profile, payload *pricing.GenieSuggestionPayload, syncMultipliers bool) (string, error) {
	if _, err := p.ApplyGenieResults(payload); err != nil {
		return "", err
	}
	if syncMultipliers {
		if _, err := p.SetCostingItemMultipliersFromGenie(); err != nil {
			return "", err
		}
	}
	p.RefreshCalculations()
	return fmt.Sprintf("suggestions=%d,synced=%t", len(payload.Suggestions.Costing), syncMultipliers), nil
}

func (s *Service) ClearGenie(ctx context.Context, id string) (domain.ProfileRecord, error) {
	return s.mutate(ctx, id, "genie_clear", func(p *pricing.Profile) (string, error) {
		p.ClearGenieResults()
		return "", nil
	})
}

func (s *Service) SyncGenieMultipliers(ctx context.Context, id string) (domain.ProfileRecord, error) {
	return s.mutate(ctx, id, "genie_sync", func(p *pricing.Profile) (string, error) {
		if _, err := p.SetCostingItemMultipliersFromGenie(); err != nil {
			return "", err
		}
		return "", nil
	})
}

func (s *Service) GenieInsight(ctx context.Context, id string) (domain.GenieInsightResponse, error) {
	_, p, err := s.load(ctx, id)
	if err != nil {
		return domain.GenieInsightResponse{}, err
	}
	genie := p.Metadata.Genie
	if genie == nil {
		return domain.GenieInsightResponse{}, pricing.ErrMissingGenieData
	}

	html, err := recommendation.RenderInsight(genie.Suggestions.Insight)
	if err != nil {
		return domain.GenieInsightResponse{}, err
	}
	return domain.GenieInsightResponse{
		Summary: genie.Summary,
		Insight: genie.Suggestions.Insight,
		HTML:    html,
	}, nil
}

// ExportPrompt returns the text block sent to the recommendation model.
func (s *Service) ExportPrompt(ctx context.Context, id string) (string, error) {
	_, p, err := s.load(ctx, id)
	if err != nil {
		return "", err
	}
	return p.ParseForGemini()
}
