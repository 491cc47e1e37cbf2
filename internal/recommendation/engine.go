package recommendation

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"pricegenie/backend/internal/cache"
	"pricegenie/backend/internal/config"
	"pricegenie/backend/internal/pricing"
)

var ErrNoProvider = errors.New("no recommendation provider configured")

const (
	defaultLanguage    = "English"
	defaultTemperature = float32(0.2)

	defaultSystemInstruction = `You are a pricing analyst for small businesses.
You receive a product's financial breakdown and its costing items.
Reply with a single JSON object and nothing else, shaped as:
{"summary": string, "suggestions": {"costing": [{"id": string, "output": string, "multiplier": {"unitPrice": number, "quantity": number}}], "multipliers": {"totalSupply": number, "srp": number}, "insight": string}}
Each costing id must equal the label of one costing item. Multipliers are non-negative factors where 1 means unchanged.
The insight field is a short Markdown explanation of the recommendation.`
)

type Options struct {
	Language string
	Refresh  bool
}

type Engine struct {
	provider Provider
	cache    cache.GenieCache
	cacheTTL time.Duration
	prompt   config.PromptConfig
}

func NewEngine(provider Provider, cacheStore cache.GenieCache, cacheTTL time.Duration, prompt config.PromptConfig) *Engine {
	if cacheStore == nil {
		cacheStore = cache.NoopGenieCache{}
	}
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	if strings.TrimSpace(prompt.SystemInstruction) == "" {
		prompt.SystemInstruction = defaultSystemInstruction
	}
	if strings.TrimSpace(prompt.Language) == "" {
		prompt.Language = defaultLanguage
	}
	if prompt.Temperature <= 0 {
		prompt.Temperature = defaultTemperature
	}

	return &Engine{
		provider: provider,
		cache:    cacheStore,
		cacheTTL: cacheTTL,
		prompt:   prompt,
	}
}

func (e *Engine) Available() bool {
	return e != nil && e.provider != nil
}

// Suggest asks the provider for recommendations on the profile's current
// state. Results are cached by prompt fingerprint unless opts.Refresh is set.
// The profile is not modified.
func (e *Engine) Suggest(ctx context.Context, profile *pricing.Profile, opts Options) (*pricing.GenieSuggestionPayload, error) {
	if !e.Available() {
		return nil, ErrNoProvider
	}

	breakdown, err := profile.ParseForGemini()
	if err != nil {
		return nil, err
	}

	language := strings.TrimSpace(opts.Language)
	if language == "" {
		language = e.prompt.Language
	}
	prompt := buildPrompt(breakdown, language)
	cacheKey := buildCacheKey(e.provider.Name(), e.prompt.SystemInstruction, prompt)

	if !opts.Refresh {
		if cached, ok, err := e.cache.Get(ctx, cacheKey); err == nil && ok {
			return cached, nil
		} else if err != nil {
			log.Warn().Err(err).Str("component", "recommendation").Msg("genie cache read failed")
		}
	}

	startedAt := time.Now()
	raw, err := e.provider.Generate(ctx, GenerateRequest{
		Prompt:            prompt,
		SystemInstruction: e.prompt.SystemInstruction,
		Temperature:       e.prompt.Temperature,
		JSON:              true,
	})
	if err != nil {
		return nil, err
	}

	payload, err := decodePayload(raw)
	if err != nil {
		log.Warn().Err(err).Str("component", "recommendation").Str("profile_id", profile.ID).
			Msg("discarding unparseable model output")
		return nil, err
	}

	log.Info().Str("component", "recommendation").Str("profile_id", profile.ID).
		Int("suggestions", len(payload.Suggestions.Costing)).
		Dur("latency", time.Since(startedAt)).Msg("genie suggestions generated")

	if err := e.cache.Set(ctx, cacheKey, payload, e.cacheTTL); err != nil {
		log.Warn().Err(err).Str("component", "recommendation").Msg("genie cache write failed")
	}
	return payload, nil
}

func buildPrompt(breakdown string, language string) string {
	var b strings.Builder
	b.WriteString("Review the pricing below and suggest multipliers that improve profit without hurting demand.\n")
	fmt.Fprintf(&b, "Write summary, output and insight in %s.\n\n", language)
	b.WriteString(breakdown)
	return b.String()
}

func buildCacheKey(model string, instruction string, prompt string) string {
	hash := sha1.Sum([]byte(strings.Join([]string{model, instruction, prompt}, "|")))
	return hex.EncodeToString(hash[:])
}
