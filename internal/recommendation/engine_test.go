package recommendation

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"pricegenie/backend/internal/cache"
	"pricegenie/backend/internal/config"
	"pricegenie/backend/internal/pricing"
)

type fakeProvider struct {
	mu       sync.Mutex
	response string
	err      error
	calls    int
	last     GenerateRequest
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Generate(_ context.Context, req GenerateRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.last = req
	return f.response, f.err
}

const validResponse = `{"summary":"Trim flour usage","suggestions":{"costing":[{"id":"Flour","output":"Use less","multiplier":{"unitPrice":1,"quantity":0.8}}],"multipliers":{"totalSupply":1.1,"srp":1.05},"insight":"**Flour** dominates cost."}}`

func newTestProfile(t *testing.T) *pricing.Profile {
	t.Helper()
	p := pricing.Initialize(pricing.ItemTypeProduct)
	if _, err := p.SetTotalSupply(10); err != nil {
		t.Fatalf("set supply: %v", err)
	}
	if _, err := p.SetPrice(50); err != nil {
		t.Fatalf("set price: %v", err)
	}
	p.SetListCostingBreakdown([]pricing.CostingItem{pricing.NewCostingItem("Flour", "kg", 40, 2)})
	return p
}

func TestSuggestUsesCacheUnlessRefresh(t *testing.T) {
	provider := &fakeProvider{response: validResponse}
	engine := NewEngine(provider, cache.NewMemoryGenieCache(time.Minute), time.Minute, config.PromptConfig{})
	profile := newTestProfile(t)
	ctx := context.Background()

	first, err := engine.Suggest(ctx, profile, Options{})
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if first.Summary != "Trim flour usage" || first.Suggestions.Multipliers.SRP != 1.05 {
		t.Fatalf("unexpected payload: %+v", first)
	}
	if _, err := engine.Suggest(ctx, profile, Options{}); err != nil {
		t.Fatalf("second suggest: %v", err)
	}
	if provider.calls != 1 {
		t.Fatalf("expected cached second call, provider called %d times", provider.calls)
	}
	if _, err := engine.Suggest(ctx, profile, Options{Refresh: true}); err != nil {
		t.Fatalf("refresh suggest: %v", err)
	}
	if provider.calls != 2 {
		t.Fatalf("expected refresh to bypass cache, provider called %d times", provider.calls)
	}
	if profile.Metadata.Genie != nil {
		t.Fatalf("suggest must not modify the profile")
	}
}

func TestSuggestPromptCarriesBreakdownAndLanguage(t *testing.T) {
	provider := &fakeProvider{response: validResponse}
	engine := NewEngine(provider, nil, 0, config.PromptConfig{Language: "Filipino", Temperature: 0.5})

	if _, err := engine.Suggest(context.Background(), newTestProfile(t), Options{}); err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if !strings.Contains(provider.last.Prompt, "in Filipino") {
		t.Fatalf("expected configured language in prompt, got %q", provider.last.Prompt)
	}
	if !strings.Contains(provider.last.Prompt, "Name: Flour") {
		t.Fatalf("expected costing breakdown in prompt, got %q", provider.last.Prompt)
	}
	if provider.last.Temperature != 0.5 || !provider.last.JSON {
		t.Fatalf("unexpected request options: %+v", provider.last)
	}
	if !strings.Contains(provider.last.SystemInstruction, "single JSON object") {
		t.Fatalf("expected default system instruction")
	}

	if _, err := engine.Suggest(context.Background(), newTestProfile(t), Options{Language: "Japanese", Refresh: true}); err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if !strings.Contains(provider.last.Prompt, "in Japanese") {
		t.Fatalf("expected request language to win, got %q", provider.last.Prompt)
	}
}

func TestSuggestErrors(t *testing.T) {
	ctx := context.Background()

	var nilEngine *Engine
	if _, err := nilEngine.Suggest(ctx, newTestProfile(t), Options{}); !errors.Is(err, ErrNoProvider) {
		t.Fatalf("expected ErrNoProvider, got %v", err)
	}
	if _, err := NewEngine(nil, nil, 0, config.PromptConfig{}).Suggest(ctx, newTestProfile(t), Options{}); !errors.Is(err, ErrNoProvider) {
		t.Fatalf("expected ErrNoProvider without provider, got %v", err)
	}

	empty := pricing.Initialize(pricing.ItemTypeService)
	engine := NewEngine(&fakeProvider{response: validResponse}, nil, 0, config.PromptConfig{})
	if _, err := engine.Suggest(ctx, empty, Options{}); !errors.Is(err, pricing.ErrEmptyList) {
		t.Fatalf("expected ErrEmptyList for empty costing, got %v", err)
	}

	upstream := errors.New("quota exceeded")
	engine = NewEngine(&fakeProvider{err: upstream}, nil, 0, config.PromptConfig{})
	if _, err := engine.Suggest(ctx, newTestProfile(t), Options{}); !errors.Is(err, upstream) {
		t.Fatalf("expected provider error, got %v", err)
	}

	engine = NewEngine(&fakeProvider{response: `{"summary":"no numbers"}`}, nil, 0, config.PromptConfig{})
	if _, err := engine.Suggest(ctx, newTestProfile(t), Options{}); !errors.Is(err, pricing.ErrInvalidPayload) {
		t.Fatalf("expected invalid payload, got %v", err)
	}
}

func TestDecodePayloadRepairsModelOutput(t *testing.T) {
	fenced := "```json\n" + validResponse + "\n```"
	payload, err := decodePayload(fenced)
	if err != nil {
		t.Fatalf("decode fenced: %v", err)
	}
	if len(payload.Suggestions.Costing) != 1 || payload.Suggestions.Costing[0].ID != "Flour" {
		t.Fatalf("unexpected costing: %+v", payload.Suggestions.Costing)
	}

	trailingComma := `{"summary":"ok","suggestions":{"costing":[],"multipliers":{"totalSupply":1,"srp":1.2,},},}`
	payload, err = decodePayload(trailingComma)
	if err != nil {
		t.Fatalf("decode trailing comma: %v", err)
	}
	if payload.Suggestions.Multipliers.SRP != 1.2 {
		t.Fatalf("unexpected srp: %v", payload.Suggestions.Multipliers.SRP)
	}

	if _, err := decodePayload("   "); err == nil {
		t.Fatalf("expected error for empty output")
	}
}

func TestRenderInsight(t *testing.T) {
	html, err := RenderInsight("**Flour** dominates cost.\n\n<script>alert(1)</script>")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "<strong>Flour</strong>") {
		t.Fatalf("expected bold markup, got %q", html)
	}
	if strings.Contains(html, "<script>") {
		t.Fatalf("raw html must be dropped, got %q", html)
	}
}
