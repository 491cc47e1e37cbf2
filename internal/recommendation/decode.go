package recommendation

import (
	"encoding/json"
	"errors"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"

	"pricegenie/backend/internal/pricing"
)

// decodePayload turns raw model output into a validated payload. Strict JSON
// is tried first, then a repaired document, then a lenient Hjson parse.
func decodePayload(raw string) (*pricing.GenieSuggestionPayload, error) {
	cleaned := stripCodeFence(raw)
	if cleaned == "" {
		return nil, errors.New("empty model response")
	}

	payload, err := pricing.ParseGeniePayload([]byte(cleaned))
	if err == nil {
		return payload, nil
	}
	firstErr := err

	if repaired, repairErr := jsonrepair.RepairJSON(cleaned); repairErr == nil {
		if payload, err := pricing.ParseGeniePayload([]byte(repaired)); err == nil {
			return payload, nil
		}
	}

	var lenient map[string]any
	if err := hjson.Unmarshal([]byte(cleaned), &lenient); err == nil {
		if normalized, err := json.Marshal(lenient); err == nil {
			if payload, err := pricing.ParseGeniePayload(normalized); err == nil {
				return payload, nil
			}
		}
	}

	return nil, firstErr
}

func stripCodeFence(input string) string {
	cleaned := strings.TrimSpace(input)
	if !strings.HasPrefix(cleaned, "```") || !strings.HasSuffix(cleaned, "```") {
		return cleaned
	}
	cleaned = strings.TrimSuffix(cleaned, "```")
	if newline := strings.IndexByte(cleaned, '\n'); newline >= 0 {
		cleaned = cleaned[newline+1:]
	} else {
		cleaned = strings.TrimPrefix(cleaned, "```")
	}
	return strings.TrimSpace(cleaned)
}
