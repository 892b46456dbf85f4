package intent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kaptinlin/jsonrepair"

	"auracx/internal/llm"
	"auracx/internal/logging"
)

// Intent categories.
const (
	StoreHours             = "store_hours"
	StockCheck             = "stock_check"
	OrderStatus            = "order_status"
	LocationRecommendation = "location_recommendation"
	ProductRecommendation  = "product_recommendation"
	Other                  = "other"
)

var knownIntents = map[string]bool{
	StoreHours:             true,
	StockCheck:             true,
	OrderStatus:            true,
	LocationRecommendation: true,
	ProductRecommendation:  true,
	Other:                  true,
}

// Judgment is the structured result of classifying one message. It is
// produced once per request and immutable thereafter; Confidence is the
// only field the router inspects.
type Judgment struct {
	Intent     string         `json:"intent"`
	Confidence float64        `json:"confidence"`
	Emotion    string         `json:"emotion,omitempty"`
	Entities   map[string]any `json:"entities,omitempty"`
}

const systemPrompt = `You are an intent detection expert. Analyze the user message and respond with JSON.

Detect:
1. Intent: "store_hours", "stock_check", "order_status", "location_recommendation", "product_recommendation", or "other"
2. Confidence: 0.0 to 1.0
3. Emotion: "positive", "negative", "neutral", "frustrated", "cold", "warm"
4. Entities: Extract relevant entities (store name, product, order ID, etc.)

Respond with valid JSON only.`

// Classifier converts a masked message into a Judgment with one completion
// call.
type Classifier struct {
	client llm.Client
	logger logging.Logger
}

// NewClassifier creates an intent classifier over the given backend.
func NewClassifier(client llm.Client, logger logging.Logger) *Classifier {
	return &Classifier{client: client, logger: logging.OrNop(logger)}
}

// Classify detects intent, confidence, emotion and entities. Any failure
// (transport, unparsable output) yields intent "other" with confidence
// 0.0, which the threshold rule then routes to the retrieval path.
func (c *Classifier) Classify(ctx context.Context, message string) Judgment {
	resp, err := c.client.Complete(ctx, llm.CompletionRequest{
		Messages:    llm.UserPrompt(systemPrompt, fmt.Sprintf("Analyze this message: '%s'", message)),
		Temperature: 0.3,
		MaxTokens:   500,
		JSONMode:    true,
	})
	if err != nil {
		c.logger.Error("Intent detection error: %v", err)
		return fallbackJudgment()
	}

	judgment, err := parseJudgment(resp.Content)
	if err != nil {
		c.logger.Warn("Unparsable intent response: %v", err)
		return fallbackJudgment()
	}
	return judgment
}

func fallbackJudgment() Judgment {
	return Judgment{
		Intent:     Other,
		Confidence: 0.0,
		Emotion:    "neutral",
		Entities:   map[string]any{},
	}
}

// parseJudgment decodes the model's JSON, repairing malformed output once
// before giving up.
func parseJudgment(raw string) (Judgment, error) {
	var parsed struct {
		Intent     string         `json:"intent"`
		Confidence float64        `json:"confidence"`
		Emotion    string         `json:"emotion"`
		Entities   map[string]any `json:"entities"`
	}

	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(raw)
		if repairErr != nil {
			return Judgment{}, fmt.Errorf("parse intent JSON: %w", err)
		}
		if err := json.Unmarshal([]byte(repaired), &parsed); err != nil {
			return Judgment{}, fmt.Errorf("parse repaired intent JSON: %w", err)
		}
	}

	intent := parsed.Intent
	if !knownIntents[intent] {
		intent = Other
	}

	confidence := parsed.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	entities := parsed.Entities
	if entities == nil {
		entities = map[string]any{}
	}

	return Judgment{
		Intent:     intent,
		Confidence: confidence,
		Emotion:    parsed.Emotion,
		Entities:   entities,
	}, nil
}

// StringEntity returns an entity value as a string, with ok=false when the
// entity is absent or not a string-like value.
func (j Judgment) StringEntity(key string) (string, bool) {
	v, ok := j.Entities[key]
	if !ok {
		return "", false
	}
	switch val := v.(type) {
	case string:
		if val == "" {
			return "", false
		}
		return val, true
	case float64:
		return fmt.Sprintf("%.0f", val), true
	default:
		return "", false
	}
}
