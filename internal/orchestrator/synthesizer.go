package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"auracx/internal/intent"
	"auracx/internal/llm"
	"auracx/internal/logging"
	"auracx/internal/rag"
)

// dataBudget bounds the serialized agent data embedded in the phrasing
// prompt.
const dataBudget = 1000

const responseSystemPrompt = `You are AuraCX - a hyper-personalized customer service AI.

Generate a helpful, accurate, and personalized response based on the intent, data, and context provided.
Keep responses concise and actionable. Include relevant offers when applicable.
Format: Natural conversation, avoid technical jargon.`

const (
	toolingFailureMessage = "I'm having trouble processing your request. Please try again."
	missingOrderIDMessage = "I'd be happy to check on your order. Could you share your order number?"
)

// Synthesizer turns either path's structured output into the final
// ChatResponse. Escalation is its universal fallback: when phrasing
// fails, the customer still gets an apologetic response and a human
// gets the signal.
type Synthesizer struct {
	client llm.Client
	logger logging.Logger
}

// NewSynthesizer creates a response synthesizer.
func NewSynthesizer(client llm.Client, logger logging.Logger) *Synthesizer {
	return &Synthesizer{client: client, logger: logging.OrNop(logger)}
}

// SynthesizeTooling phrases the agent data bag into natural language with
// one completion call.
func (s *Synthesizer) SynthesizeTooling(ctx context.Context, req ChatRequest, judgment intent.Judgment, data AgentData) ChatResponse {
	// A missing required entity short-circuits phrasing: ask for the
	// entity instead of narrating an empty bag.
	if data.MissingEntity != "" {
		return ChatResponse{
			Message:            missingOrderIDMessage,
			Intent:             judgment.Intent,
			Emotion:            judgment.Emotion,
			Confidence:         judgment.Confidence,
			Mode:               ModeTooling,
			Data:               data,
			RequiresEscalation: false,
			Timestamp:          time.Now(),
		}
	}

	prompt := s.buildPrompt(req, judgment, data)

	resp, err := s.client.Complete(ctx, llm.CompletionRequest{
		Messages:    llm.UserPrompt(responseSystemPrompt, prompt),
		Temperature: 0.7,
		MaxTokens:   500,
	})
	if err != nil {
		s.logger.Error("Response generation error: %v", err)
		return ChatResponse{
			Message:            toolingFailureMessage,
			Intent:             judgment.Intent,
			Emotion:            judgment.Emotion,
			Confidence:         0.0,
			Mode:               ModeTooling,
			RequiresEscalation: true,
			Timestamp:          time.Now(),
		}
	}

	return ChatResponse{
		Message:            resp.Content,
		Intent:             judgment.Intent,
		Emotion:            judgment.Emotion,
		Confidence:         judgment.Confidence,
		Mode:               ModeTooling,
		Data:               data,
		RequiresEscalation: false,
		Timestamp:          time.Now(),
	}
}

// WrapRAG converts a pipeline result into the response contract,
// forwarding confidence and escalation unchanged.
func (s *Synthesizer) WrapRAG(result rag.Result) ChatResponse {
	return ChatResponse{
		Message:    result.Answer,
		Confidence: result.Confidence,
		Mode:       ModeRAG,
		Data: RAGData{
			RewrittenQuery: result.RewrittenQuery,
			Sources:        result.SourceIDs,
			SourceCount:    result.SourceCount,
		},
		RequiresEscalation: result.RequiresEscalation,
		Timestamp:          time.Now(),
	}
}

func (s *Synthesizer) buildPrompt(req ChatRequest, judgment intent.Judgment, data AgentData) string {
	serialized, err := json.Marshal(data)
	if err != nil {
		serialized = []byte("{}")
	}
	if len(serialized) > dataBudget {
		serialized = serialized[:dataBudget]
	}

	return fmt.Sprintf(`Based on the customer's message and intent analysis, generate a personalized response.

Customer message: %s

Intent: %s
Emotion: %s
Confidence: %.2f
Location: %v, %v

Data:
%s

Generate a concise, helpful response that addresses their need.`,
		req.Message,
		judgment.Intent,
		judgment.Emotion,
		judgment.Confidence,
		req.Location.Latitude, req.Location.Longitude,
		serialized)
}
