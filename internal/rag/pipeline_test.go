package rag

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auracx/internal/llm"
)

// scriptedBackend branches on the distinctive prompt of each stage.
func scriptedBackend(t *testing.T, rerankScore, verdict string) *llm.MockClient {
	t.Helper()
	return &llm.MockClient{
		RespondFunc: func(req llm.CompletionRequest) (string, error) {
			prompt := req.Messages[len(req.Messages)-1].Content
			switch {
			case strings.Contains(prompt, "Rewrite this vague customer query"):
				return "Intent: warm drink. Emotion: cold. Context: winter morning.", nil
			case strings.Contains(prompt, "Rate how relevant"):
				return rerankScore, nil
			case strings.Contains(prompt, "helpful customer service AI"):
				return "Try the hot cocoa at Starbucks Downtown with code HOT10.", nil
			case strings.Contains(prompt, "consistent with the sources"):
				return verdict, nil
			default:
				return "", fmt.Errorf("unexpected prompt: %s", prompt)
			}
		},
	}
}

func TestPipelineEmptyCorpusEscalates(t *testing.T) {
	pipeline := NewPipeline(scriptedBackend(t, "0.8", "Yes"), newTestIndex(t, nil), PipelineConfig{}, nil, nil)

	result := pipeline.Process(context.Background(), "I'm cold, what should I get?")

	assert.LessOrEqual(t, result.Confidence, 0.3)
	assert.True(t, result.RequiresEscalation)
	assert.Equal(t, 0, result.SourceCount)
	assert.Empty(t, result.SourceIDs)
}

func TestPipelineHappyPath(t *testing.T) {
	pipeline := NewPipeline(scriptedBackend(t, "0.8", "Yes, the answer is consistent."), newTestIndex(t, testDocuments()), PipelineConfig{}, nil, nil)

	result := pipeline.Process(context.Background(), "I'm cold, what should I get?")

	assert.False(t, result.RequiresEscalation)
	assert.Contains(t, result.Answer, "hot cocoa")
	// Three retained documents: 0.6 + 3*0.1.
	assert.InDelta(t, 0.9, result.Confidence, 1e-9)
	assert.Equal(t, 3, result.SourceCount)
	assert.Len(t, result.SourceIDs, 3)
	assert.NotEmpty(t, result.RewrittenQuery)
}

func TestPipelineHallucinationVeto(t *testing.T) {
	pipeline := NewPipeline(scriptedBackend(t, "0.8", "No, it contradicts the sources."), newTestIndex(t, testDocuments()), PipelineConfig{}, nil, nil)

	result := pipeline.Process(context.Background(), "I'm cold, what should I get?")

	assert.True(t, result.RequiresEscalation)
	assert.Equal(t, escalationAnswer, result.Answer)
	assert.InDelta(t, 0.4, result.Confidence, 1e-9)
}

func TestPipelineRewriteFailureFallsBack(t *testing.T) {
	backend := &llm.MockClient{
		RespondFunc: func(req llm.CompletionRequest) (string, error) {
			prompt := req.Messages[len(req.Messages)-1].Content
			if strings.Contains(prompt, "Rewrite this vague customer query") {
				return "", fmt.Errorf("backend unavailable")
			}
			if strings.Contains(prompt, "Rate how relevant") {
				return "0.7", nil
			}
			if strings.Contains(prompt, "consistent with the sources") {
				return "yes", nil
			}
			return "an answer", nil
		},
	}
	pipeline := NewPipeline(backend, newTestIndex(t, testDocuments()), PipelineConfig{}, nil, nil)

	query := "I'm cold, what should I get?"
	result := pipeline.Process(context.Background(), query)

	assert.Equal(t, query, result.RewrittenQuery)
	assert.False(t, result.RequiresEscalation)
}

func TestPipelineTotalBackendFailureStillAnswers(t *testing.T) {
	backend := &llm.MockClient{Err: fmt.Errorf("quota exceeded")}
	pipeline := NewPipeline(backend, newTestIndex(t, testDocuments()), PipelineConfig{}, nil, nil)

	result := pipeline.Process(context.Background(), "anything at all")

	// Rewrite falls back, rerank defaults, generation falls back to the
	// fixed text, and the failed consistency check does not flag.
	assert.NotEmpty(t, result.Answer)
	assert.False(t, result.RequiresEscalation)
	assert.Equal(t, generateFallback, result.Answer)
}

func TestPipelineRerankFailureKeepsRetrievalOrder(t *testing.T) {
	backend := &llm.MockClient{
		RespondFunc: func(req llm.CompletionRequest) (string, error) {
			prompt := req.Messages[len(req.Messages)-1].Content
			if strings.Contains(prompt, "Rewrite this vague customer query") {
				return "", fmt.Errorf("rewriter down")
			}
			if strings.Contains(prompt, "Rate how relevant") {
				return "", fmt.Errorf("scoring down")
			}
			if strings.Contains(prompt, "consistent with the sources") {
				return "yes", nil
			}
			return "ok", nil
		},
	}
	index := newTestIndex(t, testDocuments())
	pipeline := NewPipeline(backend, index, PipelineConfig{}, nil, nil)

	// Query chosen so every document gets a distinct similarity and the
	// retrieval order is unambiguous.
	query := "cold hot cocoa customer"
	retrieved, err := index.Search(context.Background(), query, 5)
	require.NoError(t, err)

	result := pipeline.Process(context.Background(), query)
	require.Len(t, result.SourceIDs, 3)
	for i, id := range result.SourceIDs {
		assert.Equal(t, retrieved[i].Document.ID, id)
	}
}

func TestExtractScore(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"0.8", 0.8},
		{"Score: 0.75, because the need matches.", 0.75},
		{"I would rate this 1 out of 1.", 1},
		{"5", 1},      // clamped high
		{"-3.0", 0},   // clamped low
		{"no numbers here", defaultRerankScore},
		{"", defaultRerankScore},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.want, extractScore(tc.in), 1e-9, "input %q", tc.in)
	}
}

func TestContainsWordNo(t *testing.T) {
	assert.True(t, containsWordNo("No."))
	assert.True(t, containsWordNo("no, it contradicts"))
	assert.False(t, containsWordNo("Yes, consistent."))
	assert.False(t, containsWordNo("I know nothing"))
}
