package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auracx/internal/config"
	"auracx/internal/intent"
	"auracx/internal/knowledge"
	"auracx/internal/llm"
	"auracx/internal/observability"
	"auracx/internal/orchestrator"
	"auracx/internal/pii"
	"auracx/internal/rag"
)

func newTestServer(t *testing.T, client llm.Client) *Server {
	t.Helper()

	cfg := &config.Config{
		Environment:         "test",
		Port:                8000,
		ConfidenceThreshold: 0.7,
		TopK:                5,
		AllowedOrigins:      []string{"*"},
	}

	embedder, err := rag.NewLexicalEmbedder(rag.EmbedderConfig{})
	require.NoError(t, err)
	index, err := rag.NewIndex("http-test", embedder)
	require.NoError(t, err)

	stores := knowledge.NewStoreRepository(knowledge.FixtureStores())
	dispatcher := orchestrator.NewDispatcher(stores,
		knowledge.NewInventoryRepository(knowledge.FixtureInventory()),
		knowledge.NewOrderRepository(knowledge.FixtureOrders()),
		knowledge.NewOffersRepository(knowledge.FixtureOffers()),
		nil,
	)

	orch := orchestrator.New(
		pii.NewMasker(),
		intent.NewClassifier(client, nil),
		dispatcher,
		orchestrator.NewSynthesizer(client, nil),
		rag.NewPipeline(client, index, rag.PipelineConfig{}, nil, nil),
		orchestrator.Config{ConfidenceThreshold: cfg.ConfidenceThreshold},
		nil,
		nil,
	)

	metrics, err := observability.NewMetrics()
	require.NoError(t, err)

	return NewServer(cfg, orch, metrics, nil)
}

func TestHealthEndpoint(t *testing.T) {
	// Health must answer without any backend configured.
	server := newTestServer(t, llm.NewMockClient())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	server.Engine().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "test", body["environment"])
}

func TestRootEndpoint(t *testing.T) {
	server := newTestServer(t, llm.NewMockClient())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	server.Engine().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "AuraCX")
}

func TestMetricsEndpoint(t *testing.T) {
	server := newTestServer(t, llm.NewMockClient())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	server.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestChatRejectsMalformedBody(t *testing.T) {
	server := newTestServer(t, llm.NewMockClient())

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{not json`},
		{"missing message", `{"customer_id": "c1", "location": {"latitude": 1, "longitude": 1}}`},
		{"missing customer id", `{"message": "hi", "location": {"latitude": 1, "longitude": 1}}`},
		{"empty body", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			server.Engine().ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestChatHappyPath(t *testing.T) {
	client := &llm.MockClient{
		RespondFunc: func(req llm.CompletionRequest) (string, error) {
			if strings.Contains(req.Messages[0].Content, "intent detection expert") {
				return `{"intent": "store_hours", "confidence": 0.9, "emotion": "neutral", "entities": {}}`, nil
			}
			return "We're open until 9 PM.", nil
		},
	}
	server := newTestServer(t, client)

	body := `{
		"message": "Are you open right now?",
		"customer_id": "cust_1",
		"location": {"latitude": 40.7128, "longitude": -74.0060}
	}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	server.Engine().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp orchestrator.ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "We're open until 9 PM.", resp.Message)
	assert.Equal(t, orchestrator.ModeTooling, resp.Mode)
	assert.Equal(t, "store_hours", resp.Intent)
	assert.False(t, resp.RequiresEscalation)
}

func TestRequestIDPropagation(t *testing.T) {
	server := newTestServer(t, llm.NewMockClient())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "req-123")
	server.Engine().ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get(requestIDHeader))

	// Without a caller-supplied id the server mints one.
	w = httptest.NewRecorder()
	server.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}
