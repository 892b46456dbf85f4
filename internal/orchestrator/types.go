package orchestrator

import (
	"time"

	"auracx/internal/knowledge"
)

// Mode records which execution path produced a response.
type Mode string

const (
	ModeTooling Mode = "tooling"
	ModeRAG     Mode = "rag"
)

// CustomerProfile carries optional personalization context.
type CustomerProfile struct {
	CustomerID     string           `json:"customer_id"`
	PastVisits     []map[string]any `json:"past_visits,omitempty"`
	Preferences    map[string]any   `json:"preferences,omitempty"`
	WeatherContext string           `json:"weather_context,omitempty"`
}

// ChatRequest is the inbound message contract.
type ChatRequest struct {
	Message         string             `json:"message" binding:"required"`
	CustomerID      string             `json:"customer_id" binding:"required"`
	Location        knowledge.Location `json:"location" binding:"required"`
	CustomerProfile *CustomerProfile   `json:"customer_profile,omitempty"`
	Context         map[string]any     `json:"context,omitempty"`
}

// ChatResponse is the single response shape both modes populate. Every
// request produces exactly one ChatResponse.
type ChatResponse struct {
	Message            string    `json:"message"`
	Intent             string    `json:"intent,omitempty"`
	Emotion            string    `json:"emotion,omitempty"`
	Confidence         float64   `json:"confidence"`
	Mode               Mode      `json:"mode"`
	Data               any       `json:"data,omitempty"`
	RequiresEscalation bool      `json:"requires_escalation"`
	Timestamp          time.Time `json:"timestamp"`
}

// AgentData is the structured bag assembled by the tooling dispatcher and
// read by the synthesizer. Each field is a typed agent result; absence
// means the agent was not consulted or found nothing.
type AgentData struct {
	Intent   string         `json:"intent"`
	Emotion  string         `json:"emotion,omitempty"`
	Entities map[string]any `json:"entities,omitempty"`

	StoreHours   *knowledge.StoreHours    `json:"store_hours,omitempty"`
	NearbyStores []knowledge.NearbyStore  `json:"nearby_stores,omitempty"`
	Inventory    []knowledge.Availability `json:"inventory,omitempty"`
	Order        *knowledge.OrderStatus   `json:"order,omitempty"`
	Offers       []knowledge.Offer        `json:"offers,omitempty"`

	// MissingEntity names a required entity the classifier failed to
	// extract, e.g. the order id for an order_status request.
	MissingEntity string `json:"missing_entity,omitempty"`
}

// RAGData is the supplementary payload attached to retrieval-mode
// responses.
type RAGData struct {
	RewrittenQuery string   `json:"rewritten_query,omitempty"`
	Sources        []string `json:"sources,omitempty"`
	SourceCount    int      `json:"source_count"`
}
