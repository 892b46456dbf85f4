package llm

import (
	"context"
	"fmt"
	"sync"
)

// MockClient implements Client for testing and for running the server
// without a backend. Responses are consumed in order; RespondFunc, when set,
// takes precedence and can branch on the request contents.
type MockClient struct {
	ModelName   string
	Responses   []string
	Err         error
	RespondFunc func(req CompletionRequest) (string, error)

	mu       sync.Mutex
	next     int
	Requests []CompletionRequest
}

// NewMockClient returns a mock that answers every call with canned text.
func NewMockClient(responses ...string) *MockClient {
	return &MockClient{Responses: responses}
}

func (m *MockClient) Model() string {
	if m.ModelName != "" {
		return m.ModelName
	}
	return "mock"
}

// Complete records the request and returns the next scripted response.
func (m *MockClient) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests = append(m.Requests, req)

	if m.RespondFunc != nil {
		content, err := m.RespondFunc(req)
		if err != nil {
			return nil, err
		}
		return mockResponse(content), nil
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.Responses) == 0 {
		return mockResponse("This is a mock response. No backend calls were made."), nil
	}

	content := m.Responses[m.next]
	if m.next < len(m.Responses)-1 {
		m.next++
	}
	return mockResponse(content), nil
}

// CallCount returns how many completions were requested.
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Requests)
}

// LastRequest returns the most recent request, or an error if none was made.
func (m *MockClient) LastRequest() (CompletionRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Requests) == 0 {
		return CompletionRequest{}, fmt.Errorf("no requests recorded")
	}
	return m.Requests[len(m.Requests)-1], nil
}

func mockResponse(content string) *CompletionResponse {
	return &CompletionResponse{
		Content:    content,
		StopReason: "stop",
		Usage: TokenUsage{
			PromptTokens:     100,
			CompletionTokens: 50,
			TotalTokens:      150,
		},
	}
}
