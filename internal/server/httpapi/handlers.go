package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"auracx/internal/logging"
	"auracx/internal/orchestrator"
)

// ChatHandler serves the chat endpoint.
type ChatHandler struct {
	orch   *orchestrator.Orchestrator
	logger logging.Logger
}

// NewChatHandler creates the handler over a wired orchestrator.
func NewChatHandler(orch *orchestrator.Orchestrator, logger logging.Logger) *ChatHandler {
	return &ChatHandler{orch: orch, logger: logging.OrNop(logger)}
}

// Chat handles POST /chat. Malformed bodies are the only 4xx this endpoint
// produces; every well-formed request gets a 200 with a ChatResponse, even
// when the orchestration degraded internally.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req orchestrator.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Rejected malformed chat request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request",
			"details": err.Error(),
		})
		return
	}

	resp := h.orch.Process(c.Request.Context(), req)
	c.JSON(http.StatusOK, resp)
}
