package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/agentic-procure/rfp-service/internal/services"
	"github.com/agentic-procure/rfp-service/internal/utils"
)

// AgentHandler - structure for handling agent query HTTP requests.
type AgentHandler struct {
	Service *services.AgentService
	Logger  *log.Logger
	Timeout time.Duration
}

// NewAgentHandler creates a new AgentHandler instance.
func NewAgentHandler(service *services.AgentService, logger *log.Logger, timeout time.Duration) *AgentHandler {
	return &AgentHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// Query handles requests for narrative agent queries.
func (h *AgentHandler) Query(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var query services.AgentQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	answer, err := h.Service.ProcessQuery(ctx, query)
	if err != nil {
		h.Logger.Println(err)
		utils.SendError(w, err, "failed to process agent query")
		return
	}

	writeJSON(w, h.Logger, answer)
}
