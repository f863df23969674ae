package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/agentic-procure/rfp-service/internal/models"
	"github.com/agentic-procure/rfp-service/internal/services"
	"github.com/agentic-procure/rfp-service/internal/utils"
)

// RFPHandler - structure for handling RFP HTTP requests.
type RFPHandler struct {
	Service *services.RFPService
	Logger  *log.Logger
	Timeout time.Duration
}

// NewRFPHandler creates a new RFPHandler instance.
func NewRFPHandler(service *services.RFPService, logger *log.Logger, timeout time.Duration) *RFPHandler {
	return &RFPHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// GetRFPs handles requests for listing RFPs.
func (h *RFPHandler) GetRFPs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	limitStr := r.URL.Query().Get("limit")
	offsetStr := r.URL.Query().Get("offset")
	statuses := r.URL.Query()["status"]

	rfps, err := h.Service.FetchRFPs(ctx, limitStr, offsetStr, statuses)
	if err != nil {
		h.Logger.Println(err)
		utils.SendError(w, err, "failed to fetch rfps")
		return
	}
	if rfps == nil {
		rfps = []models.RFP{}
	}

	writeJSON(w, h.Logger, rfps)
}

// CreateRFP handles requests for creating an RFP.
func (h *RFPHandler) CreateRFP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var rfpReq models.RFPRequest
	if err := json.NewDecoder(r.Body).Decode(&rfpReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rfp, err := h.Service.CreateRFP(ctx, rfpReq)
	if err != nil {
		h.Logger.Println(err)
		utils.SendError(w, err, "failed to create rfp")
		return
	}

	writeJSON(w, h.Logger, rfp)
}

// GetRFP handles requests for fetching one RFP.
func (h *RFPHandler) GetRFP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	rfpID := r.PathValue("rfpId")

	rfp, err := h.Service.GetRFP(ctx, rfpID)
	if err != nil {
		h.Logger.Println(err)
		utils.SendError(w, err, "failed to fetch rfp")
		return
	}

	writeJSON(w, h.Logger, rfp)
}

// UpdateRFPStatus handles requests for advancing the RFP lifecycle status.
func (h *RFPHandler) UpdateRFPStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only PUT is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	rfpID := r.PathValue("rfpId")
	status := r.URL.Query().Get("status")

	rfp, err := h.Service.UpdateRFPStatus(ctx, rfpID, status)
	if err != nil {
		h.Logger.Println(err)
		utils.SendError(w, err, "failed to update rfp status")
		return
	}

	writeJSON(w, h.Logger, rfp)
}

// CompleteStep handles requests for completing a workflow step.
func (h *RFPHandler) CompleteStep(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	rfpID := r.PathValue("rfpId")
	step := r.PathValue("step")

	var payload map[string]interface{}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	rfp, err := h.Service.CompleteWorkflowStep(ctx, rfpID, step, payload)
	if err != nil {
		h.Logger.Println(err)
		utils.SendError(w, err, "failed to complete workflow step")
		return
	}

	writeJSON(w, h.Logger, rfp)
}

// SkipStep handles requests for skipping a workflow step.
func (h *RFPHandler) SkipStep(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	rfpID := r.PathValue("rfpId")
	step := r.PathValue("step")

	rfp, err := h.Service.SkipWorkflowStep(ctx, rfpID, step)
	if err != nil {
		h.Logger.Println(err)
		utils.SendError(w, err, "failed to skip workflow step")
		return
	}

	writeJSON(w, h.Logger, rfp)
}

// DeleteRFP handles requests for deleting an RFP with its artifacts.
func (h *RFPHandler) DeleteRFP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only DELETE is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	rfpID := r.PathValue("rfpId")

	if err := h.Service.DeleteRFP(ctx, rfpID); err != nil {
		h.Logger.Println(err)
		utils.SendError(w, err, "failed to delete rfp")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, logger *log.Logger, value interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(value); err != nil {
		logger.Println(err)
	}
}
