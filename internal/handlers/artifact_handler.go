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

// ArtifactHandler - structure for handling artifact HTTP requests.
type ArtifactHandler struct {
	Service *services.RFPService
	Logger  *log.Logger
	Timeout time.Duration
}

// NewArtifactHandler creates a new ArtifactHandler instance.
func NewArtifactHandler(service *services.RFPService, logger *log.Logger, timeout time.Duration) *ArtifactHandler {
	return &ArtifactHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// GenerateRequest represents the request body for artifact generation.
type GenerateRequest struct {
	ArtifactTypes []string               `json:"artifactTypes"`
	ProductData   models.ProductData     `json:"productData"`
	Requirements  models.RequirementData `json:"requirements"`
}

// GenerateArtifacts handles requests for generating artifacts.
func (h *ArtifactHandler) GenerateArtifacts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	rfpID := r.PathValue("rfpId")

	var generateReq GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&generateReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	artifactList, err := h.Service.GenerateArtifacts(ctx, rfpID, generateReq.ArtifactTypes, generateReq.ProductData, generateReq.Requirements)
	if err != nil {
		h.Logger.Println(err)
		utils.SendError(w, err, "failed to generate artifacts")
		return
	}

	writeJSON(w, h.Logger, artifactList)
}

// GetArtifacts handles requests for listing the artifacts of an RFP.
func (h *ArtifactHandler) GetArtifacts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	rfpID := r.PathValue("rfpId")
	types := r.URL.Query()["type"]

	artifactList, err := h.Service.ListArtifacts(ctx, rfpID, types)
	if err != nil {
		h.Logger.Println(err)
		utils.SendError(w, err, "failed to fetch artifacts")
		return
	}
	if artifactList == nil {
		artifactList = []models.Artifact{}
	}

	writeJSON(w, h.Logger, artifactList)
}

// GetArtifact handles requests for fetching one artifact.
func (h *ArtifactHandler) GetArtifact(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	rfpID := r.PathValue("rfpId")
	artifactID := r.PathValue("artifactId")

	artifact, err := h.Service.GetArtifact(ctx, rfpID, artifactID)
	if err != nil {
		h.Logger.Println(err)
		utils.SendError(w, err, "failed to fetch artifact")
		return
	}

	writeJSON(w, h.Logger, artifact)
}

// UpdateArtifactStatus handles requests for advancing an artifact's review status.
func (h *ArtifactHandler) UpdateArtifactStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only PUT is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	rfpID := r.PathValue("rfpId")
	artifactID := r.PathValue("artifactId")
	status := r.URL.Query().Get("status")

	artifact, err := h.Service.UpdateArtifactStatus(ctx, rfpID, artifactID, status)
	if err != nil {
		h.Logger.Println(err)
		utils.SendError(w, err, "failed to update artifact status")
		return
	}

	writeJSON(w, h.Logger, artifact)
}

// VerifyRequirement handles requests for verifying one compliance requirement.
func (h *ArtifactHandler) VerifyRequirement(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only PUT is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	rfpID := r.PathValue("rfpId")
	artifactID := r.PathValue("artifactId")
	requirementID := r.PathValue("requirementId")

	artifact, err := h.Service.VerifyComplianceRequirement(ctx, rfpID, artifactID, requirementID)
	if err != nil {
		h.Logger.Println(err)
		utils.SendError(w, err, "failed to verify requirement")
		return
	}

	writeJSON(w, h.Logger, artifact)
}
