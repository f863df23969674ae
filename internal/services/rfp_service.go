package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/agentic-procure/rfp-service/internal/artifacts"
	"github.com/agentic-procure/rfp-service/internal/models"
	"github.com/agentic-procure/rfp-service/internal/repository"
	"github.com/agentic-procure/rfp-service/internal/utils"
	"github.com/agentic-procure/rfp-service/internal/workflow"

	"github.com/google/uuid"
)

// RFPService owns all mutations of the RFP aggregate. Mutating operations are
// serialized per RFP id; the version check in the repository is the backstop
// at the storage boundary.
type RFPService struct {
	Repo      repository.RFPRepository
	Artifacts repository.ArtifactRepository
	locks     sync.Map // rfp id -> *sync.Mutex
}

// NewRFPService creates a new RFPService instance.
func NewRFPService(repo repository.RFPRepository, artifactRepo repository.ArtifactRepository) *RFPService {
	return &RFPService{Repo: repo, Artifacts: artifactRepo}
}

func (s *RFPService) lockRFP(rfpID string) func() {
	value, _ := s.locks.LoadOrStore(rfpID, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// CreateRFP creates a new RFP with the initial workflow.
func (s *RFPService) CreateRFP(ctx context.Context, rfpReq models.RFPRequest) (*models.RFP, error) {
	if rfpReq.Title == "" || rfpReq.Description == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required fields: title or description")
	}
	if rfpReq.Deadline.IsZero() {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required field: deadline")
	}
	now := time.Now().UTC()
	if rfpReq.Deadline.Before(now) {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "deadline must not be in the past")
	}

	budget := rfpReq.Budget
	if budget != nil && budget.Currency == "" {
		budget.Currency = "USD"
	}

	newRFP := models.RFP{
		ID:           uuid.New().String(),
		Title:        rfpReq.Title,
		Description:  rfpReq.Description,
		Products:     []string{},
		Suppliers:    []string{},
		Requirements: []string{},
		Status:       models.DraftRFP,
		Deadline:     rfpReq.Deadline,
		Workflow:     models.NewWorkflow(),
		Artifacts:    []models.Artifact{},
		Budget:       budget,
		Timeline:     models.Timeline{ResponseDeadline: rfpReq.Deadline},
		Version:      1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.CreateRFP(ctx, &newRFP); err != nil {
		return nil, err
	}
	return &newRFP, nil
}

// GetRFP returns an RFP with its artifact collection attached.
func (s *RFPService) GetRFP(ctx context.Context, rfpID string) (*models.RFP, error) {
	if rfpID == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required parameter: rfpId")
	}
	return s.loadAggregate(ctx, rfpID)
}

// FetchRFPs returns a page of RFPs, optionally filtered by status.
func (s *RFPService) FetchRFPs(ctx context.Context, limitStr, offsetStr string, statuses []string) ([]models.RFP, error) {
	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusBadRequest, err.Error())
	}

	allowedStatuses := map[models.RFPStatus]bool{
		models.DraftRFP:      true,
		models.PublishedRFP:  true,
		models.EvaluatingRFP: true,
		models.AwardedRFP:    true,
		models.ClosedRFP:     true,
	}
	for _, status := range statuses {
		if !allowedStatuses[models.RFPStatus(status)] {
			return nil, models.NewErrorResponse(http.StatusBadRequest, fmt.Sprintf("unsupported status: %s", status))
		}
	}
	return s.Repo.GetRFPs(ctx, limit, offset, statuses)
}

// CompleteWorkflowStep completes the current workflow step with the given
// payload and advances the workflow.
func (s *RFPService) CompleteWorkflowStep(ctx context.Context, rfpID, stepName string, payload map[string]interface{}) (*models.RFP, error) {
	step, err := parseStepName(stepName)
	if err != nil {
		return nil, err
	}

	unlock := s.lockRFP(rfpID)
	defer unlock()

	rfp, err := s.Repo.GetRFPByID(ctx, rfpID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := workflow.CompleteStep(rfp.Workflow, step, payload, now); err != nil {
		return nil, err
	}
	applyStepAssociations(rfp, step, payload)

	rfp.UpdatedAt = now
	if err := s.Repo.UpdateRFP(ctx, rfp); err != nil {
		return nil, err
	}
	return s.attachArtifacts(ctx, rfp)
}

// SkipWorkflowStep skips the current workflow step and advances the workflow.
func (s *RFPService) SkipWorkflowStep(ctx context.Context, rfpID, stepName string) (*models.RFP, error) {
	step, err := parseStepName(stepName)
	if err != nil {
		return nil, err
	}

	unlock := s.lockRFP(rfpID)
	defer unlock()

	rfp, err := s.Repo.GetRFPByID(ctx, rfpID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := workflow.SkipStep(rfp.Workflow, step, now); err != nil {
		return nil, err
	}

	rfp.UpdatedAt = now
	if err := s.Repo.UpdateRFP(ctx, rfp); err != nil {
		return nil, err
	}
	return s.attachArtifacts(ctx, rfp)
}

// GenerateArtifacts dispatches the requested artifact types and appends the
// results to the RFP's artifact collection. Regenerating a type appends a new
// artifact whose supersedes field points at the previously latest artifact of
// that type.
func (s *RFPService) GenerateArtifacts(ctx context.Context, rfpID string, types []string, product models.ProductData, requirements models.RequirementData) ([]models.Artifact, error) {
	artifactTypes := make([]models.ArtifactType, 0, len(types))
	for _, t := range types {
		artifactTypes = append(artifactTypes, models.ArtifactType(t))
	}

	unlock := s.lockRFP(rfpID)
	defer unlock()

	rfp, err := s.Repo.GetRFPByID(ctx, rfpID)
	if err != nil {
		return nil, err
	}

	generated, err := artifacts.Generate(rfp.ID, artifactTypes, product, requirements)
	if err != nil {
		return nil, err
	}

	existing, err := s.Artifacts.GetRFPArtifacts(ctx, rfp.ID, nil)
	if err != nil {
		return nil, err
	}
	latestByType := make(map[models.ArtifactType]string)
	for _, artifact := range existing {
		latestByType[artifact.Type] = artifact.ID
	}
	for i := range generated {
		generated[i].Supersedes = latestByType[generated[i].Type]
		latestByType[generated[i].Type] = generated[i].ID
	}

	if err := s.Artifacts.CreateArtifacts(ctx, generated); err != nil {
		return nil, err
	}

	rfp.UpdatedAt = time.Now().UTC()
	if err := s.Repo.UpdateRFP(ctx, rfp); err != nil {
		return nil, err
	}
	return generated, nil
}

// ListArtifacts returns the artifacts owned by an RFP, optionally filtered by type.
func (s *RFPService) ListArtifacts(ctx context.Context, rfpID string, types []string) ([]models.Artifact, error) {
	for _, t := range types {
		if !artifacts.KnownType(models.ArtifactType(t)) {
			return nil, models.NewUnknownArtifactType(fmt.Sprintf("unknown artifact type: %s", t))
		}
	}
	if _, err := s.Repo.GetRFPByID(ctx, rfpID); err != nil {
		return nil, err
	}
	return s.Artifacts.GetRFPArtifacts(ctx, rfpID, types)
}

// GetArtifact returns one artifact owned by an RFP.
func (s *RFPService) GetArtifact(ctx context.Context, rfpID, artifactID string) (*models.Artifact, error) {
	if rfpID == "" || artifactID == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required parameter: rfpId or artifactId")
	}
	if _, err := s.Repo.GetRFPByID(ctx, rfpID); err != nil {
		return nil, err
	}
	return s.Artifacts.GetArtifactByID(ctx, rfpID, artifactID)
}

// UpdateArtifactStatus advances the review status of an artifact.
func (s *RFPService) UpdateArtifactStatus(ctx context.Context, rfpID, artifactID, status string) (*models.Artifact, error) {
	if status == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required query parameter: status")
	}

	unlock := s.lockRFP(rfpID)
	defer unlock()

	rfp, err := s.Repo.GetRFPByID(ctx, rfpID)
	if err != nil {
		return nil, err
	}
	artifact, err := s.Artifacts.GetArtifactByID(ctx, rfpID, artifactID)
	if err != nil {
		return nil, err
	}

	allowedStatusTransition := map[models.ArtifactStatus][]models.ArtifactStatus{
		models.DraftArtifact:     {models.GeneratedArtifact, models.ReviewedArtifact},
		models.GeneratedArtifact: {models.ReviewedArtifact},
		models.ReviewedArtifact:  {models.ApprovedArtifact},
		models.ApprovedArtifact:  {},
	}
	validTransitions := allowedStatusTransition[artifact.Status]
	if !utils.ContainsArtifactStatus(validTransitions, models.ArtifactStatus(status)) {
		return nil, models.NewErrorResponse(http.StatusBadRequest, fmt.Sprintf("invalid artifact status transition: %s -> %s", artifact.Status, status))
	}

	now := time.Now().UTC()
	artifact.Status = models.ArtifactStatus(status)
	artifact.UpdatedAt = now
	if err := s.Artifacts.UpdateArtifact(ctx, artifact); err != nil {
		return nil, err
	}

	rfp.UpdatedAt = now
	if err := s.Repo.UpdateRFP(ctx, rfp); err != nil {
		return nil, err
	}
	return artifact, nil
}

// VerifyComplianceRequirement marks one compliance matrix requirement as
// verified. This is the only permitted field-level edit of artifact data.
func (s *RFPService) VerifyComplianceRequirement(ctx context.Context, rfpID, artifactID, requirementID string) (*models.Artifact, error) {
	unlock := s.lockRFP(rfpID)
	defer unlock()

	rfp, err := s.Repo.GetRFPByID(ctx, rfpID)
	if err != nil {
		return nil, err
	}
	artifact, err := s.Artifacts.GetArtifactByID(ctx, rfpID, artifactID)
	if err != nil {
		return nil, err
	}
	if artifact.Type != models.ComplianceMatrixType {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "requirement verification applies only to compliance matrices")
	}

	var matrix models.ComplianceMatrix
	if err := json.Unmarshal(artifact.Data, &matrix); err != nil {
		return nil, fmt.Errorf("failed to decode compliance matrix: %w", err)
	}

	found := false
	for i := range matrix.Requirements {
		if matrix.Requirements[i].ID == requirementID {
			matrix.Requirements[i].Status = "verified"
			found = true
			break
		}
	}
	if !found {
		return nil, models.NewNotFound(fmt.Sprintf("requirement %s not found in compliance matrix", requirementID))
	}

	data, err := json.Marshal(matrix)
	if err != nil {
		return nil, fmt.Errorf("failed to encode compliance matrix: %w", err)
	}

	now := time.Now().UTC()
	artifact.Data = data
	artifact.UpdatedAt = now
	if err := s.Artifacts.UpdateArtifact(ctx, artifact); err != nil {
		return nil, err
	}

	rfp.UpdatedAt = now
	if err := s.Repo.UpdateRFP(ctx, rfp); err != nil {
		return nil, err
	}
	return artifact, nil
}

// UpdateRFPStatus advances the RFP lifecycle status and stamps the timeline.
func (s *RFPService) UpdateRFPStatus(ctx context.Context, rfpID, status string) (*models.RFP, error) {
	if status == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required query parameter: status")
	}

	unlock := s.lockRFP(rfpID)
	defer unlock()

	rfp, err := s.Repo.GetRFPByID(ctx, rfpID)
	if err != nil {
		return nil, err
	}

	allowedStatusTransition := map[models.RFPStatus][]models.RFPStatus{
		models.DraftRFP:      {models.PublishedRFP},
		models.PublishedRFP:  {models.EvaluatingRFP, models.ClosedRFP},
		models.EvaluatingRFP: {models.AwardedRFP, models.ClosedRFP},
		models.AwardedRFP:    {models.ClosedRFP},
		models.ClosedRFP:     {},
	}
	validTransitions := allowedStatusTransition[rfp.Status]
	if !utils.ContainsRFPStatus(validTransitions, models.RFPStatus(status)) {
		return nil, models.NewErrorResponse(http.StatusBadRequest, fmt.Sprintf("invalid rfp status transition: %s -> %s", rfp.Status, status))
	}

	now := time.Now().UTC()
	rfp.Status = models.RFPStatus(status)
	switch rfp.Status {
	case models.PublishedRFP:
		rfp.Timeline.RFPPublished = &now
	case models.AwardedRFP:
		rfp.Timeline.EvaluationComplete = &now
		rfp.Timeline.AwardDate = &now
	}

	rfp.UpdatedAt = now
	if err := s.Repo.UpdateRFP(ctx, rfp); err != nil {
		return nil, err
	}
	return s.attachArtifacts(ctx, rfp)
}

// DeleteRFP removes an RFP and cascades its artifact collection.
func (s *RFPService) DeleteRFP(ctx context.Context, rfpID string) error {
	unlock := s.lockRFP(rfpID)
	defer unlock()

	if err := s.Artifacts.DeleteRFPArtifacts(ctx, rfpID); err != nil {
		return err
	}
	return s.Repo.DeleteRFP(ctx, rfpID)
}

func (s *RFPService) loadAggregate(ctx context.Context, rfpID string) (*models.RFP, error) {
	rfp, err := s.Repo.GetRFPByID(ctx, rfpID)
	if err != nil {
		return nil, err
	}
	return s.attachArtifacts(ctx, rfp)
}

func (s *RFPService) attachArtifacts(ctx context.Context, rfp *models.RFP) (*models.RFP, error) {
	artifactList, err := s.Artifacts.GetRFPArtifacts(ctx, rfp.ID, nil)
	if err != nil {
		return nil, err
	}
	if artifactList == nil {
		artifactList = []models.Artifact{}
	}
	rfp.Artifacts = artifactList
	return rfp, nil
}

func parseStepName(stepName string) (models.WorkflowStepName, error) {
	step := models.WorkflowStepName(stepName)
	for _, known := range models.StepOrder {
		if step == known {
			return step, nil
		}
	}
	return "", models.NewErrorResponse(http.StatusBadRequest, fmt.Sprintf("unknown workflow step: %s", stepName))
}

// applyStepAssociations records the ids captured by a step payload on the
// aggregate, so later steps can rely on them.
func applyStepAssociations(rfp *models.RFP, step models.WorkflowStepName, payload map[string]interface{}) {
	switch step {
	case models.StepProductSelection:
		if selected := stringSlice(payload, "selectedProducts"); selected != nil {
			rfp.Products = selected
		}
	case models.StepSupplierDiscovery:
		if selected := stringSlice(payload, "selectedSuppliers"); selected != nil {
			rfp.Suppliers = selected
		}
	case models.StepBasicInfo:
		if selected := stringSlice(payload, "requirements"); selected != nil {
			rfp.Requirements = selected
		}
	}
}

func stringSlice(payload map[string]interface{}, key string) []string {
	raw, ok := payload[key].([]interface{})
	if !ok {
		return nil
	}
	values := make([]string, 0, len(raw))
	for _, item := range raw {
		if value, ok := item.(string); ok {
			values = append(values, value)
		}
	}
	return values
}
