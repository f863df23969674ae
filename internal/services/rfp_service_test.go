package services

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/agentic-procure/rfp-service/internal/models"
	"github.com/agentic-procure/rfp-service/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *RFPService {
	return NewRFPService(repository.NewMemoryRFPRepository(), repository.NewMemoryArtifactRepository())
}

func newTestRFP(t *testing.T, service *RFPService) *models.RFP {
	t.Helper()
	rfp, err := service.CreateRFP(context.Background(), models.RFPRequest{
		Title:       "Medical Device Software RFP",
		Description: "Procurement of patient monitoring software",
		Deadline:    time.Now().UTC().Add(30 * 24 * time.Hour),
	})
	require.NoError(t, err)
	return rfp
}

func TestCreateRFPInitialState(t *testing.T) {
	service := newTestService()
	deadline := time.Now().UTC().Add(30 * 24 * time.Hour)

	rfp, err := service.CreateRFP(context.Background(), models.RFPRequest{
		Title:       "Medical Device Software RFP",
		Description: "Procurement of patient monitoring software",
		Deadline:    deadline,
		Budget:      &models.Budget{Min: 100000, Max: 250000},
	})

	require.NoError(t, err)
	assert.NotEmpty(t, rfp.ID)
	assert.Equal(t, models.DraftRFP, rfp.Status)
	assert.Equal(t, int32(1), rfp.Version)
	assert.Equal(t, deadline, rfp.Timeline.ResponseDeadline)
	assert.Empty(t, rfp.Artifacts)

	require.Len(t, rfp.Workflow, 6)
	assert.Equal(t, models.StepBasicInfo, rfp.Workflow[0].Step)
	assert.Equal(t, models.StepInProgress, rfp.Workflow[0].Status)

	require.NotNil(t, rfp.Budget)
	assert.Equal(t, "USD", rfp.Budget.Currency, "budget currency must default to USD")
}

func TestCreateRFPValidation(t *testing.T) {
	service := newTestService()
	ctx := context.Background()
	future := time.Now().UTC().Add(24 * time.Hour)

	_, err := service.CreateRFP(ctx, models.RFPRequest{Description: "no title", Deadline: future})
	require.Error(t, err)

	_, err = service.CreateRFP(ctx, models.RFPRequest{Title: "no deadline", Description: "x"})
	require.Error(t, err)

	_, err = service.CreateRFP(ctx, models.RFPRequest{
		Title:       "past deadline",
		Description: "x",
		Deadline:    time.Now().UTC().Add(-time.Hour),
	})
	require.Error(t, err)
}

func TestGetRFPNotFound(t *testing.T) {
	service := newTestService()

	_, err := service.GetRFP(context.Background(), "rfp-missing")

	require.Error(t, err)
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
}

func TestCompleteWorkflowStepAssociations(t *testing.T) {
	service := newTestService()
	ctx := context.Background()
	rfp := newTestRFP(t, service)

	_, err := service.CompleteWorkflowStep(ctx, rfp.ID, "basic_info", nil)
	require.NoError(t, err)

	updated, err := service.CompleteWorkflowStep(ctx, rfp.ID, "product_selection", map[string]interface{}{
		"selectedProducts": []interface{}{"prod-001", "prod-002"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"prod-001", "prod-002"}, updated.Products)
	assert.Equal(t, models.StepCompleted, updated.Workflow[1].Status)
	assert.Equal(t, models.StepInProgress, updated.Workflow[2].Status)

	updated, err = service.CompleteWorkflowStep(ctx, rfp.ID, "supplier_discovery", map[string]interface{}{
		"selectedSuppliers": []interface{}{"sup-001"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"sup-001"}, updated.Suppliers)
}

func TestCompleteWorkflowStepOutOfOrder(t *testing.T) {
	service := newTestService()
	ctx := context.Background()
	rfp := newTestRFP(t, service)

	_, err := service.CompleteWorkflowStep(ctx, rfp.ID, "review", nil)
	require.Error(t, err)
	assert.Equal(t, models.CodeInvalidTransition, models.ErrorCode(err))

	stored, err := service.GetRFP(ctx, rfp.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StepInProgress, stored.Workflow[0].Status, "failed completion must not advance the workflow")
}

func TestCompleteWorkflowStepUnknownStep(t *testing.T) {
	service := newTestService()
	rfp := newTestRFP(t, service)

	_, err := service.CompleteWorkflowStep(context.Background(), rfp.ID, "budget_review", nil)
	require.Error(t, err)
}

func TestConcurrentDoubleCompletion(t *testing.T) {
	service := newTestService()
	ctx := context.Background()
	rfp := newTestRFP(t, service)

	_, err := service.CompleteWorkflowStep(ctx, rfp.ID, "basic_info", nil)
	require.NoError(t, err)

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = service.CompleteWorkflowStep(ctx, rfp.ID, "product_selection", map[string]interface{}{
				"selectedProducts": []interface{}{"prod-001"},
			})
		}(i)
	}
	wg.Wait()

	failures := 0
	for _, err := range errs {
		if err != nil {
			failures++
			code := models.ErrorCode(err)
			assert.Contains(t, []string{models.CodeInvalidTransition, models.CodeConflict}, code)
		}
	}
	assert.Equal(t, 1, failures, "exactly one of two concurrent completions must fail")

	stored, err := service.GetRFP(ctx, rfp.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StepCompleted, stored.Workflow[1].Status)
}

func TestSkipWorkflowStep(t *testing.T) {
	service := newTestService()
	ctx := context.Background()
	rfp := newTestRFP(t, service)

	updated, err := service.SkipWorkflowStep(ctx, rfp.ID, "basic_info")
	require.NoError(t, err)
	assert.Equal(t, models.StepSkipped, updated.Workflow[0].Status)
	assert.Equal(t, models.StepInProgress, updated.Workflow[1].Status)
}

func TestGenerateArtifactsEndToEnd(t *testing.T) {
	service := newTestService()
	ctx := context.Background()
	rfp := newTestRFP(t, service)

	_, err := service.CompleteWorkflowStep(ctx, rfp.ID, "basic_info", nil)
	require.NoError(t, err)
	_, err = service.CompleteWorkflowStep(ctx, rfp.ID, "product_selection", map[string]interface{}{
		"selectedProducts": []interface{}{"prod-001"},
	})
	require.NoError(t, err)
	_, err = service.CompleteWorkflowStep(ctx, rfp.ID, "supplier_discovery", map[string]interface{}{
		"selectedSuppliers": []interface{}{"sup-001"},
	})
	require.NoError(t, err)

	allTypes := []string{
		"compliance_matrix", "regulatory_checklist", "product_specification",
		"quality_requirements", "supplier_evaluation", "response_templates",
	}
	generated, err := service.GenerateArtifacts(ctx, rfp.ID, allTypes,
		models.ProductData{Name: "Patient Monitor", Category: "software"}, models.RequirementData{})
	require.NoError(t, err)
	require.Len(t, generated, 6)

	seen := make(map[models.ArtifactType]int)
	for _, artifact := range generated {
		assert.Equal(t, rfp.ID, artifact.RFPID)
		assert.Equal(t, models.GeneratedArtifact, artifact.Status)
		seen[artifact.Type]++
	}
	assert.Len(t, seen, 6, "each requested type must appear exactly once")

	stored, err := service.GetRFP(ctx, rfp.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Artifacts, 6)
}

func TestGenerateArtifactsSupersedes(t *testing.T) {
	service := newTestService()
	ctx := context.Background()
	rfp := newTestRFP(t, service)

	first, err := service.GenerateArtifacts(ctx, rfp.ID, []string{"compliance_matrix"}, models.ProductData{}, models.RequirementData{})
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Empty(t, first[0].Supersedes)

	second, err := service.GenerateArtifacts(ctx, rfp.ID, []string{"compliance_matrix"}, models.ProductData{}, models.RequirementData{})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].ID, second[0].Supersedes, "regeneration must point at the previously latest artifact")

	// Both generations remain in the collection.
	artifactList, err := service.ListArtifacts(ctx, rfp.ID, []string{"compliance_matrix"})
	require.NoError(t, err)
	assert.Len(t, artifactList, 2)
}

func TestGenerateArtifactsUnknownType(t *testing.T) {
	service := newTestService()
	ctx := context.Background()
	rfp := newTestRFP(t, service)

	_, err := service.GenerateArtifacts(ctx, rfp.ID, []string{"compliance_matrix", "budget_forecast"}, models.ProductData{}, models.RequirementData{})
	require.Error(t, err)
	assert.Equal(t, models.CodeUnknownArtifactType, models.ErrorCode(err))

	artifactList, err := service.ListArtifacts(ctx, rfp.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, artifactList, "a rejected batch must persist nothing")
}

func TestGenerateArtifactsUnknownRFP(t *testing.T) {
	service := newTestService()

	_, err := service.GenerateArtifacts(context.Background(), "rfp-missing", []string{"compliance_matrix"}, models.ProductData{}, models.RequirementData{})
	require.Error(t, err)
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
}

func TestListArtifactsUnknownTypeFilter(t *testing.T) {
	service := newTestService()
	rfp := newTestRFP(t, service)

	_, err := service.ListArtifacts(context.Background(), rfp.ID, []string{"budget_forecast"})
	require.Error(t, err)
	assert.Equal(t, models.CodeUnknownArtifactType, models.ErrorCode(err))
}

func TestUpdateArtifactStatusTransitions(t *testing.T) {
	service := newTestService()
	ctx := context.Background()
	rfp := newTestRFP(t, service)

	generated, err := service.GenerateArtifacts(ctx, rfp.ID, []string{"quality_requirements"}, models.ProductData{}, models.RequirementData{})
	require.NoError(t, err)
	artifactID := generated[0].ID

	updated, err := service.UpdateArtifactStatus(ctx, rfp.ID, artifactID, "reviewed")
	require.NoError(t, err)
	assert.Equal(t, models.ReviewedArtifact, updated.Status)

	updated, err = service.UpdateArtifactStatus(ctx, rfp.ID, artifactID, "approved")
	require.NoError(t, err)
	assert.Equal(t, models.ApprovedArtifact, updated.Status)

	// Approved is terminal.
	_, err = service.UpdateArtifactStatus(ctx, rfp.ID, artifactID, "draft")
	require.Error(t, err)
}

func TestVerifyComplianceRequirement(t *testing.T) {
	service := newTestService()
	ctx := context.Background()
	rfp := newTestRFP(t, service)

	generated, err := service.GenerateArtifacts(ctx, rfp.ID, []string{"compliance_matrix"}, models.ProductData{}, models.RequirementData{})
	require.NoError(t, err)

	updated, err := service.VerifyComplianceRequirement(ctx, rfp.ID, generated[0].ID, "req-002")
	require.NoError(t, err)

	var matrix models.ComplianceMatrix
	require.NoError(t, json.Unmarshal(updated.Data, &matrix))
	for _, requirement := range matrix.Requirements {
		if requirement.ID == "req-002" {
			assert.Equal(t, "verified", requirement.Status)
		} else {
			assert.Equal(t, "pending", requirement.Status)
		}
	}

	_, err = service.VerifyComplianceRequirement(ctx, rfp.ID, generated[0].ID, "req-999")
	require.Error(t, err)
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
}

func TestVerifyRequirementWrongArtifactType(t *testing.T) {
	service := newTestService()
	ctx := context.Background()
	rfp := newTestRFP(t, service)

	generated, err := service.GenerateArtifacts(ctx, rfp.ID, []string{"response_templates"}, models.ProductData{}, models.RequirementData{})
	require.NoError(t, err)

	_, err = service.VerifyComplianceRequirement(ctx, rfp.ID, generated[0].ID, "req-001")
	require.Error(t, err)
}

func TestUpdateRFPStatusLifecycle(t *testing.T) {
	service := newTestService()
	ctx := context.Background()
	rfp := newTestRFP(t, service)

	published, err := service.UpdateRFPStatus(ctx, rfp.ID, "published")
	require.NoError(t, err)
	assert.Equal(t, models.PublishedRFP, published.Status)
	require.NotNil(t, published.Timeline.RFPPublished)

	evaluating, err := service.UpdateRFPStatus(ctx, rfp.ID, "evaluating")
	require.NoError(t, err)
	assert.Equal(t, models.EvaluatingRFP, evaluating.Status)

	awarded, err := service.UpdateRFPStatus(ctx, rfp.ID, "awarded")
	require.NoError(t, err)
	require.NotNil(t, awarded.Timeline.EvaluationComplete)
	require.NotNil(t, awarded.Timeline.AwardDate)

	closed, err := service.UpdateRFPStatus(ctx, rfp.ID, "closed")
	require.NoError(t, err)
	assert.Equal(t, models.ClosedRFP, closed.Status)

	_, err = service.UpdateRFPStatus(ctx, rfp.ID, "published")
	require.Error(t, err, "closed is terminal")
}

func TestUpdateRFPStatusInvalidTransition(t *testing.T) {
	service := newTestService()
	rfp := newTestRFP(t, service)

	_, err := service.UpdateRFPStatus(context.Background(), rfp.ID, "awarded")
	require.Error(t, err)
}

func TestFetchRFPs(t *testing.T) {
	service := newTestService()
	ctx := context.Background()
	first := newTestRFP(t, service)
	newTestRFP(t, service)

	_, err := service.UpdateRFPStatus(ctx, first.ID, "published")
	require.NoError(t, err)

	all, err := service.FetchRFPs(ctx, "", "", nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	drafts, err := service.FetchRFPs(ctx, "", "", []string{"draft"})
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, models.DraftRFP, drafts[0].Status)

	_, err = service.FetchRFPs(ctx, "", "", []string{"archived"})
	require.Error(t, err)

	_, err = service.FetchRFPs(ctx, "not-a-number", "", nil)
	require.Error(t, err)
}

func TestDeleteRFPCascades(t *testing.T) {
	service := newTestService()
	ctx := context.Background()
	rfp := newTestRFP(t, service)

	_, err := service.GenerateArtifacts(ctx, rfp.ID, []string{"compliance_matrix"}, models.ProductData{}, models.RequirementData{})
	require.NoError(t, err)

	require.NoError(t, service.DeleteRFP(ctx, rfp.ID))

	_, err = service.GetRFP(ctx, rfp.ID)
	require.Error(t, err)
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
}
