package artifacts

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/agentic-procure/rfp-service/internal/models"

	"github.com/google/uuid"
)

// Generator produces one artifact type's payload from the RFP context.
type Generator func(rfpID string, product models.ProductData, requirements models.RequirementData, now time.Time) interface{}

// generators maps every known artifact type to its generator. Unknown types
// supplied by callers are caught by Generate before any generator runs.
var generators = map[models.ArtifactType]Generator{
	models.ComplianceMatrixType: func(rfpID string, p models.ProductData, r models.RequirementData, now time.Time) interface{} {
		return GenerateComplianceMatrix(rfpID, p, r, now)
	},
	models.RegulatoryChecklistType: func(rfpID string, p models.ProductData, r models.RequirementData, now time.Time) interface{} {
		return GenerateRegulatoryChecklist(rfpID, p, r, now)
	},
	models.ProductSpecificationType: func(rfpID string, p models.ProductData, r models.RequirementData, now time.Time) interface{} {
		return GenerateProductSpecification(rfpID, p, r, now)
	},
	models.QualityRequirementsType: func(rfpID string, p models.ProductData, r models.RequirementData, now time.Time) interface{} {
		return GenerateQualityRequirements(rfpID, p, r, now)
	},
	models.SupplierEvaluationType: func(rfpID string, p models.ProductData, r models.RequirementData, now time.Time) interface{} {
		return GenerateSupplierEvaluationMatrix(rfpID, p, r, now)
	},
	models.ResponseTemplatesType: func(rfpID string, p models.ProductData, r models.RequirementData, now time.Time) interface{} {
		return GenerateResponseTemplate(rfpID, p, r, now)
	},
}

// displayNames maps every artifact type to its fixed human-readable label.
var displayNames = map[models.ArtifactType]string{
	models.ComplianceMatrixType:     "Compliance Requirements Matrix",
	models.RegulatoryChecklistType:  "Regulatory Checklist",
	models.ProductSpecificationType: "Product Specification Sheet",
	models.QualityRequirementsType:  "Quality Requirements Document",
	models.SupplierEvaluationType:   "Supplier Evaluation Matrix",
	models.ResponseTemplatesType:    "Response Templates",
}

// KnownType reports whether t is one of the six artifact types.
func KnownType(t models.ArtifactType) bool {
	_, ok := generators[t]
	return ok
}

// Generate invokes the generator for every requested type and wraps the
// payloads into artifact records. The whole batch is validated before any
// generator runs; an unknown type fails the call with no partial result.
// Output order matches the order of requested types. Generate performs no
// storage or network side effects.
func Generate(rfpID string, types []models.ArtifactType, product models.ProductData, requirements models.RequirementData) ([]models.Artifact, error) {
	if len(types) == 0 {
		return nil, models.NewUnknownArtifactType("at least one artifact type is required")
	}
	for _, artifactType := range types {
		if !KnownType(artifactType) {
			return nil, models.NewUnknownArtifactType(fmt.Sprintf("unknown artifact type: %s", artifactType))
		}
	}

	now := time.Now().UTC()
	payloads := make([]interface{}, len(types))

	// Generators are pure and independent, so the batch fans out and joins
	// before assembly.
	var wg sync.WaitGroup
	for i, artifactType := range types {
		wg.Add(1)
		go func(i int, generate Generator) {
			defer wg.Done()
			payloads[i] = generate(rfpID, product, requirements, now)
		}(i, generators[artifactType])
	}
	wg.Wait()

	artifactList := make([]models.Artifact, 0, len(types))
	for i, artifactType := range types {
		data, err := json.Marshal(payloads[i])
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s payload: %w", artifactType, err)
		}
		artifactList = append(artifactList, models.Artifact{
			ID:          fmt.Sprintf("artifact-%s-%s", artifactType, uuid.New().String()),
			RFPID:       rfpID,
			Type:        artifactType,
			Name:        displayNames[artifactType],
			Data:        data,
			Status:      models.GeneratedArtifact,
			GeneratedBy: models.GeneratedByAI,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	return artifactList, nil
}
