package models

import (
	"encoding/json"
	"time"
)

type (
	ArtifactType      string // Kind of generated document
	ArtifactStatus    string // Review status of an artifact
	ArtifactGenerator string // Origin of an artifact
)

const (
	ComplianceMatrixType     ArtifactType = "compliance_matrix"
	RegulatoryChecklistType  ArtifactType = "regulatory_checklist"
	ProductSpecificationType ArtifactType = "product_specification"
	QualityRequirementsType  ArtifactType = "quality_requirements"
	SupplierEvaluationType   ArtifactType = "supplier_evaluation"
	ResponseTemplatesType    ArtifactType = "response_templates"

	DraftArtifact     ArtifactStatus = "draft"
	GeneratedArtifact ArtifactStatus = "generated"
	ReviewedArtifact  ArtifactStatus = "reviewed"
	ApprovedArtifact  ArtifactStatus = "approved"

	GeneratedByAI       ArtifactGenerator = "ai"
	GeneratedByUser     ArtifactGenerator = "user"
	GeneratedByTemplate ArtifactGenerator = "template"
)

// Artifact represents one generated document attached to an RFP.
type Artifact struct {
	ID          string            `json:"id"`
	RFPID       string            `json:"rfpId"`
	Type        ArtifactType      `json:"type"`
	Name        string            `json:"name"`
	Data        json.RawMessage   `json:"data"`
	Status      ArtifactStatus    `json:"status"`
	GeneratedBy ArtifactGenerator `json:"generatedBy"`
	Supersedes  string            `json:"supersedes,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// ProductData carries the product context used by the artifact generators.
type ProductData struct {
	Name       string   `json:"name"`
	Category   string   `json:"category"`
	Categories []string `json:"categories"`
}

// RequirementData carries the requirement context used by the artifact generators.
type RequirementData struct {
	Standards []string `json:"standards,omitempty"`
	Notes     string   `json:"notes,omitempty"`
}

// ComplianceRequirementItem is one row of a compliance matrix.
type ComplianceRequirementItem struct {
	ID          string `json:"id"`
	Standard    string `json:"standard"`
	Requirement string `json:"requirement"`
	Category    string `json:"category"`    // iso | fda | ce | other
	Criticality string `json:"criticality"` // mandatory | recommended | optional
	Evidence    string `json:"evidence"`
	Status      string `json:"status"` // pending | verified | not_applicable
}

// ComplianceMatrix maps product categories to the regulatory requirements they trigger.
type ComplianceMatrix struct {
	ID                string                      `json:"id"`
	RFPID             string                      `json:"rfpId"`
	ProductCategories []string                    `json:"productCategories"`
	Requirements      []ComplianceRequirementItem `json:"requirements"`
	GeneratedAt       time.Time                   `json:"generatedAt"`
	AIGenerated       bool                        `json:"aiGenerated"`
}

// RegulatoryChecklistItem is one entry of a regulatory checklist.
type RegulatoryChecklistItem struct {
	ID          string     `json:"id"`
	Category    string     `json:"category"` // certification | documentation | testing | quality_system
	Requirement string     `json:"requirement"`
	Applicable  bool       `json:"applicable"`
	Completed   bool       `json:"completed"`
	Evidence    string     `json:"evidence,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

// RegulatoryChecklist tracks region-specific regulatory obligations.
type RegulatoryChecklist struct {
	ID          string                    `json:"id"`
	RFPID       string                    `json:"rfpId"`
	Region      string                    `json:"region"`      // us | eu | global
	ProductType string                    `json:"productType"` // drug | device | software | combination
	Items       []RegulatoryChecklistItem `json:"items"`
	GeneratedAt time.Time                 `json:"generatedAt"`
	AIGenerated bool                      `json:"aiGenerated"`
}

// ProductSpecification captures the technical sheet for the procured product.
type ProductSpecification struct {
	ID                      string            `json:"id"`
	RFPID                   string            `json:"rfpId"`
	ProductName             string            `json:"productName"`
	Category                string            `json:"category"`
	Specifications          map[string]string `json:"specifications"`
	PerformanceRequirements []string          `json:"performanceRequirements"`
	MaterialRequirements    []string          `json:"materialRequirements"`
	EnvironmentalConditions []string          `json:"environmentalConditions"`
	PackagingRequirements   []string          `json:"packagingRequirements"`
	QualityStandards        []string          `json:"qualityStandards"`
	GeneratedAt             time.Time         `json:"generatedAt"`
	AIGenerated             bool              `json:"aiGenerated"`
}

// QualityRequirement lists the quality system expectations for suppliers.
type QualityRequirement struct {
	ID                        string    `json:"id"`
	RFPID                     string    `json:"rfpId"`
	ControlProcesses          []string  `json:"controlProcesses"`
	TestingProtocols          []string  `json:"testingProtocols"`
	InspectionProcedures      []string  `json:"inspectionProcedures"`
	TraceabilityRequirements  []string  `json:"traceabilityRequirements"`
	DocumentationRequirements []string  `json:"documentationRequirements"`
	QualificationRequirements []string  `json:"qualificationRequirements"`
	GeneratedAt               time.Time `json:"generatedAt"`
	AIGenerated               bool      `json:"aiGenerated"`
}

// EvaluationCriterion is one scored item inside an evaluation category.
type EvaluationCriterion struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	MaxScore    int    `json:"maxScore"`
	Required    bool   `json:"required"`
}

// EvaluationCategory groups weighted criteria for supplier scoring.
type EvaluationCategory struct {
	Category string                `json:"category"`
	Weight   int                   `json:"weight"`
	Criteria []EvaluationCriterion `json:"criteria"`
}

// MinimumScores holds the score thresholds a supplier must reach.
type MinimumScores struct {
	Technical  int `json:"technical"`
	Compliance int `json:"compliance"`
	Overall    int `json:"overall"`
}

// SupplierEvaluationMatrix defines how supplier responses are scored.
// The four weighting fields sum to 100 by convention; this is not enforced.
type SupplierEvaluationMatrix struct {
	ID                  string               `json:"id"`
	RFPID               string               `json:"rfpId"`
	EvaluationCriteria  []EvaluationCategory `json:"evaluationCriteria"`
	TechnicalWeighting  int                  `json:"technicalWeighting"`
	ComplianceWeighting int                  `json:"complianceWeighting"`
	CommercialWeighting int                  `json:"commercialWeighting"`
	RiskWeighting       int                  `json:"riskWeighting"`
	MinimumScores       MinimumScores        `json:"minimumScores"`
	GeneratedAt         time.Time            `json:"generatedAt"`
	AIGenerated         bool                 `json:"aiGenerated"`
}

// TemplateSection is one section suppliers must fill in their response.
type TemplateSection struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Required    bool     `json:"required"`
	Format      string   `json:"format"` // text | table | document | certification
	MaxLength   int      `json:"maxLength,omitempty"`
	Examples    []string `json:"examples,omitempty"`
}

// ResponseTemplate defines the structure supplier responses must follow.
type ResponseTemplate struct {
	ID                   string            `json:"id"`
	RFPID                string            `json:"rfpId"`
	Sections             []TemplateSection `json:"sections"`
	SubmissionGuidelines []string          `json:"submissionGuidelines"`
	RequiredDocuments    []string          `json:"requiredDocuments"`
	EvaluationCriteria   []string          `json:"evaluationCriteria"`
	GeneratedAt          time.Time         `json:"generatedAt"`
	AIGenerated          bool              `json:"aiGenerated"`
}
