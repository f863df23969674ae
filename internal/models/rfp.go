package models

import "time"

type RFPStatus string // Lifecycle status of an RFP

const (
	DraftRFP      RFPStatus = "draft"      // RFP is being prepared
	PublishedRFP  RFPStatus = "published"  // RFP is visible to suppliers
	EvaluatingRFP RFPStatus = "evaluating" // Supplier responses are under evaluation
	AwardedRFP    RFPStatus = "awarded"    // A supplier has been awarded
	ClosedRFP     RFPStatus = "closed"     // RFP is closed
)

// Budget holds the optional budget range for an RFP.
type Budget struct {
	Min      float64 `json:"min,omitempty"`
	Max      float64 `json:"max,omitempty"`
	Currency string  `json:"currency"`
}

// Timeline holds the lifecycle timestamps of an RFP.
type Timeline struct {
	RFPPublished       *time.Time `json:"rfpPublished,omitempty"`
	ResponseDeadline   time.Time  `json:"responseDeadline"`
	EvaluationComplete *time.Time `json:"evaluationComplete,omitempty"`
	AwardDate          *time.Time `json:"awardDate,omitempty"`
}

// RFP represents a request for proposals, the aggregate root of the service.
type RFP struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Products     []string       `json:"products"`
	Suppliers    []string       `json:"suppliers"`
	Requirements []string       `json:"requirements"`
	Status       RFPStatus      `json:"status"`
	Deadline     time.Time      `json:"deadline"`
	Workflow     []WorkflowStep `json:"workflowStatus"`
	Artifacts    []Artifact     `json:"artifacts"`
	Budget       *Budget        `json:"budget,omitempty"`
	Timeline     Timeline       `json:"timeline"`
	Version      int32          `json:"version"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// RFPRequest represents the request body for creating an RFP.
type RFPRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Deadline    time.Time `json:"deadline"`
	Budget      *Budget   `json:"budget,omitempty"`
}
