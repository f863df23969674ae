package models

import "time"

type (
	WorkflowStepName   string // Name of a workflow step
	WorkflowStepStatus string // Status of a workflow step
)

const (
	StepBasicInfo          WorkflowStepName = "basic_info"
	StepProductSelection   WorkflowStepName = "product_selection"
	StepSupplierDiscovery  WorkflowStepName = "supplier_discovery"
	StepArtifactGeneration WorkflowStepName = "artifact_generation"
	StepReview             WorkflowStepName = "review"
	StepPublish            WorkflowStepName = "publish"

	StepPending    WorkflowStepStatus = "pending"
	StepInProgress WorkflowStepStatus = "in_progress"
	StepCompleted  WorkflowStepStatus = "completed"
	StepSkipped    WorkflowStepStatus = "skipped"
)

// StepOrder is the fixed order every RFP workflow passes through.
var StepOrder = []WorkflowStepName{
	StepBasicInfo,
	StepProductSelection,
	StepSupplierDiscovery,
	StepArtifactGeneration,
	StepReview,
	StepPublish,
}

// WorkflowStep represents the progress record of one workflow step.
type WorkflowStep struct {
	Step        WorkflowStepName       `json:"step"`
	Status      WorkflowStepStatus     `json:"status"`
	CompletedAt *time.Time             `json:"completedAt,omitempty"`
	Data        map[string]interface{} `json:"data,omitempty"`
}

// NewWorkflow creates the initial workflow for a fresh RFP: the first step
// in progress, the rest pending.
func NewWorkflow() []WorkflowStep {
	steps := make([]WorkflowStep, 0, len(StepOrder))
	for i, name := range StepOrder {
		status := StepPending
		if i == 0 {
			status = StepInProgress
		}
		steps = append(steps, WorkflowStep{Step: name, Status: status})
	}
	return steps
}
