package workflow

import (
	"fmt"
	"time"

	"github.com/agentic-procure/rfp-service/internal/models"
)

// CurrentStep returns the step currently in progress. The second return value
// is false when every step is terminal and the workflow is finished.
func CurrentStep(steps []models.WorkflowStep) (models.WorkflowStepName, bool) {
	for _, step := range steps {
		if step.Status == models.StepInProgress {
			return step.Step, true
		}
	}
	return "", false
}

// CanTransition reports whether stepName is the step currently in progress.
func CanTransition(steps []models.WorkflowStep, stepName models.WorkflowStepName) bool {
	current, ok := CurrentStep(steps)
	return ok && current == stepName
}

// CompleteStep marks the current step completed, records the payload and the
// completion time, and advances the next step to in progress. Completing any
// step other than the current one is rejected.
func CompleteStep(steps []models.WorkflowStep, stepName models.WorkflowStepName, payload map[string]interface{}, now time.Time) error {
	return finishStep(steps, stepName, models.StepCompleted, payload, now)
}

// SkipStep marks the current step skipped and advances the next step.
// The publish step cannot be skipped.
func SkipStep(steps []models.WorkflowStep, stepName models.WorkflowStepName, now time.Time) error {
	if stepName == models.StepPublish {
		return models.NewInvalidTransition("the publish step cannot be skipped")
	}
	return finishStep(steps, stepName, models.StepSkipped, nil, now)
}

func finishStep(steps []models.WorkflowStep, stepName models.WorkflowStepName, status models.WorkflowStepStatus, payload map[string]interface{}, now time.Time) error {
	current, ok := CurrentStep(steps)
	if !ok {
		return models.NewInvalidTransition("workflow is already finished")
	}
	if current != stepName {
		return models.NewInvalidTransition(fmt.Sprintf("step %s is not in progress, current step is %s", stepName, current))
	}

	for i := range steps {
		if steps[i].Step != stepName {
			continue
		}
		steps[i].Status = status
		steps[i].Data = payload
		if status == models.StepCompleted {
			completedAt := now
			steps[i].CompletedAt = &completedAt
		}
		if i+1 < len(steps) {
			steps[i+1].Status = models.StepInProgress
		}
		return nil
	}
	return models.NewInvalidTransition(fmt.Sprintf("unknown workflow step: %s", stepName))
}
