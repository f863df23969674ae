package workflow

import (
	"testing"
	"time"

	"github.com/agentic-procure/rfp-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorkflowInitialState(t *testing.T) {
	steps := models.NewWorkflow()

	require.Len(t, steps, 6)
	current, ok := CurrentStep(steps)
	require.True(t, ok)
	assert.Equal(t, models.StepBasicInfo, current)

	for _, step := range steps[1:] {
		assert.Equal(t, models.StepPending, step.Status)
	}
}

func TestCanTransition(t *testing.T) {
	steps := models.NewWorkflow()

	assert.True(t, CanTransition(steps, models.StepBasicInfo))
	assert.False(t, CanTransition(steps, models.StepProductSelection))
	assert.False(t, CanTransition(steps, models.StepPublish))
}

func TestCompleteStepOutOfOrder(t *testing.T) {
	steps := models.NewWorkflow()
	before := append([]models.WorkflowStep(nil), steps...)

	err := CompleteStep(steps, models.StepProductSelection, nil, time.Now())

	require.Error(t, err)
	assert.Equal(t, models.CodeInvalidTransition, models.ErrorCode(err))
	assert.Equal(t, before, steps, "rejected completion must leave workflow state unchanged")
}

func TestCompleteStepsInOrder(t *testing.T) {
	steps := models.NewWorkflow()
	now := time.Now().UTC()

	for i, name := range models.StepOrder {
		payload := map[string]interface{}{"step": string(name)}
		require.NoError(t, CompleteStep(steps, name, payload, now))

		assert.Equal(t, models.StepCompleted, steps[i].Status)
		require.NotNil(t, steps[i].CompletedAt)
		assert.Equal(t, now, *steps[i].CompletedAt)
		assert.Equal(t, payload, steps[i].Data)

		if i+1 < len(steps) {
			current, ok := CurrentStep(steps)
			require.True(t, ok)
			assert.Equal(t, models.StepOrder[i+1], current)
		}
	}

	_, ok := CurrentStep(steps)
	assert.False(t, ok, "workflow must be terminal after completing all steps")
}

func TestCompleteStepTwice(t *testing.T) {
	steps := models.NewWorkflow()
	now := time.Now()

	require.NoError(t, CompleteStep(steps, models.StepBasicInfo, nil, now))

	err := CompleteStep(steps, models.StepBasicInfo, nil, now)
	require.Error(t, err)
	assert.Equal(t, models.CodeInvalidTransition, models.ErrorCode(err))
}

func TestCompleteStepOnFinishedWorkflow(t *testing.T) {
	steps := models.NewWorkflow()
	now := time.Now()
	for _, name := range models.StepOrder {
		require.NoError(t, CompleteStep(steps, name, nil, now))
	}

	err := CompleteStep(steps, models.StepPublish, nil, now)
	require.Error(t, err)
	assert.Equal(t, models.CodeInvalidTransition, models.ErrorCode(err))
}

func TestSkipStep(t *testing.T) {
	steps := models.NewWorkflow()
	now := time.Now()

	require.NoError(t, SkipStep(steps, models.StepBasicInfo, now))
	assert.Equal(t, models.StepSkipped, steps[0].Status)
	assert.Nil(t, steps[0].CompletedAt)

	current, ok := CurrentStep(steps)
	require.True(t, ok)
	assert.Equal(t, models.StepProductSelection, current)
}

func TestSkipStepOutOfOrder(t *testing.T) {
	steps := models.NewWorkflow()

	err := SkipStep(steps, models.StepReview, time.Now())
	require.Error(t, err)
	assert.Equal(t, models.CodeInvalidTransition, models.ErrorCode(err))
}

func TestSkipPublishRejected(t *testing.T) {
	steps := models.NewWorkflow()
	now := time.Now()
	for _, name := range models.StepOrder[:5] {
		require.NoError(t, CompleteStep(steps, name, nil, now))
	}

	err := SkipStep(steps, models.StepPublish, now)
	require.Error(t, err)
	assert.Equal(t, models.CodeInvalidTransition, models.ErrorCode(err))
}
