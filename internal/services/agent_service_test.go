package services

import (
	"context"
	"strings"
	"testing"

	"github.com/agentic-procure/rfp-service/internal/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAgentService() *AgentService {
	return NewAgentService(llm.NewMockClient(), "test-model", 4000)
}

func TestProcessComplianceQuery(t *testing.T) {
	service := newTestAgentService()

	answer, err := service.ProcessQuery(context.Background(), AgentQuery{
		AgentType: ComplianceAgent,
		Query:     "What compliance requirements apply to medical device software?",
	})

	require.NoError(t, err)
	assert.Equal(t, ComplianceAgent, answer.AgentType)
	assert.True(t, strings.HasPrefix(answer.ID, "response-"))
	assert.NotEmpty(t, answer.Response)
	assert.Contains(t, answer.Sources, "ISO 13485")
	assert.GreaterOrEqual(t, answer.Confidence, 0.7)
	assert.LessOrEqual(t, answer.Confidence, 1.0)
}

func TestProcessQuerySourcesDeduplicated(t *testing.T) {
	service := newTestAgentService()

	answer, err := service.ProcessQuery(context.Background(), AgentQuery{
		AgentType: ComplianceAgent,
		Query:     "Which ISO standards apply?",
	})

	require.NoError(t, err)
	seen := make(map[string]bool)
	for _, source := range answer.Sources {
		assert.False(t, seen[source], "sources must not repeat")
		seen[source] = true
	}
}

func TestProcessQueryDefaultsToGeneralAgent(t *testing.T) {
	service := newTestAgentService()

	answer, err := service.ProcessQuery(context.Background(), AgentQuery{
		Query: "How does the RFP workflow proceed?",
	})

	require.NoError(t, err)
	assert.Equal(t, GeneralAgent, answer.AgentType)
}

func TestProcessQueryValidation(t *testing.T) {
	service := newTestAgentService()
	ctx := context.Background()

	_, err := service.ProcessQuery(ctx, AgentQuery{AgentType: ComplianceAgent})
	require.Error(t, err)

	_, err = service.ProcessQuery(ctx, AgentQuery{AgentType: "marketing", Query: "hello"})
	require.Error(t, err)
}

func TestProcessQueryPassesContext(t *testing.T) {
	service := newTestAgentService()

	answer, err := service.ProcessQuery(context.Background(), AgentQuery{
		AgentType: SupplierIntelligenceAgent,
		Query:     "Assess this supplier",
		Context:   map[string]interface{}{"supplierId": "sup-001"},
	})

	require.NoError(t, err)
	assert.Equal(t, SupplierIntelligenceAgent, answer.AgentType)
	assert.NotEmpty(t, answer.Response)
}
