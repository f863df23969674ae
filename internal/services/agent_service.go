package services

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/agentic-procure/rfp-service/internal/llm"
	"github.com/agentic-procure/rfp-service/internal/models"

	"github.com/google/uuid"
)

type AgentType string // Kind of procurement agent answering a query

const (
	ComplianceAgent           AgentType = "compliance"
	ProductRequirementsAgent  AgentType = "product_requirements"
	SupplierIntelligenceAgent AgentType = "supplier_intelligence"
	GeneralAgent              AgentType = "general"
)

// AgentQuery represents the request body for an agent query.
type AgentQuery struct {
	AgentType AgentType              `json:"agentType"`
	Query     string                 `json:"query"`
	Context   map[string]interface{} `json:"context,omitempty"`
}

// AgentAnswer represents a narrative answer produced by an agent.
type AgentAnswer struct {
	ID         string    `json:"id"`
	AgentType  AgentType `json:"agentType"`
	Query      string    `json:"query"`
	Response   string    `json:"response"`
	Confidence float64   `json:"confidence"`
	Sources    []string  `json:"sources"`
	Timestamp  time.Time `json:"timestamp"`
}

var systemPrompts = map[AgentType]string{
	ComplianceAgent:           "You are a compliance monitoring agent specialized in pharmaceutical and medical device regulations. Provide guidance on ISO 13485, FDA 21 CFR 820, FDA 21 CFR 211, and other relevant standards, and cite standards when possible.",
	ProductRequirementsAgent:  "You are a product requirements agent for regulated-industry procurement. Provide guidance on technical specifications, material requirements, and applicable testing standards.",
	SupplierIntelligenceAgent: "You are a supplier intelligence agent. Assess supplier compliance risks, certifications, and business continuity for regulated-industry procurement.",
	GeneralAgent:              "You are a procurement assistant for regulated-industry RFPs. Answer questions about compliance requirements, product specifications, supplier evaluation, and RFP processes.",
}

var (
	standardsPattern = regexp.MustCompile(`(?i)(ISO\s+\d+([:\-]\d+)?)|(FDA\s+\d+\s+CFR\s+(Part\s+)?\d+)|(CE\s+MDR)|(USP\s+<[^>]+>)`)
	adviceWords      = regexp.MustCompile(`(?i)recommend|suggest|should|must|required`)
	specificsPattern = regexp.MustCompile(`\d{4}|\d{2}/\d{2}|\d{1,2}/\d{1,2}/\d{4}`)
)

// AgentService answers narrative procurement queries through the
// generative-text collaborator. It enriches and explains; it never shapes
// artifact payloads.
type AgentService struct {
	Client    llm.Client
	ModelID   string
	MaxTokens int
}

// NewAgentService creates a new AgentService instance.
func NewAgentService(client llm.Client, modelID string, maxTokens int) *AgentService {
	return &AgentService{Client: client, ModelID: modelID, MaxTokens: maxTokens}
}

// ProcessQuery answers one agent query.
func (s *AgentService) ProcessQuery(ctx context.Context, query AgentQuery) (*AgentAnswer, error) {
	if query.Query == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required field: query")
	}
	agentType := query.AgentType
	if agentType == "" {
		agentType = GeneralAgent
	}
	systemPrompt, ok := systemPrompts[agentType]
	if !ok {
		return nil, models.NewErrorResponse(http.StatusBadRequest, fmt.Sprintf("unknown agent type: %s", query.AgentType))
	}

	response, err := s.Client.Invoke(ctx, llm.InvokeParams{
		ModelID:     s.ModelID,
		Prompt:      buildPrompt(systemPrompt, query),
		Temperature: 0.7,
		MaxTokens:   s.MaxTokens,
	})
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusBadGateway, "failed to process agent query")
	}

	return &AgentAnswer{
		ID:         fmt.Sprintf("response-%s", uuid.New().String()),
		AgentType:  agentType,
		Query:      query.Query,
		Response:   response.Content,
		Confidence: calculateConfidence(response.Content),
		Sources:    extractSources(response.Content),
		Timestamp:  time.Now().UTC(),
	}, nil
}

func buildPrompt(systemPrompt string, query AgentQuery) string {
	var sb strings.Builder
	sb.WriteString(systemPrompt)
	sb.WriteString("\n\n")
	for key, value := range query.Context {
		sb.WriteString(fmt.Sprintf("%s: %v\n", key, value))
	}
	sb.WriteString("\nUser Query: ")
	sb.WriteString(query.Query)
	return sb.String()
}

// calculateConfidence scores an answer by the presence of cited standards,
// actionable advice and concrete dates.
func calculateConfidence(content string) float64 {
	confidence := 0.7
	if standardsPattern.MatchString(content) {
		confidence += 0.1
	}
	if adviceWords.MatchString(content) {
		confidence += 0.1
	}
	if specificsPattern.MatchString(content) {
		confidence += 0.1
	}
	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}

// extractSources collects the compliance standards cited in an answer.
func extractSources(content string) []string {
	matches := standardsPattern.FindAllString(content, -1)
	if matches == nil {
		return []string{}
	}
	seen := make(map[string]bool)
	sources := make([]string, 0, len(matches))
	for _, match := range matches {
		if !seen[match] {
			seen[match] = true
			sources = append(sources, match)
		}
	}
	return sources
}
