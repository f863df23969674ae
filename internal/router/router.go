package router

import (
	"net/http"

	"github.com/agentic-procure/rfp-service/internal/handlers"
)

func InitRoutes(rfpHandler *handlers.RFPHandler, artifactHandler *handlers.ArtifactHandler, agentHandler *handlers.AgentHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/ping", handlers.PingHandler)
	mux.HandleFunc("/api/rfps", rfpHandler.GetRFPs)
	mux.HandleFunc("/api/rfps/new", rfpHandler.CreateRFP)
	mux.HandleFunc("GET /api/rfps/{rfpId}", rfpHandler.GetRFP)
	mux.HandleFunc("DELETE /api/rfps/{rfpId}", rfpHandler.DeleteRFP)
	mux.HandleFunc("PUT /api/rfps/{rfpId}/status", rfpHandler.UpdateRFPStatus)
	mux.HandleFunc("/api/rfps/{rfpId}/workflow/{step}/complete", rfpHandler.CompleteStep)
	mux.HandleFunc("/api/rfps/{rfpId}/workflow/{step}/skip", rfpHandler.SkipStep)

	mux.HandleFunc("/api/rfps/{rfpId}/artifacts/generate", artifactHandler.GenerateArtifacts)
	mux.HandleFunc("GET /api/rfps/{rfpId}/artifacts", artifactHandler.GetArtifacts)
	mux.HandleFunc("GET /api/rfps/{rfpId}/artifacts/{artifactId}", artifactHandler.GetArtifact)
	mux.HandleFunc("PUT /api/rfps/{rfpId}/artifacts/{artifactId}/status", artifactHandler.UpdateArtifactStatus)
	mux.HandleFunc("PUT /api/rfps/{rfpId}/artifacts/{artifactId}/requirements/{requirementId}/verify", artifactHandler.VerifyRequirement)

	mux.HandleFunc("/api/agents/query", agentHandler.Query)

	return mux
}
