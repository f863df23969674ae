package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/agentic-procure/rfp-service/internal/db"
	"github.com/agentic-procure/rfp-service/internal/handlers"
	"github.com/agentic-procure/rfp-service/internal/llm"
	"github.com/agentic-procure/rfp-service/internal/repository"
	"github.com/agentic-procure/rfp-service/internal/router"
	"github.com/agentic-procure/rfp-service/internal/router/config"
	"github.com/agentic-procure/rfp-service/internal/services"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	runDBMigration(cfg.MigrationURL, cfg.PostgresConn)

	dbPool, err := db.InitDb(cfg)
	if err != nil {
		log.Fatalf("error initializing database: %v", err)
	}
	defer dbPool.Close()

	logger := log.New(os.Stdout, "INFO: ", log.LstdFlags)

	rfpRepo := repository.NewPostgresRFPRepository(dbPool)
	artifactRepo := repository.NewPostgresArtifactRepository(dbPool)

	rfpService := services.NewRFPService(rfpRepo, artifactRepo)

	var llmClient llm.Client
	if cfg.LLMEndpoint != "" {
		llmClient = llm.NewHTTPClient(cfg.LLMEndpoint, cfg.LLMAPIKey, 30*time.Second)
	} else {
		llmClient = llm.NewMockClient()
	}
	agentService := services.NewAgentService(llmClient, cfg.LLMModelID, cfg.LLMMaxTokens)

	rfpHandler := handlers.NewRFPHandler(rfpService, logger, 5*time.Second)
	artifactHandler := handlers.NewArtifactHandler(rfpService, logger, 10*time.Second)
	agentHandler := handlers.NewAgentHandler(agentService, logger, 30*time.Second)

	routes := router.InitRoutes(rfpHandler, artifactHandler, agentHandler)

	log.Printf("server is listening on %s...", cfg.ServerAddress)
	if err := http.ListenAndServe(cfg.ServerAddress, routes); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func runDBMigration(migrationURL string, dbSource string) {
	migration, err := migrate.New(migrationURL, dbSource)
	if err != nil {
		log.Fatal("cannot create a new migrate instance", err)
	}

	if err = migration.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatal("failed to run migrate up:", err)
	}
	log.Println("db migrated successfully")
}
