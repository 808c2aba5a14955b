package main

import (
	config "github.com/Cristiano-Arias/Portal-Proposta/config"
	"github.com/Cristiano-Arias/Portal-Proposta/internal/bootstrap"
	"github.com/Cristiano-Arias/Portal-Proposta/middleware"
	"github.com/Cristiano-Arias/Portal-Proposta/utils"

	proposal_repositories "github.com/Cristiano-Arias/Portal-Proposta/proposals/repositories"
	proposal_routes "github.com/Cristiano-Arias/Portal-Proposta/proposals/routes"
	proposal_services "github.com/Cristiano-Arias/Portal-Proposta/proposals/services"

	// bleve
	bleveControllers "github.com/Cristiano-Arias/Portal-Proposta/bleve/controllers"
	bleveRepositories "github.com/Cristiano-Arias/Portal-Proposta/bleve/repositories"
	bleveRoutes "github.com/Cristiano-Arias/Portal-Proposta/bleve/routes"
	bleveServices "github.com/Cristiano-Arias/Portal-Proposta/bleve/services"

	// documents
	documents_services "github.com/Cristiano-Arias/Portal-Proposta/documents/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	// Initialize Zap logger
	config.InitLogger()

	// Load environment variables; a missing .env is fine in production
	if err := config.LoadEnv(); err != nil {
		config.Logger.Warn("Could not load .env file", zap.Error(err))
	}

	app := fiber.New()

	middleware.InitCors(app)

	// Proposal store
	proposalsDir := config.GetEnvOrDefault("PROPOSTAS_DIR", "propostas")
	proposalRepo, err := proposal_repositories.NewFileProposalRepository(proposalsDir)
	if err != nil {
		config.Logger.Fatal("Cannot open proposals store", zap.Error(err))
	}
	config.Logger.Info("Proposals store loaded",
		zap.String("dir", proposalsDir),
		zap.Int("propostas", proposalRepo.Count()),
	)

	// Document synthesis
	uploadsDir := config.GetEnvOrDefault("UPLOADS_DIR", "uploads")
	artifactService := documents_services.NewArtifactService(uploadsDir)

	// Email notifications; disabled when SMTP is unconfigured
	utils.InitializeMailer()
	notificationService := proposal_services.NewNotificationService()

	// Full-text search
	indexPath := config.GetEnvOrDefault("BLEVE_INDEX_PATH", "./bleve_data")
	indexingService := bleveServices.NewIndexingService(config.Logger, indexPath)
	defer indexingService.Close()

	_, bleveInterfaceRepo := bleveRepositories.NewBleveRepository(indexingService)
	bootstrap.IndexBleveData(proposalRepo, bleveInterfaceRepo)

	submissionService := proposal_services.NewSubmissionService(
		proposalRepo,
		artifactService,
		notificationService,
		bleveInterfaceRepo,
	)

	// Routes; search first so /propostas/search wins over /propostas/:id
	bleveRoutes.InitBleveRoutes(app, bleveControllers.NewSearchController(bleveInterfaceRepo))
	proposal_routes.ProposalInitRoutes(app, proposalRepo, submissionService)

	port := config.GetEnvOrDefault("PORT", "5000")
	config.Logger.Info("Portal de Propostas listening", zap.String("port", port))
	if err := app.Listen(":" + port); err != nil {
		config.Logger.Fatal("Server stopped", zap.Error(err))
	}
}
