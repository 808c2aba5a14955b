package routes

import (
	controllers "github.com/Cristiano-Arias/Portal-Proposta/proposals/controllers"
	"github.com/Cristiano-Arias/Portal-Proposta/proposals/repositories"
	"github.com/Cristiano-Arias/Portal-Proposta/proposals/services"

	"github.com/gofiber/fiber/v2"
)

func ProposalInitRoutes(
	app *fiber.App,
	proposalRepo repositories.ProposalRepository,
	submissionService *services.SubmissionService,
) {
	proposalController := &controllers.ProposalController{
		Service: submissionService,
		Repo:    proposalRepo,
	}

	api := app.Group("/api")

	// Paths the portal frontend calls
	api.Get("/status", proposalController.StatusController)
	api.Post("/verificar-cnpj", proposalController.CheckDuplicateController)
	api.Post("/enviar-proposta", proposalController.SubmitProposalController)
	api.Get("/propostas/listar", proposalController.GetFilteredProposalsController)
	api.Get("/processos/listar", proposalController.ListProcessesController)
	api.Get("/download/:tipo/:id", proposalController.DownloadArtifactController)

	// RESTful aliases; the literal segments above must stay registered
	// before the :id routes
	api.Post("/propostas", proposalController.SubmitProposalController)
	api.Get("/propostas", proposalController.GetFilteredProposalsController)
	api.Get("/propostas/:id", proposalController.GetProposalController)
	api.Put("/propostas/:id", proposalController.UpdateProposalController)
	api.Get("/processos", proposalController.ListProcessesController)
}
