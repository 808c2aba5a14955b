package routes

import (
	"github.com/Cristiano-Arias/Portal-Proposta/bleve/controllers"

	"github.com/gofiber/fiber/v2"
)

// InitBleveRoutes must run before the proposal routes so /propostas/search
// is matched ahead of /propostas/:id.
func InitBleveRoutes(app *fiber.App, controller *controllers.SearchController) {
	api := app.Group("/api")

	api.Get("/propostas/search", controller.SearchProposalsController)
	api.Get("/busca/propostas", controller.SearchProposalsController)
}
