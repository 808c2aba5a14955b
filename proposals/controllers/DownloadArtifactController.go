package controllers

import (
	"errors"

	"github.com/Cristiano-Arias/Portal-Proposta/config"
	"github.com/Cristiano-Arias/Portal-Proposta/db/models"
	documents_services "github.com/Cristiano-Arias/Portal-Proposta/documents/services"
	"github.com/Cristiano-Arias/Portal-Proposta/proposals/repositories"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var artifactContentTypes = map[models.ArtifactKind]string{
	models.ArtifactWord:            "application/msword",
	models.ArtifactExcel:           "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	models.ArtifactReport:          "application/pdf",
	models.ArtifactTechnicalReport: "application/pdf",
}

// DownloadArtifactController re-renders the requested document on demand so
// downloads survive a lost uploads directory.
func (pc *ProposalController) DownloadArtifactController(c *fiber.Ctx) error {
	kind := models.ArtifactKind(c.Params("tipo"))
	id := c.Params("id")

	contentType, ok := artifactContentTypes[kind]
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"erro": "Tipo de documento inválido: " + string(kind),
		})
	}

	content, filename, err := pc.Service.RenderArtifact(c.Context(), id, kind)
	if err != nil {
		if errors.Is(err, repositories.ErrProposalNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"erro": "Proposta não encontrada",
			})
		}
		if errors.Is(err, documents_services.ErrRenderUnavailable) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"erro": "Geração de PDF indisponível no momento",
			})
		}
		config.Logger.Error("Failed to render artifact for download",
			zap.String("id", id),
			zap.String("tipo", string(kind)),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"erro": "Falha ao gerar documento",
		})
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Status(fiber.StatusOK).Send(content)
}
