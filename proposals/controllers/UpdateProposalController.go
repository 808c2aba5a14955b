package controllers

import (
	"errors"

	"github.com/Cristiano-Arias/Portal-Proposta/config"
	"github.com/Cristiano-Arias/Portal-Proposta/proposals/repositories"
	"github.com/Cristiano-Arias/Portal-Proposta/proposals/requests"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// UpdateProposalController applies post-intake mutations. Only status and
// observacoes are writable; everything else is frozen at submission. Status
// is an open string, buyers use panel-specific values beyond the defaults.
func (pc *ProposalController) UpdateProposalController(c *fiber.Ctx) error {
	id := c.Params("id")

	var request requests.UpdateProposalRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"erro":     "Payload inválido",
			"detalhes": err.Error(),
		})
	}

	proposal, err := pc.Service.Update(id, request)
	if err != nil {
		if errors.Is(err, repositories.ErrProposalNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"erro": "Proposta não encontrada",
			})
		}
		config.Logger.Error("Failed to update proposal", zap.String("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"erro": "Falha ao atualizar proposta",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"sucesso":  true,
		"proposta": proposal,
	})
}
