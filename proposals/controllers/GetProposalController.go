package controllers

import (
	"errors"

	"github.com/Cristiano-Arias/Portal-Proposta/config"
	"github.com/Cristiano-Arias/Portal-Proposta/proposals/repositories"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GetProposalController returns the full stored record of one proposal.
func (pc *ProposalController) GetProposalController(c *fiber.Ctx) error {
	id := c.Params("id")

	proposal, err := pc.Service.Get(id)
	if err != nil {
		if errors.Is(err, repositories.ErrProposalNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"erro": "Proposta não encontrada",
			})
		}
		config.Logger.Error("Failed to fetch proposal", zap.String("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"erro": "Falha ao buscar proposta",
		})
	}

	return c.Status(fiber.StatusOK).JSON(proposal)
}

// ListProcessesController returns the distinct tender processes that have at
// least one proposal, sorted alphabetically.
func (pc *ProposalController) ListProcessesController(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"processos": pc.Repo.ListProcesses(),
	})
}
