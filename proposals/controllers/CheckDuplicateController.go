package controllers

import (
	"strings"

	"github.com/Cristiano-Arias/Portal-Proposta/proposals/requests"

	"github.com/gofiber/fiber/v2"
)

// CheckDuplicateController is the pre-flight CNPJ check the frontend calls
// before letting a supplier fill in the full form.
func (pc *ProposalController) CheckDuplicateController(c *fiber.Ctx) error {
	var request requests.DuplicateCheckRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"erro":     "Payload inválido",
			"detalhes": err.Error(),
		})
	}

	if strings.TrimSpace(request.CNPJ) == "" || strings.TrimSpace(request.Process) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"erro": "Informe cnpj e processo",
		})
	}

	return c.Status(fiber.StatusOK).JSON(pc.Service.CheckDuplicate(request.Process, request.CNPJ))
}
