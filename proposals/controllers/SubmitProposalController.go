package controllers

import (
	"errors"

	"github.com/Cristiano-Arias/Portal-Proposta/config"
	"github.com/Cristiano-Arias/Portal-Proposta/proposals/repositories"
	"github.com/Cristiano-Arias/Portal-Proposta/proposals/requests"
	"github.com/Cristiano-Arias/Portal-Proposta/proposals/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ProposalController struct {
	Service *services.SubmissionService
	Repo    repositories.ProposalRepository
}

// SubmitProposalController receives one proposal submission and runs the
// full intake pipeline. A duplicate (processo, CNPJ) pair answers 409 with
// the prior protocol so the frontend can show it to the supplier.
func (pc *ProposalController) SubmitProposalController(c *fiber.Ctx) error {
	var request requests.SubmitProposalRequest

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"erro":     "Payload inválido",
			"detalhes": err.Error(),
		})
	}

	result, err := pc.Service.Submit(c.Context(), request)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"erro":   "Campos obrigatórios ausentes",
				"campos": verr.Fields,
			})
		}

		var conflict *repositories.ConflictError
		if errors.As(err, &conflict) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"erro":               "Já existe proposta deste CNPJ para este processo",
				"protocolo_anterior": conflict.Protocol,
				"data_anterior":      conflict.SubmittedAt,
			})
		}

		if errors.Is(err, repositories.ErrProtocolTaken) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"erro": "Protocolo já utilizado",
			})
		}

		config.Logger.Error("Failed to process proposal submission", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"erro": "Falha ao processar a proposta",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"sucesso":       true,
		"proposta_id":   result.ID,
		"protocolo":     result.Protocol,
		"anexos":        result.Attachments,
		"email_enviado": result.EmailSent,
		"mensagem":      "Proposta recebida com sucesso",
	})
}
