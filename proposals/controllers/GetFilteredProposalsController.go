package controllers

import (
	"github.com/Cristiano-Arias/Portal-Proposta/config"
	"github.com/Cristiano-Arias/Portal-Proposta/db/models"
	"github.com/Cristiano-Arias/Portal-Proposta/utils/pagination"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// proposalSummaryRow is the flattened listing row shown on the buyer panel.
type proposalSummaryRow struct {
	ID       string `json:"id"`
	Protocol string `json:"protocolo"`
	Company  string `json:"empresa"`
	CNPJ     string `json:"cnpj"`
	Value    string `json:"valor"`
	Date     string `json:"data"`
	Status   string `json:"status"`
	Process  string `json:"processo"`
}

// GetFilteredProposalsController lists proposals newest first, filterable by
// processo, cnpj and status.
func (pc *ProposalController) GetFilteredProposalsController(c *fiber.Ctx) error {
	params := pagination.ParsePaginationParams(c)
	if err := pagination.ValidatePaginationParams(params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"erro": err.Error(),
		})
	}

	proposals, total, err := pc.Repo.GetFiltered(params.PageSize, params.Offset(), params.Filters)
	if err != nil {
		config.Logger.Error("Failed to fetch filtered proposals", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"erro": "Falha ao listar propostas",
		})
	}

	rows := make([]proposalSummaryRow, 0, len(proposals))
	for _, p := range proposals {
		rows = append(rows, summarizeProposal(p))
	}

	return c.Status(fiber.StatusOK).JSON(pagination.NewPaginatedResponse(rows, total, params))
}

func summarizeProposal(p models.Proposal) proposalSummaryRow {
	return proposalSummaryRow{
		ID:       p.ID.String(),
		Protocol: p.Protocol,
		Company:  p.Company.CompanyName,
		CNPJ:     p.Company.CNPJ,
		Value:    p.Totals.GrandTotalFmt,
		Date:     p.SubmittedAt.Format("02/01/2006 15:04"),
		Status:   string(p.Status),
		Process:  p.Process,
	}
}
