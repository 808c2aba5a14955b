package controllers

import (
	"github.com/gofiber/fiber/v2"
)

// SearchProposalsController answers the buyer panel's free-text search box.
// "q" is required; "processo" optionally narrows to a single tender.
func (c *SearchController) SearchProposalsController(ctx *fiber.Ctx) error {
	query := ctx.Query("q")
	if query == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"erro": "Informe o termo de busca (q)",
		})
	}

	process := ctx.Query("processo")

	results, err := c.repo.SearchProposals(query, process)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"erro": "Falha na busca",
		})
	}

	var matches []interface{}
	for _, hit := range results.Hits {
		doc, err := c.repo.GetProposalDocument(hit.ID)
		if err != nil {
			continue
		}
		matches = append(matches, doc)
	}

	return ctx.JSON(fiber.Map{
		"resultados": matches,
		"total":      results.Total,
	})
}
