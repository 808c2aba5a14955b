package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

var startedAt = time.Now()

// StatusController is the health endpoint the portal frontend polls.
func (pc *ProposalController) StatusController(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":          "online",
		"total_propostas": pc.Repo.Count(),
		"versao":          "2.0",
		"timestamp":       time.Now().Format(time.RFC3339),
		"uptime":          time.Since(startedAt).Round(time.Second).String(),
	})
}
