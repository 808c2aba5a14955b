package services

import (
	"github.com/Cristiano-Arias/Portal-Proposta/db/models"
	"github.com/Cristiano-Arias/Portal-Proposta/utils"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// ComputeCommercialTotals derives the standardized financial summary from the
// raw commercial inputs. It never fails: missing or garbled values contribute
// zero (the codec logs the anomaly) so document generation always proceeds.
//
// Direct cost is labor + materials + equipment. The service-line total is
// deliberately excluded: it itemizes work already priced inside the three
// cost categories, and counting it again inflated grand totals in early
// portal revisions.
func ComputeCommercialTotals(commercial models.CommercialProposal) models.FinancialSummary {
	services := utils.ParseBRL(commercial.ServicesTotal.String())
	labor := utils.ParseBRL(commercial.LaborTotal.String())
	materials := utils.ParseBRL(commercial.MaterialsTotal.String())
	equipment := utils.ParseBRL(commercial.EquipmentTotal.String())

	directCost := labor.Add(materials).Add(equipment)

	// BDI is applied with full precision and only then rounded to cents, so
	// grandTotal = directCost + bdiAmount holds exactly in the stored values.
	bdiPercent := utils.ParsePercent(commercial.BDIPercent.String())
	bdiAmount := directCost.Mul(bdiPercent).Div(oneHundred).Round(2)
	grandTotal := directCost.Add(bdiAmount)

	return models.FinancialSummary{
		Services:   services,
		Labor:      labor,
		Materials:  materials,
		Equipment:  equipment,
		DirectCost: directCost,
		BDIPercent: bdiPercent,
		BDIAmount:  bdiAmount,
		GrandTotal: grandTotal,

		ServicesFmt:   utils.FormatBRL(services),
		LaborFmt:      utils.FormatBRL(labor),
		MaterialsFmt:  utils.FormatBRL(materials),
		EquipmentFmt:  utils.FormatBRL(equipment),
		DirectCostFmt: utils.FormatBRL(directCost),
		BDIPercentFmt: bdiPercent.StringFixed(1),
		BDIAmountFmt:  utils.FormatBRL(bdiAmount),
		GrandTotalFmt: utils.FormatBRL(grandTotal),
	}
}
