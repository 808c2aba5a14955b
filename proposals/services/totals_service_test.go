package services

import (
	"testing"

	"github.com/Cristiano-Arias/Portal-Proposta/db/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeCommercialTotals(t *testing.T) {
	summary := ComputeCommercialTotals(models.CommercialProposal{
		ServicesTotal:  "50.000,00",
		LaborTotal:     "100.000,00",
		MaterialsTotal: "80.000,00",
		EquipmentTotal: "20.000,00",
		BDIPercent:     "25",
	})

	assert.True(t, summary.DirectCost.Equal(dec("200000")), "direct cost = %s", summary.DirectCost)
	assert.True(t, summary.BDIAmount.Equal(dec("50000")), "bdi = %s", summary.BDIAmount)
	assert.True(t, summary.GrandTotal.Equal(dec("250000")), "grand total = %s", summary.GrandTotal)

	assert.Equal(t, "R$ 200.000,00", summary.DirectCostFmt)
	assert.Equal(t, "25.0", summary.BDIPercentFmt)
	assert.Equal(t, "R$ 250.000,00", summary.GrandTotalFmt)
}

// The service-line total itemizes work already priced in the three cost
// categories; it must never enter the direct-cost base.
func TestServiceTotalExcludedFromDirectCost(t *testing.T) {
	summary := ComputeCommercialTotals(models.CommercialProposal{
		ServicesTotal:  "999.999,99",
		LaborTotal:     "10,00",
		MaterialsTotal: "20,00",
		EquipmentTotal: "30,00",
		BDIPercent:     "10",
	})

	assert.True(t, summary.Services.Equal(dec("999999.99")))
	assert.True(t, summary.DirectCost.Equal(dec("60")), "direct cost must exclude services, got %s", summary.DirectCost)
	assert.True(t, summary.GrandTotal.Equal(dec("66")))
}

func TestMissingBDIPercent(t *testing.T) {
	summary := ComputeCommercialTotals(models.CommercialProposal{
		LaborTotal:     "1.000,00",
		MaterialsTotal: "500,00",
		EquipmentTotal: "250,00",
	})

	assert.True(t, summary.BDIAmount.IsZero())
	assert.True(t, summary.GrandTotal.Equal(summary.DirectCost))
	assert.Equal(t, "0.0", summary.BDIPercentFmt)
}

func TestGarbledInputsYieldZeroedSummary(t *testing.T) {
	summary := ComputeCommercialTotals(models.CommercialProposal{
		LaborTotal:     "não informado",
		MaterialsTotal: "",
		EquipmentTotal: "xx",
		BDIPercent:     "??",
	})

	assert.True(t, summary.DirectCost.IsZero())
	assert.True(t, summary.GrandTotal.IsZero())
	assert.Equal(t, "R$ 0,00", summary.GrandTotalFmt)
}

func TestBDIAppliedWithFullPrecision(t *testing.T) {
	summary := ComputeCommercialTotals(models.CommercialProposal{
		LaborTotal: "333,33",
		BDIPercent: "12,5",
	})

	// 333.33 * 0.125 = 41.66625, rounded to cents
	assert.True(t, summary.BDIAmount.Equal(dec("41.67")), "bdi = %s", summary.BDIAmount)
	assert.True(t, summary.GrandTotal.Equal(dec("375.00")), "grand total = %s", summary.GrandTotal)
	assert.Equal(t, "12.5", summary.BDIPercentFmt)
}

func TestNumericInputsAccepted(t *testing.T) {
	// Older clients post bare JSON numbers; FlexString preserves them as
	// dot-decimal strings.
	summary := ComputeCommercialTotals(models.CommercialProposal{
		LaborTotal:     "1234.56",
		MaterialsTotal: "1000",
		EquipmentTotal: "0",
		BDIPercent:     "0",
	})

	assert.True(t, summary.DirectCost.Equal(dec("2234.56")), "direct cost = %s", summary.DirectCost)
}
