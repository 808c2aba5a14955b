package services

import (
	"fmt"
	"time"

	"github.com/Cristiano-Arias/Portal-Proposta/db/models"

	"github.com/xuri/excelize/v2"
)

// RenderExcelWorkbook produces the condensed spreadsheet view of a proposal:
// one "Resumo" sheet with labeled company-identity and financial-summary
// cells.
func RenderExcelWorkbook(p *models.Proposal) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Resumo"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderUnavailable, err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderUnavailable, err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"366092"}},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderUnavailable, err)
	}
	boldStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderUnavailable, err)
	}

	setCell := func(cell string, value interface{}) {
		_ = f.SetCellValue(sheet, cell, value)
	}

	setCell("A1", fmt.Sprintf("PROPOSTA %s", p.Protocol))
	_ = f.SetCellStyle(sheet, "A1", "A1", titleStyle)
	setCell("A2", fmt.Sprintf("Processo: %s — emitido em %s", p.Process, time.Now().Format("02/01/2006")))

	setCell("A4", "DADOS DA EMPRESA")
	_ = f.SetCellStyle(sheet, "A4", "B4", headerStyle)
	setCell("A5", "Razão Social:")
	setCell("B5", p.Company.CompanyName)
	setCell("A6", "CNPJ:")
	setCell("B6", p.Company.CNPJ)
	setCell("A7", "Cidade:")
	setCell("B7", p.Company.City)
	setCell("A8", "Responsável Técnico:")
	setCell("B8", p.Company.TechnicalLead)

	setCell("A10", "RESUMO FINANCEIRO")
	_ = f.SetCellStyle(sheet, "A10", "B10", headerStyle)
	financials := []struct {
		label string
		value string
	}{
		{"Mão de Obra:", p.Totals.LaborFmt},
		{"Materiais:", p.Totals.MaterialsFmt},
		{"Equipamentos:", p.Totals.EquipmentFmt},
		{"Custo Direto:", p.Totals.DirectCostFmt},
		{fmt.Sprintf("BDI (%s%%):", p.Totals.BDIPercentFmt), p.Totals.BDIAmountFmt},
		{"Valor Total:", p.Totals.GrandTotalFmt},
	}
	for i, row := range financials {
		setCell(fmt.Sprintf("A%d", 11+i), row.label)
		setCell(fmt.Sprintf("B%d", 11+i), row.value)
	}
	totalRow := 11 + len(financials) - 1
	_ = f.SetCellStyle(sheet, fmt.Sprintf("A%d", totalRow), fmt.Sprintf("B%d", totalRow), boldStyle)

	_ = f.SetColWidth(sheet, "A", "A", 24)
	_ = f.SetColWidth(sheet, "B", "B", 32)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderUnavailable, err)
	}
	return buf.Bytes(), nil
}
