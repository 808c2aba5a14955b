package services

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/Cristiano-Arias/Portal-Proposta/db/models"
	"github.com/Cristiano-Arias/Portal-Proposta/utils"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// reportLine is one row of the cost-itemization table.
type reportLine struct {
	Item        string
	Description string
	Unit        string
	Quantity    string
	UnitPrice   string
	Total       string
}

type commercialReportData struct {
	Protocol      string
	GeneratedAt   string
	Proposal      *models.Proposal
	Totals        models.FinancialSummary
	Lines         []reportLine
	DetailLines   []reportLine
	Validity      string
	ExecutionDays string
	PaymentTerms  string
}

// buildCostLines derives the itemization from the financial summary so the
// sum of line totals is exactly the grand total shown everywhere else.
func buildCostLines(totals models.FinancialSummary) []reportLine {
	return []reportLine{
		{Item: "1", Description: "Mão de Obra", Quantity: "1", UnitPrice: totals.LaborFmt, Total: totals.LaborFmt},
		{Item: "2", Description: "Materiais", Quantity: "1", UnitPrice: totals.MaterialsFmt, Total: totals.MaterialsFmt},
		{Item: "3", Description: "Equipamentos", Quantity: "1", UnitPrice: totals.EquipmentFmt, Total: totals.EquipmentFmt},
		{Item: "4", Description: fmt.Sprintf("BDI (%s%%)", totals.BDIPercentFmt), Quantity: "1", UnitPrice: totals.BDIAmountFmt, Total: totals.BDIAmountFmt},
	}
}

func buildDetailLines(costLines []models.CostLine) []reportLine {
	var lines []reportLine
	for i, line := range costLines {
		quantity := utils.ParseBRL(line.Quantity.String())
		unitPrice := utils.ParseBRL(line.UnitPrice.String())

		item := strings.TrimSpace(line.Item)
		if item == "" {
			item = fmt.Sprintf("%d", i+1)
		}

		lines = append(lines, reportLine{
			Item:        item,
			Description: line.Description,
			Unit:        line.Unit,
			Quantity:    line.Quantity.String(),
			UnitPrice:   utils.FormatBRL(unitPrice),
			Total:       utils.FormatBRL(quantity.Mul(unitPrice).Round(2)),
		})
	}
	return lines
}

func buildTechnicalReportHTML(p *models.Proposal) (string, error) {
	var buf bytes.Buffer
	if err := documentTemplates.ExecuteTemplate(&buf, "report_tecnico.html", newNarrativeData(p)); err != nil {
		return "", fmt.Errorf("%w: technical report: %v", ErrRenderUnavailable, err)
	}
	return buf.String(), nil
}

func buildCommercialReportHTML(p *models.Proposal) (string, error) {
	data := commercialReportData{
		Protocol:      p.Protocol,
		GeneratedAt:   time.Now().Format("02/01/2006"),
		Proposal:      p,
		Totals:        p.Totals,
		Lines:         buildCostLines(p.Totals),
		DetailLines:   buildDetailLines(p.Commercial.CostLines),
		Validity:      valueOrDefault(p.Commercial.Validity, "60 dias"),
		ExecutionDays: valueOrDefault(p.Summary.ExecutionDays, "Não informado"),
		PaymentTerms:  valueOrDefault(p.Summary.PaymentTerms, "Não informado"),
	}

	var buf bytes.Buffer
	if err := documentTemplates.ExecuteTemplate(&buf, "report_comercial.html", data); err != nil {
		return "", fmt.Errorf("%w: commercial report: %v", ErrRenderUnavailable, err)
	}
	return buf.String(), nil
}

func valueOrDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// RenderTechnicalReport produces the paginated technical PDF.
func RenderTechnicalReport(ctx context.Context, p *models.Proposal) ([]byte, error) {
	html, err := buildTechnicalReportHTML(p)
	if err != nil {
		return nil, err
	}
	return printHTMLToPDF(ctx, html)
}

// RenderCommercialReport produces the paginated commercial PDF with the
// cost-line itemization and grand-total row.
func RenderCommercialReport(ctx context.Context, p *models.Proposal) ([]byte, error) {
	html, err := buildCommercialReportHTML(p)
	if err != nil {
		return nil, err
	}
	return printHTMLToPDF(ctx, html)
}

// printHTMLToPDF renders HTML to an A4 portrait PDF through headless Chrome.
// The HTML is served from an ephemeral local HTTP server so the page loads
// with a proper origin and charset. A missing or broken Chrome installation
// surfaces as ErrRenderUnavailable; callers degrade to "artifact not
// available" instead of failing the submission.
func printHTMLToPDF(ctx context.Context, htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(ctx)
	defer cancel()

	ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(htmlContent))
	})

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderUnavailable, err)
	}
	defer listener.Close()

	server := &http.Server{Handler: mux}
	go server.Serve(listener)
	defer server.Close()

	url := fmt.Sprintf("http://127.0.0.1:%d", listener.Addr().(*net.TCPAddr).Port)

	var buf []byte
	err = chromedp.Run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).   // A4 portrait
				WithPaperHeight(11.69). //
				WithMarginTop(0.4).
				WithMarginBottom(0.4).
				WithMarginLeft(0.4).
				WithMarginRight(0.4).
				WithLandscape(false).
				WithPreferCSSPageSize(false).
				WithDisplayHeaderFooter(false).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderUnavailable, err)
	}

	return buf, nil
}
