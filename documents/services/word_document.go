package services

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/Cristiano-Arias/Portal-Proposta/db/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var documentTemplates = template.Must(
	template.New("documents").Funcs(template.FuncMap{
		"orNA": func(s string) string {
			if strings.TrimSpace(s) == "" {
				return "Não informado"
			}
			return s
		},
		"orDefault": func(s, fallback string) string {
			if strings.TrimSpace(s) == "" {
				return fallback
			}
			return s
		},
	}).ParseFS(templateFS, "templates/*.html"),
)

// narrativeData feeds the flow-document and technical-report templates. Table
// rows are padded to their column count up front so ragged or partially
// filled rows never break rendering.
type narrativeData struct {
	Protocol    string
	GeneratedAt string
	Proposal    *models.Proposal
	Totals      models.FinancialSummary
	ScopeItems  []string
	Schedule    [][]string
	Team        [][]string
	Materials   [][]string
	Equipment   [][]string
}

func newNarrativeData(p *models.Proposal) narrativeData {
	return narrativeData{
		Protocol:    p.Protocol,
		GeneratedAt: time.Now().Format("02/01/2006"),
		Proposal:    p,
		Totals:      p.Totals,
		ScopeItems:  splitScopeItems(p.Technical.ScopeIncluded),
		Schedule:    padRows(p.Technical.Schedule, 4),
		Team:        padRows(p.Technical.Team, 5),
		Materials:   padRows(p.Technical.Materials, 4),
		Equipment:   padRows(p.Technical.Equipment, 4),
	}
}

func splitScopeItems(scope string) []string {
	var items []string
	for _, line := range strings.Split(scope, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

// padRows clips or extends every row to exactly width cells.
func padRows(rows [][]string, width int) [][]string {
	if len(rows) == 0 {
		return nil
	}
	padded := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, width)
		for i := 0; i < width && i < len(row); i++ {
			cells[i] = row[i]
		}
		padded = append(padded, cells)
	}
	return padded
}

// RenderWordDocument produces the numbered-section proposal narrative as
// Word-compatible HTML bytes (served as a .doc attachment, the same layout
// the portal always shipped: 14 sections plus signature block).
func RenderWordDocument(p *models.Proposal) ([]byte, error) {
	var buf bytes.Buffer
	if err := documentTemplates.ExecuteTemplate(&buf, "proposal_word.html", newNarrativeData(p)); err != nil {
		return nil, fmt.Errorf("%w: flow document: %v", ErrRenderUnavailable, err)
	}
	return buf.Bytes(), nil
}
