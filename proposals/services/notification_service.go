package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Cristiano-Arias/Portal-Proposta/config"
	"github.com/Cristiano-Arias/Portal-Proposta/db/models"
	"github.com/Cristiano-Arias/Portal-Proposta/utils"

	"go.uber.org/zap"
)

// NotificationService dispatches the "new proposal" package to the
// procurement inbox. Dispatch is strictly best-effort: every failure is
// logged and reported as a flag, never as a submission error.
type NotificationService struct {
	recipient string
}

func NewNotificationService() *NotificationService {
	return &NotificationService{
		recipient: config.GetEnv("EMAIL_SUPRIMENTOS"),
	}
}

// NotifyProposalReceived emails the proposal summary with the generated
// artifacts and the full proposal JSON attached. Returns whether the email
// went out.
func (n *NotificationService) NotifyProposalReceived(p *models.Proposal) bool {
	if utils.GetMailer() == nil || n.recipient == "" {
		config.Logger.Warn("Proposal email skipped: mailer or recipient not configured",
			zap.String("protocolo", p.Protocol),
		)
		return false
	}

	subject := fmt.Sprintf("Nova Proposta - %s", p.Protocol)
	body := fmt.Sprintf(`NOVA PROPOSTA RECEBIDA

Protocolo: %s
Processo: %s

DADOS DA EMPRESA:
Empresa: %s
CNPJ: %s
Email: %s
Telefone: %s

RESUMO DA PROPOSTA:
Valor Total: %s
Prazo de Execução: %s

Data/Hora: %s

==========================================
PROPOSTA COMPLETA EM ANEXO
==========================================
`,
		p.Protocol,
		p.Process,
		valueOrNA(p.Company.CompanyName),
		valueOrNA(p.Company.CNPJ),
		valueOrNA(p.Company.Email),
		valueOrNA(p.Company.Phone),
		p.Totals.GrandTotalFmt,
		valueOrNA(p.Technical.ExecutionDays),
		time.Now().Format("02/01/2006 15:04:05"),
	)

	var filePaths []string
	for _, att := range p.Attachments {
		filePaths = append(filePaths, att.Path)
	}

	var inline []utils.EmailAttachment
	if data, err := json.MarshalIndent(p, "", "  "); err == nil {
		inline = append(inline, utils.EmailAttachment{
			Name:    fmt.Sprintf("proposta_%s.json", p.Protocol),
			Content: data,
		})
	}

	if err := utils.SendEmail(n.recipient, subject, body, filePaths, inline); err != nil {
		config.Logger.Error("Proposal notification failed",
			zap.String("protocolo", p.Protocol),
			zap.Error(err),
		)
		return false
	}
	return true
}

func valueOrNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
