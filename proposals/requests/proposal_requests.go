package requests

import (
	"github.com/Cristiano-Arias/Portal-Proposta/db/models"
)

// SubmitProposalRequest is the intake payload posted by the portal frontend.
type SubmitProposalRequest struct {
	Protocol   string                    `json:"protocolo"`
	Process    string                    `json:"processo"`
	Company    models.CompanyInfo        `json:"dados"`
	Technical  models.TechnicalProposal  `json:"tecnica"`
	Commercial models.CommercialProposal `json:"comercial"`
	Summary    models.SubmissionSummary  `json:"resumo"`
}

// UpdateProposalRequest carries the only fields mutable after intake.
type UpdateProposalRequest struct {
	Status *string `json:"status"`
	Notes  *string `json:"observacoes"`
}

// DuplicateCheckRequest is the pre-flight duplicate query.
type DuplicateCheckRequest struct {
	CNPJ    string `json:"cnpj"`
	Process string `json:"processo"`
}
