package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProposalStatus string

const (
	StatusReceived ProposalStatus = "recebida"
	StatusUpdated  ProposalStatus = "atualizada"
	StatusApproved ProposalStatus = "aprovada"
	StatusRejected ProposalStatus = "recusada"
)

// ArtifactKind identifies one of the generated document formats.
type ArtifactKind string

const (
	ArtifactWord            ArtifactKind = "word"
	ArtifactExcel           ArtifactKind = "excel"
	ArtifactReport          ArtifactKind = "report"
	ArtifactTechnicalReport ArtifactKind = "report_tecnico"
)

// FlexString accepts a JSON string, a bare JSON number or null. The portal
// frontend posts form values as strings, but older clients sent numbers for
// the commercial totals and null for untouched fields.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexString(n.String())
		return nil
	}
	return fmt.Errorf("value %q is neither a string nor a number", string(data))
}

func (f FlexString) String() string {
	return string(f)
}

// Proposal is the central entity: one technical/commercial submission for a
// tender process. The JSON layout is the portal's persisted wire format.
type Proposal struct {
	ID          uuid.UUID          `json:"id"`
	Protocol    string             `json:"protocolo"`
	Process     string             `json:"processo"`
	Status      ProposalStatus     `json:"status"`
	Company     CompanyInfo        `json:"dados_empresa"`
	Technical   TechnicalProposal  `json:"proposta_tecnica"`
	Commercial  CommercialProposal `json:"proposta_comercial"`
	Summary     SubmissionSummary  `json:"resumo"`
	Totals      FinancialSummary   `json:"totais_calculados"`
	Attachments []Attachment       `json:"anexos"`
	Notes       string             `json:"observacoes,omitempty"`
	SubmittedAt time.Time          `json:"data_criacao"`
	UpdatedAt   *time.Time         `json:"data_atualizacao,omitempty"`
}

// CompanyInfo identifies the bidding company.
type CompanyInfo struct {
	CompanyName   string `json:"razaoSocial"`
	CNPJ          string `json:"cnpj"`
	Address       string `json:"endereco"`
	City          string `json:"cidade"`
	Phone         string `json:"telefone"`
	Email         string `json:"email"`
	TechnicalLead string `json:"respTecnico"`
	LicenseNumber string `json:"crea"` // CREA/CAU registration
}

// TechnicalProposal carries the narrative and tabular technical sections.
// Tabular fields are row-oriented and may be ragged; renderers tolerate
// missing cells.
type TechnicalProposal struct {
	TenderObject          string     `json:"objetoConcorrencia"`
	ScopeIncluded         string     `json:"escopoInclusos"`
	ScopeExcluded         string     `json:"escopoExclusos"`
	Methodology           string     `json:"metodologia"`
	ExecutionSequence     string     `json:"sequenciaExecucao"`
	ExecutionDays         string     `json:"prazoExecucao"`
	ServiceStart          string     `json:"inicioServicos"`
	MobilizationDays      string     `json:"prazoMobilizacao"`
	SiteSetupDays         string     `json:"instalacaoCanteiro"`
	Schedule              [][]string `json:"cronograma"`   // activity, duration, start, end
	Team                  [][]string `json:"equipe"`       // role, name, education, experience, registration
	Materials             [][]string `json:"materiais"`    // material, specification, unit, quantity
	Equipment             [][]string `json:"equipamentos"` // equipment, specification, unit, quantity
	SiteStructure         string     `json:"estruturaCanteiro"`
	ContractorObligations string     `json:"obrigacoesContratada"`
	ClientObligations     string     `json:"obrigacoesContratante"`
	Guarantees            string     `json:"garantias"`
	CompanyExperience     string     `json:"experienciaEmpresa"`
	TechnicalCertificates string     `json:"atestadosObras"`
	Conditions            string     `json:"condicoesPremissas"`
	FinalRemarks          string     `json:"observacoesFinais"`
}

// CommercialProposal holds the raw monetary inputs exactly as submitted.
// Values are pt-BR formatted strings ("1.234,56"); parsing happens in the
// totals calculator, never here.
type CommercialProposal struct {
	ServicesTotal  FlexString `json:"totalServicos"`
	LaborTotal     FlexString `json:"totalMaoObra"`
	MaterialsTotal FlexString `json:"totalMateriais"`
	EquipmentTotal FlexString `json:"totalEquipamentos"`
	BDIPercent     FlexString `json:"bdiPercentual"`
	Validity       string     `json:"validadeProposta"`
	CostLines      []CostLine `json:"itens,omitempty"`
}

// CostLine is an optional explicit cost-line item for the commercial report.
type CostLine struct {
	Item        string     `json:"item"`
	Description string     `json:"descricao"`
	Unit        string     `json:"unidade"`
	Quantity    FlexString `json:"quantidade"`
	UnitPrice   FlexString `json:"precoUnitario"`
}

// SubmissionSummary mirrors the portal's "resumo" block.
type SubmissionSummary struct {
	ExecutionDays string `json:"prazoExecucao"`
	PaymentTerms  string `json:"formaPagamento"`
}

// FinancialSummary is derived from the commercial record and recomputed on
// every create or financial update; it is never hand-edited. Each monetary
// value carries both the exact decimal and its pt-BR presentation.
type FinancialSummary struct {
	Services   decimal.Decimal `json:"servicos_num"`
	Labor      decimal.Decimal `json:"mao_obra_num"`
	Materials  decimal.Decimal `json:"materiais_num"`
	Equipment  decimal.Decimal `json:"equipamentos_num"`
	DirectCost decimal.Decimal `json:"custo_direto_num"`
	BDIPercent decimal.Decimal `json:"bdi_percentual_num"`
	BDIAmount  decimal.Decimal `json:"bdi_valor_num"`
	GrandTotal decimal.Decimal `json:"valor_total_num"`

	ServicesFmt   string `json:"servicos"`
	LaborFmt      string `json:"mao_obra"`
	MaterialsFmt  string `json:"materiais"`
	EquipmentFmt  string `json:"equipamentos"`
	DirectCostFmt string `json:"custo_direto"`
	BDIPercentFmt string `json:"bdi_percentual"`
	BDIAmountFmt  string `json:"bdi_valor"`
	GrandTotalFmt string `json:"valor_total"`
}

// Attachment describes one generated artifact stored on disk.
type Attachment struct {
	Kind ArtifactKind `json:"tipo"`
	Name string       `json:"nome"`
	Path string       `json:"caminho"`
}

// AttachmentByKind returns the attachment descriptor for the given kind.
func (p *Proposal) AttachmentByKind(kind ArtifactKind) (Attachment, bool) {
	for _, a := range p.Attachments {
		if a.Kind == kind {
			return a, true
		}
	}
	return Attachment{}, false
}
