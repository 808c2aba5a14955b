package repositories

import (
	"strings"

	"github.com/Cristiano-Arias/Portal-Proposta/config"
	"github.com/Cristiano-Arias/Portal-Proposta/db/models"
	proposal_repositories "github.com/Cristiano-Arias/Portal-Proposta/proposals/repositories"

	"github.com/blevesearch/bleve/v2"
	"go.uber.org/zap"
)

const proposalIndexName = "propostas"

// bleveProposalDoc is the flat searchable projection of a proposal. The CNPJ
// is indexed both as submitted and normalized so either spelling matches.
type bleveProposalDoc struct {
	ID             string `json:"id"`
	Protocol       string `json:"protocolo"`
	Process        string `json:"processo"`
	Company        string `json:"empresa"`
	CNPJ           string `json:"cnpj"`
	CNPJNormalized string `json:"cnpj_normalizado"`
	Email          string `json:"email"`
	City           string `json:"cidade"`
	Status         string `json:"status"`
	GrandTotal     string `json:"valor_total"`
	SubmittedAt    string `json:"data_criacao"`
}

func newBleveProposalDoc(proposal models.Proposal) bleveProposalDoc {
	return bleveProposalDoc{
		ID:             proposal.ID.String(),
		Protocol:       proposal.Protocol,
		Process:        proposal.Process,
		Company:        proposal.Company.CompanyName,
		CNPJ:           proposal.Company.CNPJ,
		CNPJNormalized: proposal_repositories.NormalizeCNPJ(proposal.Company.CNPJ),
		Email:          proposal.Company.Email,
		City:           proposal.Company.City,
		Status:         string(proposal.Status),
		GrandTotal:     proposal.Totals.GrandTotalFmt,
		SubmittedAt:    proposal.SubmittedAt.Format("2006-01-02 15:04:05"),
	}
}

func (r *BleveRepository) IndexSingleProposal(proposal models.Proposal) error {
	err := r.indexer.IndexDocument(proposalIndexName, proposal.ID.String(), newBleveProposalDoc(proposal))
	if err != nil {
		config.Logger.Error("Failed to index proposal into Bleve",
			zap.Error(err),
			zap.String("protocolo", proposal.Protocol),
		)
		return err
	}
	return nil
}

func (r *BleveRepository) IndexExistingProposals(proposals []models.Proposal) error {
	docsToIndex := make(map[string]interface{}, len(proposals))
	for _, proposal := range proposals {
		docsToIndex[proposal.ID.String()] = newBleveProposalDoc(proposal)
	}

	if len(docsToIndex) == 0 {
		config.Logger.Info("No proposals to index into Bleve.")
		return nil
	}

	if err := r.indexer.BulkIndexDocuments(proposalIndexName, docsToIndex); err != nil {
		config.Logger.Error("Failed to bulk index proposals into Bleve", zap.Error(err))
		return err
	}

	config.Logger.Info("Bulk indexed proposals into Bleve", zap.Int("count", len(docsToIndex)))
	return nil
}

// SearchProposals layers exact, phrase, fuzzy, prefix and wildcard matching
// so a protocol, a company name fragment or a bare CNPJ all find their
// proposal. An optional process filter narrows the result to one tender.
func (r *BleveRepository) SearchProposals(queryString, process string) (*bleve.SearchResult, error) {
	queryString = strings.TrimSpace(strings.ToLower(queryString))

	booleanQuery := bleve.NewBooleanQuery()

	exactMatch := bleve.NewBooleanQuery()
	exactFields := []string{"protocolo", "cnpj", "cnpj_normalizado", "empresa", "email"}
	for _, field := range exactFields {
		termQuery := bleve.NewTermQuery(queryString)
		termQuery.SetField(field)
		termQuery.SetBoost(6.0)
		exactMatch.AddShould(termQuery)
	}

	phraseMatch := bleve.NewBooleanQuery()
	phraseFields := []string{"empresa", "processo", "cidade"}
	for _, field := range phraseFields {
		phraseQuery := bleve.NewMatchPhraseQuery(queryString)
		phraseQuery.SetField(field)
		phraseQuery.SetBoost(5.0)
		phraseMatch.AddShould(phraseQuery)
	}

	fuzzyMatch := bleve.NewBooleanQuery()
	fuzzyFields := []string{"empresa", "cidade", "email"}
	for _, field := range fuzzyFields {
		fuzzyQuery := bleve.NewFuzzyQuery(queryString)
		fuzzyQuery.SetField(field)
		fuzzyQuery.SetFuzziness(2)
		fuzzyQuery.SetBoost(3.0)
		fuzzyMatch.AddShould(fuzzyQuery)
	}

	prefixMatch := bleve.NewBooleanQuery()
	prefixFields := []string{"protocolo", "empresa", "processo", "cnpj_normalizado"}
	for _, field := range prefixFields {
		prefixQuery := bleve.NewPrefixQuery(queryString)
		prefixQuery.SetField(field)
		prefixQuery.SetBoost(2.0)
		prefixMatch.AddShould(prefixQuery)
	}

	wildcardMatch := bleve.NewBooleanQuery()
	wildcardQuery := bleve.NewWildcardQuery("*" + queryString + "*")
	wildcardQuery.SetBoost(1.0)
	wildcardMatch.AddShould(wildcardQuery)

	booleanQuery.AddShould(exactMatch)
	booleanQuery.AddShould(phraseMatch)
	booleanQuery.AddShould(fuzzyMatch)
	booleanQuery.AddShould(prefixMatch)
	booleanQuery.AddShould(wildcardMatch)

	finalQuery := bleve.NewBooleanQuery()
	finalQuery.AddMust(booleanQuery)

	if process != "" {
		processQuery := bleve.NewMatchPhraseQuery(strings.ToLower(process))
		processQuery.SetField("processo")
		finalQuery.AddMust(processQuery)
	}

	return r.indexer.SearchIndex(proposalIndexName, finalQuery, 20)
}

func (r *BleveRepository) GetProposalDocument(proposalID string) (interface{}, error) {
	return r.indexer.GetDocument(proposalIndexName, proposalID)
}
