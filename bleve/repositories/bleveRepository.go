package repositories

import (
	bleveindex "github.com/Cristiano-Arias/Portal-Proposta/bleve/services"
	"github.com/Cristiano-Arias/Portal-Proposta/db/models"

	"github.com/blevesearch/bleve/v2"
)

type BleveRepository struct {
	indexer bleveindex.IndexingServiceInterface
}

type BleveRepositoryInterface interface {
	IndexSingleProposal(proposal models.Proposal) error
	IndexExistingProposals(proposals []models.Proposal) error
	SearchProposals(queryString, process string) (*bleve.SearchResult, error)
	GetProposalDocument(proposalID string) (interface{}, error)
}

// NewBleveRepository returns both the struct and the interface so callers can
// hold whichever suits the wiring.
func NewBleveRepository(indexer bleveindex.IndexingServiceInterface) (*BleveRepository, BleveRepositoryInterface) {
	repo := &BleveRepository{indexer: indexer}
	return repo, repo
}
