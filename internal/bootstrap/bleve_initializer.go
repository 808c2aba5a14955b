package bootstrap

import (
	bleveRepositories "github.com/Cristiano-Arias/Portal-Proposta/bleve/repositories"
	"github.com/Cristiano-Arias/Portal-Proposta/config"
	proposal_repositories "github.com/Cristiano-Arias/Portal-Proposta/proposals/repositories"

	"go.uber.org/zap"
)

// IndexBleveData rebuilds the search index from the durable proposal store.
// The store is the source of truth; the index is always reconstructable, so
// a failure here degrades search but never blocks startup.
func IndexBleveData(
	proposalRepo proposal_repositories.ProposalRepository,
	bleveRepo bleveRepositories.BleveRepositoryInterface,
) {
	proposals := proposalRepo.All()
	if err := bleveRepo.IndexExistingProposals(proposals); err != nil {
		config.Logger.Error("Failed to index proposals into Bleve, search may be incomplete", zap.Error(err))
		return
	}
	config.Logger.Info("Search index rebuilt", zap.Int("propostas", len(proposals)))
}
