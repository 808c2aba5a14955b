package repositories

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Cristiano-Arias/Portal-Proposta/config"
	"github.com/Cristiano-Arias/Portal-Proposta/db/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	config.Logger = zap.NewNop()
	m.Run()
}

func newTestProposal(process, cnpj, protocol string) *models.Proposal {
	return &models.Proposal{
		ID:       uuid.New(),
		Protocol: protocol,
		Process:  process,
		Status:   models.StatusReceived,
		Company: models.CompanyInfo{
			CompanyName: "Construtora Alfa Ltda",
			CNPJ:        cnpj,
		},
		SubmittedAt: time.Now(),
	}
}

func TestNormalizeCNPJ(t *testing.T) {
	assert.Equal(t, "12345678000199", NormalizeCNPJ("12.345.678/0001-99"))
	assert.Equal(t, "12345678000199", NormalizeCNPJ("12345678000199"))
	assert.Equal(t, "", NormalizeCNPJ(""))
}

func TestCreateAndGetByID(t *testing.T) {
	repo, err := NewFileProposalRepository(t.TempDir())
	require.NoError(t, err)

	p := newTestProposal("CONC-2024-001", "12.345.678/0001-99", "PROP-1")
	require.NoError(t, repo.Create(p))

	got, err := repo.GetByID(p.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "PROP-1", got.Protocol)
	assert.Equal(t, 1, repo.Count())

	_, err = repo.GetByID(uuid.NewString())
	assert.ErrorIs(t, err, ErrProposalNotFound)
}

func TestDuplicatePairRejected(t *testing.T) {
	repo, err := NewFileProposalRepository(t.TempDir())
	require.NoError(t, err)

	first := newTestProposal("CONC-2024-001", "12.345.678/0001-99", "PROP-1")
	require.NoError(t, repo.Create(first))

	// Same pair, punctuation-free CNPJ spelling
	second := newTestProposal("CONC-2024-001", "12345678000199", "PROP-2")
	err = repo.Create(second)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "PROP-1", conflict.Protocol)
	assert.Equal(t, 1, repo.Count())

	// Same CNPJ on another process is fine
	third := newTestProposal("CONC-2024-002", "12.345.678/0001-99", "PROP-3")
	assert.NoError(t, repo.Create(third))
}

func TestProtocolUniqueness(t *testing.T) {
	repo, err := NewFileProposalRepository(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, repo.Create(newTestProposal("CONC-1", "11111111000111", "PROP-X")))
	err = repo.Create(newTestProposal("CONC-2", "22222222000122", "PROP-X"))
	assert.ErrorIs(t, err, ErrProtocolTaken)
}

func TestConcurrentSubmissionsSamePair(t *testing.T) {
	repo, err := NewFileProposalRepository(t.TempDir())
	require.NoError(t, err)

	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func(n int) {
			p := newTestProposal("CONC-2024-009", "12.345.678/0001-99", fmt.Sprintf("PROP-%d", n))
			results <- repo.Create(p)
		}(i)
	}

	var successes, conflicts int
	for i := 0; i < 2; i++ {
		err := <-results
		if err == nil {
			successes++
			continue
		}
		var conflict *ConflictError
		if assert.ErrorAs(t, err, &conflict) {
			conflicts++
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, conflicts)
	assert.Equal(t, 1, repo.Count())
}

func TestUpdatePersists(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileProposalRepository(dir)
	require.NoError(t, err)

	p := newTestProposal("CONC-2024-001", "12.345.678/0001-99", "PROP-1")
	require.NoError(t, repo.Create(p))

	now := time.Now()
	p.Status = models.StatusUpdated
	p.Notes = "documentação complementar recebida"
	p.UpdatedAt = &now
	require.NoError(t, repo.Update(p))

	got, err := repo.GetByID(p.ID.String())
	require.NoError(t, err)
	assert.Equal(t, models.StatusUpdated, got.Status)
	assert.NotNil(t, got.UpdatedAt)

	missing := newTestProposal("CONC-9", "33333333000133", "PROP-9")
	assert.ErrorIs(t, repo.Update(missing), ErrProposalNotFound)
}

func TestGetFilteredPaginationAndSort(t *testing.T) {
	repo, err := NewFileProposalRepository(t.TempDir())
	require.NoError(t, err)

	base := time.Now()
	for i := 0; i < 25; i++ {
		p := newTestProposal("CONC-2024-001", fmt.Sprintf("%014d", i+1), fmt.Sprintf("PROP-%02d", i))
		p.SubmittedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(p))
	}

	// page 2, size 10 over 25 records: items 11-20, newest first
	page, total, err := repo.GetFiltered(10, 10, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	require.Len(t, page, 10)
	assert.Equal(t, "PROP-14", page[0].Protocol)
	assert.Equal(t, "PROP-05", page[9].Protocol)

	// last page
	page, _, err = repo.GetFiltered(10, 20, nil)
	require.NoError(t, err)
	assert.Len(t, page, 5)

	// out of range
	page, _, err = repo.GetFiltered(10, 30, nil)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestGetFilteredByProcessAndCNPJ(t *testing.T) {
	repo, err := NewFileProposalRepository(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, repo.Create(newTestProposal("CONC-2024-001", "12.345.678/0001-99", "PROP-1")))
	require.NoError(t, repo.Create(newTestProposal("CONC-2024-002", "98.765.432/0001-10", "PROP-2")))
	require.NoError(t, repo.Create(newTestProposal("LICITACAO-77", "12.345.678/0001-99", "PROP-3")))

	byProcess, total, err := repo.GetFiltered(10, 0, map[string]string{"processo": "conc-2024"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, byProcess, 2)

	byCNPJ, total, err := repo.GetFiltered(10, 0, map[string]string{"cnpj": "12345678000199"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, byCNPJ, 2)

	both, total, err := repo.GetFiltered(10, 0, map[string]string{
		"processo": "LICITACAO",
		"cnpj":     "12.345.678/0001-99",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, both, 1)
	assert.Equal(t, "PROP-3", both[0].Protocol)
}

func TestListProcessesDistinctSorted(t *testing.T) {
	repo, err := NewFileProposalRepository(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, repo.Create(newTestProposal("B-PROC", "11111111000111", "PROP-1")))
	require.NoError(t, repo.Create(newTestProposal("A-PROC", "22222222000122", "PROP-2")))
	require.NoError(t, repo.Create(newTestProposal("B-PROC", "33333333000133", "PROP-3")))

	assert.Equal(t, []string{"A-PROC", "B-PROC"}, repo.ListProcesses())
}

func TestStartupRecoverySkipsCorruptUnits(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileProposalRepository(dir)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		p := newTestProposal("CONC-2024-001", fmt.Sprintf("%014d", i+1), fmt.Sprintf("PROP-%d", i))
		require.NoError(t, repo.Create(p))
	}

	// Corrupt unit must be skipped, not fatal
	corrupt := filepath.Join(dir, "proposta_corrupta.json")
	require.NoError(t, os.WriteFile(corrupt, []byte("{not json"), 0644))

	reloaded, err := NewFileProposalRepository(dir)
	require.NoError(t, err)
	assert.Equal(t, 3, reloaded.Count())

	all := reloaded.All()
	require.Len(t, all, 3)
	for _, p := range all {
		assert.Equal(t, "CONC-2024-001", p.Process)
	}
}
