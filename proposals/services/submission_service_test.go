package services

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/Cristiano-Arias/Portal-Proposta/config"
	"github.com/Cristiano-Arias/Portal-Proposta/db/models"
	"github.com/Cristiano-Arias/Portal-Proposta/proposals/repositories"
	"github.com/Cristiano-Arias/Portal-Proposta/proposals/requests"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	config.Logger = zap.NewNop()
	os.Exit(m.Run())
}

type stubNotifier struct {
	called int
	result bool
}

func (n *stubNotifier) NotifyProposalReceived(p *models.Proposal) bool {
	n.called++
	return n.result
}

type stubArtifacts struct {
	calls int
}

func (a *stubArtifacts) Render(ctx context.Context, p *models.Proposal, kind models.ArtifactKind) ([]byte, string, error) {
	return []byte("conteudo"), "proposta_" + p.Protocol + ".doc", nil
}

func (a *stubArtifacts) GenerateAll(ctx context.Context, p *models.Proposal) []models.Attachment {
	a.calls++
	return []models.Attachment{
		{Kind: models.ArtifactWord, Name: "proposta_" + p.Protocol + ".doc", Path: "uploads/proposta_" + p.Protocol + ".doc"},
	}
}

type stubIndexer struct {
	mu      sync.Mutex
	indexed []string
	err     error
}

func (i *stubIndexer) IndexSingleProposal(p models.Proposal) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.indexed = append(i.indexed, p.Protocol)
	return i.err
}

func newTestService(t *testing.T) (*SubmissionService, repositories.ProposalRepository) {
	t.Helper()
	repo, err := repositories.NewFileProposalRepository(t.TempDir())
	require.NoError(t, err)
	return NewSubmissionService(repo, nil, nil, nil), repo
}

func sampleRequest() requests.SubmitProposalRequest {
	return requests.SubmitProposalRequest{
		Process: "LIC-2025-001",
		Company: models.CompanyInfo{
			CompanyName: "Construtora Horizonte Ltda",
			CNPJ:        "12.345.678/0001-90",
			Email:       "contato@horizonte.com.br",
		},
		Commercial: models.CommercialProposal{
			LaborTotal:     "R$ 100.000,00",
			MaterialsTotal: "R$ 60.000,00",
			EquipmentTotal: "R$ 40.000,00",
			ServicesTotal:  "R$ 15.000,00",
			BDIPercent:     "25",
			Validity:       "60 dias",
		},
	}
}

func TestSubmitAcceptsValidProposal(t *testing.T) {
	svc, repo := newTestService(t)

	result, err := svc.Submit(context.Background(), sampleRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, result.Protocol)
	assert.Contains(t, result.Protocol, "PROP-")
	assert.False(t, result.EmailSent)

	stored, err := repo.GetByID(result.ID.String())
	require.NoError(t, err)
	assert.Equal(t, models.StatusReceived, stored.Status)
	assert.Equal(t, "R$ 250.000,00", stored.Totals.GrandTotalFmt)
}

func TestSubmitRejectsMissingRequiredFields(t *testing.T) {
	svc, _ := newTestService(t)

	req := sampleRequest()
	req.Process = ""
	req.Company.CNPJ = ""

	_, err := svc.Submit(context.Background(), req)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "processo")
	assert.Contains(t, verr.Fields, "dados.cnpj")
}

func TestSubmitRejectsDuplicatePair(t *testing.T) {
	svc, _ := newTestService(t)

	first, err := svc.Submit(context.Background(), sampleRequest())
	require.NoError(t, err)

	// Same pair with different CNPJ punctuation must still collide.
	second := sampleRequest()
	second.Company.CNPJ = "12345678000190"
	_, err = svc.Submit(context.Background(), second)

	var conflict *repositories.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, first.Protocol, conflict.Protocol)
	assert.False(t, conflict.SubmittedAt.IsZero())
}

func TestSubmitSameCNPJDifferentProcess(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Submit(context.Background(), sampleRequest())
	require.NoError(t, err)

	other := sampleRequest()
	other.Process = "LIC-2025-002"
	_, err = svc.Submit(context.Background(), other)
	require.NoError(t, err)
}

func TestSubmitConcurrentSamePair(t *testing.T) {
	svc, repo := newTestService(t)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Submit(context.Background(), sampleRequest())
		}(i)
	}
	wg.Wait()

	var conflicts, successes int
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		var conflict *repositories.ConflictError
		if errors.As(err, &conflict) {
			conflicts++
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, conflicts)
	assert.Equal(t, 1, repo.Count())
}

func TestSubmitKeepsExplicitProtocol(t *testing.T) {
	svc, _ := newTestService(t)

	req := sampleRequest()
	req.Protocol = "PROP-CUSTOM-0001"
	result, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "PROP-CUSTOM-0001", result.Protocol)
}

func TestSubmitNotifierAndIndexerBestEffort(t *testing.T) {
	repo, err := repositories.NewFileProposalRepository(t.TempDir())
	require.NoError(t, err)

	notifier := &stubNotifier{result: true}
	indexer := &stubIndexer{err: errors.New("index offline")}
	svc := NewSubmissionService(repo, nil, notifier, indexer)

	result, err := svc.Submit(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.True(t, result.EmailSent)
	assert.Equal(t, 1, notifier.called)
	assert.Len(t, indexer.indexed, 1)
}

func TestSubmitPersistsAttachmentMetadata(t *testing.T) {
	repo, err := repositories.NewFileProposalRepository(t.TempDir())
	require.NoError(t, err)
	artifacts := &stubArtifacts{}
	svc := NewSubmissionService(repo, artifacts, nil, nil)

	result, err := svc.Submit(context.Background(), sampleRequest())
	require.NoError(t, err)
	require.Len(t, result.Attachments, 1)

	stored, err := repo.GetByID(result.ID.String())
	require.NoError(t, err)
	require.Len(t, stored.Attachments, 1)
	assert.Equal(t, models.ArtifactWord, stored.Attachments[0].Kind)
}

func TestSubmitRejectionGeneratesNoArtifacts(t *testing.T) {
	repo, err := repositories.NewFileProposalRepository(t.TempDir())
	require.NoError(t, err)
	artifacts := &stubArtifacts{}
	svc := NewSubmissionService(repo, artifacts, nil, nil)

	_, err = svc.Submit(context.Background(), sampleRequest())
	require.NoError(t, err)
	require.Equal(t, 1, artifacts.calls)

	// Duplicate pair: rejected before any document is rendered
	_, err = svc.Submit(context.Background(), sampleRequest())
	var conflict *repositories.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, 1, artifacts.calls)

	// Taken protocol: same outcome
	taken := sampleRequest()
	taken.Process = "LIC-2025-099"
	taken.Company.CNPJ = "98.765.432/0001-10"
	taken.Protocol = "PROP-CUSTOM-0001"
	_, err = svc.Submit(context.Background(), taken)
	require.NoError(t, err)
	require.Equal(t, 2, artifacts.calls)

	again := taken
	again.Company.CNPJ = "11.222.333/0001-44"
	_, err = svc.Submit(context.Background(), again)
	require.ErrorIs(t, err, repositories.ErrProtocolTaken)
	assert.Equal(t, 2, artifacts.calls)
}

func TestCheckDuplicate(t *testing.T) {
	svc, _ := newTestService(t)

	check := svc.CheckDuplicate("LIC-2025-001", "12.345.678/0001-90")
	assert.False(t, check.Duplicate)

	result, err := svc.Submit(context.Background(), sampleRequest())
	require.NoError(t, err)

	check = svc.CheckDuplicate("LIC-2025-001", "12345678000190")
	assert.True(t, check.Duplicate)
	assert.Equal(t, result.Protocol, check.Protocol)
	assert.Equal(t, "Construtora Horizonte Ltda", check.Company)
}

func TestUpdateStatusAndNotes(t *testing.T) {
	svc, _ := newTestService(t)

	result, err := svc.Submit(context.Background(), sampleRequest())
	require.NoError(t, err)

	status := "aprovada"
	notes := "Documentação conferida"
	updated, err := svc.Update(result.ID.String(), requests.UpdateProposalRequest{
		Status: &status,
		Notes:  &notes,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, updated.Status)
	assert.Equal(t, "Documentação conferida", updated.Notes)
	require.NotNil(t, updated.UpdatedAt)
}

func TestUpdateAcceptsOpenEndedStatus(t *testing.T) {
	svc, _ := newTestService(t)

	result, err := svc.Submit(context.Background(), sampleRequest())
	require.NoError(t, err)

	// Status is an open string, buyer panels define their own stages
	status := "em_analise"
	updated, err := svc.Update(result.ID.String(), requests.UpdateProposalRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatus("em_analise"), updated.Status)
}

func TestUpdateUnknownProposal(t *testing.T) {
	svc, _ := newTestService(t)

	status := "aprovada"
	_, err := svc.Update("00000000-0000-0000-0000-000000000000", requests.UpdateProposalRequest{Status: &status})
	assert.ErrorIs(t, err, repositories.ErrProposalNotFound)
}

func TestRestartRecoveryPreservesTotals(t *testing.T) {
	dir := t.TempDir()
	repo, err := repositories.NewFileProposalRepository(dir)
	require.NoError(t, err)
	svc := NewSubmissionService(repo, nil, nil, nil)

	result, err := svc.Submit(context.Background(), sampleRequest())
	require.NoError(t, err)

	reopened, err := repositories.NewFileProposalRepository(dir)
	require.NoError(t, err)

	recovered, err := reopened.GetByID(result.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "R$ 250.000,00", recovered.Totals.GrandTotalFmt)
	assert.Equal(t, result.Protocol, recovered.Protocol)

	// The pair stays blocked after the restart.
	svc2 := NewSubmissionService(reopened, nil, nil, nil)
	_, err = svc2.Submit(context.Background(), sampleRequest())
	var conflict *repositories.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, result.Protocol, conflict.Protocol)
}
