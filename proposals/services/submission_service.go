package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Cristiano-Arias/Portal-Proposta/config"
	"github.com/Cristiano-Arias/Portal-Proposta/db/models"
	"github.com/Cristiano-Arias/Portal-Proposta/proposals/repositories"
	"github.com/Cristiano-Arias/Portal-Proposta/proposals/requests"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ArtifactGenerator renders and persists the document artifacts.
type ArtifactGenerator interface {
	Render(ctx context.Context, p *models.Proposal, kind models.ArtifactKind) ([]byte, string, error)
	GenerateAll(ctx context.Context, p *models.Proposal) []models.Attachment
}

// Notifier dispatches the best-effort proposal email.
type Notifier interface {
	NotifyProposalReceived(p *models.Proposal) bool
}

// ProposalIndexer feeds the full-text search index.
type ProposalIndexer interface {
	IndexSingleProposal(p models.Proposal) error
}

// SubmissionService is the intake pipeline: dedup gate, totals computation,
// durable write, artifact synthesis, best-effort indexing and notification.
// The notifier and indexer are optional collaborators.
type SubmissionService struct {
	repo      repositories.ProposalRepository
	artifacts ArtifactGenerator
	notifier  Notifier
	indexer   ProposalIndexer

	// Serializes submissions so check-then-write is one atomic unit even
	// beyond the repository's own lock (artifact generation included).
	mu sync.Mutex
}

func NewSubmissionService(
	repo repositories.ProposalRepository,
	artifacts ArtifactGenerator,
	notifier Notifier,
	indexer ProposalIndexer,
) *SubmissionService {
	return &SubmissionService{
		repo:      repo,
		artifacts: artifacts,
		notifier:  notifier,
		indexer:   indexer,
	}
}

// SubmitResult is returned to the caller on a successful intake.
type SubmitResult struct {
	ID          uuid.UUID `json:"proposta_id"`
	Protocol    string    `json:"protocolo"`
	Attachments []string  `json:"anexos"`
	EmailSent   bool      `json:"email_enviado"`
}

// DuplicateCheck is the pre-flight duplicate answer.
type DuplicateCheck struct {
	Duplicate   bool      `json:"duplicado"`
	Protocol    string    `json:"protocolo,omitempty"`
	SubmittedAt time.Time `json:"data,omitempty"`
	Company     string    `json:"empresa,omitempty"`
}

// Submit processes one proposal end to end. On a duplicate (processo, CNPJ)
// pair it returns *repositories.ConflictError carrying the prior protocol;
// on a persistence failure the submission fails; a notification failure only
// clears the EmailSent flag.
func (s *SubmissionService) Submit(ctx context.Context, req requests.SubmitProposalRequest) (*SubmitResult, error) {
	if err := validateSubmission(req); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, found := s.repo.FindDuplicate(req.Process, req.Company.CNPJ); found {
		config.Logger.Warn("Duplicate proposal rejected",
			zap.String("processo", req.Process),
			zap.String("cnpj", repositories.NormalizeCNPJ(req.Company.CNPJ)),
			zap.String("protocolo_anterior", existing.Protocol),
		)
		return nil, &repositories.ConflictError{
			Protocol:    existing.Protocol,
			SubmittedAt: existing.SubmittedAt,
		}
	}

	now := time.Now()
	proposal := &models.Proposal{
		ID:          uuid.New(),
		Protocol:    req.Protocol,
		Process:     req.Process,
		Status:      models.StatusReceived,
		Company:     req.Company,
		Technical:   req.Technical,
		Commercial:  req.Commercial,
		Summary:     req.Summary,
		Totals:      ComputeCommercialTotals(req.Commercial),
		SubmittedAt: now,
	}
	if proposal.Protocol == "" {
		proposal.Protocol = fmt.Sprintf("PROP-%s", now.Format("20060102150405"))
	}

	if err := s.repo.Create(proposal); err != nil {
		var conflict *repositories.ConflictError
		if errors.As(err, &conflict) {
			return nil, err
		}
		if errors.Is(err, repositories.ErrProtocolTaken) {
			return nil, err
		}
		// The record was not durably saved; the submission must not be
		// reported as accepted.
		return nil, fmt.Errorf("failed to persist proposal: %w", err)
	}

	// Artifacts are generated only for durably accepted proposals; a
	// rejected submission must leave nothing behind in the uploads dir.
	if s.artifacts != nil {
		proposal.Attachments = s.artifacts.GenerateAll(ctx, proposal)
		if len(proposal.Attachments) > 0 {
			if err := s.repo.Update(proposal); err != nil {
				config.Logger.Error("Failed to persist attachment metadata",
					zap.String("protocolo", proposal.Protocol),
					zap.Error(err),
				)
			}
		}
	}

	if s.indexer != nil {
		if err := s.indexer.IndexSingleProposal(*proposal); err != nil {
			config.Logger.Error("Failed to index proposal for search",
				zap.String("protocolo", proposal.Protocol),
				zap.Error(err),
			)
		}
	}

	emailSent := false
	if s.notifier != nil {
		emailSent = s.notifier.NotifyProposalReceived(proposal)
	}

	result := &SubmitResult{
		ID:        proposal.ID,
		Protocol:  proposal.Protocol,
		EmailSent: emailSent,
	}
	for _, att := range proposal.Attachments {
		result.Attachments = append(result.Attachments, att.Name)
	}

	config.Logger.Info("Proposal accepted",
		zap.String("protocolo", proposal.Protocol),
		zap.String("processo", proposal.Process),
		zap.String("valor_total", proposal.Totals.GrandTotalFmt),
		zap.Int("anexos", len(result.Attachments)),
		zap.Bool("email_enviado", emailSent),
	)
	return result, nil
}

func validateSubmission(req requests.SubmitProposalRequest) error {
	var missing []string
	if strings.TrimSpace(req.Process) == "" {
		missing = append(missing, "processo")
	}
	if strings.TrimSpace(req.Company.CNPJ) == "" {
		missing = append(missing, "dados.cnpj")
	}
	if strings.TrimSpace(req.Company.CompanyName) == "" {
		missing = append(missing, "dados.razaoSocial")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// CheckDuplicate answers the pre-flight duplicate query.
func (s *SubmissionService) CheckDuplicate(process, cnpj string) DuplicateCheck {
	existing, found := s.repo.FindDuplicate(process, cnpj)
	if !found {
		return DuplicateCheck{Duplicate: false}
	}
	return DuplicateCheck{
		Duplicate:   true,
		Protocol:    existing.Protocol,
		SubmittedAt: existing.SubmittedAt,
		Company:     existing.Company.CompanyName,
	}
}

// Get returns one proposal or repositories.ErrProposalNotFound.
func (s *SubmissionService) Get(id string) (*models.Proposal, error) {
	return s.repo.GetByID(id)
}

// Update applies the allowed post-intake mutations (status, notes), stamps
// data_atualizacao and persists synchronously.
func (s *SubmissionService) Update(id string, req requests.UpdateProposalRequest) (*models.Proposal, error) {
	proposal, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil && strings.TrimSpace(*req.Status) != "" {
		proposal.Status = models.ProposalStatus(*req.Status)
	}
	if req.Notes != nil {
		proposal.Notes = *req.Notes
	}

	now := time.Now()
	proposal.UpdatedAt = &now

	if err := s.repo.Update(proposal); err != nil {
		return nil, err
	}

	if s.indexer != nil {
		if err := s.indexer.IndexSingleProposal(*proposal); err != nil {
			config.Logger.Error("Failed to reindex proposal",
				zap.String("protocolo", proposal.Protocol),
				zap.Error(err),
			)
		}
	}
	return proposal, nil
}

// RenderArtifact re-renders the requested artifact kind for a download.
func (s *SubmissionService) RenderArtifact(ctx context.Context, id string, kind models.ArtifactKind) ([]byte, string, error) {
	proposal, err := s.repo.GetByID(id)
	if err != nil {
		return nil, "", err
	}
	if s.artifacts == nil {
		return nil, "", fmt.Errorf("artifact generation disabled")
	}
	return s.artifacts.Render(ctx, proposal, kind)
}
