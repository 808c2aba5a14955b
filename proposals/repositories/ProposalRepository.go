package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Cristiano-Arias/Portal-Proposta/config"
	"github.com/Cristiano-Arias/Portal-Proposta/db/models"

	"go.uber.org/zap"
)

var (
	ErrProposalNotFound = errors.New("proposal not found")
	ErrProtocolTaken    = errors.New("protocol already in use")
)

// ConflictError signals that the (processo, CNPJ) pair already has a stored
// proposal. It carries the prior protocol and submission time so the caller
// can show "already submitted" feedback.
type ConflictError struct {
	Protocol    string
	SubmittedAt time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("CNPJ already has a proposal for this process (protocol %s)", e.Protocol)
}

// NormalizeCNPJ strips the usual CNPJ punctuation (dots, dashes, slashes)
// so "12.345.678/0001-99" and "12345678000199" compare equal.
func NormalizeCNPJ(cnpj string) string {
	replacer := strings.NewReplacer(".", "", "-", "", "/", "", " ", "")
	return strings.ToUpper(replacer.Replace(cnpj))
}

type ProposalRepository interface {
	Create(proposal *models.Proposal) error
	Update(proposal *models.Proposal) error
	GetByID(id string) (*models.Proposal, error)
	GetFiltered(limit, offset int, filters map[string]string) ([]models.Proposal, int64, error)
	FindDuplicate(process, cnpj string) (*models.Proposal, bool)
	ListProcesses() []string
	All() []models.Proposal
	Count() int
}

// fileProposalRepository persists one JSON unit per proposal under dir and
// keeps a full in-memory index for queries. Writes are synchronous; the
// write lock makes check-then-insert atomic for the uniqueness invariant.
type fileProposalRepository struct {
	dir  string
	mu   sync.RWMutex
	byID map[string]models.Proposal
}

// NewFileProposalRepository opens dir (creating it if needed) and loads every
// persisted proposal back into memory. A corrupt or unreadable unit is
// skipped and logged, never fatal to startup.
func NewFileProposalRepository(dir string) (ProposalRepository, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create proposals directory: %w", err)
	}

	repo := &fileProposalRepository{
		dir:  dir,
		byID: make(map[string]models.Proposal),
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read proposals directory: %w", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "proposta_") || !strings.HasSuffix(name, ".json") {
			continue
		}

		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			config.Logger.Error("Skipping unreadable proposal file",
				zap.String("file", path),
				zap.Error(err),
			)
			continue
		}

		var proposal models.Proposal
		if err := json.Unmarshal(data, &proposal); err != nil {
			config.Logger.Error("Skipping corrupt proposal file",
				zap.String("file", path),
				zap.Error(err),
			)
			continue
		}

		repo.byID[proposal.ID.String()] = proposal
	}

	config.Logger.Info("Loaded proposals from disk",
		zap.String("dir", dir),
		zap.Int("count", len(repo.byID)),
	)
	return repo, nil
}

func (r *fileProposalRepository) Create(proposal *models.Proposal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check uniqueness under the write lock: two submissions racing for
	// the same (processo, CNPJ) pair must not both succeed.
	if existing, found := r.findDuplicateLocked(proposal.Process, proposal.Company.CNPJ); found {
		return &ConflictError{
			Protocol:    existing.Protocol,
			SubmittedAt: existing.SubmittedAt,
		}
	}

	for _, p := range r.byID {
		if p.Protocol == proposal.Protocol {
			return fmt.Errorf("protocol %s: %w", proposal.Protocol, ErrProtocolTaken)
		}
	}

	if err := r.writeFile(proposal); err != nil {
		return err
	}

	r.byID[proposal.ID.String()] = *proposal
	return nil
}

func (r *fileProposalRepository) Update(proposal *models.Proposal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[proposal.ID.String()]; !ok {
		return ErrProposalNotFound
	}

	if err := r.writeFile(proposal); err != nil {
		return err
	}

	r.byID[proposal.ID.String()] = *proposal
	return nil
}

func (r *fileProposalRepository) GetByID(id string) (*models.Proposal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	proposal, ok := r.byID[id]
	if !ok {
		return nil, ErrProposalNotFound
	}
	return &proposal, nil
}

// FindDuplicate is the pre-flight duplicate check: a linear scan over the
// in-memory index comparing normalized CNPJ within the same process.
func (r *fileProposalRepository) FindDuplicate(process, cnpj string) (*models.Proposal, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	existing, found := r.findDuplicateLocked(process, cnpj)
	if !found {
		return nil, false
	}
	return existing, true
}

func (r *fileProposalRepository) findDuplicateLocked(process, cnpj string) (*models.Proposal, bool) {
	normalized := NormalizeCNPJ(cnpj)
	if normalized == "" || process == "" {
		return nil, false
	}

	for id, p := range r.byID {
		if p.Process == process && NormalizeCNPJ(p.Company.CNPJ) == normalized {
			match := r.byID[id]
			return &match, true
		}
	}
	return nil, false
}

func (r *fileProposalRepository) GetFiltered(limit, offset int, filters map[string]string) ([]models.Proposal, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]models.Proposal, 0, len(r.byID))
	for _, p := range r.byID {
		if matchesFilters(p, filters) {
			matched = append(matched, p)
		}
	}

	// Default sort: submission time descending
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].SubmittedAt.After(matched[j].SubmittedAt)
	})

	total := int64(len(matched))
	if offset >= len(matched) {
		return []models.Proposal{}, total, nil
	}

	end := offset + limit
	if limit <= 0 || end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func matchesFilters(p models.Proposal, filters map[string]string) bool {
	if process := filters["processo"]; process != "" {
		if !strings.Contains(strings.ToLower(p.Process), strings.ToLower(process)) {
			return false
		}
	}
	if cnpj := filters["cnpj"]; cnpj != "" {
		if NormalizeCNPJ(p.Company.CNPJ) != NormalizeCNPJ(cnpj) {
			return false
		}
	}
	if status := filters["status"]; status != "" {
		if string(p.Status) != status {
			return false
		}
	}
	return true
}

// ListProcesses returns the distinct tender processes, sorted.
func (r *fileProposalRepository) ListProcesses() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	for _, p := range r.byID {
		if p.Process != "" {
			seen[p.Process] = true
		}
	}

	processes := make([]string, 0, len(seen))
	for process := range seen {
		processes = append(processes, process)
	}
	sort.Strings(processes)
	return processes
}

func (r *fileProposalRepository) All() []models.Proposal {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]models.Proposal, 0, len(r.byID))
	for _, p := range r.byID {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].SubmittedAt.After(all[j].SubmittedAt)
	})
	return all
}

func (r *fileProposalRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// writeFile persists one proposal unit via temp file + rename so a crashed
// write never leaves a truncated unit behind.
func (r *fileProposalRepository) writeFile(proposal *models.Proposal) error {
	data, err := json.MarshalIndent(proposal, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode proposal %s: %w", proposal.ID, err)
	}

	path := filepath.Join(r.dir, fmt.Sprintf("proposta_%s.json", proposal.ID))
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write proposal %s: %w", proposal.ID, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to persist proposal %s: %w", proposal.ID, err)
	}
	return nil
}
