package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Cristiano-Arias/Portal-Proposta/config"
	"github.com/Cristiano-Arias/Portal-Proposta/db/models"

	"go.uber.org/zap"
)

var (
	// ErrRenderUnavailable marks a renderer that cannot produce output
	// (broken section, missing headless Chrome). Callers treat it as
	// "artifact not available", never as a submission failure.
	ErrRenderUnavailable = errors.New("renderer unavailable")

	ErrUnknownArtifactKind = errors.New("unknown artifact kind")
)

// ArtifactService synthesizes the three artifact formats from one proposal
// record and persists them under the uploads directory.
type ArtifactService struct {
	uploadsDir string
}

func NewArtifactService(uploadsDir string) *ArtifactService {
	return &ArtifactService{uploadsDir: uploadsDir}
}

// Render produces the artifact bytes and canonical filename for one kind.
func (s *ArtifactService) Render(ctx context.Context, p *models.Proposal, kind models.ArtifactKind) ([]byte, string, error) {
	protocol := sanitizeFilename(p.Protocol)

	switch kind {
	case models.ArtifactWord:
		data, err := RenderWordDocument(p)
		return data, fmt.Sprintf("proposta_%s.doc", protocol), err
	case models.ArtifactExcel:
		data, err := RenderExcelWorkbook(p)
		return data, fmt.Sprintf("proposta_%s.xlsx", protocol), err
	case models.ArtifactReport:
		data, err := RenderCommercialReport(ctx, p)
		return data, fmt.Sprintf("relatorio_comercial_%s.pdf", protocol), err
	case models.ArtifactTechnicalReport:
		data, err := RenderTechnicalReport(ctx, p)
		return data, fmt.Sprintf("relatorio_tecnico_%s.pdf", protocol), err
	default:
		return nil, "", fmt.Errorf("%w: %s", ErrUnknownArtifactKind, kind)
	}
}

// GenerateAll renders every artifact kind and writes the results to disk,
// returning descriptors for the ones that succeeded. A failed renderer is
// logged and skipped; submission proceeds without that artifact.
func (s *ArtifactService) GenerateAll(ctx context.Context, p *models.Proposal) []models.Attachment {
	kinds := []models.ArtifactKind{
		models.ArtifactWord,
		models.ArtifactExcel,
		models.ArtifactReport,
		models.ArtifactTechnicalReport,
	}

	if err := os.MkdirAll(s.uploadsDir, 0755); err != nil {
		config.Logger.Error("Failed to create uploads directory",
			zap.String("dir", s.uploadsDir),
			zap.Error(err),
		)
		return nil
	}

	var attachments []models.Attachment
	for _, kind := range kinds {
		data, name, err := s.Render(ctx, p, kind)
		if err != nil {
			config.Logger.Warn("Artifact renderer unavailable, skipping",
				zap.String("kind", string(kind)),
				zap.String("protocolo", p.Protocol),
				zap.Error(err),
			)
			continue
		}

		path := filepath.Join(s.uploadsDir, name)
		if err := os.WriteFile(path, data, 0644); err != nil {
			config.Logger.Error("Failed to persist artifact",
				zap.String("kind", string(kind)),
				zap.String("path", path),
				zap.Error(err),
			)
			continue
		}

		attachments = append(attachments, models.Attachment{
			Kind: kind,
			Name: name,
			Path: path,
		})
	}
	return attachments
}

func sanitizeFilename(s string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", ":", "_", " ", "_")
	return replacer.Replace(s)
}
