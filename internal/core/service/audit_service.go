package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/staffhub/employee-api/internal/core/domain"
	"github.com/staffhub/employee-api/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService that assigns ids and persists entries.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

func (s *auditService) Record(ctx context.Context, entry domain.AuditEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if err := s.repo.Insert(ctx, &entry); err != nil {
		return fmt.Errorf("record audit entry: %w", err)
	}

	s.log.Debug().
		Str("audit_id", entry.ID).
		Str("actor_id", entry.ActorID).
		Str("action", string(entry.Action)).
		Str("resource_id", entry.ResourceID).
		Msg("audit entry recorded")
	return nil
}
