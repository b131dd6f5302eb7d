package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/teamboard/internal/server/models"
	"github.com/dmitrijs2005/teamboard/internal/server/repositories/repomanager"
)

// StatusService exposes the status directory: the finite, seeded set of
// valid availability labels.
type StatusService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewStatusService constructs a StatusService.
func NewStatusService(db *sql.DB, m repomanager.RepositoryManager) *StatusService {
	return &StatusService{db: db, repomanager: m}
}

// List returns all statuses ordered by id ascending.
func (s *StatusService) List(ctx context.Context) ([]*models.Status, error) {
	repo := s.repomanager.Statuses(s.db)
	return repo.List(ctx)
}
