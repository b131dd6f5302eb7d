package statuses

import (
	"context"

	"github.com/dmitrijs2005/teamboard/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]*models.Status, error)
	GetByID(ctx context.Context, id int64) (*models.Status, error)
}
