package users

import (
	"context"

	"github.com/dmitrijs2005/teamboard/internal/server/models"
)

type Repository interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context, statusName string) ([]*models.User, error)
	UpdateStatus(ctx context.Context, userID, statusID int64) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
}
