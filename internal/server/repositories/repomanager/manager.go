package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/teamboard/internal/dbx"
	"github.com/dmitrijs2005/teamboard/internal/server/repositories/statuses"
	"github.com/dmitrijs2005/teamboard/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Statuses(db dbx.DBTX) statuses.Repository
}
