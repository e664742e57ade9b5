package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/aitutor/internal/dbx"
	"github.com/dmitrijs2005/aitutor/internal/server/repositories/badges"
	"github.com/dmitrijs2005/aitutor/internal/server/repositories/stats"
	"github.com/dmitrijs2005/aitutor/internal/server/repositories/usage"
	"github.com/dmitrijs2005/aitutor/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Stats(db dbx.DBTX) stats.Repository
	Usage(db dbx.DBTX) usage.Repository
	Badges(db dbx.DBTX) badges.Repository
}
