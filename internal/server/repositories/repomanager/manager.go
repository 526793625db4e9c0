package repomanager

import (
	"context"
	"database/sql"

	"github.com/waypost/waypost/internal/dbx"
	"github.com/waypost/waypost/internal/server/repositories/authentications"
	"github.com/waypost/waypost/internal/server/repositories/invitations"
	"github.com/waypost/waypost/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so services can use
// the same repository code against the pool or inside a transaction.
type RepositoryManager interface {
	Invitations(db dbx.DBTX) invitations.Repository
	Users(db dbx.DBTX) users.Repository
	Authentications(db dbx.DBTX) authentications.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
