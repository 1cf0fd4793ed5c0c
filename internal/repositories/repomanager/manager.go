// Package repomanager wires repositories to database handles. Services ask
// the manager for a repository bound to either the shared *sql.DB or a
// transaction, which keeps multi-step operations inside one dbx.WithTx call.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/mbelkin/storefront/internal/dbx"
	"github.com/mbelkin/storefront/internal/repositories/refreshtokens"
	"github.com/mbelkin/storefront/internal/repositories/users"
)

type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
