package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/debtmanager/internal/dbx"
	"github.com/dmitrijs2005/debtmanager/internal/server/repositories/debts"
	"github.com/dmitrijs2005/debtmanager/internal/server/repositories/settings"
	"github.com/dmitrijs2005/debtmanager/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX so that services can
// run several of them inside one dbx.WithTx transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	// RunInTx executes fn in one unit of work; repositories built from the
	// DBTX handed to fn take part in it.
	RunInTx(ctx context.Context, db *sql.DB, fn dbx.TxFunc) error
	Users(db dbx.DBTX) users.Repository
	Debts(db dbx.DBTX) debts.Repository
	Settings(db dbx.DBTX) settings.Repository
}
