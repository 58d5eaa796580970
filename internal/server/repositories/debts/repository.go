// Package debts declares the debt repository contract and its PostgreSQL
// implementation. Every operation is scoped to the owning user.
package debts

import (
	"context"

	"github.com/dmitrijs2005/debtmanager/internal/server/models"
)

type Repository interface {
	// Create inserts debt, assigning ID, StartDate (when zero) and CreatedAt.
	Create(ctx context.Context, debt *models.Debt) (*models.Debt, error)
	// Get returns common.ErrorNotFound when id does not exist or belongs to another user.
	Get(ctx context.Context, userID, id string) (*models.Debt, error)
	// List returns the user's debts, newest start_date first. A nil debtType lists all.
	List(ctx context.Context, userID string, debtType *models.DebtType) ([]*models.Debt, error)
	// Update overwrites the mutable fields of debt, matched by ID and UserID.
	Update(ctx context.Context, debt *models.Debt) error
	Delete(ctx context.Context, userID, id string) error
}
