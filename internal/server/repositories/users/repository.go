// Package users declares the user repository contract and its PostgreSQL
// implementation.
package users

import (
	"context"

	"github.com/dmitrijs2005/debtmanager/internal/server/models"
)

type Repository interface {
	// Create inserts user, assigning its ID and CreatedAt. A username or email
	// collision returns common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// GetUserByLogin looks up a user by exact (case-sensitive) username.
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}
