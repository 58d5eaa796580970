// Package settings stores the one-per-user preference row.
package settings

import (
	"context"

	"github.com/dmitrijs2005/debtmanager/internal/server/models"
)

type Repository interface {
	// Get returns common.ErrorNotFound when the user has no settings yet.
	Get(ctx context.Context, userID string) (*models.Setting, error)
	// Upsert inserts or overwrites the settings row of s.UserID and returns
	// the stored row.
	Upsert(ctx context.Context, s *models.Setting) (*models.Setting, error)
}
