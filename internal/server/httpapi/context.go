package httpapi

import (
	"context"

	"github.com/dmitrijs2005/debtmanager/internal/server/models"
)

type contextKey string

const userContextKey contextKey = "user"

func withUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, u)
}

// UserFromContext returns the authenticated user, or nil outside protected routes.
func UserFromContext(ctx context.Context) *models.User {
	u, _ := ctx.Value(userContextKey).(*models.User)
	return u
}
