package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/debtmanager/internal/common"
	"github.com/dmitrijs2005/debtmanager/internal/server/auth"
	"github.com/dmitrijs2005/debtmanager/internal/server/models"
	"github.com/dmitrijs2005/debtmanager/internal/server/repositories/repomanager"
)

// Guard resolves the bearer token of a protected request to its user.
type Guard struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      *auth.TokenService
	now         func() time.Time
}

func NewGuard(db *sql.DB, m repomanager.RepositoryManager, tokens *auth.TokenService) *Guard {
	return &Guard{db: db, repomanager: m, tokens: tokens, now: time.Now}
}

// AuthenticateRequest verifies an access token and loads its subject.
// Every failure wraps common.ErrorUnauthorized; an expired token also wraps
// common.ErrTokenExpired. Lookup failures other than not-found are internal.
func (g *Guard) AuthenticateRequest(ctx context.Context, bearerToken string) (*models.User, error) {
	if bearerToken == "" {
		return nil, fmt.Errorf("%w: missing bearer token", common.ErrorUnauthorized)
	}

	claims, err := g.tokens.Verify(bearerToken, auth.TokenTypeAccess, g.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorUnauthorized, err)
	}

	user, err := g.repomanager.Users(g.db).GetUserByLogin(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: %w", common.ErrorUnauthorized, common.ErrUserNotFound)
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return user, nil
}
