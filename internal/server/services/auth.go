// Package services contains server-side business logic. This file implements
// AuthService: credential checks, registration and the token pair lifecycle.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/debtmanager/internal/common"
	"github.com/dmitrijs2005/debtmanager/internal/dbx"
	"github.com/dmitrijs2005/debtmanager/internal/server/auth"
	"github.com/dmitrijs2005/debtmanager/internal/server/models"
	"github.com/dmitrijs2005/debtmanager/internal/server/repositories/repomanager"
)

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	UserName  string
	Password  string
	FirstName *string
	LastName  *string
	Email     *string
}

// AuthService verifies credentials and issues or rotates token pairs.
// Tokens are not persisted; a refresh is valid until it expires.
type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      auth.PasswordHasher
	tokens      *auth.TokenService
	now         func() time.Time

	// dummyHash is compared against when the username is unknown so both
	// failure paths cost one bcrypt verification.
	dummyHash string
}

// NewAuthService wires the service. It fails only if the hasher cannot
// produce the dummy hash.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, hasher auth.PasswordHasher, tokens *auth.TokenService) (*AuthService, error) {
	seed, err := common.MakeRandHexString(16)
	if err != nil {
		return nil, err
	}
	dummy, err := hasher.Hash(seed)
	if err != nil {
		return nil, fmt.Errorf("computing dummy hash: %w", err)
	}
	return &AuthService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
		now:         time.Now,
		dummyHash:   dummy,
	}, nil
}

// Authenticate returns the user whose password matches. Unknown usernames
// and wrong passwords both yield common.ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, userName, password string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByLogin(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Verify(password, s.dummyHash)
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}
	return user, nil
}

// Login authenticates and issues a fresh token pair for the user.
func (s *AuthService) Login(ctx context.Context, userName, password string) (*auth.TokenPair, error) {
	user, err := s.Authenticate(ctx, userName, password)
	if err != nil {
		return nil, err
	}
	return s.issuePair(user.UserName)
}

// Refresh verifies a refresh token, re-resolves its subject and issues a
// brand-new pair. The presented token stays valid until its own expiry.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	claims, err := s.tokens.Verify(refreshToken, auth.TokenTypeRefresh, s.now())
	if err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByLogin(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return s.issuePair(user.UserName)
}

// Register creates the user and its default settings in one transaction.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if in.UserName == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", common.ErrorValidation)
	}

	users := s.repomanager.Users(s.db)
	if _, err := users.GetUserByLogin(ctx, in.UserName); err == nil {
		return nil, common.ErrUsernameTaken
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	if in.Email != nil {
		if _, err := users.GetUserByEmail(ctx, *in.Email); err == nil {
			return nil, common.ErrEmailTaken
		} else if !errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
		}
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: %v", common.ErrorValidation, err)
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	user := &models.User{
		UserName:     in.UserName,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: hash,
	}
	err = s.repomanager.RunInTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		created, err := s.repomanager.Users(tx).Create(ctx, user)
		if err != nil {
			return err
		}
		if _, err := s.repomanager.Settings(tx).Upsert(ctx, models.DefaultSetting(created.ID)); err != nil {
			return fmt.Errorf("error creating settings: %w", err)
		}
		user = created
		return nil
	})
	if err != nil {
		// A concurrent registration can still win the unique index.
		if errors.Is(err, common.ErrorAlreadyExists) {
			if strings.Contains(err.Error(), "email") {
				return nil, common.ErrEmailTaken
			}
			return nil, common.ErrUsernameTaken
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return user, nil
}

func (s *AuthService) issuePair(subject string) (*auth.TokenPair, error) {
	pair, err := s.tokens.IssueTokenPair(auth.Principal{Subject: subject}, s.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return pair, nil
}
