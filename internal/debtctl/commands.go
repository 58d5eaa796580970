package debtctl

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/debtmanager/internal/server/auth"
	"github.com/dmitrijs2005/debtmanager/internal/server/models"
	"github.com/dmitrijs2005/debtmanager/internal/server/services"
)

// Registrar creates users. *services.AuthService satisfies it.
type Registrar interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.User, error)
}

// Hash prompts for a password and writes its hash to w.
func Hash(w io.Writer, hasher auth.PasswordHasher) error {
	pw, err := GetPassword(w, "Enter password: ")
	if err != nil {
		return err
	}
	defer wipe(pw)

	if len(pw) == 0 {
		return ErrEmptyPassword
	}

	hashed, err := hasher.Hash(string(pw))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, hashed)
	return err
}

// Register prompts for a confirmed password and creates userName.
func Register(ctx context.Context, w io.Writer, r Registrar, userName string, email *string) (*models.User, error) {
	if userName == "" {
		return nil, errors.New("user name is required")
	}

	pw, err := GetConfirmedPassword(w)
	if err != nil {
		return nil, err
	}

	user, err := r.Register(ctx, services.RegisterInput{UserName: userName, Password: pw, Email: email})
	if err != nil {
		return nil, fmt.Errorf("registering %s: %w", userName, err)
	}

	fmt.Fprintf(w, "User %s created (id %s)\n", user.UserName, user.ID)
	return user, nil
}
