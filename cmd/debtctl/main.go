// Command debtctl is the operator tool of the debt manager.
//
//	debtctl hash                          print the bcrypt hash of a password
//	debtctl register -u NAME [-e EMAIL]   create a user in the database
//
// register reads DATABASE_DSN (or -d) after loading .env.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/debtmanager/internal/debtctl"
	"github.com/dmitrijs2005/debtmanager/internal/server/auth"
	"github.com/dmitrijs2005/debtmanager/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/debtmanager/internal/server/services"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const usage = "usage: debtctl hash [-cost N] | debtctl register -u NAME [-e EMAIL] [-d DSN]"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New(usage)
	}

	// a missing .env is fine
	_ = godotenv.Load()

	switch args[0] {
	case "hash":
		fs := flag.NewFlagSet("hash", flag.ContinueOnError)
		cost := fs.Int("cost", bcrypt.DefaultCost, "bcrypt cost")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		return debtctl.Hash(os.Stdout, auth.NewBcryptHasher(*cost))

	case "register":
		fs := flag.NewFlagSet("register", flag.ContinueOnError)
		userName := fs.String("u", "", "user name")
		email := fs.String("e", "", "email (optional)")
		dsn := fs.String("d", os.Getenv("DATABASE_DSN"), "database DSN")
		cost := fs.Int("cost", bcrypt.DefaultCost, "bcrypt cost")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *dsn == "" {
			return errors.New("DATABASE_DSN or -d is required")
		}
		return register(ctx, *dsn, *userName, *email, *cost)

	default:
		return errors.New(usage)
	}
}

func register(ctx context.Context, dsn, userName, email string, cost int) error {
	db, err := repomanager.Open(ctx, dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("migrations error: %w", err)
	}

	// registration never issues tokens
	as, err := services.NewAuthService(db, rm, auth.NewBcryptHasher(cost), nil)
	if err != nil {
		return err
	}

	var emailPtr *string
	if email != "" {
		emailPtr = &email
	}

	_, err = debtctl.Register(ctx, os.Stdout, as, userName, emailPtr)
	return err
}
