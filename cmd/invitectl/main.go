// Command invitectl allocates and revokes signup invitations.
//
// An invitation is a username paired with a shared secret; only holders of
// such a pair can complete signup. The secret is either generated or read
// from the terminal without echo.
//
// Usage:
//
//	invitectl -d <dsn> -u alice -g          allocate with a generated secret
//	invitectl -d <dsn> -u alice             allocate, prompting for the secret
//	invitectl -d <dsn> -u alice -revoke     revoke, prompting for the secret
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/term"

	"github.com/waypost/waypost/internal/common"
	"github.com/waypost/waypost/internal/server/models"
	"github.com/waypost/waypost/internal/server/repositories/repomanager"

	"database/sql"
)

const generatedSecretBytes = 16

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

func promptSecret() (string, error) {
	fmt.Fprint(os.Stderr, "Enter secret: ")
	b, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(b)
	if len(b) == 0 {
		return "", errors.New("secret must not be empty")
	}
	return string(b), nil
}

func run(ctx context.Context, dsn, username string, generate, revoke bool) error {
	if username == "" {
		return errors.New("username is required")
	}
	if dsn == "" {
		return errors.New("database DSN is required")
	}
	if generate && revoke {
		return errors.New("-g makes no sense with -revoke")
	}

	var secret string
	var err error
	if generate {
		secret, err = common.MakeRandHexString(generatedSecretBytes)
	} else {
		secret, err = promptSecret()
	}
	if err != nil {
		return err
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	defer db.Close()

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}
	repo := rm.Invitations(db)

	if revoke {
		affected, err := repo.Delete(ctx, username, secret)
		if err != nil {
			return err
		}
		if affected == 0 {
			return errors.New("no matching invitation")
		}
		fmt.Printf("revoked invitation for %q\n", username)
		return nil
	}

	if err := repo.Create(ctx, &models.Invitation{Username: username, Secret: secret}); err != nil {
		return err
	}
	if generate {
		fmt.Printf("allocated invitation for %q with secret %s\n", username, secret)
	} else {
		fmt.Printf("allocated invitation for %q\n", username)
	}
	return nil
}

func main() {
	dsn := flag.String("d", os.Getenv("DATABASE_DSN"), "PostgreSQL DSN")
	username := flag.String("u", "", "username to allocate or revoke")
	generate := flag.Bool("g", false, "generate a random secret instead of prompting")
	revoke := flag.Bool("revoke", false, "revoke the invitation instead of allocating it")
	flag.Parse()

	if err := run(context.Background(), *dsn, *username, *generate, *revoke); err != nil {
		fmt.Fprintf(os.Stderr, "invitectl: %v\n", err)
		os.Exit(1)
	}
}
