// Package services contains server-side business logic. This file implements
// SignupService, which turns a validated signup submission into a committed
// account: consume the invitation, create the user, create its
// authentication record — all inside one transaction.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/waypost/waypost/internal/common"
	"github.com/waypost/waypost/internal/dbx"
	"github.com/waypost/waypost/internal/passhash"
	"github.com/waypost/waypost/internal/server/models"
	"github.com/waypost/waypost/internal/server/repositories/repomanager"
)

// SignupForm is the deserialized signup submission. All fields are
// untrusted, caller-supplied strings.
type SignupForm struct {
	Username string
	Password string
	Email    string
	Secret   string
}

// PasswordHasher is what SignupService needs from the hashing layer.
// *passhash.Hasher satisfies it.
type PasswordHasher interface {
	Hash(ctx context.Context, password string) (*passhash.Record, error)
}

// SignupService drives the signup provisioning flow.
//
// Known gaps, kept deliberately: the email address is stored as submitted
// without format validation, and username uniqueness against existing users
// is not pre-checked — a duplicate insert is rejected only by the UNIQUE
// constraint on users.username, which aborts the whole transaction.
type SignupService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      PasswordHasher
}

// NewSignupService constructs a SignupService on top of the given pool,
// repositories and hasher.
func NewSignupService(db *sql.DB, m repomanager.RepositoryManager, hasher PasswordHasher) *SignupService {
	return &SignupService{db: db, repomanager: m, hasher: hasher}
}

// SignUp validates the invitation, hashes the password, and commits the
// account. The validation, id/timestamp generation and hashing all happen
// before any write, so a failure there leaves no side effects at all.
//
// Whether the username is unknown or the secret is wrong, the result is the
// same common.ErrUserNotAllocated — the caller must not be able to tell the
// two apart.
func (s *SignupService) SignUp(ctx context.Context, form SignupForm) (*models.User, error) {

	invRepo := s.repomanager.Invitations(s.db)

	if _, err := invRepo.Find(ctx, form.Username, form.Secret); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotAllocated
		}
		return nil, fmt.Errorf("error validating invitation: %w", err)
	}

	user := &models.User{
		ID:          uuid.NewString(),
		Username:    form.Username,
		Email:       form.Email,
		Description: "",
		Created:     time.Now().UTC(),
	}

	record, err := s.hasher.Hash(ctx, form.Password)
	if err != nil {
		return nil, err
	}

	auth := &models.Authentication{
		UserID:   user.ID,
		PassHash: record.Hash,
		Salt:     record.Salt,
		Stale:    false,
		Updated:  time.Now().UTC(),
	}

	// The three mutations stand or fall together: an invitation consumed
	// without an account, or an account without credentials, must never be
	// observable.
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		affected, err := s.repomanager.Invitations(tx).Delete(ctx, form.Username, form.Secret)
		if err != nil {
			return fmt.Errorf("error consuming invitation: %w", err)
		}
		if affected == 0 {
			// A concurrent attempt consumed the invitation between our
			// read and this delete; this attempt loses.
			return common.ErrUserNotAllocated
		}

		if err := s.repomanager.Users(tx).Create(ctx, user); err != nil {
			return fmt.Errorf("error creating user: %w", err)
		}

		if err := s.repomanager.Authentications(tx).Create(ctx, auth); err != nil {
			return fmt.Errorf("error creating authentication record: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return user, nil
}
