package invitations

import (
	"context"

	"github.com/waypost/waypost/internal/server/models"
)

// Repository persists invitation records ("allocated users").
//
// Find and Delete key on the full (username, secret) pair: a lookup with the
// wrong secret is indistinguishable from one for an unknown username.
type Repository interface {
	Create(ctx context.Context, inv *models.Invitation) error
	Find(ctx context.Context, username, secret string) (*models.Invitation, error)
	// Delete removes the matching invitation and reports how many rows were
	// affected. Inside a signup transaction a zero count means a concurrent
	// attempt consumed the invitation first.
	Delete(ctx context.Context, username, secret string) (int64, error)
}
