package authentications

import (
	"context"

	"github.com/waypost/waypost/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, auth *models.Authentication) error
	GetByUserID(ctx context.Context, userID string) (*models.Authentication, error)
}
