package authentications

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/waypost/waypost/internal/common"
	"github.com/waypost/waypost/internal/dbx"
	"github.com/waypost/waypost/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, auth *models.Authentication) error {

	query :=
		`INSERT INTO authentications (user_id, pass_hash, salt, stale, updated)
		 VALUES ($1, $2, $3, $4, $5)
		 `

	_, err := r.db.ExecContext(ctx, query,
		auth.UserID, auth.PassHash, auth.Salt, auth.Stale, auth.Updated)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetByUserID(ctx context.Context, userID string) (*models.Authentication, error) {
	query :=
		`SELECT user_id, pass_hash, salt, stale, updated FROM authentications
		 WHERE user_id = $1
		 `

	auth := &models.Authentication{}
	err := r.db.QueryRowContext(ctx, query, userID).
		Scan(&auth.UserID, &auth.PassHash, &auth.Salt, &auth.Stale, &auth.Updated)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return auth, nil
}
