package invitations

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

func (r *PostgresRepository) Create(ctx context.Context, inv *models.Invitation) error {

	query :=
		`INSERT INTO allocated_users (username, secret)
		 VALUES ($1, $2)
		 `

	_, err := r.db.ExecContext(ctx, query, inv.Username, inv.Secret)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Find(ctx context.Context, username, secret string) (*models.Invitation, error) {
	query :=
		`SELECT username, secret FROM allocated_users
		 WHERE username = $1 AND secret = $2
		 `

	inv := &models.Invitation{}
	err := r.db.QueryRowContext(ctx, query, username, secret).Scan(&inv.Username, &inv.Secret)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return inv, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, username, secret string) (int64, error) {
	query :=
		`DELETE FROM allocated_users
		 WHERE username = $1 AND secret = $2
		 `

	res, err := r.db.ExecContext(ctx, query, username, secret)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return affected, nil
}
