package refreshtokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mbelkin/storefront/internal/common"
	"github.com/mbelkin/storefront/internal/dbx"
	"github.com/mbelkin/storefront/internal/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, token *models.RefreshToken) error {
	query := `
		INSERT INTO refresh_tokens (user_id, token, expires_at, created_by_ip)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		token.UserID, token.Token, token.ExpiresAt, token.CreatedByIP).
		Scan(&token.ID, &token.CreatedAt)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}

func (r *PostgresRepository) FindByUserAndToken(ctx context.Context, userID, token string) (*models.RefreshToken, error) {
	query := `
		SELECT id, user_id, token, expires_at, created_at, created_by_ip,
		       revoked_at, revoked_by_ip, replaced_by_token
		FROM refresh_tokens
		WHERE user_id = $1 AND token = $2
	`
	rt := &models.RefreshToken{}
	var revokedAt sql.NullTime
	var revokedByIP, replacedByToken sql.NullString

	err := r.db.QueryRowContext(ctx, query, userID, token).Scan(
		&rt.ID, &rt.UserID, &rt.Token, &rt.ExpiresAt, &rt.CreatedAt, &rt.CreatedByIP,
		&revokedAt, &revokedByIP, &replacedByToken,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if revokedAt.Valid {
		rt.RevokedAt = &revokedAt.Time
	}
	rt.RevokedByIP = revokedByIP.String
	rt.ReplacedByToken = replacedByToken.String
	return rt, nil
}

func (r *PostgresRepository) Revoke(ctx context.Context, tokenID string, revokedAt time.Time, revokedByIP, replacedByToken string) error {
	query := `
		UPDATE refresh_tokens
		SET revoked_at = $2, revoked_by_ip = $3, replaced_by_token = NULLIF($4, '')
		WHERE id = $1 AND revoked_at IS NULL
	`
	res, err := r.db.ExecContext(ctx, query, tokenID, revokedAt, revokedByIP, replacedByToken)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		// already revoked or never existed
		return common.ErrorNotFound
	}
	return nil
}
