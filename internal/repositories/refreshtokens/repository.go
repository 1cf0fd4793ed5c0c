// Package refreshtokens provides a PostgreSQL-backed repository for managing
// refresh tokens used in the server's authentication flow.
package refreshtokens

import (
	"context"
	"time"

	"github.com/mbelkin/storefront/internal/models"
)

type Repository interface {
	// Create inserts a new refresh token row and fills in ID and CreatedAt.
	Create(ctx context.Context, token *models.RefreshToken) error

	// FindByUserAndToken returns the stored row for the given owner and
	// token value, or common.ErrorNotFound.
	FindByUserAndToken(ctx context.Context, userID, token string) (*models.RefreshToken, error)

	// Revoke marks a not-yet-revoked token as revoked, recording when, from
	// which IP, and (for rotation) which token replaced it. Revoking an
	// already-revoked or unknown token yields common.ErrorNotFound. Rows are
	// never deleted.
	Revoke(ctx context.Context, tokenID string, revokedAt time.Time, revokedByIP, replacedByToken string) error
}
