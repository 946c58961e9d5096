package ports

import (
	"context"

	"github.com/warungkita/storefront-api/internal/core/domain"
)

// AdminRepository defines persistence operations for the admin registry.
type AdminRepository interface {
	// FindGrant returns the user's grant, or (nil, nil) when none exists.
	FindGrant(ctx context.Context, userID string) (*domain.AdminGrant, error)
	Count(ctx context.Context) (int64, error)
	// ClaimBootstrap atomically claims the one-time first-admin slot by
	// inserting a singleton marker document. Exactly one caller ever
	// succeeds; losers get domain.ErrBootstrapTaken.
	ClaimBootstrap(ctx context.Context, userID string) error
	// CreateGrant inserts a grant; user_id is unique in storage.
	CreateGrant(ctx context.Context, g *domain.AdminGrant) (*domain.AdminGrant, error)
}
