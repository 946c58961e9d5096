package ports

import (
	"context"

	"github.com/warungkita/storefront-api/internal/core/domain"
)

// AdminService defines the admin registry use cases. Privileged operations
// elsewhere re-derive admin status through RequireAdmin on every call
// instead of caching it on a session.
type AdminService interface {
	// IsAdmin is a plain membership test: false for anonymous or unknown users.
	IsAdmin(ctx context.Context, caller domain.Identity) (bool, error)
	// Bootstrap grants the very first admin on an empty registry, returns
	// the existing grant id for a repeat caller, and fails with
	// domain.ErrForbidden for anyone else.
	Bootstrap(ctx context.Context, caller domain.Identity, email string) (string, error)
	// RequireAdmin fails with domain.ErrUnauthenticated for anonymous
	// callers and domain.ErrForbidden for non-admins.
	RequireAdmin(ctx context.Context, caller domain.Identity) error
}
