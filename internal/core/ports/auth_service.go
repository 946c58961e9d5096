package ports

import (
	"context"

	"github.com/warungkita/storefront-api/internal/core/domain"
)

// AuthService resolves and issues identities. It is the only component that
// knows about passwords and tokens; the rest of the core consumes the
// resolved domain.Identity as a plain value.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
