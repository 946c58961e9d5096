package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/warungkita/storefront-api/internal/core/domain"
	"github.com/warungkita/storefront-api/internal/core/ports"
)

// AdminService implements the admin registry: membership tests and the
// one-time bootstrap of the first admin.
type AdminService struct {
	repo ports.AdminRepository
	log  zerolog.Logger
}

func NewAdminService(repo ports.AdminRepository, log zerolog.Logger) *AdminService {
	return &AdminService{repo: repo, log: log}
}

// IsAdmin reports whether the caller holds a grant. Anonymous callers are
// never admins.
func (s *AdminService) IsAdmin(ctx context.Context, caller domain.Identity) (bool, error) {
	if caller.Anonymous() {
		return false, nil
	}
	grant, err := s.repo.FindGrant(ctx, caller.UserID)
	if err != nil {
		return false, fmt.Errorf("admin lookup: %w", err)
	}
	return grant != nil, nil
}

// RequireAdmin is the gate every privileged operation calls. It re-derives
// admin status from the registry on each call rather than trusting any
// cached privilege.
func (s *AdminService) RequireAdmin(ctx context.Context, caller domain.Identity) error {
	if caller.Anonymous() {
		return domain.ErrUnauthenticated
	}
	admin, err := s.IsAdmin(ctx, caller)
	if err != nil {
		return err
	}
	if !admin {
		return domain.ErrForbidden
	}
	return nil
}

// Bootstrap creates the very first admin grant on an empty registry.
//
// Idempotent for a caller who already holds a grant. Once any grant exists,
// every other caller is rejected: subsequent admins must be invited by an
// existing one. Two concurrent first-time callers race on the singleton
// bootstrap marker, so at most one of them ever wins.
func (s *AdminService) Bootstrap(ctx context.Context, caller domain.Identity, email string) (string, error) {
	if caller.Anonymous() {
		return "", domain.ErrUnauthenticated
	}
	if email == "" {
		return "", fmt.Errorf("%w: email is required", domain.ErrInvalidArgument)
	}

	existing, err := s.repo.FindGrant(ctx, caller.UserID)
	if err != nil {
		return "", fmt.Errorf("bootstrap: %w", err)
	}
	if existing != nil {
		return existing.ID, nil
	}

	count, err := s.repo.Count(ctx)
	if err != nil {
		return "", fmt.Errorf("bootstrap: %w", err)
	}
	if count > 0 {
		return "", domain.ErrForbidden
	}

	// The registry looked empty, but only the marker insert decides the
	// race: a plain check-then-insert here could mint two first admins.
	if err := s.repo.ClaimBootstrap(ctx, caller.UserID); err != nil {
		if errors.Is(err, domain.ErrBootstrapTaken) {
			return "", domain.ErrForbidden
		}
		return "", fmt.Errorf("bootstrap claim: %w", err)
	}

	grant, err := s.repo.CreateGrant(ctx, &domain.AdminGrant{
		UserID:    caller.UserID,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return "", fmt.Errorf("bootstrap grant: %w", err)
	}

	s.log.Info().Str("user_id", caller.UserID).Str("email", email).Msg("first admin bootstrapped")
	return grant.ID, nil
}
