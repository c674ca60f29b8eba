package ports

import (
	"context"

	"github.com/infernalwolves/clan-dashboard/internal/core/domain"
)

// PrincipalDirectory resolves users by name, case-insensitively.
type PrincipalDirectory interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
