package ports

import (
	"context"

	"github.com/infernalwolves/clan-dashboard/internal/core/domain"
)

// RosterStore is the client-side view of the roster store used by the
// reconciliation rules and the polling synchronizer.
type RosterStore interface {
	Get(ctx context.Context, owner string) ([]domain.Member, error)
	// Set reports domain.WriteDegraded when the write only reached a local fallback.
	Set(ctx context.Context, owner string, members []domain.Member) (domain.WriteStatus, error)
	GetAll(ctx context.Context) (domain.RosterCollection, error)
	Delete(ctx context.Context, owner string) error
}
