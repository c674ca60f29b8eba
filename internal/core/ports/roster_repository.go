package ports

import (
	"context"

	"github.com/infernalwolves/clan-dashboard/internal/core/domain"
)

// RosterRepository persists rosters on the server side. Implementations
// receive already normalised owner keys.
type RosterRepository interface {
	// Get returns domain.ErrNotFound when the owner has no stored roster.
	Get(ctx context.Context, owner string) (*domain.TeamRoster, error)
	// Save replaces the owner's roster, stamping a new version.
	Save(ctx context.Context, owner string, members []domain.Member) (*domain.TeamRoster, error)
	// Delete removes the roster; deleting an absent roster is not an error.
	Delete(ctx context.Context, owner string) error
	List(ctx context.Context) (domain.RosterCollection, error)
}
