package ports

import (
	"context"

	"github.com/infernalwolves/clan-dashboard/internal/core/domain"
)

// TeamsListing is the full roster collection plus detected double bookings.
type TeamsListing struct {
	Teams     domain.RosterCollection
	Conflicts []domain.Conflict
}

// RosterService is the server-side use case behind the /api/teams surface.
type RosterService interface {
	Get(ctx context.Context, owner string) (*domain.TeamRoster, error)
	Save(ctx context.Context, owner string, members []domain.Member) (*domain.TeamRoster, error)
	Delete(ctx context.Context, owner string) error
	List(ctx context.Context) (*TeamsListing, error)
}
