package ports

import (
	"context"

	"github.com/infernalwolves/clan-dashboard/internal/core/domain"
)

// StatsProvider is the third-party game statistics API.
type StatsProvider interface {
	ClanInfo(ctx context.Context, clanID int64) (*domain.Clan, error)
	// AccountsInfo returns profiles keyed by account id. Accounts the provider
	// does not know are absent from the map.
	AccountsInfo(ctx context.Context, accountIDs []int64) (map[int64]*domain.PlayerProfile, error)
	AccountTanks(ctx context.Context, accountID int64) ([]domain.TankRef, error)
	Vehicles(ctx context.Context) (map[int64]domain.Vehicle, error)
}
