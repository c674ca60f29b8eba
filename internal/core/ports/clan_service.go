package ports

import (
	"context"

	"github.com/infernalwolves/clan-dashboard/internal/core/domain"
)

// MembersQuery carries the listing controls of the members view.
type MembersQuery struct {
	Sort   domain.MemberSort
	Role   domain.RoleTag
	Search string
}

// ClanOverview is the clan header plus every member with stats and score.
type ClanOverview struct {
	Clan    domain.Clan
	Members []domain.MemberView
}

// PlayerDetail is the profile view of one member with a score per mode.
type PlayerDetail struct {
	Member  domain.Member
	Profile *domain.PlayerProfile
	Scores  map[domain.Mode]domain.CompositeScore
}

// ClanService serves the read-only clan views.
type ClanService interface {
	Overview(ctx context.Context) (*ClanOverview, error)
	Members(ctx context.Context, q MembersQuery) ([]domain.MemberView, error)
	Player(ctx context.Context, accountID int64) (*PlayerDetail, error)
	Tier10Counts(ctx context.Context, accountIDs []int64) (map[int64]int, error)
	Profiles(ctx context.Context, accountIDs []int64) (map[int64]*domain.PlayerProfile, error)
}
