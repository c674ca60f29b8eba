package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/infernalwolves/clan-dashboard/internal/core/domain"
	"github.com/infernalwolves/clan-dashboard/internal/core/ports"
)

const tankLookupConcurrency = 4

type ClanService struct {
	stats  ports.StatsProvider
	clanID int64
	logger zerolog.Logger
}

func NewClanService(stats ports.StatsProvider, clanID int64, logger zerolog.Logger) *ClanService {
	return &ClanService{stats: stats, clanID: clanID, logger: logger}
}

// Overview loads the clan and the statistics of every member. Failures are
// returned as-is: without this data nothing meaningful can be shown.
func (s *ClanService) Overview(ctx context.Context) (*ports.ClanOverview, error) {
	clan, err := s.stats.ClanInfo(ctx, s.clanID)
	if err != nil {
		s.logger.Error().Err(err).Int64("clan_id", s.clanID).Msg("failed to load clan")
		return nil, fmt.Errorf("clan overview: %w", err)
	}

	ids := make([]int64, 0, len(clan.Members))
	for _, m := range clan.Members {
		ids = append(ids, m.AccountID)
	}

	profiles, err := s.stats.AccountsInfo(ctx, ids)
	if err != nil {
		s.logger.Error().Err(err).Int("members", len(ids)).Msg("failed to load member statistics")
		return nil, fmt.Errorf("clan overview: %w", err)
	}

	views := make([]domain.MemberView, 0, len(clan.Members))
	for _, m := range clan.Members {
		views = append(views, memberView(m, profiles[m.AccountID]))
	}
	domain.SortMembers(views, domain.SortByRole)

	s.logger.Info().Str("clan", clan.Tag).Int("members", len(views)).Int("with_stats", len(profiles)).Msg("clan loaded")
	return &ports.ClanOverview{Clan: *clan, Members: views}, nil
}

// Members lists members filtered and sorted for the members view.
func (s *ClanService) Members(ctx context.Context, q ports.MembersQuery) ([]domain.MemberView, error) {
	overview, err := s.Overview(ctx)
	if err != nil {
		return nil, err
	}
	views := domain.FilterMembers(overview.Members, q.Role, q.Search)
	domain.SortMembers(views, q.Sort)
	return views, nil
}

// Player returns the profile of a clan member with a score for every mode.
func (s *ClanService) Player(ctx context.Context, accountID int64) (*ports.PlayerDetail, error) {
	clan, err := s.stats.ClanInfo(ctx, s.clanID)
	if err != nil {
		return nil, fmt.Errorf("player %d: %w", accountID, err)
	}

	var member *domain.Member
	for i := range clan.Members {
		if clan.Members[i].AccountID == accountID {
			member = &clan.Members[i]
			break
		}
	}
	if member == nil {
		return nil, fmt.Errorf("player %d: %w in clan %s", accountID, domain.ErrNotFound, clan.Tag)
	}

	profiles, err := s.stats.AccountsInfo(ctx, []int64{accountID})
	if err != nil {
		return nil, fmt.Errorf("player %d: %w", accountID, err)
	}

	detail := &ports.PlayerDetail{Member: *member, Profile: profiles[accountID]}
	if detail.Profile != nil {
		detail.Scores = domain.ScoreModes(detail.Profile.Statistics)
	} else {
		detail.Scores = domain.ScoreModes(domain.ModeStatistics{})
	}
	return detail, nil
}

// Profiles fetches account profiles without touching the clan roster.
func (s *ClanService) Profiles(ctx context.Context, accountIDs []int64) (map[int64]*domain.PlayerProfile, error) {
	return s.stats.AccountsInfo(ctx, accountIDs)
}

// Tier10Counts counts top-tier vehicles in each account's garage. Accounts
// whose garage cannot be read count as zero.
func (s *ClanService) Tier10Counts(ctx context.Context, accountIDs []int64) (map[int64]int, error) {
	vehicles, err := s.stats.Vehicles(ctx)
	if err != nil {
		return nil, fmt.Errorf("tier10 counts: %w", err)
	}

	var mu sync.Mutex
	counts := make(map[int64]int, len(accountIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(tankLookupConcurrency)
	for _, id := range accountIDs {
		mu.Lock()
		_, seen := counts[id]
		counts[id] = 0
		mu.Unlock()
		if seen {
			continue
		}

		g.Go(func() error {
			tanks, err := s.stats.AccountTanks(gctx, id)
			if err != nil {
				s.logger.Warn().Err(err).Int64("account_id", id).Msg("failed to load tanks, counting zero")
				return nil
			}
			n := 0
			for _, t := range tanks {
				if vehicles[t.TankID].Tier == domain.TopTier {
					n++
				}
			}
			mu.Lock()
			counts[id] = n
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return counts, nil
}

func memberView(m domain.Member, p *domain.PlayerProfile) domain.MemberView {
	v := domain.MemberView{Member: m}
	if p != nil {
		v.Nickname = p.Nickname
		v.Stats = p.Statistics.All
	}
	v.Score = domain.ComputeScore(v.Stats)
	return v
}
