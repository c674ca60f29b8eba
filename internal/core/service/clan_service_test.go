package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/infernalwolves/clan-dashboard/internal/core/domain"
	"github.com/infernalwolves/clan-dashboard/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stats provider stub
// ---------------------------------------------------------------------------

type stubStats struct {
	clan     *domain.Clan
	clanErr  error
	profiles map[int64]*domain.PlayerProfile
	tanks    map[int64][]domain.TankRef
	tankErr  map[int64]error
	vehicles map[int64]domain.Vehicle

	mu         sync.Mutex
	tankCalls  map[int64]int
	accountIDs []int64
}

func (s *stubStats) ClanInfo(_ context.Context, _ int64) (*domain.Clan, error) {
	if s.clanErr != nil {
		return nil, s.clanErr
	}
	clone := *s.clan
	clone.Members = append([]domain.Member(nil), s.clan.Members...)
	return &clone, nil
}

func (s *stubStats) AccountsInfo(_ context.Context, ids []int64) (map[int64]*domain.PlayerProfile, error) {
	s.mu.Lock()
	s.accountIDs = append(s.accountIDs, ids...)
	s.mu.Unlock()
	out := make(map[int64]*domain.PlayerProfile)
	for _, id := range ids {
		if p, ok := s.profiles[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (s *stubStats) AccountTanks(_ context.Context, id int64) ([]domain.TankRef, error) {
	s.mu.Lock()
	if s.tankCalls == nil {
		s.tankCalls = map[int64]int{}
	}
	s.tankCalls[id]++
	s.mu.Unlock()
	if err := s.tankErr[id]; err != nil {
		return nil, err
	}
	return s.tanks[id], nil
}

func (s *stubStats) Vehicles(_ context.Context) (map[int64]domain.Vehicle, error) {
	return s.vehicles, nil
}

func sampleStats() *stubStats {
	return &stubStats{
		clan: &domain.Clan{
			ClanID: 1000023780,
			Tag:    "INWO",
			Members: []domain.Member{
				{AccountID: 3, AccountName: "recruta", Role: domain.RoleRecruit},
				{AccountID: 1, AccountName: "jefe", Role: domain.RoleCommander},
				{AccountID: 2, AccountName: "Kiritonyu", Role: domain.RolePrivate},
			},
		},
		profiles: map[int64]*domain.PlayerProfile{
			1: {AccountID: 1, Nickname: "Jefe", Statistics: domain.ModeStatistics{
				All: &domain.PlayerStatistics{Battles: 100, Wins: 60, DamageDealt: 10000, Frags: 10, Spotted: 20},
			}},
			2: {AccountID: 2, Nickname: "Kiritonyu", Statistics: domain.ModeStatistics{
				All:                &domain.PlayerStatistics{Battles: 10, Wins: 9, DamageDealt: 30000},
				StrongholdSkirmish: &domain.PlayerStatistics{Battles: 2, Wins: 2, DamageDealt: 4000},
			}},
		},
	}
}

func newClanSvc(stats *stubStats) *ClanService {
	return NewClanService(stats, 1000023780, zerolog.Nop())
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestClanService_Overview_SortedByRoleWithScores(t *testing.T) {
	overview, err := newClanSvc(sampleStats()).Overview(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(overview.Members) != 3 {
		t.Fatalf("expected 3 members, got %d", len(overview.Members))
	}
	wantOrder := []int64{1, 2, 3}
	for i, id := range wantOrder {
		if overview.Members[i].AccountID != id {
			t.Fatalf("position %d: expected account %d, got %d", i, id, overview.Members[i].AccountID)
		}
	}

	if overview.Members[0].Score.Value != 695 {
		t.Errorf("expected commander score 695, got %d", overview.Members[0].Score.Value)
	}
	if overview.Members[2].Stats != nil || overview.Members[2].Score.Value != 0 {
		t.Errorf("expected member without profile to score 0, got %+v", overview.Members[2])
	}
}

func TestClanService_Overview_ProviderError(t *testing.T) {
	stats := sampleStats()
	stats.clanErr = domain.ErrTransport

	_, err := newClanSvc(stats).Overview(context.Background())
	if !errors.Is(err, domain.ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestClanService_Members_FilterAndSort(t *testing.T) {
	svc := newClanSvc(sampleStats())

	views, err := svc.Members(context.Background(), ports.MembersQuery{Sort: domain.SortByName})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if views[0].DisplayName() != "Jefe" || views[2].DisplayName() != "recruta" {
		t.Fatalf("unexpected name order: %s, %s, %s", views[0].DisplayName(), views[1].DisplayName(), views[2].DisplayName())
	}

	views, err = svc.Members(context.Background(), ports.MembersQuery{Role: domain.RolePrivate})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 1 || views[0].AccountID != 2 {
		t.Fatalf("expected only the private, got %+v", views)
	}

	views, err = svc.Members(context.Background(), ports.MembersQuery{Search: "KIRI"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 1 || views[0].AccountID != 2 {
		t.Fatalf("expected case-insensitive search hit, got %+v", views)
	}
}

func TestClanService_Player(t *testing.T) {
	detail, err := newClanSvc(sampleStats()).Player(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.Profile == nil || detail.Profile.Nickname != "Kiritonyu" {
		t.Fatalf("unexpected profile: %+v", detail.Profile)
	}
	if len(detail.Scores) != len(domain.Modes()) {
		t.Fatalf("expected a score per mode, got %d", len(detail.Scores))
	}
	if detail.Scores[domain.ModeStronghold].Value == 0 {
		t.Errorf("expected stronghold score from skirmish battles")
	}
	if detail.Scores[domain.ModeCampaign].Value != 0 {
		t.Errorf("expected campaign score 0 without battles")
	}
}

func TestClanService_Player_NotInClan(t *testing.T) {
	_, err := newClanSvc(sampleStats()).Player(context.Background(), 999)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClanService_Tier10Counts(t *testing.T) {
	stats := sampleStats()
	stats.vehicles = map[int64]domain.Vehicle{
		100: {TankID: 100, Tier: 10},
		101: {TankID: 101, Tier: 10},
		200: {TankID: 200, Tier: 8},
	}
	stats.tanks = map[int64][]domain.TankRef{
		1: {{TankID: 100}, {TankID: 101}, {TankID: 200}},
		2: {{TankID: 200}},
	}
	stats.tankErr = map[int64]error{3: errors.New("private garage")}

	counts, err := newClanSvc(stats).Tier10Counts(context.Background(), []int64{1, 2, 3, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[int64]int{1: 2, 2: 0, 3: 0}
	for id, n := range want {
		if counts[id] != n {
			t.Errorf("account %d: expected %d, got %d", id, n, counts[id])
		}
	}
	if stats.tankCalls[1] != 1 {
		t.Errorf("expected duplicate ids to be fetched once, got %d", stats.tankCalls[1])
	}
}
