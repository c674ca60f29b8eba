package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/infernalwolves/clan-dashboard/internal/core/domain"
	"github.com/infernalwolves/clan-dashboard/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Clan service stub
// ---------------------------------------------------------------------------

type stubClanService struct {
	overview *ports.ClanOverview
	detail   *ports.PlayerDetail
	counts   map[int64]int
	err      error

	lastQuery ports.MembersQuery
	lastIDs   []int64
}

func (s *stubClanService) Overview(_ context.Context) (*ports.ClanOverview, error) {
	return s.overview, s.err
}

func (s *stubClanService) Members(_ context.Context, q ports.MembersQuery) ([]domain.MemberView, error) {
	s.lastQuery = q
	if s.err != nil {
		return nil, s.err
	}
	return s.overview.Members, nil
}

func (s *stubClanService) Player(_ context.Context, id int64) (*ports.PlayerDetail, error) {
	s.lastIDs = []int64{id}
	return s.detail, s.err
}

func (s *stubClanService) Tier10Counts(_ context.Context, ids []int64) (map[int64]int, error) {
	s.lastIDs = ids
	return s.counts, s.err
}

func (s *stubClanService) Profiles(_ context.Context, _ []int64) (map[int64]*domain.PlayerProfile, error) {
	return nil, s.err
}

func sampleOverview() *ports.ClanOverview {
	return &ports.ClanOverview{
		Clan: domain.Clan{ClanID: 1000023780, Tag: "INWO", Members: []domain.Member{{AccountID: 1}}},
		Members: []domain.MemberView{
			{Member: domain.Member{AccountID: 1, AccountName: "jefe", Role: domain.RoleCommander}, Score: domain.BandFor(695)},
		},
	}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestClanHandler_Overview(t *testing.T) {
	h := NewClanHandler(&stubClanService{overview: sampleOverview()})

	c, rec := newContext(http.MethodGet, "/api/clan", nil)
	if err := h.Overview(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	resp := decode(t, rec)
	clan, _ := resp["clan"].(map[string]any)
	members, _ := resp["members"].([]any)
	if clan["tag"] != "INWO" || len(members) != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	score, _ := members[0].(map[string]any)["score"].(map[string]any)
	if score["value"] != float64(695) || score["label"] != "Bajo Promedio" {
		t.Fatalf("unexpected score: %+v", score)
	}
}

func TestClanHandler_Overview_ProviderDown(t *testing.T) {
	h := NewClanHandler(&stubClanService{err: domain.ErrTransport})

	c, _ := newContext(http.MethodGet, "/api/clan", nil)
	if err := h.Overview(c); !errors.Is(err, domain.ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestClanHandler_Members_PassesQuery(t *testing.T) {
	stub := &stubClanService{overview: sampleOverview()}
	h := NewClanHandler(stub)

	c, _ := newContext(http.MethodGet, "/api/clan/members?sort=score&role=private&search=lo", nil)
	if err := h.Members(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	want := ports.MembersQuery{Sort: domain.SortByScore, Role: domain.RolePrivate, Search: "lo"}
	if stub.lastQuery != want {
		t.Fatalf("expected %+v, got %+v", want, stub.lastQuery)
	}
}

func TestClanHandler_Members_BadSort(t *testing.T) {
	h := NewClanHandler(&stubClanService{overview: sampleOverview()})

	c, _ := newContext(http.MethodGet, "/api/clan/members?sort=height", nil)
	if err := h.Members(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestClanHandler_Player(t *testing.T) {
	stub := &stubClanService{detail: &ports.PlayerDetail{
		Member:  domain.Member{AccountID: 7, AccountName: "lobo", Role: domain.RolePrivate},
		Profile: &domain.PlayerProfile{AccountID: 7, Nickname: "Lobo"},
		Scores:  map[domain.Mode]domain.CompositeScore{domain.ModeOverall: domain.BandFor(0)},
	}}
	h := NewClanHandler(stub)

	c, rec := newContext(http.MethodGet, "/api/clan/members/7", nil)
	c.SetParamNames("account_id")
	c.SetParamValues("7")

	if err := h.Player(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decode(t, rec)
	member, _ := resp["member"].(map[string]any)
	scores, _ := resp["scores"].(map[string]any)
	if member["account_name"] != "lobo" || scores["overall"] == nil || resp["profile"] == nil {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestClanHandler_Player_BadID(t *testing.T) {
	h := NewClanHandler(&stubClanService{})

	for _, raw := range []string{"abc", "0", "-3"} {
		c, _ := newContext(http.MethodGet, "/api/clan/members/"+raw, nil)
		c.SetParamNames("account_id")
		c.SetParamValues(raw)
		if err := h.Player(c); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("id %q: expected ErrValidation, got %v", raw, err)
		}
	}
}

func TestClanHandler_Tier10(t *testing.T) {
	stub := &stubClanService{counts: map[int64]int{1: 3, 2: 0}}
	h := NewClanHandler(stub)

	c, rec := newContext(http.MethodGet, "/api/clan/tier10?ids=1,+2,,", nil)
	if err := h.Tier10(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(stub.lastIDs) != 2 || stub.lastIDs[0] != 1 || stub.lastIDs[1] != 2 {
		t.Fatalf("unexpected ids: %v", stub.lastIDs)
	}
	counts, _ := decode(t, rec)["counts"].(map[string]any)
	if counts["1"] != float64(3) {
		t.Fatalf("unexpected counts: %+v", counts)
	}
}

func TestParseIDs(t *testing.T) {
	if _, err := parseIDs(""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty ids, got %v", err)
	}
	if _, err := parseIDs("1,x"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for bad id, got %v", err)
	}
	ids, err := parseIDs(" 10 ,20")
	if err != nil || len(ids) != 2 || ids[1] != 20 {
		t.Fatalf("unexpected parse: %v %v", ids, err)
	}
}
