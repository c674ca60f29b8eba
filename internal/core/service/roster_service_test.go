package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/infernalwolves/clan-dashboard/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory roster repository stub
// ---------------------------------------------------------------------------

type stubRosterRepo struct {
	mu      sync.Mutex
	teams   domain.RosterCollection
	saveErr error
	active  int // concurrent Save calls in flight
	maxSeen int
}

func newStubRosterRepo() *stubRosterRepo {
	return &stubRosterRepo{teams: domain.RosterCollection{}}
}

func (r *stubRosterRepo) Get(_ context.Context, owner string) (*domain.TeamRoster, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.teams[owner]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (r *stubRosterRepo) Save(_ context.Context, owner string, members []domain.Member) (*domain.TeamRoster, error) {
	r.mu.Lock()
	r.active++
	if r.active > r.maxSeen {
		r.maxSeen = r.active
	}
	r.mu.Unlock()

	time.Sleep(time.Millisecond)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.active--
	if r.saveErr != nil {
		return nil, r.saveErr
	}
	prev := r.teams[owner]
	t := domain.TeamRoster{
		Owner:     owner,
		Members:   append([]domain.Member(nil), members...),
		Version:   domain.NextVersion(prev.Version, time.Now()),
		UpdatedAt: time.Now(),
	}
	r.teams[owner] = t
	return &t, nil
}

func (r *stubRosterRepo) Delete(_ context.Context, owner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.teams, owner)
	return nil
}

func (r *stubRosterRepo) List(_ context.Context) (domain.RosterCollection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.teams.Clone(), nil
}

func newRosterSvc(repo *stubRosterRepo) *RosterService {
	return NewRosterService(repo, "memory", zerolog.Nop())
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestRosterService_Get_UnknownOwnerIsEmpty(t *testing.T) {
	svc := newRosterSvc(newStubRosterRepo())

	team, err := svc.Get(context.Background(), "Nobody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if team.Owner != "nobody" || team.Members == nil || len(team.Members) != 0 {
		t.Fatalf("expected empty roster for nobody, got %+v", team)
	}
}

func TestRosterService_Save_NormalisesOwner(t *testing.T) {
	repo := newStubRosterRepo()
	svc := newRosterSvc(repo)

	saved, err := svc.Save(context.Background(), "Fire Ariel", []domain.Member{member(1, domain.RolePrivate)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.Owner != "fire_ariel" {
		t.Fatalf("expected owner key fire_ariel, got %q", saved.Owner)
	}

	got, err := svc.Get(context.Background(), "FIRE ARIEL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Contains(1) {
		t.Fatalf("expected the same roster under a differently cased name")
	}
}

func TestRosterService_Save_VersionsIncrease(t *testing.T) {
	svc := newRosterSvc(newStubRosterRepo())
	ctx := context.Background()

	first, err := svc.Save(ctx, "a", []domain.Member{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Save(ctx, "a", []domain.Member{member(1, domain.RolePrivate)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Version <= first.Version {
		t.Fatalf("expected version to grow: %d then %d", first.Version, second.Version)
	}
}

func TestRosterService_Save_Validation(t *testing.T) {
	svc := newRosterSvc(newStubRosterRepo())

	if _, err := svc.Save(context.Background(), "a", nil); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for missing team, got %v", err)
	}
	if _, err := svc.Save(context.Background(), "", []domain.Member{}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty owner, got %v", err)
	}
}

func TestRosterService_Save_RepoError(t *testing.T) {
	repo := newStubRosterRepo()
	repo.saveErr = errors.New("disk full")

	if _, err := newRosterSvc(repo).Save(context.Background(), "a", []domain.Member{}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestRosterService_Save_SerialisedPerOwner(t *testing.T) {
	repo := newStubRosterRepo()
	svc := newRosterSvc(repo)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_, _ = svc.Save(context.Background(), "same", []domain.Member{member(id, domain.RolePrivate)})
		}(int64(i + 1))
	}
	wg.Wait()

	if repo.maxSeen != 1 {
		t.Fatalf("expected writes for one owner to be serialised, saw %d concurrent", repo.maxSeen)
	}
}

func TestRosterService_Delete(t *testing.T) {
	repo := newStubRosterRepo()
	svc := newRosterSvc(repo)
	ctx := context.Background()

	if err := svc.Delete(ctx, "a"); err != nil {
		t.Fatalf("deleting an absent roster should succeed, got %v", err)
	}
	_, _ = svc.Save(ctx, "a", []domain.Member{member(1, domain.RolePrivate)})
	if err := svc.Delete(ctx, "a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := svc.Get(ctx, "a")
	if len(got.Members) != 0 {
		t.Fatalf("expected empty roster after delete")
	}
}

func TestRosterService_List_ReportsConflicts(t *testing.T) {
	svc := newRosterSvc(newStubRosterRepo())
	ctx := context.Background()

	_, _ = svc.Save(ctx, "a", []domain.Member{member(1, domain.RolePrivate), member(2, domain.RolePrivate)})
	_, _ = svc.Save(ctx, "b", []domain.Member{member(2, domain.RolePrivate)})

	listing, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listing.Teams) != 2 {
		t.Fatalf("expected 2 teams, got %d", len(listing.Teams))
	}
	if len(listing.Conflicts) != 1 || listing.Conflicts[0].AccountID != 2 {
		t.Fatalf("expected conflict on account 2, got %+v", listing.Conflicts)
	}
}
