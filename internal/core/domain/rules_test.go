package domain

import (
	"errors"
	"testing"
	"time"
)

func collection(rosters map[string][]int64) RosterCollection {
	c := make(RosterCollection, len(rosters))
	for owner, ids := range rosters {
		t := TeamRoster{Owner: owner}
		for _, id := range ids {
			t.Members = append(t.Members, Member{AccountID: id, Role: RolePrivate})
		}
		c[owner] = t
	}
	return c
}

func TestCanAdd_RejectsEveryRestrictedRole(t *testing.T) {
	all := collection(map[string][]int64{"kiritonyu": {1}})
	for _, role := range AllRoles() {
		for _, owner := range []string{"kiritonyu", "fireariel"} {
			err := CanAdd(99, role, owner, all)
			if role.IsRestricted() && !errors.Is(err, ErrRestrictedRole) {
				t.Errorf("%s on %s: expected ErrRestrictedRole, got %v", role, owner, err)
			}
			if !role.IsRestricted() && err != nil {
				t.Errorf("%s on %s: expected allowed, got %v", role, owner, err)
			}
		}
	}
}

func TestCanAdd_RestrictedSet(t *testing.T) {
	restricted := 0
	for _, role := range AllRoles() {
		if role.IsRestricted() {
			restricted++
		}
	}
	if restricted != 6 {
		t.Fatalf("expected 6 restricted roles, got %d", restricted)
	}
	if RolePersonnelOfficer.IsRestricted() || RoleIntelligenceOfficer.IsRestricted() {
		t.Fatalf("personnel and intelligence officers must be allowed")
	}
}

func TestCanAdd_AlreadyOnAnotherTeam(t *testing.T) {
	all := collection(map[string][]int64{"kiritonyu": {1, 2}, "fireariel": {3}})

	err := CanAdd(2, RolePrivate, "FireAriel", all)

	var other *AlreadyOnAnotherTeamError
	if !errors.As(err, &other) {
		t.Fatalf("expected AlreadyOnAnotherTeamError, got %v", err)
	}
	if other.Owner != "kiritonyu" {
		t.Errorf("expected owner kiritonyu, got %s", other.Owner)
	}
	if !errors.Is(err, ErrAlreadyOnAnotherTeam) {
		t.Errorf("expected error to match ErrAlreadyOnAnotherTeam")
	}
}

func TestCanAdd_SameTeamIsAllowed(t *testing.T) {
	all := collection(map[string][]int64{"kiritonyu": {1}})
	if err := CanAdd(1, RoleRecruit, "Kiritonyu", all); err != nil {
		t.Fatalf("expected re-adding to own team to be allowed, got %v", err)
	}
}

func TestFindConflicts(t *testing.T) {
	all := collection(map[string][]int64{
		"a": {1, 2, 2},
		"b": {2, 3},
		"c": {3, 4},
	})

	got := FindConflicts(all)

	if len(got) != 2 {
		t.Fatalf("expected 2 conflicts, got %+v", got)
	}
	if got[0].AccountID != 2 || len(got[0].Owners) != 2 || got[0].Owners[0] != "a" || got[0].Owners[1] != "b" {
		t.Errorf("unexpected first conflict: %+v", got[0])
	}
	if got[1].AccountID != 3 {
		t.Errorf("unexpected second conflict: %+v", got[1])
	}
}

func TestFindConflicts_SettledCollectionHasNone(t *testing.T) {
	all := collection(map[string][]int64{"a": {1, 2}, "b": {3}, "c": {}})
	if got := FindConflicts(all); len(got) != 0 {
		t.Fatalf("expected no conflicts, got %+v", got)
	}
}

func TestTeamRoster_WithIsIdempotent(t *testing.T) {
	r := TeamRoster{Members: []Member{{AccountID: 1}}}

	once := r.With(Member{AccountID: 2})
	twice := TeamRoster{Members: once}.With(Member{AccountID: 2})

	if len(twice) != 2 {
		t.Fatalf("expected 2 members, got %d", len(twice))
	}
	if len(r.Members) != 1 {
		t.Fatalf("With must not modify the receiver")
	}
}

func TestTeamRoster_WithoutNonMember(t *testing.T) {
	r := TeamRoster{Members: []Member{{AccountID: 1}, {AccountID: 2}}}
	if got := r.Without(9); len(got) != 2 {
		t.Fatalf("expected no-op, got %+v", got)
	}
	if got := r.Without(1); len(got) != 1 || got[0].AccountID != 2 {
		t.Fatalf("expected only 2 left, got %+v", got)
	}
}

func TestOwnerKey(t *testing.T) {
	cases := map[string]string{
		"FireAriel":     "fireariel",
		"0_Whait_0":     "0_whait_0",
		"Mayor-defa":    "mayor_defa",
		" CORDERO ":     "_cordero_",
		"   ":           "___",
		"a.b/c":         "a_b_c",
		"Sunstrider_Re": "sunstrider_re",
	}
	for in, want := range cases {
		got, err := OwnerKey(in)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", in, err)
		}
		if got != want {
			t.Errorf("%q: expected %q, got %q", in, want, got)
		}
	}
	if _, err := OwnerKey(""); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for empty owner, got %v", err)
	}
}

func TestNextVersion_StrictlyIncreasing(t *testing.T) {
	now := time.Unix(100, 0)
	if v := NextVersion(0, now); v != now.UnixNano() {
		t.Errorf("expected wall clock version, got %d", v)
	}
	ahead := now.UnixNano() + 50
	if v := NextVersion(ahead, now); v != ahead+1 {
		t.Errorf("expected prev+1 when clock lags, got %d", v)
	}
}
