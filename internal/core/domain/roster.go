package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// TeamRoster is the ordered battle team of one owner.
type TeamRoster struct {
	Owner     string    `json:"owner"`
	Members   []Member  `json:"team"`
	Version   int64     `json:"version"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// RosterCollection maps owner keys to their rosters.
type RosterCollection map[string]TeamRoster

// WriteStatus tells whether a roster write reached the authoritative store.
type WriteStatus int

const (
	WriteSynced WriteStatus = iota
	WriteDegraded
)

func (s WriteStatus) String() string {
	if s == WriteDegraded {
		return "degraded"
	}
	return "synced"
}

// OwnerKey folds an owner name into its storage key: lower case with every
// rune outside [a-z0-9_] replaced by an underscore, spaces included.
func OwnerKey(owner string) (string, error) {
	if owner == "" {
		return "", fmt.Errorf("owner key: %w: empty owner", ErrValidation)
	}
	var b strings.Builder
	for _, r := range strings.ToLower(owner) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String(), nil
}

// Contains reports whether accountID is on the roster.
func (t TeamRoster) Contains(accountID int64) bool {
	return t.indexOf(accountID) >= 0
}

func (t TeamRoster) indexOf(accountID int64) int {
	for i, m := range t.Members {
		if m.AccountID == accountID {
			return i
		}
	}
	return -1
}

// Find returns the roster entry for accountID.
func (t TeamRoster) Find(accountID int64) (Member, bool) {
	if i := t.indexOf(accountID); i >= 0 {
		return t.Members[i], true
	}
	return Member{}, false
}

// With returns a copy of the member list with m appended. Adding a member
// that is already present returns the list unchanged.
func (t TeamRoster) With(m Member) []Member {
	out := make([]Member, 0, len(t.Members)+1)
	out = append(out, t.Members...)
	if t.Contains(m.AccountID) {
		return out
	}
	return append(out, m)
}

// Without returns a copy of the member list with accountID removed.
func (t TeamRoster) Without(accountID int64) []Member {
	out := make([]Member, 0, len(t.Members))
	for _, m := range t.Members {
		if m.AccountID != accountID {
			out = append(out, m)
		}
	}
	return out
}

// Roster returns the roster stored under owner, or an empty one.
func (c RosterCollection) Roster(owner string) TeamRoster {
	key, err := OwnerKey(owner)
	if err != nil {
		return TeamRoster{}
	}
	if t, ok := c[key]; ok {
		return t
	}
	return TeamRoster{Owner: key}
}

// Owners returns the owner keys in lexical order.
func (c RosterCollection) Owners() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone copies the collection and each member slice.
func (c RosterCollection) Clone() RosterCollection {
	out := make(RosterCollection, len(c))
	for k, t := range c {
		t.Members = append([]Member(nil), t.Members...)
		out[k] = t
	}
	return out
}

// NextVersion stamps a write that follows a roster at version prev. The result
// is strictly greater than prev and tracks wall time so it stays monotonic
// across deletes and process restarts.
func NextVersion(prev int64, now time.Time) int64 {
	v := now.UnixNano()
	if v <= prev {
		return prev + 1
	}
	return v
}
