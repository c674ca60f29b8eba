// Package session holds the signed-in officer's state on the client side and
// the editor that applies roster mutations on their behalf.
package session

import (
	"time"

	"github.com/infernalwolves/clan-dashboard/internal/core/domain"
)

// Session is the identity of one signed-in user. It is passed explicitly to
// whatever acts on the user's behalf.
type Session struct {
	User     domain.User `json:"user"`
	Token    string      `json:"token"`
	IssuedAt time.Time   `json:"issued_at"`
}

func New(user domain.User, token string, now time.Time) Session {
	return Session{User: user, Token: token, IssuedAt: now}
}

// OwnerKey is the roster key of the user's own team.
func (s Session) OwnerKey() (string, error) {
	return domain.OwnerKey(s.User.Username)
}

// CanEdit reports whether the user may change owner's roster: admins may edit
// any roster, officers only their own.
func (s Session) CanEdit(owner string) bool {
	if s.User.IsAdmin() {
		return true
	}
	if !s.User.IsOfficer() {
		return false
	}
	own, err := s.OwnerKey()
	if err != nil {
		return false
	}
	target, err := domain.OwnerKey(owner)
	return err == nil && own == target
}

// IdentityStore persists the last authenticated session between runs.
type IdentityStore interface {
	// Load returns nil without error when nothing is stored.
	Load() (*Session, error)
	Save(s Session) error
	Clear() error
}
