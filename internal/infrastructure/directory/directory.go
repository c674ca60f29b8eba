// Package directory serves the static principal directory: a JSON file listing
// every dashboard user with a bcrypt password hash.
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/infernalwolves/clan-dashboard/internal/core/domain"
)

type principal struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
	Role         string `json:"role"`
	DisplayName  string `json:"display_name"`
}

// Directory is an immutable, case-insensitive username index.
type Directory struct {
	users map[string]domain.User
}

// Load reads the directory file at path.
func Load(path string) (*Directory, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read principal directory: %w", err)
	}
	return Parse(raw)
}

// Parse builds a directory from its JSON form. Usernames that differ only in
// case are rejected since logins are case-insensitive.
func Parse(raw []byte) (*Directory, error) {
	var entries []principal
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("%w: principal directory: %v", domain.ErrValidation, err)
	}

	users := make(map[string]domain.User, len(entries))
	for i, e := range entries {
		key := strings.ToLower(strings.TrimSpace(e.Username))
		switch {
		case key == "":
			return nil, fmt.Errorf("%w: principal %d has no username", domain.ErrValidation, i)
		case e.PasswordHash == "":
			return nil, fmt.Errorf("%w: principal %q has no password hash", domain.ErrValidation, e.Username)
		case !domain.ValidUserRole(e.Role):
			return nil, fmt.Errorf("%w: principal %q has unknown role %q", domain.ErrValidation, e.Username, e.Role)
		}
		if _, dup := users[key]; dup {
			return nil, fmt.Errorf("%w: duplicate principal %q", domain.ErrValidation, e.Username)
		}

		name := e.DisplayName
		if name == "" {
			name = e.Username
		}
		users[key] = domain.User{
			Username:     strings.TrimSpace(e.Username),
			DisplayName:  name,
			Role:         e.Role,
			PasswordHash: e.PasswordHash,
		}
	}
	return &Directory{users: users}, nil
}

func (d *Directory) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := d.users[strings.ToLower(strings.TrimSpace(username))]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

// Len is the number of principals.
func (d *Directory) Len() int { return len(d.users) }
