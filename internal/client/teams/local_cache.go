package teams

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/infernalwolves/clan-dashboard/internal/core/domain"
)

const (
	cacheFileSuffix   = "_battle_team.json"
	pendingFileSuffix = "_battle_team.pending"
)

// LocalCache mirrors rosters on local disk, one bare member array per owner.
// It is the fallback read when the store is unreachable and the holding area
// for writes made while it is. An owner whose cached roster never reached the
// store carries a pending marker next to it until a later write succeeds.
type LocalCache struct {
	dir string
}

func NewLocalCache(dir string) (*LocalCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir %s: %w", dir, err)
	}
	return &LocalCache{dir: dir}, nil
}

func (c *LocalCache) path(key string) string {
	return filepath.Join(c.dir, key+cacheFileSuffix)
}

// Load returns the cached roster and whether one was present.
func (c *LocalCache) Load(key string) ([]domain.Member, bool, error) {
	raw, err := os.ReadFile(c.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read cached roster: %w", err)
	}
	var members []domain.Member
	if err := json.Unmarshal(raw, &members); err != nil {
		return nil, false, fmt.Errorf("%w: cached roster %s: %v", domain.ErrValidation, key, err)
	}
	return members, true, nil
}

func (c *LocalCache) Store(key string, members []domain.Member) error {
	if members == nil {
		members = []domain.Member{}
	}
	raw, err := json.Marshal(members)
	if err != nil {
		return fmt.Errorf("encode cached roster: %w", err)
	}
	if err := os.WriteFile(c.path(key), raw, 0o644); err != nil {
		return fmt.Errorf("write cached roster: %w", err)
	}
	return nil
}

func (c *LocalCache) Remove(key string) error {
	if err := os.Remove(c.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove cached roster: %w", err)
	}
	return nil
}

// LoadAll returns every cached roster. Unreadable entries are skipped.
func (c *LocalCache) LoadAll() domain.RosterCollection {
	out := make(domain.RosterCollection)
	for _, key := range c.keys(cacheFileSuffix) {
		members, ok, err := c.Load(key)
		if err != nil || !ok {
			continue
		}
		out[key] = domain.TeamRoster{Owner: key, Members: members}
	}
	return out
}

// MarkPending flags key's cached roster as not yet on the store.
func (c *LocalCache) MarkPending(key string) error {
	if err := os.WriteFile(filepath.Join(c.dir, key+pendingFileSuffix), nil, 0o644); err != nil {
		return fmt.Errorf("mark pending roster: %w", err)
	}
	return nil
}

// ClearPending drops key's pending marker.
func (c *LocalCache) ClearPending(key string) error {
	err := os.Remove(filepath.Join(c.dir, key+pendingFileSuffix))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear pending roster: %w", err)
	}
	return nil
}

// IsPending reports whether key holds a write the store has not seen.
func (c *LocalCache) IsPending(key string) bool {
	_, err := os.Stat(filepath.Join(c.dir, key+pendingFileSuffix))
	return err == nil
}

// Pending lists the owners with unsynced writes, sorted.
func (c *LocalCache) Pending() []string {
	return c.keys(pendingFileSuffix)
}

// Prune removes cached rosters of owners absent from keep. Pending owners are
// left alone. It returns the removed keys.
func (c *LocalCache) Prune(keep map[string]struct{}) ([]string, error) {
	var removed []string
	for _, key := range c.keys(cacheFileSuffix) {
		if _, ok := keep[key]; ok || c.IsPending(key) {
			continue
		}
		if err := c.Remove(key); err != nil {
			return removed, err
		}
		removed = append(removed, key)
	}
	return removed, nil
}

func (c *LocalCache) keys(suffix string) []string {
	matches, _ := filepath.Glob(filepath.Join(c.dir, "*"+suffix))
	keys := make([]string, 0, len(matches))
	for _, m := range matches {
		keys = append(keys, strings.TrimSuffix(filepath.Base(m), suffix))
	}
	sort.Strings(keys)
	return keys
}
