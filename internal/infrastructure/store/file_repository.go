package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/infernalwolves/clan-dashboard/internal/core/domain"
)

const teamFileSuffix = "_team.json"

// envelope is the on-disk layout of a roster file. Files written before
// versioning hold a bare member array instead and read back as version 0.
type envelope struct {
	Version   int64           `json:"version"`
	UpdatedAt time.Time       `json:"updated_at"`
	Team      []domain.Member `json:"team"`
}

// FileRepository keeps one JSON file per owner under a data directory.
type FileRepository struct {
	dir string
	log zerolog.Logger
	now func() time.Time
}

func NewFileRepository(dir string, log zerolog.Logger) (*FileRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dir, err)
	}
	return &FileRepository{dir: dir, log: log, now: time.Now}, nil
}

func (r *FileRepository) path(owner string) string {
	return filepath.Join(r.dir, owner+teamFileSuffix)
}

func (r *FileRepository) Get(_ context.Context, owner string) (*domain.TeamRoster, error) {
	raw, err := os.ReadFile(r.path(owner))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read roster file: %w", err)
	}
	return decodeRoster(owner, raw)
}

func (r *FileRepository) Save(ctx context.Context, owner string, members []domain.Member) (*domain.TeamRoster, error) {
	var prev int64
	current, err := r.Get(ctx, owner)
	switch {
	case err == nil:
		prev = current.Version
	case errors.Is(err, domain.ErrNotFound):
	default:
		r.log.Warn().Err(err).Str("owner", owner).Msg("unreadable roster file will be overwritten")
	}

	now := r.now().UTC()
	env := envelope{
		Version:   domain.NextVersion(prev, now),
		UpdatedAt: now,
		Team:      members,
	}
	raw, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode roster: %w", err)
	}
	if err := writeFileAtomic(r.path(owner), raw); err != nil {
		return nil, err
	}

	return &domain.TeamRoster{Owner: owner, Members: members, Version: env.Version, UpdatedAt: now}, nil
}

func (r *FileRepository) Delete(_ context.Context, owner string) error {
	err := os.Remove(r.path(owner))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove roster file: %w", err)
	}
	return nil
}

func (r *FileRepository) List(ctx context.Context) (domain.RosterCollection, error) {
	matches, err := filepath.Glob(filepath.Join(r.dir, "*"+teamFileSuffix))
	if err != nil {
		return nil, fmt.Errorf("list roster files: %w", err)
	}

	out := make(domain.RosterCollection, len(matches))
	for _, m := range matches {
		owner := strings.TrimSuffix(filepath.Base(m), teamFileSuffix)
		t, err := r.Get(ctx, owner)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			// one corrupt file must not hide every other roster
			r.log.Error().Err(err).Str("file", m).Msg("skipping unreadable roster file")
			continue
		}
		out[owner] = *t
	}
	return out, nil
}

func decodeRoster(owner string, raw []byte) (*domain.TeamRoster, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var members []domain.Member
		if err := json.Unmarshal(trimmed, &members); err != nil {
			return nil, fmt.Errorf("%w: roster %s: %v", domain.ErrValidation, owner, err)
		}
		return &domain.TeamRoster{Owner: owner, Members: members}, nil
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("%w: roster %s: %v", domain.ErrValidation, owner, err)
	}
	if env.Team == nil {
		env.Team = []domain.Member{}
	}
	return &domain.TeamRoster{Owner: owner, Members: env.Team, Version: env.Version, UpdatedAt: env.UpdatedAt}, nil
}

// writeFileAtomic replaces path through a temp file and rename so readers never
// observe a half-written roster.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp roster file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write roster file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close roster file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace roster file: %w", err)
	}
	return nil
}
