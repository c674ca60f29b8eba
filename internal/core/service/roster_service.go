package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/infernalwolves/clan-dashboard/internal/api/metrics"
	"github.com/infernalwolves/clan-dashboard/internal/core/domain"
	"github.com/infernalwolves/clan-dashboard/internal/core/ports"
)

// RosterService backs the roster store HTTP surface.
type RosterService struct {
	repo    ports.RosterRepository
	backend string
	locks   keyedMutex
	log     zerolog.Logger
}

func NewRosterService(repo ports.RosterRepository, backend string, log zerolog.Logger) *RosterService {
	return &RosterService{repo: repo, backend: backend, log: log}
}

// Get returns the owner's roster; an owner without a stored roster gets an empty one.
func (s *RosterService) Get(ctx context.Context, owner string) (*domain.TeamRoster, error) {
	key, err := domain.OwnerKey(owner)
	if err != nil {
		return nil, err
	}

	t, err := s.repo.Get(ctx, key)
	if errors.Is(err, domain.ErrNotFound) {
		s.log.Debug().Str("owner", key).Msg("no roster stored, returning empty team")
		return &domain.TeamRoster{Owner: key, Members: []domain.Member{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get roster %s: %w", key, err)
	}
	return t, nil
}

// Save replaces the owner's roster. Writes to the same owner are serialised.
func (s *RosterService) Save(ctx context.Context, owner string, members []domain.Member) (*domain.TeamRoster, error) {
	key, err := domain.OwnerKey(owner)
	if err != nil {
		return nil, err
	}
	if members == nil {
		return nil, fmt.Errorf("save roster %s: %w: team must be a list", key, domain.ErrValidation)
	}

	unlock := s.locks.lock(key)
	defer unlock()

	t, err := s.repo.Save(ctx, key, members)
	if err != nil {
		metrics.RosterWritesTotal.WithLabelValues(s.backend, "error").Inc()
		return nil, fmt.Errorf("save roster %s: %w", key, err)
	}
	metrics.RosterWritesTotal.WithLabelValues(s.backend, "ok").Inc()

	s.log.Info().
		Str("owner", key).
		Int("members", len(t.Members)).
		Int64("version", t.Version).
		Msg("roster saved")
	return t, nil
}

// Delete clears the owner's roster. Clearing an already empty roster succeeds.
func (s *RosterService) Delete(ctx context.Context, owner string) error {
	key, err := domain.OwnerKey(owner)
	if err != nil {
		return err
	}

	unlock := s.locks.lock(key)
	defer unlock()

	if err := s.repo.Delete(ctx, key); err != nil {
		metrics.RosterWritesTotal.WithLabelValues(s.backend, "error").Inc()
		return fmt.Errorf("delete roster %s: %w", key, err)
	}
	metrics.RosterWritesTotal.WithLabelValues(s.backend, "ok").Inc()
	s.log.Info().Str("owner", key).Msg("roster deleted")
	return nil
}

// List returns every roster together with accounts booked on more than one.
func (s *RosterService) List(ctx context.Context) (*ports.TeamsListing, error) {
	teams, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rosters: %w", err)
	}

	conflicts := domain.FindConflicts(teams)
	metrics.RosterConflicts.Set(float64(len(conflicts)))
	if len(conflicts) > 0 {
		s.log.Warn().Int("conflicts", len(conflicts)).Msg("players booked on multiple teams")
	}
	return &ports.TeamsListing{Teams: teams, Conflicts: conflicts}, nil
}

// keyedMutex hands out one mutex per owner key.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
