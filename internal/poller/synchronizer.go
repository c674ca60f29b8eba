// Package poller keeps a local view of every roster fresh by refetching on a
// fixed interval and whenever the user returns to the dashboard.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/infernalwolves/clan-dashboard/internal/core/domain"
)

const DefaultInterval = 10 * time.Second

// Source loads the authoritative roster collection.
type Source interface {
	GetAll(ctx context.Context) (domain.RosterCollection, error)
}

// Snapshot is one applied view of every roster.
type Snapshot struct {
	Teams     domain.RosterCollection
	Conflicts []domain.Conflict
	Seq       uint64
	FetchedAt time.Time
}

// Synchronizer refetches rosters and publishes snapshots. Fetches may overlap;
// each is stamped with a sequence number when it starts and a result is only
// applied if no later-started fetch has been applied already.
type Synchronizer struct {
	source   Source
	interval time.Duration
	focus    chan struct{}
	log      zerolog.Logger
	now      func() time.Time

	mu      sync.Mutex
	issued  uint64
	applied uint64
	current Snapshot
	subs    map[chan Snapshot]struct{}
}

func New(source Source, interval time.Duration, log zerolog.Logger) *Synchronizer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Synchronizer{
		source:   source,
		interval: interval,
		focus:    make(chan struct{}, 1),
		log:      log,
		now:      time.Now,
		current:  Snapshot{Teams: domain.RosterCollection{}},
		subs:     make(map[chan Snapshot]struct{}),
	}
}

// Run fetches once, then on every tick and every Focus call, until ctx is
// cancelled. It waits for in-flight fetches before returning.
func (s *Synchronizer) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	defer wg.Wait()

	spawn := func(trigger string) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Refresh(ctx); err != nil && ctx.Err() == nil {
				s.log.Warn().Err(err).Str("trigger", trigger).Msg("roster refresh failed")
			}
		}()
	}

	spawn("start")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			spawn("interval")
		case <-s.focus:
			spawn("focus")
		}
	}
}

// Focus requests an immediate refetch. Requests made while one is already
// pending are merged.
func (s *Synchronizer) Focus() {
	select {
	case s.focus <- struct{}{}:
	default:
	}
}

// Refresh fetches synchronously and reports whether the result was applied.
func (s *Synchronizer) Refresh(ctx context.Context) (bool, error) {
	seq := s.nextSeq()
	teams, err := s.source.GetAll(ctx)
	if err != nil {
		return false, err
	}
	return s.apply(seq, teams), nil
}

// Begin reserves a sequence number for a fetch the caller performs itself.
// Take it right before the fetch starts and publish the result with ApplyAt.
func (s *Synchronizer) Begin() uint64 {
	return s.nextSeq()
}

// ApplyAt publishes a collection fetched under a sequence number from Begin.
// Like any fetch it is discarded if a later-started one was applied first.
func (s *Synchronizer) ApplyAt(seq uint64, teams domain.RosterCollection) bool {
	return s.apply(seq, teams)
}

// Current returns the last applied snapshot.
func (s *Synchronizer) Current() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Subscribe returns a channel that receives every applied snapshot and a
// function to stop receiving. A slow subscriber only sees the latest one.
func (s *Synchronizer) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)
	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subs[ch]; ok {
			delete(s.subs, ch)
			close(ch)
		}
	}
}

func (s *Synchronizer) nextSeq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

func (s *Synchronizer) apply(seq uint64, teams domain.RosterCollection) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq <= s.applied {
		s.log.Debug().Uint64("seq", seq).Uint64("applied", s.applied).Msg("discarding stale roster response")
		return false
	}

	merged := make(domain.RosterCollection, len(teams))
	for owner, t := range teams {
		held, ok := s.current.Teams[owner]
		if ok && t.Version > 0 && held.Version > t.Version {
			s.log.Debug().Str("owner", owner).Int64("held", held.Version).Int64("got", t.Version).Msg("keeping newer roster version")
			t = held
		}
		merged[owner] = t
	}

	s.applied = seq
	s.current = Snapshot{
		Teams:     merged,
		Conflicts: domain.FindConflicts(merged),
		Seq:       seq,
		FetchedAt: s.now(),
	}
	if len(s.current.Conflicts) > 0 {
		s.log.Warn().Int("conflicts", len(s.current.Conflicts)).Msg("players booked on multiple teams")
	}

	for ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- s.current
	}
	return true
}
