package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/infernalwolves/clan-dashboard/internal/core/domain"
	"github.com/infernalwolves/clan-dashboard/internal/core/service"
	"github.com/infernalwolves/clan-dashboard/internal/poller"
)

const DefaultSettleDelay = 1500 * time.Millisecond

// Teams applies roster mutations against a snapshot of every roster.
type Teams interface {
	Add(ctx context.Context, snapshot domain.RosterCollection, owner string, member domain.Member) (*service.MutationResult, error)
	Remove(ctx context.Context, snapshot domain.RosterCollection, owner string, accountID int64) (*service.MutationResult, error)
	Clear(ctx context.Context, snapshot domain.RosterCollection, owner string) (*service.MutationResult, error)
	Move(ctx context.Context, snapshot domain.RosterCollection, accountID int64, from, to string) (*service.MutationResult, error)
}

// View is the shared, refreshed picture of every roster.
type View interface {
	Refresh(ctx context.Context) (bool, error)
	Current() poller.Snapshot
	Begin() uint64
	ApplyAt(seq uint64, teams domain.RosterCollection) bool
}

// Editor performs the signed-in user's roster edits. Edits are refused until
// the first load has settled, so a user never acts on a half-loaded view.
type Editor struct {
	session Session
	teams   Teams
	view    View
	settle  time.Duration
	log     zerolog.Logger
	now     func() time.Time

	mu      sync.Mutex
	readyAt time.Time
}

func NewEditor(s Session, teams Teams, view View, settle time.Duration, log zerolog.Logger) *Editor {
	if settle < 0 {
		settle = DefaultSettleDelay
	}
	return &Editor{
		session: s,
		teams:   teams,
		view:    view,
		settle:  settle,
		log:     log.With().Str("user", s.User.Username).Logger(),
		now:     time.Now,
	}
}

// Load fetches every roster and arms the settle gate.
func (e *Editor) Load(ctx context.Context) error {
	if _, err := e.view.Refresh(ctx); err != nil {
		return fmt.Errorf("initial roster load: %w", err)
	}
	e.mu.Lock()
	e.readyAt = e.now().Add(e.settle)
	e.mu.Unlock()
	return nil
}

// Ready reports whether edits are accepted.
func (e *Editor) Ready() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.readyAt.IsZero() && !e.now().Before(e.readyAt)
}

// WaitReady blocks until the settle gate opens. It fails if Load has not run.
func (e *Editor) WaitReady(ctx context.Context) error {
	e.mu.Lock()
	readyAt := e.readyAt
	e.mu.Unlock()
	if readyAt.IsZero() {
		return fmt.Errorf("%w: rosters not loaded", domain.ErrSettling)
	}

	wait := readyAt.Sub(e.now())
	if wait <= 0 {
		return nil
	}
	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *Editor) Session() Session { return e.session }

// Add puts member on the user's own roster.
func (e *Editor) Add(ctx context.Context, member domain.Member) (*service.MutationResult, error) {
	owner, err := e.session.OwnerKey()
	if err != nil {
		return nil, err
	}
	return e.AddTo(ctx, owner, member)
}

// AddTo puts member on owner's roster.
func (e *Editor) AddTo(ctx context.Context, owner string, member domain.Member) (*service.MutationResult, error) {
	if err := e.guard(owner); err != nil {
		return nil, err
	}
	return e.publish(e.teams.Add(ctx, e.view.Current().Teams, owner, member))
}

func (e *Editor) Remove(ctx context.Context, owner string, accountID int64) (*service.MutationResult, error) {
	if err := e.guard(owner); err != nil {
		return nil, err
	}
	return e.publish(e.teams.Remove(ctx, e.view.Current().Teams, owner, accountID))
}

func (e *Editor) Clear(ctx context.Context, owner string) (*service.MutationResult, error) {
	if err := e.guard(owner); err != nil {
		return nil, err
	}
	return e.publish(e.teams.Clear(ctx, e.view.Current().Teams, owner))
}

// Move reassigns a player between two rosters. Only admins may move players.
func (e *Editor) Move(ctx context.Context, accountID int64, from, to string) (*service.MutationResult, error) {
	if !e.Ready() {
		return nil, domain.ErrSettling
	}
	if !e.session.User.IsAdmin() {
		return nil, fmt.Errorf("%w: only admins move players between teams", domain.ErrForbidden)
	}
	return e.publish(e.teams.Move(ctx, e.view.Current().Teams, accountID, from, to))
}

func (e *Editor) guard(owner string) error {
	if !e.Ready() {
		return domain.ErrSettling
	}
	if !e.session.CanEdit(owner) {
		return fmt.Errorf("%w: %s may not edit the team of %s", domain.ErrForbidden, e.session.User.Username, owner)
	}
	return nil
}

func (e *Editor) publish(res *service.MutationResult, err error) (*service.MutationResult, error) {
	if err != nil {
		return nil, err
	}
	if res.Changed {
		seq := res.Seq
		if seq == 0 {
			seq = e.view.Begin()
		}
		e.view.ApplyAt(seq, res.Teams)
	}
	if res.Degraded {
		e.log.Warn().Msg("change saved locally only, roster store unreachable")
	}
	return res, nil
}
