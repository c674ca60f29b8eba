package service

import (
	"context"
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"

	"github.com/infernalwolves/clan-dashboard/internal/core/domain"
	"github.com/infernalwolves/clan-dashboard/internal/core/ports"
)

// MutationResult is the authoritative view reloaded after a roster mutation.
type MutationResult struct {
	Teams domain.RosterCollection
	// Changed is false when the mutation was a no-op and nothing was written.
	Changed bool
	// Degraded is true when at least one write only reached the local fallback.
	Degraded bool
	// Seq is the stamp taken right before the reload fetch started, zero when
	// no stamp source is set.
	Seq uint64
}

// TeamService applies the team reconciliation rules against a cached snapshot
// of every roster and writes changes through the roster store. Every write is
// followed by a full reload so callers never treat their own optimistic copy
// as final.
type TeamService struct {
	store ports.RosterStore
	stamp func() uint64
	log   zerolog.Logger
}

func NewTeamService(store ports.RosterStore, log zerolog.Logger) *TeamService {
	return &TeamService{store: store, log: log}
}

// StampReloads makes every post-write reload take a sequence number from
// stamp before fetching, so its result can be ordered against polls.
func (s *TeamService) StampReloads(stamp func() uint64) {
	s.stamp = stamp
}

// Snapshot loads every roster.
func (s *TeamService) Snapshot(ctx context.Context) (domain.RosterCollection, error) {
	return s.store.GetAll(ctx)
}

// CanAdd evaluates the add rules for member against snapshot.
func (s *TeamService) CanAdd(member domain.Member, owner string, snapshot domain.RosterCollection) error {
	return domain.CanAdd(member.AccountID, member.Role, owner, snapshot)
}

// Add appends member to owner's roster. Adding a member already on that roster
// is a no-op.
func (s *TeamService) Add(ctx context.Context, snapshot domain.RosterCollection, owner string, member domain.Member) (*MutationResult, error) {
	if err := s.CanAdd(member, owner, snapshot); err != nil {
		s.log.Info().Err(err).Int64("account_id", member.AccountID).Str("owner", owner).Msg("add rejected")
		return nil, err
	}

	current := snapshot.Roster(owner)
	if current.Contains(member.AccountID) {
		return &MutationResult{Teams: snapshot}, nil
	}

	status, err := s.store.Set(ctx, owner, current.With(member))
	if err != nil {
		return nil, fmt.Errorf("add %d to %s: %w", member.AccountID, owner, err)
	}
	s.log.Info().Int64("account_id", member.AccountID).Str("owner", owner).Stringer("write", status).Msg("player added")

	return s.reload(ctx, snapshot, status == domain.WriteDegraded)
}

// Remove drops accountID from owner's roster. Removing a non-member is a no-op.
func (s *TeamService) Remove(ctx context.Context, snapshot domain.RosterCollection, owner string, accountID int64) (*MutationResult, error) {
	current := snapshot.Roster(owner)
	if !current.Contains(accountID) {
		return &MutationResult{Teams: snapshot}, nil
	}

	status, err := s.store.Set(ctx, owner, current.Without(accountID))
	if err != nil {
		return nil, fmt.Errorf("remove %d from %s: %w", accountID, owner, err)
	}
	s.log.Info().Int64("account_id", accountID).Str("owner", owner).Stringer("write", status).Msg("player removed")

	return s.reload(ctx, snapshot, status == domain.WriteDegraded)
}

// Clear replaces owner's roster with an empty one.
func (s *TeamService) Clear(ctx context.Context, snapshot domain.RosterCollection, owner string) (*MutationResult, error) {
	status, err := s.store.Set(ctx, owner, []domain.Member{})
	if err != nil {
		return nil, fmt.Errorf("clear %s: %w", owner, err)
	}
	s.log.Info().Str("owner", owner).Stringer("write", status).Msg("team cleared")

	return s.reload(ctx, snapshot, status == domain.WriteDegraded)
}

// Move reassigns accountID from one roster to another as two sequential
// writes. A failure of the first write leaves both rosters untouched. A
// failure of the second leaves the player on neither roster and is reported
// as a *domain.PartialMoveError carrying an operation id for manual repair.
func (s *TeamService) Move(ctx context.Context, snapshot domain.RosterCollection, accountID int64, from, to string) (*MutationResult, error) {
	fromKey, err := domain.OwnerKey(from)
	if err != nil {
		return nil, err
	}
	toKey, err := domain.OwnerKey(to)
	if err != nil {
		return nil, err
	}
	if fromKey == toKey {
		return &MutationResult{Teams: snapshot}, nil
	}

	source := snapshot.Roster(fromKey)
	member, ok := source.Find(accountID)
	if !ok {
		return nil, fmt.Errorf("move %d: %w on team %s", accountID, domain.ErrNotFound, fromKey)
	}

	opID, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("move %d: operation id: %w", accountID, err)
	}
	log := s.log.With().Str("operation_id", opID).Int64("account_id", accountID).Str("from", fromKey).Str("to", toKey).Logger()

	first, err := s.store.Set(ctx, fromKey, source.Without(accountID))
	if err != nil {
		log.Error().Err(err).Msg("move failed before any change")
		return nil, fmt.Errorf("move %d: remove from %s: %w", accountID, fromKey, err)
	}

	second, err := s.store.Set(ctx, toKey, snapshot.Roster(toKey).With(member))
	if err != nil {
		log.Error().Err(err).Msg("move interrupted, player is on no team")
		return nil, &domain.PartialMoveError{
			OperationID: opID,
			AccountID:   accountID,
			From:        fromKey,
			To:          toKey,
			Err:         err,
		}
	}
	log.Info().Msg("player moved")

	return s.reload(ctx, snapshot, first == domain.WriteDegraded || second == domain.WriteDegraded)
}

func (s *TeamService) reload(ctx context.Context, fallback domain.RosterCollection, degraded bool) (*MutationResult, error) {
	var seq uint64
	if s.stamp != nil {
		seq = s.stamp()
	}
	teams, err := s.store.GetAll(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("reload after write failed, keeping previous snapshot")
		teams = fallback
	}
	return &MutationResult{Teams: teams, Changed: true, Degraded: degraded, Seq: seq}, nil
}
