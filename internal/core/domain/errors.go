package domain

import (
	"errors"
	"fmt"
)

var (
	ErrTransport            = errors.New("store or stats provider unreachable")
	ErrNotFound             = errors.New("not found")
	ErrValidation           = errors.New("validation failed")
	ErrRestrictedRole       = errors.New("role cannot be placed on a team")
	ErrAlreadyOnAnotherTeam = errors.New("player already on another team")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrForbidden            = errors.New("access forbidden")
	ErrSettling             = errors.New("initial load still settling")
	ErrPartialMove          = errors.New("move interrupted after removal from source team")
	ErrStatsAPI             = errors.New("stats provider returned an error")
)

// AlreadyOnAnotherTeamError names the owner currently holding the player.
type AlreadyOnAnotherTeamError struct {
	AccountID int64
	Owner     string
}

func (e *AlreadyOnAnotherTeamError) Error() string {
	return fmt.Sprintf("player %d already on the team of %s", e.AccountID, e.Owner)
}

func (e *AlreadyOnAnotherTeamError) Is(target error) bool {
	return target == ErrAlreadyOnAnotherTeam
}

// PartialMoveError reports a move whose removal step was persisted but whose
// insertion step failed, leaving the player on neither roster.
type PartialMoveError struct {
	OperationID string
	AccountID   int64
	From        string
	To          string
	Err         error
}

func (e *PartialMoveError) Error() string {
	return fmt.Sprintf("move %s: player %d removed from %s but not added to %s: %v",
		e.OperationID, e.AccountID, e.From, e.To, e.Err)
}

func (e *PartialMoveError) Is(target error) bool {
	return target == ErrPartialMove
}

func (e *PartialMoveError) Unwrap() error {
	return e.Err
}
