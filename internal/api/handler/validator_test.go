package handler

import (
	"errors"
	"strings"
	"testing"

	"github.com/infernalwolves/clan-dashboard/internal/core/domain"
)

func TestValidator_ReportsWireFieldPaths(t *testing.T) {
	v := NewValidator()

	err := v.Validate(saveTeamRequest{Team: []domain.Member{{AccountID: 1}, {AccountID: 0}}})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if !strings.Contains(err.Error(), "team[1].account_id") {
		t.Fatalf("expected wire path in message, got %q", err.Error())
	}
}

func TestValidator_QueryNames(t *testing.T) {
	v := NewValidator()

	err := v.Validate(membersQuery{Sort: "age"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if !strings.Contains(err.Error(), "sort must be one of") {
		t.Fatalf("unexpected message %q", err.Error())
	}

	if err := v.Validate(membersQuery{Sort: "score"}); err != nil {
		t.Fatalf("expected valid query, got %v", err)
	}
}

func TestValidator_MissingTeam(t *testing.T) {
	err := NewValidator().Validate(saveTeamRequest{})
	if err == nil || !strings.Contains(err.Error(), "team is required") {
		t.Fatalf("expected team is required, got %v", err)
	}
}
