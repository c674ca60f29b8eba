package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/infernalwolves/clan-dashboard/internal/core/domain"
	"github.com/infernalwolves/clan-dashboard/internal/core/ports"
)

// ExportService renders rosters as plain-text sheets for sharing outside the dashboard.
type ExportService struct {
	rosters ports.RosterService
	clan    ports.ClanService
	now     func() time.Time
}

func NewExportService(rosters ports.RosterService, clan ports.ClanService) *ExportService {
	return &ExportService{rosters: rosters, clan: clan, now: time.Now}
}

// ExportTeam fails with ErrNotFound when the roster is empty.
func (s *ExportService) ExportTeam(ctx context.Context, owner string) (*ports.TeamExport, error) {
	team, err := s.rosters.Get(ctx, owner)
	if err != nil {
		return nil, err
	}
	if len(team.Members) == 0 {
		return nil, fmt.Errorf("export %s: %w: team is empty", team.Owner, domain.ErrNotFound)
	}

	ids := make([]int64, len(team.Members))
	for i, m := range team.Members {
		ids[i] = m.AccountID
	}
	profiles, err := s.clan.Profiles(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", team.Owner, err)
	}

	now := s.now()
	var b strings.Builder
	fmt.Fprintf(&b, "=== EQUIPO DE BATALLA DE %s ===\n\n", strings.ToUpper(team.Owner))
	fmt.Fprintf(&b, "Fecha: %s\n", now.Format("02/01/2006 15:04:05"))
	fmt.Fprintf(&b, "Total de jugadores: %d\n\n", len(team.Members))
	b.WriteString("JUGADORES:\n")
	b.WriteString(strings.Repeat("-", 50) + "\n")

	for i, m := range team.Members {
		name := m.AccountName
		var stats *domain.PlayerStatistics
		if p := profiles[m.AccountID]; p != nil {
			if p.Nickname != "" {
				name = p.Nickname
			}
			stats = p.Statistics.All
		}
		if name == "" {
			name = "Desconocido"
		}

		var battles int64
		if stats != nil {
			battles = stats.Battles
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, name)
		fmt.Fprintf(&b, "   Batallas: %d\n", battles)
		fmt.Fprintf(&b, "   %% Victorias: %.2f%%\n", stats.WinRate()*100)
		fmt.Fprintf(&b, "   Daño Promedio: %d\n\n", int64(math.Floor(stats.AverageDamage()+0.5)))
	}

	return &ports.TeamExport{
		Filename: fmt.Sprintf("equipo_%s_%s.txt", team.Owner, now.Format("2006-01-02")),
		Body:     b.String(),
	}, nil
}
