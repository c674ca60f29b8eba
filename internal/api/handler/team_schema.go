package handler

import "github.com/infernalwolves/clan-dashboard/internal/core/domain"

type saveTeamRequest struct {
	Team []domain.Member `json:"team" validate:"required,dive"`
}

type teamResponse struct {
	Success bool            `json:"success"`
	Team    []domain.Member `json:"team"`
	Version int64           `json:"version"`
}

type ackResponse struct {
	Success bool  `json:"success"`
	Version int64 `json:"version,omitempty"`
}

type teamsResponse struct {
	Success   bool                       `json:"success"`
	Teams     map[string][]domain.Member `json:"teams"`
	Versions  map[string]int64           `json:"versions"`
	Conflicts []domain.Conflict          `json:"conflicts"`
}

func toTeamsResponse(teams domain.RosterCollection, conflicts []domain.Conflict) teamsResponse {
	resp := teamsResponse{
		Success:   true,
		Teams:     make(map[string][]domain.Member, len(teams)),
		Versions:  make(map[string]int64, len(teams)),
		Conflicts: conflicts,
	}
	for owner, t := range teams {
		members := t.Members
		if members == nil {
			members = []domain.Member{}
		}
		resp.Teams[owner] = members
		resp.Versions[owner] = t.Version
	}
	if resp.Conflicts == nil {
		resp.Conflicts = []domain.Conflict{}
	}
	return resp
}
