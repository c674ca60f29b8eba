package handler

import (
	"github.com/infernalwolves/clan-dashboard/internal/core/domain"
)

type membersQuery struct {
	Sort   string `query:"sort" validate:"omitempty,oneof=role battles winrate name score"`
	Role   string `query:"role" validate:"max=32"`
	Search string `query:"search" validate:"max=64"`
}

type clanResponse struct {
	Success bool                `json:"success"`
	Clan    domain.Clan         `json:"clan"`
	Members []domain.MemberView `json:"members"`
}

type membersResponse struct {
	Success bool                `json:"success"`
	Members []domain.MemberView `json:"members"`
}

type playerResponse struct {
	Success bool                                  `json:"success"`
	Member  domain.Member                         `json:"member"`
	Profile *domain.PlayerProfile                 `json:"profile"`
	Scores  map[domain.Mode]domain.CompositeScore `json:"scores"`
}

type tier10Response struct {
	Success bool          `json:"success"`
	Counts  map[int64]int `json:"counts"`
}
