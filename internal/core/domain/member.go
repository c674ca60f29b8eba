package domain

import (
	"sort"
	"strings"
)

// Member is a clan member as listed in the clan roster.
type Member struct {
	AccountID   int64   `json:"account_id" bson:"account_id" validate:"required,gt=0"`
	AccountName string  `json:"account_name" bson:"account_name"`
	Role        RoleTag `json:"role" bson:"role"`
	JoinedAt    int64   `json:"joined_at,omitempty" bson:"joined_at,omitempty"`
}

// MemberSort selects the ordering applied by SortMembers.
type MemberSort string

const (
	SortByRole    MemberSort = "role"
	SortByBattles MemberSort = "battles"
	SortByWinRate MemberSort = "winrate"
	SortByName    MemberSort = "name"
	SortByScore   MemberSort = "score"
)

// MemberView pairs a member with whatever statistics were fetched for it.
type MemberView struct {
	Member
	Nickname string            `json:"nickname,omitempty"`
	Stats    *PlayerStatistics `json:"statistics,omitempty"`
	Score    CompositeScore    `json:"score"`
}

// DisplayName prefers the provider nickname over the roster name.
func (v MemberView) DisplayName() string {
	if v.Nickname != "" {
		return v.Nickname
	}
	return v.AccountName
}

// SortMembers orders views in place. Ties keep their relative order.
func SortMembers(views []MemberView, by MemberSort) {
	var less func(a, b MemberView) bool
	switch by {
	case SortByBattles:
		less = func(a, b MemberView) bool { return a.Stats.battleCount() > b.Stats.battleCount() }
	case SortByWinRate:
		less = func(a, b MemberView) bool { return a.Stats.WinRate() > b.Stats.WinRate() }
	case SortByName:
		less = func(a, b MemberView) bool {
			return strings.ToLower(a.DisplayName()) < strings.ToLower(b.DisplayName())
		}
	case SortByScore:
		less = func(a, b MemberView) bool { return a.Score.Value > b.Score.Value }
	default:
		less = func(a, b MemberView) bool { return a.Role.Rank() < b.Role.Rank() }
	}
	sort.SliceStable(views, func(i, j int) bool { return less(views[i], views[j]) })
}

// FilterMembers keeps views matching role (empty or "all" matches every role)
// and whose display name contains search, case-insensitively.
func FilterMembers(views []MemberView, role RoleTag, search string) []MemberView {
	search = strings.ToLower(strings.TrimSpace(search))
	out := make([]MemberView, 0, len(views))
	for _, v := range views {
		if role != "" && role != "all" && v.Role != role {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(v.DisplayName()), search) {
			continue
		}
		out = append(out, v)
	}
	return out
}
