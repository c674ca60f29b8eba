package wargaming

import "github.com/infernalwolves/clan-dashboard/internal/core/domain"

// envelope is the common response wrapper of every provider endpoint.
type envelope[T any] struct {
	Status string    `json:"status"`
	Error  *apiError `json:"error,omitempty"`
	Meta   meta      `json:"meta"`
	Data   T         `json:"data"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field"`
	Value   string `json:"value"`
}

type meta struct {
	Count     int `json:"count"`
	PageTotal int `json:"page_total"`
	Total     int `json:"total"`
	Page      int `json:"page"`
}

type clanInfo struct {
	ClanID       int64           `json:"clan_id"`
	Tag          string          `json:"tag"`
	Name         string          `json:"name"`
	Motto        string          `json:"motto"`
	Description  string          `json:"description"`
	Color        string          `json:"color"`
	LeaderID     int64           `json:"leader_id"`
	LeaderName   string          `json:"leader_name"`
	MembersCount int             `json:"members_count"`
	CreatedAt    int64           `json:"created_at"`
	UpdatedAt    int64           `json:"updated_at"`
	Members      []domain.Member `json:"members"`
}

func (c clanInfo) toDomain() *domain.Clan {
	return &domain.Clan{
		ClanID:       c.ClanID,
		Tag:          c.Tag,
		Name:         c.Name,
		Motto:        c.Motto,
		Description:  c.Description,
		Color:        c.Color,
		LeaderID:     c.LeaderID,
		LeaderName:   c.LeaderName,
		MembersCount: c.MembersCount,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
		Members:      c.Members,
	}
}

// Keys of the data maps are account, clan or tank ids rendered as strings.
// A null value means the provider knows nothing about that id.
type (
	clanInfoResponse     = envelope[map[string]*clanInfo]
	accountInfoResponse  = envelope[map[string]*domain.PlayerProfile]
	accountTanksResponse = envelope[map[string][]domain.TankRef]
	vehiclesResponse     = envelope[map[string]*domain.Vehicle]
)
