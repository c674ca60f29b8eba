package domain

// Clan is the clan header plus its member roster.
type Clan struct {
	ClanID       int64    `json:"clan_id"`
	Tag          string   `json:"tag"`
	Name         string   `json:"name"`
	Motto        string   `json:"motto,omitempty"`
	Description  string   `json:"description,omitempty"`
	Color        string   `json:"color,omitempty"`
	LeaderID     int64    `json:"leader_id"`
	LeaderName   string   `json:"leader_name"`
	MembersCount int      `json:"members_count"`
	CreatedAt    int64    `json:"created_at"`
	UpdatedAt    int64    `json:"updated_at"`
	Members      []Member `json:"members"`
}

// PlayerProfile is the per-account payload of the account info endpoint.
type PlayerProfile struct {
	AccountID      int64          `json:"account_id"`
	Nickname       string         `json:"nickname"`
	GlobalRating   int64          `json:"global_rating"`
	CreatedAt      int64          `json:"created_at"`
	LastBattleTime int64          `json:"last_battle_time"`
	Statistics     ModeStatistics `json:"statistics"`
}

// TankRef is one vehicle entry of an account's garage.
type TankRef struct {
	TankID        int64 `json:"tank_id"`
	MarkOfMastery int   `json:"mark_of_mastery"`
	Battles       int64 `json:"battles"`
	Wins          int64 `json:"wins"`
}

// Vehicle is the encyclopedia entry of a tank.
type Vehicle struct {
	TankID int64  `json:"tank_id"`
	Name   string `json:"name"`
	Tier   int    `json:"tier"`
	Nation string `json:"nation"`
	Type   string `json:"type"`
}

// TopTier is the highest vehicle tier in the game.
const TopTier = 10
