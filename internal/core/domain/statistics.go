package domain

// PlayerStatistics holds the aggregate battle counters of one game mode.
// A nil pointer means the player has no battles in that mode.
type PlayerStatistics struct {
	Battles              int64 `json:"battles"`
	Wins                 int64 `json:"wins"`
	Losses               int64 `json:"losses"`
	Draws                int64 `json:"draws"`
	DamageDealt          int64 `json:"damage_dealt"`
	Frags                int64 `json:"frags"`
	Spotted              int64 `json:"spotted"`
	XP                   int64 `json:"xp"`
	SurvivedBattles      int64 `json:"survived_battles"`
	Hits                 int64 `json:"hits"`
	Shots                int64 `json:"shots"`
	DroppedCapturePoints int64 `json:"dropped_capture_points"`
	MaxXP                int64 `json:"max_xp"`
	MaxFrags             int64 `json:"max_frags"`
	MaxDamage            int64 `json:"max_damage"`
	LastBattleTime       int64 `json:"last_battle_time,omitempty"`
}

// Mode names a statistics aggregate that can be scored on its own.
type Mode string

const (
	ModeOverall    Mode = "overall"
	ModeRandom     Mode = "random"
	ModeStronghold Mode = "stronghold"
	ModeCampaign   Mode = "campaign"
)

// Modes lists every scorable mode in display order.
func Modes() []Mode {
	return []Mode{ModeOverall, ModeRandom, ModeStronghold, ModeCampaign}
}

// ModeStatistics is the per-mode block of an account as delivered by the provider.
type ModeStatistics struct {
	All                *PlayerStatistics `json:"all,omitempty"`
	Random             *PlayerStatistics `json:"random,omitempty"`
	StrongholdSkirmish *PlayerStatistics `json:"stronghold_skirmish,omitempty"`
	StrongholdDefense  *PlayerStatistics `json:"stronghold_defense,omitempty"`
	GlobalMap          *PlayerStatistics `json:"globalmap,omitempty"`
}

// For returns the aggregate for mode. Stronghold combines skirmish and defense.
func (m ModeStatistics) For(mode Mode) *PlayerStatistics {
	switch mode {
	case ModeOverall:
		return m.All
	case ModeRandom:
		return m.Random
	case ModeStronghold:
		return CombineStatistics(m.StrongholdSkirmish, m.StrongholdDefense)
	case ModeCampaign:
		return m.GlobalMap
	}
	return nil
}

// CombineStatistics sums the counters of a and b and keeps the larger of each
// max_* field and of last_battle_time. Nil inputs are treated as empty; the
// result is nil only when both are nil.
func CombineStatistics(a, b *PlayerStatistics) *PlayerStatistics {
	if a == nil && b == nil {
		return nil
	}
	if a == nil {
		a = &PlayerStatistics{}
	}
	if b == nil {
		b = &PlayerStatistics{}
	}
	return &PlayerStatistics{
		Battles:              a.Battles + b.Battles,
		Wins:                 a.Wins + b.Wins,
		Losses:               a.Losses + b.Losses,
		Draws:                a.Draws + b.Draws,
		DamageDealt:          a.DamageDealt + b.DamageDealt,
		Frags:                a.Frags + b.Frags,
		Spotted:              a.Spotted + b.Spotted,
		XP:                   a.XP + b.XP,
		SurvivedBattles:      a.SurvivedBattles + b.SurvivedBattles,
		Hits:                 a.Hits + b.Hits,
		Shots:                a.Shots + b.Shots,
		DroppedCapturePoints: a.DroppedCapturePoints + b.DroppedCapturePoints,
		MaxXP:                max(a.MaxXP, b.MaxXP),
		MaxFrags:             max(a.MaxFrags, b.MaxFrags),
		MaxDamage:            max(a.MaxDamage, b.MaxDamage),
		LastBattleTime:       max(a.LastBattleTime, b.LastBattleTime),
	}
}

func (s *PlayerStatistics) battleCount() int64 {
	if s == nil {
		return 0
	}
	return s.Battles
}

// WinRate is wins/battles in [0,1]; zero when there are no battles.
func (s *PlayerStatistics) WinRate() float64 {
	if s.battleCount() == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Battles)
}

// AverageDamage is damage per battle; zero when there are no battles.
func (s *PlayerStatistics) AverageDamage() float64 {
	if s.battleCount() == 0 {
		return 0
	}
	return float64(s.DamageDealt) / float64(s.Battles)
}
