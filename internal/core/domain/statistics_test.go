package domain

import "testing"

func TestCombineStatistics_SumsCountersAndKeepsMaxima(t *testing.T) {
	skirmish := &PlayerStatistics{Battles: 3, Wins: 1, DamageDealt: 300, MaxDamage: 250, MaxFrags: 2, LastBattleTime: 100}
	defense := &PlayerStatistics{Battles: 2, Wins: 2, DamageDealt: 200, MaxDamage: 180, MaxFrags: 4, LastBattleTime: 50}

	got := CombineStatistics(skirmish, defense)

	if got.Battles != 5 || got.Wins != 3 || got.DamageDealt != 500 {
		t.Fatalf("expected {5 3 500}, got {%d %d %d}", got.Battles, got.Wins, got.DamageDealt)
	}
	if got.MaxDamage != 250 || got.MaxFrags != 4 {
		t.Errorf("expected maxima 250/4, got %d/%d", got.MaxDamage, got.MaxFrags)
	}
	if got.LastBattleTime != 100 {
		t.Errorf("expected latest battle time 100, got %d", got.LastBattleTime)
	}
}

func TestCombineStatistics_NilInputs(t *testing.T) {
	if CombineStatistics(nil, nil) != nil {
		t.Fatalf("expected nil when both sides are absent")
	}
	one := &PlayerStatistics{Battles: 4, Wins: 2}
	got := CombineStatistics(nil, one)
	if got.Battles != 4 || got.Wins != 2 {
		t.Fatalf("expected copy of the present side, got %+v", got)
	}
}

func TestPlayerStatistics_Rates(t *testing.T) {
	var none *PlayerStatistics
	if none.WinRate() != 0 || none.AverageDamage() != 0 {
		t.Fatalf("expected zero rates for nil stats")
	}
	s := &PlayerStatistics{Battles: 4, Wins: 1, DamageDealt: 1000}
	if s.WinRate() != 0.25 {
		t.Errorf("expected 0.25, got %v", s.WinRate())
	}
	if s.AverageDamage() != 250 {
		t.Errorf("expected 250, got %v", s.AverageDamage())
	}
}
