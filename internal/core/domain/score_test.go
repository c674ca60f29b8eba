package domain

import "testing"

func TestComputeScore_NoBattles(t *testing.T) {
	for name, s := range map[string]*PlayerStatistics{
		"nil":          nil,
		"zero battles": {Battles: 0, Wins: 3, DamageDealt: 900},
	} {
		got := ComputeScore(s)
		if got.Value != 0 {
			t.Errorf("%s: expected 0, got %d", name, got.Value)
		}
		if got.Band != BandDarkRed || got.Label != "Principiante" {
			t.Errorf("%s: expected lowest band, got %+v", name, got)
		}
	}
}

func TestComputeScore_Formula(t *testing.T) {
	got := ComputeScore(&PlayerStatistics{
		DamageDealt:          1000,
		Frags:                1,
		Spotted:              2,
		DroppedCapturePoints: 0,
		Wins:                 6,
		Battles:              10,
	})

	if got.Value != 695 {
		t.Fatalf("expected 695, got %d", got.Value)
	}
	if got.Label != "Bajo Promedio" || got.Band != BandRed {
		t.Fatalf("expected Bajo Promedio, got %+v", got)
	}
}

func TestComputeScore_RoundsHalfUp(t *testing.T) {
	// raw scores 0.4, 1.0 and 0.5
	cases := []struct {
		stats PlayerStatistics
		want  int
	}{
		{PlayerStatistics{Battles: 1, DamageDealt: 1}, 0},
		{PlayerStatistics{Battles: 2, DamageDealt: 5}, 1},
		{PlayerStatistics{Battles: 4, DamageDealt: 5}, 1},
	}
	for _, tc := range cases {
		if got := ComputeScore(&tc.stats).Value; got != tc.want {
			t.Errorf("%+v: expected %d, got %d", tc.stats, tc.want, got)
		}
	}
}

func TestBandFor_Boundaries(t *testing.T) {
	cases := []struct {
		value int
		label string
		band  ColorBand
	}{
		{3500, "Super Unicum", BandPurple},
		{2900, "Super Unicum", BandPurple},
		{2899, "Unicum", BandDarkPurple},
		{2450, "Unicum", BandDarkPurple},
		{2000, "Muy Bueno", BandBlue},
		{1999, "Bueno", BandGreen},
		{1600, "Bueno", BandGreen},
		{1200, "Sobre Promedio", BandYellow},
		{900, "Promedio", BandOrange},
		{899, "Bajo Promedio", BandRed},
		{450, "Bajo Promedio", BandRed},
		{449, "Principiante", BandDarkRed},
		{0, "Principiante", BandDarkRed},
	}
	for _, tc := range cases {
		got := BandFor(tc.value)
		if got.Label != tc.label || got.Band != tc.band {
			t.Errorf("score %d: expected %s/%s, got %s/%s", tc.value, tc.label, tc.band, got.Label, got.Band)
		}
		if got.Color == "" {
			t.Errorf("score %d: missing color", tc.value)
		}
	}
}

func TestScoreModes_StrongholdUsesCombinedAggregate(t *testing.T) {
	m := ModeStatistics{
		All:                &PlayerStatistics{Battles: 10, Wins: 5, DamageDealt: 10000},
		StrongholdSkirmish: &PlayerStatistics{Battles: 3, Wins: 1, DamageDealt: 300},
		StrongholdDefense:  &PlayerStatistics{Battles: 2, Wins: 2, DamageDealt: 200},
	}

	scores := ScoreModes(m)

	want := ComputeScore(&PlayerStatistics{Battles: 5, Wins: 3, DamageDealt: 500})
	if scores[ModeStronghold] != want {
		t.Fatalf("expected %+v, got %+v", want, scores[ModeStronghold])
	}
	if scores[ModeCampaign].Value != 0 {
		t.Errorf("expected campaign without stats to score 0, got %d", scores[ModeCampaign].Value)
	}
	if len(scores) != len(Modes()) {
		t.Errorf("expected a score per mode, got %d", len(scores))
	}
}
