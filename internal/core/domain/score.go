package domain

import "math"

// ColorBand is the named tier a composite score falls into.
type ColorBand string

const (
	BandPurple     ColorBand = "purple"
	BandDarkPurple ColorBand = "dark_purple"
	BandBlue       ColorBand = "blue"
	BandGreen      ColorBand = "green"
	BandYellow     ColorBand = "yellow"
	BandOrange     ColorBand = "orange"
	BandRed        ColorBand = "red"
	BandDarkRed    ColorBand = "dark_red"
)

// CompositeScore is the single derived performance rating of a player.
type CompositeScore struct {
	Value int       `json:"value"`
	Band  ColorBand `json:"color_band"`
	Label string    `json:"label"`
	Color string    `json:"color"`
}

type scoreBand struct {
	min   int
	band  ColorBand
	label string
	color string
}

// scoreBands is ordered highest first; the first band whose min is reached wins.
var scoreBands = []scoreBand{
	{2900, BandPurple, "Super Unicum", "#9b59b6"},
	{2450, BandDarkPurple, "Unicum", "#8e44ad"},
	{2000, BandBlue, "Muy Bueno", "#3498db"},
	{1600, BandGreen, "Bueno", "#2ecc71"},
	{1200, BandYellow, "Sobre Promedio", "#f1c40f"},
	{900, BandOrange, "Promedio", "#e67e22"},
	{450, BandRed, "Bajo Promedio", "#e74c3c"},
}

var lowestBand = scoreBand{0, BandDarkRed, "Principiante", "#c0392b"}

// Score weights. Changing any of them invalidates previously published ratings.
const (
	weightDamage  = 0.4
	weightFrags   = 250
	weightSpotted = 150
	weightDefense = 150
	weightWinRate = 10
)

// ComputeScore rates one aggregate. Absent stats or zero battles score 0.
func ComputeScore(s *PlayerStatistics) CompositeScore {
	if s.battleCount() == 0 {
		return BandFor(0)
	}
	battles := float64(s.Battles)
	raw := float64(s.DamageDealt)/battles*weightDamage +
		float64(s.Frags)/battles*weightFrags +
		float64(s.Spotted)/battles*weightSpotted +
		float64(s.DroppedCapturePoints)/battles*weightDefense +
		float64(s.Wins)/battles*100*weightWinRate

	return BandFor(int(math.Floor(raw + 0.5)))
}

// BandFor classifies an already computed score value.
func BandFor(value int) CompositeScore {
	b := lowestBand
	for _, candidate := range scoreBands {
		if value >= candidate.min {
			b = candidate
			break
		}
	}
	return CompositeScore{Value: value, Band: b.band, Label: b.label, Color: b.color}
}

// ScoreModes rates every mode of an account.
func ScoreModes(m ModeStatistics) map[Mode]CompositeScore {
	out := make(map[Mode]CompositeScore, len(Modes()))
	for _, mode := range Modes() {
		out[mode] = ComputeScore(m.For(mode))
	}
	return out
}
