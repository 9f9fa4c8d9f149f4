package pricing

import (
	"math"

	"github.com/Zoomchatlandingpage/brasil-cultural-agency/internal/profile"
)

// LineItems are the four price components of a package, in whole USD.
type LineItems struct {
	Flight      int
	Hotel       int
	Experiences int
	Transfers   int
}

// Base rates per profile, tuned to the reference budget. These are
// configuration constants, not derived values.
var baseRates = map[profile.Label]LineItems{
	profile.Cultural:  {Flight: 750, Hotel: 140, Experiences: 600, Transfers: 120},
	profile.Adventure: {Flight: 680, Hotel: 120, Experiences: 550, Transfers: 100},
	profile.Spiritual: {Flight: 720, Hotel: 160, Experiences: 400, Transfers: 80},
	profile.Luxury:    {Flight: 1200, Hotel: 350, Experiences: 800, Transfers: 200},
}

const (
	referenceBudget = 2500
	minScale        = 0.7
	maxScale        = 1.3
)

// scaleFactor maps a budget to the line-item multiplier, clamped so a
// package never scales more than 30% in either direction.
func scaleFactor(budget int) float64 {
	f := float64(budget) / referenceBudget
	return math.Min(maxScale, math.Max(minScale, f))
}

// scaledRates returns the profile's base rates scaled for budget, each
// line item rounded to the nearest whole dollar. Unknown profiles fall
// back to the cultural table.
func scaledRates(label profile.Label, budget int) LineItems {
	rates, ok := baseRates[label]
	if !ok {
		rates = baseRates[profile.Cultural]
	}
	f := scaleFactor(budget)
	return LineItems{
		Flight:      int(math.Round(float64(rates.Flight) * f)),
		Hotel:       int(math.Round(float64(rates.Hotel) * f)),
		Experiences: int(math.Round(float64(rates.Experiences) * f)),
		Transfers:   int(math.Round(float64(rates.Transfers) * f)),
	}
}
