package compound

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DerivedStats summarizes a strategy's edge independent of any balance path.
type DerivedStats struct {
	ExpectancyR   float64 `json:"expectancy_r"`
	PeriodReturnR float64 `json:"period_return_r"`
	KellyFraction float64 `json:"kelly_fraction"`
	KellyPct      float64 `json:"kelly_pct"`
	HalfKellyPct  float64 `json:"half_kelly_pct"`
}

// Expectancy is the expected return per unit risked, in R multiples,
// rounded to 2 decimals. Positive means a favorable edge.
func Expectancy(winProbabilityPct, rewardToRisk float64) float64 {
	win := winProbabilityPct / 100
	return roundTo(win*rewardToRisk-(1-win), 2)
}

// KellyFraction is the growth-optimal fraction of bankroll to risk per trade,
// rounded to 4 decimals. Negative values are meaningful (no edge) but are
// clamped to zero for display. rewardToRisk must be > 0.
func KellyFraction(winProbabilityPct, rewardToRisk float64) float64 {
	win := winProbabilityPct / 100
	loss := 1 - win
	return roundTo(win-loss/rewardToRisk, 4)
}

// ComputeDerivedStats validates the edge inputs and derives the summary
// statistics shared by the projector and the API surface.
func ComputeDerivedStats(winProbabilityPct, rewardToRisk float64, opportunitiesPerPeriod int) (DerivedStats, error) {
	if winProbabilityPct < 0 || winProbabilityPct > 100 {
		return DerivedStats{}, fmt.Errorf("win_probability_pct must be within [0,100], got %v", winProbabilityPct)
	}
	if rewardToRisk <= 0 {
		return DerivedStats{}, fmt.Errorf("reward_to_risk must be > 0, got %v", rewardToRisk)
	}
	if opportunitiesPerPeriod < 1 {
		return DerivedStats{}, fmt.Errorf("opportunities_per_period must be >= 1, got %d", opportunitiesPerPeriod)
	}
	expectancy := Expectancy(winProbabilityPct, rewardToRisk)
	kelly := KellyFraction(winProbabilityPct, rewardToRisk)
	kellyPct := kelly * 100
	if kellyPct < 0 {
		kellyPct = 0
	}
	return DerivedStats{
		ExpectancyR:   expectancy,
		PeriodReturnR: roundTo(expectancy*float64(opportunitiesPerPeriod), 1),
		KellyFraction: kelly,
		KellyPct:      kellyPct,
		HalfKellyPct:  kellyPct / 2,
	}, nil
}

func roundTo(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}
