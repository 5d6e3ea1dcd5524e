package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stratsim/internal/compound"
)

type StatsHandler struct{}

func (h *StatsHandler) Register(r *gin.Engine) {
	r.GET("/api/v1/stats", h.derivedStats)
}

// @Summary Derived strategy statistics
// @Description Expectancy, period return, and Kelly sizing for a win rate and reward ratio.
// @Tags stats
// @Param win_probability_pct query number true "Win probability in percent (0-100)"
// @Param reward_to_risk query number true "Reward to risk ratio (> 0)"
// @Param opportunities_per_period query int false "Opportunities per period (default 1)"
// @Param risk_pct query number false "User risk percent, compared against Kelly"
// @Success 200 {object} map[string]any
// @Router /api/v1/stats [get]
func (h *StatsHandler) derivedStats(c *gin.Context) {
	winPct := floatQuery(c, "win_probability_pct", -1)
	rewardToRisk := floatQuery(c, "reward_to_risk", 0)
	opportunities := intQuery(c, "opportunities_per_period", 1)

	stats, err := compound.ComputeDerivedStats(winPct, rewardToRisk, opportunities)
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	data := gin.H{
		"expectancy_r":    stats.ExpectancyR,
		"period_return_r": stats.PeriodReturnR,
		"kelly_fraction":  stats.KellyFraction,
		"kelly_pct":       stats.KellyPct,
		"half_kelly_pct":  stats.HalfKellyPct,
	}
	if riskPct := floatQueryPtr(c, "risk_pct"); riskPct != nil {
		comparison := "below_kelly"
		if *riskPct >= stats.KellyPct {
			comparison = "above_kelly"
		}
		data["risk_pct"] = *riskPct
		data["risk_vs_kelly"] = comparison
	}
	Ok(c, data, nil)
}
