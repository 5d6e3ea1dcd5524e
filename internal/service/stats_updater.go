package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"stratsim/internal/compound"
	"stratsim/internal/repository"
)

// StatsUpdater periodically writes derived edge stats into strategies.stats so
// list views can display them without recomputing per request.
type StatsUpdater struct {
	Repo     repository.Repository
	Logger   *zap.Logger
	Interval time.Duration
}

func (u *StatsUpdater) Run(ctx context.Context) error {
	if u == nil || u.Repo == nil {
		return nil
	}
	interval := u.Interval
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	// First run immediately so stats are available shortly after boot.
	_ = u.UpdateOnce(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			_ = u.UpdateOnce(ctx)
		}
	}
}

func (u *StatsUpdater) UpdateOnce(ctx context.Context) error {
	if u == nil || u.Repo == nil {
		return nil
	}
	now := time.Now().UTC()

	strategies, err := u.Repo.ListStrategies(ctx)
	if err != nil {
		if u.Logger != nil {
			u.Logger.Warn("list strategies failed", zap.Error(err))
		}
		return err
	}
	for _, strat := range strategies {
		name := strings.TrimSpace(strat.Name)
		if name == "" {
			continue
		}
		params, err := ParseStrategyParams(strat.Params)
		if err != nil {
			if u.Logger != nil {
				u.Logger.Warn("strategy params unreadable", zap.String("strategy", name), zap.Error(err))
			}
			continue
		}
		derived, err := compound.ComputeDerivedStats(params.WinProbabilityPct, params.RewardToRisk, params.OpportunitiesPerPeriod)
		if err != nil {
			if u.Logger != nil {
				u.Logger.Warn("derived stats failed", zap.String("strategy", name), zap.Error(err))
			}
			continue
		}

		riskVsKelly := "below_kelly"
		if params.RiskPct >= derived.KellyPct {
			riskVsKelly = "above_kelly"
		}
		stats := map[string]any{
			"updated_at":      now.Format(time.RFC3339),
			"expectancy_r":    derived.ExpectancyR,
			"period_return_r": derived.PeriodReturnR,
			"kelly_pct":       derived.KellyPct,
			"half_kelly_pct":  derived.HalfKellyPct,
			"risk_pct":        params.RiskPct,
			"risk_vs_kelly":   riskVsKelly,
		}
		raw, _ := json.Marshal(stats)
		if err := u.Repo.UpdateStrategyStats(ctx, name, raw); err != nil {
			if u.Logger != nil {
				u.Logger.Warn("update strategy stats failed", zap.String("strategy", name), zap.Error(err))
			}
		}
	}
	return nil
}
