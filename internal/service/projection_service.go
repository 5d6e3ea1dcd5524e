package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"stratsim/internal/compound"
	"stratsim/internal/models"
	"stratsim/internal/repository"
)

// ProjectionService runs the compounding projector and persists each run.
type ProjectionService struct {
	Repo   repository.Repository
	Logger *zap.Logger
	Limits compound.Limits
}

func (s *ProjectionService) limits() compound.Limits {
	if s == nil {
		return compound.DefaultLimits()
	}
	return s.Limits
}

// Preview validates and simulates without touching storage.
func (s *ProjectionService) Preview(ctx context.Context, params compound.StrategyParameters) (compound.Projection, error) {
	return compound.ProjectWithLimits(params, s.limits())
}

// Run simulates and persists the result as a ProjectionRun.
func (s *ProjectionService) Run(ctx context.Context, params compound.StrategyParameters, strategyID *uint64) (*models.ProjectionRun, compound.Projection, error) {
	proj, err := compound.ProjectWithLimits(params, s.limits())
	if err != nil {
		return nil, compound.Projection{}, err
	}

	paramsRaw, _ := json.Marshal(params)
	recordsRaw, _ := json.Marshal(proj.Records)
	run := &models.ProjectionRun{
		StrategyID:       strategyID,
		Params:           datatypes.JSON(paramsRaw),
		ExpectancyR:      decimal.NewFromFloat(proj.Stats.ExpectancyR),
		PeriodReturnR:    decimal.NewFromFloat(proj.Stats.PeriodReturnR),
		KellyPct:         decimal.NewFromFloat(proj.Stats.KellyPct),
		Outcome:          string(proj.Outcome),
		PeriodsSimulated: proj.PeriodsSimulated,
		FinalBalance:     proj.FinalBalance,
		Records:          datatypes.JSON(recordsRaw),
		CreatedAt:        time.Now().UTC(),
	}
	if s != nil && s.Repo != nil {
		if err := s.Repo.InsertProjectionRun(ctx, run); err != nil {
			return nil, proj, err
		}
	}
	if s != nil && s.Logger != nil {
		s.Logger.Info("projection run stored",
			zap.Uint64("run_id", run.ID),
			zap.String("outcome", run.Outcome),
			zap.Int("periods", run.PeriodsSimulated),
			zap.String("final_balance", proj.FinalBalance.StringFixed(0)),
		)
	}
	return run, proj, nil
}
