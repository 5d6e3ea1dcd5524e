package service

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"stratsim/internal/models"
	"stratsim/internal/repository"
)

// stubRepo is a test-only in-memory implementation of repository.Repository.
type stubRepo struct {
	runs       []models.ProjectionRun
	strategies map[string]*models.Strategy
	audits     []models.AuditLog
	nextRunID  uint64
	nextStrat  uint64
}

func newStubRepo() *stubRepo {
	return &stubRepo{strategies: map[string]*models.Strategy{}}
}

func (s *stubRepo) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error { return fn(nil) }

func (s *stubRepo) InsertProjectionRun(ctx context.Context, item *models.ProjectionRun) error {
	s.nextRunID++
	item.ID = s.nextRunID
	s.runs = append(s.runs, *item)
	return nil
}

func (s *stubRepo) GetProjectionRunByID(ctx context.Context, id uint64) (*models.ProjectionRun, error) {
	for i := range s.runs {
		if s.runs[i].ID == id {
			out := s.runs[i]
			return &out, nil
		}
	}
	return nil, nil
}

func (s *stubRepo) ListProjectionRuns(ctx context.Context, params repository.ListProjectionRunsParams) ([]models.ProjectionRun, error) {
	out := make([]models.ProjectionRun, 0, len(s.runs))
	for _, run := range s.runs {
		if params.StrategyID != nil && (run.StrategyID == nil || *run.StrategyID != *params.StrategyID) {
			continue
		}
		if params.Outcome != nil && run.Outcome != *params.Outcome {
			continue
		}
		out = append(out, run)
	}
	return out, nil
}

func (s *stubRepo) CountProjectionRuns(ctx context.Context, params repository.ListProjectionRunsParams) (int64, error) {
	items, _ := s.ListProjectionRuns(ctx, params)
	return int64(len(items)), nil
}

func (s *stubRepo) DeleteProjectionRunsBefore(ctx context.Context, before time.Time) (int64, error) {
	kept := s.runs[:0]
	var deleted int64
	for _, run := range s.runs {
		if run.CreatedAt.Before(before) {
			deleted++
			continue
		}
		kept = append(kept, run)
	}
	s.runs = kept
	return deleted, nil
}

func (s *stubRepo) UpsertStrategy(ctx context.Context, item *models.Strategy) error {
	name := strings.TrimSpace(item.Name)
	if name == "" {
		return nil
	}
	if existing, ok := s.strategies[name]; ok {
		existing.DisplayName = item.DisplayName
		existing.Description = item.Description
		existing.Enabled = item.Enabled
		existing.Params = item.Params
		existing.UpdatedAt = item.UpdatedAt
		return nil
	}
	s.nextStrat++
	item.ID = s.nextStrat
	cp := *item
	s.strategies[name] = &cp
	return nil
}

func (s *stubRepo) GetStrategyByName(ctx context.Context, name string) (*models.Strategy, error) {
	item, ok := s.strategies[strings.TrimSpace(name)]
	if !ok {
		return nil, nil
	}
	out := *item
	return &out, nil
}

func (s *stubRepo) ListStrategies(ctx context.Context) ([]models.Strategy, error) {
	out := make([]models.Strategy, 0, len(s.strategies))
	for _, item := range s.strategies {
		out = append(out, *item)
	}
	return out, nil
}

func (s *stubRepo) SetStrategyEnabled(ctx context.Context, name string, enabled bool) error {
	if item, ok := s.strategies[strings.TrimSpace(name)]; ok {
		item.Enabled = enabled
	}
	return nil
}

func (s *stubRepo) UpdateStrategyParams(ctx context.Context, name string, params []byte) error {
	if item, ok := s.strategies[strings.TrimSpace(name)]; ok {
		item.Params = params
	}
	return nil
}

func (s *stubRepo) UpdateStrategyStats(ctx context.Context, name string, stats []byte) error {
	if item, ok := s.strategies[strings.TrimSpace(name)]; ok {
		item.Stats = stats
	}
	return nil
}

func (s *stubRepo) DeleteStrategy(ctx context.Context, name string) error {
	delete(s.strategies, strings.TrimSpace(name))
	return nil
}

func (s *stubRepo) InsertAuditLog(ctx context.Context, item *models.AuditLog) error {
	s.audits = append(s.audits, *item)
	return nil
}

func (s *stubRepo) DeleteAuditLogsBefore(ctx context.Context, before time.Time) (int64, error) {
	kept := s.audits[:0]
	var deleted int64
	for _, item := range s.audits {
		if item.CreatedAt.Before(before) {
			deleted++
			continue
		}
		kept = append(kept, item)
	}
	s.audits = kept
	return deleted, nil
}
