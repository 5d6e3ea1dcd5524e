package gormrepository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stratsim/internal/models"
	"stratsim/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(fn)
}

// --- Projection runs --------------------------------------------------------

func (s *Store) InsertProjectionRun(ctx context.Context, item *models.ProjectionRun) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetProjectionRunByID(ctx context.Context, id uint64) (*models.ProjectionRun, error) {
	if s == nil || s.db == nil || id == 0 {
		return nil, nil
	}
	var item models.ProjectionRun
	err := s.db.WithContext(ctx).Model(&models.ProjectionRun{}).Where("id = ?", id).First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) listRunsQuery(ctx context.Context, params repository.ListProjectionRunsParams) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.ProjectionRun{})
	if params.StrategyID != nil && *params.StrategyID != 0 {
		query = query.Where("strategy_id = ?", *params.StrategyID)
	}
	if params.Outcome != nil && strings.TrimSpace(*params.Outcome) != "" {
		query = query.Where("outcome = ?", strings.TrimSpace(*params.Outcome))
	}
	if params.Since != nil && !params.Since.IsZero() {
		query = query.Where("created_at >= ?", *params.Since)
	}
	return query
}

func (s *Store) ListProjectionRuns(ctx context.Context, params repository.ListProjectionRunsParams) ([]models.ProjectionRun, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.listRunsQuery(ctx, params)
	// Keep lists cheap: the records jsonb is only loaded on detail reads.
	query = query.Omit("records")
	query = applyOrder(query, params.OrderBy, params.Asc, "created_at")
	limit := normalizeLimit(params.Limit, 100)
	offset := normalizeOffset(params.Offset)
	var items []models.ProjectionRun
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountProjectionRuns(ctx context.Context, params repository.ListProjectionRunsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var count int64
	if err := s.listRunsQuery(ctx, params).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Store) DeleteProjectionRunsBefore(ctx context.Context, before time.Time) (int64, error) {
	if s == nil || s.db == nil || before.IsZero() {
		return 0, nil
	}
	res := s.db.WithContext(ctx).
		Where("created_at < ?", before).
		Delete(&models.ProjectionRun{})
	return res.RowsAffected, res.Error
}

// --- Saved strategies -------------------------------------------------------

func (s *Store) UpsertStrategy(ctx context.Context, item *models.Strategy) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	if strings.TrimSpace(item.Name) == "" {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"display_name",
			"description",
			"enabled",
			"params",
			"updated_at",
		}),
	}).Create(item).Error
}

func (s *Store) GetStrategyByName(ctx context.Context, name string) (*models.Strategy, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	var item models.Strategy
	err := s.db.WithContext(ctx).Model(&models.Strategy{}).Where("name = ?", name).First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListStrategies(ctx context.Context) ([]models.Strategy, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Strategy
	if err := s.db.WithContext(ctx).
		Model(&models.Strategy{}).
		Order("name asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) SetStrategyEnabled(ctx context.Context, name string, enabled bool) error {
	if s == nil || s.db == nil {
		return nil
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&models.Strategy{}).
		Where("name = ?", name).
		Updates(map[string]any{"enabled": enabled, "updated_at": time.Now().UTC()}).
		Error
}

func (s *Store) UpdateStrategyParams(ctx context.Context, name string, params []byte) error {
	if s == nil || s.db == nil {
		return nil
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&models.Strategy{}).
		Where("name = ?", name).
		Updates(map[string]any{"params": params, "updated_at": time.Now().UTC()}).
		Error
}

func (s *Store) UpdateStrategyStats(ctx context.Context, name string, stats []byte) error {
	if s == nil || s.db == nil {
		return nil
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&models.Strategy{}).
		Where("name = ?", name).
		Updates(map[string]any{"stats": stats, "updated_at": time.Now().UTC()}).
		Error
}

func (s *Store) DeleteStrategy(ctx context.Context, name string) error {
	if s == nil || s.db == nil {
		return nil
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	return s.db.WithContext(ctx).
		Where("name = ?", name).
		Delete(&models.Strategy{}).
		Error
}

// --- Audit ------------------------------------------------------------------

func (s *Store) InsertAuditLog(ctx context.Context, item *models.AuditLog) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) DeleteAuditLogsBefore(ctx context.Context, before time.Time) (int64, error) {
	if s == nil || s.db == nil || before.IsZero() {
		return 0, nil
	}
	res := s.db.WithContext(ctx).
		Where("created_at < ?", before).
		Delete(&models.AuditLog{})
	return res.RowsAffected, res.Error
}

// --- Helpers ----------------------------------------------------------------

func applyOrder(query *gorm.DB, orderBy string, asc *bool, fallback string) *gorm.DB {
	column := strings.TrimSpace(orderBy)
	if column == "" {
		column = fallback
	}
	direction := "desc"
	if asc != nil && *asc {
		direction = "asc"
	}
	return query.Order(column + " " + direction)
}

func normalizeLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > 500 {
		return 500
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
