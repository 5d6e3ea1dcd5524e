package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"stratsim/internal/models"
)

type ListProjectionRunsParams struct {
	StrategyID *uint64
	Outcome    *string
	Since      *time.Time
	Limit      int
	Offset     int
	OrderBy    string
	Asc        *bool
}

// Repository is the storage surface used by services and handlers.
type Repository interface {
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error

	// Projection runs.
	InsertProjectionRun(ctx context.Context, item *models.ProjectionRun) error
	GetProjectionRunByID(ctx context.Context, id uint64) (*models.ProjectionRun, error)
	ListProjectionRuns(ctx context.Context, params ListProjectionRunsParams) ([]models.ProjectionRun, error)
	CountProjectionRuns(ctx context.Context, params ListProjectionRunsParams) (int64, error)
	DeleteProjectionRunsBefore(ctx context.Context, before time.Time) (int64, error)

	// Saved strategies.
	UpsertStrategy(ctx context.Context, item *models.Strategy) error
	GetStrategyByName(ctx context.Context, name string) (*models.Strategy, error)
	ListStrategies(ctx context.Context) ([]models.Strategy, error)
	SetStrategyEnabled(ctx context.Context, name string, enabled bool) error
	UpdateStrategyParams(ctx context.Context, name string, params []byte) error
	UpdateStrategyStats(ctx context.Context, name string, stats []byte) error
	DeleteStrategy(ctx context.Context, name string) error

	// Write audit.
	InsertAuditLog(ctx context.Context, item *models.AuditLog) error
	DeleteAuditLogsBefore(ctx context.Context, before time.Time) (int64, error)
}
