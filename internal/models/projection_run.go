package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ProjectionRun is one persisted simulation: the input parameters, the derived
// edge statistics, the outcome, and the full period-by-period record sequence.
type ProjectionRun struct {
	ID         uint64  `gorm:"primaryKey;autoIncrement"`
	StrategyID *uint64 `gorm:"index"`

	Params datatypes.JSON `gorm:"type:jsonb;not null"`

	ExpectancyR   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PeriodReturnR decimal.Decimal `gorm:"type:numeric(12,1);not null"`
	KellyPct      decimal.Decimal `gorm:"type:numeric(8,2);not null"`

	Outcome          string          `gorm:"type:varchar(30);not null;index"`
	PeriodsSimulated int             `gorm:"not null"`
	FinalBalance     decimal.Decimal `gorm:"type:numeric(20,2);not null"`

	Records datatypes.JSON `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index"`
}

func (ProjectionRun) TableName() string {
	return "projection_runs"
}
