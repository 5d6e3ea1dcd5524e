package models

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog records write-ish API calls for later review.
type AuditLog struct {
	ID         uint64         `gorm:"primaryKey;autoIncrement"`
	Action     string         `gorm:"type:varchar(60);not null;index"`
	Level      string         `gorm:"type:varchar(10);not null"`
	Method     string         `gorm:"type:varchar(10)"`
	Path       string         `gorm:"type:varchar(200)"`
	Status     int            `gorm:"default:0"`
	DurationMs int64          `gorm:"default:0"`
	Details    datatypes.JSON `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
