package models

import (
	"time"

	"gorm.io/datatypes"
)

// Strategy is a saved, named parameter set that can be projected on demand.
type Strategy struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"type:varchar(50);uniqueIndex;not null"`
	DisplayName string `gorm:"type:varchar(100);not null"`
	Description string `gorm:"type:text"`

	Enabled bool `gorm:"default:true;index"`

	Params datatypes.JSON `gorm:"type:jsonb;not null"`
	Stats  datatypes.JSON `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime"`
}

func (Strategy) TableName() string {
	return "strategies"
}
