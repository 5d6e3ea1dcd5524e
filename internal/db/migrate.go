package db

import (
	"stratsim/internal/models"
)

func AutoMigrate(db *DB) error {
	if db == nil || db.Gorm == nil || db.SQL == nil {
		return nil
	}
	return db.Gorm.AutoMigrate(
		&models.Strategy{},
		&models.ProjectionRun{},
		&models.AuditLog{},
	)
}
