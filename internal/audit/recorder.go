package audit

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"stratsim/internal/models"
	"stratsim/internal/repository"
)

// Recorder persists audit entries. Writes are best-effort: a failed audit
// insert never fails the request that triggered it.
type Recorder struct {
	Repo   repository.Repository
	Logger *zap.Logger
}

type Entry struct {
	Action   string
	Level    string
	Method   string
	Path     string
	Status   int
	Duration time.Duration
	Details  map[string]any
}

func (r *Recorder) Record(ctx context.Context, entry Entry) {
	if r == nil || r.Repo == nil {
		return
	}
	if entry.Level == "" {
		entry.Level = "info"
	}
	var details datatypes.JSON
	if len(entry.Details) > 0 {
		raw, _ := json.Marshal(entry.Details)
		details = datatypes.JSON(raw)
	}
	ctx2, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()
	err := r.Repo.InsertAuditLog(ctx2, &models.AuditLog{
		Action:     entry.Action,
		Level:      entry.Level,
		Method:     entry.Method,
		Path:       entry.Path,
		Status:     entry.Status,
		DurationMs: entry.Duration.Milliseconds(),
		Details:    details,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil && r.Logger != nil {
		r.Logger.Debug("audit insert failed", zap.Error(err))
	}
}
