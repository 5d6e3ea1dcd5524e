package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"stratsim/internal/repository"
)

// RetentionService prunes old projection runs and audit logs. Zero max ages
// disable the corresponding sweep.
type RetentionService struct {
	Repo        repository.Repository
	Logger      *zap.Logger
	RunMaxAge   time.Duration
	AuditMaxAge time.Duration
}

func (s *RetentionService) SweepOnce(ctx context.Context) error {
	if s == nil || s.Repo == nil {
		return nil
	}
	now := time.Now().UTC()
	if s.RunMaxAge > 0 {
		n, err := s.Repo.DeleteProjectionRunsBefore(ctx, now.Add(-s.RunMaxAge))
		if err != nil {
			if s.Logger != nil {
				s.Logger.Warn("projection run sweep failed", zap.Error(err))
			}
			return err
		}
		if n > 0 && s.Logger != nil {
			s.Logger.Info("deleted old projection runs", zap.Int64("count", n))
		}
	}
	if s.AuditMaxAge > 0 {
		n, err := s.Repo.DeleteAuditLogsBefore(ctx, now.Add(-s.AuditMaxAge))
		if err != nil {
			if s.Logger != nil {
				s.Logger.Warn("audit log sweep failed", zap.Error(err))
			}
			return err
		}
		if n > 0 && s.Logger != nil {
			s.Logger.Info("deleted old audit logs", zap.Int64("count", n))
		}
	}
	return nil
}
