package audit

import (
	"context"

	"github.com/dovoc/backend/internal/domain/audit"
	"go.uber.org/zap"
)

// RecorderService implements audit.Recorder on top of the audit
// repository. Writes are best-effort: a failed append is logged and
// swallowed so the mutating operation that triggered it never fails.
type RecorderService struct {
	repo   audit.Repository
	logger *zap.Logger
}

// NewRecorderService creates a new RecorderService
func NewRecorderService(repo audit.Repository, logger *zap.Logger) *RecorderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecorderService{
		repo:   repo,
		logger: logger,
	}
}

// Record appends one audit entry for an administrative action
func (s *RecorderService) Record(ctx context.Context, action audit.Action, actor, details string) {
	entry := audit.NewEntry(action, actor, details)
	if err := s.repo.Append(ctx, entry); err != nil {
		s.logger.Error("audit write failed",
			zap.String("action", string(action)),
			zap.String("actor", entry.Actor),
			zap.Error(err))
	}
}

var _ audit.Recorder = (*RecorderService)(nil)

// LogService exposes the audit trail for the admin security log view
type LogService struct {
	repo audit.Repository
}

// NewLogService creates a new LogService
func NewLogService(repo audit.Repository) *LogService {
	return &LogService{repo: repo}
}

// Recent returns the most recent audit entries, newest first
func (s *LogService) Recent(ctx context.Context, limit int) ([]audit.Entry, error) {
	return s.repo.FindRecent(ctx, limit)
}
