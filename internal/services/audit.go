package services

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/reflect/internal/logging"
	"github.com/dmitrijs2005/reflect/internal/models"
	"github.com/dmitrijs2005/reflect/internal/repositories/audit"
	"github.com/dmitrijs2005/reflect/internal/storage"
	"github.com/google/uuid"
)

// DefaultAuditLimit is the number of records kept when no limit is configured.
const DefaultAuditLimit = 100

// AuditRecorder appends to the capped audit log. Records are kept newest
// first; the oldest ones fall off once the limit is reached.
type AuditRecorder struct {
	mu    sync.Mutex
	repo  audit.Repository
	limit int
	log   logging.Logger
	now   func() time.Time
}

// NewAuditRecorder returns a recorder over kv. A non-positive limit means
// DefaultAuditLimit.
func NewAuditRecorder(kv storage.KV, limit int, log logging.Logger) *AuditRecorder {
	if limit <= 0 {
		limit = DefaultAuditLimit
	}
	return &AuditRecorder{
		repo:  audit.NewKVRepository(kv),
		limit: limit,
		log:   log,
		now:   time.Now,
	}
}

// Log prepends one record and trims the log to the limit.
func (a *AuditRecorder) Log(ctx context.Context, action models.AuditAction, details string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	logs, err := a.repo.GetAll(ctx)
	if err != nil {
		return err
	}

	rec := models.AuditLogEntry{
		ID:        uuid.NewString(),
		Timestamp: a.now().UnixMilli(),
		Action:    action,
		Details:   details,
	}
	logs = append([]models.AuditLogEntry{rec}, logs...)
	if len(logs) > a.limit {
		logs = logs[:a.limit]
	}
	return a.repo.SaveAll(ctx, logs)
}

// Recent returns at most n of the newest records.
func (a *AuditRecorder) Recent(ctx context.Context, n int) ([]models.AuditLogEntry, error) {
	logs, err := a.All(ctx)
	if err != nil {
		return nil, err
	}
	if n >= 0 && len(logs) > n {
		logs = logs[:n]
	}
	return logs, nil
}

// All returns every stored record, newest first.
func (a *AuditRecorder) All(ctx context.Context) ([]models.AuditLogEntry, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.repo.GetAll(ctx)
}

func (a *AuditRecorder) Clear(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.repo.Clear(ctx)
}

// Label returns the display label of action.
func (a *AuditRecorder) Label(action models.AuditAction) string {
	return action.Label()
}

// record logs through Log and downgrades a failure to a warning.
func (a *AuditRecorder) record(ctx context.Context, action models.AuditAction, details string) {
	if a == nil {
		return
	}
	if err := a.Log(ctx, action, details); err != nil {
		a.log.Warn(ctx, "audit write failed", "action", string(action), "err", err)
	}
}
