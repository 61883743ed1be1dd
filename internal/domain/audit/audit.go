// Package audit defines the security audit log contract. Every mutating
// administrative action produces one entry; writes are best-effort and
// must never fail the operation that triggered them.
package audit

import (
	"context"
	"time"

	"github.com/dovoc/backend/internal/domain/shared"
)

// Action identifies the administrative action being recorded
type Action string

const (
	ActionLogin               Action = "LOGIN"
	ActionCreateProduct       Action = "CREATE_PRODUCT"
	ActionDeleteProduct       Action = "DELETE_PRODUCT"
	ActionCreateCategory      Action = "CREATE_CATEGORY"
	ActionDeleteCategory      Action = "DELETE_CATEGORY"
	ActionUpdateOrderStatus   Action = "UPDATE_ORDER_STATUS"
	ActionDeleteOrder         Action = "DELETE_ORDER"
	ActionCreateUser          Action = "CREATE_USER"
	ActionUpdateUser          Action = "UPDATE_USER"
	ActionDeleteUser          Action = "DELETE_USER"
	ActionBroadcastNewsletter Action = "BROADCAST_NEWSLETTER"
)

// Entry is a single immutable audit log record
type Entry struct {
	shared.BaseEntity
	Action    Action
	Actor     string // username or "System"
	Details   string
	Timestamp time.Time
}

// NewEntry creates a new audit entry stamped with the current time
func NewEntry(action Action, actor, details string) *Entry {
	if actor == "" {
		actor = "System"
	}
	return &Entry{
		BaseEntity: shared.NewBaseEntity(),
		Action:     action,
		Actor:      actor,
		Details:    details,
		Timestamp:  time.Now(),
	}
}

// Recorder appends audit entries. Implementations must be best-effort:
// a failed write is surfaced on the process log only, never to the
// caller of the mutating operation.
type Recorder interface {
	Record(ctx context.Context, action Action, actor, details string)
}

// Repository defines persistence for audit entries. Retention is
// bounded; once the cap is exceeded the oldest entries are pruned.
type Repository interface {
	Append(ctx context.Context, entry *Entry) error
	FindRecent(ctx context.Context, limit int) ([]Entry, error)
	Count(ctx context.Context) (int64, error)
}

// RetentionCap is the maximum number of retained entries
const RetentionCap = 1000
