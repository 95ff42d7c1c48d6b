package notify

import (
	"context"

	"github.com/google/uuid"
	"github.com/studioerp/backend/internal/domain/shared"
)

// NotificationRepository defines the interface for notification persistence.
// All reads and writes are scoped to a recipient so users can only see their
// own notifications.
type NotificationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Notification, error)
	FindByRecipient(ctx context.Context, recipientID uuid.UUID, filter shared.Filter) (*shared.Paginated[Notification], error)
	CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error)
	Save(ctx context.Context, notification *Notification) error
	SaveAll(ctx context.Context, notifications []*Notification) error
	// MarkAllRead marks every unread notification for the recipient as read
	// and returns how many were updated. Calling it with nothing unread is
	// a no-op.
	MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
