package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studioerp/backend/internal/domain/notify"
	"github.com/studioerp/backend/internal/domain/shared"
)

// GormNotificationRepository implements notify.NotificationRepository using GORM
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GormNotificationRepository
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

func (r *GormNotificationRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// FindByID finds a notification by its ID
func (r *GormNotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*notify.Notification, error) {
	var notification notify.Notification
	if err := r.conn(ctx).First(&notification, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &notification, nil
}

// FindByRecipient finds a recipient's notifications, newest first
func (r *GormNotificationRepository) FindByRecipient(ctx context.Context, recipientID uuid.UUID, filter shared.Filter) (*shared.Paginated[notify.Notification], error) {
	query := r.conn(ctx).Model(&notify.Notification{}).Where("recipient_id = ?", recipientID)
	query = applyEquals(query, filter.Filters, map[string]string{
		"read": "read",
		"type": "type",
	})
	return findPage[notify.Notification](query, filter, "created_at DESC")
}

// CountUnread counts a recipient's unread notifications
func (r *GormNotificationRepository) CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	var count int64
	err := r.conn(ctx).Model(&notify.Notification{}).
		Where("recipient_id = ? AND read = ?", recipientID, false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Save persists a notification
func (r *GormNotificationRepository) Save(ctx context.Context, notification *notify.Notification) error {
	return r.conn(ctx).Save(notification).Error
}

// SaveAll persists a batch of notifications
func (r *GormNotificationRepository) SaveAll(ctx context.Context, notifications []*notify.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	return r.conn(ctx).Create(notifications).Error
}

// MarkAllRead marks every unread notification for the recipient as read
func (r *GormNotificationRepository) MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	now := time.Now()
	result := r.conn(ctx).Model(&notify.Notification{}).
		Where("recipient_id = ? AND read = ?", recipientID, false).
		Updates(map[string]interface{}{
			"read":       true,
			"read_at":    now,
			"updated_at": now,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Delete removes a notification by ID
func (r *GormNotificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.conn(ctx).Delete(&notify.Notification{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
