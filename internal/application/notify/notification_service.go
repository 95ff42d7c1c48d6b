package notify

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/studioerp/backend/internal/domain/notify"
	"github.com/studioerp/backend/internal/domain/shared"
)

// NotificationService handles notification delivery and read tracking. Every
// read path is scoped to the requesting user; nobody can see or mutate
// another user's notifications.
type NotificationService struct {
	notificationRepo notify.NotificationRepository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo notify.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// Create sends a notification to a recipient
func (s *NotificationService) Create(ctx context.Context, req CreateNotificationRequest) (*NotificationResponse, error) {
	notification, err := notify.NewNotification(req.RecipientID, notify.NotificationType(req.Type), req.Title)
	if err != nil {
		return nil, err
	}
	notification.Message = req.Message
	notification.SenderID = req.SenderID
	if req.RelatedModel != "" {
		if req.RelatedID == nil {
			return nil, shared.NewDomainError("INVALID_RELATED_ID", "Please provide a related record")
		}
		if err := notification.Relate(notify.RelatedModel(req.RelatedModel), *req.RelatedID); err != nil {
			return nil, err
		}
	}

	if err := s.notificationRepo.Save(ctx, notification); err != nil {
		return nil, err
	}

	response := ToNotificationResponse(notification)
	return &response, nil
}

// List retrieves the requesting user's notifications, newest first
func (s *NotificationService) List(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]NotificationResponse, *shared.Paginated[notify.Notification], error) {
	page, err := s.notificationRepo.FindByRecipient(ctx, userID, filter)
	if err != nil {
		return nil, nil, err
	}

	responses := make([]NotificationResponse, len(page.Items))
	for i := range page.Items {
		responses[i] = ToNotificationResponse(&page.Items[i])
	}
	return responses, page, nil
}

// UnreadCount returns how many unread notifications the user has
func (s *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, userID)
}

// MarkRead marks one of the user's notifications as read. Reading an
// already-read notification is a no-op.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) (*NotificationResponse, error) {
	notification, err := s.notificationRepo.FindByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if !notification.BelongsTo(userID) {
		return nil, shared.ErrNotFound
	}

	notification.MarkRead(time.Now())
	if err := s.notificationRepo.Save(ctx, notification); err != nil {
		return nil, err
	}

	response := ToNotificationResponse(notification)
	return &response, nil
}

// MarkAllRead marks all of the user's unread notifications as read and
// returns how many changed. Idempotent.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}

// Delete removes one of the user's notifications
func (s *NotificationService) Delete(ctx context.Context, userID, notificationID uuid.UUID) error {
	notification, err := s.notificationRepo.FindByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if !notification.BelongsTo(userID) {
		return shared.ErrNotFound
	}
	return s.notificationRepo.Delete(ctx, notificationID)
}
