package notify

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/studioerp/backend/internal/domain/identity"
	"github.com/studioerp/backend/internal/domain/notify"
)

// Notifier fans business events out as notifications. Delivery is best
// effort: a failed insert is logged and never fails the causing operation.
type Notifier struct {
	notificationRepo notify.NotificationRepository
	userRepo         identity.UserRepository
	logger           *zap.Logger
}

// NewNotifier creates a new Notifier
func NewNotifier(notificationRepo notify.NotificationRepository, userRepo identity.UserRepository, logger *zap.Logger) *Notifier {
	return &Notifier{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		logger:           logger,
	}
}

// NotifyUser sends a notification to a single user. A non-empty relatedModel
// points the notification at the record that caused it.
func (n *Notifier) NotifyUser(ctx context.Context, recipientID uuid.UUID, notifType notify.NotificationType, title, message string, relatedModel notify.RelatedModel, relatedID uuid.UUID) {
	notification, err := notify.NewNotification(recipientID, notifType, title)
	if err != nil {
		n.logger.Warn("failed to build notification", zap.Error(err))
		return
	}
	notification.Message = message
	if relatedModel != "" {
		if err := notification.Relate(relatedModel, relatedID); err != nil {
			n.logger.Warn("failed to relate notification", zap.Error(err))
		}
	}

	if err := n.notificationRepo.Save(ctx, notification); err != nil {
		n.logger.Warn("failed to deliver notification",
			zap.String("recipient_id", recipientID.String()),
			zap.String("title", title),
			zap.Error(err),
		)
	}
}

// NotifyRoles sends a notification to every active user holding one of the roles
func (n *Notifier) NotifyRoles(ctx context.Context, roles []identity.Role, notifType notify.NotificationType, title, message string, relatedModel notify.RelatedModel, relatedID uuid.UUID) {
	ids, err := n.userRepo.FindIDsByRole(ctx, roles...)
	if err != nil {
		n.logger.Warn("failed to resolve notification recipients", zap.Error(err))
		return
	}

	notifications := make([]*notify.Notification, 0, len(ids))
	for _, id := range ids {
		notification, err := notify.NewNotification(id, notifType, title)
		if err != nil {
			continue
		}
		notification.Message = message
		if relatedModel != "" {
			_ = notification.Relate(relatedModel, relatedID)
		}
		notifications = append(notifications, notification)
	}

	if err := n.notificationRepo.SaveAll(ctx, notifications); err != nil {
		n.logger.Warn("failed to deliver notifications",
			zap.String("title", title),
			zap.Int("recipients", len(notifications)),
			zap.Error(err),
		)
	}
}
