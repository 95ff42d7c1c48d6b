package notify

import (
	"time"

	"github.com/google/uuid"

	"github.com/studioerp/backend/internal/domain/notify"
)

// CreateNotificationRequest represents a request to send a notification
type CreateNotificationRequest struct {
	RecipientID  uuid.UUID  `json:"recipientId" binding:"required"`
	Type         string     `json:"type" binding:"omitempty,oneof=Info Success Warning Error Quote Invoice Task Inventory PO"`
	Title        string     `json:"title" binding:"required,min=1,max=200"`
	Message      string     `json:"message"`
	RelatedModel string     `json:"relatedModel" binding:"omitempty,oneof=Quotation Invoice Task PurchaseOrder Inventory Client"`
	RelatedID    *uuid.UUID `json:"relatedId"`
	SenderID     *uuid.UUID `json:"-"`
}

// NotificationResponse represents a notification in API responses
type NotificationResponse struct {
	ID           uuid.UUID  `json:"id"`
	RecipientID  uuid.UUID  `json:"recipientId"`
	SenderID     *uuid.UUID `json:"senderId"`
	Type         string     `json:"type"`
	Title        string     `json:"title"`
	Message      string     `json:"message"`
	RelatedModel *string    `json:"relatedModel"`
	RelatedID    *uuid.UUID `json:"relatedId"`
	Read         bool       `json:"read"`
	ReadAt       *time.Time `json:"readAt"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// ToNotificationResponse maps a domain notification to its API representation
func ToNotificationResponse(n *notify.Notification) NotificationResponse {
	var relatedModel *string
	if n.RelatedModel != nil {
		m := string(*n.RelatedModel)
		relatedModel = &m
	}
	return NotificationResponse{
		ID:           n.ID,
		RecipientID:  n.RecipientID,
		SenderID:     n.SenderID,
		Type:         string(n.Type),
		Title:        n.Title,
		Message:      n.Message,
		RelatedModel: relatedModel,
		RelatedID:    n.RelatedID,
		Read:         n.Read,
		ReadAt:       n.ReadAt,
		CreatedAt:    n.CreatedAt,
	}
}
