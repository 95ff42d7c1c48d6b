package notify

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/studioerp/backend/internal/domain/shared"
)

// NotificationType classifies what a notification is about
type NotificationType string

const (
	NotificationTypeInfo      NotificationType = "Info"
	NotificationTypeSuccess   NotificationType = "Success"
	NotificationTypeWarning   NotificationType = "Warning"
	NotificationTypeError     NotificationType = "Error"
	NotificationTypeQuote     NotificationType = "Quote"
	NotificationTypeInvoice   NotificationType = "Invoice"
	NotificationTypeTask      NotificationType = "Task"
	NotificationTypeInventory NotificationType = "Inventory"
	NotificationTypePO        NotificationType = "PO"
)

// IsValid checks if the type is one of the allowed values
func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationTypeInfo, NotificationTypeSuccess, NotificationTypeWarning,
		NotificationTypeError, NotificationTypeQuote, NotificationTypeInvoice,
		NotificationTypeTask, NotificationTypeInventory, NotificationTypePO:
		return true
	}
	return false
}

// RelatedModel names the record a notification points at
type RelatedModel string

const (
	RelatedModelQuotation     RelatedModel = "Quotation"
	RelatedModelInvoice       RelatedModel = "Invoice"
	RelatedModelTask          RelatedModel = "Task"
	RelatedModelPurchaseOrder RelatedModel = "PurchaseOrder"
	RelatedModelInventory     RelatedModel = "Inventory"
	RelatedModelClient        RelatedModel = "Client"
)

// IsValid checks if the related model is one of the allowed values
func (m RelatedModel) IsValid() bool {
	switch m {
	case RelatedModelQuotation, RelatedModelInvoice, RelatedModelTask,
		RelatedModelPurchaseOrder, RelatedModelInventory, RelatedModelClient:
		return true
	}
	return false
}

// Notification is a message delivered to a single user, optionally pointing
// at the record that caused it. Notifications are scoped to their recipient;
// marking one read is idempotent.
type Notification struct {
	shared.BaseEntity
	RecipientID  uuid.UUID        `gorm:"type:uuid;not null;index"`
	SenderID     *uuid.UUID       `gorm:"type:uuid"`
	Type         NotificationType `gorm:"type:varchar(20);not null;default:'Info'"`
	Title        string           `gorm:"type:varchar(200);not null"`
	Message      string           `gorm:"type:text"`
	RelatedModel *RelatedModel    `gorm:"type:varchar(20)"`
	RelatedID    *uuid.UUID       `gorm:"type:uuid"`
	Read         bool             `gorm:"not null;default:false;index"`
	ReadAt       *time.Time
}

// TableName returns the table name for GORM
func (Notification) TableName() string {
	return "notifications"
}

// NewNotification creates an unread notification for a recipient
func NewNotification(recipientID uuid.UUID, notifType NotificationType, title string) (*Notification, error) {
	if recipientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RECIPIENT", "Please select a recipient")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Please provide a title")
	}
	if notifType == "" {
		notifType = NotificationTypeInfo
	}
	if !notifType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Unknown notification type")
	}

	return &Notification{
		BaseEntity:  shared.NewBaseEntity(),
		RecipientID: recipientID,
		Type:        notifType,
		Title:       title,
	}, nil
}

// Relate points the notification at the record that caused it
func (n *Notification) Relate(model RelatedModel, id uuid.UUID) error {
	if !model.IsValid() {
		return shared.NewDomainError("INVALID_RELATED_MODEL", "Unknown related model")
	}
	if id == uuid.Nil {
		return shared.NewDomainError("INVALID_RELATED_ID", "Please provide a related record")
	}
	m := model
	rid := id
	n.RelatedModel = &m
	n.RelatedID = &rid
	return nil
}

// BelongsTo reports whether the notification is addressed to the given user
func (n *Notification) BelongsTo(userID uuid.UUID) bool {
	return n.RecipientID == userID
}

// MarkRead marks the notification read. Already-read notifications keep their
// original read time.
func (n *Notification) MarkRead(at time.Time) {
	if n.Read {
		return
	}
	n.Read = true
	t := at
	n.ReadAt = &t
	n.Touch()
}
