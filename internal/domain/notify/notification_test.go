package notify

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotification(t *testing.T) {
	recipient := uuid.New()

	t.Run("creates unread notification", func(t *testing.T) {
		n, err := NewNotification(recipient, NotificationTypeTask, "Task assigned")

		require.NoError(t, err)
		assert.False(t, n.Read)
		assert.Nil(t, n.ReadAt)
		assert.True(t, n.BelongsTo(recipient))
		assert.False(t, n.BelongsTo(uuid.New()))
	})

	t.Run("defaults type to info", func(t *testing.T) {
		n, err := NewNotification(recipient, "", "Welcome")

		require.NoError(t, err)
		assert.Equal(t, NotificationTypeInfo, n.Type)
	})

	t.Run("fails without recipient", func(t *testing.T) {
		n, err := NewNotification(uuid.Nil, NotificationTypeInfo, "Welcome")

		assert.Error(t, err)
		assert.Nil(t, n)
	})

	t.Run("fails with unknown type", func(t *testing.T) {
		n, err := NewNotification(recipient, NotificationType("carrier-pigeon"), "Welcome")

		assert.Error(t, err)
		assert.Nil(t, n)
	})

	t.Run("accepts every type", func(t *testing.T) {
		for _, notifType := range []NotificationType{
			NotificationTypeInfo, NotificationTypeSuccess, NotificationTypeWarning,
			NotificationTypeError, NotificationTypeQuote, NotificationTypeInvoice,
			NotificationTypeTask, NotificationTypeInventory, NotificationTypePO,
		} {
			_, err := NewNotification(recipient, notifType, "Welcome")
			assert.NoError(t, err, "type %s", notifType)
		}
	})
}

func TestNotificationRelate(t *testing.T) {
	n, err := NewNotification(uuid.New(), NotificationTypeInvoice, "Invoice generated")
	require.NoError(t, err)

	t.Run("links the source record", func(t *testing.T) {
		invoiceID := uuid.New()

		require.NoError(t, n.Relate(RelatedModelInvoice, invoiceID))

		assert.Equal(t, RelatedModelInvoice, *n.RelatedModel)
		assert.Equal(t, invoiceID, *n.RelatedID)
	})

	t.Run("rejects an unknown model", func(t *testing.T) {
		assert.Error(t, n.Relate(RelatedModel("Ledger"), uuid.New()))
	})

	t.Run("rejects a nil record id", func(t *testing.T) {
		assert.Error(t, n.Relate(RelatedModelTask, uuid.Nil))
	})
}

func TestNotificationMarkRead(t *testing.T) {
	n, err := NewNotification(uuid.New(), NotificationTypeInfo, "Welcome")
	require.NoError(t, err)

	first := time.Now()
	n.MarkRead(first)

	assert.True(t, n.Read)
	assert.Equal(t, first, *n.ReadAt)

	t.Run("marking again keeps the original read time", func(t *testing.T) {
		n.MarkRead(first.Add(time.Hour))

		assert.Equal(t, first, *n.ReadAt)
	})
}
