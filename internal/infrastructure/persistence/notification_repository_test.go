package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/studioerp/backend/internal/domain/notify"
	"github.com/studioerp/backend/internal/domain/shared"
)

func setupNotificationTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&notify.Notification{}))
	return db
}

func newTestNotification(t *testing.T, recipientID uuid.UUID, title string) *notify.Notification {
	t.Helper()
	notification, err := notify.NewNotification(recipientID, notify.NotificationTypeInfo, title)
	require.NoError(t, err)
	return notification
}

func TestNotificationRepository_RecipientScoping(t *testing.T) {
	db := setupNotificationTestDB(t)
	repo := NewGormNotificationRepository(db)
	ctx := context.Background()

	alice := uuid.New()
	bob := uuid.New()

	for _, title := range []string{"Quotation approved", "Task assigned", "Stock low"} {
		require.NoError(t, repo.Save(ctx, newTestNotification(t, alice, title)))
	}
	require.NoError(t, repo.Save(ctx, newTestNotification(t, bob, "Invoice overdue")))

	t.Run("lists only the recipient's notifications", func(t *testing.T) {
		page, err := repo.FindByRecipient(ctx, alice, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Equal(t, int64(3), page.Total)
		for _, n := range page.Items {
			assert.Equal(t, alice, n.RecipientID)
		}
	})

	t.Run("filters by read flag", func(t *testing.T) {
		read := newTestNotification(t, alice, "Already seen")
		read.MarkRead(time.Now())
		require.NoError(t, repo.Save(ctx, read))

		filter := shared.DefaultFilter().WithFilter("read", true)
		page, err := repo.FindByRecipient(ctx, alice, filter)
		require.NoError(t, err)
		require.Equal(t, int64(1), page.Total)
		assert.Equal(t, "Already seen", page.Items[0].Title)
	})

	t.Run("counts unread per recipient", func(t *testing.T) {
		count, err := repo.CountUnread(ctx, alice)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)

		count, err = repo.CountUnread(ctx, bob)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestNotificationRepository_MarkAllRead(t *testing.T) {
	db := setupNotificationTestDB(t)
	repo := NewGormNotificationRepository(db)
	ctx := context.Background()

	alice := uuid.New()
	bob := uuid.New()

	for i := 0; i < 2; i++ {
		require.NoError(t, repo.Save(ctx, newTestNotification(t, alice, "For Alice")))
	}
	bobNotification := newTestNotification(t, bob, "For Bob")
	require.NoError(t, repo.Save(ctx, bobNotification))

	updated, err := repo.MarkAllRead(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)

	count, err := repo.CountUnread(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// Other recipients are untouched.
	found, err := repo.FindByID(ctx, bobNotification.ID)
	require.NoError(t, err)
	assert.False(t, found.Read)
	assert.Nil(t, found.ReadAt)

	// Second pass is a no-op.
	updated, err = repo.MarkAllRead(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(0), updated)
}

func TestNotificationRepository_SaveAll(t *testing.T) {
	db := setupNotificationTestDB(t)
	repo := NewGormNotificationRepository(db)
	ctx := context.Background()

	recipients := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	batch := make([]*notify.Notification, 0, len(recipients))
	for _, id := range recipients {
		batch = append(batch, newTestNotification(t, id, "Team announcement"))
	}

	require.NoError(t, repo.SaveAll(ctx, batch))
	require.NoError(t, repo.SaveAll(ctx, nil))

	for _, id := range recipients {
		count, err := repo.CountUnread(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	}
}

func TestNotificationRepository_RelatedReference(t *testing.T) {
	db := setupNotificationTestDB(t)
	repo := NewGormNotificationRepository(db)
	ctx := context.Background()

	notification := newTestNotification(t, uuid.New(), "Task assigned")
	taskID := uuid.New()
	require.NoError(t, notification.Relate(notify.RelatedModelTask, taskID))
	require.NoError(t, repo.Save(ctx, notification))

	found, err := repo.FindByID(ctx, notification.ID)
	require.NoError(t, err)
	require.NotNil(t, found.RelatedModel)
	assert.Equal(t, notify.RelatedModelTask, *found.RelatedModel)
	require.NotNil(t, found.RelatedID)
	assert.Equal(t, taskID, *found.RelatedID)
}

func TestNotificationRepository_Delete(t *testing.T) {
	db := setupNotificationTestDB(t)
	repo := NewGormNotificationRepository(db)
	ctx := context.Background()

	notification := newTestNotification(t, uuid.New(), "Dismiss me")
	require.NoError(t, repo.Save(ctx, notification))

	require.NoError(t, repo.Delete(ctx, notification.ID))
	assert.ErrorIs(t, repo.Delete(ctx, notification.ID), shared.ErrNotFound)
}
