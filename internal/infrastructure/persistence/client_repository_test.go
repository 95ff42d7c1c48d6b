package persistence

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/studioerp/backend/internal/domain/partner"
	"github.com/studioerp/backend/internal/domain/shared"
)

func setupClientTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&partner.Client{}))
	return db
}

func newTestClient(t *testing.T, name, email string) *partner.Client {
	t.Helper()
	client, err := partner.NewClient(uuid.New(), name, email)
	require.NoError(t, err)
	return client
}

func TestClientRepository_SaveAndFind(t *testing.T) {
	db := setupClientTestDB(t)
	repo := NewGormClientRepository(db)
	ctx := context.Background()

	t.Run("round-trips a client", func(t *testing.T) {
		client := newTestClient(t, "Meera Kapoor", "meera@example.com")
		client.SetTaxIDs("29abcde1234f1z5", "abcde1234f")
		require.NoError(t, repo.Save(ctx, client))

		found, err := repo.FindByID(ctx, client.ID)
		require.NoError(t, err)
		assert.Equal(t, client.ID, found.ID)
		assert.Equal(t, "Meera Kapoor", found.Name)
		assert.Equal(t, "meera@example.com", found.Email)
		assert.Equal(t, "29ABCDE1234F1Z5", found.ClientGST)
		assert.Equal(t, "ABCDE1234F", found.PAN)
		assert.Equal(t, partner.ClientStatusActive, found.Status)
	})

	t.Run("returns not found for unknown id", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("save updates an existing client", func(t *testing.T) {
		client := newTestClient(t, "Rohan Mehta", "rohan@example.com")
		require.NoError(t, repo.Save(ctx, client))

		require.NoError(t, client.Rename("Rohan V Mehta"))
		require.NoError(t, client.SetStatus(partner.ClientStatusInactive))
		require.NoError(t, repo.Save(ctx, client))

		found, err := repo.FindByID(ctx, client.ID)
		require.NoError(t, err)
		assert.Equal(t, "Rohan V Mehta", found.Name)
		assert.Equal(t, partner.ClientStatusInactive, found.Status)
	})
}

func TestClientRepository_FindAll(t *testing.T) {
	db := setupClientTestDB(t)
	repo := NewGormClientRepository(db)
	ctx := context.Background()

	seed := []struct {
		name   string
		email  string
		status partner.ClientStatus
	}{
		{"Anita Sharma", "anita@homes.example", partner.ClientStatusActive},
		{"Vikram Anand", "vikram@villas.example", partner.ClientStatusActive},
		{"Priya Nair", "priya@flats.example", partner.ClientStatusArchived},
	}
	for _, s := range seed {
		client := newTestClient(t, s.name, s.email)
		require.NoError(t, client.SetStatus(s.status))
		require.NoError(t, repo.Save(ctx, client))
	}

	t.Run("lists everything by default", func(t *testing.T) {
		page, err := repo.FindAll(ctx, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Equal(t, int64(3), page.Total)
		assert.Len(t, page.Items, 3)
	})

	t.Run("searches name and email case-insensitively", func(t *testing.T) {
		page, err := repo.FindAll(ctx, shared.Filter{Search: "ANAND"})
		require.NoError(t, err)
		require.Equal(t, int64(1), page.Total)
		assert.Equal(t, "Vikram Anand", page.Items[0].Name)

		page, err = repo.FindAll(ctx, shared.Filter{Search: "flats.example"})
		require.NoError(t, err)
		require.Equal(t, int64(1), page.Total)
		assert.Equal(t, "Priya Nair", page.Items[0].Name)
	})

	t.Run("filters by status", func(t *testing.T) {
		filter := shared.DefaultFilter().WithFilter("status", "Archived")
		page, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Equal(t, int64(1), page.Total)
		assert.Equal(t, partner.ClientStatusArchived, page.Items[0].Status)
	})

	t.Run("ignores unknown filter keys", func(t *testing.T) {
		filter := shared.DefaultFilter().WithFilter("drop_table", "clients")
		page, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(3), page.Total)
	})

	t.Run("paginates with total preserved", func(t *testing.T) {
		page, err := repo.FindAll(ctx, shared.Filter{Page: 2, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), page.Total)
		assert.Len(t, page.Items, 1)
		assert.Equal(t, 2, page.Pages())
	})
}

func TestClientRepository_Delete(t *testing.T) {
	db := setupClientTestDB(t)
	repo := NewGormClientRepository(db)
	ctx := context.Background()

	t.Run("removes an existing client", func(t *testing.T) {
		client := newTestClient(t, "Temp Client", "temp@example.com")
		require.NoError(t, repo.Save(ctx, client))

		require.NoError(t, repo.Delete(ctx, client.ID))

		_, err := repo.FindByID(ctx, client.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("returns not found for unknown id", func(t *testing.T) {
		err := repo.Delete(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestClientRepository_Stats(t *testing.T) {
	db := setupClientTestDB(t)
	repo := NewGormClientRepository(db)
	ctx := context.Background()

	statuses := []partner.ClientStatus{
		partner.ClientStatusActive,
		partner.ClientStatusActive,
		partner.ClientStatusInactive,
		partner.ClientStatusArchived,
	}
	for i, status := range statuses {
		client := newTestClient(t, fmt.Sprintf("Client %d", i+1), "client@example.com")
		require.NoError(t, client.SetStatus(status))
		require.NoError(t, repo.Save(ctx, client))
	}

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.Total)
	assert.Equal(t, int64(2), stats.Active)
	assert.Equal(t, int64(1), stats.Inactive)
	assert.Equal(t, int64(1), stats.Archived)
}

func TestClientRepository_FindSummaries(t *testing.T) {
	db := setupClientTestDB(t)
	repo := NewGormClientRepository(db)
	ctx := context.Background()

	first := newTestClient(t, "Summary One", "one@example.com")
	second := newTestClient(t, "Summary Two", "two@example.com")
	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))

	t.Run("maps summaries by id", func(t *testing.T) {
		summaries, err := repo.FindSummaries(ctx, []uuid.UUID{first.ID, second.ID})
		require.NoError(t, err)
		require.Len(t, summaries, 2)
		assert.Equal(t, "Summary One", summaries[first.ID].Name)
		assert.Equal(t, "two@example.com", summaries[second.ID].Email)
	})

	t.Run("empty id list short-circuits", func(t *testing.T) {
		summaries, err := repo.FindSummaries(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, summaries)
	})
}
