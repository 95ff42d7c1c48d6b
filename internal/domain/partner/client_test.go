package partner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	createdBy := uuid.New()

	t.Run("creates client successfully", func(t *testing.T) {
		client, err := NewClient(createdBy, "Acme Interiors", "contact@acme.com")

		require.NoError(t, err)
		assert.NotNil(t, client)
		assert.Equal(t, "Acme Interiors", client.Name)
		assert.Equal(t, "contact@acme.com", client.Email)
		assert.Equal(t, ClientStatusActive, client.Status)
		assert.Equal(t, createdBy, *client.CreatedBy)
		assert.NotEqual(t, uuid.Nil, client.ID)
	})

	t.Run("lowercases email", func(t *testing.T) {
		client, err := NewClient(createdBy, "Acme", "Contact@ACME.com")

		require.NoError(t, err)
		assert.Equal(t, "contact@acme.com", client.Email)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		client, err := NewClient(createdBy, "  ", "contact@acme.com")

		assert.Error(t, err)
		assert.Nil(t, client)
	})

	t.Run("fails with invalid email", func(t *testing.T) {
		client, err := NewClient(createdBy, "Acme", "not-an-email")

		assert.Error(t, err)
		assert.Nil(t, client)
	})
}

func TestClientSetStatus(t *testing.T) {
	client, err := NewClient(uuid.New(), "Acme", "contact@acme.com")
	require.NoError(t, err)

	t.Run("accepts valid status", func(t *testing.T) {
		err := client.SetStatus(ClientStatusArchived)

		require.NoError(t, err)
		assert.Equal(t, ClientStatusArchived, client.Status)
		assert.True(t, client.IsArchived())
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		err := client.SetStatus(ClientStatus("Frozen"))

		assert.Error(t, err)
	})
}

func TestClientSetTaxIDs(t *testing.T) {
	client, err := NewClient(uuid.New(), "Acme", "contact@acme.com")
	require.NoError(t, err)

	client.SetTaxIDs("29abcde1234f1z5", "abcde1234f")

	assert.Equal(t, "29ABCDE1234F1Z5", client.ClientGST)
	assert.Equal(t, "ABCDE1234F", client.PAN)
}

func TestClientSummary(t *testing.T) {
	client, err := NewClient(uuid.New(), "Acme", "contact@acme.com")
	require.NoError(t, err)
	client.Phone = "9876543210"

	summary := client.Summary()

	assert.Equal(t, client.ID, summary.ID)
	assert.Equal(t, "Acme", summary.Name)
	assert.Equal(t, "contact@acme.com", summary.Email)
	assert.Equal(t, "9876543210", summary.Phone)
}
