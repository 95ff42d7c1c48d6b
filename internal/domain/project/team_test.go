package project

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTeam(t *testing.T) {
	t.Run("creates active team", func(t *testing.T) {
		team, err := NewTeam(uuid.New(), "Design Studio A")

		require.NoError(t, err)
		assert.True(t, team.Active)
		assert.Equal(t, 0, team.MemberCount())
	})

	t.Run("fails with empty name", func(t *testing.T) {
		team, err := NewTeam(uuid.New(), "")

		assert.Error(t, err)
		assert.Nil(t, team)
	})
}

func TestTeamMembership(t *testing.T) {
	userID := uuid.New()

	t.Run("adds and removes a member", func(t *testing.T) {
		team, err := NewTeam(uuid.New(), "Design Studio A")
		require.NoError(t, err)

		require.NoError(t, team.AddMember(userID, TeamRoleContributor))
		assert.True(t, team.HasMember(userID))
		assert.Equal(t, 1, team.MemberCount())
		assert.False(t, team.Members[0].AddedAt.IsZero())

		require.NoError(t, team.RemoveMember(userID))
		assert.False(t, team.HasMember(userID))
	})

	t.Run("rejects duplicate member", func(t *testing.T) {
		team, err := NewTeam(uuid.New(), "Design Studio A")
		require.NoError(t, err)
		require.NoError(t, team.AddMember(userID, TeamRoleContributor))

		assert.Error(t, team.AddMember(userID, TeamRoleContributor))
	})

	t.Run("rejects an unknown role", func(t *testing.T) {
		team, err := NewTeam(uuid.New(), "Design Studio A")
		require.NoError(t, err)

		assert.Error(t, team.AddMember(userID, "Designer"))
	})

	t.Run("removing a non-member fails", func(t *testing.T) {
		team, err := NewTeam(uuid.New(), "Design Studio A")
		require.NoError(t, err)

		assert.Error(t, team.RemoveMember(uuid.New()))
	})

	t.Run("defaults role to Member", func(t *testing.T) {
		team, err := NewTeam(uuid.New(), "Design Studio A")
		require.NoError(t, err)

		require.NoError(t, team.AddMember(userID, " "))
		assert.Equal(t, TeamRoleMember, team.Members[0].Role)
	})
}

func TestTeamLead(t *testing.T) {
	t.Run("setting a non-member lead adds them", func(t *testing.T) {
		team, err := NewTeam(uuid.New(), "Design Studio A")
		require.NoError(t, err)
		lead := uuid.New()

		require.NoError(t, team.SetLead(lead))

		assert.Equal(t, lead, *team.LeadID)
		assert.True(t, team.HasMember(lead))
		assert.Equal(t, TeamRoleLead, team.Members[0].Role)
	})

	t.Run("removing the lead clears the slot", func(t *testing.T) {
		team, err := NewTeam(uuid.New(), "Design Studio A")
		require.NoError(t, err)
		lead := uuid.New()
		require.NoError(t, team.SetLead(lead))

		require.NoError(t, team.RemoveMember(lead))

		assert.Nil(t, team.LeadID)
	})
}
