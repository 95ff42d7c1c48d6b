package project

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/studioerp/backend/internal/domain/identity"
	"github.com/studioerp/backend/internal/domain/project"
	"github.com/studioerp/backend/internal/domain/shared"
)

// MockTeamRepository is a mock implementation of project.TeamRepository
type MockTeamRepository struct {
	mock.Mock
}

func (m *MockTeamRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.Team, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Team), args.Error(1)
}

func (m *MockTeamRepository) FindByName(ctx context.Context, name string) (*project.Team, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Team), args.Error(1)
}

func (m *MockTeamRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[project.Team], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[project.Team]), args.Error(1)
}

func (m *MockTeamRepository) Save(ctx context.Context, team *project.Team) error {
	args := m.Called(ctx, team)
	return args.Error(0)
}

func (m *MockTeamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTeamRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[identity.User], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[identity.User]), args.Error(1)
}

func (m *MockUserRepository) FindIDsByRole(ctx context.Context, roles ...identity.Role) ([]uuid.UUID, error) {
	callArgs := make([]interface{}, 0, len(roles)+1)
	callArgs = append(callArgs, ctx)
	for _, role := range roles {
		callArgs = append(callArgs, role)
	}
	args := m.Called(callArgs...)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockUserRepository) FindSummaries(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]identity.UserSummary, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]identity.UserSummary), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Stats(ctx context.Context) (*identity.UserStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.UserStats), args.Error(1)
}

func TestTeamServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a team when the name is free", func(t *testing.T) {
		teamRepo := new(MockTeamRepository)
		teamRepo.On("FindByName", ctx, "Interiors").Return(nil, shared.ErrNotFound)
		teamRepo.On("Save", ctx, mock.AnythingOfType("*project.Team")).Return(nil)

		svc := NewTeamService(teamRepo, new(MockUserRepository))

		resp, err := svc.Create(ctx, CreateTeamRequest{Name: "Interiors", Department: "Design"})

		require.NoError(t, err)
		assert.Equal(t, "Interiors", resp.Name)
		assert.True(t, resp.Active)
		teamRepo.AssertExpectations(t)
	})

	t.Run("rejects duplicate names", func(t *testing.T) {
		existing, err := project.NewTeam(uuid.New(), "Interiors")
		require.NoError(t, err)

		teamRepo := new(MockTeamRepository)
		teamRepo.On("FindByName", ctx, "Interiors").Return(existing, nil)

		svc := NewTeamService(teamRepo, new(MockUserRepository))

		_, err = svc.Create(ctx, CreateTeamRequest{Name: "Interiors"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		teamRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestTeamServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("renaming onto another team's name fails", func(t *testing.T) {
		team, err := project.NewTeam(uuid.New(), "Interiors")
		require.NoError(t, err)
		other, err := project.NewTeam(uuid.New(), "Execution")
		require.NoError(t, err)

		teamRepo := new(MockTeamRepository)
		teamRepo.On("FindByID", ctx, team.ID).Return(team, nil)
		teamRepo.On("FindByName", ctx, "Execution").Return(other, nil)

		svc := NewTeamService(teamRepo, new(MockUserRepository))

		name := "Execution"
		_, err = svc.Update(ctx, team.ID, UpdateTeamRequest{Name: &name})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})

	t.Run("keeping the current name is not a conflict", func(t *testing.T) {
		team, err := project.NewTeam(uuid.New(), "Interiors")
		require.NoError(t, err)

		teamRepo := new(MockTeamRepository)
		teamRepo.On("FindByID", ctx, team.ID).Return(team, nil)
		teamRepo.On("Save", ctx, team).Return(nil)

		svc := NewTeamService(teamRepo, new(MockUserRepository))

		dept := "Design"
		resp, err := svc.Update(ctx, team.ID, UpdateTeamRequest{Department: &dept})

		require.NoError(t, err)
		assert.Equal(t, "Design", resp.Department)
	})
}

func TestTeamServiceGetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("embeds member user summaries", func(t *testing.T) {
		team, err := project.NewTeam(uuid.New(), "Interiors")
		require.NoError(t, err)
		userID := uuid.New()
		require.NoError(t, team.AddMember(userID, project.TeamRoleLead))

		teamRepo := new(MockTeamRepository)
		teamRepo.On("FindByID", ctx, team.ID).Return(team, nil)

		userRepo := new(MockUserRepository)
		userRepo.On("FindSummaries", ctx, []uuid.UUID{userID}).Return(map[uuid.UUID]identity.UserSummary{
			userID: {ID: userID, Name: "Asha Nair", Email: "asha@studio.example"},
		}, nil)

		svc := NewTeamService(teamRepo, userRepo)

		resp, err := svc.GetByID(ctx, team.ID)

		require.NoError(t, err)
		require.Len(t, resp.Members, 1)
		assert.Equal(t, "Team Lead", resp.Members[0].Role)
		assert.False(t, resp.Members[0].AddedAt.IsZero())
		require.NotNil(t, resp.Members[0].User)
		assert.Equal(t, "Asha Nair", resp.Members[0].User.Name)
		userRepo.AssertExpectations(t)
	})
}

func TestTeamServiceMembers(t *testing.T) {
	ctx := context.Background()

	t.Run("adds and removes members", func(t *testing.T) {
		team, err := project.NewTeam(uuid.New(), "Interiors")
		require.NoError(t, err)
		userID := uuid.New()

		teamRepo := new(MockTeamRepository)
		teamRepo.On("FindByID", ctx, team.ID).Return(team, nil)
		teamRepo.On("Save", ctx, team).Return(nil)

		svc := NewTeamService(teamRepo, new(MockUserRepository))

		resp, err := svc.AddMember(ctx, team.ID, AddTeamMemberRequest{UserID: userID, Role: "Contributor"})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.MemberCount)

		resp, err = svc.RemoveMember(ctx, team.ID, userID)
		require.NoError(t, err)
		assert.Equal(t, 0, resp.MemberCount)
	})

	t.Run("adding the same member twice fails", func(t *testing.T) {
		team, err := project.NewTeam(uuid.New(), "Interiors")
		require.NoError(t, err)
		userID := uuid.New()
		require.NoError(t, team.AddMember(userID, "Member"))

		teamRepo := new(MockTeamRepository)
		teamRepo.On("FindByID", ctx, team.ID).Return(team, nil)

		svc := NewTeamService(teamRepo, new(MockUserRepository))

		_, err = svc.AddMember(ctx, team.ID, AddTeamMemberRequest{UserID: userID})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "MEMBER_EXISTS", domainErr.Code)
	})
}
