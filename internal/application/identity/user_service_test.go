package identity

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/studioerp/backend/internal/domain/identity"
	"github.com/studioerp/backend/internal/domain/shared"
)

func TestUserServiceRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the account without exposing the hash", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByEmail", ctx, "asha@studio.example").Return(nil, shared.ErrNotFound)
		userRepo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

		svc := NewUserService(userRepo)

		resp, err := svc.Register(ctx, RegisterRequest{
			Name:     "Asha Designer",
			Email:    "asha@studio.example",
			Password: "secret123",
			Role:     "Designer",
		})

		require.NoError(t, err)
		assert.Equal(t, "asha@studio.example", resp.Email)
		assert.Equal(t, "Designer", resp.Role)
		userRepo.AssertExpectations(t)
	})

	t.Run("rejects duplicate emails", func(t *testing.T) {
		existing := testUser(t, "secret123")
		userRepo := new(MockUserRepository)
		userRepo.On("FindByEmail", ctx, "asha@studio.example").Return(existing, nil)

		svc := NewUserService(userRepo)

		_, err := svc.Register(ctx, RegisterRequest{
			Name:     "Imposter",
			Email:    "asha@studio.example",
			Password: "secret123",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestUserServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects an email already held by another user", func(t *testing.T) {
		user := testUser(t, "secret123")
		other, err := identity.NewUser("Ravi Manager", "ravi@studio.example", "secret123", identity.RoleManager)
		require.NoError(t, err)

		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		userRepo.On("FindByEmail", ctx, "ravi@studio.example").Return(other, nil)

		svc := NewUserService(userRepo)

		email := "ravi@studio.example"
		_, err = svc.Update(ctx, user.ID, UpdateUserRequest{Email: &email})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})

	t.Run("keeping your own email is not a conflict", func(t *testing.T) {
		user := testUser(t, "secret123")
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		userRepo.On("FindByEmail", ctx, user.Email).Return(user, nil)
		userRepo.On("Save", ctx, user).Return(nil)

		svc := NewUserService(userRepo)

		email := user.Email
		resp, err := svc.Update(ctx, user.ID, UpdateUserRequest{Email: &email})

		require.NoError(t, err)
		assert.Equal(t, email, resp.Email)
	})

	t.Run("deactivation", func(t *testing.T) {
		user := testUser(t, "secret123")
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		userRepo.On("Save", ctx, user).Return(nil)

		svc := NewUserService(userRepo)

		active := false
		resp, err := svc.Update(ctx, user.ID, UpdateUserRequest{Active: &active})

		require.NoError(t, err)
		assert.False(t, resp.Active)
	})
}

func TestUserServiceChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("verifies the current password first", func(t *testing.T) {
		user := testUser(t, "secret123")
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

		svc := NewUserService(userRepo)

		err := svc.ChangePassword(ctx, user.ID, ChangePasswordRequest{
			CurrentPassword: "wrong",
			NewPassword:     "newsecret123",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
		userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("replaces the hash", func(t *testing.T) {
		user := testUser(t, "secret123")
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		userRepo.On("Save", ctx, user).Return(nil)

		svc := NewUserService(userRepo)

		err := svc.ChangePassword(ctx, user.ID, ChangePasswordRequest{
			CurrentPassword: "secret123",
			NewPassword:     "newsecret123",
		})

		require.NoError(t, err)
		assert.True(t, user.CheckPassword("newsecret123"))
		assert.False(t, user.CheckPassword("secret123"))
	})
}

func TestUserServiceDelete(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	userRepo := new(MockUserRepository)
	userRepo.On("Delete", ctx, id).Return(nil)

	svc := NewUserService(userRepo)

	require.NoError(t, svc.Delete(ctx, id))
	userRepo.AssertExpectations(t)
}
