package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/studioerp/backend/internal/domain/shared"
)

// UserStats aggregates account counts by activation and role
type UserStats struct {
	Total       int64 `json:"total"`
	Active      int64 `json:"active"`
	SuperAdmins int64 `json:"superAdmins"`
	Admins      int64 `json:"admins"`
	Designers   int64 `json:"designers"`
	Managers    int64 `json:"managers"`
	Users       int64 `json:"users"`
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[User], error)
	FindIDsByRole(ctx context.Context, roles ...Role) ([]uuid.UUID, error)
	FindSummaries(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]UserSummary, error)
	Save(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
	Stats(ctx context.Context) (*UserStats, error)
}
