package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/studioerp/backend/internal/domain/shared"
)

// ClientStats holds per-status client counts
type ClientStats struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
	Archived int64 `json:"archived"`
}

// ClientRepository defines the interface for client persistence
type ClientRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[Client], error)
	FindSummaries(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]ClientSummary, error)
	Save(ctx context.Context, client *Client) error
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*ClientStats, error)
}
