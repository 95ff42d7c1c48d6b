package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	appnotify "github.com/studioerp/backend/internal/application/notify"
	"github.com/studioerp/backend/internal/domain/identity"
	"github.com/studioerp/backend/internal/domain/inventory"
	"github.com/studioerp/backend/internal/domain/notify"
	"github.com/studioerp/backend/internal/domain/shared"
)

// ItemService handles design inventory business operations
type ItemService struct {
	itemRepo inventory.ItemRepository
	notifier *appnotify.Notifier
}

// NewItemService creates a new ItemService
func NewItemService(itemRepo inventory.ItemRepository, notifier *appnotify.Notifier) *ItemService {
	return &ItemService{itemRepo: itemRepo, notifier: notifier}
}

// Create creates a new inventory item
func (s *ItemService) Create(ctx context.Context, req CreateItemRequest) (*ItemResponse, error) {
	createdBy := uuid.Nil
	if req.CreatedBy != nil {
		createdBy = *req.CreatedBy
	}

	item, err := inventory.NewItem(createdBy, req.ItemName, req.Section, inventory.Unit(req.Unit), req.Price)
	if err != nil {
		return nil, err
	}

	item.Description = req.Description
	item.Finish = req.Finish
	item.Material = req.Material
	item.Size = req.Size
	item.Image = req.Image
	item.Catalog = req.Catalog

	if req.OfferPrice != nil {
		if err := item.SetOfferPrice(*req.OfferPrice); err != nil {
			return nil, err
		}
	}
	if req.ReorderLevel != nil {
		if err := item.SetReorderLevel(*req.ReorderLevel); err != nil {
			return nil, err
		}
	}
	if req.Stock != nil {
		if err := item.SetStock(*req.Stock); err != nil {
			return nil, err
		}
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	response := ToItemResponse(item)
	return &response, nil
}

// GetByID retrieves an inventory item by ID
func (s *ItemService) GetByID(ctx context.Context, id uuid.UUID) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToItemResponse(item)
	return &response, nil
}

// List retrieves inventory items with filtering and pagination
func (s *ItemService) List(ctx context.Context, filter shared.Filter) ([]ItemResponse, *shared.Paginated[inventory.Item], error) {
	page, err := s.itemRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	responses := make([]ItemResponse, len(page.Items))
	for i := range page.Items {
		responses[i] = ToItemResponse(&page.Items[i])
	}
	return responses, page, nil
}

// Update applies a partial update to an inventory item. Stock status is
// rederived after every change.
func (s *ItemService) Update(ctx context.Context, id uuid.UUID, req UpdateItemRequest) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	wasLow := item.Status != inventory.StockStatusInStock

	if req.ItemName != nil {
		if err := item.Rename(*req.ItemName); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Section != nil {
		item.Section = *req.Section
	}
	if req.Finish != nil {
		item.Finish = *req.Finish
	}
	if req.Material != nil {
		item.Material = *req.Material
	}
	if req.Unit != nil {
		if err := item.SetUnit(inventory.Unit(*req.Unit)); err != nil {
			return nil, err
		}
	}
	if req.Size != nil {
		item.Size = *req.Size
	}
	if req.Price != nil {
		if err := item.SetPrice(*req.Price); err != nil {
			return nil, err
		}
	}
	if req.OfferPrice != nil {
		if err := item.SetOfferPrice(*req.OfferPrice); err != nil {
			return nil, err
		}
	}
	if req.ReorderLevel != nil {
		if err := item.SetReorderLevel(*req.ReorderLevel); err != nil {
			return nil, err
		}
	}
	if req.Stock != nil {
		if err := item.SetStock(*req.Stock); err != nil {
			return nil, err
		}
	}
	if req.Image != nil {
		item.Image = *req.Image
	}
	if req.Catalog != nil {
		item.Catalog = *req.Catalog
	}
	item.Touch()

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	if !wasLow && item.Status != inventory.StockStatusInStock && s.notifier != nil {
		s.notifier.NotifyRoles(ctx,
			[]identity.Role{identity.RoleSuperAdmin, identity.RoleAdmin, identity.RoleManager},
			notify.NotificationTypeInventory,
			fmt.Sprintf("%s is running low", item.ItemName),
			fmt.Sprintf("Stock for %s dropped to %s %s", item.ItemName, item.Stock.String(), item.Unit),
			notify.RelatedModelInventory, item.ID,
		)
	}

	response := ToItemResponse(item)
	return &response, nil
}

// Delete removes an inventory item
func (s *ItemService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.itemRepo.Delete(ctx, id)
}

// Stats returns inventory counts by stock status and total valuation
func (s *ItemService) Stats(ctx context.Context) (*inventory.ItemStats, error) {
	return s.itemRepo.Stats(ctx)
}
