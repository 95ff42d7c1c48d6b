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

// SupplyItemService handles supplier stock business operations
type SupplyItemService struct {
	supplyRepo inventory.SupplyItemRepository
	notifier   *appnotify.Notifier
}

// NewSupplyItemService creates a new SupplyItemService
func NewSupplyItemService(supplyRepo inventory.SupplyItemRepository, notifier *appnotify.Notifier) *SupplyItemService {
	return &SupplyItemService{supplyRepo: supplyRepo, notifier: notifier}
}

// Create creates a new supply item
func (s *SupplyItemService) Create(ctx context.Context, req CreateSupplyItemRequest) (*SupplyItemResponse, error) {
	createdBy := uuid.Nil
	if req.CreatedBy != nil {
		createdBy = *req.CreatedBy
	}

	item, err := inventory.NewSupplyItem(createdBy, req.ItemName, req.Supplier)
	if err != nil {
		return nil, err
	}

	item.SetSKU(req.SKU)
	item.PurchaseOrderID = req.PurchaseOrderID
	item.Notes = req.Notes
	if req.Unit != "" {
		item.Unit = req.Unit
	}
	if req.ReorderPoint != nil {
		if err := item.SetReorderPoint(*req.ReorderPoint); err != nil {
			return nil, err
		}
	}
	if req.CurrentStock != nil {
		if err := item.SetStock(*req.CurrentStock); err != nil {
			return nil, err
		}
	}

	if err := s.supplyRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	response := ToSupplyItemResponse(item)
	return &response, nil
}

// GetByID retrieves a supply item by ID
func (s *SupplyItemService) GetByID(ctx context.Context, id uuid.UUID) (*SupplyItemResponse, error) {
	item, err := s.supplyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToSupplyItemResponse(item)
	return &response, nil
}

// List retrieves supply items with filtering and pagination
func (s *SupplyItemService) List(ctx context.Context, filter shared.Filter) ([]SupplyItemResponse, *shared.Paginated[inventory.SupplyItem], error) {
	page, err := s.supplyRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	responses := make([]SupplyItemResponse, len(page.Items))
	for i := range page.Items {
		responses[i] = ToSupplyItemResponse(&page.Items[i])
	}
	return responses, page, nil
}

// Update applies a partial update to a supply item
func (s *SupplyItemService) Update(ctx context.Context, id uuid.UUID, req UpdateSupplyItemRequest) (*SupplyItemResponse, error) {
	item, err := s.supplyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ItemName != nil {
		if err := item.Rename(*req.ItemName); err != nil {
			return nil, err
		}
	}
	if req.SKU != nil {
		item.SetSKU(*req.SKU)
	}
	if req.Supplier != nil {
		item.Supplier = *req.Supplier
	}
	if req.PurchaseOrderID != nil {
		item.PurchaseOrderID = req.PurchaseOrderID
	}
	if req.Unit != nil {
		item.Unit = *req.Unit
	}
	if req.ReorderPoint != nil {
		if err := item.SetReorderPoint(*req.ReorderPoint); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		item.Notes = *req.Notes
	}
	item.Touch()

	if err := s.supplyRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	response := ToSupplyItemResponse(item)
	return &response, nil
}

// AdjustStock sets the absolute stock level, stamping the receipt time and
// re-deriving the status. A drop below the reorder point alerts managers.
func (s *SupplyItemService) AdjustStock(ctx context.Context, id uuid.UUID, req AdjustStockRequest) (*SupplyItemResponse, error) {
	item, err := s.supplyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	wasLow := item.Status != inventory.StockStatusInStock

	if err := item.SetStock(req.CurrentStock); err != nil {
		return nil, err
	}
	if err := s.supplyRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	if !wasLow && item.Status != inventory.StockStatusInStock && s.notifier != nil {
		s.notifier.NotifyRoles(ctx,
			[]identity.Role{identity.RoleSuperAdmin, identity.RoleAdmin, identity.RoleManager},
			notify.NotificationTypeInventory,
			fmt.Sprintf("%s is below its reorder point", item.ItemName),
			fmt.Sprintf("Supplier stock for %s dropped to %s %s", item.ItemName, item.CurrentStock.String(), item.Unit),
			notify.RelatedModelInventory, item.ID,
		)
	}

	response := ToSupplyItemResponse(item)
	return &response, nil
}

// Delete removes a supply item
func (s *SupplyItemService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.supplyRepo.Delete(ctx, id)
}

// Stats returns supply item counts by stock status
func (s *SupplyItemService) Stats(ctx context.Context) (*inventory.SupplyItemStats, error) {
	return s.supplyRepo.Stats(ctx)
}
