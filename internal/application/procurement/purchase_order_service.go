package procurement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	notifysvc "github.com/studioerp/backend/internal/application/notify"
	"github.com/studioerp/backend/internal/domain/identity"
	domnotify "github.com/studioerp/backend/internal/domain/notify"
	"github.com/studioerp/backend/internal/domain/procurement"
	"github.com/studioerp/backend/internal/domain/shared"
)

// PurchaseOrderService handles purchase order business operations
type PurchaseOrderService struct {
	orderRepo procurement.PurchaseOrderRepository
	notifier  *notifysvc.Notifier
}

// NewPurchaseOrderService creates a new PurchaseOrderService
func NewPurchaseOrderService(orderRepo procurement.PurchaseOrderRepository, notifier *notifysvc.Notifier) *PurchaseOrderService {
	return &PurchaseOrderService{orderRepo: orderRepo, notifier: notifier}
}

// Create creates a new purchase order with an allocated document number
func (s *PurchaseOrderService) Create(ctx context.Context, req CreatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	createdBy := uuid.Nil
	if req.CreatedBy != nil {
		createdBy = *req.CreatedBy
	}

	order, err := procurement.NewPurchaseOrder(createdBy, req.SupplierName)
	if err != nil {
		return nil, err
	}
	order.SupplierContact = req.SupplierContact
	order.SupplierEmail = req.SupplierEmail
	order.ExpectedDelivery = req.ExpectedDelivery
	order.Notes = req.Notes

	if req.TaxRate != nil {
		if err := order.SetTaxRate(*req.TaxRate); err != nil {
			return nil, err
		}
	}
	if err := order.ReplaceItems(toPurchaseOrderItems(req.Items)); err != nil {
		return nil, err
	}

	number, err := s.orderRepo.NextNumber(ctx, time.Now().Year())
	if err != nil {
		return nil, err
	}
	order.PONumber = number

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// GetByID retrieves a purchase order by ID
func (s *PurchaseOrderService) GetByID(ctx context.Context, id uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// List retrieves purchase orders with filtering and pagination
func (s *PurchaseOrderService) List(ctx context.Context, filter shared.Filter) ([]PurchaseOrderResponse, *shared.Paginated[procurement.PurchaseOrder], error) {
	page, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	responses := make([]PurchaseOrderResponse, len(page.Items))
	for i := range page.Items {
		responses[i] = ToPurchaseOrderResponse(&page.Items[i])
	}
	return responses, page, nil
}

// Update applies a partial update to a purchase order
func (s *PurchaseOrderService) Update(ctx context.Context, id uuid.UUID, req UpdatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.SupplierName != nil {
		order.SupplierName = *req.SupplierName
	}
	if req.SupplierContact != nil {
		order.SupplierContact = *req.SupplierContact
	}
	if req.SupplierEmail != nil {
		order.SupplierEmail = *req.SupplierEmail
	}
	if req.TaxRate != nil {
		if err := order.SetTaxRate(*req.TaxRate); err != nil {
			return nil, err
		}
	}
	if req.Items != nil {
		if err := order.ReplaceItems(toPurchaseOrderItems(*req.Items)); err != nil {
			return nil, err
		}
	}
	if req.ExpectedDelivery != nil {
		order.ExpectedDelivery = req.ExpectedDelivery
	}
	if req.Notes != nil {
		order.Notes = *req.Notes
	}
	order.Touch()

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// Submit moves a draft order into pending approval
func (s *PurchaseOrderService) Submit(ctx context.Context, id uuid.UUID) (*PurchaseOrderResponse, error) {
	return s.transition(ctx, id, func(po *procurement.PurchaseOrder) error {
		return po.Submit()
	})
}

// Approve approves a purchase order and notifies its creator
func (s *PurchaseOrderService) Approve(ctx context.Context, id, approvedBy uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := order.Approve(approvedBy, time.Now()); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	if s.notifier != nil && order.CreatedBy != nil && *order.CreatedBy != approvedBy {
		s.notifier.NotifyUser(ctx, *order.CreatedBy,
			domnotify.NotificationTypePO,
			"Purchase order approved",
			fmt.Sprintf("Purchase order %s for %s was approved", order.PONumber, order.SupplierName),
			domnotify.RelatedModelPurchaseOrder, order.ID)
	}

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// MarkOrdered records that the order was placed with the supplier
func (s *PurchaseOrderService) MarkOrdered(ctx context.Context, id uuid.UUID) (*PurchaseOrderResponse, error) {
	return s.transition(ctx, id, func(po *procurement.PurchaseOrder) error {
		return po.MarkOrdered()
	})
}

// Receive records a delivery, full or per line. A completed delivery alerts
// the inventory managers so stock levels can be updated.
func (s *PurchaseOrderService) Receive(ctx context.Context, id uuid.UUID, req ReceivePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	var quantities map[uuid.UUID]decimal.Decimal
	if len(req.Items) > 0 {
		quantities = make(map[uuid.UUID]decimal.Decimal, len(req.Items))
		for _, line := range req.Items {
			quantities[line.ItemID] = quantities[line.ItemID].Add(line.ReceivedQuantity)
		}
	}
	if err := order.Receive(quantities, time.Now()); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	if s.notifier != nil && order.Status == procurement.PurchaseOrderStatusReceived {
		s.notifier.NotifyRoles(ctx,
			[]identity.Role{identity.RoleSuperAdmin, identity.RoleAdmin, identity.RoleManager},
			domnotify.NotificationTypePO,
			"Purchase order received",
			fmt.Sprintf("All items on %s from %s have been received", order.PONumber, order.SupplierName),
			domnotify.RelatedModelPurchaseOrder, order.ID)
	}

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// Cancel voids a purchase order
func (s *PurchaseOrderService) Cancel(ctx context.Context, id uuid.UUID) (*PurchaseOrderResponse, error) {
	return s.transition(ctx, id, func(po *procurement.PurchaseOrder) error {
		return po.Cancel()
	})
}

// Delete removes a purchase order. Received orders are kept for the audit
// trail and cannot be deleted.
func (s *PurchaseOrderService) Delete(ctx context.Context, id uuid.UUID) error {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if order.Status == procurement.PurchaseOrderStatusReceived {
		return shared.NewDomainError("INVALID_STATE", "Received orders cannot be deleted")
	}
	return s.orderRepo.Delete(ctx, id)
}

// Stats returns purchase order counts and value by status
func (s *PurchaseOrderService) Stats(ctx context.Context) (*procurement.PurchaseOrderStats, error) {
	return s.orderRepo.Stats(ctx)
}

func (s *PurchaseOrderService) transition(ctx context.Context, id uuid.UUID, fn func(*procurement.PurchaseOrder) error) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(order); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

func toPurchaseOrderItems(reqs []PurchaseOrderItemRequest) []procurement.PurchaseOrderItem {
	items := make([]procurement.PurchaseOrderItem, len(reqs))
	for i, r := range reqs {
		unit := r.Unit
		if unit == "" {
			unit = "pieces"
		}
		items[i] = procurement.PurchaseOrderItem{
			ItemName:    r.ItemName,
			Description: r.Description,
			Quantity:    r.Quantity,
			Unit:        unit,
			Rate:        r.Rate,
		}
	}
	return items
}
