package handler

import (
	"github.com/gin-gonic/gin"

	procurementapp "github.com/studioerp/backend/internal/application/procurement"
)

// PurchaseOrderHandler handles purchase order API endpoints
type PurchaseOrderHandler struct {
	BaseHandler
	orderService *procurementapp.PurchaseOrderService
}

// NewPurchaseOrderHandler creates a new PurchaseOrderHandler
func NewPurchaseOrderHandler(orderService *procurementapp.PurchaseOrderService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{orderService: orderService}
}

// RegisterRoutes registers purchase order routes
func (h *PurchaseOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/purchase-orders")
	{
		orders.GET("", h.List)
		orders.GET("/stats", h.Stats)
		orders.GET("/:id", h.GetByID)
		orders.POST("", h.Create)
		orders.PUT("/:id", h.Update)
		orders.PUT("/:id/submit", h.Submit)
		orders.PUT("/:id/approve", h.Approve)
		orders.PUT("/:id/order", h.MarkOrdered)
		orders.PUT("/:id/receive", h.Receive)
		orders.PUT("/:id/cancel", h.Cancel)
		orders.DELETE("/:id", h.Delete)
	}
}

// Create creates a new purchase order
func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	var req procurementapp.CreatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	order, err := h.orderService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// List returns purchase orders with search, filters and pagination
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	filter, ok := bindListQuery(c)
	if !ok {
		return
	}
	orders, page, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Paginated(c, orders, len(orders), page.Total, page.Page, page.Pages())
}

// GetByID returns a single purchase order
func (h *PurchaseOrderHandler) GetByID(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	order, err := h.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Update applies a partial update to a purchase order
func (h *PurchaseOrderHandler) Update(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	var req procurementapp.UpdatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	order, err := h.orderService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Submit moves a draft order into pending approval
func (h *PurchaseOrderHandler) Submit(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	order, err := h.orderService.Submit(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Approve approves a purchase order
func (h *PurchaseOrderHandler) Approve(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	userID, err := getUserID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	order, err := h.orderService.Approve(c.Request.Context(), id, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// MarkOrdered records that the order was placed with the supplier
func (h *PurchaseOrderHandler) MarkOrdered(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	order, err := h.orderService.MarkOrdered(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Receive records a full or partial delivery
func (h *PurchaseOrderHandler) Receive(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	// The body is optional; an absent one means a full delivery.
	var req procurementapp.ReceivePurchaseOrderRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BindError(c, err)
			return
		}
	}
	order, err := h.orderService.Receive(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Cancel voids a purchase order
func (h *PurchaseOrderHandler) Cancel(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	order, err := h.orderService.Cancel(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Delete removes a purchase order
func (h *PurchaseOrderHandler) Delete(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	if err := h.orderService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Message(c, "Purchase order deleted")
}

// Stats returns purchase order counts and value by status
func (h *PurchaseOrderHandler) Stats(c *gin.Context) {
	stats, err := h.orderService.Stats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}
