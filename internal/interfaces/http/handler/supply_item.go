package handler

import (
	"github.com/gin-gonic/gin"

	inventoryapp "github.com/studioerp/backend/internal/application/inventory"
)

// SupplyItemHandler handles supplier stock API endpoints
type SupplyItemHandler struct {
	BaseHandler
	supplyService *inventoryapp.SupplyItemService
}

// NewSupplyItemHandler creates a new SupplyItemHandler
func NewSupplyItemHandler(supplyService *inventoryapp.SupplyItemService) *SupplyItemHandler {
	return &SupplyItemHandler{supplyService: supplyService}
}

// RegisterRoutes registers supply item routes
func (h *SupplyItemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	items := rg.Group("/supply-items")
	{
		items.GET("", h.List)
		items.GET("/stats", h.Stats)
		items.GET("/:id", h.GetByID)
		items.POST("", h.Create)
		items.PUT("/:id", h.Update)
		items.PUT("/:id/stock", h.AdjustStock)
		items.DELETE("/:id", h.Delete)
	}
}

// Create creates a new supply item
func (h *SupplyItemHandler) Create(c *gin.Context) {
	var req inventoryapp.CreateSupplyItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	item, err := h.supplyService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// List returns supply items with search, filters and pagination
func (h *SupplyItemHandler) List(c *gin.Context) {
	filter, ok := bindListQuery(c)
	if !ok {
		return
	}
	items, page, err := h.supplyService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Paginated(c, items, len(items), page.Total, page.Page, page.Pages())
}

// GetByID returns a single supply item
func (h *SupplyItemHandler) GetByID(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	item, err := h.supplyService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Update applies a partial update to a supply item
func (h *SupplyItemHandler) Update(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	var req inventoryapp.UpdateSupplyItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	item, err := h.supplyService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// AdjustStock sets the current stock level and stamps the receipt time
func (h *SupplyItemHandler) AdjustStock(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	var req inventoryapp.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	item, err := h.supplyService.AdjustStock(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Delete removes a supply item
func (h *SupplyItemHandler) Delete(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	if err := h.supplyService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Message(c, "Supply item deleted")
}

// Stats returns supply stock counts by status
func (h *SupplyItemHandler) Stats(c *gin.Context) {
	stats, err := h.supplyService.Stats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}
