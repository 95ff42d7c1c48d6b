package handler

import (
	"github.com/gin-gonic/gin"

	salesapp "github.com/studioerp/backend/internal/application/sales"
)

// QuotationHandler handles quotation API endpoints
type QuotationHandler struct {
	BaseHandler
	quotationService *salesapp.QuotationService
}

// NewQuotationHandler creates a new QuotationHandler
func NewQuotationHandler(quotationService *salesapp.QuotationService) *QuotationHandler {
	return &QuotationHandler{quotationService: quotationService}
}

// RegisterRoutes registers quotation routes
func (h *QuotationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	quotations := rg.Group("/quotations")
	{
		quotations.GET("", h.List)
		quotations.GET("/stats", h.Stats)
		quotations.GET("/:id", h.GetByID)
		quotations.POST("", h.Create)
		quotations.PUT("/:id", h.Update)
		quotations.PUT("/:id/approve", h.Approve)
		quotations.PUT("/:id/reject", h.Reject)
		quotations.DELETE("/:id", h.Delete)
	}
}

// Create creates a new quotation
func (h *QuotationHandler) Create(c *gin.Context) {
	var req salesapp.CreateQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	quotation, err := h.quotationService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, quotation)
}

// List returns quotations with search, filters and pagination
func (h *QuotationHandler) List(c *gin.Context) {
	filter, ok := bindListQuery(c)
	if !ok {
		return
	}
	quotations, page, err := h.quotationService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Paginated(c, quotations, len(quotations), page.Total, page.Page, page.Pages())
}

// GetByID returns a single quotation
func (h *QuotationHandler) GetByID(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	quotation, err := h.quotationService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, quotation)
}

// Update applies a partial update to a quotation
func (h *QuotationHandler) Update(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	var req salesapp.UpdateQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	quotation, err := h.quotationService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, quotation)
}

// Approve approves a quotation and generates its invoice in one transaction
func (h *QuotationHandler) Approve(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	userID, err := getUserID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	result, err := h.quotationService.Approve(c.Request.Context(), id, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Reject rejects a quotation
func (h *QuotationHandler) Reject(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	quotation, err := h.quotationService.Reject(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, quotation)
}

// Delete removes a quotation
func (h *QuotationHandler) Delete(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	if err := h.quotationService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Message(c, "Quotation deleted")
}

// Stats returns quotation counts and value by status
func (h *QuotationHandler) Stats(c *gin.Context) {
	stats, err := h.quotationService.Stats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}
