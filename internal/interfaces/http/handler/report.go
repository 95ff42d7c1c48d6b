package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	reportapp "github.com/studioerp/backend/internal/application/report"
)

// ReportHandler handles dashboard and reporting API endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// RegisterRoutes registers report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/dashboard", h.Dashboard)
		reports.GET("/revenue", h.Revenue)
		reports.GET("/quotations", h.Quotations)
		reports.GET("/purchase-orders", h.PurchaseOrders)
		reports.GET("/inventory", h.Inventory)
	}
}

// Dashboard returns the aggregated overview
func (h *ReportHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.reportService.Dashboard(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dashboard)
}

// Revenue returns approved quotation value per month, optionally limited to
// an approval date range
func (h *ReportHandler) Revenue(c *gin.Context) {
	var start, end *time.Time
	if raw := c.Query("startDate"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.BadRequest(c, "startDate must be formatted YYYY-MM-DD")
			return
		}
		start = &parsed
	}
	if raw := c.Query("endDate"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.BadRequest(c, "endDate must be formatted YYYY-MM-DD")
			return
		}
		end = &parsed
	}
	if start != nil && end != nil && end.Before(*start) {
		h.BadRequest(c, "endDate cannot be before startDate")
		return
	}

	revenue, err := h.reportService.Revenue(c.Request.Context(), start, end)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, revenue)
}

// Quotations returns the quotation status breakdown
func (h *ReportHandler) Quotations(c *gin.Context) {
	stats, err := h.reportService.QuotationReport(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// PurchaseOrders returns the purchase order status breakdown
func (h *ReportHandler) PurchaseOrders(c *gin.Context) {
	stats, err := h.reportService.PurchaseOrderReport(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// Inventory returns combined inventory health
func (h *ReportHandler) Inventory(c *gin.Context) {
	report, err := h.reportService.InventoryReport(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}
