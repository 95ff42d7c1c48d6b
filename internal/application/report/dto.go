package report

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	salesapp "github.com/studioerp/backend/internal/application/sales"
	"github.com/studioerp/backend/internal/domain/inventory"
	"github.com/studioerp/backend/internal/domain/partner"
	"github.com/studioerp/backend/internal/domain/project"
	"github.com/studioerp/backend/internal/domain/sales"
)

// LowStockItem is the dashboard view of an inventory item needing a reorder
type LowStockItem struct {
	ID           uuid.UUID       `json:"id"`
	ItemName     string          `json:"itemName"`
	Section      string          `json:"section"`
	Stock        decimal.Decimal `json:"stock"`
	ReorderLevel decimal.Decimal `json:"reorderLevel"`
	Status       string          `json:"status"`
}

// DashboardResponse is the aggregated overview for the landing page
type DashboardResponse struct {
	Clients        partner.ClientStats          `json:"clients"`
	Quotations     sales.QuotationStats         `json:"quotations"`
	Invoices       sales.InvoiceStats           `json:"invoices"`
	Tasks          project.TaskStats            `json:"tasks"`
	Inventory      inventory.ItemStats          `json:"inventory"`
	TeamCount      int64                        `json:"teamCount"`
	UserCount      int64                        `json:"userCount"`
	LowStockItems  []LowStockItem               `json:"lowStockItems"`
	RecentInvoices []salesapp.InvoiceResponse   `json:"recentInvoices"`
	RevenueByMonth []sales.MonthlyRevenue       `json:"revenueByMonth"`
}

// InventoryReportResponse combines design inventory and supplier stock health
type InventoryReportResponse struct {
	Items         inventory.ItemStats       `json:"items"`
	SupplyItems   inventory.SupplyItemStats `json:"supplyItems"`
	LowStockItems []LowStockItem            `json:"lowStockItems"`
}
