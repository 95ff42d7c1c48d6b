package report

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	salesapp "github.com/studioerp/backend/internal/application/sales"
	"github.com/studioerp/backend/internal/domain/identity"
	"github.com/studioerp/backend/internal/domain/inventory"
	"github.com/studioerp/backend/internal/domain/partner"
	"github.com/studioerp/backend/internal/domain/procurement"
	"github.com/studioerp/backend/internal/domain/project"
	"github.com/studioerp/backend/internal/domain/sales"
)

const (
	defaultRevenueMonths = 6
	lowStockLimit        = 10
	recentInvoiceLimit   = 5
)

// ReportService composes repository aggregates into dashboard and report
// views. It owns no state of its own.
type ReportService struct {
	clientRepo     partner.ClientRepository
	itemRepo       inventory.ItemRepository
	supplyItemRepo inventory.SupplyItemRepository
	quotationRepo  sales.QuotationRepository
	invoiceRepo    sales.InvoiceRepository
	orderRepo      procurement.PurchaseOrderRepository
	taskRepo       project.TaskRepository
	teamRepo       project.TeamRepository
	userRepo       identity.UserRepository
}

// NewReportService creates a new ReportService
func NewReportService(
	clientRepo partner.ClientRepository,
	itemRepo inventory.ItemRepository,
	supplyItemRepo inventory.SupplyItemRepository,
	quotationRepo sales.QuotationRepository,
	invoiceRepo sales.InvoiceRepository,
	orderRepo procurement.PurchaseOrderRepository,
	taskRepo project.TaskRepository,
	teamRepo project.TeamRepository,
	userRepo identity.UserRepository,
) *ReportService {
	return &ReportService{
		clientRepo:     clientRepo,
		itemRepo:       itemRepo,
		supplyItemRepo: supplyItemRepo,
		quotationRepo:  quotationRepo,
		invoiceRepo:    invoiceRepo,
		orderRepo:      orderRepo,
		taskRepo:       taskRepo,
		teamRepo:       teamRepo,
		userRepo:       userRepo,
	}
}

// Dashboard assembles the overview for the landing page. The independent
// aggregate queries run concurrently.
func (s *ReportService) Dashboard(ctx context.Context) (*DashboardResponse, error) {
	var resp DashboardResponse

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats, err := s.clientRepo.Stats(gctx)
		if err != nil {
			return err
		}
		resp.Clients = *stats
		return nil
	})
	g.Go(func() error {
		stats, err := s.quotationRepo.Stats(gctx)
		if err != nil {
			return err
		}
		resp.Quotations = *stats
		return nil
	})
	g.Go(func() error {
		stats, err := s.invoiceRepo.Stats(gctx)
		if err != nil {
			return err
		}
		resp.Invoices = *stats
		return nil
	})
	g.Go(func() error {
		stats, err := s.taskRepo.Stats(gctx)
		if err != nil {
			return err
		}
		resp.Tasks = *stats
		return nil
	})
	g.Go(func() error {
		stats, err := s.itemRepo.Stats(gctx)
		if err != nil {
			return err
		}
		resp.Inventory = *stats
		return nil
	})
	g.Go(func() error {
		count, err := s.teamRepo.Count(gctx)
		if err != nil {
			return err
		}
		resp.TeamCount = count
		return nil
	})
	g.Go(func() error {
		count, err := s.userRepo.Count(gctx)
		if err != nil {
			return err
		}
		resp.UserCount = count
		return nil
	})
	g.Go(func() error {
		items, err := s.itemRepo.FindLowStock(gctx, lowStockLimit)
		if err != nil {
			return err
		}
		resp.LowStockItems = toLowStockItems(items)
		return nil
	})
	g.Go(func() error {
		invoices, err := s.invoiceRepo.FindRecent(gctx, recentInvoiceLimit)
		if err != nil {
			return err
		}
		resp.RecentInvoices = make([]salesapp.InvoiceResponse, len(invoices))
		for i := range invoices {
			resp.RecentInvoices[i] = salesapp.ToInvoiceResponse(&invoices[i])
		}
		return nil
	})
	g.Go(func() error {
		since := time.Now().AddDate(0, -defaultRevenueMonths, 0)
		revenue, err := s.quotationRepo.RevenueByMonth(gctx, &since, nil)
		if err != nil {
			return err
		}
		resp.RevenueByMonth = revenue
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Revenue returns approved quotation value bucketed by approval month,
// newest first. Nil bounds leave the range open on that side.
func (s *ReportService) Revenue(ctx context.Context, start, end *time.Time) ([]sales.MonthlyRevenue, error) {
	return s.quotationRepo.RevenueByMonth(ctx, start, end)
}

// QuotationReport returns quotation counts and value by status
func (s *ReportService) QuotationReport(ctx context.Context) (*sales.QuotationStats, error) {
	return s.quotationRepo.Stats(ctx)
}

// PurchaseOrderReport returns purchase order counts and value by status
func (s *ReportService) PurchaseOrderReport(ctx context.Context) (*procurement.PurchaseOrderStats, error) {
	return s.orderRepo.Stats(ctx)
}

// InventoryReport combines design inventory and supplier stock health
func (s *ReportService) InventoryReport(ctx context.Context) (*InventoryReportResponse, error) {
	itemStats, err := s.itemRepo.Stats(ctx)
	if err != nil {
		return nil, err
	}
	supplyStats, err := s.supplyItemRepo.Stats(ctx)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.itemRepo.FindLowStock(ctx, lowStockLimit)
	if err != nil {
		return nil, err
	}
	return &InventoryReportResponse{
		Items:         *itemStats,
		SupplyItems:   *supplyStats,
		LowStockItems: toLowStockItems(lowStock),
	}, nil
}

func toLowStockItems(items []inventory.Item) []LowStockItem {
	out := make([]LowStockItem, len(items))
	for i, item := range items {
		out[i] = LowStockItem{
			ID:           item.ID,
			ItemName:     item.ItemName,
			Section:      item.Section,
			Stock:        item.Stock,
			ReorderLevel: item.ReorderLevel,
			Status:       string(item.Status),
		}
	}
	return out
}
