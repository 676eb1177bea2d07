package service

import (
	"context"
	"math"
	"time"

	"github.com/Raj-Jadhav/shopping-Cart-backend/internal/domain"
	"github.com/Raj-Jadhav/shopping-Cart-backend/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	// DefaultWindowDays is the reporting window when the caller supplies none.
	DefaultWindowDays = 30

	topProductsLimit = 10

	// Performance bucket boundaries: 0 < total_sold <= 5 is a low performer,
	// total_sold > 10 a high performer. The 6-10 band belongs to neither.
	lowPerformerCeiling  = 5
	highPerformerFloor   = 10
	bestSellerThreshold  = 20
	restockStockCeiling  = 10
	lowSalesRecThreshold = 5
)

// DashboardSummary aggregates the window's completed orders.
type DashboardSummary struct {
	TotalOrders       int    `json:"total_orders"`
	TotalRevenue      string `json:"total_revenue"`
	FormattedRevenue  string `json:"formatted_revenue"`
	AverageOrderValue string `json:"average_order_value"`
	FormattedAvg      string `json:"formatted_avg"`
	PeriodDays        int    `json:"period_days"`
}

// ProductSalesView is one per-product aggregation row.
type ProductSalesView struct {
	ProductID     string `json:"product_id"`
	Name          string `json:"name"`
	TotalQuantity int    `json:"total_quantity"`
	TotalRevenue  string `json:"total_revenue"`
	OrderCount    int    `json:"order_count"`
}

// NeverOrderedView is an active product with no sales in the window.
type NeverOrderedView struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Price         string `json:"price"`
	StockQuantity int    `json:"stock_quantity"`
}

// FrequencyPoint is one calendar day of order activity.
type FrequencyPoint struct {
	Date    string `json:"date"`
	Orders  int    `json:"orders"`
	Revenue string `json:"revenue"`
}

// DashboardStats is the dashboard endpoint payload.
type DashboardStats struct {
	Summary        DashboardSummary   `json:"summary"`
	MostOrdered    []ProductSalesView `json:"most_ordered_products"`
	LeastOrdered   []ProductSalesView `json:"least_ordered_products"`
	NeverOrdered   []NeverOrderedView `json:"never_ordered_products"`
	OrderFrequency []FrequencyPoint   `json:"order_frequency"`
}

// ProductInsight is one product's all-history performance with its
// recommendation.
type ProductInsight struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Price            string `json:"price"`
	FormattedPrice   string `json:"formatted_price"`
	StockQuantity    int    `json:"stock_quantity"`
	TotalSold        int    `json:"total_sold"`
	OrdersCount      int    `json:"orders_count"`
	Revenue          string `json:"revenue"`
	FormattedRevenue string `json:"formatted_revenue"`
	Recommendation   string `json:"recommendation"`
}

// InsightCounts summarizes the performance buckets.
type InsightCounts struct {
	HighPerformersCount int `json:"high_performers_count"`
	LowPerformersCount  int `json:"low_performers_count"`
	NoSalesCount        int `json:"no_sales_count"`
}

// ProductAnalytics is the product analytics endpoint payload.
type ProductAnalytics struct {
	AllProducts    []ProductInsight `json:"all_products"`
	HighPerformers []ProductInsight `json:"high_performers"`
	LowPerformers  []ProductInsight `json:"low_performers"`
	NoSales        []ProductInsight `json:"no_sales"`
	Insights       InsightCounts    `json:"insights"`
}

// DailyRevenuePoint is one day of the revenue series.
type DailyRevenuePoint struct {
	Date             string `json:"date"`
	Revenue          string `json:"revenue"`
	FormattedRevenue string `json:"formatted_revenue"`
	Orders           int    `json:"orders"`
	AvgOrder         string `json:"avg_order"`
	FormattedAvg     string `json:"formatted_avg"`
}

// RevenueSummary carries the series totals. GrowthRate is the only
// float-valued figure; it is a ratio, not a currency amount.
type RevenueSummary struct {
	TotalRevenue   string  `json:"total_revenue"`
	FormattedTotal string  `json:"formatted_total"`
	GrowthRate     float64 `json:"growth_rate"`
	PeriodDays     int     `json:"period_days"`
}

// RevenueAnalysis is the revenue endpoint payload.
type RevenueAnalysis struct {
	DailyRevenue []DailyRevenuePoint `json:"daily_revenue"`
	Summary      RevenueSummary      `json:"summary"`
}

// ReportingService rolls historical orders up into dashboard statistics.
// All queries are read-only and tolerate a slightly stale replica.
type ReportingService interface {
	Dashboard(ctx context.Context, days int) (*DashboardStats, error)
	ProductAnalytics(ctx context.Context) (*ProductAnalytics, error)
	RevenueAnalysis(ctx context.Context, days int) (*RevenueAnalysis, error)
}

type reportingService struct {
	store  repository.Store
	logger *zap.Logger
}

// NewReportingService creates a new instance of ReportingService
func NewReportingService(store repository.Store, logger *zap.Logger) ReportingService {
	return &reportingService{store: store, logger: logger}
}

// Dashboard aggregates the window's completed orders into summary figures,
// product rankings and a per-day frequency series
func (s *reportingService) Dashboard(ctx context.Context, days int) (*DashboardStats, error) {
	days = normalizeDays(days)
	since := time.Now().AddDate(0, 0, -days)
	reporting := s.store.Reporting()

	summary, err := reporting.Summary(ctx, since)
	if err != nil {
		return nil, err
	}

	mostOrdered, err := reporting.ProductSales(ctx, since, repository.SortOrderDesc, topProductsLimit)
	if err != nil {
		return nil, err
	}

	leastOrdered, err := reporting.ProductSales(ctx, since, repository.SortOrderAsc, topProductsLimit)
	if err != nil {
		return nil, err
	}

	neverOrdered, err := reporting.NeverOrdered(ctx, since, topProductsLimit)
	if err != nil {
		return nil, err
	}

	frequency, err := reporting.OrderFrequency(ctx, since)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		Summary: DashboardSummary{
			TotalOrders:       summary.TotalOrders,
			TotalRevenue:      summary.TotalRevenue.StringFixed(2),
			FormattedRevenue:  domain.FormatAmount(summary.TotalRevenue),
			AverageOrderValue: summary.AverageOrderValue.StringFixed(2),
			FormattedAvg:      domain.FormatAmount(summary.AverageOrderValue),
			PeriodDays:        days,
		},
		MostOrdered:    toSalesViews(mostOrdered),
		LeastOrdered:   toSalesViews(leastOrdered),
		NeverOrdered:   make([]NeverOrderedView, 0, len(neverOrdered)),
		OrderFrequency: make([]FrequencyPoint, 0, len(frequency)),
	}

	for _, p := range neverOrdered {
		stats.NeverOrdered = append(stats.NeverOrdered, NeverOrderedView{
			ID:            p.ID.String(),
			Name:          p.Name,
			Price:         p.Price.StringFixed(2),
			StockQuantity: p.StockQuantity,
		})
	}

	for _, b := range frequency {
		stats.OrderFrequency = append(stats.OrderFrequency, FrequencyPoint{
			Date:    b.Date.Format("2006-01-02"),
			Orders:  b.Orders,
			Revenue: b.Revenue.StringFixed(2),
		})
	}

	return stats, nil
}

// ProductAnalytics classifies every active product by all-history sales and
// attaches a pricing/stocking recommendation
func (s *reportingService) ProductAnalytics(ctx context.Context) (*ProductAnalytics, error) {
	products, err := s.store.Reporting().ProductPerformance(ctx)
	if err != nil {
		return nil, err
	}

	analytics := &ProductAnalytics{
		AllProducts:    make([]ProductInsight, 0, len(products)),
		HighPerformers: []ProductInsight{},
		LowPerformers:  []ProductInsight{},
		NoSales:        []ProductInsight{},
	}

	for _, p := range products {
		insight := ProductInsight{
			ID:               p.ID.String(),
			Name:             p.Name,
			Price:            p.Price.StringFixed(2),
			FormattedPrice:   domain.FormatAmount(p.Price),
			StockQuantity:    p.StockQuantity,
			TotalSold:        p.TotalSold,
			OrdersCount:      p.OrdersCount,
			Revenue:          p.Revenue.StringFixed(2),
			FormattedRevenue: domain.FormatAmount(p.Revenue),
			Recommendation:   RecommendationFor(p.TotalSold, p.StockQuantity),
		}

		analytics.AllProducts = append(analytics.AllProducts, insight)

		switch {
		case p.TotalSold == 0:
			analytics.NoSales = append(analytics.NoSales, insight)
		case p.TotalSold > highPerformerFloor:
			analytics.HighPerformers = append(analytics.HighPerformers, insight)
		case p.TotalSold <= lowPerformerCeiling:
			analytics.LowPerformers = append(analytics.LowPerformers, insight)
		}
	}

	analytics.Insights = InsightCounts{
		HighPerformersCount: len(analytics.HighPerformers),
		LowPerformersCount:  len(analytics.LowPerformers),
		NoSalesCount:        len(analytics.NoSales),
	}

	return analytics, nil
}

// RevenueAnalysis builds the daily revenue series with its growth rate
func (s *reportingService) RevenueAnalysis(ctx context.Context, days int) (*RevenueAnalysis, error) {
	days = normalizeDays(days)
	since := time.Now().AddDate(0, 0, -days)

	buckets, err := s.store.Reporting().OrderFrequency(ctx, since)
	if err != nil {
		return nil, err
	}

	series := make([]DailyRevenuePoint, 0, len(buckets))
	total := decimal.Zero
	for _, b := range buckets {
		total = total.Add(b.Revenue)
		series = append(series, DailyRevenuePoint{
			Date:             b.Date.Format("2006-01-02"),
			Revenue:          b.Revenue.StringFixed(2),
			FormattedRevenue: domain.FormatAmount(b.Revenue),
			Orders:           b.Orders,
			AvgOrder:         b.AvgOrder.StringFixed(2),
			FormattedAvg:     domain.FormatAmount(b.AvgOrder),
		})
	}

	return &RevenueAnalysis{
		DailyRevenue: series,
		Summary: RevenueSummary{
			TotalRevenue:   total.StringFixed(2),
			FormattedTotal: domain.FormatAmount(total),
			GrowthRate:     growthRate(buckets),
			PeriodDays:     days,
		},
	}, nil
}

// RecommendationFor is a pure function of all-history sales and current
// stock, mirroring the fixed rule table used by the storefront.
func RecommendationFor(totalSold, stock int) string {
	switch {
	case totalSold == 0:
		return "Consider offering discount or promotion"
	case totalSold > bestSellerThreshold && stock < restockStockCeiling:
		return "High demand! Restock immediately"
	case totalSold > bestSellerThreshold:
		return "Best seller! Consider increasing price"
	case totalSold < lowSalesRecThreshold:
		return "Low sales. Consider discount or bundle deals"
	default:
		return "Moderate performance. Monitor trends"
	}
}

// growthRate compares the last day's revenue to the first day's as a
// percentage. With fewer than two points, or a zero first day, growth is 0.
// The ratio itself is inherently floating point; the inputs stay decimal.
func growthRate(buckets []*repository.DateBucket) float64 {
	if len(buckets) < 2 {
		return 0
	}

	first := buckets[0].Revenue
	if first.IsZero() {
		return 0
	}
	last := buckets[len(buckets)-1].Revenue

	rate := last.Sub(first).InexactFloat64() / first.InexactFloat64() * 100
	return math.Round(rate*100) / 100
}

func normalizeDays(days int) int {
	if days <= 0 {
		return DefaultWindowDays
	}
	return days
}

func toSalesViews(stats []*repository.ProductSales) []ProductSalesView {
	views := make([]ProductSalesView, 0, len(stats))
	for _, row := range stats {
		views = append(views, ProductSalesView{
			ProductID:     row.ProductID.String(),
			Name:          row.Name,
			TotalQuantity: row.TotalQuantity,
			TotalRevenue:  row.TotalRevenue.StringFixed(2),
			OrderCount:    row.OrderCount,
		})
	}
	return views
}
