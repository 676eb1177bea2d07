package service

import (
	"context"
	"testing"
	"time"

	"github.com/Raj-Jadhav/shopping-Cart-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func performanceRow(name string, totalSold, stock int) *repository.ProductPerformance {
	return &repository.ProductPerformance{
		ID:            uuid.New(),
		Name:          name,
		Price:         decimal.RequireFromString("1000.00"),
		StockQuantity: stock,
		TotalSold:     totalSold,
		OrdersCount:   totalSold,
		Revenue:       decimal.NewFromInt(int64(totalSold)).Mul(decimal.RequireFromString("1000.00")),
	}
}

func TestProductAnalytics_Buckets(t *testing.T) {
	store := newMockStore()
	store.reporting.performance = []*repository.ProductPerformance{
		performanceRow("never sold", 0, 10),
		performanceRow("slow mover", 3, 10),
		performanceRow("boundary low", 5, 10),
		performanceRow("middle band", 8, 10),
		performanceRow("boundary middle", 10, 10),
		performanceRow("strong seller", 15, 10),
	}

	service := NewReportingService(store, zap.NewNop())
	analytics, err := service.ProductAnalytics(context.Background())
	if err != nil {
		t.Fatalf("product analytics failed: %v", err)
	}

	if len(analytics.AllProducts) != 6 {
		t.Errorf("all products = %d, want 6", len(analytics.AllProducts))
	}

	// total_sold == 0 is no-sales, 1..5 low, >10 high; 6..10 joins no bucket.
	if got := names(analytics.NoSales); len(got) != 1 || got[0] != "never sold" {
		t.Errorf("no sales bucket = %v", got)
	}
	if got := names(analytics.LowPerformers); len(got) != 2 || got[0] != "slow mover" || got[1] != "boundary low" {
		t.Errorf("low performers bucket = %v", got)
	}
	if got := names(analytics.HighPerformers); len(got) != 1 || got[0] != "strong seller" {
		t.Errorf("high performers bucket = %v", got)
	}

	if analytics.Insights.NoSalesCount != 1 ||
		analytics.Insights.LowPerformersCount != 2 ||
		analytics.Insights.HighPerformersCount != 1 {
		t.Errorf("insight counts = %+v", analytics.Insights)
	}
}

func names(insights []ProductInsight) []string {
	out := make([]string, 0, len(insights))
	for _, insight := range insights {
		out = append(out, insight.Name)
	}
	return out
}

func TestRecommendationFor(t *testing.T) {
	tests := []struct {
		name      string
		totalSold int
		stock     int
		want      string
	}{
		{"never sold", 0, 50, "Consider offering discount or promotion"},
		{"hot and scarce", 25, 5, "High demand! Restock immediately"},
		{"hot and stocked", 25, 50, "Best seller! Consider increasing price"},
		{"slow mover", 3, 50, "Low sales. Consider discount or bundle deals"},
		{"steady", 10, 50, "Moderate performance. Monitor trends"},
		{"threshold exactly twenty", 20, 5, "Moderate performance. Monitor trends"},
		{"threshold exactly five", 5, 50, "Moderate performance. Monitor trends"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RecommendationFor(tt.totalSold, tt.stock); got != tt.want {
				t.Errorf("RecommendationFor(%d, %d) = %q, want %q", tt.totalSold, tt.stock, got, tt.want)
			}
		})
	}
}

func TestDashboard_DefaultsWindowAndFormatsAmounts(t *testing.T) {
	store := newMockStore()
	store.reporting.summary = &repository.WindowSummary{
		TotalOrders:       4,
		TotalRevenue:      decimal.RequireFromString("10000.00"),
		AverageOrderValue: decimal.RequireFromString("2500.00"),
	}
	store.reporting.frequency = []*repository.DateBucket{
		{
			Date:     time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			Orders:   4,
			Revenue:  decimal.RequireFromString("10000.00"),
			AvgOrder: decimal.RequireFromString("2500.00"),
		},
	}

	service := NewReportingService(store, zap.NewNop())
	stats, err := service.Dashboard(context.Background(), 0)
	if err != nil {
		t.Fatalf("dashboard failed: %v", err)
	}

	if stats.Summary.PeriodDays != DefaultWindowDays {
		t.Errorf("period days = %d, want default %d", stats.Summary.PeriodDays, DefaultWindowDays)
	}
	if stats.Summary.TotalRevenue != "10000.00" {
		t.Errorf("total revenue = %s, want 10000.00", stats.Summary.TotalRevenue)
	}
	if len(stats.OrderFrequency) != 1 || stats.OrderFrequency[0].Date != "2026-08-01" {
		t.Errorf("order frequency = %+v", stats.OrderFrequency)
	}
}

func TestRevenueAnalysis_GrowthRate(t *testing.T) {
	day := func(offset int, revenue string) *repository.DateBucket {
		return &repository.DateBucket{
			Date:     time.Date(2026, 8, 1+offset, 0, 0, 0, 0, time.UTC),
			Orders:   1,
			Revenue:  decimal.RequireFromString(revenue),
			AvgOrder: decimal.RequireFromString(revenue),
		}
	}

	tests := []struct {
		name    string
		buckets []*repository.DateBucket
		want    float64
	}{
		{"empty series", nil, 0},
		{"single point", []*repository.DateBucket{day(0, "100.00")}, 0},
		{"zero first day", []*repository.DateBucket{day(0, "0.00"), day(1, "500.00")}, 0},
		{"doubled", []*repository.DateBucket{day(0, "100.00"), day(1, "200.00")}, 100},
		{"halved", []*repository.DateBucket{day(0, "200.00"), day(1, "100.00")}, -50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMockStore()
			store.reporting.frequency = tt.buckets

			service := NewReportingService(store, zap.NewNop())
			analysis, err := service.RevenueAnalysis(context.Background(), 7)
			if err != nil {
				t.Fatalf("revenue analysis failed: %v", err)
			}

			if analysis.Summary.GrowthRate != tt.want {
				t.Errorf("growth rate = %v, want %v", analysis.Summary.GrowthRate, tt.want)
			}
		})
	}
}

func TestRevenueAnalysis_TotalsAreExact(t *testing.T) {
	store := newMockStore()
	store.reporting.frequency = []*repository.DateBucket{
		{Date: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), Orders: 1, Revenue: decimal.RequireFromString("0.10"), AvgOrder: decimal.RequireFromString("0.10")},
		{Date: time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC), Orders: 1, Revenue: decimal.RequireFromString("0.20"), AvgOrder: decimal.RequireFromString("0.20")},
	}

	service := NewReportingService(store, zap.NewNop())
	analysis, err := service.RevenueAnalysis(context.Background(), 7)
	if err != nil {
		t.Fatalf("revenue analysis failed: %v", err)
	}

	// 0.10 + 0.20 must be exactly 0.30, not a float artifact.
	if analysis.Summary.TotalRevenue != "0.30" {
		t.Errorf("total revenue = %s, want 0.30", analysis.Summary.TotalRevenue)
	}
}
