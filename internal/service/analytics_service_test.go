package service

import (
	"context"
	"math"
	"math/rand"
	"testing"
	"time"

	domain "seller-service/internal/domain/seller"
	"seller-service/internal/infrastructure/repository"
	interfaces "seller-service/internal/interfaces/infrastructure"
	serviceInterfaces "seller-service/internal/interfaces/service"

	"github.com/google/uuid"
)

func newSeededAnalytics(repo interfaces.SellerRepository, seed int64) *AnalyticsService {
	return NewAnalyticsService(repo, rand.New(rand.NewSource(seed)))
}

func TestCalculatePeriodDates_CustomRange(t *testing.T) {
	start := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)

	gotStart, gotEnd := CalculatePeriodDates(serviceInterfaces.PeriodWeek, &start, &end)
	if !gotStart.Equal(start) || !gotEnd.Equal(end) {
		t.Errorf("Expected custom range to be used verbatim, got %v - %v", gotStart, gotEnd)
	}
}

func TestCalculatePeriodDates_Day(t *testing.T) {
	start, end := CalculatePeriodDates(serviceInterfaces.PeriodDay, nil, nil)

	if start.Hour() != 0 || start.Minute() != 0 || start.Second() != 0 {
		t.Errorf("Expected day window to start at midnight, got %v", start)
	}
	if end.Hour() != 23 || end.Minute() != 59 || end.Second() != 59 {
		t.Errorf("Expected day window to end at 23:59:59, got %v", end)
	}
	if start.Day() != end.Day() {
		t.Errorf("Expected day window to cover a single day, got %v - %v", start, end)
	}
}

func TestCalculatePeriodDates_Week(t *testing.T) {
	start, end := CalculatePeriodDates(serviceInterfaces.PeriodWeek, nil, nil)

	span := end.Sub(start)
	if span < 6*24*time.Hour || span > 8*24*time.Hour {
		t.Errorf("Expected roughly a 7-day window, got %v", span)
	}
}

func TestCalculatePeriodDates_AllTime(t *testing.T) {
	start, _ := CalculatePeriodDates(serviceInterfaces.PeriodAllTime, nil, nil)

	expected := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	if !start.Equal(expected) {
		t.Errorf("Expected all_time window to start at %v, got %v", expected, start)
	}
}

func TestCalculatePeriodDates_UnknownDefaultsToMonth(t *testing.T) {
	start, end := CalculatePeriodDates(serviceInterfaces.AnalyticsPeriod("fortnight"), nil, nil)

	if !start.AddDate(0, 1, 0).Equal(end) {
		t.Errorf("Expected unknown period to fall back to a month window, got %v - %v", start, end)
	}
}

func TestGenerateTrendData_WeekWindow(t *testing.T) {
	analytics := newSeededAnalytics(repository.NewMockSellerRepository(), 42)

	end := time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC)
	start := end.AddDate(0, 0, -7)

	points := analytics.GenerateTrendData(start, end, serviceInterfaces.PeriodWeek, 10, 250)
	if len(points) != 7 {
		t.Fatalf("Expected exactly 7 daily points for a 7-day window, got %d", len(points))
	}

	for i, point := range points {
		if point.Sales < 0 {
			t.Errorf("Point %d: expected non-negative sales, got %d", i, point.Sales)
		}
		if point.Revenue < 0 {
			t.Errorf("Point %d: expected non-negative revenue, got %f", i, point.Revenue)
		}
		if point.Orders != point.Sales {
			t.Errorf("Point %d: expected orders to equal sales, got %d vs %d", i, point.Orders, point.Sales)
		}
		if point.Orders > 0 {
			expected := round2(point.Revenue / float64(point.Orders))
			if math.Abs(point.AverageOrderValue-expected) > 0.001 {
				t.Errorf("Point %d: expected average order value %f, got %f", i, expected, point.AverageOrderValue)
			}
		} else if point.AverageOrderValue != 0 {
			t.Errorf("Point %d: expected zero average order value with zero orders, got %f", i, point.AverageOrderValue)
		}
		expectedDate := start.Add(time.Duration(i) * 24 * time.Hour)
		if !point.Date.Equal(expectedDate) {
			t.Errorf("Point %d: expected date %v, got %v", i, expectedDate, point.Date)
		}
	}
}

func TestGenerateTrendData_JitterBounds(t *testing.T) {
	analytics := newSeededAnalytics(repository.NewMockSellerRepository(), 7)

	end := time.Date(2026, time.August, 28, 0, 0, 0, 0, time.UTC)
	start := end.AddDate(0, 0, -30)

	points := analytics.GenerateTrendData(start, end, serviceInterfaces.PeriodMonth, 100, 5000)
	for i, point := range points {
		if point.Sales < 85 || point.Sales > 115 {
			t.Errorf("Point %d: expected sales within 15%% of 100, got %d", i, point.Sales)
		}
		if point.Revenue < 4250 || point.Revenue > 5750 {
			t.Errorf("Point %d: expected revenue within 15%% of 5000, got %f", i, point.Revenue)
		}
	}
}

func TestGenerateTrendData_HourlyForDayGranularity(t *testing.T) {
	analytics := newSeededAnalytics(repository.NewMockSellerRepository(), 1)

	start := time.Date(2026, time.August, 28, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.August, 28, 23, 59, 59, int(999*time.Millisecond), time.UTC)

	points := analytics.GenerateTrendData(start, end, serviceInterfaces.PeriodDay, 48, 2400)
	if len(points) != 24 {
		t.Fatalf("Expected 24 hourly points for a day window, got %d", len(points))
	}

	// Averages are spread per hour: 48 sales/day gives roughly 2 per point
	for i, point := range points {
		if point.Sales < 1 || point.Sales > 3 {
			t.Errorf("Point %d: expected hourly sales near 2, got %d", i, point.Sales)
		}
	}
}

func TestGenerateTrendData_CappedAtMaxPoints(t *testing.T) {
	analytics := newSeededAnalytics(repository.NewMockSellerRepository(), 3)

	end := time.Date(2026, time.August, 28, 0, 0, 0, 0, time.UTC)
	start := end.AddDate(-2, 0, 0)

	points := analytics.GenerateTrendData(start, end, serviceInterfaces.PeriodYear, 5, 100)
	if len(points) != MaxTrendPoints {
		t.Errorf("Expected series capped at %d points, got %d", MaxTrendPoints, len(points))
	}
}

func TestGenerateTrendData_Deterministic(t *testing.T) {
	end := time.Date(2026, time.August, 28, 0, 0, 0, 0, time.UTC)
	start := end.AddDate(0, 0, -7)

	first := newSeededAnalytics(repository.NewMockSellerRepository(), 99).
		GenerateTrendData(start, end, serviceInterfaces.PeriodWeek, 10, 250)
	second := newSeededAnalytics(repository.NewMockSellerRepository(), 99).
		GenerateTrendData(start, end, serviceInterfaces.PeriodWeek, 10, 250)

	if len(first) != len(second) {
		t.Fatalf("Expected identical series lengths, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Point %d: expected identical points for the same seed, got %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestConversionRate(t *testing.T) {
	tests := []struct {
		sales    int
		expected float64
	}{
		{0, 0},
		{42, 42},
		{100, 100},
		{250, 100},
		{-3, 0},
	}

	for _, tt := range tests {
		if got := ConversionRate(tt.sales); got != tt.expected {
			t.Errorf("ConversionRate(%d) = %f, expected %f", tt.sales, got, tt.expected)
		}
	}
}

func TestAnalyticsService_SellerAnalytics(t *testing.T) {
	repo := repository.NewMockSellerRepository()
	analytics := newSeededAnalytics(repo, 11)

	seller := &domain.Seller{
		SellerID:           uuid.New(),
		UserID:             uuid.New(),
		BusinessName:       "Acme",
		Status:             domain.StatusActive,
		VerificationStatus: domain.VerificationVerified,
		Rating:             4.2,
		TotalReviews:       30,
		TotalProducts:      15,
		TotalSales:         140,
		TotalRevenue:       12500.50,
		CreatedAt:          time.Now().AddDate(0, 0, -30),
		UpdatedAt:          time.Now(),
		Version:            1,
	}
	if err := repo.Create(context.Background(), seller); err != nil {
		t.Fatalf("Failed to create seller: %v", err)
	}

	result, err := analytics.SellerAnalytics(context.Background(), seller.SellerID, serviceInterfaces.PeriodWeek, nil, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.SellerID != seller.SellerID {
		t.Errorf("Expected seller %s, got %s", seller.SellerID, result.SellerID)
	}
	if result.TotalSales != 140 {
		t.Errorf("Expected total sales 140, got %d", result.TotalSales)
	}
	if result.TotalRevenue != 12500.50 {
		t.Errorf("Expected total revenue 12500.50, got %f", result.TotalRevenue)
	}
	if result.ConversionRate != 100 {
		t.Errorf("Expected conversion rate capped at 100, got %f", result.ConversionRate)
	}
	if len(result.Trend) != 7 {
		t.Errorf("Expected 7 trend points for a week, got %d", len(result.Trend))
	}
	if !result.PeriodEnd.After(result.PeriodStart) {
		t.Errorf("Expected period end after start, got %v - %v", result.PeriodStart, result.PeriodEnd)
	}
}

func TestAnalyticsService_SellerAnalytics_NotFound(t *testing.T) {
	analytics := newSeededAnalytics(repository.NewMockSellerRepository(), 11)

	_, err := analytics.SellerAnalytics(context.Background(), uuid.New(), serviceInterfaces.PeriodMonth, nil, nil)
	if !domain.IsKind(err, domain.ErrKindNotFound) {
		t.Errorf("Expected not found error, got %v", err)
	}
}
