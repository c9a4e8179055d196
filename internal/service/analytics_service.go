package service

import (
	"context"
	"math"
	"math/rand"
	"time"

	interfaces "seller-service/internal/interfaces/infrastructure"
	serviceInterfaces "seller-service/internal/interfaces/service"
	"seller-service/pkg/logger"

	domain "seller-service/internal/domain/seller"

	"github.com/google/uuid"
)

const (
	// MaxTrendPoints bounds the synthetic series regardless of the requested window
	MaxTrendPoints = 365

	// trendJitter is the relative perturbation applied around the daily averages
	trendJitter = 0.15
)

// allTimeEpoch is the fixed start of the all_time reporting window
var allTimeEpoch = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

var _ serviceInterfaces.AnalyticsService = (*AnalyticsService)(nil)

// AnalyticsService produces dashboard analytics for sellers. The trend series
// is synthetic: points are derived from the seller's aggregate metrics with a
// bounded random perturbation, not from a real order ledger. The random
// source is injected so tests can seed determinism.
type AnalyticsService struct {
	sellerRepo interfaces.SellerRepository
	rng        *rand.Rand
}

func NewAnalyticsService(sellerRepo interfaces.SellerRepository, rng *rand.Rand) *AnalyticsService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &AnalyticsService{
		sellerRepo: sellerRepo,
		rng:        rng,
	}
}

// CalculatePeriodDates computes the reporting window for a period. When both
// custom bounds are supplied they are used verbatim; otherwise the window
// ends now with a period-dependent start.
func CalculatePeriodDates(period serviceInterfaces.AnalyticsPeriod, customStart, customEnd *time.Time) (time.Time, time.Time) {
	if customStart != nil && customEnd != nil {
		return *customStart, *customEnd
	}

	now := time.Now()

	switch period {
	case serviceInterfaces.PeriodDay:
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		end := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, int(999*time.Millisecond), now.Location())
		return start, end
	case serviceInterfaces.PeriodWeek:
		return now.AddDate(0, 0, -7), now
	case serviceInterfaces.PeriodMonth:
		return now.AddDate(0, -1, 0), now
	case serviceInterfaces.PeriodYear:
		return now.AddDate(-1, 0, 0), now
	case serviceInterfaces.PeriodAllTime:
		return allTimeEpoch, now
	default:
		return now.AddDate(0, -1, 0), now
	}
}

// GenerateTrendData produces one synthetic point per day over [start, end],
// or one per hour when granularity is day. Each point perturbs the supplied
// daily averages by up to ±15%, clamped to non-negative and rounded to
// 2 decimals, capped at MaxTrendPoints.
func (a *AnalyticsService) GenerateTrendData(
	start, end time.Time,
	granularity serviceInterfaces.AnalyticsPeriod,
	dailyAvgSales, dailyAvgRevenue float64,
) []serviceInterfaces.TrendPoint {
	step := 24 * time.Hour
	avgSales := dailyAvgSales
	avgRevenue := dailyAvgRevenue
	if granularity == serviceInterfaces.PeriodDay {
		step = time.Hour
		avgSales = dailyAvgSales / 24
		avgRevenue = dailyAvgRevenue / 24
	}

	points := make([]serviceInterfaces.TrendPoint, 0)
	for current := start; current.Before(end) && len(points) < MaxTrendPoints; current = current.Add(step) {
		sales := int(math.Round(a.perturb(avgSales)))
		if sales < 0 {
			sales = 0
		}
		revenue := round2(a.perturb(avgRevenue))
		if revenue < 0 {
			revenue = 0
		}

		orders := sales
		averageOrderValue := 0.0
		if orders > 0 {
			averageOrderValue = round2(revenue / float64(orders))
		}

		points = append(points, serviceInterfaces.TrendPoint{
			Date:              current,
			Sales:             sales,
			Revenue:           revenue,
			Orders:            orders,
			AverageOrderValue: averageOrderValue,
		})
	}
	return points
}

// ConversionRate is a simplistic percentage-like score derived from the sale
// count, capped at 100
func ConversionRate(sales int) float64 {
	if sales > 100 {
		return 100
	}
	if sales < 0 {
		return 0
	}
	return float64(sales)
}

// SellerAnalytics assembles the dashboard payload for a seller over the
// requested period
func (a *AnalyticsService) SellerAnalytics(
	ctx context.Context,
	sellerID uuid.UUID,
	period serviceInterfaces.AnalyticsPeriod,
	customStart, customEnd *time.Time,
) (*serviceInterfaces.SellerAnalytics, error) {
	logger.Debug("Building analytics for seller %s over period %s", sellerID, period)

	seller, err := a.sellerRepo.GetByID(ctx, sellerID)
	if err != nil {
		logger.Error("Failed to get seller for analytics: %v", err)
		return nil, err
	}
	if seller == nil {
		return nil, domain.NewError(domain.ErrKindNotFound, "Seller not found")
	}

	start, end := CalculatePeriodDates(period, customStart, customEnd)

	elapsedDays := time.Since(seller.CreatedAt).Hours() / 24
	if elapsedDays < 1 {
		elapsedDays = 1
	}
	dailyAvgSales := float64(seller.TotalSales) / elapsedDays
	dailyAvgRevenue := seller.TotalRevenue / elapsedDays

	return &serviceInterfaces.SellerAnalytics{
		SellerID:       seller.SellerID,
		Period:         period,
		PeriodStart:    start,
		PeriodEnd:      end,
		TotalSales:     seller.TotalSales,
		TotalRevenue:   seller.TotalRevenue,
		TotalProducts:  seller.TotalProducts,
		Rating:         seller.Rating,
		TotalReviews:   seller.TotalReviews,
		ConversionRate: ConversionRate(seller.TotalSales),
		Trend:          a.GenerateTrendData(start, end, period, dailyAvgSales, dailyAvgRevenue),
	}, nil
}

// perturb returns value adjusted by a uniform random factor in [1-jitter, 1+jitter]
func (a *AnalyticsService) perturb(value float64) float64 {
	factor := 1 + (a.rng.Float64()*2-1)*trendJitter
	return value * factor
}
