package service

import (
	"context"
	"time"

	domain "seller-service/internal/domain/seller"

	"github.com/google/uuid"
)

type SellerService interface {
	// Registration and lookup
	Register(ctx context.Context, req *domain.RegisterSellerRequest) (*domain.Seller, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Seller, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Seller, error)
	List(ctx context.Context, filters *domain.Filters) (*domain.ListResponse, error)
	ListPendingVerification(ctx context.Context) ([]*domain.Seller, error)
	Stats(ctx context.Context) (*domain.Stats, error)

	// Verification workflow
	SubmitForVerification(ctx context.Context, id uuid.UUID) (*domain.Seller, error)
	Approve(ctx context.Context, id, adminID uuid.UUID) (*domain.Seller, error)
	Reject(ctx context.Context, id uuid.UUID, reason string) (*domain.Seller, error)

	// Account status transitions
	Suspend(ctx context.Context, id uuid.UUID, reason string) (*domain.Seller, error)
	Reactivate(ctx context.Context, id uuid.UUID) (*domain.Seller, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Profile and banking updates
	UpdateProfile(ctx context.Context, id uuid.UUID, req *domain.UpdateProfileRequest) (*domain.Seller, error)
	UpdateBankingInfo(ctx context.Context, id uuid.UUID, req *domain.UpdateBankingRequest) (*domain.Seller, error)

	// Metrics bookkeeping
	IncrementProductCount(ctx context.Context, id uuid.UUID) (*domain.Seller, error)
	DecrementProductCount(ctx context.Context, id uuid.UUID) (*domain.Seller, error)
	RecordSale(ctx context.Context, id uuid.UUID, amount float64) (*domain.Seller, error)
	UpdateRating(ctx context.Context, id uuid.UUID, rating float64, totalReviews *int) (*domain.Seller, error)
	RecordLogin(ctx context.Context, id uuid.UUID) error
}

// AnalyticsPeriod selects the reporting window for seller analytics
type AnalyticsPeriod string

const (
	PeriodDay     AnalyticsPeriod = "day"
	PeriodWeek    AnalyticsPeriod = "week"
	PeriodMonth   AnalyticsPeriod = "month"
	PeriodYear    AnalyticsPeriod = "year"
	PeriodAllTime AnalyticsPeriod = "all_time"
)

// TrendPoint is a single synthetic data point in a seller's trend series
type TrendPoint struct {
	Date              time.Time `json:"date"`
	Sales             int       `json:"sales"`
	Revenue           float64   `json:"revenue"`
	Orders            int       `json:"orders"`
	AverageOrderValue float64   `json:"average_order_value"`
}

// SellerAnalytics is the dashboard payload for a single seller
type SellerAnalytics struct {
	SellerID       uuid.UUID       `json:"seller_id"`
	Period         AnalyticsPeriod `json:"period"`
	PeriodStart    time.Time       `json:"period_start"`
	PeriodEnd      time.Time       `json:"period_end"`
	TotalSales     int             `json:"total_sales"`
	TotalRevenue   float64         `json:"total_revenue"`
	TotalProducts  int             `json:"total_products"`
	Rating         float64         `json:"rating"`
	TotalReviews   int             `json:"total_reviews"`
	ConversionRate float64         `json:"conversion_rate"`
	Trend          []TrendPoint    `json:"trend"`
}

type AnalyticsService interface {
	SellerAnalytics(ctx context.Context, sellerID uuid.UUID, period AnalyticsPeriod, customStart, customEnd *time.Time) (*SellerAnalytics, error)
}
