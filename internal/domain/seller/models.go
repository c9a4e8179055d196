package seller

import (
	"time"

	"github.com/google/uuid"
)

// SellerStatus represents the coarse account status of a seller
type SellerStatus string

const (
	StatusPending   SellerStatus = "pending"
	StatusActive    SellerStatus = "active"
	StatusSuspended SellerStatus = "suspended"
	StatusRejected  SellerStatus = "rejected"
)

// VerificationStatus represents the state of the verification workflow,
// independent of the account status
type VerificationStatus string

const (
	VerificationUnverified VerificationStatus = "unverified"
	VerificationPending    VerificationStatus = "pending"
	VerificationVerified   VerificationStatus = "verified"
	VerificationRejected   VerificationStatus = "rejected"
)

// BusinessType enumerates the legal forms a seller can register under
type BusinessType string

const (
	BusinessTypeIndividual     BusinessType = "individual"
	BusinessTypeSoleProprietor BusinessType = "sole_proprietor"
	BusinessTypeLLC            BusinessType = "llc"
	BusinessTypeCorporation    BusinessType = "corporation"
	BusinessTypePartnership    BusinessType = "partnership"
)

// Seller is the aggregate root for a marketplace vendor account.
// Banking fields are excluded from JSON serialization and only exposed
// through the explicit BankingInfoResponse DTO.
type Seller struct {
	SellerID uuid.UUID `json:"seller_id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID   uuid.UUID `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`

	BusinessName       string       `json:"business_name" gorm:"not null"`
	BusinessType       BusinessType `json:"business_type" gorm:"type:text;default:individual"`
	BusinessEmail      string       `json:"business_email"`
	BusinessPhone      string       `json:"business_phone"`
	BusinessAddress    string       `json:"business_address"`
	BusinessCity       string       `json:"business_city"`
	BusinessState      string       `json:"business_state"`
	BusinessPostalCode string       `json:"business_postal_code"`
	BusinessCountry    string       `json:"business_country"`
	Description        *string      `json:"description,omitempty"`
	LogoURL            *string      `json:"logo_url,omitempty"`
	WebsiteURL         *string      `json:"website_url,omitempty"`

	Status             SellerStatus       `json:"status" gorm:"type:text;not null;default:pending;index"`
	VerificationStatus VerificationStatus `json:"verification_status" gorm:"type:text;not null;default:unverified;index"`
	VerifiedAt         *time.Time         `json:"verified_at,omitempty"`
	VerifiedBy         *uuid.UUID         `json:"verified_by,omitempty" gorm:"type:uuid"`
	RejectionReason    *string            `json:"rejection_reason,omitempty"`
	SuspensionReason   *string            `json:"suspension_reason,omitempty"`

	Rating         float64  `json:"rating" gorm:"not null;default:0;check:rating >= 0 AND rating <= 5"`
	TotalReviews   int      `json:"total_reviews" gorm:"not null;default:0"`
	TotalProducts  int      `json:"total_products" gorm:"not null;default:0;check:total_products >= 0"`
	TotalSales     int      `json:"total_sales" gorm:"not null;default:0;check:total_sales >= 0"`
	TotalRevenue   float64  `json:"total_revenue" gorm:"not null;default:0"`
	CommissionRate *float64 `json:"commission_rate,omitempty"`

	BankName          string `json:"-"`
	AccountHolderName string `json:"-"`
	AccountNumber     string `json:"-"`
	RoutingNumber     string `json:"-"`
	PaymentMethod     string `json:"-"`

	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	Version     int        `json:"version" gorm:"default:1"`
}

func (Seller) TableName() string {
	return "sellers"
}

// NewSeller creates a seller in its initial lifecycle state: account pending,
// verification not yet started, all metrics zeroed.
func NewSeller(userID uuid.UUID, req *RegisterSellerRequest) *Seller {
	businessType := req.BusinessType
	if businessType == "" {
		businessType = BusinessTypeIndividual
	}

	return &Seller{
		SellerID:           uuid.New(),
		UserID:             userID,
		BusinessName:       req.BusinessName,
		BusinessType:       businessType,
		BusinessEmail:      req.BusinessEmail,
		BusinessPhone:      req.BusinessPhone,
		BusinessAddress:    req.BusinessAddress,
		BusinessCity:       req.BusinessCity,
		BusinessState:      req.BusinessState,
		BusinessPostalCode: req.BusinessPostalCode,
		BusinessCountry:    req.BusinessCountry,
		Description:        req.Description,
		LogoURL:            req.LogoURL,
		WebsiteURL:         req.WebsiteURL,
		Status:             StatusPending,
		VerificationStatus: VerificationUnverified,
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
		Version:            1,
	}
}

// SortField whitelist for List queries
var AllowedSortFields = map[string]string{
	"created_at":    "created_at",
	"updated_at":    "updated_at",
	"business_name": "business_name",
	"rating":        "rating",
	"total_sales":   "total_sales",
	"total_revenue": "total_revenue",
}

// Filters describes the query surface of the seller list endpoint
type Filters struct {
	Status             *SellerStatus       `json:"status,omitempty"`
	VerificationStatus *VerificationStatus `json:"verification_status,omitempty"`
	MinRating          *float64            `json:"min_rating,omitempty"`
	Search             string              `json:"search,omitempty"`
	Limit              int                 `json:"limit"`
	Offset             int                 `json:"offset"`
	SortBy             string              `json:"sort_by,omitempty"`
	SortDesc           bool                `json:"sort_desc"`
}

// Request DTOs

// RegisterSellerRequest represents a seller registration request
type RegisterSellerRequest struct {
	UserID             uuid.UUID    `json:"user_id" validate:"required"`
	BusinessName       string       `json:"business_name" validate:"required,min=2,max=255"`
	BusinessType       BusinessType `json:"business_type" validate:"omitempty,oneof=individual sole_proprietor llc corporation partnership"`
	BusinessEmail      string       `json:"business_email" validate:"omitempty,email"`
	BusinessPhone      string       `json:"business_phone" validate:"omitempty,max=32"`
	BusinessAddress    string       `json:"business_address" validate:"omitempty,max=255"`
	BusinessCity       string       `json:"business_city" validate:"omitempty,max=128"`
	BusinessState      string       `json:"business_state" validate:"omitempty,max=128"`
	BusinessPostalCode string       `json:"business_postal_code" validate:"omitempty,max=32"`
	BusinessCountry    string       `json:"business_country" validate:"omitempty,max=128"`
	Description        *string      `json:"description,omitempty"`
	LogoURL            *string      `json:"logo_url,omitempty" validate:"omitempty,url"`
	WebsiteURL         *string      `json:"website_url,omitempty" validate:"omitempty,url"`
}

// UpdateProfileRequest carries optional profile fields; only non-nil fields are merged
type UpdateProfileRequest struct {
	BusinessName       *string       `json:"business_name,omitempty" validate:"omitempty,min=2,max=255"`
	BusinessType       *BusinessType `json:"business_type,omitempty" validate:"omitempty,oneof=individual sole_proprietor llc corporation partnership"`
	BusinessEmail      *string       `json:"business_email,omitempty" validate:"omitempty,email"`
	BusinessPhone      *string       `json:"business_phone,omitempty" validate:"omitempty,max=32"`
	BusinessAddress    *string       `json:"business_address,omitempty" validate:"omitempty,max=255"`
	BusinessCity       *string       `json:"business_city,omitempty" validate:"omitempty,max=128"`
	BusinessState      *string       `json:"business_state,omitempty" validate:"omitempty,max=128"`
	BusinessPostalCode *string       `json:"business_postal_code,omitempty" validate:"omitempty,max=32"`
	BusinessCountry    *string       `json:"business_country,omitempty" validate:"omitempty,max=128"`
	Description        *string       `json:"description,omitempty"`
	LogoURL            *string       `json:"logo_url,omitempty" validate:"omitempty,url"`
	WebsiteURL         *string       `json:"website_url,omitempty" validate:"omitempty,url"`
	CommissionRate     *float64      `json:"commission_rate,omitempty" validate:"omitempty,gte=0,lte=1"`
}

// UpdateBankingRequest carries optional banking fields; only non-nil fields are merged
type UpdateBankingRequest struct {
	BankName          *string `json:"bank_name,omitempty" validate:"omitempty,max=255"`
	AccountHolderName *string `json:"account_holder_name,omitempty" validate:"omitempty,max=255"`
	AccountNumber     *string `json:"account_number,omitempty" validate:"omitempty,max=64"`
	RoutingNumber     *string `json:"routing_number,omitempty" validate:"omitempty,max=64"`
	PaymentMethod     *string `json:"payment_method,omitempty" validate:"omitempty,max=64"`
}

// ApproveRequest identifies the admin approving a pending verification
type ApproveRequest struct {
	AdminID uuid.UUID `json:"admin_id" validate:"required"`
}

// ReasonRequest carries the mandatory reason for Reject and Suspend
type ReasonRequest struct {
	Reason string `json:"reason"`
}

// RecordSaleRequest records a completed sale against the seller's metrics
type RecordSaleRequest struct {
	Amount float64 `json:"amount"`
}

// UpdateRatingRequest sets the seller's aggregate rating
type UpdateRatingRequest struct {
	Rating       float64 `json:"rating"`
	TotalReviews *int    `json:"total_reviews,omitempty"`
}

// Response DTOs

// BankingInfoResponse is the only surface through which banking fields leave the service
type BankingInfoResponse struct {
	BankName          string `json:"bank_name"`
	AccountHolderName string `json:"account_holder_name"`
	AccountNumber     string `json:"account_number"`
	RoutingNumber     string `json:"routing_number"`
	PaymentMethod     string `json:"payment_method"`
}

// ListResponse is the paginated seller list payload
type ListResponse struct {
	Sellers []*Seller `json:"sellers"`
	Total   int64     `json:"total"`
	Limit   int       `json:"limit"`
	Offset  int       `json:"offset"`
}

// Stats aggregates seller counts for the admin dashboard
type Stats struct {
	Total               int64 `json:"total"`
	Active              int64 `json:"active"`
	Pending             int64 `json:"pending"`
	Suspended           int64 `json:"suspended"`
	Rejected            int64 `json:"rejected"`
	PendingVerification int64 `json:"pending_verification"`
	Verified            int64 `json:"verified"`
}

func (s *Seller) BankingInfo() *BankingInfoResponse {
	return &BankingInfoResponse{
		BankName:          s.BankName,
		AccountHolderName: s.AccountHolderName,
		AccountNumber:     s.AccountNumber,
		RoutingNumber:     s.RoutingNumber,
		PaymentMethod:     s.PaymentMethod,
	}
}
