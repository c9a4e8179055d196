package service

import (
	"context"
	"fmt"
	"math"
	"time"

	domain "seller-service/internal/domain/seller"
	interfaces "seller-service/internal/interfaces/infrastructure"
	serviceInterfaces "seller-service/internal/interfaces/service"
	"seller-service/pkg/logger"

	"github.com/google/uuid"
)

const (
	// SellerCacheTTL bounds the staleness window of the read-through cache;
	// a crash between the repository write and the invalidation heals itself
	// within this TTL.
	SellerCacheTTL = 5 * time.Minute

	DefaultListLimit = 20
	MaxListLimit     = 100
)

var _ serviceInterfaces.SellerService = (*SellerService)(nil)

type SellerService struct {
	sellerRepo            interfaces.SellerRepository
	cacheService          interfaces.SellerCache
	userValidator         interfaces.UserValidator
	eventSink             interfaces.EventSink
	defaultCommissionRate float64
}

func NewSellerService(
	sellerRepo interfaces.SellerRepository,
	cacheService interfaces.SellerCache,
	userValidator interfaces.UserValidator,
	eventSink interfaces.EventSink,
	defaultCommissionRate float64,
) *SellerService {
	return &SellerService{
		sellerRepo:            sellerRepo,
		cacheService:          cacheService,
		userValidator:         userValidator,
		eventSink:             eventSink,
		defaultCommissionRate: defaultCommissionRate,
	}
}

// Register creates a seller account for an existing, active user. The new
// seller starts in status=pending with an unverified verification status and
// zeroed metrics.
func (s *SellerService) Register(ctx context.Context, req *domain.RegisterSellerRequest) (*domain.Seller, error) {
	logger.Info("Registering seller for user %s", req.UserID)

	valid, err := s.userValidator.ValidateUser(ctx, req.UserID)
	if err != nil {
		logger.Error("User validation failed for %s: %v", req.UserID, err)
		return nil, err
	}
	if !valid {
		return nil, domain.NewError(domain.ErrKindInvalidUser, "User does not exist or is not active")
	}

	existing, err := s.sellerRepo.GetByUserID(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing seller: %w", err)
	}
	if existing != nil {
		return nil, domain.NewError(domain.ErrKindConflict, "Seller already exists for this user")
	}

	seller := domain.NewSeller(req.UserID, req)

	if err := s.sellerRepo.Create(ctx, seller); err != nil {
		logger.Error("Failed to create seller: %v", err)
		return nil, fmt.Errorf("failed to create seller: %w", err)
	}

	s.eventSink.Emit(interfaces.EventSellerRegistered, map[string]interface{}{
		"seller_id":     seller.SellerID.String(),
		"user_id":       seller.UserID.String(),
		"business_name": seller.BusinessName,
	}, nil)

	logger.Info("Seller registered successfully with ID: %s", seller.SellerID)
	return seller, nil
}

// GetByID retrieves a seller through the read-through cache
func (s *SellerService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Seller, error) {
	logger.Debug("Getting seller with ID: %s", id)

	if cached, err := s.cacheService.GetSellerByID(ctx, id); err == nil && cached != nil {
		return cached, nil
	}

	seller, err := s.sellerRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("Failed to get seller: %v", err)
		return nil, fmt.Errorf("failed to get seller: %w", err)
	}
	if seller == nil {
		return nil, domain.NewError(domain.ErrKindNotFound, "Seller not found")
	}

	s.cacheSeller(ctx, seller)
	return seller, nil
}

// GetByUserID retrieves a seller by its user reference through the read-through cache
func (s *SellerService) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Seller, error) {
	logger.Debug("Getting seller for user: %s", userID)

	if cached, err := s.cacheService.GetSellerByUserID(ctx, userID); err == nil && cached != nil {
		return cached, nil
	}

	seller, err := s.sellerRepo.GetByUserID(ctx, userID)
	if err != nil {
		logger.Error("Failed to get seller by user ID: %v", err)
		return nil, fmt.Errorf("failed to get seller: %w", err)
	}
	if seller == nil {
		return nil, domain.NewError(domain.ErrKindNotFound, "Seller not found")
	}

	s.cacheSeller(ctx, seller)
	return seller, nil
}

func (s *SellerService) List(ctx context.Context, filters *domain.Filters) (*domain.ListResponse, error) {
	if filters == nil {
		filters = &domain.Filters{}
	}
	if filters.Limit <= 0 {
		filters.Limit = DefaultListLimit
	}
	if filters.Limit > MaxListLimit {
		filters.Limit = MaxListLimit
	}
	if filters.Offset < 0 {
		filters.Offset = 0
	}

	logger.Debug("Listing sellers with limit: %d, offset: %d", filters.Limit, filters.Offset)

	sellers, err := s.sellerRepo.List(ctx, filters)
	if err != nil {
		logger.Error("Failed to list sellers: %v", err)
		return nil, fmt.Errorf("failed to list sellers: %w", err)
	}

	total, err := s.sellerRepo.Count(ctx, filters)
	if err != nil {
		logger.Error("Failed to count sellers: %v", err)
		return nil, fmt.Errorf("failed to count sellers: %w", err)
	}

	return &domain.ListResponse{
		Sellers: sellers,
		Total:   total,
		Limit:   filters.Limit,
		Offset:  filters.Offset,
	}, nil
}

func (s *SellerService) ListPendingVerification(ctx context.Context) ([]*domain.Seller, error) {
	sellers, err := s.sellerRepo.ListPendingVerification(ctx)
	if err != nil {
		logger.Error("Failed to list pending verifications: %v", err)
		return nil, fmt.Errorf("failed to list pending verifications: %w", err)
	}
	return sellers, nil
}

// Stats aggregates seller counts by status and verification status
func (s *SellerService) Stats(ctx context.Context) (*domain.Stats, error) {
	stats := &domain.Stats{}

	total, err := s.sellerRepo.Count(ctx, &domain.Filters{})
	if err != nil {
		return nil, fmt.Errorf("failed to count sellers: %w", err)
	}
	stats.Total = total

	statusCounts := map[domain.SellerStatus]*int64{
		domain.StatusActive:    &stats.Active,
		domain.StatusPending:   &stats.Pending,
		domain.StatusSuspended: &stats.Suspended,
		domain.StatusRejected:  &stats.Rejected,
	}
	for status, target := range statusCounts {
		statusFilter := status
		count, err := s.sellerRepo.Count(ctx, &domain.Filters{Status: &statusFilter})
		if err != nil {
			return nil, fmt.Errorf("failed to count sellers by status: %w", err)
		}
		*target = count
	}

	pendingVerification := domain.VerificationPending
	count, err := s.sellerRepo.Count(ctx, &domain.Filters{VerificationStatus: &pendingVerification})
	if err != nil {
		return nil, fmt.Errorf("failed to count pending verifications: %w", err)
	}
	stats.PendingVerification = count

	verified := domain.VerificationVerified
	count, err = s.sellerRepo.Count(ctx, &domain.Filters{VerificationStatus: &verified})
	if err != nil {
		return nil, fmt.Errorf("failed to count verified sellers: %w", err)
	}
	stats.Verified = count

	return stats, nil
}

// requiredVerificationFields maps the profile fields that must be present
// before a seller can submit for verification to their display names.
var requiredVerificationFields = []struct {
	value func(*domain.Seller) string
	label string
}{
	{func(s *domain.Seller) string { return s.BusinessName }, "Business Name"},
	{func(s *domain.Seller) string { return s.BusinessEmail }, "Business Email"},
	{func(s *domain.Seller) string { return s.BusinessPhone }, "Business Phone"},
	{func(s *domain.Seller) string { return s.BusinessAddress }, "Business Address"},
	{func(s *domain.Seller) string { return s.BusinessCity }, "Business City"},
	{func(s *domain.Seller) string { return s.BusinessState }, "Business State"},
	{func(s *domain.Seller) string { return s.BusinessCountry }, "Business Country"},
}

// SubmitForVerification moves the seller into the pending verification queue.
// Allowed from unverified and from rejected (a rejected seller may resubmit);
// resubmission clears the previous rejection.
func (s *SellerService) SubmitForVerification(ctx context.Context, id uuid.UUID) (*domain.Seller, error) {
	logger.Info("Submitting seller %s for verification", id)

	seller, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if seller.VerificationStatus == domain.VerificationPending || seller.VerificationStatus == domain.VerificationVerified {
		return nil, domain.NewErrorf(domain.ErrKindInvalidState,
			"Seller verification is already %s", seller.VerificationStatus)
	}

	var missing []string
	for _, field := range requiredVerificationFields {
		if field.value(seller) == "" {
			missing = append(missing, field.label)
		}
	}
	if len(missing) > 0 {
		return nil, domain.NewMissingFieldsError(missing)
	}

	seller.VerificationStatus = domain.VerificationPending
	seller.RejectionReason = nil
	if seller.Status == domain.StatusRejected {
		seller.Status = domain.StatusPending
	}

	if err := s.saveAndInvalidate(ctx, seller); err != nil {
		return nil, err
	}

	logger.Info("Seller %s submitted for verification", id)
	return seller, nil
}

// Approve completes the verification workflow: the seller becomes verified
// and the account goes active
func (s *SellerService) Approve(ctx context.Context, id, adminID uuid.UUID) (*domain.Seller, error) {
	logger.Info("Approving seller %s by admin %s", id, adminID)

	seller, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if seller.VerificationStatus != domain.VerificationPending {
		return nil, domain.NewError(domain.ErrKindInvalidState,
			"Seller must be in pending verification status")
	}

	now := time.Now()
	seller.VerificationStatus = domain.VerificationVerified
	seller.Status = domain.StatusActive
	seller.VerifiedAt = &now
	seller.VerifiedBy = &adminID
	seller.RejectionReason = nil

	if err := s.saveAndInvalidate(ctx, seller); err != nil {
		return nil, err
	}

	s.eventSink.Emit(interfaces.EventSellerApproved, map[string]interface{}{
		"seller_id": seller.SellerID.String(),
		"user_id":   seller.UserID.String(),
	}, &adminID)

	logger.Info("Seller %s approved", id)
	return seller, nil
}

// Reject declines a pending verification with a mandatory reason
func (s *SellerService) Reject(ctx context.Context, id uuid.UUID, reason string) (*domain.Seller, error) {
	logger.Info("Rejecting seller %s", id)

	if reason == "" {
		return nil, domain.NewError(domain.ErrKindMissingReason, "Rejection reason is required")
	}

	seller, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if seller.VerificationStatus != domain.VerificationPending {
		return nil, domain.NewError(domain.ErrKindInvalidState,
			"Seller must be in pending verification status")
	}

	seller.VerificationStatus = domain.VerificationRejected
	seller.Status = domain.StatusRejected
	seller.RejectionReason = &reason

	if err := s.saveAndInvalidate(ctx, seller); err != nil {
		return nil, err
	}

	s.eventSink.Emit(interfaces.EventSellerRejected, map[string]interface{}{
		"seller_id": seller.SellerID.String(),
		"user_id":   seller.UserID.String(),
		"reason":    reason,
	}, nil)

	logger.Info("Seller %s rejected", id)
	return seller, nil
}

// Suspend takes the seller account offline with a mandatory reason
func (s *SellerService) Suspend(ctx context.Context, id uuid.UUID, reason string) (*domain.Seller, error) {
	logger.Info("Suspending seller %s", id)

	if reason == "" {
		return nil, domain.NewError(domain.ErrKindMissingReason, "Suspension reason is required")
	}

	seller, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if seller.Status == domain.StatusSuspended {
		return nil, domain.NewError(domain.ErrKindInvalidState, "Seller is already suspended")
	}

	seller.Status = domain.StatusSuspended
	seller.SuspensionReason = &reason

	if err := s.saveAndInvalidate(ctx, seller); err != nil {
		return nil, err
	}

	s.eventSink.Emit(interfaces.EventSellerSuspended, map[string]interface{}{
		"seller_id": seller.SellerID.String(),
		"user_id":   seller.UserID.String(),
		"reason":    reason,
	}, nil)

	logger.Info("Seller %s suspended", id)
	return seller, nil
}

// Reactivate returns a suspended, verified seller to active status
func (s *SellerService) Reactivate(ctx context.Context, id uuid.UUID) (*domain.Seller, error) {
	logger.Info("Reactivating seller %s", id)

	seller, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if seller.Status != domain.StatusSuspended {
		return nil, domain.NewError(domain.ErrKindInvalidState, "Seller is not suspended")
	}
	if seller.VerificationStatus != domain.VerificationVerified {
		return nil, domain.NewError(domain.ErrKindInvalidState,
			"Only verified sellers can be reactivated")
	}

	seller.Status = domain.StatusActive
	seller.SuspensionReason = nil

	if err := s.saveAndInvalidate(ctx, seller); err != nil {
		return nil, err
	}

	s.eventSink.Emit(interfaces.EventSellerReactivated, map[string]interface{}{
		"seller_id": seller.SellerID.String(),
		"user_id":   seller.UserID.String(),
	}, nil)

	logger.Info("Seller %s reactivated", id)
	return seller, nil
}

// Delete removes a seller record. Only sellers without products or recorded
// sales can be deleted.
func (s *SellerService) Delete(ctx context.Context, id uuid.UUID) error {
	logger.Info("Deleting seller %s", id)

	seller, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if seller.TotalProducts > 0 || seller.TotalSales > 0 {
		return domain.NewError(domain.ErrKindHasDependents,
			"Seller with products or sales cannot be deleted")
	}

	deleted, err := s.sellerRepo.Delete(ctx, id)
	if err != nil {
		logger.Error("Failed to delete seller: %v", err)
		return fmt.Errorf("failed to delete seller: %w", err)
	}
	if !deleted {
		return domain.NewError(domain.ErrKindNotFound, "Seller not found")
	}

	s.invalidateSeller(ctx, seller)

	s.eventSink.Emit(interfaces.EventSellerDeleted, map[string]interface{}{
		"seller_id": seller.SellerID.String(),
		"user_id":   seller.UserID.String(),
	}, nil)

	logger.Info("Seller %s deleted", id)
	return nil
}

// UpdateProfile merges the provided profile fields. Blocked while suspended.
func (s *SellerService) UpdateProfile(ctx context.Context, id uuid.UUID, req *domain.UpdateProfileRequest) (*domain.Seller, error) {
	logger.Info("Updating profile for seller %s", id)

	seller, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if seller.Status == domain.StatusSuspended {
		return nil, domain.NewError(domain.ErrKindAccountSuspended,
			"Suspended sellers cannot update their profile")
	}

	if req.BusinessName != nil {
		seller.BusinessName = *req.BusinessName
	}
	if req.BusinessType != nil {
		seller.BusinessType = *req.BusinessType
	}
	if req.BusinessEmail != nil {
		seller.BusinessEmail = *req.BusinessEmail
	}
	if req.BusinessPhone != nil {
		seller.BusinessPhone = *req.BusinessPhone
	}
	if req.BusinessAddress != nil {
		seller.BusinessAddress = *req.BusinessAddress
	}
	if req.BusinessCity != nil {
		seller.BusinessCity = *req.BusinessCity
	}
	if req.BusinessState != nil {
		seller.BusinessState = *req.BusinessState
	}
	if req.BusinessPostalCode != nil {
		seller.BusinessPostalCode = *req.BusinessPostalCode
	}
	if req.BusinessCountry != nil {
		seller.BusinessCountry = *req.BusinessCountry
	}
	if req.Description != nil {
		seller.Description = req.Description
	}
	if req.LogoURL != nil {
		seller.LogoURL = req.LogoURL
	}
	if req.WebsiteURL != nil {
		seller.WebsiteURL = req.WebsiteURL
	}
	if req.CommissionRate != nil {
		seller.CommissionRate = req.CommissionRate
	}

	if err := s.saveAndInvalidate(ctx, seller); err != nil {
		return nil, err
	}

	logger.Info("Profile updated for seller %s", id)
	return seller, nil
}

// UpdateBankingInfo merges the provided banking fields. Blocked while suspended.
func (s *SellerService) UpdateBankingInfo(ctx context.Context, id uuid.UUID, req *domain.UpdateBankingRequest) (*domain.Seller, error) {
	logger.Info("Updating banking info for seller %s", id)

	seller, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if seller.Status == domain.StatusSuspended {
		return nil, domain.NewError(domain.ErrKindAccountSuspended,
			"Suspended sellers cannot update banking information")
	}

	if req.BankName != nil {
		seller.BankName = *req.BankName
	}
	if req.AccountHolderName != nil {
		seller.AccountHolderName = *req.AccountHolderName
	}
	if req.AccountNumber != nil {
		seller.AccountNumber = *req.AccountNumber
	}
	if req.RoutingNumber != nil {
		seller.RoutingNumber = *req.RoutingNumber
	}
	if req.PaymentMethod != nil {
		seller.PaymentMethod = *req.PaymentMethod
	}

	if err := s.saveAndInvalidate(ctx, seller); err != nil {
		return nil, err
	}

	logger.Info("Banking info updated for seller %s", id)
	return seller, nil
}

func (s *SellerService) IncrementProductCount(ctx context.Context, id uuid.UUID) (*domain.Seller, error) {
	seller, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	seller.TotalProducts++

	if err := s.saveAndInvalidate(ctx, seller); err != nil {
		return nil, err
	}
	return seller, nil
}

// DecrementProductCount lowers the product count by one. Decrementing at
// zero is a silent no-op, not an error.
func (s *SellerService) DecrementProductCount(ctx context.Context, id uuid.UUID) (*domain.Seller, error) {
	seller, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if seller.TotalProducts == 0 {
		logger.Debug("Product count already zero for seller %s, skipping decrement", id)
		return seller, nil
	}

	seller.TotalProducts--

	if err := s.saveAndInvalidate(ctx, seller); err != nil {
		return nil, err
	}
	return seller, nil
}

// RecordSale books one sale and adds the amount to total revenue,
// rounded to 2 decimals
func (s *SellerService) RecordSale(ctx context.Context, id uuid.UUID, amount float64) (*domain.Seller, error) {
	if amount < 0 {
		return nil, domain.NewError(domain.ErrKindInvalidRange, "Sale amount must be non-negative")
	}

	seller, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	seller.TotalSales++
	seller.TotalRevenue = round2(seller.TotalRevenue + amount)

	if err := s.saveAndInvalidate(ctx, seller); err != nil {
		return nil, err
	}

	logger.Info("Recorded sale of %.2f for seller %s, total sales: %d", amount, id, seller.TotalSales)
	return seller, nil
}

// UpdateRating sets the aggregate rating (0-5), optionally updating the
// review count
func (s *SellerService) UpdateRating(ctx context.Context, id uuid.UUID, rating float64, totalReviews *int) (*domain.Seller, error) {
	if rating < 0 || rating > 5 {
		return nil, domain.NewError(domain.ErrKindInvalidRange, "Rating must be between 0 and 5")
	}

	seller, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	seller.Rating = rating
	if totalReviews != nil {
		seller.TotalReviews = *totalReviews
	}

	if err := s.saveAndInvalidate(ctx, seller); err != nil {
		return nil, err
	}
	return seller, nil
}

// RecordLogin stamps the seller's last login time
func (s *SellerService) RecordLogin(ctx context.Context, id uuid.UUID) error {
	seller, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	now := time.Now()
	seller.LastLoginAt = &now

	return s.saveAndInvalidate(ctx, seller)
}

// CommissionRate resolves the seller's effective commission rate, falling
// back to the platform default when none is set
func (s *SellerService) CommissionRate(seller *domain.Seller) float64 {
	if seller.CommissionRate != nil {
		return *seller.CommissionRate
	}
	return s.defaultCommissionRate
}

// saveAndInvalidate writes the seller to the repository first and only then
// invalidates both cache keys. Cache failures degrade silently; the
// repository is the source of truth.
func (s *SellerService) saveAndInvalidate(ctx context.Context, seller *domain.Seller) error {
	seller.UpdatedAt = time.Now()

	if err := s.sellerRepo.Update(ctx, seller); err != nil {
		if domain.IsKind(err, domain.ErrKindConflict) {
			return err
		}
		logger.Error("Failed to update seller %s: %v", seller.SellerID, err)
		return fmt.Errorf("failed to update seller: %w", err)
	}

	s.invalidateSeller(ctx, seller)
	return nil
}

func (s *SellerService) invalidateSeller(ctx context.Context, seller *domain.Seller) {
	if err := s.cacheService.InvalidateSeller(ctx, seller.SellerID, seller.UserID); err != nil {
		logger.Warn("Failed to invalidate seller cache for %s: %v", seller.SellerID, err)
	}
}

func (s *SellerService) cacheSeller(ctx context.Context, seller *domain.Seller) {
	if err := s.cacheService.SetSeller(ctx, seller, SellerCacheTTL); err != nil {
		logger.Warn("Failed to cache seller %s: %v", seller.SellerID, err)
	}
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
