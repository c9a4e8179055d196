package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	domain "seller-service/internal/domain/seller"
	"seller-service/internal/infrastructure/repository"
	interfaces "seller-service/internal/interfaces/infrastructure"

	"github.com/google/uuid"
)

// fakeSellerCache is an in-memory SellerCache that records invalidations
type fakeSellerCache struct {
	mutex    sync.Mutex
	byID     map[uuid.UUID]*domain.Seller
	byUserID map[uuid.UUID]*domain.Seller
}

func newFakeSellerCache() *fakeSellerCache {
	return &fakeSellerCache{
		byID:     make(map[uuid.UUID]*domain.Seller),
		byUserID: make(map[uuid.UUID]*domain.Seller),
	}
}

func (c *fakeSellerCache) GetSellerByID(ctx context.Context, sellerID uuid.UUID) (*domain.Seller, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	seller, ok := c.byID[sellerID]
	if !ok {
		return nil, fmt.Errorf("seller not cached")
	}
	copied := *seller
	return &copied, nil
}

func (c *fakeSellerCache) GetSellerByUserID(ctx context.Context, userID uuid.UUID) (*domain.Seller, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	seller, ok := c.byUserID[userID]
	if !ok {
		return nil, fmt.Errorf("seller not cached")
	}
	copied := *seller
	return &copied, nil
}

func (c *fakeSellerCache) SetSeller(ctx context.Context, seller *domain.Seller, ttl time.Duration) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	copied := *seller
	c.byID[seller.SellerID] = &copied
	c.byUserID[seller.UserID] = &copied
	return nil
}

func (c *fakeSellerCache) InvalidateSeller(ctx context.Context, sellerID, userID uuid.UUID) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	delete(c.byID, sellerID)
	delete(c.byUserID, userID)
	return nil
}

func (c *fakeSellerCache) Get(ctx context.Context, key string) (string, error) {
	return "", fmt.Errorf("key not cached")
}

func (c *fakeSellerCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return nil
}

func (c *fakeSellerCache) Delete(ctx context.Context, key string) error { return nil }
func (c *fakeSellerCache) Health(ctx context.Context) error             { return nil }
func (c *fakeSellerCache) Close() error                                 { return nil }

// fakeUserValidator answers validation requests from a fixed table
type fakeUserValidator struct {
	validUsers map[uuid.UUID]bool
	err        error
}

func (v *fakeUserValidator) ValidateUser(ctx context.Context, userID uuid.UUID) (bool, error) {
	if v.err != nil {
		return false, v.err
	}
	return v.validUsers[userID], nil
}

// fakeEventSink records emitted events
type fakeEventSink struct {
	mutex  sync.Mutex
	events []string
}

func (s *fakeEventSink) Emit(event string, payload map[string]interface{}, actorID *uuid.UUID) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.events = append(s.events, event)
}

func (s *fakeEventSink) has(event string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for _, e := range s.events {
		if e == event {
			return true
		}
	}
	return false
}

type testEnv struct {
	service   *SellerService
	repo      interfaces.SellerRepository
	cache     *fakeSellerCache
	validator *fakeUserValidator
	sink      *fakeEventSink
}

func newTestEnv() *testEnv {
	repo := repository.NewMockSellerRepository()
	cache := newFakeSellerCache()
	validator := &fakeUserValidator{validUsers: make(map[uuid.UUID]bool)}
	sink := &fakeEventSink{}

	return &testEnv{
		service:   NewSellerService(repo, cache, validator, sink, 0.1),
		repo:      repo,
		cache:     cache,
		validator: validator,
		sink:      sink,
	}
}

func fullProfileRequest(userID uuid.UUID) *domain.RegisterSellerRequest {
	return &domain.RegisterSellerRequest{
		UserID:          userID,
		BusinessName:    "Acme",
		BusinessType:    domain.BusinessTypeLLC,
		BusinessEmail:   "acme@example.com",
		BusinessPhone:   "+1-555-0100",
		BusinessAddress: "1 Market Street",
		BusinessCity:    "San Francisco",
		BusinessState:   "CA",
		BusinessCountry: "US",
	}
}

func (env *testEnv) registerSeller(t *testing.T, req *domain.RegisterSellerRequest) *domain.Seller {
	t.Helper()
	env.validator.validUsers[req.UserID] = true
	seller, err := env.service.Register(context.Background(), req)
	if err != nil {
		t.Fatalf("Failed to register seller: %v", err)
	}
	return seller
}

func TestSellerService_Register(t *testing.T) {
	env := newTestEnv()
	userID := uuid.New()
	env.validator.validUsers[userID] = true

	seller, err := env.service.Register(context.Background(), &domain.RegisterSellerRequest{
		UserID:       userID,
		BusinessName: "Acme",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if seller.Status != domain.StatusPending {
		t.Errorf("Expected status %s, got %s", domain.StatusPending, seller.Status)
	}
	if seller.VerificationStatus != domain.VerificationUnverified {
		t.Errorf("Expected verification status %s, got %s", domain.VerificationUnverified, seller.VerificationStatus)
	}
	if seller.TotalProducts != 0 {
		t.Errorf("Expected zero products, got %d", seller.TotalProducts)
	}
	if !env.sink.has(interfaces.EventSellerRegistered) {
		t.Error("Expected seller_registered event to be emitted")
	}
}

func TestSellerService_Register_DuplicateUser(t *testing.T) {
	env := newTestEnv()
	req := fullProfileRequest(uuid.New())
	env.registerSeller(t, req)

	_, err := env.service.Register(context.Background(), req)
	if err == nil {
		t.Fatal("Expected error for duplicate seller, got nil")
	}
	if !domain.IsKind(err, domain.ErrKindConflict) {
		t.Errorf("Expected conflict error, got %v", err)
	}
}

func TestSellerService_Register_InvalidUser(t *testing.T) {
	env := newTestEnv()

	_, err := env.service.Register(context.Background(), &domain.RegisterSellerRequest{
		UserID:       uuid.New(),
		BusinessName: "Acme",
	})
	if err == nil {
		t.Fatal("Expected error for unknown user, got nil")
	}
	if !domain.IsKind(err, domain.ErrKindInvalidUser) {
		t.Errorf("Expected invalid user error, got %v", err)
	}
}

func TestSellerService_Register_ValidatorUnavailable(t *testing.T) {
	env := newTestEnv()
	env.validator.err = domain.NewError(domain.ErrKindUpstreamUnavailable, "User service is unavailable")

	_, err := env.service.Register(context.Background(), &domain.RegisterSellerRequest{
		UserID:       uuid.New(),
		BusinessName: "Acme",
	})
	if !domain.IsKind(err, domain.ErrKindUpstreamUnavailable) {
		t.Errorf("Expected upstream unavailable error, got %v", err)
	}
}

func TestSellerService_SubmitForVerification_MissingFields(t *testing.T) {
	env := newTestEnv()
	req := fullProfileRequest(uuid.New())
	req.BusinessPhone = ""
	seller := env.registerSeller(t, req)

	_, err := env.service.SubmitForVerification(context.Background(), seller.SellerID)
	if err == nil {
		t.Fatal("Expected missing fields error, got nil")
	}

	domainErr, ok := domain.AsError(err)
	if !ok || domainErr.Kind != domain.ErrKindMissingFields {
		t.Fatalf("Expected missing fields error, got %v", err)
	}

	found := false
	for _, field := range domainErr.Fields {
		if field == "Business Phone" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected missing fields to contain 'Business Phone', got %v", domainErr.Fields)
	}
}

func TestSellerService_SubmitForVerification(t *testing.T) {
	env := newTestEnv()
	seller := env.registerSeller(t, fullProfileRequest(uuid.New()))

	updated, err := env.service.SubmitForVerification(context.Background(), seller.SellerID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if updated.VerificationStatus != domain.VerificationPending {
		t.Errorf("Expected verification status pending, got %s", updated.VerificationStatus)
	}

	// Submitting again while pending is an invalid transition
	_, err = env.service.SubmitForVerification(context.Background(), seller.SellerID)
	if !domain.IsKind(err, domain.ErrKindInvalidState) {
		t.Errorf("Expected invalid state error on resubmit, got %v", err)
	}
}

func TestSellerService_Approve(t *testing.T) {
	env := newTestEnv()
	seller := env.registerSeller(t, fullProfileRequest(uuid.New()))
	if _, err := env.service.SubmitForVerification(context.Background(), seller.SellerID); err != nil {
		t.Fatalf("Failed to submit for verification: %v", err)
	}

	adminID := uuid.New()
	before := time.Now()
	approved, err := env.service.Approve(context.Background(), seller.SellerID, adminID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if approved.Status != domain.StatusActive {
		t.Errorf("Expected status active, got %s", approved.Status)
	}
	if approved.VerificationStatus != domain.VerificationVerified {
		t.Errorf("Expected verification status verified, got %s", approved.VerificationStatus)
	}
	if approved.VerifiedBy == nil || *approved.VerifiedBy != adminID {
		t.Errorf("Expected verified_by %s, got %v", adminID, approved.VerifiedBy)
	}
	if approved.VerifiedAt == nil || approved.VerifiedAt.Before(before) || approved.VerifiedAt.After(time.Now()) {
		t.Errorf("Expected verified_at within the call window, got %v", approved.VerifiedAt)
	}
	if !env.sink.has(interfaces.EventSellerApproved) {
		t.Error("Expected seller_approved event to be emitted")
	}
}

func TestSellerService_Approve_NotPending(t *testing.T) {
	env := newTestEnv()
	seller := env.registerSeller(t, fullProfileRequest(uuid.New()))

	_, err := env.service.Approve(context.Background(), seller.SellerID, uuid.New())
	if !domain.IsKind(err, domain.ErrKindInvalidState) {
		t.Errorf("Expected invalid state error, got %v", err)
	}
}

func TestSellerService_Reject(t *testing.T) {
	env := newTestEnv()
	seller := env.registerSeller(t, fullProfileRequest(uuid.New()))
	if _, err := env.service.SubmitForVerification(context.Background(), seller.SellerID); err != nil {
		t.Fatalf("Failed to submit for verification: %v", err)
	}

	_, err := env.service.Reject(context.Background(), seller.SellerID, "")
	if !domain.IsKind(err, domain.ErrKindMissingReason) {
		t.Errorf("Expected missing reason error, got %v", err)
	}

	rejected, err := env.service.Reject(context.Background(), seller.SellerID, "documents unreadable")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rejected.Status != domain.StatusRejected {
		t.Errorf("Expected status rejected, got %s", rejected.Status)
	}
	if rejected.VerificationStatus != domain.VerificationRejected {
		t.Errorf("Expected verification status rejected, got %s", rejected.VerificationStatus)
	}
	if rejected.RejectionReason == nil || *rejected.RejectionReason != "documents unreadable" {
		t.Errorf("Expected rejection reason to be stored, got %v", rejected.RejectionReason)
	}
}

func TestSellerService_ResubmitAfterRejection(t *testing.T) {
	env := newTestEnv()
	seller := env.registerSeller(t, fullProfileRequest(uuid.New()))
	if _, err := env.service.SubmitForVerification(context.Background(), seller.SellerID); err != nil {
		t.Fatalf("Failed to submit for verification: %v", err)
	}
	if _, err := env.service.Reject(context.Background(), seller.SellerID, "incomplete"); err != nil {
		t.Fatalf("Failed to reject seller: %v", err)
	}

	resubmitted, err := env.service.SubmitForVerification(context.Background(), seller.SellerID)
	if err != nil {
		t.Fatalf("Expected rejected seller to be able to resubmit, got %v", err)
	}
	if resubmitted.VerificationStatus != domain.VerificationPending {
		t.Errorf("Expected verification status pending, got %s", resubmitted.VerificationStatus)
	}
	if resubmitted.Status != domain.StatusPending {
		t.Errorf("Expected status pending after resubmission, got %s", resubmitted.Status)
	}
	if resubmitted.RejectionReason != nil {
		t.Errorf("Expected rejection reason to be cleared, got %v", resubmitted.RejectionReason)
	}
}

func TestSellerService_Suspend_EmptyReason(t *testing.T) {
	env := newTestEnv()
	seller := env.registerSeller(t, fullProfileRequest(uuid.New()))

	_, err := env.service.Suspend(context.Background(), seller.SellerID, "")
	if !domain.IsKind(err, domain.ErrKindMissingReason) {
		t.Errorf("Expected missing reason error, got %v", err)
	}

	// No state change on failure
	current, err := env.service.GetByID(context.Background(), seller.SellerID)
	if err != nil {
		t.Fatalf("Failed to get seller: %v", err)
	}
	if current.Status != domain.StatusPending {
		t.Errorf("Expected status unchanged (pending), got %s", current.Status)
	}
}

func TestSellerService_SuspendAndReactivate(t *testing.T) {
	env := newTestEnv()
	seller := env.registerSeller(t, fullProfileRequest(uuid.New()))
	if _, err := env.service.SubmitForVerification(context.Background(), seller.SellerID); err != nil {
		t.Fatalf("Failed to submit for verification: %v", err)
	}
	if _, err := env.service.Approve(context.Background(), seller.SellerID, uuid.New()); err != nil {
		t.Fatalf("Failed to approve seller: %v", err)
	}

	suspended, err := env.service.Suspend(context.Background(), seller.SellerID, "policy violation")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if suspended.Status != domain.StatusSuspended {
		t.Errorf("Expected status suspended, got %s", suspended.Status)
	}

	// Suspending twice is an invalid transition
	_, err = env.service.Suspend(context.Background(), seller.SellerID, "again")
	if !domain.IsKind(err, domain.ErrKindInvalidState) {
		t.Errorf("Expected invalid state error, got %v", err)
	}

	reactivated, err := env.service.Reactivate(context.Background(), seller.SellerID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if reactivated.Status != domain.StatusActive {
		t.Errorf("Expected status active, got %s", reactivated.Status)
	}
	if reactivated.SuspensionReason != nil {
		t.Errorf("Expected suspension reason to be cleared, got %v", reactivated.SuspensionReason)
	}
}

func TestSellerService_Reactivate_Unverified(t *testing.T) {
	env := newTestEnv()
	seller := env.registerSeller(t, fullProfileRequest(uuid.New()))
	if _, err := env.service.Suspend(context.Background(), seller.SellerID, "fraud check"); err != nil {
		t.Fatalf("Failed to suspend seller: %v", err)
	}

	_, err := env.service.Reactivate(context.Background(), seller.SellerID)
	if !domain.IsKind(err, domain.ErrKindInvalidState) {
		t.Errorf("Expected invalid state error for unverified seller, got %v", err)
	}
}

func TestSellerService_Delete_Gated(t *testing.T) {
	env := newTestEnv()
	seller := env.registerSeller(t, fullProfileRequest(uuid.New()))

	if _, err := env.service.IncrementProductCount(context.Background(), seller.SellerID); err != nil {
		t.Fatalf("Failed to increment product count: %v", err)
	}

	err := env.service.Delete(context.Background(), seller.SellerID)
	if !domain.IsKind(err, domain.ErrKindHasDependents) {
		t.Errorf("Expected has dependents error, got %v", err)
	}

	if _, err := env.service.DecrementProductCount(context.Background(), seller.SellerID); err != nil {
		t.Fatalf("Failed to decrement product count: %v", err)
	}

	if err := env.service.Delete(context.Background(), seller.SellerID); err != nil {
		t.Fatalf("Expected delete to succeed with zero products and sales, got %v", err)
	}

	_, err = env.service.GetByID(context.Background(), seller.SellerID)
	if !domain.IsKind(err, domain.ErrKindNotFound) {
		t.Errorf("Expected not found after delete, got %v", err)
	}
}

func TestSellerService_DecrementProductCount_AtZero(t *testing.T) {
	env := newTestEnv()
	seller := env.registerSeller(t, fullProfileRequest(uuid.New()))

	unchanged, err := env.service.DecrementProductCount(context.Background(), seller.SellerID)
	if err != nil {
		t.Fatalf("Expected decrement at zero to be a no-op, got %v", err)
	}
	if unchanged.TotalProducts != 0 {
		t.Errorf("Expected product count to stay zero, got %d", unchanged.TotalProducts)
	}
}

func TestSellerService_RecordSale(t *testing.T) {
	env := newTestEnv()
	seller := env.registerSeller(t, fullProfileRequest(uuid.New()))

	updated, err := env.service.RecordSale(context.Background(), seller.SellerID, 99.99)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if updated.TotalSales != 1 {
		t.Errorf("Expected total sales 1, got %d", updated.TotalSales)
	}
	if updated.TotalRevenue != 99.99 {
		t.Errorf("Expected total revenue 99.99, got %f", updated.TotalRevenue)
	}

	_, err = env.service.RecordSale(context.Background(), seller.SellerID, -5)
	if !domain.IsKind(err, domain.ErrKindInvalidRange) {
		t.Errorf("Expected invalid range error for negative amount, got %v", err)
	}
}

func TestSellerService_UpdateRating(t *testing.T) {
	env := newTestEnv()
	seller := env.registerSeller(t, fullProfileRequest(uuid.New()))

	reviews := 12
	updated, err := env.service.UpdateRating(context.Background(), seller.SellerID, 4.5, &reviews)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if updated.Rating != 4.5 {
		t.Errorf("Expected rating 4.5, got %f", updated.Rating)
	}
	if updated.TotalReviews != 12 {
		t.Errorf("Expected 12 reviews, got %d", updated.TotalReviews)
	}

	_, err = env.service.UpdateRating(context.Background(), seller.SellerID, 5.5, nil)
	if !domain.IsKind(err, domain.ErrKindInvalidRange) {
		t.Errorf("Expected invalid range error, got %v", err)
	}
}

func TestSellerService_UpdateProfile_WhileSuspended(t *testing.T) {
	env := newTestEnv()
	seller := env.registerSeller(t, fullProfileRequest(uuid.New()))
	if _, err := env.service.Suspend(context.Background(), seller.SellerID, "chargebacks"); err != nil {
		t.Fatalf("Failed to suspend seller: %v", err)
	}

	name := "New Name"
	_, err := env.service.UpdateProfile(context.Background(), seller.SellerID, &domain.UpdateProfileRequest{
		BusinessName: &name,
	})
	if !domain.IsKind(err, domain.ErrKindAccountSuspended) {
		t.Errorf("Expected account suspended error, got %v", err)
	}

	_, err = env.service.UpdateBankingInfo(context.Background(), seller.SellerID, &domain.UpdateBankingRequest{})
	if !domain.IsKind(err, domain.ErrKindAccountSuspended) {
		t.Errorf("Expected account suspended error for banking update, got %v", err)
	}
}

func TestSellerService_CacheInvalidatedAfterMutation(t *testing.T) {
	env := newTestEnv()
	seller := env.registerSeller(t, fullProfileRequest(uuid.New()))

	// Prime the cache
	if _, err := env.service.GetByID(context.Background(), seller.SellerID); err != nil {
		t.Fatalf("Failed to get seller: %v", err)
	}
	if _, err := env.cache.GetSellerByID(context.Background(), seller.SellerID); err != nil {
		t.Fatal("Expected seller to be cached after read")
	}

	if _, err := env.service.RecordSale(context.Background(), seller.SellerID, 10); err != nil {
		t.Fatalf("Failed to record sale: %v", err)
	}

	// The pre-mutation value must not survive the write
	if _, err := env.cache.GetSellerByID(context.Background(), seller.SellerID); err == nil {
		t.Error("Expected cache entry to be invalidated after mutation")
	}

	fresh, err := env.service.GetByID(context.Background(), seller.SellerID)
	if err != nil {
		t.Fatalf("Failed to get seller after mutation: %v", err)
	}
	if fresh.TotalSales != 1 {
		t.Errorf("Expected post-mutation read to see the new value, got %d sales", fresh.TotalSales)
	}
}

func TestSellerService_RecordLogin(t *testing.T) {
	env := newTestEnv()
	seller := env.registerSeller(t, fullProfileRequest(uuid.New()))

	if err := env.service.RecordLogin(context.Background(), seller.SellerID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	current, err := env.service.GetByID(context.Background(), seller.SellerID)
	if err != nil {
		t.Fatalf("Failed to get seller: %v", err)
	}
	if current.LastLoginAt == nil {
		t.Error("Expected last login timestamp to be set")
	}
}

func TestSellerService_GetByUserID(t *testing.T) {
	env := newTestEnv()
	req := fullProfileRequest(uuid.New())
	seller := env.registerSeller(t, req)

	found, err := env.service.GetByUserID(context.Background(), req.UserID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if found.SellerID != seller.SellerID {
		t.Errorf("Expected seller %s, got %s", seller.SellerID, found.SellerID)
	}

	_, err = env.service.GetByUserID(context.Background(), uuid.New())
	if !domain.IsKind(err, domain.ErrKindNotFound) {
		t.Errorf("Expected not found error, got %v", err)
	}
}

func TestSellerService_ListAndStats(t *testing.T) {
	env := newTestEnv()
	first := env.registerSeller(t, fullProfileRequest(uuid.New()))
	env.registerSeller(t, fullProfileRequest(uuid.New()))

	if _, err := env.service.SubmitForVerification(context.Background(), first.SellerID); err != nil {
		t.Fatalf("Failed to submit for verification: %v", err)
	}
	if _, err := env.service.Approve(context.Background(), first.SellerID, uuid.New()); err != nil {
		t.Fatalf("Failed to approve seller: %v", err)
	}

	active := domain.StatusActive
	response, err := env.service.List(context.Background(), &domain.Filters{Status: &active})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if response.Total != 1 {
		t.Errorf("Expected 1 active seller, got %d", response.Total)
	}

	stats, err := env.service.Stats(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if stats.Total != 2 {
		t.Errorf("Expected 2 sellers total, got %d", stats.Total)
	}
	if stats.Active != 1 {
		t.Errorf("Expected 1 active seller, got %d", stats.Active)
	}
	if stats.Verified != 1 {
		t.Errorf("Expected 1 verified seller, got %d", stats.Verified)
	}
}
