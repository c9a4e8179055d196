package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	domain "seller-service/internal/domain/seller"
	interfaces "seller-service/internal/interfaces/infrastructure"

	"github.com/google/uuid"
)

// mockSellerRepository is an in-memory implementation of SellerRepository for
// testing/demo purposes. It mirrors the database semantics the service relies
// on: nil on miss, unique user_id, optimistic version check on update.
type mockSellerRepository struct {
	sellers map[uuid.UUID]*domain.Seller
	mutex   sync.RWMutex
}

// NewMockSellerRepository creates a new mock seller repository
func NewMockSellerRepository() interfaces.SellerRepository {
	return &mockSellerRepository{
		sellers: make(map[uuid.UUID]*domain.Seller),
	}
}

func (r *mockSellerRepository) Create(ctx context.Context, seller *domain.Seller) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, existing := range r.sellers {
		if existing.UserID == seller.UserID {
			return domain.NewError(domain.ErrKindConflict, "Seller already exists for this user")
		}
	}

	copied := *seller
	r.sellers[seller.SellerID] = &copied
	return nil
}

func (r *mockSellerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Seller, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	seller, exists := r.sellers[id]
	if !exists {
		return nil, nil
	}
	copied := *seller
	return &copied, nil
}

func (r *mockSellerRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Seller, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, seller := range r.sellers {
		if seller.UserID == userID {
			copied := *seller
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *mockSellerRepository) List(ctx context.Context, filters *domain.Filters) ([]*domain.Seller, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	matched := r.filter(filters)

	sort.Slice(matched, func(i, j int) bool {
		if filters != nil && filters.SortDesc {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})

	if filters == nil {
		return matched, nil
	}

	offset := filters.Offset
	if offset > len(matched) {
		offset = len(matched)
	}
	matched = matched[offset:]
	if filters.Limit > 0 && len(matched) > filters.Limit {
		matched = matched[:filters.Limit]
	}
	return matched, nil
}

func (r *mockSellerRepository) Count(ctx context.Context, filters *domain.Filters) (int64, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return int64(len(r.filter(filters))), nil
}

func (r *mockSellerRepository) Update(ctx context.Context, seller *domain.Seller) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	existing, exists := r.sellers[seller.SellerID]
	if !exists || existing.Version != seller.Version {
		return domain.NewError(domain.ErrKindConflict, "Seller was modified concurrently, please retry")
	}

	seller.Version++
	seller.UpdatedAt = time.Now()
	copied := *seller
	r.sellers[seller.SellerID] = &copied
	return nil
}

func (r *mockSellerRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.sellers[id]; !exists {
		return false, nil
	}
	delete(r.sellers, id)
	return true, nil
}

func (r *mockSellerRepository) ListPendingVerification(ctx context.Context) ([]*domain.Seller, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var pending []*domain.Seller
	for _, seller := range r.sellers {
		if seller.VerificationStatus == domain.VerificationPending {
			copied := *seller
			pending = append(pending, &copied)
		}
	}
	return pending, nil
}

func (r *mockSellerRepository) filter(filters *domain.Filters) []*domain.Seller {
	var matched []*domain.Seller
	for _, seller := range r.sellers {
		if filters != nil {
			if filters.Status != nil && seller.Status != *filters.Status {
				continue
			}
			if filters.VerificationStatus != nil && seller.VerificationStatus != *filters.VerificationStatus {
				continue
			}
			if filters.MinRating != nil && seller.Rating < *filters.MinRating {
				continue
			}
			if filters.Search != "" {
				needle := strings.ToLower(filters.Search)
				if !strings.Contains(strings.ToLower(seller.BusinessName), needle) &&
					!strings.Contains(strings.ToLower(seller.BusinessEmail), needle) {
					continue
				}
			}
		}
		copied := *seller
		matched = append(matched, &copied)
	}
	return matched
}
