package interfaces

import (
	"context"

	domain "seller-service/internal/domain/seller"

	"github.com/google/uuid"
)

type SellerRepository interface {
	Create(ctx context.Context, seller *domain.Seller) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Seller, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Seller, error)
	List(ctx context.Context, filters *domain.Filters) ([]*domain.Seller, error)
	Count(ctx context.Context, filters *domain.Filters) (int64, error)
	// Update persists the seller with an optimistic version check; a stale
	// version surfaces as a conflict error
	Update(ctx context.Context, seller *domain.Seller) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	ListPendingVerification(ctx context.Context) ([]*domain.Seller, error)
}
