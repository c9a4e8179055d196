package interfaces

import (
	"context"
	"time"

	domain "seller-service/internal/domain/seller"

	"github.com/google/uuid"
)

// SellerCache is a best-effort read-through cache over seller records.
// Sellers are cached under two independent keys, by seller id and by user id,
// because lookups occur via either key; both are invalidated together.
type SellerCache interface {
	GetSellerByID(ctx context.Context, sellerID uuid.UUID) (*domain.Seller, error)
	GetSellerByUserID(ctx context.Context, userID uuid.UUID) (*domain.Seller, error)
	SetSeller(ctx context.Context, seller *domain.Seller, ttl time.Duration) error
	InvalidateSeller(ctx context.Context, sellerID, userID uuid.UUID) error

	// Generic cache operations
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error

	Health(ctx context.Context) error
	Close() error
}
