package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	domain "seller-service/internal/domain/seller"
	interfaces "seller-service/internal/interfaces/infrastructure"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(addr, password string, db int) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &RedisCache{
		client: rdb,
	}
}

func sellerIDKey(sellerID uuid.UUID) string {
	return fmt.Sprintf("seller:id:%s", sellerID.String())
}

func sellerUserKey(userID uuid.UUID) string {
	return fmt.Sprintf("seller:user:%s", userID.String())
}

func (r *RedisCache) GetSellerByID(ctx context.Context, sellerID uuid.UUID) (*domain.Seller, error) {
	return r.getSeller(ctx, sellerIDKey(sellerID))
}

func (r *RedisCache) GetSellerByUserID(ctx context.Context, userID uuid.UUID) (*domain.Seller, error) {
	return r.getSeller(ctx, sellerUserKey(userID))
}

func (r *RedisCache) getSeller(ctx context.Context, key string) (*domain.Seller, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("seller not cached")
		}
		return nil, fmt.Errorf("failed to get seller from cache: %w", err)
	}

	var seller domain.Seller
	if err := json.Unmarshal([]byte(val), &seller); err != nil {
		return nil, fmt.Errorf("invalid seller value in cache: %w", err)
	}
	return &seller, nil
}

// SetSeller writes the seller under both lookup keys with the same TTL
func (r *RedisCache) SetSeller(ctx context.Context, seller *domain.Seller, ttl time.Duration) error {
	jsonData, err := json.Marshal(seller)
	if err != nil {
		return fmt.Errorf("failed to marshal seller: %w", err)
	}

	if err := r.client.Set(ctx, sellerIDKey(seller.SellerID), jsonData, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set seller in cache: %w", err)
	}
	if err := r.client.Set(ctx, sellerUserKey(seller.UserID), jsonData, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set seller user key in cache: %w", err)
	}
	return nil
}

// InvalidateSeller removes both lookup keys for the seller
func (r *RedisCache) InvalidateSeller(ctx context.Context, sellerID, userID uuid.UUID) error {
	err := r.client.Del(ctx, sellerIDKey(sellerID), sellerUserKey(userID)).Err()
	if err != nil {
		return fmt.Errorf("failed to invalidate seller cache: %w", err)
	}
	return nil
}

func (r *RedisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", fmt.Errorf("key not cached")
		}
		return "", fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return val, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}

func (r *RedisCache) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

func (r *RedisCache) Health(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}

var _ interfaces.SellerCache = (*RedisCache)(nil)
