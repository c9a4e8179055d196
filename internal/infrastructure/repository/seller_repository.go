package repository

import (
	"context"
	"fmt"

	domain "seller-service/internal/domain/seller"
	interfaces "seller-service/internal/interfaces/infrastructure"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SellerRepository struct {
	db *gorm.DB
}

func NewSellerRepository(db *gorm.DB) interfaces.SellerRepository {
	return &SellerRepository{
		db: db,
	}
}

func (r *SellerRepository) Create(ctx context.Context, seller *domain.Seller) error {
	return r.db.WithContext(ctx).Create(seller).Error
}

func (r *SellerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Seller, error) {
	var seller domain.Seller
	err := r.db.WithContext(ctx).First(&seller, "seller_id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &seller, nil
}

func (r *SellerRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Seller, error) {
	var seller domain.Seller
	err := r.db.WithContext(ctx).First(&seller, "user_id = ?", userID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &seller, nil
}

func (r *SellerRepository) List(ctx context.Context, filters *domain.Filters) ([]*domain.Seller, error) {
	var sellers []*domain.Seller

	query := r.applyFilters(r.db.WithContext(ctx).Model(&domain.Seller{}), filters)

	sortColumn := "created_at"
	if col, ok := domain.AllowedSortFields[filters.SortBy]; ok {
		sortColumn = col
	}
	direction := "ASC"
	if filters.SortDesc {
		direction = "DESC"
	}
	query = query.Order(fmt.Sprintf("%s %s", sortColumn, direction))

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Find(&sellers).Error; err != nil {
		return nil, err
	}
	return sellers, nil
}

func (r *SellerRepository) Count(ctx context.Context, filters *domain.Filters) (int64, error) {
	var count int64
	query := r.applyFilters(r.db.WithContext(ctx).Model(&domain.Seller{}), filters)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Update persists the seller with an optimistic version check. A zero-row
// update means the record was modified concurrently (or removed) since it
// was read, which surfaces as a conflict.
func (r *SellerRepository) Update(ctx context.Context, seller *domain.Seller) error {
	currentVersion := seller.Version
	seller.Version++

	result := r.db.WithContext(ctx).
		Model(&domain.Seller{}).
		Where("seller_id = ? AND version = ?", seller.SellerID, currentVersion).
		Select("*").
		Omit("seller_id", "created_at").
		Updates(seller)

	if result.Error != nil {
		seller.Version = currentVersion
		return result.Error
	}
	if result.RowsAffected == 0 {
		seller.Version = currentVersion
		return domain.NewError(domain.ErrKindConflict, "Seller was modified concurrently, please retry")
	}
	return nil
}

func (r *SellerRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&domain.Seller{}, "seller_id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *SellerRepository) ListPendingVerification(ctx context.Context) ([]*domain.Seller, error) {
	var sellers []*domain.Seller
	err := r.db.WithContext(ctx).
		Where("verification_status = ?", domain.VerificationPending).
		Order("updated_at ASC").
		Find(&sellers).Error
	if err != nil {
		return nil, err
	}
	return sellers, nil
}

func (r *SellerRepository) applyFilters(query *gorm.DB, filters *domain.Filters) *gorm.DB {
	if filters == nil {
		return query
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.VerificationStatus != nil {
		query = query.Where("verification_status = ?", *filters.VerificationStatus)
	}
	if filters.MinRating != nil {
		query = query.Where("rating >= ?", *filters.MinRating)
	}
	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		query = query.Where("business_name ILIKE ? OR business_email ILIKE ?", pattern, pattern)
	}
	return query
}
