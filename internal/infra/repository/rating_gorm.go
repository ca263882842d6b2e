package repository

import (
	"context"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type RatingGormRepository struct {
	db *gorm.DB
}

// DI
func NewRatingGormRepository(gdb *gorm.DB) *RatingGormRepository {
	return &RatingGormRepository{db: gdb}
}

// userIDが購入者または出品者として関わる評価を取得
func (r *RatingGormRepository) ListInvolving(ctx context.Context, userID string, role repo.RatingRole, sort repo.RatingSort) ([]model.Rating, error) {
	tx := r.db.WithContext(ctx).
		Preload("User").
		Preload("Seller").
		Preload("Listing")

	switch role {
	case repo.RatingRoleBuyer:
		tx = tx.Where("user_id = ?", userID)
	case repo.RatingRoleSeller:
		tx = tx.Where("seller_id = ?", userID)
	default:
		tx = tx.Where("user_id = ? OR seller_id = ?", userID, userID)
	}

	switch sort {
	case repo.RatingSortOldest:
		tx = tx.Order("created_at asc")
	case repo.RatingSortRatingHigh:
		tx = tx.Order("score desc")
	case repo.RatingSortRatingLow:
		tx = tx.Order("score asc")
	default:
		tx = tx.Order("created_at desc")
	}

	var ratings []model.Rating
	if err := tx.Find(&ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}

// 出品者が受けた評価（新しい順）
func (r *RatingGormRepository) ListBySellerID(ctx context.Context, sellerID string) ([]model.Rating, error) {
	var ratings []model.Rating
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Listing").
		Where("seller_id = ?", sellerID).
		Order("created_at desc").
		Find(&ratings).Error
	if err != nil {
		return nil, err
	}
	return ratings, nil
}

func (r *RatingGormRepository) Create(ctx context.Context, rating model.Rating) (model.Rating, error) {
	if err := r.db.WithContext(ctx).Create(&rating).Error; err != nil {
		return model.Rating{}, err
	}
	return rating, nil
}
