package repository

import (
	"context"

	"app/internal/domain/model"

	"gorm.io/gorm"
)

type PurchaseGormRepository struct {
	db *gorm.DB
}

// DI
func NewPurchaseGormRepository(gdb *gorm.DB) *PurchaseGormRepository {
	return &PurchaseGormRepository{db: gdb}
}

func (r *PurchaseGormRepository) CreateBulk(ctx context.Context, purchases []model.PurchaseHistory) error {
	if len(purchases) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&purchases).Error
}

func (r *PurchaseGormRepository) ListByUserID(ctx context.Context, userID string) ([]model.PurchaseHistory, error) {
	var purchases []model.PurchaseHistory
	err := r.db.WithContext(ctx).
		Preload("Listing").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&purchases).Error
	if err != nil {
		return nil, err
	}
	return purchases, nil
}
