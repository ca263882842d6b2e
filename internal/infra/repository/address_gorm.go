package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type AddressGormRepository struct {
	db *gorm.DB
}

// DI
func NewAddressGormRepository(gdb *gorm.DB) *AddressGormRepository {
	return &AddressGormRepository{db: gdb}
}

func (r *AddressGormRepository) FindByID(ctx context.Context, id string) (model.AddressDetails, error) {
	var a model.AddressDetails
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.AddressDetails{}, repo.ErrNotFound
	}
	if err != nil {
		return model.AddressDetails{}, err
	}
	return a, nil
}

func (r *AddressGormRepository) Create(ctx context.Context, a model.AddressDetails) (model.AddressDetails, error) {
	if err := r.db.WithContext(ctx).Create(&a).Error; err != nil {
		return model.AddressDetails{}, err
	}
	return a, nil
}

func (r *AddressGormRepository) Update(ctx context.Context, a model.AddressDetails) error {
	res := r.db.WithContext(ctx).
		Model(&model.AddressDetails{}).
		Where("id = ?", a.ID).
		Updates(map[string]interface{}{
			"name":        a.Name,
			"receiver":    a.Receiver,
			"province":    a.Province,
			"city":        a.City,
			"postal_code": a.PostalCode,
			"address":     a.Address,
			"phone":       a.Phone,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
