package repository

import (
	"context"

	"app/internal/domain/model"

	"gorm.io/gorm"
)

type ExpeditionGormRepository struct {
	db *gorm.DB
}

// DI
func NewExpeditionGormRepository(gdb *gorm.DB) *ExpeditionGormRepository {
	return &ExpeditionGormRepository{db: gdb}
}

func (r *ExpeditionGormRepository) List(ctx context.Context) ([]model.Expedition, error) {
	var expeditions []model.Expedition
	err := r.db.WithContext(ctx).
		Order("name asc").
		Find(&expeditions).Error
	if err != nil {
		return nil, err
	}
	return expeditions, nil
}
