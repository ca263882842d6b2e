package repository

import (
	"context"

	"app/internal/domain/model"
)

type PurchaseRepository interface {
	CreateBulk(ctx context.Context, purchases []model.PurchaseHistory) error
	// 出品結合済み、新しい順
	ListByUserID(ctx context.Context, userID string) ([]model.PurchaseHistory, error)
}
