package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	"app/internal/infra/db"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

// カート操作は全件Retry経由で実行する。
// プーリングされた接続のstatementキャッシュ起因の一時エラーを吸収するため。
type CartGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartGormRepository(gdb *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: gdb}
}

// ユーザーのカート明細を出品・出品者付きで一覧取得（新しい順）
func (r *CartGormRepository) ListByUserID(ctx context.Context, userID string) ([]model.CartItem, error) {
	return db.Retry(ctx, func(ctx context.Context) ([]model.CartItem, error) {
		var items []model.CartItem
		err := r.db.WithContext(ctx).
			Preload("Listing").
			Preload("Listing.Seller").
			Where("user_id = ?", userID).
			Order("created_at desc").
			Find(&items).Error
		if err != nil {
			return nil, err
		}
		return items, nil
	})
}

// (user, listing) の既存明細を取得
func (r *CartGormRepository) FindByUserAndListing(ctx context.Context, userID string, listingID string) (model.CartItem, error) {
	return db.Retry(ctx, func(ctx context.Context) (model.CartItem, error) {
		var item model.CartItem
		err := r.db.WithContext(ctx).
			Where("user_id = ? AND listing_id = ?", userID, listingID).
			First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.CartItem{}, repo.ErrNotFound
		}
		if err != nil {
			return model.CartItem{}, err
		}
		return item, nil
	})
}

// 明細を出品付きで取得
func (r *CartGormRepository) FindByID(ctx context.Context, cartItemID string) (model.CartItem, error) {
	return db.Retry(ctx, func(ctx context.Context) (model.CartItem, error) {
		var item model.CartItem
		err := r.db.WithContext(ctx).
			Preload("Listing").
			Preload("Listing.Seller").
			Where("id = ?", cartItemID).
			First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.CartItem{}, repo.ErrNotFound
		}
		if err != nil {
			return model.CartItem{}, err
		}
		return item, nil
	})
}

func (r *CartGormRepository) Create(ctx context.Context, item model.CartItem) (model.CartItem, error) {
	return db.Retry(ctx, func(ctx context.Context) (model.CartItem, error) {
		if err := r.db.WithContext(ctx).Create(&item).Error; err != nil {
			return model.CartItem{}, err
		}
		return item, nil
	})
}

// 数量と合計だけを書き換える
func (r *CartGormRepository) UpdateQuantityAndTotal(ctx context.Context, cartItemID string, qty int64, total int64) error {
	return db.RetryErr(ctx, func(ctx context.Context) error {
		res := r.db.WithContext(ctx).
			Model(&model.CartItem{}).
			Where("id = ?", cartItemID).
			Updates(map[string]interface{}{
				"quantity":    qty,
				"total_price": total,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repo.ErrNotFound
		}
		return nil
	})
}

// 明細を削除
func (r *CartGormRepository) DeleteByID(ctx context.Context, cartItemID string) error {
	return db.RetryErr(ctx, func(ctx context.Context) error {
		res := r.db.WithContext(ctx).
			Where("id = ?", cartItemID).
			Delete(&model.CartItem{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repo.ErrNotFound
		}
		return nil
	})
}

// cartItemがそのユーザーの明細かを判定
func (r *CartGormRepository) IsOwnedByUser(ctx context.Context, cartItemID string, userID string) (bool, error) {
	return db.Retry(ctx, func(ctx context.Context) (bool, error) {
		var count int64
		err := r.db.WithContext(ctx).
			Model(&model.CartItem{}).
			Where("id = ? AND user_id = ?", cartItemID, userID).
			Count(&count).Error
		if err != nil {
			return false, err
		}
		return count > 0, nil
	})
}

// 指定ユーザーの明細を全削除
func (r *CartGormRepository) Clear(ctx context.Context, userID string) error {
	return db.RetryErr(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).
			Where("user_id = ?", userID).
			Delete(&model.CartItem{}).Error
	})
}
