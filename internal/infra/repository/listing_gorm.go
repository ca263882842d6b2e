package repository

import (
	"context"
	"errors"
	"strings"

	"app/internal/domain/model"
	"app/internal/infra/db"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type ListingGormRepository struct {
	db *gorm.DB
}

// DI
func NewListingGormRepository(gdb *gorm.DB) *ListingGormRepository {
	return &ListingGormRepository{db: gdb}
}

// IDで出品を取得（出品者と配送元付き）
func (r *ListingGormRepository) FindByID(ctx context.Context, id string) (model.Listing, error) {
	return db.Retry(ctx, func(ctx context.Context) (model.Listing, error) {
		var l model.Listing
		err := r.db.WithContext(ctx).
			Preload("Seller").
			Preload("Seller.ShipDetails").
			Where("id = ?", id).
			First(&l).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Listing{}, repo.ErrNotFound
		}
		if err != nil {
			return model.Listing{}, err
		}
		return l, nil
	})
}

// 名前・説明の部分一致検索（新着順）
func (r *ListingGormRepository) Search(ctx context.Context, q string) ([]model.Listing, error) {
	return db.Retry(ctx, func(ctx context.Context) ([]model.Listing, error) {
		var listings []model.Listing

		tx := r.db.WithContext(ctx).
			Preload("Seller").
			Preload("Seller.ShipDetails")

		if strings.TrimSpace(q) != "" {
			like := "%" + strings.TrimSpace(q) + "%"
			tx = tx.Where("name ILIKE ? OR description ILIKE ?", like, like)
		}

		if err := tx.Order("created_at desc").Find(&listings).Error; err != nil {
			return nil, err
		}
		return listings, nil
	})
}

// 閲覧数の多い順に上位limit件
func (r *ListingGormRepository) Trending(ctx context.Context, limit int) ([]model.Listing, error) {
	return db.Retry(ctx, func(ctx context.Context) ([]model.Listing, error) {
		var listings []model.Listing
		err := r.db.WithContext(ctx).
			Preload("Seller").
			Preload("Seller.ShipDetails").
			Order("seen_count desc").
			Limit(limit).
			Find(&listings).Error
		if err != nil {
			return nil, err
		}
		return listings, nil
	})
}

func (r *ListingGormRepository) ListBySellerID(ctx context.Context, sellerID string) ([]model.Listing, error) {
	return db.Retry(ctx, func(ctx context.Context) ([]model.Listing, error) {
		var listings []model.Listing
		err := r.db.WithContext(ctx).
			Preload("Seller").
			Where("seller_id = ?", sellerID).
			Order("created_at desc").
			Find(&listings).Error
		if err != nil {
			return nil, err
		}
		return listings, nil
	})
}

// 閲覧数を+1。表示のたびに呼ばれるので結果は見ない
func (r *ListingGormRepository) IncrementSeenCount(ctx context.Context, id string) error {
	return db.RetryErr(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).
			Model(&model.Listing{}).
			Where("id = ?", id).
			UpdateColumn("seen_count", gorm.Expr("seen_count + 1")).Error
	})
}

// 在庫が足りれば減らしてtrue、足りなければ何もせずfalse
func (r *ListingGormRepository) DecreaseStockIfEnough(ctx context.Context, id string, qty int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Listing{}).
		Where("id = ? AND stock >= ?", id, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
