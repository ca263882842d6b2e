package repository

import (
	"context"

	"app/internal/domain/model"
)

// どちらの立場の評価を見るか
type RatingRole string

const (
	RatingRoleAll    RatingRole = "all"
	RatingRoleBuyer  RatingRole = "buyer"
	RatingRoleSeller RatingRole = "seller"
)

// レビュー一覧の並び順
type RatingSort string

const (
	RatingSortNewest     RatingSort = "newest"
	RatingSortOldest     RatingSort = "oldest"
	RatingSortRatingHigh RatingSort = "rating-high"
	RatingSortRatingLow  RatingSort = "rating-low"
)

type RatingRepository interface {
	// userIDが購入者または出品者として関わる評価（user/seller/listing結合済み）
	ListInvolving(ctx context.Context, userID string, role RatingRole, sort RatingSort) ([]model.Rating, error)

	// 出品者が受けた評価（新しい順、user/listing結合済み）
	ListBySellerID(ctx context.Context, sellerID string) ([]model.Rating, error)

	Create(ctx context.Context, rating model.Rating) (model.Rating, error)
}
