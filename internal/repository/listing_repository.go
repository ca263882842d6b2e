package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 出品の永続化（保存・取得）だけを約束。
type ListingRepository interface {
	// 出品者・配送元付きで1件取得
	FindByID(ctx context.Context, id string) (model.Listing, error)

	//名前・説明の部分一致検索（新着順）
	Search(ctx context.Context, q string) ([]model.Listing, error)

	//閲覧数の多い順に上位limit件
	Trending(ctx context.Context, limit int) ([]model.Listing, error)

	ListBySellerID(ctx context.Context, sellerID string) ([]model.Listing, error)

	//商品ページ表示のたびに+1
	IncrementSeenCount(ctx context.Context, id string) error

	//在庫が足りれば減らしてtrue、足りなければ何もせずfalse
	DecreaseStockIfEnough(ctx context.Context, id string, qty int64) (bool, error)
}
