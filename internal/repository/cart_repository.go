package repository

import (
	"context"

	"app/internal/domain/model"
)

type CartRepository interface {
	// 出品と出品者を結合した明細一覧（新しい順）
	ListByUserID(ctx context.Context, userID string) ([]model.CartItem, error)

	// (user, listing) の既存明細。無ければ ErrNotFound
	FindByUserAndListing(ctx context.Context, userID string, listingID string) (model.CartItem, error)

	// 出品付きで1件取得
	FindByID(ctx context.Context, cartItemID string) (model.CartItem, error)

	Create(ctx context.Context, item model.CartItem) (model.CartItem, error)

	// 数量と合計だけを書き換える
	UpdateQuantityAndTotal(ctx context.Context, cartItemID string, qty int64, total int64) error

	DeleteByID(ctx context.Context, cartItemID string) error

	//cartItemがそのユーザーの明細かを判定
	IsOwnedByUser(ctx context.Context, cartItemID string, userID string) (bool, error)

	// 指定ユーザーの明細を全削除（チェックアウト確定時）
	Clear(ctx context.Context, userID string) error
}
