package model

import "time"

// カート明細。
// (user_id, listing_id) は一意で、同じ出品の再追加は既存行の上書きになる。
// TotalPriceは常にサーバー側で Listing.Price × Quantity を計算して保存する。
type CartItem struct {
	ID        string   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string   `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_listing" json:"user_id"`
	ListingID string   `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_listing" json:"listing_id"`
	Listing   *Listing `gorm:"foreignKey:ListingID" json:"listing,omitempty"`

	Quantity   int64 `gorm:"not null" json:"quantity"`
	TotalPrice int64 `gorm:"not null" json:"total_price"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
