package model

import "time"

// 出品カード。Priceはルピア建ての整数。
type Listing struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	SellerID string `gorm:"type:uuid;not null;index" json:"seller_id"`
	Seller   *User  `gorm:"foreignKey:SellerID" json:"seller,omitempty"`

	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	PictURL     string `gorm:"column:pict_url;type:varchar(500)" json:"pict_url"`

	Price int64 `gorm:"not null" json:"price"`
	Stock int64 `gorm:"not null" json:"stock"`

	//閲覧数（トレンド順の基準）
	SeenCount int64 `gorm:"not null;default:0" json:"seen_count"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
