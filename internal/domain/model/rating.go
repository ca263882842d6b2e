package model

import "time"

// 取引評価。購入者（UserID）が出品者（SellerID）に付ける。
type Rating struct {
	ID        string   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string   `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	SellerID  string   `gorm:"type:uuid;not null;index" json:"seller_id"`
	Seller    *User    `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
	ListingID string   `gorm:"type:uuid;not null;index" json:"listing_id"`
	Listing   *Listing `gorm:"foreignKey:ListingID" json:"listing,omitempty"`

	//1〜5
	Score int `gorm:"not null" json:"score"`

	//本文なし（空文字）も許す
	Review string `gorm:"type:text" json:"review"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
