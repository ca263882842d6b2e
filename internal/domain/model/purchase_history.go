package model

import "time"

type PurchaseStatus string

const (
	PurchaseStatusPending   PurchaseStatus = "PENDING"
	PurchaseStatusPaid      PurchaseStatus = "PAID"
	PurchaseStatusShipped   PurchaseStatus = "SHIPPED"
	PurchaseStatusCompleted PurchaseStatus = "COMPLETED"
)

// 購入履歴。チェックアウト確定時にカート明細から作られる。
type PurchaseHistory struct {
	ID           string   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       string   `gorm:"type:uuid;not null;index" json:"user_id"`
	ListingID    string   `gorm:"type:uuid;not null;index" json:"listing_id"`
	Listing      *Listing `gorm:"foreignKey:ListingID" json:"listing,omitempty"`
	ExpeditionID string   `gorm:"type:uuid;not null" json:"expedition_id"`

	Quantity   int64          `gorm:"not null" json:"quantity"`
	TotalPrice int64          `gorm:"not null" json:"total_price"`
	Status     PurchaseStatus `gorm:"type:varchar(20);not null" json:"status"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
