package model

import "time"

// 配送業者。チェックアウト画面の選択肢。
type Expedition struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name"`
	PricePerKg int64     `gorm:"column:price_per_kg;not null" json:"price_per_kg"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
