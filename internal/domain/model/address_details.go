package model

import "time"

// 配送先住所（インドネシアの住所体系）。
type AddressDetails struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	//住所ラベル（自宅など）
	Name string `gorm:"type:varchar(255);not null" json:"name"`

	//受取人
	Receiver string `gorm:"type:varchar(255);not null" json:"receiver"`

	Province   string `gorm:"type:varchar(100);not null" json:"province"`
	City       string `gorm:"type:varchar(100);not null" json:"city"`
	PostalCode string `gorm:"type:varchar(20);not null" json:"postal_code"`

	//番地以下
	Address string `gorm:"type:varchar(500);not null" json:"address"`

	Phone string `gorm:"type:varchar(30)" json:"phone"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
