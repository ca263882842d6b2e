package model

import "time"

// 会員。出品者と購入者の区別はなく、誰でも出品できる。
type User struct {
	ID           string `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"column:password_hash;not null" json:"-"`
	FullName     string `gorm:"type:varchar(255)" json:"full_name"`

	//プロフィール画像URL
	ProfilePicture string `gorm:"type:varchar(500)" json:"profile_picture"`

	//配送元住所（未登録ならnull）
	AddressDetailsID *string         `gorm:"type:uuid;index" json:"address_details_id,omitempty"`
	ShipDetails      *AddressDetails `gorm:"foreignKey:AddressDetailsID" json:"ship_details,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
