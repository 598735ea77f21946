package model

import "time"

// 配送先住所（ユーザーの住所帳）
type Address struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64 `gorm:"not null;index" json:"user_id"`

	//宛名
	Name string `gorm:"type:varchar(255);not null" json:"name"`

	//連絡先メール
	Email string `gorm:"type:varchar(255)" json:"email"`

	//番地など
	Street string `gorm:"type:varchar(255);not null" json:"street"`

	City  string `gorm:"type:varchar(255);not null" json:"city"`
	State string `gorm:"type:varchar(255)" json:"state"`

	//郵便番号
	PinCode string `gorm:"type:varchar(20);not null" json:"pinCode"`

	//電話番号
	Phone string `gorm:"type:varchar(30)" json:"phone"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
