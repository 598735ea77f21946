package model

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// パスワードかGoogleIDのどちらか一方は必ず持つ
type User struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Username string `gorm:"type:varchar(255);not null" json:"username"`

	//Googleログインのユーザーは空
	PasswordHash string `gorm:"column:password_hash" json:"-"`

	//Google認証で作られたユーザーのsub
	GoogleID *string `gorm:"column:google_id;uniqueIndex" json:"-"`

	ProfilePicture string `gorm:"type:varchar(512)" json:"profile_picture,omitempty"`

	Role Role `gorm:"type:varchar(20);not null;default:'user'" json:"role"`

	//配送先住所（ユーザーが追加・編集・削除する）
	Addresses []Address `gorm:"foreignKey:UserID" json:"addresses"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
