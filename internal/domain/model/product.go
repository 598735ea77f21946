package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// 画像URLの配列。DBにはJSON文字列で保存する。
type ImageList []string

func (l ImageList) Value() (driver.Value, error) {
	if l == nil {
		l = ImageList{}
	}
	return json.Marshal(l)
}

func (l *ImageList) Scan(src interface{}) error {
	if src == nil {
		*l = ImageList{}
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("unsupported image list source")
	}
}

// 商品。削除はdeletedフラグのみ（過去注文から参照できるように物理削除しない）
type Product struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string `gorm:"type:varchar(255);uniqueIndex;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	//1〜10000の範囲
	Price float64 `gorm:"not null" json:"price"`

	//割引率（1〜100）
	DiscountPercentage float64 `gorm:"column:discount_percentage" json:"discountPercentage"`

	//0以上
	Stock int64 `gorm:"not null;default:0" json:"stock"`

	//0〜5
	Rating float64 `gorm:"not null;default:0" json:"rating"`

	Category string `gorm:"type:varchar(255);not null;index" json:"category"`
	Brand    string `gorm:"type:varchar(255);not null;index" json:"brand"`

	Thumbnail string    `gorm:"type:varchar(512);not null" json:"thumbnail"`
	Images    ImageList `gorm:"type:text" json:"images"`

	Deleted bool `gorm:"not null;default:false" json:"deleted"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
