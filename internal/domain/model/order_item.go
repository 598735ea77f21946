package model

import "time"

// 注文明細。title/price/thumbnailは注文時点のスナップショット。
type OrderItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64     `gorm:"not null;index" json:"order_id"`
	ProductID int64     `gorm:"not null;index" json:"product"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Price     float64   `gorm:"not null" json:"price"`
	Thumbnail string    `gorm:"type:varchar(512)" json:"thumbnail"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
