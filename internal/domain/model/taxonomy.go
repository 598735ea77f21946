package model

// フロントの絞り込みチェックボックスの元データ
type Brand struct {
	ID    int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Label string `gorm:"type:varchar(255);not null" json:"label"`
	Value string `gorm:"type:varchar(255);uniqueIndex;not null" json:"value"`
}

type Category struct {
	ID    int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Label string `gorm:"type:varchar(255);not null" json:"label"`
	Value string `gorm:"type:varchar(255);uniqueIndex;not null" json:"value"`
}
