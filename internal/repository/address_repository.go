package repository

import (
	"context"

	"shopapi/internal/domain/model"
)

// 住所帳の保存・取得の窓口。
// 編集は丸ごと置き換えで来るので、個別更新のAPIは持たない。
type AddressRepository interface {
	Create(ctx context.Context, address model.Address) (model.Address, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.Address, error)
	Delete(ctx context.Context, addressID int64) error
}
