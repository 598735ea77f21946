package repository

import "context"

type InventoryRepository interface {
	// 在庫が足りるときだけ減算（UPDATE ... WHERE stock >= ?）
	DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error)

	// 在庫戻し（注文キャンセルなど）
	IncreaseStock(ctx context.Context, productID int64, qty int64) error
}
