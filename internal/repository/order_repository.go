package repository

import (
	"context"

	"shopapi/internal/domain/model"
)

// 管理者用の一覧条件。商品一覧と同じページング契約。
type OrderListQuery struct {
	SortField string
	SortOrder string
	Page      int
	Limit     int
}

type OrderRepository interface {
	//明細込みで1件取得
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	//本人の注文一覧（ページングなし）
	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)
	//管理者用の一覧と、ページング前の総件数（deleted=trueは件数から除く）
	List(ctx context.Context, q OrderListQuery) ([]model.Order, int64, error)
	Create(ctx context.Context, order model.Order) (model.Order, error)
	//mapで渡されたカラムだけを部分更新する
	Update(ctx context.Context, orderID int64, fields map[string]interface{}) (model.Order, error)
	SoftDelete(ctx context.Context, orderID int64) error
}
