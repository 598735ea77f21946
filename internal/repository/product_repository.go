package repository

import (
	"context"
	"errors"

	"shopapi/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 一覧検索の条件。query stringから組み立てた後、使う前に検証する。
type ProductListQuery struct {
	//category IN (...) の集合。空なら条件なし。
	Categories []string
	//brand IN (...) の集合。空なら条件なし。
	Brands []string

	//ソート対象のカラム（price / rating / created_at など）
	SortField string
	//asc / desc
	SortOrder string

	//offset = Limit * (Page - 1)
	Page  int
	Limit int

	//trueなら削除済み（deleted=true）も含める（管理者一覧）
	IncludeDeleted bool
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	//一覧と、ページング前の総件数を返す
	List(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	//mapで渡されたカラムだけを部分更新する
	Update(ctx context.Context, id int64, fields map[string]interface{}) (model.Product, error)
	SoftDelete(ctx context.Context, id int64) error
}
