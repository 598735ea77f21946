package repository

import (
	"context"

	"shopapi/internal/domain/model"
)

// 絞り込み用マスタ（ブランド・カテゴリ）の取得
type TaxonomyRepository interface {
	ListBrands(ctx context.Context) ([]model.Brand, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
}
