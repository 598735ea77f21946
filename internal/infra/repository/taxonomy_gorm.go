package repository

import (
	"context"

	"shopapi/internal/domain/model"

	"gorm.io/gorm"
)

type TaxonomyGormRepository struct {
	db *gorm.DB
}

// DI
func NewTaxonomyGormRepository(db *gorm.DB) *TaxonomyGormRepository {
	return &TaxonomyGormRepository{db: db}
}

func (r *TaxonomyGormRepository) ListBrands(ctx context.Context) ([]model.Brand, error) {
	var brands []model.Brand
	if err := r.db.WithContext(ctx).Order("id asc").Find(&brands).Error; err != nil {
		return []model.Brand{}, err
	}
	return brands, nil
}

func (r *TaxonomyGormRepository) ListCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.WithContext(ctx).Order("id asc").Find(&categories).Error; err != nil {
		return []model.Category{}, err
	}
	return categories, nil
}
