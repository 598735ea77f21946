package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"shopapi/internal/domain/model"
	repo "shopapi/internal/repository"
)

type ProductUsecase struct {
	productRepo  repo.ProductRepository
	taxonomyRepo repo.TaxonomyRepository
	auditRepo    repo.AuditLogRepository
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	taxonomyRepo repo.TaxonomyRepository,
	auditRepo repo.AuditLogRepository,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo:  productRepo,
		taxonomyRepo: taxonomyRepo,
		auditRepo:    auditRepo,
	}
}

// GET /productsの入力DTO
type ListProductsInput struct {
	//カンマ区切りで来た集合
	Categories []string
	Brands     []string

	SortField string
	SortOrder string

	Page  int
	Limit int

	//管理者一覧モード（削除済みも含める）
	IncludeDeleted bool
}

type ProductListOutput struct {
	Items []model.Product
	//ページング前の総件数（X-Total-Countで返す）
	Total int64
}

// ソート対象にできるカラムの許可リスト（query stringをそのままSQLに入れない）
var productSortFields = map[string]string{
	"id":        "id",
	"price":     "price",
	"rating":    "rating",
	"discount":  "discount_percentage",
	"createdAt": "created_at",
	"title":     "title",
	"stock":     "stock",
}

func (u *ProductUsecase) ListProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.Page < 1 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	q := repo.ProductListQuery{
		Categories:     in.Categories,
		Brands:         in.Brands,
		Page:           in.Page,
		Limit:          in.Limit,
		IncludeDeleted: in.IncludeDeleted,
	}

	if in.SortField != "" {
		col, ok := productSortFields[in.SortField]
		if !ok {
			return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid sort")
		}
		switch in.SortOrder {
		case "asc", "desc":
		default:
			return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid order")
		}
		q.SortField = col
		q.SortOrder = in.SortOrder
	}

	items, total, err := u.productRepo.List(ctx, q)
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return ProductListOutput{Items: items, Total: total}, nil
}

func (u *ProductUsecase) GetProductDetail(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//削除済みでも返す（過去注文の詳細から参照されるため）
	return p, nil
}

type CreateProductInput struct {
	Title              string
	Description        string
	Price              float64
	DiscountPercentage float64
	Stock              int64
	Category           string
	Brand              string
	Thumbnail          string
	Images             []string
}

func validateProductBounds(price float64, discount float64, stock int64) error {
	//priceは1〜10000
	if price < 1 || price > 10000 {
		return NewHTTPError(http.StatusBadRequest, "price must be between 1 and 10000")
	}
	//discountは0（未設定）または1〜100
	if discount != 0 && (discount < 1 || discount > 100) {
		return NewHTTPError(http.StatusBadRequest, "discount must be between 1 and 100")
	}
	if stock < 0 {
		return NewHTTPError(http.StatusBadRequest, "stock must be >= 0")
	}
	return nil
}

func (u *ProductUsecase) CreateProduct(ctx context.Context, adminUserID int64, in CreateProductInput) (model.Product, error) {
	if adminUserID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.Title) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "title required")
	}
	if strings.TrimSpace(in.Category) == "" || strings.TrimSpace(in.Brand) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "category and brand required")
	}
	if err := validateProductBounds(in.Price, in.DiscountPercentage, in.Stock); err != nil {
		return model.Product{}, err
	}

	created, err := u.productRepo.Create(ctx, model.Product{
		Title:              strings.TrimSpace(in.Title),
		Description:        in.Description,
		Price:              in.Price,
		DiscountPercentage: in.DiscountPercentage,
		Stock:              in.Stock,
		Category:           in.Category,
		Brand:              in.Brand,
		Thumbnail:          in.Thumbnail,
		Images:             in.Images,
	})
	if err != nil {
		//titleはunique
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "could not create product")
	}

	u.writeAudit(ctx, adminUserID, model.AuditActionCreateProduct, created.ID, nil)
	return created, nil
}

// 部分更新。渡ってきたフィールドだけ反映する。
type UpdateProductInput struct {
	Title              *string
	Description        *string
	Price              *float64
	DiscountPercentage *float64
	Stock              *int64
	Rating             *float64
	Category           *string
	Brand              *string
	Thumbnail          *string
	Images             []string
	Deleted            *bool
}

func (u *ProductUsecase) UpdateProduct(ctx context.Context, adminUserID int64, productID int64, in UpdateProductInput) (model.Product, error) {
	if adminUserID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	fields := map[string]interface{}{}

	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return model.Product{}, NewHTTPError(http.StatusBadRequest, "title required")
		}
		fields["title"] = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Price != nil {
		if *in.Price < 1 || *in.Price > 10000 {
			return model.Product{}, NewHTTPError(http.StatusBadRequest, "price must be between 1 and 10000")
		}
		fields["price"] = *in.Price
	}
	if in.DiscountPercentage != nil {
		if *in.DiscountPercentage != 0 && (*in.DiscountPercentage < 1 || *in.DiscountPercentage > 100) {
			return model.Product{}, NewHTTPError(http.StatusBadRequest, "discount must be between 1 and 100")
		}
		fields["discount_percentage"] = *in.DiscountPercentage
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return model.Product{}, NewHTTPError(http.StatusBadRequest, "stock must be >= 0")
		}
		fields["stock"] = *in.Stock
	}
	if in.Rating != nil {
		if *in.Rating < 0 || *in.Rating > 5 {
			return model.Product{}, NewHTTPError(http.StatusBadRequest, "rating must be between 0 and 5")
		}
		fields["rating"] = *in.Rating
	}
	if in.Category != nil {
		fields["category"] = *in.Category
	}
	if in.Brand != nil {
		fields["brand"] = *in.Brand
	}
	if in.Thumbnail != nil {
		fields["thumbnail"] = *in.Thumbnail
	}
	if in.Images != nil {
		b, err := json.Marshal(in.Images)
		if err != nil {
			return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid images")
		}
		fields["images"] = string(b)
	}
	if in.Deleted != nil {
		fields["deleted"] = *in.Deleted
	}

	if len(fields) == 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "nothing to update")
	}

	updated, err := u.productRepo.Update(ctx, productID, fields)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.writeAudit(ctx, adminUserID, model.AuditActionUpdateProduct, productID, fields)
	return updated, nil
}

// 商品削除（deletedフラグ）。一覧に出なくなるだけで過去注文からは参照できる。
func (u *ProductUsecase) DeleteProduct(ctx context.Context, adminUserID int64, productID int64) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	err := u.productRepo.SoftDelete(ctx, productID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.writeAudit(ctx, adminUserID, model.AuditActionDeleteProduct, productID, nil)
	return nil
}

func (u *ProductUsecase) ListBrands(ctx context.Context) ([]model.Brand, error) {
	brands, err := u.taxonomyRepo.ListBrands(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return brands, nil
}

func (u *ProductUsecase) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := u.taxonomyRepo.ListCategories(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return categories, nil
}

func (u *ProductUsecase) writeAudit(ctx context.Context, actorID int64, action model.AuditAction, productID int64, fields map[string]interface{}) {
	detail := ""
	if fields != nil {
		if b, err := json.Marshal(fields); err == nil {
			detail = string(b)
		}
	}
	_ = u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  actorID,
		Action:       action,
		ResourceType: model.AuditResourceProduct,
		ResourceID:   productID,
		Detail:       detail,
	})
}
