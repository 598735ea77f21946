package usecase

import (
	"context"
	"net/http"

	repo "shopapi/internal/repository"
)

// CartUsecase は /cart の業務ロジック。
type CartUsecase struct {
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
}

func NewCartUsecase(
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
) *CartUsecase {
	return &CartUsecase{
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
	}
}

// カート1行のAPIレスポンス。
// title/price/thumbnailは取得時点の商品情報（スナップショットしない）。
type CartLineResponse struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"product"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int64   `json:"quantity"`
	Thumbnail string  `json:"thumbnail"`
}

type AddToCartInput struct {
	ProductID int64
	//0なら1として扱う
	Quantity int64
}

type UpdateCartLineInput struct {
	Quantity int64
}

// カート取得。各行に現在の商品情報を結合して返す。
func (u *CartUsecase) GetCart(ctx context.Context, userID int64) ([]CartLineResponse, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	items, err := u.cartItemRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	lines := make([]CartLineResponse, 0, len(items))
	for _, it := range items {
		p, err := u.productRepo.FindByID(ctx, it.ProductID)
		if err == repo.ErrNotFound {
			//商品が消えている行は出さない
			continue
		}
		if err != nil {
			return nil, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		lines = append(lines, CartLineResponse{
			ID:        it.ID,
			ProductID: p.ID,
			Title:     p.Title,
			Price:     p.Price,
			Quantity:  it.Quantity,
			Thumbnail: p.Thumbnail,
		})
	}

	return lines, nil
}

// カートに追加（同一商品は数量加算）。
func (u *CartUsecase) AddToCart(ctx context.Context, userID int64, in AddToCartInput) (CartLineResponse, error) {
	if userID <= 0 {
		return CartLineResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ProductID <= 0 {
		return CartLineResponse{}, NewHTTPError(http.StatusBadRequest, "Invalid or missing product ID")
	}

	qty := in.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 1 {
		return CartLineResponse{}, NewHTTPError(http.StatusBadRequest, "Quantity must be a positive integer")
	}

	//商品チェック（削除済みは追加不可）
	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if err == repo.ErrNotFound {
		return CartLineResponse{}, NewHTTPError(http.StatusBadRequest, "product not found")
	}
	if err != nil {
		return CartLineResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if p.Deleted {
		return CartLineResponse{}, NewHTTPError(http.StatusBadRequest, "product not found")
	}

	item, err := u.cartItemRepo.UpsertByUserAndProduct(ctx, userID, in.ProductID, qty)
	if err != nil {
		return CartLineResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return CartLineResponse{
		ID:        item.ID,
		ProductID: p.ID,
		Title:     p.Title,
		Price:     p.Price,
		Quantity:  item.Quantity,
		Thumbnail: p.Thumbnail,
	}, nil
}

// 数量変更（所有チェックあり）。
func (u *CartUsecase) UpdateCartLine(ctx context.Context, userID int64, cartItemID int64, in UpdateCartLineInput) (CartLineResponse, error) {
	if userID <= 0 {
		return CartLineResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if cartItemID <= 0 {
		return CartLineResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.Quantity < 1 {
		return CartLineResponse{}, NewHTTPError(http.StatusBadRequest, "Quantity must be a positive integer")
	}

	owned, err := u.cartItemRepo.IsOwnedByUser(ctx, cartItemID, userID)
	if err != nil {
		return CartLineResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !owned {
		return CartLineResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	item, err := u.cartItemRepo.UpdateQuantity(ctx, cartItemID, in.Quantity)
	if err == repo.ErrNotFound {
		return CartLineResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return CartLineResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	p, err := u.productRepo.FindByID(ctx, item.ProductID)
	if err != nil {
		return CartLineResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return CartLineResponse{
		ID:        item.ID,
		ProductID: p.ID,
		Title:     p.Title,
		Price:     p.Price,
		Quantity:  item.Quantity,
		Thumbnail: p.Thumbnail,
	}, nil
}

// 明細削除（所有チェックあり）。
func (u *CartUsecase) DeleteCartLine(ctx context.Context, userID int64, cartItemID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if cartItemID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	owned, err := u.cartItemRepo.IsOwnedByUser(ctx, cartItemID, userID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !owned {
		return NewHTTPError(http.StatusNotFound, "not found")
	}

	if err := u.cartItemRepo.DeleteByID(ctx, cartItemID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
