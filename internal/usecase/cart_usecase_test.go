package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"shopapi/internal/domain/model"
	repo "shopapi/internal/repository"
	"shopapi/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// AddToCart
// =====================

func TestCartUsecase_AddToCart_DefaultQuantityOne(t *testing.T) {
	items := new(MockCartItemRepository)
	products := new(MockProductRepository)

	products.On("FindByID", mock.Anything, int64(1)).Return(model.Product{
		ID: 1, Title: "iPhone 9", Price: 549, Thumbnail: "thumb.jpg",
	}, nil)
	//quantity省略は1扱い
	items.On("UpsertByUserAndProduct", mock.Anything, int64(10), int64(1), int64(1)).Return(model.CartItem{
		ID: 5, UserID: 10, ProductID: 1, Quantity: 1,
	}, nil)

	u := usecase.NewCartUsecase(items, products)

	line, err := u.AddToCart(context.Background(), 10, usecase.AddToCartInput{ProductID: 1})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), line.Quantity)
	assert.Equal(t, "iPhone 9", line.Title)

	items.AssertExpectations(t)
}

// 同じ商品を2回追加すると行は増えず数量が加算される
func TestCartUsecase_AddToCart_SameProductMerges(t *testing.T) {
	items := new(MockCartItemRepository)
	products := new(MockProductRepository)

	products.On("FindByID", mock.Anything, int64(1)).Return(model.Product{
		ID: 1, Title: "iPhone 9", Price: 549,
	}, nil)

	//2回目のupsertはDB側で加算された行が返る
	items.On("UpsertByUserAndProduct", mock.Anything, int64(10), int64(1), int64(1)).Return(model.CartItem{
		ID: 5, UserID: 10, ProductID: 1, Quantity: 2,
	}, nil)

	u := usecase.NewCartUsecase(items, products)

	line, err := u.AddToCart(context.Background(), 10, usecase.AddToCartInput{ProductID: 1, Quantity: 1})
	assert.NoError(t, err)
	assert.Equal(t, int64(5), line.ID)
	assert.Equal(t, int64(2), line.Quantity)
}

func TestCartUsecase_AddToCart_DeletedProduct(t *testing.T) {
	items := new(MockCartItemRepository)
	products := new(MockProductRepository)

	products.On("FindByID", mock.Anything, int64(1)).Return(model.Product{
		ID: 1, Deleted: true,
	}, nil)

	u := usecase.NewCartUsecase(items, products)

	_, err := u.AddToCart(context.Background(), 10, usecase.AddToCartInput{ProductID: 1})
	status, _ := httpStatus(t, err)
	assert.Equal(t, http.StatusBadRequest, status)

	items.AssertNotCalled(t, "UpsertByUserAndProduct", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCartUsecase_AddToCart_MissingProductID(t *testing.T) {
	u := usecase.NewCartUsecase(new(MockCartItemRepository), new(MockProductRepository))

	_, err := u.AddToCart(context.Background(), 10, usecase.AddToCartInput{ProductID: 0})
	status, msg := httpStatus(t, err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid or missing product ID", msg)
}

func TestCartUsecase_AddToCart_NegativeQuantity(t *testing.T) {
	u := usecase.NewCartUsecase(new(MockCartItemRepository), new(MockProductRepository))

	_, err := u.AddToCart(context.Background(), 10, usecase.AddToCartInput{ProductID: 1, Quantity: -2})
	status, msg := httpStatus(t, err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Quantity must be a positive integer", msg)
}

// =====================
// GetCart
// =====================

func TestCartUsecase_GetCart_JoinsCurrentProductInfo(t *testing.T) {
	items := new(MockCartItemRepository)
	products := new(MockProductRepository)

	items.On("ListByUserID", mock.Anything, int64(10)).Return([]model.CartItem{
		{ID: 1, UserID: 10, ProductID: 1, Quantity: 2},
		{ID: 2, UserID: 10, ProductID: 99, Quantity: 1},
	}, nil)
	products.On("FindByID", mock.Anything, int64(1)).Return(model.Product{
		ID: 1, Title: "iPhone 9", Price: 549,
	}, nil)
	//消えた商品の行はスキップされる
	products.On("FindByID", mock.Anything, int64(99)).Return(model.Product{}, repo.ErrNotFound)

	u := usecase.NewCartUsecase(items, products)

	lines, err := u.GetCart(context.Background(), 10)
	assert.NoError(t, err)
	assert.Len(t, lines, 1)
	assert.Equal(t, "iPhone 9", lines[0].Title)
	assert.Equal(t, int64(2), lines[0].Quantity)
}

func TestCartUsecase_GetCart_ProductLookupDBError(t *testing.T) {
	items := new(MockCartItemRepository)
	products := new(MockProductRepository)

	items.On("ListByUserID", mock.Anything, int64(10)).Return([]model.CartItem{
		{ID: 1, UserID: 10, ProductID: 1, Quantity: 2},
	}, nil)
	//ErrNotFound以外は行を黙って落とさずエラーで返す
	products.On("FindByID", mock.Anything, int64(1)).Return(model.Product{}, assert.AnError)

	u := usecase.NewCartUsecase(items, products)

	_, err := u.GetCart(context.Background(), 10)
	status, msg := httpStatus(t, err)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "db error", msg)
}

// =====================
// UpdateCartLine / DeleteCartLine
// =====================

func TestCartUsecase_UpdateCartLine_NotOwned(t *testing.T) {
	items := new(MockCartItemRepository)

	//他人の行は404（存在を教えない）
	items.On("IsOwnedByUser", mock.Anything, int64(5), int64(10)).Return(false, nil)

	u := usecase.NewCartUsecase(items, new(MockProductRepository))

	_, err := u.UpdateCartLine(context.Background(), 10, 5, usecase.UpdateCartLineInput{Quantity: 3})
	status, _ := httpStatus(t, err)
	assert.Equal(t, http.StatusNotFound, status)

	items.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything)
}

func TestCartUsecase_UpdateCartLine_Success(t *testing.T) {
	items := new(MockCartItemRepository)
	products := new(MockProductRepository)

	items.On("IsOwnedByUser", mock.Anything, int64(5), int64(10)).Return(true, nil)
	items.On("UpdateQuantity", mock.Anything, int64(5), int64(3)).Return(model.CartItem{
		ID: 5, UserID: 10, ProductID: 1, Quantity: 3,
	}, nil)
	products.On("FindByID", mock.Anything, int64(1)).Return(model.Product{
		ID: 1, Title: "iPhone 9", Price: 549,
	}, nil)

	u := usecase.NewCartUsecase(items, products)

	line, err := u.UpdateCartLine(context.Background(), 10, 5, usecase.UpdateCartLineInput{Quantity: 3})
	assert.NoError(t, err)
	assert.Equal(t, int64(3), line.Quantity)
}

func TestCartUsecase_UpdateCartLine_ZeroQuantity(t *testing.T) {
	u := usecase.NewCartUsecase(new(MockCartItemRepository), new(MockProductRepository))

	_, err := u.UpdateCartLine(context.Background(), 10, 5, usecase.UpdateCartLineInput{Quantity: 0})
	status, _ := httpStatus(t, err)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestCartUsecase_DeleteCartLine_Success(t *testing.T) {
	items := new(MockCartItemRepository)

	items.On("IsOwnedByUser", mock.Anything, int64(5), int64(10)).Return(true, nil)
	items.On("DeleteByID", mock.Anything, int64(5)).Return(nil)

	u := usecase.NewCartUsecase(items, new(MockProductRepository))

	err := u.DeleteCartLine(context.Background(), 10, 5)
	assert.NoError(t, err)
	items.AssertExpectations(t)
}

func TestCartUsecase_DeleteCartLine_NotOwned(t *testing.T) {
	items := new(MockCartItemRepository)
	items.On("IsOwnedByUser", mock.Anything, int64(5), int64(11)).Return(false, nil)

	u := usecase.NewCartUsecase(items, new(MockProductRepository))

	err := u.DeleteCartLine(context.Background(), 11, 5)
	status, _ := httpStatus(t, err)
	assert.Equal(t, http.StatusNotFound, status)

	items.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
}
