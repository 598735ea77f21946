package handler

import (
	"net/http"
	"strconv"
	"strings"

	"shopapi/internal/config"
	"shopapi/internal/middleware"
	"shopapi/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// /products, /brands, /categories のAPI
type ProductHandler struct {
	uc  *usecase.ProductUsecase
	cfg config.Config
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase, cfg config.Config) *ProductHandler {
	return &ProductHandler{uc: uc, cfg: cfg}
}

func (h *ProductHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/products", h.list)
	e.GET("/products/:id", h.detail)
	e.GET("/brands", h.brands)
	e.GET("/categories", h.categories)

	//作成・更新・削除は管理者だけ
	admin := []echo.MiddlewareFunc{middleware.AuthJWT(h.cfg), middleware.AdminRoleGuard()}
	e.POST("/products", h.create, admin...)
	e.PATCH("/products/:id", h.update, admin...)
	e.DELETE("/products/:id", h.remove, admin...)
}

// query stringからページングを取り出す（_page/_limit、default 1/10）
func parsePaging(c echo.Context) (int, int, error) {
	page := 1
	if v := c.QueryParam("_page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, usecase.NewHTTPError(http.StatusBadRequest, "invalid page")
		}
		page = p
	}

	limit := 10
	if v := c.QueryParam("_limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, usecase.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
		limit = l
	}

	return page, limit, nil
}

// カンマ区切りのquery paramを集合にする
func splitParam(c echo.Context, name string) []string {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (h *ProductHandler) list(c echo.Context) error {
	page, limit, err := parsePaging(c)
	if err != nil {
		return writeError(c, err)
	}

	in := usecase.ListProductsInput{
		Categories: splitParam(c, "category"),
		Brands:     splitParam(c, "brand"),
		SortField:  c.QueryParam("_sort"),
		SortOrder:  c.QueryParam("_order"),
		Page:       page,
		Limit:      limit,
		//admin=trueで削除済みも出す（管理画面の一覧）
		IncludeDeleted: c.QueryParam("admin") == "true",
	}

	out, err := h.uc.ListProducts(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}

	//総件数はヘッダで返す（bodyは配列のまま）
	c.Response().Header().Set("X-Total-Count", strconv.FormatInt(out.Total, 10))
	return c.JSON(http.StatusOK, out.Items)
}

func (h *ProductHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetProductDetail(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type CreateProductRequest struct {
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Price              float64  `json:"price"`
	DiscountPercentage float64  `json:"discountPercentage"`
	Stock              int64    `json:"stock"`
	Category           string   `json:"category"`
	Brand              string   `json:"brand"`
	Thumbnail          string   `json:"thumbnail"`
	Images             []string `json:"images"`
}

func (h *ProductHandler) create(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.CreateProduct(c.Request().Context(), userID, usecase.CreateProductInput{
		Title:              req.Title,
		Description:        req.Description,
		Price:              req.Price,
		DiscountPercentage: req.DiscountPercentage,
		Stock:              req.Stock,
		Category:           req.Category,
		Brand:              req.Brand,
		Thumbnail:          req.Thumbnail,
		Images:             req.Images,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

type UpdateProductRequest struct {
	Title              *string  `json:"title"`
	Description        *string  `json:"description"`
	Price              *float64 `json:"price"`
	DiscountPercentage *float64 `json:"discountPercentage"`
	Stock              *int64   `json:"stock"`
	Rating             *float64 `json:"rating"`
	Category           *string  `json:"category"`
	Brand              *string  `json:"brand"`
	Thumbnail          *string  `json:"thumbnail"`
	Images             []string `json:"images"`
	Deleted            *bool    `json:"deleted"`
}

func (h *ProductHandler) update(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.UpdateProduct(c.Request().Context(), userID, id, usecase.UpdateProductInput{
		Title:              req.Title,
		Description:        req.Description,
		Price:              req.Price,
		DiscountPercentage: req.DiscountPercentage,
		Stock:              req.Stock,
		Rating:             req.Rating,
		Category:           req.Category,
		Brand:              req.Brand,
		Thumbnail:          req.Thumbnail,
		Images:             req.Images,
		Deleted:            req.Deleted,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) remove(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), userID, id); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}

func (h *ProductHandler) brands(c echo.Context) error {
	out, err := h.uc.ListBrands(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) categories(c echo.Context) error {
	out, err := h.uc.ListCategories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
