package handler

import (
	"net/http"
	"strconv"

	"shopapi/internal/config"
	"shopapi/internal/middleware"
	"shopapi/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /usersのHTTP（プロフィールと住所帳）
type UserHandler struct {
	uc  *usecase.UserUsecase
	cfg config.Config
}

// DI
func NewUserHandler(uc *usecase.UserUsecase, cfg config.Config) *UserHandler {
	return &UserHandler{uc: uc, cfg: cfg}
}

type UpdateProfileRequest struct {
	Username       *string                `json:"username"`
	ProfilePicture *string                `json:"profile_picture"`
	Addresses      []usecase.AddressInput `json:"addresses"`
}

func (h *UserHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/users")
	g.Use(middleware.AuthJWT(h.cfg))

	g.GET("/own", h.own)
	g.PATCH("/:id", h.update)
}

func (h *UserHandler) own(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.GetOwnProfile(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *UserHandler) update(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	targetID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.UpdateProfile(c.Request().Context(), userID, targetID, usecase.UpdateProfileInput{
		Username:       req.Username,
		ProfilePicture: req.ProfilePicture,
		Addresses:      req.Addresses,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
