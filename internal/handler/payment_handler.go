package handler

import (
	"io"
	"net/http"

	"shopapi/internal/config"
	"shopapi/internal/middleware"
	"shopapi/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 決済まわり（intent作成とwebhook受信）
type PaymentHandler struct {
	uc  *usecase.PaymentUsecase
	cfg config.Config
}

// DI
func NewPaymentHandler(uc *usecase.PaymentUsecase, cfg config.Config) *PaymentHandler {
	return &PaymentHandler{uc: uc, cfg: cfg}
}

type CreateIntentRequest struct {
	TotalAmount float64 `json:"totalAmount"`
	OrderID     int64   `json:"orderId"`
}

func (h *PaymentHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/create-payment-intent", h.createIntent, middleware.AuthJWT(h.cfg))

	//webhookはゲートウェイからの呼び出しなので認証なし（署名で検証する）
	e.POST("/webhook", h.webhook)
}

func (h *PaymentHandler) createIntent(c echo.Context) error {
	var req CreateIntentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.CreateIntent(c.Request().Context(), usecase.CreateIntentInput{
		TotalAmount: req.TotalAmount,
		OrderID:     req.OrderID,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// 署名検証があるのでbodyは生のまま読む（Bindしない）
func (h *PaymentHandler) webhook(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "could not read body"})
	}

	sig := c.Request().Header.Get("Stripe-Signature")

	if err := h.uc.HandleWebhook(c.Request().Context(), payload, sig); err != nil {
		return writeError(c, err)
	}

	//200でACK
	return c.NoContent(http.StatusOK)
}
