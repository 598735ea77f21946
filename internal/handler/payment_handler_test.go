package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shopapi/internal/config"
	"shopapi/internal/domain/model"
	"shopapi/internal/handler"
	repo "shopapi/internal/repository"
	"shopapi/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

// =====================
// Stub: PaymentGateway / OrderRepository
// =====================

type stubGateway struct {
	event usecase.PaymentEvent
	err   error
}

func (s stubGateway) CreateIntent(ctx context.Context, amount float64, orderID int64) (string, error) {
	return "pi_secret_abc", nil
}

func (s stubGateway) ParseWebhook(payload []byte, signature string) (usecase.PaymentEvent, error) {
	return s.event, s.err
}

type stubOrderRepo struct {
	orders  map[int64]model.Order
	updated map[string]interface{}
}

func (s *stubOrderRepo) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	o, ok := s.orders[orderID]
	if !ok {
		return model.Order{}, repo.ErrNotFound
	}
	return o, nil
}

func (s *stubOrderRepo) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	return nil, nil
}

func (s *stubOrderRepo) List(ctx context.Context, q repo.OrderListQuery) ([]model.Order, int64, error) {
	return nil, 0, nil
}

func (s *stubOrderRepo) Create(ctx context.Context, order model.Order) (model.Order, error) {
	return order, nil
}

func (s *stubOrderRepo) Update(ctx context.Context, orderID int64, fields map[string]interface{}) (model.Order, error) {
	s.updated = fields
	return s.orders[orderID], nil
}

func (s *stubOrderRepo) SoftDelete(ctx context.Context, orderID int64) error { return nil }

type stubTxManager struct{}

func (stubTxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return errors.New("not used in these tests")
}

func newPaymentEcho(gateway stubGateway, orders *stubOrderRepo) *echo.Echo {
	orderUC := usecase.NewOrderUsecase(stubTxManager{}, orders, stubAuditRepo{})
	uc := usecase.NewPaymentUsecase(gateway, orderUC)
	h := handler.NewPaymentHandler(uc, config.Config{JWTSecret: "test-secret"})
	e := echo.New()
	h.RegisterRoutes(e)
	return e
}

// =====================
// POST /webhook
// =====================

func TestPaymentHandler_Webhook_Succeeded_MarksOrderPaid(t *testing.T) {
	orders := &stubOrderRepo{orders: map[int64]model.Order{7: {ID: 7}}}
	e := newPaymentEcho(stubGateway{
		event: usecase.PaymentEvent{Type: usecase.PaymentEventSucceeded, OrderID: 7},
	}, orders)

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`{"id":"evt_1"}`))
	req.Header.Set("Stripe-Signature", "t=1,v1=sig")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.PaymentStatusReceived, orders.updated["payment_status"])
	assert.Equal(t, model.OrderStatusConfirmed, orders.updated["status"])
}

func TestPaymentHandler_Webhook_BadSignature(t *testing.T) {
	orders := &stubOrderRepo{orders: map[int64]model.Order{}}
	e := newPaymentEcho(stubGateway{err: errors.New("signature mismatch")}, orders)

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`{}`))
	req.Header.Set("Stripe-Signature", "garbage")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, orders.updated)
}

// 不明な注文IDは400で何も書き換えない
func TestPaymentHandler_Webhook_UnknownOrder(t *testing.T) {
	orders := &stubOrderRepo{orders: map[int64]model.Order{}}
	e := newPaymentEcho(stubGateway{
		event: usecase.PaymentEvent{Type: usecase.PaymentEventSucceeded, OrderID: 999},
	}, orders)

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`{}`))
	req.Header.Set("Stripe-Signature", "t=1,v1=sig")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, orders.updated)
}

// =====================
// POST /create-payment-intent
// =====================

// 認証必須
func TestPaymentHandler_CreateIntent_RequiresAuth(t *testing.T) {
	e := newPaymentEcho(stubGateway{}, &stubOrderRepo{})

	req := httptest.NewRequest(http.MethodPost, "/create-payment-intent", strings.NewReader(`{"totalAmount":100,"orderId":7}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
