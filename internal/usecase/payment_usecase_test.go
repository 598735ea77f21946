package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"shopapi/internal/domain/model"
	"shopapi/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mock: PaymentGateway
// =====================

type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreateIntent(ctx context.Context, amount float64, orderID int64) (string, error) {
	args := m.Called(ctx, amount, orderID)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentGateway) ParseWebhook(payload []byte, signature string) (usecase.PaymentEvent, error) {
	args := m.Called(payload, signature)
	ev, _ := args.Get(0).(usecase.PaymentEvent)
	return ev, args.Error(1)
}

func newPaymentUC(gateway *MockPaymentGateway, orders *MockOrderRepository) *usecase.PaymentUsecase {
	orderUC := newOrderUC(orders, new(MockProductRepository), new(MockInventoryRepository), new(MockAuditLogRepository))
	return usecase.NewPaymentUsecase(gateway, orderUC)
}

// =====================
// CreateIntent
// =====================

func TestPaymentUsecase_CreateIntent_Success(t *testing.T) {
	gateway := new(MockPaymentGateway)
	gateway.On("CreateIntent", mock.Anything, 2745.0, int64(7)).Return("pi_secret_abc", nil)

	u := newPaymentUC(gateway, new(MockOrderRepository))

	out, err := u.CreateIntent(context.Background(), usecase.CreateIntentInput{
		TotalAmount: 2745, OrderID: 7,
	})
	assert.NoError(t, err)
	assert.Equal(t, "pi_secret_abc", out.ClientSecret)
}

func TestPaymentUsecase_CreateIntent_MissingFields(t *testing.T) {
	gateway := new(MockPaymentGateway)
	u := newPaymentUC(gateway, new(MockOrderRepository))

	_, err := u.CreateIntent(context.Background(), usecase.CreateIntentInput{TotalAmount: 0, OrderID: 7})
	status, msg := httpStatus(t, err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Missing required fields", msg)

	gateway.AssertNotCalled(t, "CreateIntent", mock.Anything, mock.Anything, mock.Anything)
}

// =====================
// HandleWebhook
// =====================

func TestPaymentUsecase_HandleWebhook_BadSignature(t *testing.T) {
	gateway := new(MockPaymentGateway)
	orders := new(MockOrderRepository)

	gateway.On("ParseWebhook", []byte("payload"), "bad-sig").Return(usecase.PaymentEvent{}, assert.AnError)

	u := newPaymentUC(gateway, orders)

	err := u.HandleWebhook(context.Background(), []byte("payload"), "bad-sig")
	status, _ := httpStatus(t, err)
	assert.Equal(t, http.StatusBadRequest, status)

	//署名不正は一切書き換えない
	orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentUsecase_HandleWebhook_Succeeded_MarksPaid(t *testing.T) {
	gateway := new(MockPaymentGateway)
	orders := new(MockOrderRepository)

	gateway.On("ParseWebhook", []byte("payload"), "sig").Return(usecase.PaymentEvent{
		Type: usecase.PaymentEventSucceeded, OrderID: 7,
	}, nil)
	orders.On("FindByID", mock.Anything, int64(7)).Return(model.Order{ID: 7}, nil)
	orders.On("Update", mock.Anything, int64(7), map[string]interface{}{
		"payment_status": model.PaymentStatusReceived,
		"status":         model.OrderStatusConfirmed,
	}).Return(model.Order{ID: 7}, nil)

	u := newPaymentUC(gateway, orders)

	err := u.HandleWebhook(context.Background(), []byte("payload"), "sig")
	assert.NoError(t, err)
	orders.AssertExpectations(t)
}

// 扱わないイベントはACKだけ（200でエラーなし）
func TestPaymentUsecase_HandleWebhook_UnhandledEventType(t *testing.T) {
	gateway := new(MockPaymentGateway)
	orders := new(MockOrderRepository)

	gateway.On("ParseWebhook", []byte("payload"), "sig").Return(usecase.PaymentEvent{
		Type: "payment_intent.created", OrderID: 7,
	}, nil)

	u := newPaymentUC(gateway, orders)

	err := u.HandleWebhook(context.Background(), []byte("payload"), "sig")
	assert.NoError(t, err)
	orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentUsecase_HandleWebhook_UnknownOrder(t *testing.T) {
	gateway := new(MockPaymentGateway)
	orders := new(MockOrderRepository)

	gateway.On("ParseWebhook", []byte("payload"), "sig").Return(usecase.PaymentEvent{
		Type: usecase.PaymentEventSucceeded, OrderID: 999,
	}, nil)
	orders.On("FindByID", mock.Anything, int64(999)).Return(model.Order{}, assert.AnError)

	u := newPaymentUC(gateway, orders)

	err := u.HandleWebhook(context.Background(), []byte("payload"), "sig")
	assert.Error(t, err)
	orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}
