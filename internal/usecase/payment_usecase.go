package usecase

import (
	"context"
	"log"
	"net/http"
)

// 決済ゲートウェイのイベント種別（このAPIが扱うのは成功通知だけ）
const PaymentEventSucceeded = "payment_intent.succeeded"

type PaymentEvent struct {
	Type    string
	OrderID int64
}

// 決済ゲートウェイの約束。実装はinfra/gateway（stripe-go）。
type PaymentGateway interface {
	//PaymentIntentを作ってclient secretを返す
	CreateIntent(ctx context.Context, amount float64, orderID int64) (string, error)
	//署名を検証してイベントを取り出す。署名不正はエラー。
	ParseWebhook(payload []byte, signature string) (PaymentEvent, error)
}

type PaymentUsecase struct {
	gateway PaymentGateway
	orders  *OrderUsecase
}

func NewPaymentUsecase(gateway PaymentGateway, orders *OrderUsecase) *PaymentUsecase {
	return &PaymentUsecase{gateway: gateway, orders: orders}
}

type CreateIntentInput struct {
	TotalAmount float64
	OrderID     int64
}

type CreateIntentOutput struct {
	ClientSecret string `json:"clientSecret"`
}

func (u *PaymentUsecase) CreateIntent(ctx context.Context, in CreateIntentInput) (CreateIntentOutput, error) {
	if in.TotalAmount <= 0 || in.OrderID <= 0 {
		return CreateIntentOutput{}, NewHTTPError(http.StatusBadRequest, "Missing required fields")
	}

	secret, err := u.gateway.CreateIntent(ctx, in.TotalAmount, in.OrderID)
	if err != nil {
		return CreateIntentOutput{}, NewHTTPError(http.StatusInternalServerError, "Failed to create payment intent")
	}

	return CreateIntentOutput{ClientSecret: secret}, nil
}

// webhook受信。
// 署名不正・不明な注文はログに残して拒否し、何も書き換えない。
// 同じ通知が二重配信されてもMarkPaidは絶対値セットなので無害。
func (u *PaymentUsecase) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := u.gateway.ParseWebhook(payload, signature)
	if err != nil {
		log.Printf("webhook signature verification failed: %v", err)
		return NewHTTPError(http.StatusBadRequest, "invalid webhook signature")
	}

	switch event.Type {
	case PaymentEventSucceeded:
		if err := u.orders.MarkPaid(ctx, event.OrderID); err != nil {
			log.Printf("webhook: could not mark order %d paid: %v", event.OrderID, err)
			return err
		}
	default:
		//扱わないイベントはACKだけ返す
		log.Printf("webhook: unhandled event type %s", event.Type)
	}

	return nil
}
