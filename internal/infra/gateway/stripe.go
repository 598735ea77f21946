package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"shopapi/internal/usecase"

	"github.com/google/uuid"
	stripe "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"
)

// StripeGateway はusecase.PaymentGatewayのstripe-go実装。
type StripeGateway struct {
	api            *client.API
	endpointSecret string
}

func NewStripeGateway(secretKey string, endpointSecret string) *StripeGateway {
	return &StripeGateway{
		api:            client.New(secretKey, nil),
		endpointSecret: endpointSecret,
	}
}

// PaymentIntentを作成してclient secretを返す。
// 金額はセント換算（四捨五入してintに）。orderIdはmetadataで往復させる。
func (g *StripeGateway) CreateIntent(ctx context.Context, amount float64, orderID int64) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(math.Round(amount * 100))),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		Metadata: map[string]string{
			"orderId": strconv.FormatInt(orderID, 10),
		},
	}
	params.Context = ctx
	//同じリクエストの再送で二重にintentを作らない
	params.SetIdempotencyKey(uuid.NewString())

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return "", err
	}
	return pi.ClientSecret, nil
}

// 署名を検証してイベントを取り出す。
func (g *StripeGateway) ParseWebhook(payload []byte, signature string) (usecase.PaymentEvent, error) {
	event, err := webhook.ConstructEvent(payload, signature, g.endpointSecret)
	if err != nil {
		return usecase.PaymentEvent{}, err
	}

	out := usecase.PaymentEvent{Type: string(event.Type)}

	if string(event.Type) == usecase.PaymentEventSucceeded {
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			return usecase.PaymentEvent{}, err
		}
		raw, ok := pi.Metadata["orderId"]
		if !ok {
			return usecase.PaymentEvent{}, fmt.Errorf("payment intent %s has no orderId metadata", pi.ID)
		}
		orderID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return usecase.PaymentEvent{}, fmt.Errorf("invalid orderId metadata %q", raw)
		}
		out.OrderID = orderID
	}

	return out, nil
}
