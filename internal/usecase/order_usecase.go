package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"shopapi/internal/domain/model"
	repo "shopapi/internal/repository"
)

type OrderUsecase struct {
	tx        repo.TransactionManager
	orderRepo repo.OrderRepository
	auditRepo repo.AuditLogRepository
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	orderRepo repo.OrderRepository,
	auditRepo repo.AuditLogRepository,
) *OrderUsecase {
	return &OrderUsecase{
		tx:        tx,
		orderRepo: orderRepo,
		auditRepo: auditRepo,
	}
}

type PlaceOrderItemInput struct {
	ProductID int64
	Quantity  int64
}

type PlaceOrderInput struct {
	Items           []PlaceOrderItemInput
	PaymentMethod   string
	ShippingAddress model.ShippingAddress
}

// 注文確定。
// 在庫チェック→減算→注文insertを1トランザクションで行う。
// 途中のどの商品で失敗しても減算は全部巻き戻る（部分減算は残さない）。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID int64, in PlaceOrderInput) (model.Order, error) {
	if userID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if len(in.Items) == 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "items required")
	}
	if in.PaymentMethod == "" {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "payment method required")
	}
	for _, it := range in.Items {
		if it.ProductID <= 0 {
			return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
		}
		if it.Quantity < 1 {
			return model.Order{}, NewHTTPError(http.StatusBadRequest, "quantity must be a positive integer")
		}
	}

	var out model.Order

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		items := make([]model.OrderItem, 0, len(in.Items))
		var totalAmount float64
		var totalItems int64

		for _, it := range in.Items {
			//商品取得。存在しなければ注文ごと失敗。
			p, err := r.Products().FindByID(ctx, it.ProductID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Product with id %d not found", it.ProductID))
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if p.Deleted {
				return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Product with id %d not found", it.ProductID))
			}

			//在庫チェック（メッセージに商品名と数量を入れる）
			if p.Stock < it.Quantity {
				return NewHTTPError(http.StatusBadRequest, fmt.Sprintf(
					"Insufficient stock for product %s. Available: %d, Requested: %d",
					p.Title, p.Stock, it.Quantity,
				))
			}

			//条件付き減算。同時注文に負けたらここでfalseになる。
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, it.ProductID, it.Quantity)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !ok {
				return NewHTTPError(http.StatusBadRequest, fmt.Sprintf(
					"Insufficient stock for product %s. Available: %d, Requested: %d",
					p.Title, p.Stock, it.Quantity,
				))
			}

			//注文時点のスナップショット
			items = append(items, model.OrderItem{
				ProductID: p.ID,
				Title:     p.Title,
				Price:     p.Price,
				Thumbnail: p.Thumbnail,
				Quantity:  it.Quantity,
			})

			totalAmount += p.Price * float64(it.Quantity)
			totalItems += it.Quantity
		}

		//全明細の検証・減算が済んでから注文を作る
		created, err := r.Orders().Create(ctx, model.Order{
			UserID:          userID,
			Items:           items,
			TotalAmount:     totalAmount,
			TotalItems:      totalItems,
			PaymentMethod:   in.PaymentMethod,
			Status:          model.OrderStatusPending,
			PaymentStatus:   model.PaymentStatusPending,
			ShippingAddress: in.ShippingAddress,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = created
		return nil
	})

	if err != nil {
		return model.Order{}, err
	}
	return out, nil
}

// 本人の注文一覧（ページングなし）
func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64) ([]model.Order, error) {
	if userID <= 0 {
		return []model.Order{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	orders, err := u.orderRepo.ListByUserID(ctx, userID)
	if err != nil {
		return []model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return orders, nil
}

type ListOrdersInput struct {
	SortField string
	SortOrder string
	Page      int
	Limit     int
}

// ソート対象にできるカラムの許可リスト
var orderSortFields = map[string]string{
	"id":          "id",
	"totalAmount": "total_amount",
	"totalItems":  "total_items",
	"status":      "status",
	"createdAt":   "created_at",
}

type OrderListOutput struct {
	Items []model.Order
	Total int64
}

// 管理者用の注文一覧。総件数はページング前・deleted除外で数える。
func (u *OrderUsecase) ListOrders(ctx context.Context, in ListOrdersInput) (OrderListOutput, error) {
	if in.Page < 1 {
		return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	q := repo.OrderListQuery{Page: in.Page, Limit: in.Limit}

	if in.SortField != "" {
		col, ok := orderSortFields[in.SortField]
		if !ok {
			return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid sort")
		}
		switch in.SortOrder {
		case "asc", "desc":
		default:
			return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid order")
		}
		q.SortField = col
		q.SortOrder = in.SortOrder
	}

	items, total, err := u.orderRepo.List(ctx, q)
	if err != nil {
		return OrderListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return OrderListOutput{Items: items, Total: total}, nil
}

type UpdateOrderInput struct {
	Status        *string
	PaymentStatus *string
}

var validOrderStatuses = map[model.OrderStatus]bool{
	model.OrderStatusPending:    true,
	model.OrderStatusConfirmed:  true,
	model.OrderStatusProcessing: true,
	model.OrderStatusShipped:    true,
	model.OrderStatusDelivered:  true,
	model.OrderStatusCancelled:  true,
}

// 管理者による注文更新（status / paymentStatus）。
// cancelledへ変えたときは明細分の在庫を戻す。
func (u *OrderUsecase) UpdateOrder(ctx context.Context, adminUserID int64, orderID int64, in UpdateOrderInput) (model.Order, error) {
	if adminUserID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	fields := map[string]interface{}{}

	if in.Status != nil {
		st := model.OrderStatus(*in.Status)
		if !validOrderStatuses[st] {
			return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid status")
		}
		fields["status"] = st
	}
	if in.PaymentStatus != nil {
		ps := model.PaymentStatus(*in.PaymentStatus)
		if ps != model.PaymentStatusPending && ps != model.PaymentStatusReceived {
			return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid payment status")
		}
		fields["payment_status"] = ps
	}
	if len(fields) == 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "nothing to update")
	}

	var out model.Order

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		updated, err := r.Orders().Update(ctx, orderID, fields)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//キャンセル確定時だけ在庫を戻す（二重戻し防止に遷移を見る）
		if in.Status != nil &&
			model.OrderStatus(*in.Status) == model.OrderStatusCancelled &&
			before.Status != model.OrderStatusCancelled {
			for _, it := range before.Items {
				if err := r.Inventory().IncreaseStock(ctx, it.ProductID, it.Quantity); err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
			}
		}

		out = updated
		return nil
	})

	if err != nil {
		return model.Order{}, err
	}

	u.writeAudit(ctx, adminUserID, model.AuditActionUpdateOrder, orderID, fields)
	return out, nil
}

// 一覧から外すだけ（物理削除しない）
func (u *OrderUsecase) DeleteOrder(ctx context.Context, adminUserID int64, orderID int64) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.orderRepo.SoftDelete(ctx, orderID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.writeAudit(ctx, adminUserID, model.AuditActionDeleteOrder, orderID, nil)
	return nil
}

// 決済ゲートウェイ通知で呼ばれる。
// 絶対値のセットなので二重配信されても結果は変わらない。
func (u *OrderUsecase) MarkPaid(ctx context.Context, orderID int64) error {
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	_, err := u.orderRepo.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusBadRequest, "unknown order")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	_, err = u.orderRepo.Update(ctx, orderID, map[string]interface{}{
		"payment_status": model.PaymentStatusReceived,
		"status":         model.OrderStatusConfirmed,
	})
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 監査ログは失敗しても本処理を失敗させない
func (u *OrderUsecase) writeAudit(ctx context.Context, actorID int64, action model.AuditAction, orderID int64, fields map[string]interface{}) {
	detail := ""
	if fields != nil {
		if b, err := json.Marshal(fields); err == nil {
			detail = string(b)
		}
	}
	_ = u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  actorID,
		Action:       action,
		ResourceType: model.AuditResourceOrder,
		ResourceID:   orderID,
		Detail:       detail,
	})
}
