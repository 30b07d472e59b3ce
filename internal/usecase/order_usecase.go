package usecase

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"commerce/internal/domain/model"
	repo "commerce/internal/repository"

	"github.com/shopspring/decimal"
)

type OrderUsecase struct {
	orderRepo     repo.OrderRepository
	orderItemRepo repo.OrderItemRepository
	txManager     repo.TransactionManager
}

// DI
func NewOrderUsecase(
	orderRepo repo.OrderRepository,
	orderItemRepo repo.OrderItemRepository,
	txManager repo.TransactionManager,
) *OrderUsecase {
	return &OrderUsecase{
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		txManager:     txManager,
	}
}

// 注文確定の入力。Pg系は決済ゲートウェイの応答の引き渡し
type PlaceOrderInput struct {
	AddressID         int64  `json:"addressId"`
	PgName            string `json:"pgName"`
	PgPaymentID       string `json:"pgPaymentId"`
	PgStatus          string `json:"pgStatus"`
	PgResponseMessage string `json:"pgResponseMessage"`
}

type OrderItemView struct {
	ID                  int64           `json:"id"`
	ProductID           int64           `json:"productId"`
	Quantity            int64           `json:"quantity"`
	Discount            decimal.Decimal `json:"discount"`
	OrderedProductPrice decimal.Decimal `json:"orderedProductPrice"`
}

type OrderResponse struct {
	ID            int64           `json:"id"`
	Email         string          `json:"email"`
	OrderDate     string          `json:"orderDate"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	Status        string          `json:"orderStatus"`
	AddressID     int64           `json:"addressId"`
	PaymentMethod string          `json:"paymentMethod"`
	Items         []OrderItemView `json:"orderItems"`
}

// 注文を確定する。カート取得から在庫減算・カートの空化まで1トランザクション
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID int64, email string, paymentMethod string, in PlaceOrderInput) (OrderResponse, error) {
	if paymentMethod == "" {
		return OrderResponse{}, NewHTTPError(http.StatusBadRequest, "payment method required")
	}

	var out OrderResponse

	err := u.txManager.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := r.Carts().FindByEmail(ctx, email)
		if err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "cart not found")
			}
			return err
		}

		address, err := r.Addresses().FindByID(ctx, in.AddressID)
		if err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "address not found")
			}
			return err
		}
		//他人の住所への配送は禁止
		if address.UserID != userID {
			return NewHTTPError(http.StatusForbidden, "address does not belong to the user")
		}

		items, err := r.CartItems().ListByCartID(ctx, cart.ID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return NewHTTPError(http.StatusBadRequest, "cart is empty")
		}

		//決済→注文の順に作り、order_idを書き戻す
		paymentID, err := r.Payments().Create(ctx, model.Payment{
			PaymentMethod:     paymentMethod,
			PgName:            in.PgName,
			PgPaymentID:       in.PgPaymentID,
			PgStatus:          in.PgStatus,
			PgResponseMessage: in.PgResponseMessage,
		})
		if err != nil {
			return err
		}

		now := time.Now()
		orderDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

		orderID, err := r.Orders().Create(ctx, model.Order{
			Email:       email,
			OrderDate:   orderDate,
			TotalAmount: cart.TotalPrice,
			Status:      model.OrderStatusAccepted,
			AddressID:   in.AddressID,
			PaymentID:   paymentID,
		})
		if err != nil {
			return err
		}

		if err := r.Payments().AttachOrder(ctx, paymentID, orderID); err != nil {
			return err
		}

		//明細をスナップショットして在庫を減らす。在庫不足は全体を巻き戻す
		orderItems := make([]model.OrderItem, 0, len(items))
		for _, item := range items {
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				p, perr := r.Products().FindByID(ctx, item.ProductID)
				if perr != nil {
					return NewHTTPError(http.StatusBadRequest, "insufficient stock")
				}
				return NewHTTPError(http.StatusBadRequest,
					fmt.Sprintf("Please, make an order of the %s less than or equal to the quantity %d", p.Name, p.Quantity))
			}

			orderItems = append(orderItems, model.OrderItem{
				ProductID:           item.ProductID,
				Quantity:            item.Quantity,
				Discount:            item.Discount,
				OrderedProductPrice: item.Price,
			})
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return err
		}

		//カートを空にして合計を0へ
		if err := r.CartItems().DeleteAllByCartID(ctx, cart.ID); err != nil {
			return err
		}
		if err := r.Carts().UpdateTotalPrice(ctx, cart.ID, decimal.Zero); err != nil {
			return err
		}

		created, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		savedItems, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return err
		}

		out = buildOrderResponse(created, paymentMethod, savedItems)
		return nil
	})
	if err != nil {
		if _, ok := AsHTTPError(err); ok {
			return OrderResponse{}, err
		}
		return OrderResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return out, nil
}

// 自分の注文履歴。注文日の新しい順
func (u *OrderUsecase) GetUserOrders(ctx context.Context, email string) ([]OrderResponse, error) {
	orders, err := u.orderRepo.ListByEmail(ctx, email)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		items, err := u.orderItemRepo.ListByOrderID(ctx, o.ID)
		if err != nil {
			return nil, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = append(out, buildOrderResponse(o, "", items))
	}
	return out, nil
}

func buildOrderResponse(o model.Order, paymentMethod string, items []model.OrderItem) OrderResponse {
	views := make([]OrderItemView, 0, len(items))
	for _, item := range items {
		views = append(views, OrderItemView{
			ID:                  item.ID,
			ProductID:           item.ProductID,
			Quantity:            item.Quantity,
			Discount:            item.Discount,
			OrderedProductPrice: item.OrderedProductPrice,
		})
	}

	return OrderResponse{
		ID:            o.ID,
		Email:         o.Email,
		OrderDate:     o.OrderDate.Format("2006-01-02"),
		TotalAmount:   o.TotalAmount,
		Status:        o.Status,
		AddressID:     o.AddressID,
		PaymentMethod: paymentMethod,
		Items:         views,
	}
}
