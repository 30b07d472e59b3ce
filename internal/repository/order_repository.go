package repository

import (
	"context"

	"commerce/internal/domain/model"
)

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (int64, error)
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	//注文日の新しい順
	ListByEmail(ctx context.Context, email string) ([]model.Order, error)
}

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p model.Payment) (int64, error)
	//注文作成後にorder_idを書き戻す
	AttachOrder(ctx context.Context, paymentID int64, orderID int64) error
}
