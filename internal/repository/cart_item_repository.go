package repository

import (
	"context"

	"commerce/internal/domain/model"
)

type CartItemRepository interface {
	ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error)
	//(cart, product)で1件取得
	FindByCartAndProduct(ctx context.Context, cartID int64, productID int64) (model.CartItem, error)
	Create(ctx context.Context, item model.CartItem) (model.CartItem, error)
	//数量とスナップショットをまとめて更新
	Update(ctx context.Context, item model.CartItem) error
	DeleteByCartAndProduct(ctx context.Context, cartID int64, productID int64) error
	//カートの明細を全削除
	DeleteAllByCartID(ctx context.Context, cartID int64) error
}
