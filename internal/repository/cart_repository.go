package repository

import (
	"context"

	"commerce/internal/domain/model"

	"github.com/shopspring/decimal"
)

type CartRepository interface {
	//ユーザーのカートを取得し、無ければ作成
	GetOrCreateByUserID(ctx context.Context, userID int64) (model.Cart, error)
	//ユーザーのカートを取得（無ければErrNotFound）
	FindByUserID(ctx context.Context, userID int64) (model.Cart, error)
	//所有者のemailとカートIDの両方が一致するカートを取得
	FindByEmailAndID(ctx context.Context, email string, cartID int64) (model.Cart, error)
	//emailからカートを取得
	FindByEmail(ctx context.Context, email string) (model.Cart, error)
	FindByID(ctx context.Context, cartID int64) (model.Cart, error)
	//全カート（管理者用）
	ListAll(ctx context.Context) ([]model.Cart, error)
	//商品を明細に持つカート一覧
	ListByProductID(ctx context.Context, productID int64) ([]model.Cart, error)
	//合計金額の更新
	UpdateTotalPrice(ctx context.Context, cartID int64, total decimal.Decimal) error
}
