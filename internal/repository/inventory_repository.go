package repository

import (
	"context"

	"commerce/internal/domain/model"
)

type InventoryRepository interface {
	// 在庫が足りるときだけ減算（stock >= qtyのときのみ）
	DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error)

	// 在庫戻し
	IncreaseStock(ctx context.Context, productID int64, qty int64) error

	// 調整履歴作成
	CreateAdjustment(ctx context.Context, adjustment model.InventoryAdjustment) error
}
