package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// カートの明細。(cart_id, product_id)はユニーク。
// Price/Discountは追加時点のスナップショットで、商品側の変更では書き換えない
// （商品更新の同期処理だけが更新する）。
type CartItem struct {
	ID        int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID    int64 `gorm:"not null;uniqueIndex:idx_cart_product" json:"cart_id"`
	ProductID int64 `gorm:"not null;uniqueIndex:idx_cart_product" json:"product_id"`
	Quantity  int64 `gorm:"not null" json:"quantity"`

	Price    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Discount decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"discount"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
