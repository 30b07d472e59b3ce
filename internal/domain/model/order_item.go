package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文明細。確定時点のカート明細のスナップショット
type OrderItem struct {
	ID        int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64 `gorm:"not null;index" json:"order_id"`
	ProductID int64 `gorm:"not null;index" json:"product_id"`
	Quantity  int64 `gorm:"not null" json:"quantity"`

	Discount            decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"discount"`
	OrderedProductPrice decimal.Decimal `gorm:"column:ordered_product_price;type:decimal(12,2);not null" json:"ordered_product_price"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
