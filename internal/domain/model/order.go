package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文確定時のステータス
const OrderStatusAccepted = "Order Accepted"

// 注文。作成後は変更しない。
// TotalAmountは確定時点のカート合計のスナップショット。
type Order struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Email       string          `gorm:"type:varchar(50);not null;index" json:"email"`
	OrderDate   time.Time       `gorm:"type:date;not null" json:"order_date"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	Status      string          `gorm:"type:varchar(50);not null" json:"status"`

	AddressID int64 `gorm:"not null" json:"address_id"`
	PaymentID int64 `gorm:"not null" json:"payment_id"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
