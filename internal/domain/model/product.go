package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 商品。Quantityは在庫数で0未満にならない。
// SpecialPriceは price - price*discount/100 で、作成・更新時に計算して保存する。
type Product struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(255);not null;index" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Image       string `gorm:"type:varchar(255)" json:"image"`

	//在庫数
	Quantity int64 `gorm:"not null" json:"quantity"`

	Price        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Discount     decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"discount"`
	SpecialPrice decimal.Decimal `gorm:"column:special_price;type:decimal(12,2);not null" json:"special_price"`

	CategoryID int64 `gorm:"not null;index" json:"category_id"`

	//登録した管理者
	UserID int64 `gorm:"index" json:"-"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
