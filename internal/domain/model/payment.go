package model

import "time"

// 決済記録。1注文につき1件。
// Pg系フィールドは外部ゲートウェイの応答をそのまま保存する
type Payment struct {
	ID      int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID int64 `gorm:"index" json:"order_id"`

	PaymentMethod     string `gorm:"type:varchar(50);not null" json:"payment_method"`
	PgName            string `gorm:"type:varchar(100)" json:"pg_name"`
	PgPaymentID       string `gorm:"type:varchar(255)" json:"pg_payment_id"`
	PgStatus          string `gorm:"type:varchar(50)" json:"pg_status"`
	PgResponseMessage string `gorm:"type:varchar(255)" json:"pg_response_message"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
