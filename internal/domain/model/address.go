package model

import "time"

// 配送先住所。ユーザーに1対多で属する
type Address struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64 `gorm:"not null;index" json:"user_id"`

	Street   string `gorm:"type:varchar(255);not null" json:"street"`
	City     string `gorm:"type:varchar(255);not null" json:"city"`
	Country  string `gorm:"type:varchar(100);not null" json:"country"`
	Postcode string `gorm:"type:varchar(20);not null" json:"postcode"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
