package model

import "time"

// 会員。usernameとemailはユニーク
type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserName     string `gorm:"column:username;type:varchar(20);uniqueIndex;not null" json:"username"`
	Email        string `gorm:"type:varchar(50);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"column:password_hash;not null" json:"-"`

	//ロールは多対多（user_roles）
	Roles []Role `gorm:"many2many:user_roles" json:"roles"`

	//ユーザー削除で住所・カートも消える（FKカスケード）
	Addresses []Address `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Cart      *Cart     `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
