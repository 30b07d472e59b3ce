package model

type RoleName string

const (
	RoleUser  RoleName = "USER"
	RoleAdmin RoleName = "ADMIN"
)

// 固定のロール。起動時にシードする
type Role struct {
	ID   int64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name RoleName `gorm:"type:varchar(20);uniqueIndex;not null" json:"name"`
}
