package repository

import (
	"context"
	"errors"

	"commerce/internal/domain/model"
	repo "commerce/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoleGormRepository struct {
	db *gorm.DB
}

// DI
func NewRoleGormRepository(db *gorm.DB) *RoleGormRepository {
	return &RoleGormRepository{db: db}
}

func (r *RoleGormRepository) FindByName(ctx context.Context, name model.RoleName) (model.Role, error) {
	var role model.Role

	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&role).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Role{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Role{}, err
	}
	return role, nil
}

// USER/ADMINを無ければ作る（起動時に呼ぶ）
func (r *RoleGormRepository) SeedDefaults(ctx context.Context) error {
	roles := []model.Role{
		{Name: model.RoleUser},
		{Name: model.RoleAdmin},
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&roles).Error
}
