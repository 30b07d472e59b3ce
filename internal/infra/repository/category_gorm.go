package repository

import (
	"context"
	"errors"
	"fmt"

	"commerce/internal/domain/model"
	repo "commerce/internal/repository"

	"gorm.io/gorm"
)

type CategoryGormRepository struct {
	db *gorm.DB
}

// DI
func NewCategoryGormRepository(db *gorm.DB) *CategoryGormRepository {
	return &CategoryGormRepository{db: db}
}

// ソート列のホワイトリスト（SQLに直接埋めるため）
var categorySortColumns = map[string]string{
	"id":   "id",
	"name": "name",
}

// ページングとソート付きで一覧と総件数を返す
func (r *CategoryGormRepository) List(ctx context.Context, q repo.PageQuery) ([]model.Category, int64, error) {
	var categories []model.Category
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Category{})

	if err := tx.Count(&total).Error; err != nil {
		return []model.Category{}, 0, err
	}

	if err := tx.
		Order(orderClause(categorySortColumns, q.SortBy, q.SortOrder)).
		Offset(q.Offset()).
		Limit(q.PageSize).
		Find(&categories).Error; err != nil {
		return []model.Category{}, 0, err
	}

	return categories, total, nil
}

func (r *CategoryGormRepository) FindByID(ctx context.Context, categoryID int64) (model.Category, error) {
	var c model.Category

	err := r.db.WithContext(ctx).First(&c, categoryID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Category{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Category{}, err
	}
	return c, nil
}

func (r *CategoryGormRepository) FindByName(ctx context.Context, name string) (model.Category, error) {
	var c model.Category

	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&c).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Category{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Category{}, err
	}
	return c, nil
}

func (r *CategoryGormRepository) Create(ctx context.Context, c model.Category) (model.Category, error) {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		if isUniqueViolation(err) {
			return model.Category{}, repo.ErrDuplicate
		}
		return model.Category{}, err
	}
	return c, nil
}

func (r *CategoryGormRepository) Update(ctx context.Context, c model.Category) error {
	res := r.db.WithContext(ctx).
		Model(&model.Category{}).
		Where("id = ?", c.ID).
		Update("name", c.Name)

	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return repo.ErrDuplicate
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CategoryGormRepository) Delete(ctx context.Context, categoryID int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Category{}, categoryID)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// ホワイトリストにある列だけでORDER BYを組み立てる
func orderClause(columns map[string]string, sortBy string, sortOrder string) string {
	col, ok := columns[sortBy]
	if !ok {
		col = "id"
	}

	dir := "asc"
	if sortOrder == "desc" {
		dir = "desc"
	}

	return fmt.Sprintf("%s %s", col, dir)
}
