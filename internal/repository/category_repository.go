package repository

import (
	"context"

	"commerce/internal/domain/model"
)

// カテゴリの永続化だけを約束
type CategoryRepository interface {
	//ページングとソート付きで一覧と総件数を返す
	List(ctx context.Context, q PageQuery) ([]model.Category, int64, error)
	FindByID(ctx context.Context, categoryID int64) (model.Category, error)
	//名前で1件取得（重複チェック用）
	FindByName(ctx context.Context, name string) (model.Category, error)

	Create(ctx context.Context, c model.Category) (model.Category, error)
	Update(ctx context.Context, c model.Category) error
	Delete(ctx context.Context, categoryID int64) error
}
