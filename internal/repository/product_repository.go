package repository

import (
	"context"

	"commerce/internal/domain/model"
)

// 商品の一覧検索。CategoryIDかKeywordを指定すると絞り込む
type ProductListQuery struct {
	Page       PageQuery
	CategoryID *int64
	Keyword    string
}

// 商品の永続化（保存・取得）だけを約束
type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, productID int64) (model.Product, error)

	//同一カテゴリ内の商品名重複チェック。excludeIDは更新時に自分を除く用（0で無効）
	ExistsByCategoryAndName(ctx context.Context, categoryID int64, name string, excludeID int64) (bool, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, productID int64) error

	//画像参照だけを差し替える
	UpdateImage(ctx context.Context, productID int64, image string) error
}
