package repository

import (
	"context"

	"commerce/internal/domain/model"
)

// 住所(Address)を保存・取得する窓口
type AddressRepository interface {
	//住所を新規作成し、IDが埋まったものを返す
	Create(ctx context.Context, address model.Address) (model.Address, error)

	//ユーザーが持つ住所一覧
	ListByUserID(ctx context.Context, userID int64) ([]model.Address, error)

	//住所IDから1件取得
	FindByID(ctx context.Context, addressID int64) (model.Address, error)

	//住所の更新
	Update(ctx context.Context, address model.Address) error

	//住所の削除
	Delete(ctx context.Context, addressID int64) error

	//住所がそのユーザーのものかを確認
	IsOwnedByUser(ctx context.Context, addressID, userID int64) (bool, error)
}
