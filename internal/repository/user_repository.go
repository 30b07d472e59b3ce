package repository

import (
	"context"
	"errors"

	"commerce/internal/domain/model"
)

// ユーザーが見つかりませんを統一
var ErrUserNotFound = errors.New("user not found")

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成（rolesも一緒に紐付ける）
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する（roles込み）
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	//ユーザー名から1件取得する
	FindByUserName(ctx context.Context, username string) (*model.User, error)
	//メールから1件取得する
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	//username/emailがすでに使われているか
	ExistsByUserName(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// ロールはシード済みの固定データ
type RoleRepository interface {
	FindByName(ctx context.Context, name model.RoleName) (model.Role, error)
	//USER/ADMINが無ければ作る
	SeedDefaults(ctx context.Context) error
}
