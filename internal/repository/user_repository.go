package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
)

// ユーザーが見つかりませんを統一
var ErrUserNotFound = errors.New("user not found")

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。
	FindByID(ctx context.Context, userID string) (*model.User, error)
	//ユーザー名から1件取得する（ログインで使う）。
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	//メールから1件取得する（重複チェックで使う）。
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// 住所の紐付けやプロフィール更新
	Update(ctx context.Context, user *model.User) error
}
