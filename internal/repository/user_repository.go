package repository

import (
	"context"

	"shopapi/internal/domain/model"
)

// ユーザーの保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成
	Create(ctx context.Context, user *model.User) error
	//IDからユーザーを1件取得する（住所帳も一緒に）。
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	//メールからユーザーを1件取得する。
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	//プロフィールの更新（role・password_hashはここでは変えない）
	Update(ctx context.Context, user *model.User) error
	//GoogleIDの紐付け
	LinkGoogleID(ctx context.Context, userID int64, googleID string) error
}
