package user

import (
	"context"
	"time"

	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/apperror"
)

// User は外部の認証基盤で発行されたユーザー
type User struct {
	ID        string
	Email     string
	Name      string
	Image     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

var ErrUserNotFound = apperror.NotFound("ユーザーが見つかりません")

// Repository はユーザーリポジトリのインターフェース
type Repository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	// Update は名前と画像のみを更新する
	Update(ctx context.Context, u *User) error
}
