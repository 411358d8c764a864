package post

import (
	"context"
	"time"

	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/apperror"
)

// Post はユーザーの投稿
type Post struct {
	ID        int64
	Title     string
	Content   string
	Published bool
	AuthorID  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

var (
	ErrPostNotFound  = apperror.NotFound("投稿が見つかりません")
	ErrNotAuthor     = apperror.Forbidden("自分の投稿ではありません")
	ErrTitleRequired = apperror.Invalid("タイトルは必須です")
)

// Validate は投稿の検証を行う
func (p *Post) Validate() error {
	if p.Title == "" {
		return ErrTitleRequired
	}
	return nil
}

// IsAuthor は指定ユーザーが投稿者かを返す
func (p *Post) IsAuthor(userID string) bool {
	return userID != "" && p.AuthorID == userID
}

// Repository は投稿リポジトリのインターフェース
type Repository interface {
	Create(ctx context.Context, p *Post) error
	GetByID(ctx context.Context, id int64) (*Post, error)
	// List は投稿をID降順で返す。authorID が空の場合は全件
	List(ctx context.Context, authorID string) ([]*Post, error)
	Update(ctx context.Context, p *Post) error
	Delete(ctx context.Context, id int64) error
}
