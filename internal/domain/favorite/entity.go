package favorite

import (
	"context"
	"time"

	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/apperror"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/event"
)

// Favorite はユーザーのお気に入りイベント
type Favorite struct {
	UserID    string
	EventID   string
	CreatedAt time.Time
}

var (
	ErrAlreadyFavorited = apperror.Conflict("イベントは既にお気に入りに登録されています")
	ErrNotFavorited     = apperror.NotFound("イベントはお気に入りに登録されていません")
)

// Repository はお気に入りリポジトリのインターフェース
type Repository interface {
	// Add は重複時に ErrAlreadyFavorited を返す
	Add(ctx context.Context, f *Favorite) error
	// Remove は未登録時に ErrNotFavorited を返す
	Remove(ctx context.Context, userID, eventID string) error
	Exists(ctx context.Context, userID, eventID string) (bool, error)
	// ListEventsByUser はお気に入りのイベントを登録が新しい順に返す
	ListEventsByUser(ctx context.Context, userID string) ([]*event.Event, error)
}
