package event

import (
	"context"
	"time"

	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/transaction"
)

// Filter はイベント一覧の検索条件
type Filter struct {
	Category    Category
	Status      Status
	Visibility  Visibility
	City        string
	Country     string
	OrganizerID string
	Search      string
	StartDate   *time.Time // 開始日時がこの値以上
	EndDate     *time.Time // 開始日時がこの値以下
	Limit       int
	Offset      int
}

// Stats はイベントの集計値
type Stats struct {
	TotalRegistrations     int     `json:"totalRegistrations"`
	ConfirmedRegistrations int     `json:"confirmedRegistrations"`
	CancelledRegistrations int     `json:"cancelledRegistrations"`
	CheckedInCount         int     `json:"checkedInCount"`
	TotalRevenue           int     `json:"totalRevenue"`
	TicketsSold            int     `json:"ticketsSold"`
	AverageRating          float64 `json:"averageRating"`
}

// Repository はイベントリポジトリのインターフェース
type Repository interface {
	// Create は新しいイベントを作成する
	Create(ctx context.Context, event *Event) error

	// GetByID はIDからイベントを取得する
	GetByID(ctx context.Context, id string) (*Event, error)

	// GetByIDForUpdate はトランザクション内で行ロックを取得してイベントを取得する
	GetByIDForUpdate(ctx context.Context, tx transaction.Tx, id string) (*Event, error)

	// GetBySlug はスラッグからイベントを取得する
	GetBySlug(ctx context.Context, slug string) (*Event, error)

	// FindIDBySlug はスラッグを使用しているイベントのIDを返す。未使用なら空文字
	FindIDBySlug(ctx context.Context, slug string) (string, error)

	// List は条件に一致するイベントと総件数を返す
	List(ctx context.Context, filter Filter) ([]*Event, int, error)

	// Update はイベントを更新する。tx が nil の場合はトランザクション外で実行する
	Update(ctx context.Context, tx transaction.Tx, event *Event) error

	// Delete はイベントを削除する
	Delete(ctx context.Context, id string) error

	// GetStats はイベントの集計値を取得する
	GetStats(ctx context.Context, id string) (*Stats, error)

	// CompletePast は終了日時を過ぎた公開中イベントを完了にし、件数を返す
	CompletePast(ctx context.Context, now time.Time) (int64, error)
}
