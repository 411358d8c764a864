package ticket

import (
	"context"

	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/transaction"
)

// Repository はチケットリポジトリのインターフェース
type Repository interface {
	// Create は新しいチケットを作成する
	Create(ctx context.Context, ticket *Ticket) error

	// GetByID はIDからチケットを取得する
	GetByID(ctx context.Context, id string) (*Ticket, error)

	// GetByIDForUpdate はトランザクション内で行ロックを取得してチケットを取得する
	GetByIDForUpdate(ctx context.Context, tx transaction.Tx, id string) (*Ticket, error)

	// GetByEventID はイベントのチケットを価格の昇順で取得する
	GetByEventID(ctx context.Context, eventID string) ([]*Ticket, error)

	// Update はチケットを更新する
	Update(ctx context.Context, ticket *Ticket) error

	// Delete はチケットを削除する
	Delete(ctx context.Context, id string) error

	// IncrementSold は在庫の範囲内でのみ販売済み数を増やす
	// tx が nil の場合はトランザクション外で実行する
	IncrementSold(ctx context.Context, tx transaction.Tx, id string, count int) error

	// DecrementSold は販売済み数が負にならない範囲でのみ減らす
	DecrementSold(ctx context.Context, tx transaction.Tx, id string, count int) error

	// HasRegistrations はチケットを参照する参加登録があるかを返す
	HasRegistrations(ctx context.Context, id string) (bool, error)
}
