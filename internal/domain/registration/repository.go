package registration

import (
	"context"

	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/transaction"
)

// Repository は参加登録リポジトリのインターフェース
type Repository interface {
	// Create はトランザクション内で参加登録を作成する
	Create(ctx context.Context, tx transaction.Tx, r *Registration) error

	// GetByID はIDから参加登録を取得する
	GetByID(ctx context.Context, id string) (*Registration, error)

	// GetByQRCode はQRコードから参加登録を取得する
	GetByQRCode(ctx context.Context, qrCode string) (*Registration, error)

	// GetActiveByEventAndUser はキャンセルされていない登録を取得する
	GetActiveByEventAndUser(ctx context.Context, tx transaction.Tx, eventID, userID string) (*Registration, error)

	// SumActiveAttendees はキャンセルされていない登録の参加人数合計を返す
	SumActiveAttendees(ctx context.Context, tx transaction.Tx, eventID string) (int, error)

	// ExistsByQRCode はQRコードが使用済みかを返す
	ExistsByQRCode(ctx context.Context, tx transaction.Tx, qrCode string) (bool, error)

	// ListByUser はユーザーのキャンセルされていない登録を新しい順に取得する
	ListByUser(ctx context.Context, userID string) ([]*Registration, error)

	// ListByEvent はイベントの全登録を新しい順に取得する
	ListByEvent(ctx context.Context, eventID string) ([]*Registration, error)

	// MarkCancelled は確定済みかつ未チェックインの登録のみキャンセルにする
	MarkCancelled(ctx context.Context, tx transaction.Tx, r *Registration) error

	// MarkCheckedIn は確定済みかつ未チェックインの登録のみチェックイン済みにする
	// 更新対象がない場合は ErrAlreadyCheckedIn を返す
	MarkCheckedIn(ctx context.Context, r *Registration) error
}
