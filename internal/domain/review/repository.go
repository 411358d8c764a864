package review

import "context"

// Repository はレビューリポジトリのインターフェース
type Repository interface {
	Create(ctx context.Context, r *Review) error
	GetByID(ctx context.Context, id string) (*Review, error)
	// GetByEventAndUser は該当レビューがない場合 ErrReviewNotFound を返す
	GetByEventAndUser(ctx context.Context, eventID, userID string) (*Review, error)
	ListByEvent(ctx context.Context, eventID string) ([]*Review, error)
	ListByUser(ctx context.Context, userID string) ([]*Review, error)
	Update(ctx context.Context, r *Review) error
	Delete(ctx context.Context, id string) error
	GetAverageRating(ctx context.Context, eventID string) (*Rating, error)
}
