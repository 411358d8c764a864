package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/event"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/favorite"
)

type FavoriteRepository struct{ db *sqlx.DB }

func NewFavoriteRepository(db *sqlx.DB) *FavoriteRepository { return &FavoriteRepository{db: db} }

func (r *FavoriteRepository) Add(ctx context.Context, f *favorite.Favorite) error {
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO favorites (user_id, event_id, created_at) VALUES ($1, $2, $3)`,
		f.UserID, f.EventID, f.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return favorite.ErrAlreadyFavorited
		}
		if isForeignKeyViolation(err) {
			return event.ErrEventNotFound
		}
		return fmt.Errorf("お気に入り登録に失敗: %w", err)
	}
	return nil
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID, eventID string) error {
	if !isUUID(eventID) {
		return favorite.ErrNotFavorited
	}
	result, err := r.db.ExecContext(ctx, `DELETE FROM favorites WHERE user_id = $1 AND event_id = $2`, userID, eventID)
	if err != nil {
		return fmt.Errorf("お気に入り解除に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return favorite.ErrNotFavorited
	}
	return nil
}

func (r *FavoriteRepository) Exists(ctx context.Context, userID, eventID string) (bool, error) {
	if !isUUID(eventID) {
		return false, nil
	}
	var exists bool
	if err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM favorites WHERE user_id = $1 AND event_id = $2)`, userID, eventID,
	); err != nil {
		return false, fmt.Errorf("お気に入りの確認に失敗: %w", err)
	}
	return exists, nil
}

// ListEventsByUser はお気に入りのイベントを登録が新しい順に返す
func (r *FavoriteRepository) ListEventsByUser(ctx context.Context, userID string) ([]*event.Event, error) {
	query := `
		SELECT ` + prefixedEventColumns + `
		FROM favorites f
		JOIN events e ON e.id = f.event_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC
	`
	var rows []eventRow
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("お気に入り一覧取得に失敗: %w", err)
	}
	events := make([]*event.Event, len(rows))
	for i := range rows {
		events[i] = rows[i].toEntity()
	}
	return events, nil
}

var _ favorite.Repository = (*FavoriteRepository)(nil)
