package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/review"
)

const reviewColumns = `id, event_id, user_id, rating, comment, created_at, updated_at`

type reviewRow struct {
	ID        string    `db:"id"`
	EventID   string    `db:"event_id"`
	UserID    string    `db:"user_id"`
	Rating    int       `db:"rating"`
	Comment   *string   `db:"comment"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r *reviewRow) toEntity() *review.Review {
	return &review.Review{
		ID: r.ID, EventID: r.EventID, UserID: r.UserID, Rating: r.Rating,
		Comment: derefString(r.Comment), CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

type ReviewRepository struct{ db *sqlx.DB }

func NewReviewRepository(db *sqlx.DB) *ReviewRepository { return &ReviewRepository{db: db} }

func (r *ReviewRepository) Create(ctx context.Context, rv *review.Review) error {
	query := `INSERT INTO reviews (event_id, user_id, rating, comment, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query,
		rv.EventID, rv.UserID, rv.Rating, nullString(rv.Comment), rv.CreatedAt, rv.UpdatedAt,
	).Scan(&rv.ID); err != nil {
		if isUniqueViolation(err, "uq_reviews_event_user") {
			return review.ErrDuplicateReview
		}
		return fmt.Errorf("レビュー作成に失敗: %w", err)
	}
	return nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*review.Review, error) {
	if !isUUID(id) {
		return nil, review.ErrReviewNotFound
	}
	return r.getOne(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id)
}

func (r *ReviewRepository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*review.Review, error) {
	if !isUUID(eventID) {
		return nil, review.ErrReviewNotFound
	}
	return r.getOne(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE event_id = $1 AND user_id = $2`, eventID, userID)
}

func (r *ReviewRepository) getOne(ctx context.Context, query string, args ...any) (*review.Review, error) {
	var row reviewRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, review.ErrReviewNotFound
		}
		return nil, fmt.Errorf("レビュー取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

func (r *ReviewRepository) ListByEvent(ctx context.Context, eventID string) ([]*review.Review, error) {
	if !isUUID(eventID) {
		return []*review.Review{}, nil
	}
	return r.list(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE event_id = $1 ORDER BY created_at DESC`, eventID)
}

func (r *ReviewRepository) ListByUser(ctx context.Context, userID string) ([]*review.Review, error) {
	return r.list(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *ReviewRepository) list(ctx context.Context, query, arg string) ([]*review.Review, error) {
	var rows []reviewRow
	if err := r.db.SelectContext(ctx, &rows, query, arg); err != nil {
		return nil, fmt.Errorf("レビュー一覧取得に失敗: %w", err)
	}
	result := make([]*review.Review, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result, nil
}

func (r *ReviewRepository) Update(ctx context.Context, rv *review.Review) error {
	rv.UpdatedAt = time.Now()
	result, err := r.db.ExecContext(ctx,
		`UPDATE reviews SET rating = $1, comment = $2, updated_at = $3 WHERE id = $4`,
		rv.Rating, nullString(rv.Comment), rv.UpdatedAt, rv.ID,
	)
	if err != nil {
		return fmt.Errorf("レビュー更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return review.ErrReviewNotFound
	}
	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return review.ErrReviewNotFound
	}
	result, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("レビュー削除に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return review.ErrReviewNotFound
	}
	return nil
}

func (r *ReviewRepository) GetAverageRating(ctx context.Context, eventID string) (*review.Rating, error) {
	if !isUUID(eventID) {
		return &review.Rating{}, nil
	}
	var row struct {
		Average float64 `db:"average_rating"`
		Total   int     `db:"total_reviews"`
	}
	query := `SELECT COALESCE(AVG(rating), 0)::float8 AS average_rating, COUNT(*) AS total_reviews FROM reviews WHERE event_id = $1`
	if err := r.db.GetContext(ctx, &row, query, eventID); err != nil {
		return nil, fmt.Errorf("平均評価の取得に失敗: %w", err)
	}
	return &review.Rating{AverageRating: row.Average, TotalReviews: row.Total}, nil
}

var _ review.Repository = (*ReviewRepository)(nil)
