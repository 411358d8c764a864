package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/post"
)

const postColumns = `id, title, content, published, author_id, created_at, updated_at`

type postRow struct {
	ID        int64     `db:"id"`
	Title     string    `db:"title"`
	Content   *string   `db:"content"`
	Published bool      `db:"published"`
	AuthorID  string    `db:"author_id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r *postRow) toEntity() *post.Post {
	return &post.Post{
		ID: r.ID, Title: r.Title, Content: derefString(r.Content), Published: r.Published,
		AuthorID: r.AuthorID, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

type PostRepository struct{ db *sqlx.DB }

func NewPostRepository(db *sqlx.DB) *PostRepository { return &PostRepository{db: db} }

func (r *PostRepository) Create(ctx context.Context, p *post.Post) error {
	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	if err := r.db.QueryRowxContext(ctx,
		`INSERT INTO posts (title, content, published, author_id, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		p.Title, nullString(p.Content), p.Published, p.AuthorID, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID); err != nil {
		return fmt.Errorf("投稿作成に失敗: %w", err)
	}
	return nil
}

func (r *PostRepository) GetByID(ctx context.Context, id int64) (*post.Post, error) {
	var row postRow
	if err := r.db.GetContext(ctx, &row, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, post.ErrPostNotFound
		}
		return nil, fmt.Errorf("投稿取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

func (r *PostRepository) List(ctx context.Context, authorID string) ([]*post.Post, error) {
	var rows []postRow
	var err error
	if authorID == "" {
		err = r.db.SelectContext(ctx, &rows, `SELECT `+postColumns+` FROM posts ORDER BY id DESC`)
	} else {
		err = r.db.SelectContext(ctx, &rows, `SELECT `+postColumns+` FROM posts WHERE author_id = $1 ORDER BY id DESC`, authorID)
	}
	if err != nil {
		return nil, fmt.Errorf("投稿一覧取得に失敗: %w", err)
	}
	result := make([]*post.Post, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result, nil
}

func (r *PostRepository) Update(ctx context.Context, p *post.Post) error {
	p.UpdatedAt = time.Now()
	result, err := r.db.ExecContext(ctx,
		`UPDATE posts SET title = $1, content = $2, published = $3, updated_at = $4 WHERE id = $5`,
		p.Title, nullString(p.Content), p.Published, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("投稿更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return post.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("投稿削除に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return post.ErrPostNotFound
	}
	return nil
}

var _ post.Repository = (*PostRepository)(nil)
