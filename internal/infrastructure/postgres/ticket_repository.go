package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/ticket"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/transaction"
)

const ticketColumns = `id, event_id, name, description, price, quantity, sold, sales_start, sales_end, created_at, updated_at`

type ticketRow struct {
	ID          string     `db:"id"`
	EventID     string     `db:"event_id"`
	Name        string     `db:"name"`
	Description *string    `db:"description"`
	Price       int        `db:"price"`
	Quantity    *int       `db:"quantity"`
	Sold        int        `db:"sold"`
	SalesStart  *time.Time `db:"sales_start"`
	SalesEnd    *time.Time `db:"sales_end"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

func (r *ticketRow) toEntity() *ticket.Ticket {
	return &ticket.Ticket{
		ID: r.ID, EventID: r.EventID, Name: r.Name, Description: derefString(r.Description),
		Price: r.Price, Quantity: r.Quantity, Sold: r.Sold,
		SalesStart: r.SalesStart, SalesEnd: r.SalesEnd,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

type TicketRepository struct{ db *sqlx.DB }

func NewTicketRepository(db *sqlx.DB) *TicketRepository { return &TicketRepository{db: db} }

func (r *TicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	query := `INSERT INTO tickets (event_id, name, description, price, quantity, sold, sales_start, sales_end, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query,
		t.EventID, t.Name, nullString(t.Description), t.Price, t.Quantity, t.Sold, t.SalesStart, t.SalesEnd, t.CreatedAt, t.UpdatedAt,
	).Scan(&t.ID); err != nil {
		return fmt.Errorf("チケット作成に失敗: %w", err)
	}
	return nil
}

func (r *TicketRepository) GetByID(ctx context.Context, id string) (*ticket.Ticket, error) {
	return r.getOne(ctx, r.db, `SELECT `+ticketColumns+` FROM tickets WHERE id = $1`, id)
}

// GetByIDForUpdate はチケット行をロックして取得する
func (r *TicketRepository) GetByIDForUpdate(ctx context.Context, tx transaction.Tx, id string) (*ticket.Ticket, error) {
	return r.getOne(ctx, pick(r.db, tx), `SELECT `+ticketColumns+` FROM tickets WHERE id = $1 FOR UPDATE`, id)
}

func (r *TicketRepository) getOne(ctx context.Context, q queryer, query, id string) (*ticket.Ticket, error) {
	if !isUUID(id) {
		return nil, ticket.ErrTicketNotFound
	}
	var row ticketRow
	if err := q.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ticket.ErrTicketNotFound
		}
		return nil, fmt.Errorf("チケット取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

func (r *TicketRepository) GetByEventID(ctx context.Context, eventID string) ([]*ticket.Ticket, error) {
	if !isUUID(eventID) {
		return []*ticket.Ticket{}, nil
	}
	var rows []ticketRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT `+ticketColumns+` FROM tickets WHERE event_id = $1 ORDER BY price ASC, created_at ASC`, eventID); err != nil {
		return nil, fmt.Errorf("チケット一覧取得に失敗: %w", err)
	}
	result := make([]*ticket.Ticket, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result, nil
}

// Update はチケットを更新する。販売済み数は IncrementSold / DecrementSold でのみ変更する
func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	t.UpdatedAt = time.Now()
	query := `UPDATE tickets SET name = $1, description = $2, price = $3, quantity = $4, sales_start = $5, sales_end = $6, updated_at = $7 WHERE id = $8`
	result, err := r.db.ExecContext(ctx, query,
		t.Name, nullString(t.Description), t.Price, t.Quantity, t.SalesStart, t.SalesEnd, t.UpdatedAt, t.ID,
	)
	if err != nil {
		// 同時販売で販売数が販売済み数を下回った場合は CHECK 制約で弾かれる
		if isCheckViolation(err) {
			return ticket.ErrQuantityBelowSold
		}
		return fmt.Errorf("チケット更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ticket.ErrTicketNotFound
	}
	return nil
}

func (r *TicketRepository) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return ticket.ErrTicketNotFound
	}
	result, err := r.db.ExecContext(ctx, `DELETE FROM tickets WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ticket.ErrHasRegistrations
		}
		return fmt.Errorf("チケット削除に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ticket.ErrTicketNotFound
	}
	return nil
}

// IncrementSold は在庫の範囲内でのみ販売済み数を増やす
func (r *TicketRepository) IncrementSold(ctx context.Context, tx transaction.Tx, id string, count int) error {
	if count <= 0 {
		return ticket.ErrInvalidCount
	}
	query := `UPDATE tickets SET sold = sold + $1, updated_at = NOW() WHERE id = $2 AND (quantity IS NULL OR sold + $1 <= quantity)`
	result, err := pick(r.db, tx).ExecContext(ctx, query, count, id)
	if err != nil {
		return fmt.Errorf("販売済み数の更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ticket.ErrNotEnoughTickets
	}
	return nil
}

// DecrementSold は販売済み数が負にならない範囲でのみ減らす
func (r *TicketRepository) DecrementSold(ctx context.Context, tx transaction.Tx, id string, count int) error {
	if count <= 0 {
		return ticket.ErrInvalidCount
	}
	query := `UPDATE tickets SET sold = sold - $1, updated_at = NOW() WHERE id = $2 AND sold >= $1`
	result, err := pick(r.db, tx).ExecContext(ctx, query, count, id)
	if err != nil {
		return fmt.Errorf("販売済み数の更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ticket.ErrSoldUnderflow
	}
	return nil
}

func (r *TicketRepository) HasRegistrations(ctx context.Context, id string) (bool, error) {
	if !isUUID(id) {
		return false, nil
	}
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM registrations WHERE ticket_id = $1)`, id); err != nil {
		return false, fmt.Errorf("参加登録の確認に失敗: %w", err)
	}
	return exists, nil
}

var _ ticket.Repository = (*TicketRepository)(nil)
