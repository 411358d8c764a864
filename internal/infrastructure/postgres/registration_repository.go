package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/registration"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/transaction"
)

const registrationColumns = `id, event_id, user_id, ticket_id, attendee_count, attendee_name, attendee_email,
	phone_number, special_requests, total_amount, status, checked_in, qr_code, cancelled_at, checked_in_at,
	created_at, updated_at`

type registrationRow struct {
	ID              string     `db:"id"`
	EventID         string     `db:"event_id"`
	UserID          string     `db:"user_id"`
	TicketID        *string    `db:"ticket_id"`
	AttendeeCount   int        `db:"attendee_count"`
	AttendeeName    *string    `db:"attendee_name"`
	AttendeeEmail   *string    `db:"attendee_email"`
	PhoneNumber     *string    `db:"phone_number"`
	SpecialRequests *string    `db:"special_requests"`
	TotalAmount     int        `db:"total_amount"`
	Status          string     `db:"status"`
	CheckedIn       bool       `db:"checked_in"`
	QRCode          string     `db:"qr_code"`
	CancelledAt     *time.Time `db:"cancelled_at"`
	CheckedInAt     *time.Time `db:"checked_in_at"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

func (r *registrationRow) toEntity() *registration.Registration {
	return &registration.Registration{
		ID: r.ID, EventID: r.EventID, UserID: r.UserID, TicketID: r.TicketID,
		AttendeeCount: r.AttendeeCount, AttendeeName: derefString(r.AttendeeName),
		AttendeeEmail: derefString(r.AttendeeEmail), PhoneNumber: derefString(r.PhoneNumber),
		SpecialRequests: derefString(r.SpecialRequests), TotalAmount: r.TotalAmount,
		Status: registration.Status(r.Status), CheckedIn: r.CheckedIn, QRCode: r.QRCode,
		CancelledAt: r.CancelledAt, CheckedInAt: r.CheckedInAt,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

type RegistrationRepository struct{ db *sqlx.DB }

func NewRegistrationRepository(db *sqlx.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// Create は参加登録を作成する
// 有効な登録の重複は部分一意インデックスで検出し ErrDuplicateRegistration を返す
func (r *RegistrationRepository) Create(ctx context.Context, tx transaction.Tx, reg *registration.Registration) error {
	query := `
		INSERT INTO registrations (event_id, user_id, ticket_id, attendee_count, attendee_name, attendee_email,
			phone_number, special_requests, total_amount, status, checked_in, qr_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`
	err := pick(r.db, tx).QueryRowxContext(ctx, query,
		reg.EventID, reg.UserID, reg.TicketID, reg.AttendeeCount, nullString(reg.AttendeeName),
		nullString(reg.AttendeeEmail), nullString(reg.PhoneNumber), nullString(reg.SpecialRequests),
		reg.TotalAmount, string(reg.Status), reg.CheckedIn, reg.QRCode, reg.CreatedAt, reg.UpdatedAt,
	).Scan(&reg.ID)
	if err != nil {
		if isUniqueViolation(err, "uq_registrations_active_event_user") {
			return registration.ErrDuplicateRegistration
		}
		return fmt.Errorf("参加登録作成に失敗: %w", err)
	}
	return nil
}

func (r *RegistrationRepository) GetByID(ctx context.Context, id string) (*registration.Registration, error) {
	if !isUUID(id) {
		return nil, registration.ErrRegistrationNotFound
	}
	var row registrationRow
	if err := r.db.GetContext(ctx, &row, `SELECT `+registrationColumns+` FROM registrations WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, registration.ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("参加登録取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

func (r *RegistrationRepository) GetByQRCode(ctx context.Context, qrCode string) (*registration.Registration, error) {
	var row registrationRow
	if err := r.db.GetContext(ctx, &row, `SELECT `+registrationColumns+` FROM registrations WHERE qr_code = $1`, qrCode); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, registration.ErrInvalidQRCode
		}
		return nil, fmt.Errorf("参加登録取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

// GetActiveByEventAndUser はキャンセルされていない登録を取得する。存在しない場合は ErrRegistrationNotFound
func (r *RegistrationRepository) GetActiveByEventAndUser(ctx context.Context, tx transaction.Tx, eventID, userID string) (*registration.Registration, error) {
	if !isUUID(eventID) {
		return nil, registration.ErrRegistrationNotFound
	}
	var row registrationRow
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE event_id = $1 AND user_id = $2 AND status <> 'CANCELLED'`
	if err := pick(r.db, tx).GetContext(ctx, &row, query, eventID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, registration.ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("参加登録取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

func (r *RegistrationRepository) SumActiveAttendees(ctx context.Context, tx transaction.Tx, eventID string) (int, error) {
	var total int
	query := `SELECT COALESCE(SUM(attendee_count), 0) FROM registrations WHERE event_id = $1 AND status <> 'CANCELLED'`
	if err := pick(r.db, tx).GetContext(ctx, &total, query, eventID); err != nil {
		return 0, fmt.Errorf("参加人数の集計に失敗: %w", err)
	}
	return total, nil
}

func (r *RegistrationRepository) ExistsByQRCode(ctx context.Context, tx transaction.Tx, qrCode string) (bool, error) {
	var exists bool
	if err := pick(r.db, tx).GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM registrations WHERE qr_code = $1)`, qrCode); err != nil {
		return false, fmt.Errorf("QRコードの確認に失敗: %w", err)
	}
	return exists, nil
}

func (r *RegistrationRepository) ListByUser(ctx context.Context, userID string) ([]*registration.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE user_id = $1 AND status <> 'CANCELLED' ORDER BY created_at DESC`
	return r.list(ctx, query, userID)
}

func (r *RegistrationRepository) ListByEvent(ctx context.Context, eventID string) ([]*registration.Registration, error) {
	if !isUUID(eventID) {
		return []*registration.Registration{}, nil
	}
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE event_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, eventID)
}

func (r *RegistrationRepository) list(ctx context.Context, query string, arg string) ([]*registration.Registration, error) {
	var rows []registrationRow
	if err := r.db.SelectContext(ctx, &rows, query, arg); err != nil {
		return nil, fmt.Errorf("参加登録一覧取得に失敗: %w", err)
	}
	result := make([]*registration.Registration, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result, nil
}

// MarkCancelled は確定済みかつ未チェックインの登録のみキャンセルにする
func (r *RegistrationRepository) MarkCancelled(ctx context.Context, tx transaction.Tx, reg *registration.Registration) error {
	query := `
		UPDATE registrations SET status = 'CANCELLED', cancelled_at = $1, updated_at = $1
		WHERE id = $2 AND status = 'CONFIRMED' AND checked_in = false
	`
	now := time.Now()
	q := pick(r.db, tx)
	result, err := q.ExecContext(ctx, query, now, reg.ID)
	if err != nil {
		return fmt.Errorf("参加登録キャンセルに失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return r.rejectReason(ctx, q, reg.ID, (*registration.Registration).CanCancel, registration.ErrAlreadyCancelled)
	}
	reg.Status = registration.StatusCancelled
	reg.CancelledAt = &now
	reg.UpdatedAt = now
	return nil
}

// MarkCheckedIn は確定済みかつ未チェックインの登録のみチェックイン済みにする
// 同時実行された場合も更新されるのは1回だけ
func (r *RegistrationRepository) MarkCheckedIn(ctx context.Context, reg *registration.Registration) error {
	query := `
		UPDATE registrations SET checked_in = true, checked_in_at = $1, updated_at = $1
		WHERE id = $2 AND checked_in = false AND status = 'CONFIRMED'
	`
	now := time.Now()
	result, err := r.db.ExecContext(ctx, query, now, reg.ID)
	if err != nil {
		return fmt.Errorf("チェックインに失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return r.rejectReason(ctx, r.db, reg.ID, (*registration.Registration).CanCheckIn, registration.ErrAlreadyCheckedIn)
	}
	reg.CheckedIn = true
	reg.CheckedInAt = &now
	reg.UpdatedAt = now
	return nil
}

// registrationState は条件付き更新が空振りした後に読み直す状態
type registrationState struct {
	Status    string `db:"status"`
	CheckedIn bool   `db:"checked_in"`
}

// rejectReason は条件付き更新の対象がなかった理由を現在の状態から判定する
func (r *RegistrationRepository) rejectReason(
	ctx context.Context,
	q queryer,
	id string,
	check func(*registration.Registration) error,
	fallback error,
) error {
	var st registrationState
	if err := q.GetContext(ctx, &st, `SELECT status, checked_in FROM registrations WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return registration.ErrRegistrationNotFound
		}
		return fmt.Errorf("参加登録の状態取得に失敗: %w", err)
	}
	return rejectReasonFor(st, check, fallback)
}

// rejectReasonFor は状態に対して check を適用する。check が通る場合は fallback を返す
func rejectReasonFor(st registrationState, check func(*registration.Registration) error, fallback error) error {
	current := &registration.Registration{Status: registration.Status(st.Status), CheckedIn: st.CheckedIn}
	if err := check(current); err != nil {
		return err
	}
	return fallback
}

var _ registration.Repository = (*RegistrationRepository)(nil)
