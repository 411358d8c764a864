package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/event"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/transaction"
)

const eventColumns = `id, slug, title, description, short_description, start_date, end_date, timezone,
	location_type, venue, address, city, state, country, postal_code, virtual_link, category, tags,
	capacity, cover_image, images, status, visibility, organizer_id, published_at, created_at, updated_at`

// prefixedEventColumns は events を e として結合する場合の列リスト
var prefixedEventColumns = prefixColumns("e", eventColumns)

// eventRow はDBの行を表す構造体
type eventRow struct {
	ID               string         `db:"id"`
	Slug             string         `db:"slug"`
	Title            string         `db:"title"`
	Description      *string        `db:"description"`
	ShortDescription *string        `db:"short_description"`
	StartDate        time.Time      `db:"start_date"`
	EndDate          time.Time      `db:"end_date"`
	Timezone         string         `db:"timezone"`
	LocationType     string         `db:"location_type"`
	Venue            *string        `db:"venue"`
	Address          *string        `db:"address"`
	City             *string        `db:"city"`
	State            *string        `db:"state"`
	Country          *string        `db:"country"`
	PostalCode       *string        `db:"postal_code"`
	VirtualLink      *string        `db:"virtual_link"`
	Category         string         `db:"category"`
	Tags             pq.StringArray `db:"tags"`
	Capacity         *int           `db:"capacity"`
	CoverImage       *string        `db:"cover_image"`
	Images           pq.StringArray `db:"images"`
	Status           string         `db:"status"`
	Visibility       string         `db:"visibility"`
	OrganizerID      string         `db:"organizer_id"`
	PublishedAt      *time.Time     `db:"published_at"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

// toEntity はeventRowをEventエンティティに変換する
func (r *eventRow) toEntity() *event.Event {
	tags := []string(r.Tags)
	if tags == nil {
		tags = []string{}
	}
	images := []string(r.Images)
	if images == nil {
		images = []string{}
	}
	return &event.Event{
		ID:               r.ID,
		Slug:             r.Slug,
		Title:            r.Title,
		Description:      derefString(r.Description),
		ShortDescription: derefString(r.ShortDescription),
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		Timezone:         r.Timezone,
		LocationType:     event.LocationType(r.LocationType),
		Venue:            derefString(r.Venue),
		Address:          derefString(r.Address),
		City:             derefString(r.City),
		State:            derefString(r.State),
		Country:          derefString(r.Country),
		PostalCode:       derefString(r.PostalCode),
		VirtualLink:      derefString(r.VirtualLink),
		Category:         event.Category(r.Category),
		Tags:             tags,
		Capacity:         r.Capacity,
		CoverImage:       derefString(r.CoverImage),
		Images:           images,
		Status:           event.Status(r.Status),
		Visibility:       event.Visibility(r.Visibility),
		OrganizerID:      r.OrganizerID,
		PublishedAt:      r.PublishedAt,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

// EventRepository はイベントリポジトリのPostgreSQL実装
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository はEventRepositoryを作成する
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create は新しいイベントを作成する
// スラッグの一意制約違反は event.ErrSlugTaken を返す
func (r *EventRepository) Create(ctx context.Context, e *event.Event) error {
	query := `
		INSERT INTO events (slug, title, description, short_description, start_date, end_date, timezone,
			location_type, venue, address, city, state, country, postal_code, virtual_link, category, tags,
			capacity, cover_image, images, status, visibility, organizer_id, published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
			$18, $19, $20, $21, $22, $23, $24, $25, $26)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query,
		e.Slug, e.Title, nullString(e.Description), nullString(e.ShortDescription), e.StartDate, e.EndDate, e.Timezone,
		string(e.LocationType), nullString(e.Venue), nullString(e.Address), nullString(e.City), nullString(e.State),
		nullString(e.Country), nullString(e.PostalCode), nullString(e.VirtualLink), string(e.Category), pq.Array(e.Tags),
		e.Capacity, nullString(e.CoverImage), pq.Array(e.Images), string(e.Status), string(e.Visibility),
		e.OrganizerID, e.PublishedAt, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
	if err != nil {
		if isUniqueViolation(err, "events_slug_key") {
			return event.ErrSlugTaken
		}
		return fmt.Errorf("イベント作成に失敗しました: %w", err)
	}
	return nil
}

// GetByID はIDからイベントを取得する
func (r *EventRepository) GetByID(ctx context.Context, id string) (*event.Event, error) {
	if !isUUID(id) {
		return nil, event.ErrEventNotFound
	}
	return r.getOne(ctx, r.db, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
}

// GetByIDForUpdate はイベント行をロックして取得する
// 同一イベントへの参加登録とキャンセルはこのロックで直列化される
func (r *EventRepository) GetByIDForUpdate(ctx context.Context, tx transaction.Tx, id string) (*event.Event, error) {
	if !isUUID(id) {
		return nil, event.ErrEventNotFound
	}
	return r.getOne(ctx, pick(r.db, tx), `SELECT `+eventColumns+` FROM events WHERE id = $1 FOR UPDATE`, id)
}

// GetBySlug はスラッグからイベントを取得する
func (r *EventRepository) GetBySlug(ctx context.Context, slug string) (*event.Event, error) {
	return r.getOne(ctx, r.db, `SELECT `+eventColumns+` FROM events WHERE slug = $1`, slug)
}

func (r *EventRepository) getOne(ctx context.Context, q queryer, query string, arg any) (*event.Event, error) {
	var row eventRow
	if err := q.GetContext(ctx, &row, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, event.ErrEventNotFound
		}
		return nil, fmt.Errorf("イベント取得に失敗しました: %w", err)
	}
	return row.toEntity(), nil
}

// FindIDBySlug はスラッグを使用しているイベントのIDを返す
func (r *EventRepository) FindIDBySlug(ctx context.Context, slug string) (string, error) {
	var id string
	err := r.db.GetContext(ctx, &id, `SELECT id FROM events WHERE slug = $1`, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("スラッグ確認に失敗しました: %w", err)
	}
	return id, nil
}

// List は条件に一致するイベントを開始日時の昇順で取得する
func (r *EventRepository) List(ctx context.Context, f event.Filter) ([]*event.Event, int, error) {
	where, args := buildEventWhere(f)

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM events`+where, args...); err != nil {
		return nil, 0, fmt.Errorf("イベント件数取得に失敗しました: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM events%s ORDER BY start_date ASC LIMIT $%d OFFSET $%d`,
		eventColumns, where, len(args)+1, len(args)+2)
	var rows []eventRow
	if err := r.db.SelectContext(ctx, &rows, query, append(args, f.Limit, f.Offset)...); err != nil {
		return nil, 0, fmt.Errorf("イベント一覧取得に失敗しました: %w", err)
	}

	events := make([]*event.Event, len(rows))
	for i := range rows {
		events[i] = rows[i].toEntity()
	}
	return events, total, nil
}

// buildEventWhere は検索条件から WHERE 句と引数を組み立てる
func buildEventWhere(f event.Filter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, strings.ReplaceAll(cond, "?", fmt.Sprintf("$%d", len(args))))
	}

	if f.Category != "" {
		add("category = ?", string(f.Category))
	}
	if f.Status != "" {
		add("status = ?", string(f.Status))
	}
	if f.Visibility != "" {
		add("visibility = ?", string(f.Visibility))
	}
	if f.City != "" {
		add("city ILIKE ?", containsPattern(f.City))
	}
	if f.Country != "" {
		add("country ILIKE ?", containsPattern(f.Country))
	}
	if f.OrganizerID != "" {
		add("organizer_id = ?", f.OrganizerID)
	}
	if f.Search != "" {
		add("(title ILIKE ? OR description ILIKE ? OR city ILIKE ?)", containsPattern(f.Search))
	}
	if f.StartDate != nil {
		add("start_date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		add("start_date <= ?", *f.EndDate)
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// Update はイベントを更新する
func (r *EventRepository) Update(ctx context.Context, tx transaction.Tx, e *event.Event) error {
	query := `
		UPDATE events
		SET slug = $1, title = $2, description = $3, short_description = $4, start_date = $5, end_date = $6,
			timezone = $7, location_type = $8, venue = $9, address = $10, city = $11, state = $12, country = $13,
			postal_code = $14, virtual_link = $15, category = $16, tags = $17, capacity = $18, cover_image = $19,
			images = $20, status = $21, visibility = $22, published_at = $23, updated_at = $24
		WHERE id = $25
	`
	e.UpdatedAt = time.Now()
	result, err := pick(r.db, tx).ExecContext(ctx, query,
		e.Slug, e.Title, nullString(e.Description), nullString(e.ShortDescription), e.StartDate, e.EndDate,
		e.Timezone, string(e.LocationType), nullString(e.Venue), nullString(e.Address), nullString(e.City),
		nullString(e.State), nullString(e.Country), nullString(e.PostalCode), nullString(e.VirtualLink),
		string(e.Category), pq.Array(e.Tags), e.Capacity, nullString(e.CoverImage), pq.Array(e.Images),
		string(e.Status), string(e.Visibility), e.PublishedAt, e.UpdatedAt, e.ID,
	)
	if err != nil {
		if isUniqueViolation(err, "events_slug_key") {
			return event.ErrSlugTaken
		}
		return fmt.Errorf("イベント更新に失敗しました: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("更新結果の確認に失敗しました: %w", err)
	}
	if rowsAffected == 0 {
		return event.ErrEventNotFound
	}
	return nil
}

// Delete はイベントを削除する。関連するチケット・参加登録・レビュー・お気に入りも削除される
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return event.ErrEventNotFound
	}
	result, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("イベント削除に失敗しました: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("削除結果の確認に失敗しました: %w", err)
	}
	if rowsAffected == 0 {
		return event.ErrEventNotFound
	}
	return nil
}

// GetStats はイベントの集計値を取得する
func (r *EventRepository) GetStats(ctx context.Context, id string) (*event.Stats, error) {
	query := `
		SELECT
			COUNT(*) AS total_registrations,
			COUNT(*) FILTER (WHERE status = 'CONFIRMED') AS confirmed_registrations,
			COUNT(*) FILTER (WHERE status = 'CANCELLED') AS cancelled_registrations,
			COUNT(*) FILTER (WHERE checked_in) AS checked_in_count,
			COALESCE(SUM(total_amount) FILTER (WHERE status <> 'CANCELLED'), 0) AS total_revenue,
			(SELECT COALESCE(SUM(sold), 0) FROM tickets WHERE event_id = $1) AS tickets_sold,
			(SELECT COALESCE(AVG(rating), 0)::float8 FROM reviews WHERE event_id = $1) AS average_rating
		FROM registrations
		WHERE event_id = $1
	`
	var row struct {
		TotalRegistrations     int     `db:"total_registrations"`
		ConfirmedRegistrations int     `db:"confirmed_registrations"`
		CancelledRegistrations int     `db:"cancelled_registrations"`
		CheckedInCount         int     `db:"checked_in_count"`
		TotalRevenue           int     `db:"total_revenue"`
		TicketsSold            int     `db:"tickets_sold"`
		AverageRating          float64 `db:"average_rating"`
	}
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, fmt.Errorf("イベント集計に失敗しました: %w", err)
	}
	return &event.Stats{
		TotalRegistrations:     row.TotalRegistrations,
		ConfirmedRegistrations: row.ConfirmedRegistrations,
		CancelledRegistrations: row.CancelledRegistrations,
		CheckedInCount:         row.CheckedInCount,
		TotalRevenue:           row.TotalRevenue,
		TicketsSold:            row.TicketsSold,
		AverageRating:          row.AverageRating,
	}, nil
}

// CompletePast は終了日時を過ぎた公開中イベントを完了にする
func (r *EventRepository) CompletePast(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE events SET status = $1, updated_at = $2 WHERE status = $3 AND end_date < $2`,
		string(event.StatusCompleted), now, string(event.StatusPublished),
	)
	if err != nil {
		return 0, fmt.Errorf("イベント完了処理に失敗しました: %w", err)
	}
	return result.RowsAffected()
}

// インターフェースを満たしているか確認
var _ event.Repository = (*EventRepository)(nil)
