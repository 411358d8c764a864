// Package client は EventFlow API の型付き HTTP クライアント
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// APIError は API が返したエラー
type APIError struct {
	StatusCode int
	Message    string
	Details    string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("api error %d: %s (%s)", e.StatusCode, e.Message, e.Details)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client は EventFlow API のクライアント
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// Option はクライアントの設定
type Option func(*Client)

// WithHTTPClient は使用する http.Client を差し替える
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken は Bearer トークンを設定する
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New はクライアントを作成する
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("リクエストのエンコードに失敗: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var payload struct {
			Error   string `json:"error"`
			Details string `json:"details"`
		}
		if json.NewDecoder(resp.Body).Decode(&payload) == nil && payload.Error != "" {
			apiErr.Message = payload.Error
			apiErr.Details = payload.Details
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("レスポンスのデコードに失敗: %w", err)
	}
	return nil
}

// ListEvents はイベント一覧を取得する
func (c *Client) ListEvents(ctx context.Context, q EventQuery) (*EventList, error) {
	v := url.Values{}
	set := func(k, val string) {
		if val != "" {
			v.Set(k, val)
		}
	}
	set("category", q.Category)
	set("status", q.Status)
	set("city", q.City)
	set("organizerId", q.OrganizerID)
	set("search", q.Search)
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		v.Set("offset", strconv.Itoa(q.Offset))
	}

	path := "/api/events"
	if encoded := v.Encode(); encoded != "" {
		path += "?" + encoded
	}
	var out EventList
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetEvent はイベントを取得する
func (c *Client) GetEvent(ctx context.Context, id string) (*Event, error) {
	var out struct {
		Event Event `json:"event"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/events/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Event, nil
}

// GetEventBySlug はスラッグからイベントを取得する
func (c *Client) GetEventBySlug(ctx context.Context, slug string) (*Event, error) {
	var out struct {
		Event Event `json:"event"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/events/slug/"+url.PathEscape(slug), nil, &out); err != nil {
		return nil, err
	}
	return &out.Event, nil
}

// CreateEvent はイベントを作成する
func (c *Client) CreateEvent(ctx context.Context, in CreateEventInput) (*Event, error) {
	var out struct {
		Event Event `json:"event"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/events", in, &out); err != nil {
		return nil, err
	}
	return &out.Event, nil
}

// DeleteEvent はイベントを削除する
func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/events/"+url.PathEscape(id), nil, nil)
}

// GetEventStats はイベントの集計値を取得する
func (c *Client) GetEventStats(ctx context.Context, id string) (*EventStats, error) {
	var out struct {
		Stats EventStats `json:"stats"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/events/"+url.PathEscape(id)+"/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out.Stats, nil
}

// GetEventTickets はイベントのチケット一覧を取得する
func (c *Client) GetEventTickets(ctx context.Context, eventID string) ([]Ticket, error) {
	var out struct {
		Tickets []Ticket `json:"tickets"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/events/"+url.PathEscape(eventID)+"/tickets", nil, &out); err != nil {
		return nil, err
	}
	return out.Tickets, nil
}

// CreateTicket はイベントにチケットを追加する
func (c *Client) CreateTicket(ctx context.Context, eventID string, in CreateTicketInput) (*Ticket, error) {
	var out struct {
		Ticket Ticket `json:"ticket"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/events/"+url.PathEscape(eventID)+"/tickets", in, &out); err != nil {
		return nil, err
	}
	return &out.Ticket, nil
}

// GetTicketAvailability はチケットの購入可否を取得する
func (c *Client) GetTicketAvailability(ctx context.Context, ticketID string) (*Availability, error) {
	var out struct {
		Availability Availability `json:"availability"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/tickets/"+url.PathEscape(ticketID)+"/availability", nil, &out); err != nil {
		return nil, err
	}
	return &out.Availability, nil
}

// Register はイベントに参加登録する
func (c *Client) Register(ctx context.Context, eventID string, in RegisterInput) (*Registration, error) {
	var out struct {
		Registration Registration `json:"registration"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/events/"+url.PathEscape(eventID)+"/register", in, &out); err != nil {
		return nil, err
	}
	return &out.Registration, nil
}

// GetMyRegistrations はログインユーザーの参加登録一覧を取得する
func (c *Client) GetMyRegistrations(ctx context.Context) ([]Registration, error) {
	var out struct {
		Registrations []Registration `json:"registrations"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/registrations", nil, &out); err != nil {
		return nil, err
	}
	return out.Registrations, nil
}

// CancelRegistration は参加登録をキャンセルする
func (c *Client) CancelRegistration(ctx context.Context, id string) (*Registration, error) {
	var out struct {
		Registration Registration `json:"registration"`
	}
	if err := c.do(ctx, http.MethodPatch, "/api/registrations/"+url.PathEscape(id)+"/cancel", nil, &out); err != nil {
		return nil, err
	}
	return &out.Registration, nil
}

// CheckIn は参加登録IDでチェックインする
func (c *Client) CheckIn(ctx context.Context, id string) (*Registration, error) {
	var out struct {
		Registration Registration `json:"registration"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/registrations/"+url.PathEscape(id)+"/checkin", nil, &out); err != nil {
		return nil, err
	}
	return &out.Registration, nil
}

// CheckInByQR はQRコードでチェックインする
func (c *Client) CheckInByQR(ctx context.Context, qrCode string) (*CheckInResult, error) {
	var out CheckInResult
	body := map[string]string{"qrCode": qrCode}
	if err := c.do(ctx, http.MethodPost, "/api/registrations/checkin-qr", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateReview はレビューを投稿する
func (c *Client) CreateReview(ctx context.Context, eventID string, rating int, comment string) (*Review, error) {
	var out struct {
		Review Review `json:"review"`
	}
	body := map[string]any{"rating": rating, "comment": comment}
	if err := c.do(ctx, http.MethodPost, "/api/events/"+url.PathEscape(eventID)+"/reviews", body, &out); err != nil {
		return nil, err
	}
	return &out.Review, nil
}

// GetEventRating はイベントの平均評価を取得する
func (c *Client) GetEventRating(ctx context.Context, eventID string) (*Rating, error) {
	var out struct {
		Rating Rating `json:"rating"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/events/"+url.PathEscape(eventID)+"/rating", nil, &out); err != nil {
		return nil, err
	}
	return &out.Rating, nil
}

// ToggleFavorite はお気に入りを切り替え、切り替え後の状態を返す
func (c *Client) ToggleFavorite(ctx context.Context, eventID string) (bool, error) {
	var out struct {
		Favorited bool `json:"favorited"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/events/"+url.PathEscape(eventID)+"/toggle-favorite", nil, &out); err != nil {
		return false, err
	}
	return out.Favorited, nil
}

// Me はログインユーザーのプロフィールを取得する
func (c *Client) Me(ctx context.Context) (*User, error) {
	var out struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/users/me", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}
