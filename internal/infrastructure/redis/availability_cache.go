package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/ticket"
)

var (
	ErrCacheMiss = errors.New("キャッシュが見つかりません")
)

// AvailabilityCacheInterface はチケット在庫確認結果のキャッシュを抽象化する
type AvailabilityCacheInterface interface {
	Get(ctx context.Context, ticketID string) (*ticket.Availability, error)
	Set(ctx context.Context, ticketID string, a *ticket.Availability, ttl time.Duration) error
	Invalidate(ctx context.Context, ticketID string) error
}

// AvailabilityCache はチケットの在庫確認結果を短時間キャッシュする
type AvailabilityCache struct {
	client *redis.Client
}

// NewAvailabilityCache は新しいAvailabilityCacheインスタンスを作成する
func NewAvailabilityCache(client *redis.Client) *AvailabilityCache {
	return &AvailabilityCache{client: client}
}

// Get はキャッシュされた在庫確認結果を取得する
func (c *AvailabilityCache) Get(ctx context.Context, ticketID string) (*ticket.Availability, error) {
	data, err := c.client.Get(ctx, availabilityKey(ticketID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("キャッシュ取得に失敗: %w", err)
	}
	var a ticket.Availability
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("キャッシュの復元に失敗: %w", err)
	}
	return &a, nil
}

// Set は在庫確認結果をキャッシュに保存する
func (c *AvailabilityCache) Set(ctx context.Context, ticketID string, a *ticket.Availability, ttl time.Duration) error {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("キャッシュのシリアライズに失敗: %w", err)
	}
	if err := c.client.Set(ctx, availabilityKey(ticketID), data, ttl).Err(); err != nil {
		return fmt.Errorf("キャッシュ保存に失敗: %w", err)
	}
	return nil
}

// Invalidate はチケットのキャッシュを無効化する
func (c *AvailabilityCache) Invalidate(ctx context.Context, ticketID string) error {
	if err := c.client.Del(ctx, availabilityKey(ticketID)).Err(); err != nil {
		return fmt.Errorf("キャッシュ無効化に失敗: %w", err)
	}
	return nil
}

func availabilityKey(ticketID string) string {
	return fmt.Sprintf("tickets:availability:%s", ticketID)
}

var _ AvailabilityCacheInterface = (*AvailabilityCache)(nil)
