package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrCacheMiss = errors.New("キャッシュが見つかりません")
)

// OccupiedSlot はキャッシュされる占有時間帯を表す
type OccupiedSlot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status"`
}

// AvailabilityCache は施設・日付ごとの占有時間帯のキャッシュを管理する
// 書き込みのたびに無効化されるため、読み取りは高々TTLだけ遅れる
type AvailabilityCache struct {
	client *redis.Client
}

// NewAvailabilityCache は新しいAvailabilityCacheインスタンスを作成する
func NewAvailabilityCache(client *redis.Client) *AvailabilityCache {
	return &AvailabilityCache{client: client}
}

// Get は施設・日付の占有時間帯をキャッシュから取得する
func (c *AvailabilityCache) Get(ctx context.Context, facilityID, date string) ([]OccupiedSlot, error) {
	key := c.key(facilityID, date)
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("キャッシュ取得に失敗: %w", err)
	}
	var slots []OccupiedSlot
	if err := json.Unmarshal(val, &slots); err != nil {
		return nil, fmt.Errorf("キャッシュ復元に失敗: %w", err)
	}
	return slots, nil
}

// Set は施設・日付の占有時間帯をキャッシュに保存する
func (c *AvailabilityCache) Set(ctx context.Context, facilityID, date string, slots []OccupiedSlot, ttl time.Duration) error {
	val, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("キャッシュ変換に失敗: %w", err)
	}
	if err := c.client.Set(ctx, c.key(facilityID, date), val, ttl).Err(); err != nil {
		return fmt.Errorf("キャッシュ保存に失敗: %w", err)
	}
	return nil
}

// Invalidate は施設・日付のキャッシュを無効化する
// 予約の作成・確定・却下・キャンセルの後に必ず呼ぶこと
func (c *AvailabilityCache) Invalidate(ctx context.Context, facilityID, date string) error {
	if err := c.client.Del(ctx, c.key(facilityID, date)).Err(); err != nil {
		return fmt.Errorf("キャッシュ無効化に失敗: %w", err)
	}
	return nil
}

func (c *AvailabilityCache) key(facilityID, date string) string {
	return fmt.Sprintf("availability:%s:%s", facilityID, date)
}
