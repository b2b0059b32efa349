package storage

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/LJTian/TechPulse/internal/trend"
	"github.com/redis/go-redis/v9"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// TrendSnapshot 是一个主题在某一天的得分快照，时间序列从这里回放而来。
// (topic, date) 唯一，同一天重复预热只会覆盖当天的值。
type TrendSnapshot struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Topic string `gorm:"size:64;uniqueIndex:idx_topic_date" json:"topic"`
	// Date 格式 YYYY-MM-DD（UTC）
	Date      string            `gorm:"size:10;uniqueIndex:idx_topic_date" json:"date"`
	Score     float64           `json:"score"`
	Breakdown datatypes.JSONMap `gorm:"type:jsonb" json:"breakdown"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Store 聚合可选的两类外部依赖：Postgres 存趋势快照，Redis 做预热结果缓存。
// 任意一项未配置时对应指针为 nil，调用方按能力降级。
type Store struct {
	DB    *gorm.DB
	Redis *redis.Client
}

// NewStore 按配置初始化存储。dsn 为空则不连 Postgres，redisAddr 为空则不连 Redis。
func NewStore(dsn, redisAddr string) (*Store, error) {
	s := &Store{}

	if dsn != "" {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return nil, err
		}
		if err := db.AutoMigrate(&TrendSnapshot{}); err != nil {
			return nil, err
		}
		s.DB = db
	}

	if redisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("warn: redis ping failed: %v", err)
		}
		s.Redis = rdb
	}

	return s, nil
}

// SaveSnapshots 落盘一轮趋势计算的当日快照，以 (topic, date) 幂等覆盖
func (s *Store) SaveSnapshots(date string, trends []trend.Trend) error {
	if s == nil || s.DB == nil {
		return nil
	}

	for _, t := range trends {
		snap := &TrendSnapshot{
			Topic: t.Name,
			Date:  date,
			Score: t.Score,
			Breakdown: datatypes.JSONMap{
				"momentum":    t.Breakdown.Momentum,
				"novelty":     t.Breakdown.Novelty,
				"credibility": t.Breakdown.Credibility,
				"diversity":   t.Breakdown.Diversity,
			},
		}
		if err := s.DB.Where("topic = ? AND date = ?", t.Name, date).FirstOrCreate(snap).Error; err != nil {
			return err
		}
		_ = s.DB.Model(snap).Updates(map[string]any{
			"score":     t.Score,
			"breakdown": snap.Breakdown,
		}).Error
	}
	return nil
}

// History 返回某主题最近 days 天的快照（按日期升序），没有 DB 时返回 nil
func (s *Store) History(topic string, days int) []trend.Point {
	if s == nil || s.DB == nil {
		return nil
	}
	if days <= 0 || days > 365 {
		days = 14
	}

	var rows []TrendSnapshot
	if err := s.DB.Where("topic = ?", topic).
		Order("date DESC").Limit(days).Find(&rows).Error; err != nil {
		log.Printf("storage: load history for %s: %v", topic, err)
		return nil
	}

	out := make([]trend.Point, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		out = append(out, trend.Point{Date: rows[i].Date, Score: rows[i].Score})
	}
	return out
}

// CacheSet 把预热结果写入 Redis，短 TTL 依赖自然过期，不做主动失效
func (s *Store) CacheSet(ctx context.Context, key string, v any, ttl time.Duration) {
	if s == nil || s.Redis == nil {
		return
	}
	bs, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.Redis.Set(ctx, key, bs, ttl).Err(); err != nil {
		log.Printf("storage: cache set %s: %v", key, err)
	}
}

// CacheGet 读取缓存并反序列化到 dst，命中返回 true
func (s *Store) CacheGet(ctx context.Context, key string, dst any) bool {
	if s == nil || s.Redis == nil {
		return false
	}
	bs, err := s.Redis.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(bs, dst) == nil
}
