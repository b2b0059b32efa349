package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/LJTian/TechPulse/internal/aggregator"
	"github.com/LJTian/TechPulse/internal/api"
	"github.com/LJTian/TechPulse/internal/storage"
	"github.com/LJTian/TechPulse/internal/trend"
	"github.com/robfig/cron/v3"
)

// Scheduler 周期性地预热聚合结果：同一条流水线，产出写入缓存与当日快照。
// 预热是幂等的，除填充缓存 / 覆盖当日快照外没有其它副作用。
type Scheduler struct {
	cron  *cron.Cron
	agg   *aggregator.Aggregator
	store *storage.Store
}

func New(spec string, agg *aggregator.Aggregator, store *storage.Store) (*Scheduler, error) {
	c := cron.New()

	s := &Scheduler{
		cron:  c,
		agg:   agg,
		store: store,
	}

	if _, err := c.AddFunc(spec, s.runOnce); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	// 延迟执行首轮预热，避免与用户首次打开页面的请求争抢资源
	const startupDelay = 15 * time.Second
	time.AfterFunc(startupDelay, func() {
		go s.runOnce()
	})
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// RunOnce 对外暴露的单次执行入口，方便手动触发预热
func (s *Scheduler) RunOnce() {
	s.runOnce()
}

func (s *Scheduler) runOnce() {
	log.Println("start warm job...")

	ctx := context.Background()
	items := s.agg.Run(ctx)

	payload := trend.BuildPayload(items, func(topic string) []trend.Point {
		return s.store.History(topic, 14)
	})

	date := time.Now().UTC().Format("2006-01-02")
	if err := s.store.SaveSnapshots(date, payload.Trends); err != nil {
		log.Printf("warm job: save snapshots error: %v", err)
	}

	s.store.CacheSet(ctx, api.TrendsCacheKey, payload, 5*time.Minute)

	log.Printf("warm job done: items=%d trends=%d", len(items), len(payload.Trends))
}
