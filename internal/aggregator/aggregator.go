package aggregator

import (
	"context"
	"log"
	"sort"
	"sync"

	"github.com/LJTian/TechPulse/internal/feed"
)

// Aggregator 把配置的全部订阅源并发抓取 + 解析后合并为一份去重、有序的条目列表。
// 单个源的失败只会让该源本轮贡献 0 条，绝不影响其它源。
type Aggregator struct {
	sources  []string
	fetcher  *feed.Fetcher
	maxItems int
}

// New 构建聚合器。maxItems 为结果上限，0 表示不截断。
func New(sources []string, fetcher *feed.Fetcher, maxItems int) *Aggregator {
	return &Aggregator{
		sources:  sources,
		fetcher:  fetcher,
		maxItems: maxItems,
	}
}

// Run 执行一轮完整聚合：每个源一个 goroutine（fan-out），全部结束后按完成顺序合并（fan-in），
// 再过滤空标题、按标题去重（先到先得）、按发布时间倒序排序并截断。
// 所有源都失败或根本没有配置源时返回空列表而非错误。
// 抓取期间各任务互不共享可变状态；去重集合只在 fan-in 完成后单线程使用。
func (a *Aggregator) Run(ctx context.Context) []feed.Item {
	if len(a.sources) == 0 {
		log.Println("aggregate: no feed sources configured")
		return []feed.Item{}
	}

	results := make(chan []feed.Item, len(a.sources))

	var wg sync.WaitGroup
	for _, src := range a.sources {
		source := src
		wg.Add(1)
		go func() {
			defer wg.Done()
			items, err := a.fetchOne(ctx, source)
			if err != nil {
				log.Printf("aggregate: source %s skipped: %v", source, err)
				return
			}
			results <- items
		}()
	}
	wg.Wait()
	close(results)

	// channel 的接收顺序即各源的完成顺序，标题去重按这个顺序先到先得
	merged := make([]feed.Item, 0, 64)
	for batch := range results {
		merged = append(merged, batch...)
	}

	out := dedupeByTitle(merged)
	sortByPublished(out)

	if a.maxItems > 0 && len(out) > a.maxItems {
		out = out[:a.maxItems]
	}

	log.Printf("aggregate: %d sources -> %d items", len(a.sources), len(out))
	return out
}

// fetchOne 抓取并解析单个源。若源返回的是 HTML 页面，尝试一次 feed 自动发现后重抓。
func (a *Aggregator) fetchOne(ctx context.Context, source string) ([]feed.Item, error) {
	body, err := a.fetcher.Fetch(ctx, source)
	if err != nil {
		return nil, err
	}

	items, perr := feed.ParseDocument(body, source)
	if perr == nil {
		return items, nil
	}

	if !feed.LooksLikeHTML(body) {
		return nil, perr
	}

	discovered, derr := feed.DiscoverFeedURL(source, 0)
	if derr != nil {
		return nil, perr
	}
	log.Printf("aggregate: %s is an HTML page, using discovered feed %s", source, discovered)

	body, err = a.fetcher.Fetch(ctx, discovered)
	if err != nil {
		return nil, err
	}
	return feed.ParseDocument(body, discovered)
}

// dedupeByTitle 去掉空标题条目，并按标题保留首个出现的条目。
// 幂等：对已去重的列表再执行一次结果不变。
func dedupeByTitle(items []feed.Item) []feed.Item {
	seen := make(map[string]struct{}, len(items))
	out := make([]feed.Item, 0, len(items))
	for _, it := range items {
		if it.Title == "" {
			continue
		}
		if _, ok := seen[it.Title]; ok {
			continue
		}
		seen[it.Title] = struct{}{}
		out = append(out, it)
	}
	return out
}

// sortByPublished 按发布时间倒序稳定排序，零值时间视为最旧排在最后
func sortByPublished(items []feed.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		ti, tj := items[i].Published, items[j].Published
		if ti.IsZero() {
			return false
		}
		if tj.IsZero() {
			return true
		}
		return ti.After(tj)
	})
}
