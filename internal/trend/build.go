package trend

import (
	"time"

	"github.com/LJTian/TechPulse/internal/analyzer"
	"github.com/LJTian/TechPulse/internal/feed"
)

// HistoryFunc 返回某个主题按日期升序的历史得分快照，nil 表示没有历史存储
type HistoryFunc func(topic string) []Point

// Payload 是趋势接口与预热缓存共用的完整载荷
type Payload struct {
	Trends    []Trend            `json:"trends"`
	Keywords  []analyzer.Keyword `json:"keywords"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

const topKeywordCount = 12

// BuildPayload 把一轮聚合结果整体加工为趋势载荷：
// 逐条计算信号，按主题分组（未命中任何主题的条目归入兜底主题），
// 对每个主题做打分汇总，并附上全语料的关键词词频表。
func BuildPayload(items []feed.Item, history HistoryFunc) Payload {
	sigs := analyzer.BuildSignals(items)

	// 条目可以同时属于多个主题；零命中的条目收进兜底主题，保证不丢
	groups := make(map[string][]int, len(analyzer.TopicDefs)+1)
	for i, it := range items {
		topics := analyzer.ExtractTopics(it.Title + " " + it.Summary)
		if len(topics) == 0 {
			topics = []string{analyzer.FallbackTopic}
		}
		for _, topic := range topics {
			groups[topic] = append(groups[topic], i)
		}
	}

	defs := append([]analyzer.TopicDef{}, analyzer.TopicDefs...)
	if len(groups[analyzer.FallbackTopic]) > 0 {
		defs = append(defs, analyzer.TopicDef{
			Name:        analyzer.FallbackTopic,
			Description: "Items outside the tracked topics.",
		})
	}

	trends := make([]Trend, 0, len(defs))
	for _, def := range defs {
		idxs := groups[def.Name]
		groupItems := make([]feed.Item, 0, len(idxs))
		groupSigs := make([]analyzer.Signals, 0, len(idxs))
		for _, i := range idxs {
			groupItems = append(groupItems, items[i])
			groupSigs = append(groupSigs, sigs[i])
		}

		var hist []Point
		if history != nil {
			hist = history(def.Name)
		}
		trends = append(trends, Compute(def, groupItems, groupSigs, hist))
	}

	titles := make([]string, len(items))
	for i, it := range items {
		titles[i] = it.Title
	}

	return Payload{
		Trends:    trends,
		Keywords:  analyzer.TopKeywords(titles, topKeywordCount),
		UpdatedAt: nowFunc(),
	}
}
