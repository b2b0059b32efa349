package analyzer

import (
	"time"

	"github.com/LJTian/TechPulse/internal/feed"
)

// Signals 是单个条目的打分输入，数值量纲统一为 0-100
type Signals struct {
	Velocity    float64
	Mentions    float64
	Novelty     float64
	Credibility float64

	FundingHint     bool
	SupplyChainHint bool
}

// sourceCredibility 按来源类型给出基准可信度，未知来源取 60
var sourceCredibility = map[string]float64{
	"News":    85,
	"HN":      80,
	"YouTube": 65,
	"Reddit":  55,
	"X":       50,
}

// nowFunc 可在测试中替换，避免基于时间的信号不可复现
var nowFunc = time.Now

// BuildSignals 为整个语料计算逐条信号，返回与 items 对齐的切片。
// 所有信号都是条目文本、来源类型与语料的确定性函数：
//   - velocity：按条目年龄分桶（越新越高）；
//   - novelty：标题中全语料只出现一次的 token 占比；
//   - mentions：与本条标题至少共享一个 token 的语料条目数（含自身）；
//   - credibility：按来源类型查表。
func BuildSignals(items []feed.Item) []Signals {
	// 先统计全语料 token 频次，novelty 与 mentions 共用
	counts := make(map[string]int)
	itemTokens := make([][]string, len(items))
	for i, it := range items {
		toks := keywordTokens(it.Title)
		itemTokens[i] = toks
		seen := make(map[string]struct{}, len(toks))
		for _, t := range toks {
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			counts[t]++
		}
	}

	now := nowFunc()
	out := make([]Signals, len(items))
	for i, it := range items {
		text := it.Title + " " + it.Summary
		funding, supply := ExtractHints(text)

		out[i] = Signals{
			Velocity:        velocityByAge(it.Published, now),
			Mentions:        float64(mentionCount(itemTokens[i], counts)),
			Novelty:         noveltyByRarity(itemTokens[i], counts),
			Credibility:     credibilityOf(it.SourceType),
			FundingHint:     funding,
			SupplyChainHint: supply,
		}
	}
	return out
}

func credibilityOf(sourceType string) float64 {
	if c, ok := sourceCredibility[sourceType]; ok {
		return c
	}
	return 60
}

// velocityByAge 用发布时间距今的间隔粗略刻画传播速度，没有时间戳的条目按最慢处理
func velocityByAge(published, now time.Time) float64 {
	if published.IsZero() {
		return 30
	}
	age := now.Sub(published)
	switch {
	case age < 24*time.Hour:
		return 90
	case age < 72*time.Hour:
		return 70
	case age < 7*24*time.Hour:
		return 50
	default:
		return 30
	}
}

// noveltyByRarity 以“全语料只出现一次的 token 占比”衡量新颖度，映射到 30-95
func noveltyByRarity(tokens []string, counts map[string]int) float64 {
	if len(tokens) == 0 {
		return 30
	}
	rare := 0
	for _, t := range tokens {
		if counts[t] == 1 {
			rare++
		}
	}
	return 30 + 65*float64(rare)/float64(len(tokens))
}

// mentionCount 统计与给定标题共享 token 的条目数：出现频次最高的共享 token 的条目覆盖数
func mentionCount(tokens []string, counts map[string]int) int {
	max := 0
	for _, t := range tokens {
		if counts[t] > max {
			max = counts[t]
		}
	}
	if max == 0 {
		return 1 // 空标题条目至少算提及自身一次
	}
	return max
}
