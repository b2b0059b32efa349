// Package trend 把一组带信号的条目汇总为可比较的趋势得分。
// 纯聚合：每轮对当前条目快照整体重算，不存在增量更新路径。
package trend

import (
	"time"

	"github.com/LJTian/TechPulse/internal/analyzer"
	"github.com/LJTian/TechPulse/internal/feed"
)

// 权重为固定设计决策：momentum 与 novelty 主导，credibility 与 diversity 次之
const (
	weightMomentum    = 0.35
	weightNovelty     = 0.35
	weightCredibility = 0.20
	weightDiversity   = 0.10
)

const timeseriesDays = 14

// Breakdown 是四个独立归一化到 0-100 的子分
type Breakdown struct {
	Momentum    float64 `json:"momentum"`
	Novelty     float64 `json:"novelty"`
	Credibility float64 `json:"credibility"`
	Diversity   float64 `json:"diversity"`
}

// Point 是时间序列里一个带日期标签的得分快照
type Point struct {
	Date  string  `json:"date"`
	Score float64 `json:"score"`
}

// Trend 是一个主题的完整汇总结果
type Trend struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ItemCount   int       `json:"itemCount"`
	Score       float64   `json:"score"`
	Breakdown   Breakdown `json:"breakdown"`
	Timeseries  []Point   `json:"timeseries"`
	TopSignals  []string  `json:"topSignals"`
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func normalize(v float64) float64 {
	return clamp((v - 0) / (100 - 0) * 100)
}

// nowFunc 可在测试中替换
var nowFunc = time.Now

// Compute 对属于同一趋势的条目做打分汇总。items 与 sigs 必须按下标对齐。
// history 为按日期升序的历史快照（可为 nil），用于回放时间序列。
// 空条目组的全部子分为 0，不会出现除零。
func Compute(def analyzer.TopicDef, items []feed.Item, sigs []analyzer.Signals, history []Point) Trend {
	var velocitySum, mentionsSum, noveltySum, credibilitySum float64
	sourceTypes := make(map[string]struct{})
	var anyFunding, anySupply bool

	for i, s := range sigs {
		velocitySum += s.Velocity
		mentionsSum += s.Mentions
		noveltySum += s.Novelty
		credibilitySum += s.Credibility
		sourceTypes[items[i].SourceType] = struct{}{}
		anyFunding = anyFunding || s.FundingHint
		anySupply = anySupply || s.SupplyChainHint
	}

	n := float64(len(sigs))
	avg := func(sum float64) float64 {
		if n == 0 {
			return 0
		}
		return sum / n
	}

	momentum := normalize(avg(velocitySum) + mentionsSum/5)
	noveltyScore := normalize(avg(noveltySum))
	credibilityScore := normalize(avg(credibilitySum))
	diversityScore := normalize(float64(len(sourceTypes)) * 20)

	score := clamp(weightMomentum*momentum +
		weightNovelty*noveltyScore +
		weightCredibility*credibilityScore +
		weightDiversity*diversityScore)

	topSignals := []string{}
	if anyFunding {
		topSignals = append(topSignals, "Funding Hint")
	}
	if anySupply {
		topSignals = append(topSignals, "Supply Chain Signal")
	}

	return Trend{
		Name:        def.Name,
		Description: def.Description,
		ItemCount:   len(items),
		Score:       score,
		Breakdown: Breakdown{
			Momentum:    momentum,
			Novelty:     noveltyScore,
			Credibility: credibilityScore,
			Diversity:   diversityScore,
		},
		Timeseries: buildTimeseries(score, history, nowFunc()),
		TopSignals: topSignals,
	}
}

// buildTimeseries 回放最近 timeseriesDays 天的历史快照，缺失的日期用当前得分补齐。
// 没有任何历史时序列退化为一条平线；本路径不引入任何随机合成。
func buildTimeseries(current float64, history []Point, today time.Time) []Point {
	byDate := make(map[string]float64, len(history))
	for _, p := range history {
		byDate[p.Date] = p.Score
	}

	out := make([]Point, 0, timeseriesDays)
	for i := timeseriesDays - 1; i >= 0; i-- {
		date := today.AddDate(0, 0, -i).Format("2006-01-02")
		score := current
		if s, ok := byDate[date]; ok {
			score = s
		}
		out = append(out, Point{Date: date, Score: clamp(score)})
	}
	return out
}
