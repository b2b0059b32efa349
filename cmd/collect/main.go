package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/LJTian/TechPulse/internal/aggregator"
	"github.com/LJTian/TechPulse/internal/config"
	"github.com/LJTian/TechPulse/internal/feed"
	"github.com/LJTian/TechPulse/internal/trend"
)

// 一个仅执行一次聚合的命令行入口：把条目与趋势载荷打印到标准输出，适合手动排查订阅源
func main() {
	cfg := config.Load()

	agg := aggregator.New(cfg.Feeds, feed.NewFetcher(cfg.FetchTimeout), cfg.MaxItems)
	items := agg.Run(context.Background())
	payload := trend.BuildPayload(items, nil)

	type itemOut struct {
		Title  string `json:"title"`
		Link   string `json:"link"`
		Date   string `json:"date,omitempty"`
		Source string `json:"source"`
	}
	out := struct {
		Items  []itemOut     `json:"items"`
		Trends trend.Payload `json:"analysis"`
	}{Items: make([]itemOut, 0, len(items)), Trends: payload}

	for _, it := range items {
		o := itemOut{Title: it.Title, Link: it.Link, Source: it.Source}
		if !it.Published.IsZero() {
			o.Date = it.Published.Format(time.RFC3339)
		}
		out.Items = append(out.Items, o)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatalf("encode result: %v", err)
	}
}
