package feed

import (
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"
)

// ParseError 表示整个文档无法解析出任何条目（文档级失败）。
// 上层把它与抓取失败同样处理：该源本轮贡献 0 条。
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseDocument 把一份 RSS/Atom 原始文本解析为归一化条目，格式由 gofeed 自动探测。
// 解析策略：
//   - title/link 去除首尾空白，CDATA 由解析器处理；
//   - 发布时间优先 published/pubDate，缺失时退回 updated，都没有则保留零值；
//   - 缺 title 的条目保留空 title，由聚合层统一过滤（单一策略，见 Aggregator.Run）；
//   - 单条残缺不影响同文档其余条目。
//
// 纯函数：不做任何网络或文件访问。
func ParseDocument(text, sourceURL string) ([]Item, error) {
	parsed, err := gofeed.NewParser().ParseString(text)
	if err != nil {
		return nil, &ParseError{URL: sourceURL, Err: err}
	}

	label := SourceLabel(sourceURL, strings.TrimSpace(parsed.Title))
	srcType := ClassifySourceType(label)

	items := make([]Item, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		item := Item{
			Title:      strings.TrimSpace(it.Title),
			Link:       strings.TrimSpace(it.Link),
			Summary:    strings.TrimSpace(it.Description),
			Source:     label,
			SourceType: srcType,
		}
		if it.PublishedParsed != nil {
			item.Published = *it.PublishedParsed
		} else if it.UpdatedParsed != nil {
			item.Published = *it.UpdatedParsed
		}
		items = append(items, item)
	}
	return items, nil
}
