package feed

import (
	"net/url"
	"strings"
	"time"
)

// Item 是所有订阅源统一归一化后的条目结构
type Item struct {
	Title   string
	Link    string
	Summary string
	// Source 为订阅源主机名（或声明的源名称），仅用于展示与归因
	Source string
	// SourceType 为粗粒度的来源分类（News / HN / Reddit / YouTube / X），用于可信度与多样性计算
	SourceType string
	// Published 为零值时表示原始条目未携带可解析的发布时间
	Published time.Time
}

// SourceLabel 从订阅源 URL 提取主机名作为来源标签；解析失败时退回给定的兜底值
func SourceLabel(rawURL, fallback string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		if fallback != "" {
			return fallback
		}
		return rawURL
	}
	return strings.TrimPrefix(u.Host, "www.")
}

// ClassifySourceType 按主机名猜测来源类型，未知来源一律按 News 处理
func ClassifySourceType(host string) string {
	h := strings.ToLower(host)
	switch {
	case strings.Contains(h, "ycombinator") || strings.Contains(h, "hnrss"):
		return "HN"
	case strings.Contains(h, "reddit"):
		return "Reddit"
	case strings.Contains(h, "youtube"):
		return "YouTube"
	case strings.Contains(h, "twitter") || strings.Contains(h, "x.com") || strings.Contains(h, "nitter"):
		return "X"
	default:
		return "News"
	}
}
