package feed

import (
	"fmt"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
)

// DiscoverFeedURL 在配置的源返回 HTML 页面而非 XML 时使用：
// 解析页面头部声明的 <link rel="alternate" type="application/rss+xml|atom+xml">，
// 返回第一个可用的订阅地址。页面结构各站不一，这里只做尽力而为的探测。
func DiscoverFeedURL(pageURL string, timeout time.Duration) (string, error) {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := colly.NewCollector(
		colly.UserAgent(userAgent),
	)
	c.SetRequestTimeout(timeout)

	var found string
	c.OnHTML("link[rel='alternate']", func(e *colly.HTMLElement) {
		if found != "" {
			return
		}
		typ := strings.ToLower(e.Attr("type"))
		if !strings.Contains(typ, "rss") && !strings.Contains(typ, "atom") {
			return
		}
		href := strings.TrimSpace(e.Attr("href"))
		if href == "" {
			return
		}
		found = e.Request.AbsoluteURL(href)
	})

	if err := c.Visit(pageURL); err != nil {
		return "", fmt.Errorf("discover feed for %s: %w", pageURL, err)
	}
	if found == "" {
		return "", fmt.Errorf("discover feed for %s: no alternate link declared", pageURL)
	}
	return found, nil
}

// LooksLikeHTML 粗判文档是否为 HTML 页面，用于决定是否值得尝试 feed 自动发现
func LooksLikeHTML(text string) bool {
	head := strings.ToLower(text)
	if len(head) > 512 {
		head = head[:512]
	}
	return strings.Contains(head, "<html") || strings.Contains(head, "<!doctype html")
}
