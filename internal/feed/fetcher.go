package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	userAgent        = "TechPulseBot/1.0"
	maxResponseBytes = 2 << 20 // 2MB
)

// FetchError 表示单个订阅源的抓取失败：网络错误、超时或非 2xx 状态码。
// 调用方负责隔离失败，不做内部重试。
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Fetcher 负责抓取单个订阅源的原始文档，单次调用只发出一个出站请求
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Fetcher{
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

// Fetch 拉取一个订阅源的原始文本。超时与网络错误同样以 *FetchError 返回，
// 由上层决定如何隔离；这里不会影响其它源的抓取。
func (f *Fetcher) Fetch(ctx context.Context, feedURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return "", &FetchError{URL: feedURL, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &FetchError{URL: feedURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &FetchError{URL: feedURL, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", &FetchError{URL: feedURL, Err: err}
	}
	return string(body), nil
}
