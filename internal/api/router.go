package api

import (
	"context"
	"net/http"
	"time"

	"github.com/LJTian/TechPulse/internal/analyzer"
	"github.com/LJTian/TechPulse/internal/feed"
	"github.com/LJTian/TechPulse/internal/storage"
	"github.com/LJTian/TechPulse/internal/trend"
	"github.com/gin-gonic/gin"
)

// Pipeline 抽象一轮完整的抓取-解析-合并流程，方便在测试中替换
type Pipeline interface {
	Run(ctx context.Context) []feed.Item
}

// TrendsCacheKey 是预热任务与趋势接口共用的缓存键
const (
	TrendsCacheKey = "techpulse:trends"
	trendsCacheTTL = 5 * time.Minute
)

type Server struct {
	pipeline Pipeline
	store    *storage.Store
}

func NewServer(pipeline Pipeline, store *storage.Store) *Server {
	return &Server{pipeline: pipeline, store: store}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.health)

	// /aggregate 是展示层消费的最小契约：items 数组，CORS 由全局中间件放开
	r.GET("/aggregate", s.aggregate)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/trends", s.trends)
		v1.GET("/keywords", s.keywords)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type itemResponse struct {
	Title  string `json:"title"`
	Link   string `json:"link"`
	Date   string `json:"date,omitempty"`
	Source string `json:"source"`
}

// aggregate 每次请求都做一轮全新聚合；零配置源时返回空 items，不返回错误状态
func (s *Server) aggregate(c *gin.Context) {
	items := s.pipeline.Run(c.Request.Context())

	out := make([]itemResponse, 0, len(items))
	for _, it := range items {
		resp := itemResponse{
			Title:  it.Title,
			Link:   it.Link,
			Source: it.Source,
		}
		if !it.Published.IsZero() {
			resp.Date = it.Published.Format(time.RFC3339)
		}
		out = append(out, resp)
	}

	c.JSON(http.StatusOK, gin.H{"items": out})
}

// trends 优先读预热缓存，未命中时现算并回写
func (s *Server) trends(c *gin.Context) {
	ctx := c.Request.Context()

	var payload trend.Payload
	if s.store.CacheGet(ctx, TrendsCacheKey, &payload) {
		c.JSON(http.StatusOK, gin.H{"code": "ok", "message": "success", "data": payload})
		return
	}

	items := s.pipeline.Run(ctx)
	payload = trend.BuildPayload(items, s.historyFunc())
	s.store.CacheSet(ctx, TrendsCacheKey, payload, trendsCacheTTL)

	c.JSON(http.StatusOK, gin.H{"code": "ok", "message": "success", "data": payload})
}

func (s *Server) keywords(c *gin.Context) {
	items := s.pipeline.Run(c.Request.Context())

	titles := make([]string, len(items))
	for i, it := range items {
		titles[i] = it.Title
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    analyzer.TopKeywords(titles, 20),
	})
}

func (s *Server) historyFunc() trend.HistoryFunc {
	return func(topic string) []trend.Point {
		return s.store.History(topic, 14)
	}
}
