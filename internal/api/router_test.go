package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/LJTian/TechPulse/internal/feed"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
)

type fakePipeline struct {
	items []feed.Item
}

func (f *fakePipeline) Run(ctx context.Context) []feed.Item {
	return f.items
}

func newTestRouter(p Pipeline) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(cors.Default())
	NewServer(p, nil).RegisterRoutes(r)
	return r
}

func TestAggregateReturnsItemsWithCORS(t *testing.T) {
	published := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	p := &fakePipeline{items: []feed.Item{
		{Title: "AI chip surge", Link: "https://e.com/1", Source: "e.com", Published: published},
		{Title: "Robot launch", Link: "https://e.com/2", Source: "e.com"},
	}}
	r := newTestRouter(p)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/aggregate", nil)
	req.Header.Set("Origin", "https://dashboard.example")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	// 跨域消费方必须能拿到放行头
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	var res struct {
		Items []struct {
			Title  string `json:"title"`
			Link   string `json:"link"`
			Date   string `json:"date"`
			Source string `json:"source"`
		} `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	assert.Equal(t, 2, len(res.Items))
	assert.Equal(t, "AI chip surge", res.Items[0].Title)
	assert.Equal(t, "2025-06-02T10:00:00Z", res.Items[0].Date)
	// 无时间戳的条目省略 date 字段
	assert.Equal(t, "", res.Items[1].Date)
}

func TestAggregateEmptyPipelineReturnsEmptyArray(t *testing.T) {
	r := newTestRouter(&fakePipeline{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/aggregate", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	// 契约要求空数组而不是 null
	if !strings.Contains(w.Body.String(), `"items":[]`) {
		t.Fatalf("expected empty items array, got %s", w.Body.String())
	}
}

func TestTrendsEnvelope(t *testing.T) {
	p := &fakePipeline{items: []feed.Item{
		{Title: "New humanoid robot ships", Source: "e.com", SourceType: "News", Published: time.Now()},
	}}
	r := newTestRouter(p)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/trends", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Data    struct {
			Trends []struct {
				Name  string  `json:"name"`
				Score float64 `json:"score"`
			} `json:"trends"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	assert.Equal(t, "ok", res.Code)
	if len(res.Data.Trends) == 0 {
		t.Fatal("expected trends in payload")
	}
	for _, tr := range res.Data.Trends {
		if tr.Score < 0 || tr.Score > 100 {
			t.Fatalf("trend %s score %v out of [0,100]", tr.Name, tr.Score)
		}
	}
}

func TestKeywordsEndpoint(t *testing.T) {
	p := &fakePipeline{items: []feed.Item{
		{Title: "Nvidia raised funding"},
		{Title: "Nvidia chip fab deal"},
	}}
	r := newTestRouter(p)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/keywords", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Data []struct {
			Term  string `json:"term"`
			Count int    `json:"count"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(res.Data) == 0 || res.Data[0].Term != "nvidia" || res.Data[0].Count != 2 {
		t.Fatalf("unexpected keyword data: %+v", res.Data)
	}
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&fakePipeline{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, strings.Contains(w.Body.String(), "ok"))
}
