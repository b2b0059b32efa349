package aggregator

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/LJTian/TechPulse/internal/feed"
)

func rssDoc(titles ...string) string {
	body := `<?xml version="1.0"?><rss version="2.0"><channel><title>t</title>`
	for i, title := range titles {
		body += fmt.Sprintf(
			`<item><title>%s</title><link>https://e.com/%d</link><pubDate>Mon, 0%d Jun 2025 10:00:00 +0000</pubDate></item>`,
			title, i, i+1)
	}
	return body + `</channel></rss>`
}

func feedServer(t *testing.T, doc string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(doc))
	}))
}

func TestRunMergesAndIsolatesMalformedSource(t *testing.T) {
	good1 := feedServer(t, rssDoc("AI chip surge", "Robot launch"))
	defer good1.Close()
	good2 := feedServer(t, rssDoc("Battery breakthrough"))
	defer good2.Close()
	bad := feedServer(t, "{{{ definitely not xml")
	defer bad.Close()

	a := New([]string{good1.URL, good2.URL, bad.URL}, feed.NewFetcher(5*time.Second), 0)
	items := a.Run(context.Background())

	if len(items) != 3 {
		t.Fatalf("expected 3 items from the two valid sources, got %d", len(items))
	}
	for _, it := range items {
		if it.Title == "" {
			t.Fatalf("empty title leaked into aggregated result")
		}
	}
}

func TestRunAllSourcesFailReturnsEmptyNotError(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer failing.Close()

	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	dead.Close() // 连接拒绝

	a := New([]string{failing.URL, dead.URL}, feed.NewFetcher(time.Second), 0)
	items := a.Run(context.Background())

	if items == nil {
		t.Fatal("Run should return empty slice, not nil")
	}
	if len(items) != 0 {
		t.Fatalf("expected 0 items, got %d", len(items))
	}
}

func TestRunNoSourcesConfigured(t *testing.T) {
	a := New(nil, feed.NewFetcher(time.Second), 0)
	items := a.Run(context.Background())
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty result for empty config, got %v", items)
	}
}

func TestDedupeByTitleFirstWinsAndIdempotent(t *testing.T) {
	items := []feed.Item{
		{Title: "AI chip surge", Source: "a.example"},
		{Title: "AI chip surge", Source: "b.example"},
		{Title: "Robot launch", Source: "b.example"},
		{Title: "", Source: "b.example"},
	}

	once := dedupeByTitle(items)
	if len(once) != 2 {
		t.Fatalf("expected 2 items after dedupe, got %d", len(once))
	}
	if once[0].Title != "AI chip surge" || once[0].Source != "a.example" {
		t.Fatalf("first occurrence should win: %+v", once[0])
	}
	if once[1].Title != "Robot launch" {
		t.Fatalf("unexpected second item: %+v", once[1])
	}

	twice := dedupeByTitle(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("dedupe should be idempotent: %v vs %v", once, twice)
	}
}

func TestSortByPublishedStableWithZeroTimesLast(t *testing.T) {
	ts := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	items := []feed.Item{
		{Title: "no date A"},
		{Title: "same ts 1", Published: ts},
		{Title: "older", Published: ts.Add(-time.Hour)},
		{Title: "same ts 2", Published: ts},
		{Title: "no date B"},
		{Title: "newest", Published: ts.Add(time.Hour)},
	}

	sortByPublished(items)

	wantOrder := []string{"newest", "same ts 1", "same ts 2", "older", "no date A", "no date B"}
	for i, w := range wantOrder {
		if items[i].Title != w {
			t.Fatalf("position %d = %q, want %q (full: %v)", i, items[i].Title, w, titles(items))
		}
	}
}

func TestRunAppliesMaxItems(t *testing.T) {
	srv := feedServer(t, rssDoc("one", "two", "three", "four"))
	defer srv.Close()

	a := New([]string{srv.URL}, feed.NewFetcher(5*time.Second), 2)
	items := a.Run(context.Background())
	if len(items) != 2 {
		t.Fatalf("expected cap at 2 items, got %d", len(items))
	}
}

func titles(items []feed.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Title
	}
	return out
}
