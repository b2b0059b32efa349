package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string

	// Feeds 为空时不视为错误：聚合结果退化为空列表
	Feeds        []string
	FetchTimeout time.Duration
	MaxItems     int

	// PostgresDSN / RedisAddr 均可为空：为空时关闭对应的快照 / 缓存能力
	PostgresDSN string
	RedisAddr   string

	CronSpec string
}

func Load() *Config {
	// .env 仅本地开发使用，不存在时静默忽略
	_ = godotenv.Load()

	cfg := &Config{
		AppPort:      getEnv("APP_PORT", "9000"),
		Feeds:        splitFeeds(getEnv("FEEDS", "")),
		FetchTimeout: time.Duration(getEnvInt("FETCH_TIMEOUT_SECONDS", 10)) * time.Second,
		MaxItems:     getEnvInt("MAX_ITEMS", 100),
		PostgresDSN:  getEnv("POSTGRES_DSN", ""),
		RedisAddr:    getEnv("REDIS_ADDR", ""),
		CronSpec:     getEnv("CRON_SPEC", "*/30 * * * *"),
	}

	log.Printf("config loaded: port=%s feeds=%d cron=%s", cfg.AppPort, len(cfg.Feeds), cfg.CronSpec)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		log.Printf("config: invalid %s=%q, using default %d", key, v, def)
		return def
	}
	return n
}

// splitFeeds 解析逗号分隔的订阅源列表，丢弃空白项
func splitFeeds(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Now 返回当前时间，方便后续做可测试封装
func Now() time.Time {
	return time.Now()
}
