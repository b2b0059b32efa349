package main

import (
	"log"

	"github.com/LJTian/TechPulse/internal/aggregator"
	"github.com/LJTian/TechPulse/internal/api"
	"github.com/LJTian/TechPulse/internal/config"
	"github.com/LJTian/TechPulse/internal/feed"
	"github.com/LJTian/TechPulse/internal/scheduler"
	"github.com/LJTian/TechPulse/internal/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	store, err := storage.NewStore(cfg.PostgresDSN, cfg.RedisAddr)
	if err != nil {
		log.Fatalf("init store failed: %v", err)
	}
	if len(cfg.Feeds) == 0 {
		log.Println("warn: no feeds configured, /aggregate will return an empty list")
	}

	agg := aggregator.New(cfg.Feeds, feed.NewFetcher(cfg.FetchTimeout), cfg.MaxItems)

	s, err := scheduler.New(cfg.CronSpec, agg, store)
	if err != nil {
		log.Fatalf("init scheduler failed: %v", err)
	}
	s.Start()

	// API
	r := gin.Default()
	// 展示层部署在不同源上，聚合接口需要放开跨域
	r.Use(cors.Default())

	apiServer := api.NewServer(agg, store)
	apiServer.RegisterRoutes(r)

	addr := ":" + cfg.AppPort
	log.Printf("starting api server at %s ...", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server exit: %v", err)
	}
}
