// Command domain-updater runs one disposable-domain refresh and exits. It is
// meant for cron or one-off maintenance; the server exposes the same job at
// POST /admin/refresh.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/okorotenko/email-risk/internal/cache"
	"github.com/okorotenko/email-risk/internal/lock"
	"github.com/okorotenko/email-risk/internal/logger"
	"github.com/okorotenko/email-risk/internal/storage"
	"github.com/okorotenko/email-risk/internal/updater"
)

const lockTTL = 10 * time.Minute

func main() {
	redisNodes := flag.String("redis", "", "Redis nodes (comma-separated, format: host:port)")
	redisPass := flag.String("redis-pass", "", "Redis password")
	redisDB := flag.Int("redis-db", 0, "Redis database number")
	timeout := flag.Duration("timeout", 15*time.Minute, "Overall run timeout")
	verbose := flag.Bool("verbose", false, "Verbose logging")
	flag.Parse()

	logger.Init(*verbose)

	var redisClient redis.UniversalClient
	var store storage.DomainStore

	if *redisNodes != "" {
		nodes := strings.Split(*redisNodes, ",")
		if len(nodes) > 1 {
			redisClient = redis.NewClusterClient(&redis.ClusterOptions{
				Addrs:    nodes,
				Password: *redisPass,
			})
		} else {
			redisClient = redis.NewClient(&redis.Options{
				Addr:     nodes[0],
				Password: *redisPass,
				DB:       *redisDB,
			})
		}
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("Redis connection failed: %v", err)
		}
		store = storage.NewRedisStore(redisClient)
	} else {
		// Without Redis the refresh only populates process-local memory,
		// which is useful for a dry run but not much else.
		logger.Log("No Redis configured, writing to in-memory storage")
		store = storage.NewMemoryStore(cache.NewInMemoryCache())
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	refresh := lock.New(redisClient, "email-risk:refresh-lock", lockTTL)
	if !refresh.Acquire(ctx) {
		log.Fatal("Another refresh is already in progress")
	}
	defer refresh.Release(ctx)

	result, err := updater.New(store).Run(ctx)
	if err != nil {
		log.Fatalf("Refresh failed: %v", err)
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(jsonData))
}
