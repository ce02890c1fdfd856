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
	"github.com/spf13/viper"

	"github.com/okorotenko/email-risk/internal/analytics"
	"github.com/okorotenko/email-risk/internal/cache"
	"github.com/okorotenko/email-risk/internal/disposable"
	"github.com/okorotenko/email-risk/internal/dnscheck"
	"github.com/okorotenko/email-risk/internal/engine"
	"github.com/okorotenko/email-risk/internal/lock"
	"github.com/okorotenko/email-risk/internal/logger"
	"github.com/okorotenko/email-risk/internal/registrar"
	"github.com/okorotenko/email-risk/internal/server"
	"github.com/okorotenko/email-risk/internal/smtpcheck"
	"github.com/okorotenko/email-risk/internal/storage"
	"github.com/okorotenko/email-risk/internal/updater"
)

// Application version information
var (
	Version    string = "0.1.0" // Current application version
	CommitHash string = ""      // Git commit hash from build
)

const refreshLockTTL = 10 * time.Minute

// Displays version information from build
func printVersion() {
	fmt.Printf("email-risk version: %s\n", Version)
	if CommitHash != "" {
		fmt.Printf("commit hash: %s\n", CommitHash)
	}
}

// Main entry point with dual operational modes: CLI and Server
func main() {
	// Command-line flag configurations
	dnsServer := flag.String("dns", "1.1.1.1", "DNS server IP address")
	emails := flag.String("emails", "", "Comma-separated email addresses")
	strictMode := flag.Bool("strict", false, "Use strict risk thresholds")
	redisNodes := flag.String("redis", "", "Redis nodes (comma-separated, format: host:port)")
	redisPass := flag.String("redis-pass", "", "Redis password")
	redisDB := flag.Int("redis-db", 0, "Redis database number")
	adminKey := flag.String("admin-key", "", "Admin API key for /admin routes")
	serverPort := flag.String("port", "8080", "Server port")
	serverMode := flag.Bool("server", false, "Run in server mode")
	version := flag.Bool("version", false, "Show version")
	pgHost := flag.String("pg-host", "", "PostgreSQL host for analytics (empty disables)")
	pgPort := flag.Int("pg-port", 5432, "PostgreSQL port")
	pgUser := flag.String("pg-user", "postgres", "PostgreSQL user")
	pgPass := flag.String("pg-password", "", "PostgreSQL password")
	pgDB := flag.String("pg-db", "email_risk", "PostgreSQL database")
	pgSSL := flag.String("pg-ssl", "disable", "PostgreSQL sslmode")
	flag.Parse()

	// Mirror flags into viper so middleware and storage read one source
	viper.Set("admin-key", *adminKey)
	viper.Set("pg-host", *pgHost)
	viper.Set("pg-port", *pgPort)
	viper.Set("pg-user", *pgUser)
	viper.Set("pg-password", *pgPass)
	viper.Set("pg-db", *pgDB)
	viper.Set("pg-ssl", *pgSSL)

	// Handle version display request
	if *version {
		printVersion()
		return
	}

	// Start server mode if requested
	if *serverMode {
		startServerMode(*serverPort, *dnsServer, *redisNodes, *redisPass, *redisDB)
		return
	}

	// CLI mode validations
	if *emails == "" {
		printVersion()
		log.Fatal("Please specify emails using --emails flag")
	}

	// CLI mode execution with in-memory disposable storage
	logger.Init(false)
	eng := buildEngine(*dnsServer, storage.NewMemoryStore(cache.NewInMemoryCache()), nil)

	var reports []interface{}
	for _, email := range strings.Split(*emails, ",") {
		report, err := eng.Validate(context.Background(), strings.TrimSpace(email), nil, *strictMode)
		if err != nil {
			reports = append(reports, map[string]string{"email": email, "error": err.Error()})
			continue
		}
		reports = append(reports, report)
	}

	// Output results as formatted JSON
	jsonData, _ := json.MarshalIndent(reports, "", "  ")
	fmt.Println(string(jsonData))
}

// buildEngine wires the probe set into an Engine instance
func buildEngine(dns string, store storage.DomainStore, recorder engine.Recorder) *engine.Engine {
	resolver := dnscheck.NewResolver(dns)
	return engine.New(
		disposable.NewChecker(store),
		dnscheck.NewProber(resolver),
		smtpcheck.NewProber(resolver),
		registrar.NewProber(),
		recorder,
	)
}

// Configures and starts server mode with Redis and Postgres integration
func startServerMode(port, dns, redisNodes, redisPass string, redisDB int) {
	logger.Init(true)
	var redisClient redis.UniversalClient
	var store storage.DomainStore

	// Redis configuration logic
	if redisNodes != "" {
		nodes := strings.Split(redisNodes, ",")

		// Initialize Redis client based on cluster configuration
		if len(nodes) > 1 {
			redisClient = redis.NewClusterClient(&redis.ClusterOptions{
				Addrs:    nodes,
				Password: redisPass,
			})
		} else {
			redisClient = redis.NewClient(&redis.Options{
				Addr:     nodes[0],
				Password: redisPass,
				DB:       redisDB,
			})
		}

		// Verify Redis connection
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("Redis connection failed: %v", err)
		}

		store = storage.NewRedisStore(redisClient)
		logger.Logf("Using Redis domain storage: %v", nodes)
	} else {
		// Fallback to in-memory storage
		store = storage.NewMemoryStore(cache.NewInMemoryCache())
		logger.Log("Using in-memory domain storage")
	}

	// Optional Postgres-backed analytics
	var recorder *analytics.Recorder
	var reporter *analytics.Reporter
	if viper.GetString("pg-host") != "" {
		db, err := storage.InitPostgres(viper.GetViper())
		if err != nil {
			log.Fatalf("PostgreSQL connection failed: %v", err)
		}
		recorder = analytics.NewRecorder(db)
		reporter = analytics.NewReporter(db)
		logger.Log("Analytics storage enabled")
	}

	eng := buildEngine(dns, store, recorderOrNil(recorder))
	upd := updater.New(store)
	refresh := lock.New(redisClient, "email-risk:refresh-lock", refreshLockTTL)

	srv := server.NewServer(eng, reporter, upd, refresh, port)
	logger.Logf("Starting server on port %s | DNS: %s | Redis: %v | Analytics: %v",
		port, dns, redisNodes != "", reporter != nil)

	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// recorderOrNil keeps a typed nil pointer from leaking into the interface
func recorderOrNil(r *analytics.Recorder) engine.Recorder {
	if r == nil {
		return nil
	}
	return r
}
