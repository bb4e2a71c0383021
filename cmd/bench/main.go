// README: Smoke/perf runner for a deployed API; executes HTTP checks and prints results.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"
)

func main() {
	cfg := loadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	bench := NewRunner(cfg)
	results := bench.RunAll(ctx)

	fmt.Println("\n== Summary ==")
	pass, fail, skipped := 0, 0, 0
	for _, r := range results {
		switch r.Status {
		case "PASS":
			pass++
		case "FAIL":
			fail++
		case "SKIP":
			skipped++
		}
	}
	fmt.Printf("PASS=%d FAIL=%d SKIP=%d\n", pass, fail, skipped)

	if fail > 0 {
		os.Exit(1)
	}
}

type Config struct {
	BaseURL     string
	Address     string
	Timeout     time.Duration
	Concurrency int
	Duration    time.Duration
	Perf        bool
}

func loadConfig() Config {
	var cfg Config
	flag.StringVar(&cfg.BaseURL, "base-url", envOrDefault("PARLOR_BENCH_BASE_URL", "http://localhost:8000"), "API base URL")
	flag.StringVar(&cfg.Address, "address", envOrDefault("PARLOR_BENCH_ADDRESS", "Boston, MA"), "Search address used by the recommendation checks")
	flag.DurationVar(&cfg.Timeout, "timeout", envOrDefaultDuration("PARLOR_BENCH_TIMEOUT", 60*time.Second), "Total timeout")
	flag.IntVar(&cfg.Concurrency, "concurrency", envOrDefaultInt("PARLOR_BENCH_CONCURRENCY", 20), "Concurrency for perf checks")
	flag.DurationVar(&cfg.Duration, "duration", envOrDefaultDuration("PARLOR_BENCH_DURATION", 10*time.Second), "Duration for perf checks")
	flag.BoolVar(&cfg.Perf, "perf", envOrDefaultBool("PARLOR_BENCH_PERF", false), "Run the sustained-load check (hits the live provider quota)")
	flag.Parse()
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return cfg
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		v = strings.ToLower(v)
		return v == "1" || v == "true" || v == "yes"
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var n int
		_, _ = fmt.Sscanf(v, "%d", &n)
		if n > 0 {
			return n
		}
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
