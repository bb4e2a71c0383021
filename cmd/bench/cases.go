// README: Smoke test cases for the recommendation API; includes endpoint and performance checks.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name string
	Run  func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 15 * time.Second},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	tests := r.cases()
	results := make([]Result, 0, len(tests))

	for _, tc := range tests {
		res := tc.Run(ctx, r)
		res.Name = tc.Name
		results = append(results, res)
		fmt.Printf("%-7s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	return results
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	return []TestCase{
		{
			Name: "API: health",
			Run: func(ctx context.Context, r *Runner) Result {
				start := time.Now()
				status, body, err := r.get(ctx, base+"/health")
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if status != http.StatusOK || !bytes.Contains(body, []byte("healthy")) {
					return Result{Status: "FAIL", Note: fmt.Sprintf("status=%d body=%s", status, truncate(body))}
				}
				return Result{Status: "PASS", Latency: time.Since(start)}
			},
		},
		{
			Name: "API: root metadata",
			Run: func(ctx context.Context, r *Runner) Result {
				start := time.Now()
				status, body, err := r.get(ctx, base+"/")
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if status != http.StatusOK || !bytes.Contains(body, []byte("version")) {
					return Result{Status: "FAIL", Note: fmt.Sprintf("status=%d", status)}
				}
				return Result{Status: "PASS", Latency: time.Since(start)}
			},
		},
		{
			Name: "API: autocomplete",
			Run: func(ctx context.Context, r *Runner) Result {
				start := time.Now()
				status, body, err := r.get(ctx, base+"/api/places/autocomplete?input=pizza")
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if status != http.StatusOK {
					return Result{Status: "FAIL", Note: fmt.Sprintf("status=%d", status)}
				}
				var predictions []map[string]any
				if err := json.Unmarshal(body, &predictions); err != nil {
					return Result{Status: "FAIL", Note: "not a JSON list: " + err.Error()}
				}
				return Result{Status: "PASS", Latency: time.Since(start), Note: fmt.Sprintf("predictions=%d", len(predictions))}
			},
		},
		{
			Name: "API: geocode",
			Run: func(ctx context.Context, r *Runner) Result {
				start := time.Now()
				status, body, err := r.post(ctx, base+"/api/geocode", map[string]any{"address": r.cfg.Address})
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if status != http.StatusOK {
					return Result{Status: "FAIL", Note: fmt.Sprintf("status=%d body=%s", status, truncate(body))}
				}
				var coords struct {
					Latitude  float64 `json:"latitude"`
					Longitude float64 `json:"longitude"`
				}
				if err := json.Unmarshal(body, &coords); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				return Result{Status: "PASS", Latency: time.Since(start), Note: fmt.Sprintf("%.4f,%.4f", coords.Latitude, coords.Longitude)}
			},
		},
		{
			Name: "API: recommendations (address search)",
			Run: func(ctx context.Context, r *Runner) Result {
				start := time.Now()
				status, body, err := r.post(ctx, base+"/api/pizza-recommendations", map[string]any{
					"address": r.cfg.Address,
				})
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if status != http.StatusOK {
					return Result{Status: "FAIL", Note: fmt.Sprintf("status=%d body=%s", status, truncate(body))}
				}
				var page []map[string]any
				if err := json.Unmarshal(body, &page); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if len(page) > 3 {
					return Result{Status: "FAIL", Note: fmt.Sprintf("page size %d exceeds 3", len(page))}
				}
				return Result{Status: "PASS", Latency: time.Since(start), Note: fmt.Sprintf("restaurants=%d", len(page))}
			},
		},
		{
			Name: "API: recommendations reject empty request",
			Run: func(ctx context.Context, r *Runner) Result {
				start := time.Now()
				status, _, err := r.post(ctx, base+"/api/pizza-recommendations", map[string]any{})
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if status != http.StatusBadRequest {
					return Result{Status: "FAIL", Note: fmt.Sprintf("want 400, got %d", status)}
				}
				return Result{Status: "PASS", Latency: time.Since(start)}
			},
		},
		{
			Name: "Perf: sustained recommendation load",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.Perf {
					return Result{Status: "SKIP", Note: "perf=false"}
				}
				return r.runPerf(ctx)
			},
		},
	}
}

// runPerf fires concurrent recommendation requests for the configured duration
// and reports throughput plus error count.
func (r *Runner) runPerf(ctx context.Context) Result {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.Duration)
	defer cancel()

	var total, failed atomic.Int64
	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ctx.Err() == nil {
				status, _, err := r.post(ctx, r.cfg.BaseURL+"/api/pizza-recommendations", map[string]any{
					"address": r.cfg.Address,
				})
				if ctx.Err() != nil {
					return
				}
				total.Add(1)
				if err != nil || status != http.StatusOK {
					failed.Add(1)
				}
			}
		}()
	}
	wg.Wait()

	elapsed := time.Since(start)
	n := total.Load()
	f := failed.Load()
	note := fmt.Sprintf("requests=%d errors=%d rps=%.1f", n, f, float64(n)/elapsed.Seconds())
	if n == 0 || f > n/10 {
		return Result{Status: "FAIL", Latency: elapsed, Note: note}
	}
	return Result{Status: "PASS", Latency: elapsed, Note: note}
}

func (r *Runner) get(ctx context.Context, url string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, err
	}
	return r.do(req)
}

func (r *Runner) post(ctx context.Context, url string, body any) (int, []byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return r.do(req)
}

func (r *Runner) do(req *http.Request) (int, []byte, error) {
	resp, err := r.httpc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, body, nil
}

func truncate(b []byte) string {
	const max = 120
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}
