// Load generator for a locally running server: each worker uploads
// synthetic exports into its own session and reads the results back.
package main

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

const (
	baseURL      = "http://127.0.0.1:8090"
	numWorkers   = 20
	testDuration = 10 * time.Second
	maxRows      = 2000
	numChannels  = 40
)

var httpClient = &http.Client{
	Timeout: 10 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 100,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

// worker owns one session so reads always hit the table it uploaded.
type worker struct {
	session  string
	uploaded bool
}

func main() {
	fmt.Println("=== ExportLens Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s | Rows per file: up to %d\n\n", numWorkers, testDuration, maxRows)

	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	fmt.Println("\n--- Phase 1: Uploads (POST /upload) ---")
	runPhase(testDuration, func(w *worker, rng *rand.Rand) result {
		return w.upload(rng)
	})

	fmt.Println("\n--- Phase 2: Mixed load (20% upload, 80% read) ---")
	runPhase(testDuration, func(w *worker, rng *rand.Rand) result {
		if !w.uploaded || rng.Float64() < 0.20 {
			return w.upload(rng)
		}
		return w.read(rng)
	})
}

func runPhase(duration time.Duration, workFn func(w *worker, rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			w := &worker{session: uuid.NewString()}
			for {
				select {
				case <-stop:
					return
				default:
					r := workFn(w, rng)
					totalOps.Add(1)
					results <- r
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-22s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 88))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		fmt.Printf("  %-22s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors,
			fmtDur(avgDuration(s.latencies)),
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + strings.Repeat("-", 88))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func randomTime(rng *rand.Rand) time.Time {
	return time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(rng.Int63n(int64(4 * 365 * 24 * time.Hour))))
}

func tiktokExport(rng *rand.Rand) (string, any) {
	videos := make([]any, rng.Intn(maxRows)+1)
	for i := range videos {
		videos[i] = map[string]any{
			"Date": randomTime(rng).Format("2006-01-02 15:04:05"),
			"Link": fmt.Sprintf("https://www.tiktokv.com/share/video/%d/", rng.Int63()),
		}
	}
	return "user_data_tiktok.json", map[string]any{
		"Activity": map[string]any{"Video Browsing History": map[string]any{"VideoList": videos}},
	}
}

func youtubeExport(rng *rand.Rand) (string, any) {
	entries := make([]any, rng.Intn(maxRows)+1)
	for i := range entries {
		ch := rng.Intn(numChannels)
		entries[i] = map[string]any{
			"title":     fmt.Sprintf("Watched video %d", i),
			"titleUrl":  fmt.Sprintf("https://www.youtube.com/watch?v=%x", rng.Int63()),
			"time":      randomTime(rng).Format(time.RFC3339),
			"subtitles": []any{map[string]any{
				"name": fmt.Sprintf("Channel %d", ch),
				"url":  fmt.Sprintf("https://www.youtube.com/channel/%d", ch),
			}},
		}
	}
	return "watch-history.json", entries
}

func (w *worker) upload(rng *rand.Rand) result {
	name, export := tiktokExport(rng)
	platform := "tiktok"
	if rng.Intn(2) == 0 {
		name, export = youtubeExport(rng)
		platform = "youtube"
	}
	raw, _ := json.Marshal(export)
	body, _ := json.Marshal(map[string]any{
		"platform": platform,
		"files": []any{map[string]any{
			"name":    name,
			"content": "data:application/json;base64," + base64.StdEncoding.EncodeToString(raw),
		}},
	})

	r := w.do(http.MethodPost, "/upload", bytes.NewReader(body), http.StatusOK)
	if !r.err {
		w.uploaded = true
	}
	return r
}

func (w *worker) read(rng *rand.Rand) result {
	switch rng.Intn(4) {
	case 0:
		return w.do(http.MethodGet, "/preview", nil, http.StatusOK)
	case 1:
		return w.do(http.MethodGet, "/chart", nil, http.StatusOK)
	case 2:
		return w.do(http.MethodGet, "/download/csv", nil, http.StatusOK)
	default:
		return w.do(http.MethodGet, "/download/urls", nil, http.StatusOK)
	}
}

func (w *worker) do(method, path string, body io.Reader, want int) result {
	endpoint := method + " " + path
	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		return result{endpoint, 0, 0, true}
	}
	req.Header.Set("X-Session-ID", w.session)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := httpClient.Do(req)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{endpoint, resp.StatusCode, lat, resp.StatusCode != want}
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dus", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
