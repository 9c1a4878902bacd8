// Package cacheperf measures how the page cache changes index page latency.
package cacheperf

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/d60-Lab/gin-blog/internal/pagecache"
	"github.com/d60-Lab/gin-blog/internal/service"
	"github.com/d60-Lab/gin-blog/pkg/response"
)

// IndexRenderer renders index pages straight from the feed and counts renders.
type IndexRenderer struct {
	feed     service.FeedService
	pageSize int

	renders atomic.Int64
}

func NewIndexRenderer(feed service.FeedService, pageSize int) *IndexRenderer {
	return &IndexRenderer{feed: feed, pageSize: pageSize}
}

// Render loads and encodes one page of the global feed.
func (r *IndexRenderer) Render(ctx context.Context, page int) ([]byte, error) {
	r.renders.Add(1)
	fp, err := r.feed.Page(ctx, service.AllFeed(), r.pageSize, page)
	if err != nil {
		return nil, err
	}
	return response.Encode("posts/index", map[string]any{"page_obj": fp.Page})
}

// Renders reports how many pages were rendered from the database.
func (r *IndexRenderer) Renders() int64 { return r.renders.Load() }

func (r *IndexRenderer) ResetCounters() { r.renders.Store(0) }

// Scenario is one way of serving index requests. A nil Cache renders every request.
type Scenario struct {
	Name  string
	Cache *pagecache.Cache
	TTL   time.Duration
	// Reset empties the backing store before the run.
	Reset func(ctx context.Context) error
}

// Result summarises one scenario run.
type Result struct {
	Name      string
	Durations []time.Duration
	Renders   int64
	Stats     pagecache.Stats
}

func (r Result) String() string {
	return fmt.Sprintf("%-14s avg=%v p95=%v p99=%v renders=%d hits=%d misses=%d failures=%d",
		r.Name, Avg(r.Durations), Pct(r.Durations, 0.95), Pct(r.Durations, 0.99),
		r.Renders, r.Stats.Hits, r.Stats.Misses, r.Stats.Failures)
}

// Run serves pages through sc and records per-request latency.
func Run(ctx context.Context, r *IndexRenderer, sc Scenario, pages []int) (Result, error) {
	if sc.Reset != nil {
		if err := sc.Reset(ctx); err != nil {
			return Result{}, fmt.Errorf("reset %s: %w", sc.Name, err)
		}
	}
	r.ResetCounters()
	if sc.Cache != nil {
		sc.Cache.ResetStats()
	}

	out := make([]time.Duration, 0, len(pages))
	for _, page := range pages {
		start := time.Now()
		var err error
		if sc.Cache == nil {
			_, err = r.Render(ctx, page)
		} else {
			key := pagecache.VariantKey("index_page", strconv.Itoa(page))
			_, err = sc.Cache.GetOrCompute(ctx, key, sc.TTL, func(ctx context.Context) ([]byte, error) {
				return r.Render(ctx, page)
			})
		}
		if err != nil {
			return Result{}, fmt.Errorf("%s page %d: %w", sc.Name, page, err)
		}
		out = append(out, time.Since(start))
	}

	res := Result{Name: sc.Name, Durations: out, Renders: r.Renders()}
	if sc.Cache != nil {
		res.Stats = sc.Cache.Stats()
	}
	return res, nil
}

// MakePages draws n page numbers, mostly page 1 with a tail of deeper pages.
func MakePages(n, maxPage int, seed int64) []int {
	rnd := rand.New(rand.NewSource(seed))
	out := make([]int, n)
	for i := range out {
		out[i] = 1
		if maxPage > 1 && rnd.Float64() > 0.72 {
			out[i] = 2 + rnd.Intn(maxPage-1)
		}
	}
	return out
}

func Avg(vs []time.Duration) time.Duration {
	if len(vs) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range vs {
		sum += v
	}
	return sum / time.Duration(len(vs))
}

// Pct returns the p-th percentile (0 < p <= 1) using nearest rank.
func Pct(vs []time.Duration, p float64) time.Duration {
	if len(vs) == 0 {
		return 0
	}
	sorted := append([]time.Duration(nil), vs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	idx := int(math.Ceil(p*float64(len(sorted)))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
