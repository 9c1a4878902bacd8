package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/d60-Lab/gin-blog/config"
	"github.com/d60-Lab/gin-blog/internal/cacheperf"
	"github.com/d60-Lab/gin-blog/internal/model"
	"github.com/d60-Lab/gin-blog/internal/repository"
	"github.com/d60-Lab/gin-blog/internal/service"
	"github.com/d60-Lab/gin-blog/pkg/database"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func mustDo(err error) {
	if err != nil {
		panic(err)
	}
}

func envInt(name string, def int) int {
	if s := os.Getenv(name); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			return v
		}
	}
	return def
}

// runConcurrent 用 workers 个协程执行 n 次 op，返回每次耗时与总耗时
func runConcurrent(n, workers int, op func(i int) error) ([]time.Duration, time.Duration, int) {
	if workers > n {
		workers = n
	}
	jobs := make(chan int, n)
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)

	var (
		mu     sync.Mutex
		recs   = make([]time.Duration, 0, n)
		failed int
		wg     sync.WaitGroup
	)
	start := time.Now()
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				st := time.Now()
				err := op(i)
				d := time.Since(st)
				mu.Lock()
				recs = append(recs, d)
				if err != nil {
					failed++
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	return recs, time.Since(start), failed
}

func report(name string, recs []time.Duration, total time.Duration, failed int) {
	fmt.Printf("%-10s total=%v per_op=%v p50=%v p95=%v p99=%v failed=%d\n",
		name, total, total/time.Duration(max(len(recs), 1)),
		cacheperf.Pct(recs, 0.50), cacheperf.Pct(recs, 0.95), cacheperf.Pct(recs, 0.99), failed)
}

func main() {
	ctx := context.Background()
	cfg := must(config.Load())
	db := must(database.InitDB(cfg))
	defer database.Close(db)

	n := envInt("N", 5000)
	conc := envInt("CONC", 8)
	posts := envInt("POSTS", 200)

	// 清理上次运行留下的数据
	_ = db.Exec("DELETE FROM follows WHERE author_id IN (SELECT id FROM users WHERE username LIKE 'fb_%')").Error
	_ = db.Exec("DELETE FROM posts WHERE author_id IN (SELECT id FROM users WHERE username LIKE 'fb_%')").Error
	_ = db.Exec("DELETE FROM users WHERE username LIKE 'fb_%'").Error

	// fb_celeb 被所有人关注
	celeb := model.User{ID: uuid.NewString(), Username: "fb_celeb", PasswordHash: "x"}
	mustDo(db.Create(&celeb).Error)
	users := make([]model.User, n)
	for i := range users {
		id := uuid.NewString()
		users[i] = model.User{ID: id, Username: "fb_" + id[:8], PasswordHash: "x"}
	}
	mustDo(db.CreateInBatches(&users, 1000).Error)
	rows := make([]model.Post, posts)
	base := time.Now().Add(-time.Duration(posts) * time.Second)
	for i := range rows {
		rows[i] = model.Post{ID: uuid.NewString(), Text: "celebrity post", AuthorID: celeb.ID, CreatedAt: base.Add(time.Duration(i) * time.Second)}
	}
	mustDo(db.Omit("Author", "Group").CreateInBatches(&rows, 500).Error)

	followRepo := repository.NewFollowRepository(db)
	relSvc := service.NewRelationshipService(followRepo)
	userRepo := repository.NewUserRepository(db)
	feed := service.NewFeedService(repository.NewPostRepository(db), userRepo, repository.NewGroupRepository(db))

	fmt.Printf("N=%d CONC=%d POSTS=%d driver=%s\n", n, conc, posts, cfg.Database.Driver)

	recs, total, failed := runConcurrent(n, conc, func(i int) error { return relSvc.Follow(ctx, users[i].ID, celeb.ID) })
	report("follow", recs, total, failed)

	recs, total, failed = runConcurrent(n, conc, func(i int) error { return relSvc.Follow(ctx, users[i].ID, celeb.ID) })
	report("refollow", recs, total, failed)

	edges := must(followRepo.Count(ctx))
	fmt.Printf("edges=%d\n", edges)

	recs, total, failed = runConcurrent(min(n, 1000), conc, func(i int) error {
		_, err := feed.Page(ctx, service.FollowedFeed(users[i].ID), cfg.Pagination.PostsPerPage, 1)
		return err
	})
	report("feed", recs, total, failed)

	recs, total, failed = runConcurrent(n, conc, func(i int) error { return relSvc.Unfollow(ctx, users[i].ID, celeb.ID) })
	report("unfollow", recs, total, failed)
}
