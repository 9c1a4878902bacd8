package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/d60-Lab/gin-blog/config"
	"github.com/d60-Lab/gin-blog/internal/app"
	"github.com/d60-Lab/gin-blog/internal/cacheperf"
	"github.com/d60-Lab/gin-blog/internal/model"
	"github.com/d60-Lab/gin-blog/internal/pagecache"
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

func cached(name string, store pagecache.Store, ttl time.Duration) cacheperf.Scenario {
	c := pagecache.New(store)
	return cacheperf.Scenario{
		Name:  name,
		Cache: c,
		TTL:   ttl,
		Reset: func(ctx context.Context) error { return c.Clear(ctx, "index_page") },
	}
}

func main() {
	ctx := context.Background()
	cfg := must(config.Load())
	db := must(database.InitDB(cfg))
	defer database.Close(db)

	authors := envInt("AUTHORS", 50)
	posts := envInt("POSTS", 5000)
	requests := envInt("REQUESTS", 3000)

	// 基准数据单独建在 bench_ 前缀的用户下，重复运行前先清理
	mustDo(db.Exec("DELETE FROM posts WHERE author_id IN (SELECT id FROM users WHERE username LIKE 'bench_%')").Error)
	mustDo(db.Exec("DELETE FROM users WHERE username LIKE 'bench_%'").Error)

	fmt.Println("Seeding data...")
	users := make([]model.User, authors)
	for i := range users {
		users[i] = model.User{ID: uuid.NewString(), Username: fmt.Sprintf("bench_%d", i), PasswordHash: "x"}
	}
	mustDo(db.CreateInBatches(&users, 500).Error)
	rows := make([]model.Post, posts)
	base := time.Now().Add(-time.Duration(posts) * time.Second)
	for i := range rows {
		rows[i] = model.Post{
			ID:        uuid.NewString(),
			Text:      fmt.Sprintf("benchmark post %d", i),
			AuthorID:  users[i%authors].ID,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
	}
	mustDo(db.Omit("Author", "Group").CreateInBatches(&rows, 500).Error)
	fmt.Printf("Seeded %d authors, %d posts\n", authors, posts)

	userRepo := repository.NewUserRepository(db)
	feed := service.NewFeedService(repository.NewPostRepository(db), userRepo, repository.NewGroupRepository(db))
	renderer := cacheperf.NewIndexRenderer(feed, cfg.Pagination.PostsPerPage)
	maxPage := (posts + cfg.Pagination.PostsPerPage - 1) / cfg.Pagination.PostsPerPage
	pages := cacheperf.MakePages(requests, maxPage, 42)

	scenarios := []cacheperf.Scenario{
		{Name: "No cache"},
		cached("Memory cache", pagecache.NewMemoryStore(), cfg.Cache.IndexTTL),
	}
	if client := app.NewRedisClient(cfg); client != nil {
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			fmt.Printf("redis %s unreachable, skipping: %v\n", cfg.Redis.Addr, err)
		} else {
			scenarios = append(scenarios, cached("Redis cache", pagecache.NewRedisStore(client, cfg.Cache.KeyPrefix), cfg.Cache.IndexTTL))
		}
	}

	fmt.Printf("\nIndex latency (%d requests, %d posts, %s)\n", requests, posts, cfg.Database.Driver)
	for _, sc := range scenarios {
		res := must(cacheperf.Run(ctx, renderer, sc, pages))
		fmt.Println(res)
	}
}
