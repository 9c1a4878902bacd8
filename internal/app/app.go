// Package app wires configuration, storage and services into an HTTP engine.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/d60-Lab/gin-blog/config"
	"github.com/d60-Lab/gin-blog/internal/api/handler"
	"github.com/d60-Lab/gin-blog/internal/api/middleware"
	"github.com/d60-Lab/gin-blog/internal/api/router"
	"github.com/d60-Lab/gin-blog/internal/pagecache"
	"github.com/d60-Lab/gin-blog/internal/repository"
	"github.com/d60-Lab/gin-blog/internal/service"
	"github.com/d60-Lab/gin-blog/internal/storage"
	"github.com/d60-Lab/gin-blog/pkg/database"
	"github.com/d60-Lab/gin-blog/pkg/logger"
	"github.com/d60-Lab/gin-blog/pkg/token"
)

type App struct {
	Config *config.Config
	DB     *gorm.DB
	Redis  *redis.Client
	Cache  *pagecache.Cache
	Feed   service.FeedService
	Engine *gin.Engine
}

// New 打开数据库与缓存并装配路由；db 为空时按配置打开
func New(cfg *config.Config, db *gorm.DB) (*App, error) {
	if db == nil {
		var err error
		if db, err = database.InitDB(cfg); err != nil {
			return nil, err
		}
	}
	a := &App{Config: cfg, DB: db, Redis: NewRedisClient(cfg)}

	store, err := NewCacheStore(cfg, a.Redis)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	images, err := NewImageStore(cfg)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.Cache = pagecache.New(store)

	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	postRepo := repository.NewPostRepository(db)

	accounts := service.NewAccountService(userRepo)
	a.Feed = service.NewFeedService(postRepo, userRepo, groupRepo)
	posts := service.NewPostService(postRepo, repository.NewCommentRepository(db), groupRepo, images)
	relations := service.NewRelationshipService(repository.NewFollowRepository(db))

	auth := middleware.NewAuthenticator(token.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL), accounts, cfg.Auth.CookieName, cfg.Auth.LoginURL)
	h := handler.New(a.Feed, posts, relations, accounts, auth, a.Cache, handler.Options{
		PostsPerPage: cfg.Pagination.PostsPerPage,
		IndexTTL:     cfg.Cache.IndexTTL,
	})

	opts := router.Options{
		Mode:        cfg.Server.Mode,
		Sentry:      cfg.Sentry.DSN != "",
		Tracing:     cfg.Tracing.Enabled,
		ServiceName: cfg.Tracing.ServiceName,
	}
	if cfg.RateLimit.RPS > 0 {
		opts.RateLimiter = middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}
	if cfg.Storage.Driver == "fs" {
		opts.MediaRoot = cfg.Storage.MediaRoot
		opts.MediaURL = cfg.Storage.PublicURL
	}
	a.Engine = router.New(h, auth, opts)
	return a, nil
}

// NewRedisClient 未配置地址时返回 nil
func NewRedisClient(cfg *config.Config) *redis.Client {
	if cfg.Redis.Addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

// NewCacheStore 按 cache.driver 选择页面缓存存储
func NewCacheStore(cfg *config.Config, client *redis.Client) (pagecache.Store, error) {
	switch cfg.Cache.Driver {
	case "memory", "":
		return pagecache.NewMemoryStore(), nil
	case "redis":
		if client == nil {
			return nil, errors.New("cache driver redis requires redis.addr")
		}
		return pagecache.NewRedisStore(client, cfg.Cache.KeyPrefix), nil
	case "none":
		return pagecache.NopStore{}, nil
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Cache.Driver)
	}
}

// NewImageStore 按 storage.driver 选择图片存储；driver 为 none 时禁用上传
func NewImageStore(cfg *config.Config) (storage.Store, error) {
	sc := cfg.Storage
	switch sc.Driver {
	case "fs", "":
		return storage.NewFSStore(afero.NewOsFs(), sc.MediaRoot, sc.PublicURL), nil
	case "s3":
		if sc.Bucket == "" {
			return nil, errors.New("storage driver s3 requires storage.bucket")
		}
		s3cfg := storage.S3Config{
			Bucket:          sc.Bucket,
			Region:          sc.Region,
			Endpoint:        sc.Endpoint,
			AccessKeyID:     sc.AccessKeyID,
			SecretAccessKey: sc.SecretAccessKey,
			PublicURL:       sc.PublicURL,
		}
		return storage.NewS3Store(storage.NewS3Client(s3cfg), sc.Bucket, sc.PublicURL), nil
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", sc.Driver)
	}
}

// Ping 检查依赖是否可用
func (a *App) Ping(ctx context.Context) error {
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if a.Redis != nil {
		if err := a.Redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}
	return nil
}

func (a *App) Close() error {
	var errs []error
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	if a.DB != nil {
		errs = append(errs, database.Close(a.DB))
	}
	err := errors.Join(errs...)
	if err != nil {
		logger.Warn("close app", zap.Error(err))
	}
	return err
}
