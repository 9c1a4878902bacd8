package router

import (
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "github.com/d60-Lab/gin-blog/docs"
	"github.com/d60-Lab/gin-blog/internal/api/handler"
	"github.com/d60-Lab/gin-blog/internal/api/middleware"
	"github.com/d60-Lab/gin-blog/pkg/response"
)

// Options 路由层可选组件
type Options struct {
	Mode        string
	Sentry      bool
	Tracing     bool
	ServiceName string
	// RateLimiter 为空时不限流
	RateLimiter *middleware.RateLimiter
	// MediaRoot 非空时由本服务提供本地图片
	MediaRoot string
	MediaURL  string
}

func New(h *handler.Handler, auth *middleware.Authenticator, opts Options) *gin.Engine {
	if opts.Mode != "" {
		gin.SetMode(opts.Mode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery())
	if opts.Sentry {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	if opts.Tracing {
		r.Use(otelgin.Middleware(opts.ServiceName))
	}
	r.Use(gzip.Gzip(gzip.DefaultCompression), auth.Load())
	if opts.RateLimiter != nil {
		r.Use(opts.RateLimiter.Writes())
	}

	r.GET("/", h.Index)
	r.GET("/group/:slug/", h.GroupPosts)
	r.GET("/profile/:username/", h.Profile)
	r.GET("/posts/:post_id/", h.PostDetail)

	account := r.Group("/auth")
	{
		account.GET("/signup/", h.SignupForm)
		account.POST("/signup/", h.Signup)
		account.GET("/login/", h.LoginForm)
		account.POST("/login/", h.Login)
		account.POST("/logout/", h.Logout)
	}

	authed := r.Group("/", auth.Required())
	{
		authed.GET("/create/", h.PostCreateForm)
		authed.POST("/create/", h.PostCreate)
		authed.GET("/posts/:post_id/edit/", h.PostEditForm)
		authed.POST("/posts/:post_id/edit/", h.PostEdit)
		authed.POST("/posts/:post_id/comment/", h.AddComment)
		authed.GET("/follow/", h.FollowIndex)
		authed.POST("/profile/:username/follow/", h.ProfileFollow)
		authed.POST("/profile/:username/unfollow/", h.ProfileUnfollow)
		authed.POST("/admin/cache/index/clear/", h.ClearIndexCache)
		authed.GET("/admin/cache/stats/", h.CacheStats)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if opts.MediaRoot != "" {
		r.Static(opts.MediaURL, opts.MediaRoot)
	}
	r.NoRoute(response.NotFound)
	return r
}
