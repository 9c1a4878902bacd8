package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/gin-blog/internal/api/middleware"
	"github.com/d60-Lab/gin-blog/pkg/logger"
	"github.com/d60-Lab/gin-blog/pkg/response"
)

// ClearIndexCache 清除首页缓存（所有分页），仅限管理员
// @Summary 清除首页缓存
// @Tags 管理
// @Produce json
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response "非管理员"
// @Router /admin/cache/index/clear/ [post]
func (h *Handler) ClearIndexCache(c *gin.Context) {
	u := middleware.CurrentUser(c)
	if u == nil || !u.IsStaff {
		response.NotFound(c)
		return
	}
	if err := h.pageCache.Clear(c.Request.Context(), IndexCacheKey); err != nil {
		response.InternalError(c, err)
		return
	}
	logger.Info("index cache cleared", zap.String("user", u.ID))
	response.Success(c, gin.H{"cleared": IndexCacheKey})
}

// CacheStats 页面缓存命中统计，仅限管理员
// @Summary 页面缓存统计
// @Tags 管理
// @Produce json
// @Success 200 {object} response.Response{data=pagecache.Stats}
// @Failure 404 {object} response.Response "非管理员"
// @Router /admin/cache/stats/ [get]
func (h *Handler) CacheStats(c *gin.Context) {
	if u := middleware.CurrentUser(c); u == nil || !u.IsStaff {
		response.NotFound(c)
		return
	}
	response.Success(c, h.pageCache.Stats())
}
