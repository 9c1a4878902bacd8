package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/gin-blog/internal/api/middleware"
	"github.com/d60-Lab/gin-blog/internal/pagecache"
	"github.com/d60-Lab/gin-blog/internal/pagination"
	"github.com/d60-Lab/gin-blog/internal/service"
	"github.com/d60-Lab/gin-blog/pkg/response"
)

// Index 首页：全部帖子，整页缓存
// @Summary 首页帖子列表
// @Description 按创建时间倒序分页；响应按页码缓存，过期前新帖不可见
// @Tags 帖子
// @Produce json
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response
// @Router / [get]
func (h *Handler) Index(c *gin.Context) {
	page := h.indexPageNumber(c.Request.Context(), pagination.ParseNumber(c.Query("page")))
	key := pagecache.VariantKey(IndexCacheKey, strconv.Itoa(page))
	body, err := h.pageCache.GetOrCompute(c.Request.Context(), key, h.indexTTL, func(ctx context.Context) ([]byte, error) {
		fp, err := h.feedService.Page(ctx, service.AllFeed(), h.postsPerPage, page)
		if err != nil {
			return nil, err
		}
		h.pageCache.Put(ctx, indexPagesKey, []byte(strconv.Itoa(fp.Page.TotalPages)), h.indexTTL)
		return response.Encode("posts/index", gin.H{"page_obj": h.pageView(fp.Page)})
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Raw(c, body)
}

// indexPagesKey 缓存的首页总页数，与页面一同过期、一同清除
var indexPagesKey = pagecache.VariantKey(IndexCacheKey, "pages")

// indexPageNumber 把请求页码收敛到缓存键使用的页码；总页数未知时只处理下界
func (h *Handler) indexPageNumber(ctx context.Context, requested int) int {
	n := max(requested, 1)
	if raw, ok := h.pageCache.Peek(ctx, indexPagesKey); ok {
		if pages, err := strconv.Atoi(string(raw)); err == nil && pages > 0 && n > pages {
			n = pages
		}
	}
	return n
}

// GroupPosts 分组下的帖子
// @Summary 分组帖子列表
// @Tags 帖子
// @Produce json
// @Param slug path string true "分组 slug"
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /group/{slug}/ [get]
func (h *Handler) GroupPosts(c *gin.Context) {
	fp, err := h.feedService.Page(c.Request.Context(), service.GroupFeed(c.Param("slug")), h.postsPerPage, pagination.ParseNumber(c.Query("page")))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Page(c, "posts/group_list", gin.H{
		"group":    toGroupView(fp.Group),
		"page_obj": h.pageView(fp.Page),
	})
}

// Profile 作者主页
// @Summary 作者帖子列表
// @Description following 表示当前用户是否已关注该作者
// @Tags 帖子
// @Produce json
// @Param username path string true "用户名"
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /profile/{username}/ [get]
func (h *Handler) Profile(c *gin.Context) {
	ctx := c.Request.Context()
	fp, err := h.feedService.Page(ctx, service.AuthorFeed(c.Param("username")), h.postsPerPage, pagination.ParseNumber(c.Query("page")))
	if err != nil {
		h.fail(c, err)
		return
	}
	following, err := h.relService.IsFollowing(ctx, middleware.CurrentUserID(c), fp.Author.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Page(c, "posts/profile", gin.H{
		"author":      toUserView(fp.Author),
		"posts_count": fp.Page.Total,
		"following":   following,
		"page_obj":    h.pageView(fp.Page),
	})
}

// FollowIndex 关注作者的帖子
// @Summary 关注流
// @Tags 关系链
// @Produce json
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response
// @Failure 302 {string} string "未登录跳转登录页"
// @Router /follow/ [get]
func (h *Handler) FollowIndex(c *gin.Context) {
	fp, err := h.feedService.Page(c.Request.Context(), service.FollowedFeed(middleware.CurrentUserID(c)), h.postsPerPage, pagination.ParseNumber(c.Query("page")))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Page(c, "posts/follow", gin.H{"page_obj": h.pageView(fp.Page)})
}
