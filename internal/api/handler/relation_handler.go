package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/gin-blog/internal/api/middleware"
	"github.com/d60-Lab/gin-blog/internal/service"
	"github.com/d60-Lab/gin-blog/pkg/response"
)

// ProfileFollow 关注作者（幂等）
// @Summary 关注作者
// @Description 重复关注不产生新记录；关注自己时跳回作者主页
// @Tags 关系链
// @Param username path string true "作者用户名"
// @Success 302 {string} string "跳转关注流"
// @Failure 404 {object} response.Response
// @Router /profile/{username}/follow/ [post]
func (h *Handler) ProfileFollow(c *gin.Context) {
	ctx := c.Request.Context()
	author, err := h.accountService.GetByUsername(ctx, c.Param("username"))
	if err != nil {
		h.fail(c, err)
		return
	}
	err = h.relService.Follow(ctx, middleware.CurrentUserID(c), author.ID)
	if errors.Is(err, service.ErrFollowSelf) {
		response.Redirect(c, profileURL(author.Username))
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Redirect(c, "/follow/")
}

// ProfileUnfollow 取消关注，未关注时无操作
// @Summary 取消关注
// @Tags 关系链
// @Param username path string true "作者用户名"
// @Success 302 {string} string "跳转关注流"
// @Failure 404 {object} response.Response
// @Router /profile/{username}/unfollow/ [post]
func (h *Handler) ProfileUnfollow(c *gin.Context) {
	ctx := c.Request.Context()
	author, err := h.accountService.GetByUsername(ctx, c.Param("username"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.relService.Unfollow(ctx, middleware.CurrentUserID(c), author.ID); err != nil {
		h.fail(c, err)
		return
	}
	response.Redirect(c, "/follow/")
}
