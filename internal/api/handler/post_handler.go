package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/gin-blog/internal/api/middleware"
	"github.com/d60-Lab/gin-blog/internal/model"
	"github.com/d60-Lab/gin-blog/internal/service"
	"github.com/d60-Lab/gin-blog/internal/storage"
	"github.com/d60-Lab/gin-blog/pkg/response"
)

type postForm struct {
	Text  string `form:"text" json:"text" binding:"required"`
	Group string `form:"group" json:"group"`
}

type commentForm struct {
	Text string `form:"text" json:"text" binding:"required"`
}

// PostDetail 帖子详情与评论
// @Summary 帖子详情
// @Tags 帖子
// @Produce json
// @Param post_id path string true "帖子ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /posts/{post_id}/ [get]
func (h *Handler) PostDetail(c *gin.Context) {
	ctx := c.Request.Context()
	p, err := h.postService.Get(ctx, c.Param("post_id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	count, err := h.postService.CountByAuthor(ctx, p.AuthorID)
	if err != nil {
		h.fail(c, err)
		return
	}
	comments, err := h.postService.Comments(ctx, p.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	commentCount, err := h.postService.CommentCount(ctx, p.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Page(c, "posts/post_detail", map[string]any{
		"post":           h.toPostView(p),
		"posts_count":    count,
		"comments":       toCommentViews(comments),
		"comments_count": commentCount,
		"form":           formView{Fields: map[string]string{"text": ""}},
	})
}

// renderPostForm 渲染发帖/编辑表单；post 为空表示新建
func (h *Handler) renderPostForm(c *gin.Context, post *model.Post, f postForm, errs map[string][]string) {
	groups, err := h.postService.Groups(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	choices := make([]*groupView, 0, len(groups))
	for _, g := range groups {
		choices = append(choices, toGroupView(g))
	}
	data := map[string]any{
		"form":    formView{Fields: map[string]string{"text": f.Text, "group": f.Group}, Errors: errs},
		"groups":  choices,
		"is_edit": post != nil,
	}
	if post != nil {
		data["post_id"] = post.ID
	}
	response.Page(c, "posts/create_post", data)
}

// bindPost 读取帖子表单；第二个返回值为表单错误
func bindPost(c *gin.Context) (postForm, *storage.Image, map[string][]string, error) {
	var f postForm
	errs := map[string][]string{}
	if err := c.ShouldBind(&f); err != nil {
		fe := formErrors(err)
		if fe == nil {
			return f, nil, nil, err
		}
		for k, v := range fe {
			errs[k] = v
		}
	}
	img, err := readImage(c)
	if err != nil {
		fe := formErrors(err)
		if fe == nil {
			return f, nil, nil, err
		}
		for k, v := range fe {
			errs[k] = v
		}
	}
	if len(errs) == 0 {
		errs = nil
	}
	return f, img, errs, nil
}

// PostCreateForm 发帖页
// @Summary 发帖表单
// @Tags 帖子
// @Produce json
// @Success 200 {object} response.Response
// @Failure 302 {string} string "未登录跳转登录页"
// @Router /create/ [get]
func (h *Handler) PostCreateForm(c *gin.Context) {
	h.renderPostForm(c, nil, postForm{}, nil)
}

// PostCreate 发帖，成功后跳转作者主页
// @Summary 发帖
// @Tags 帖子
// @Accept multipart/form-data
// @Produce json
// @Param text formData string true "正文"
// @Param group formData string false "分组ID"
// @Param image formData file false "图片"
// @Success 302 {string} string "跳转作者主页"
// @Success 200 {object} response.Response "表单校验失败"
// @Router /create/ [post]
func (h *Handler) PostCreate(c *gin.Context) {
	u := middleware.CurrentUser(c)
	f, img, errs, err := bindPost(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if errs != nil {
		h.renderPostForm(c, nil, f, errs)
		return
	}
	_, err = h.postService.Create(c.Request.Context(), u.ID, service.PostInput{Text: f.Text, GroupID: f.Group, Image: img})
	if fe := formErrors(err); fe != nil {
		h.renderPostForm(c, nil, f, fe)
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Redirect(c, profileURL(u.Username))
}

// PostEditForm 编辑页，非作者跳转详情页
// @Summary 编辑表单
// @Tags 帖子
// @Produce json
// @Param post_id path string true "帖子ID"
// @Success 200 {object} response.Response
// @Failure 302 {string} string "非作者跳转详情页"
// @Failure 404 {object} response.Response
// @Router /posts/{post_id}/edit/ [get]
func (h *Handler) PostEditForm(c *gin.Context) {
	p, err := h.postService.Get(c.Request.Context(), c.Param("post_id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if p.AuthorID != middleware.CurrentUserID(c) {
		response.Redirect(c, postURL(p.ID))
		return
	}
	f := postForm{Text: p.Text}
	if p.GroupID != nil {
		f.Group = *p.GroupID
	}
	h.renderPostForm(c, p, f, nil)
}

// PostEdit 保存编辑，成功后跳转详情页
// @Summary 编辑帖子
// @Tags 帖子
// @Accept multipart/form-data
// @Produce json
// @Param post_id path string true "帖子ID"
// @Param text formData string true "正文"
// @Param group formData string false "分组ID"
// @Param image formData file false "图片"
// @Success 302 {string} string "跳转详情页"
// @Success 200 {object} response.Response "表单校验失败"
// @Failure 404 {object} response.Response
// @Router /posts/{post_id}/edit/ [post]
func (h *Handler) PostEdit(c *gin.Context) {
	ctx := c.Request.Context()
	p, err := h.postService.Get(ctx, c.Param("post_id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if p.AuthorID != middleware.CurrentUserID(c) {
		response.Redirect(c, postURL(p.ID))
		return
	}
	f, img, errs, err := bindPost(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if errs != nil {
		h.renderPostForm(c, p, f, errs)
		return
	}
	_, err = h.postService.Update(ctx, middleware.CurrentUserID(c), p.ID, service.PostInput{Text: f.Text, GroupID: f.Group, Image: img})
	switch {
	case errors.Is(err, service.ErrForbidden):
		response.Redirect(c, postURL(p.ID))
	case formErrors(err) != nil:
		h.renderPostForm(c, p, f, formErrors(err))
	case err != nil:
		h.fail(c, err)
	default:
		response.Redirect(c, postURL(p.ID))
	}
}

// AddComment 评论，无论成功与否都回到详情页
// @Summary 发表评论
// @Tags 帖子
// @Accept x-www-form-urlencoded
// @Param post_id path string true "帖子ID"
// @Param text formData string true "评论内容"
// @Success 302 {string} string "跳转详情页"
// @Failure 404 {object} response.Response
// @Router /posts/{post_id}/comment/ [post]
func (h *Handler) AddComment(c *gin.Context) {
	postID := c.Param("post_id")
	var f commentForm
	if err := c.ShouldBind(&f); err != nil {
		if _, err := h.postService.Get(c.Request.Context(), postID); err != nil {
			h.fail(c, err)
			return
		}
		response.Redirect(c, postURL(postID))
		return
	}
	_, err := h.postService.AddComment(c.Request.Context(), middleware.CurrentUserID(c), postID, f.Text)
	if err != nil && formErrors(err) == nil {
		h.fail(c, err)
		return
	}
	response.Redirect(c, postURL(postID))
}
