package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/d60-Lab/gin-blog/internal/api/middleware"
	"github.com/d60-Lab/gin-blog/internal/model"
	"github.com/d60-Lab/gin-blog/internal/pagecache"
	"github.com/d60-Lab/gin-blog/internal/pagination"
	"github.com/d60-Lab/gin-blog/internal/service"
	"github.com/d60-Lab/gin-blog/internal/storage"
	"github.com/d60-Lab/gin-blog/pkg/response"
)

// IndexCacheKey 首页缓存键，分页变体为 index_page:<n>
const IndexCacheKey = "index_page"

type Handler struct {
	feedService    service.FeedService
	postService    service.PostService
	relService     service.RelationshipService
	accountService service.AccountService
	auth           *middleware.Authenticator
	pageCache      *pagecache.Cache
	indexTTL       time.Duration
	postsPerPage   int
}

// Options 页面相关参数
type Options struct {
	PostsPerPage int
	IndexTTL     time.Duration
}

func New(
	feedService service.FeedService,
	postService service.PostService,
	relService service.RelationshipService,
	accountService service.AccountService,
	auth *middleware.Authenticator,
	pageCache *pagecache.Cache,
	opts Options,
) *Handler {
	registerFormNames()
	if opts.PostsPerPage <= 0 {
		opts.PostsPerPage = pagination.DefaultPageSize
	}
	return &Handler{
		feedService:    feedService,
		postService:    postService,
		relService:     relService,
		accountService: accountService,
		auth:           auth,
		pageCache:      pageCache,
		indexTTL:       opts.IndexTTL,
		postsPerPage:   opts.PostsPerPage,
	}
}

var formNamesOnce sync.Once

// registerFormNames 校验错误使用 form 标签中的字段名
func registerFormNames() {
	formNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
	})
}

type userView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

type groupView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

type postView struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Text      string     `json:"text"`
	CreatedAt time.Time  `json:"created_at"`
	Author    *userView  `json:"author,omitempty"`
	Group     *groupView `json:"group,omitempty"`
	Image     string     `json:"image,omitempty"`
}

type commentView struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	Author    *userView `json:"author,omitempty"`
}

// formView 表单回显：字段值与错误
type formView struct {
	Fields map[string]string   `json:"fields"`
	Errors map[string][]string `json:"errors,omitempty"`
}

func toUserView(u *model.User) *userView {
	if u == nil {
		return nil
	}
	return &userView{ID: u.ID, Username: u.Username, FullName: u.FullName()}
}

func toGroupView(g *model.Group) *groupView {
	if g == nil {
		return nil
	}
	return &groupView{ID: g.ID, Title: g.Title, Slug: g.Slug, Description: g.Description}
}

func (h *Handler) toPostView(p *model.Post) postView {
	v := postView{
		ID:        p.ID,
		Title:     p.String(),
		Text:      p.Text,
		CreatedAt: p.CreatedAt,
		Author:    toUserView(p.Author),
		Group:     toGroupView(p.Group),
	}
	if p.Image != "" {
		v.Image = h.postService.ImageURL(p.Image)
	}
	return v
}

func (h *Handler) pageView(p pagination.Page[*model.Post]) pagination.Page[postView] {
	return pagination.Map(p, h.toPostView)
}

func toCommentViews(cs []*model.Comment) []commentView {
	out := make([]commentView, 0, len(cs))
	for _, c := range cs {
		out = append(out, commentView{ID: c.ID, Text: c.Text, CreatedAt: c.CreatedAt, Author: toUserView(c.Author)})
	}
	return out
}

var validationMessages = map[string]string{
	"required": "This field is required.",
	"max":      "Ensure this value is not too long.",
	"email":    "Enter a valid email address.",
	"eqfield":  "The two password fields didn't match.",
}

// formErrors 把绑定/业务校验错误转换成按字段分组的提示；非表单错误返回 nil
func formErrors(err error) map[string][]string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string][]string, len(verrs))
		for _, fe := range verrs {
			msg, ok := validationMessages[fe.Tag()]
			if !ok {
				msg = "Enter a valid value."
			}
			out[fe.Field()] = append(out[fe.Field()], msg)
		}
		return out
	}
	if fe, ok := service.AsFieldError(err); ok {
		return map[string][]string{fe.Field: {fe.Message}}
	}
	if errors.Is(err, storage.ErrNotImage) {
		return map[string][]string{"image": {"Upload a valid image. The file you uploaded was either not an image or a corrupted image."}}
	}
	if errors.Is(err, storage.ErrTooLarge) {
		return map[string][]string{"image": {"The uploaded image is too large."}}
	}
	return nil
}

// fail 统一错误出口：不存在返回 404，其余 500
func (h *Handler) fail(c *gin.Context, err error) {
	if errors.Is(err, service.ErrNotFound) {
		response.NotFound(c)
		return
	}
	response.InternalError(c, err)
}

// readImage 读取 multipart 中的 image 字段，未上传时返回 nil
func readImage(c *gin.Context) (*storage.Image, error) {
	if c.ContentType() != binding.MIMEMultipartPOSTForm {
		return nil, nil
	}
	fh, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return storage.ReadImage(fh.Filename, f)
}

func profileURL(username string) string { return "/profile/" + username + "/" }

func postURL(id string) string { return "/posts/" + id + "/" }
