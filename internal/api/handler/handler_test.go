package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/d60-Lab/gin-blog/internal/api/handler"
	"github.com/d60-Lab/gin-blog/internal/api/middleware"
	"github.com/d60-Lab/gin-blog/internal/api/router"
	"github.com/d60-Lab/gin-blog/internal/model"
	"github.com/d60-Lab/gin-blog/internal/pagecache"
	"github.com/d60-Lab/gin-blog/internal/repository"
	"github.com/d60-Lab/gin-blog/internal/service"
	"github.com/d60-Lab/gin-blog/internal/storage"
	"github.com/d60-Lab/gin-blog/pkg/database"
	"github.com/d60-Lab/gin-blog/pkg/token"
)

var ctx = context.Background()

const cookieName = "token"

type env struct {
	db     *gorm.DB
	r      *gin.Engine
	tokens *token.Manager
	cache  *pagecache.Cache
	fs     afero.Fs
	now    time.Time

	users  repository.UserRepository
	groups repository.GroupRepository
	posts  repository.PostRepository
}

func setup(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := database.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	e := &env{
		db:     db,
		tokens: token.NewManager("test-secret", time.Hour),
		fs:     afero.NewMemMapFs(),
		now:    time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		users:  repository.NewUserRepository(db),
		groups: repository.NewGroupRepository(db),
		posts:  repository.NewPostRepository(db),
	}
	accounts := service.NewAccountService(e.users)
	auth := middleware.NewAuthenticator(e.tokens, accounts, cookieName, "/auth/login/")
	e.cache = pagecache.New(pagecache.NewMemoryStoreWithClock(func() time.Time { return e.now }))
	h := handler.New(
		service.NewFeedService(e.posts, e.users, e.groups),
		service.NewPostService(e.posts, repository.NewCommentRepository(db), e.groups, storage.NewFSStore(e.fs, "media", "/media")),
		service.NewRelationshipService(repository.NewFollowRepository(db)),
		accounts,
		auth,
		e.cache,
		handler.Options{PostsPerPage: 10, IndexTTL: 20 * time.Second},
	)
	e.r = router.New(h, auth, router.Options{})
	return e
}

func (e *env) user(t *testing.T, username string) *model.User {
	t.Helper()
	hash, err := service.HashPassword("secret-" + username)
	require.NoError(t, err)
	u := &model.User{Username: username, PasswordHash: hash}
	require.NoError(t, e.users.Create(ctx, u))
	return u
}

func (e *env) group(t *testing.T, slug string) *model.Group {
	t.Helper()
	g := &model.Group{Title: "Group " + slug, Slug: slug}
	require.NoError(t, e.groups.Create(ctx, g))
	return g
}

func (e *env) seedPosts(t *testing.T, author *model.User, group *model.Group, n int) []*model.Post {
	t.Helper()
	base := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)
	out := make([]*model.Post, 0, n)
	for i := 0; i < n; i++ {
		p := &model.Post{Text: "post text number " + string(rune('a'+i)), AuthorID: author.ID, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		if group != nil {
			p.GroupID = &group.ID
		}
		require.NoError(t, e.posts.Create(ctx, p))
		out = append(out, p)
	}
	return out
}

func (e *env) count(t *testing.T, m any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(m).Count(&n).Error)
	return n
}

func (e *env) send(t *testing.T, req *http.Request, as *model.User) *httptest.ResponseRecorder {
	t.Helper()
	if as != nil {
		tok, err := e.tokens.Issue(as.ID, as.Username)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: cookieName, Value: tok})
	}
	w := httptest.NewRecorder()
	e.r.ServeHTTP(w, req)
	return w
}

func (e *env) get(t *testing.T, target string, as *model.User) *httptest.ResponseRecorder {
	return e.send(t, httptest.NewRequest(http.MethodGet, target, nil), as)
}

func (e *env) post(t *testing.T, target string, form url.Values, as *model.User) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.send(t, req, as)
}

func (e *env) upload(t *testing.T, target string, fields map[string]string, filename string, content []byte, as *model.User) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	fw, err := mw.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return e.send(t, req, as)
}

type postItem struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Text   string `json:"text"`
	Image  string `json:"image"`
	Author struct {
		Username string `json:"username"`
	} `json:"author"`
	Group *struct {
		Slug string `json:"slug"`
	} `json:"group"`
}

type pageData struct {
	Template string `json:"template"`
	Data     struct {
		PageObj struct {
			Items       []postItem `json:"items"`
			Number      int        `json:"number"`
			TotalPages  int        `json:"total_pages"`
			Total       int        `json:"total"`
			HasNext     bool       `json:"has_next"`
			HasPrevious bool       `json:"has_previous"`
		} `json:"page_obj"`
		Following     bool       `json:"following"`
		PostsCount    int        `json:"posts_count"`
		Post          postItem   `json:"post"`
		IsEdit        bool       `json:"is_edit"`
		PostID        string     `json:"post_id"`
		Next          string     `json:"next"`
		Comments      []postItem `json:"comments"`
		CommentsCount int        `json:"comments_count"`
		Form          struct {
			Fields map[string]string   `json:"fields"`
			Errors map[string][]string `json:"errors"`
		} `json:"form"`
	} `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) pageData {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var out pageData
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func loginURL(next string) string {
	return "/auth/login/?next=" + url.QueryEscape(next)
}
