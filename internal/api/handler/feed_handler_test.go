package handler_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/gin-blog/internal/model"
)

func TestIndexPaginatesThirteenPosts(t *testing.T) {
	e := setup(t)
	author := e.user(t, "leo")
	posts := e.seedPosts(t, author, nil, 13)

	first := decode(t, e.get(t, "/", nil))
	assert.Equal(t, "posts/index", first.Template)
	require.Len(t, first.Data.PageObj.Items, 10)
	assert.Equal(t, posts[12].ID, first.Data.PageObj.Items[0].ID)
	assert.Equal(t, 2, first.Data.PageObj.TotalPages)
	assert.True(t, first.Data.PageObj.HasNext)

	second := decode(t, e.get(t, "/?page=2", nil))
	require.Len(t, second.Data.PageObj.Items, 3)
	assert.Equal(t, posts[0].ID, second.Data.PageObj.Items[2].ID)
	assert.False(t, second.Data.PageObj.HasNext)

	beyond := decode(t, e.get(t, "/?page=99", nil))
	assert.Equal(t, 2, beyond.Data.PageObj.Number)
	assert.Len(t, beyond.Data.PageObj.Items, 3)

	garbage := decode(t, e.get(t, "/?page=abc", nil))
	assert.Equal(t, 1, garbage.Data.PageObj.Number)
}

func TestIndexServesCachedPageUntilExpiry(t *testing.T) {
	e := setup(t)
	author := e.user(t, "leo")
	e.seedPosts(t, author, nil, 1)

	assert.Len(t, decode(t, e.get(t, "/", nil)).Data.PageObj.Items, 1)

	e.seedPosts(t, author, nil, 2)
	assert.Len(t, decode(t, e.get(t, "/", nil)).Data.PageObj.Items, 1, "stale within ttl")

	e.now = e.now.Add(21 * time.Second)
	assert.Len(t, decode(t, e.get(t, "/", nil)).Data.PageObj.Items, 3)
}

func TestIndexOutOfRangePagesShareCacheEntries(t *testing.T) {
	e := setup(t)
	author := e.user(t, "leo")
	e.seedPosts(t, author, nil, 13)

	assert.Equal(t, 1, decode(t, e.get(t, "/", nil)).Data.PageObj.Number)
	for _, q := range []string{"999", "1000", "2"} {
		assert.Equal(t, 2, decode(t, e.get(t, "/?page="+q, nil)).Data.PageObj.Number, q)
	}
	for _, q := range []string{"-5", "0", "abc"} {
		assert.Equal(t, 1, decode(t, e.get(t, "/?page="+q, nil)).Data.PageObj.Number, q)
	}
	stats := e.cache.Stats()
	assert.EqualValues(t, 2, stats.Misses)
	assert.EqualValues(t, 5, stats.Hits)
}

func TestGroupPosts(t *testing.T) {
	e := setup(t)
	author := e.user(t, "leo")
	g := e.group(t, "cats")
	other := e.group(t, "dogs")
	e.seedPosts(t, author, g, 2)
	e.seedPosts(t, author, other, 1)
	e.seedPosts(t, author, nil, 1)

	got := decode(t, e.get(t, "/group/cats/", nil))
	assert.Equal(t, "posts/group_list", got.Template)
	require.Len(t, got.Data.PageObj.Items, 2)
	for _, it := range got.Data.PageObj.Items {
		require.NotNil(t, it.Group)
		assert.Equal(t, "cats", it.Group.Slug)
	}

	assert.Equal(t, http.StatusNotFound, e.get(t, "/group/missing/", nil).Code)
}

func TestProfile(t *testing.T) {
	e := setup(t)
	author := e.user(t, "leo")
	reader := e.user(t, "anna")
	e.seedPosts(t, author, nil, 12)

	got := decode(t, e.get(t, "/profile/leo/", nil))
	assert.Equal(t, "posts/profile", got.Template)
	assert.Equal(t, 12, got.Data.PostsCount)
	assert.False(t, got.Data.Following)
	assert.Len(t, got.Data.PageObj.Items, 10)
	for _, it := range got.Data.PageObj.Items {
		assert.Equal(t, "leo", it.Author.Username)
	}

	require.NoError(t, e.db.Create(&model.Follow{ID: "f1", UserID: reader.ID, AuthorID: author.ID}).Error)
	assert.True(t, decode(t, e.get(t, "/profile/leo/", reader)).Data.Following)
	assert.False(t, decode(t, e.get(t, "/profile/leo/", author)).Data.Following)

	assert.Equal(t, http.StatusNotFound, e.get(t, "/profile/nobody/", nil).Code)
}

func TestFollowIndexRequiresLogin(t *testing.T) {
	e := setup(t)
	w := e.get(t, "/follow/", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, loginURL("/follow/"), w.Header().Get("Location"))
}

func TestUnknownRouteIsNotFound(t *testing.T) {
	e := setup(t)
	w := e.get(t, "/no/such/page/", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "core/404")
}
