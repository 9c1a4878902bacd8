package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/d60-Lab/gin-blog/internal/model"
	"github.com/d60-Lab/gin-blog/internal/repository"
	"github.com/d60-Lab/gin-blog/pkg/database"
)

var ctx = context.Background()

type fixture struct {
	db       *gorm.DB
	users    repository.UserRepository
	groups   repository.GroupRepository
	posts    repository.PostRepository
	comments repository.CommentRepository
	follows  repository.FollowRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return &fixture{
		db:       db,
		users:    repository.NewUserRepository(db),
		groups:   repository.NewGroupRepository(db),
		posts:    repository.NewPostRepository(db),
		comments: repository.NewCommentRepository(db),
		follows:  repository.NewFollowRepository(db),
	}
}

func (f *fixture) user(t *testing.T, username string) *model.User {
	t.Helper()
	u := &model.User{Username: username, PasswordHash: "x"}
	require.NoError(t, f.users.Create(ctx, u))
	return u
}

func (f *fixture) group(t *testing.T, slug string) *model.Group {
	t.Helper()
	g := &model.Group{Title: "Group " + slug, Slug: slug}
	require.NoError(t, f.groups.Create(ctx, g))
	return g
}

func (f *fixture) seedPosts(t *testing.T, author *model.User, group *model.Group, n int) []*model.Post {
	t.Helper()
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	var out []*model.Post
	for i := 0; i < n; i++ {
		p := &model.Post{Text: fmt.Sprintf("%s #%d", author.Username, i), AuthorID: author.ID, CreatedAt: base.Add(time.Duration(i) * time.Second)}
		if group != nil {
			p.GroupID = &group.ID
		}
		require.NoError(t, f.posts.Create(ctx, p))
		out = append(out, p)
	}
	return out
}
