package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/d60-Lab/gin-blog/internal/model"
	"github.com/d60-Lab/gin-blog/pkg/database"
)

func setupDB(tb testing.TB) *gorm.DB {
	tb.Helper()
	db, err := database.OpenMemory()
	require.NoError(tb, err)
	tb.Cleanup(func() { _ = database.Close(db) })
	return db
}

func seedUser(tb testing.TB, db *gorm.DB, username string) *model.User {
	tb.Helper()
	u := &model.User{ID: "id-" + username, Username: username, PasswordHash: "p"}
	require.NoError(tb, db.Create(u).Error)
	return u
}

func seedGroup(tb testing.TB, db *gorm.DB, slug string) *model.Group {
	tb.Helper()
	g := &model.Group{ID: "gid-" + slug, Title: "Group " + slug, Slug: slug, Description: "d"}
	require.NoError(tb, db.Create(g).Error)
	return g
}

// seedPosts 创建 n 条帖子，创建时间逐条递增，返回顺序与创建顺序一致
func seedPosts(tb testing.TB, db *gorm.DB, author *model.User, group *model.Group, n int) []*model.Post {
	tb.Helper()
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	posts := make([]*model.Post, n)
	for i := 0; i < n; i++ {
		p := &model.Post{
			ID:        fmt.Sprintf("%s-p%03d", author.Username, i),
			Text:      fmt.Sprintf("post %d by %s", i, author.Username),
			AuthorID:  author.ID,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if group != nil {
			p.GroupID = &group.ID
		}
		require.NoError(tb, db.Omit("Author", "Group").Create(p).Error)
		posts[i] = p
	}
	return posts
}

var ctx = context.Background()
