package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedPagesSplitThirteenPosts(t *testing.T) {
	f := newFixture(t)
	svc := NewFeedService(f.posts, f.users, f.groups)
	author := f.user(t, "AlexAndreev")
	g := f.group(t, "test-slug-group")
	f.seedPosts(t, author, g, 13)

	views := map[string]FeedView{
		"all":    AllFeed(),
		"group":  GroupFeed(g.Slug),
		"author": AuthorFeed(author.Username),
	}
	for name, view := range views {
		t.Run(name, func(t *testing.T) {
			first, err := svc.Page(ctx, view, 10, 1)
			require.NoError(t, err)
			assert.Len(t, first.Page.Items, 10)
			assert.Equal(t, 13, first.Page.Total)

			second, err := svc.Page(ctx, view, 10, 2)
			require.NoError(t, err)
			assert.Len(t, second.Page.Items, 3)

			clamped, err := svc.Page(ctx, view, 10, 50)
			require.NoError(t, err)
			assert.Equal(t, 2, clamped.Page.Number)
		})
	}
}

func TestFeedResolvesGroupAndAuthor(t *testing.T) {
	f := newFixture(t)
	svc := NewFeedService(f.posts, f.users, f.groups)
	author := f.user(t, "auth")
	g := f.group(t, "cats")
	posts := f.seedPosts(t, author, g, 2)
	f.seedPosts(t, f.user(t, "other"), nil, 1)

	page, err := svc.Page(ctx, GroupFeed("cats"), 10, 1)
	require.NoError(t, err)
	assert.Equal(t, g.ID, page.Group.ID)
	require.Len(t, page.Page.Items, 2)
	assert.Equal(t, posts[1].ID, page.Page.Items[0].ID, "newest first")
	assert.Equal(t, "auth", page.Page.Items[0].Author.Username)
	assert.Equal(t, "cats", page.Page.Items[0].Group.Slug)

	page, err = svc.Page(ctx, AuthorFeed("auth"), 10, 1)
	require.NoError(t, err)
	assert.Equal(t, author.ID, page.Author.ID)
	assert.Len(t, page.Page.Items, 2)
}

func TestFeedUnknownScopeIsNotFound(t *testing.T) {
	f := newFixture(t)
	svc := NewFeedService(f.posts, f.users, f.groups)

	_, err := svc.Page(ctx, GroupFeed("nope"), 10, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Posts(ctx, AuthorFeed("ghost"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFollowedFeed(t *testing.T) {
	f := newFixture(t)
	svc := NewFeedService(f.posts, f.users, f.groups)
	rel := NewRelationshipService(f.follows)
	reader := f.user(t, "user")
	author := f.user(t, "auth")
	lurker := f.user(t, "unfollow")
	posts := f.seedPosts(t, author, nil, 1)

	got, err := svc.Posts(ctx, FollowedFeed(reader.ID))
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, rel.Follow(ctx, reader.ID, author.ID))
	got, err = svc.Posts(ctx, FollowedFeed(reader.ID))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, posts[0].ID, got[0].ID)

	got, err = svc.Posts(ctx, FollowedFeed(lurker.ID))
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = svc.Posts(ctx, FollowedFeed(""))
	require.NoError(t, err)
	assert.Empty(t, got)
	fp, err := svc.Page(ctx, FollowedFeed(""), 10, 1)
	require.NoError(t, err)
	assert.Empty(t, fp.Page.Items)
	assert.Zero(t, fp.Page.Total)
}

func TestEmptyFeedHasOnePage(t *testing.T) {
	f := newFixture(t)
	svc := NewFeedService(f.posts, f.users, f.groups)

	page, err := svc.Page(ctx, AllFeed(), 10, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page.Number)
	assert.Equal(t, 1, page.Page.TotalPages)
	assert.Empty(t, page.Page.Items)
}
