package service

import (
	"context"
	"fmt"

	"github.com/d60-Lab/gin-blog/internal/model"
	"github.com/d60-Lab/gin-blog/internal/pagination"
	"github.com/d60-Lab/gin-blog/internal/repository"
)

// FeedKind 列表范围
type FeedKind int

const (
	FeedAll FeedKind = iota
	FeedByGroup
	FeedByAuthor
	FeedByFollowed
)

func (k FeedKind) String() string {
	switch k {
	case FeedByGroup:
		return "group"
	case FeedByAuthor:
		return "author"
	case FeedByFollowed:
		return "follow"
	default:
		return "all"
	}
}

// FeedView 描述一个帖子列表：全部、某分组、某作者或某用户关注的作者
type FeedView struct {
	Kind     FeedKind
	Slug     string
	Username string
	UserID   string
}

func AllFeed() FeedView                   { return FeedView{Kind: FeedAll} }
func GroupFeed(slug string) FeedView      { return FeedView{Kind: FeedByGroup, Slug: slug} }
func AuthorFeed(username string) FeedView { return FeedView{Kind: FeedByAuthor, Username: username} }
func FollowedFeed(userID string) FeedView { return FeedView{Kind: FeedByFollowed, UserID: userID} }

// FeedPage 一页帖子以及解析出的分组/作者
type FeedPage struct {
	Group  *model.Group
	Author *model.User
	Page   pagination.Page[*model.Post]
}

// FeedService 帖子列表查询（只读）
type FeedService interface {
	// Posts 返回完整列表，按创建时间倒序
	Posts(ctx context.Context, view FeedView) ([]*model.Post, error)
	// Page 返回列表中的一页，越界页码按首页/末页处理
	Page(ctx context.Context, view FeedView, pageSize, page int) (*FeedPage, error)
}

type feedService struct {
	postRepo  repository.PostRepository
	userRepo  repository.UserRepository
	groupRepo repository.GroupRepository
}

func NewFeedService(postRepo repository.PostRepository, userRepo repository.UserRepository, groupRepo repository.GroupRepository) FeedService {
	return &feedService{postRepo: postRepo, userRepo: userRepo, groupRepo: groupRepo}
}

func (s *feedService) resolve(ctx context.Context, view FeedView) (repository.PostFilter, *FeedPage, error) {
	out := &FeedPage{}
	switch view.Kind {
	case FeedAll:
		return repository.PostFilter{}, out, nil
	case FeedByGroup:
		g, err := s.groupRepo.GetBySlug(ctx, view.Slug)
		if err != nil {
			return repository.PostFilter{}, nil, fmt.Errorf("group %q: %w", view.Slug, err)
		}
		out.Group = g
		return repository.PostFilter{GroupID: g.ID}, out, nil
	case FeedByAuthor:
		u, err := s.userRepo.GetByUsername(ctx, view.Username)
		if err != nil {
			return repository.PostFilter{}, nil, fmt.Errorf("author %q: %w", view.Username, err)
		}
		out.Author = u
		return repository.PostFilter{AuthorID: u.ID}, out, nil
	case FeedByFollowed:
		// 匿名用户没有关注任何人
		return repository.PostFilter{FollowerID: view.UserID, None: view.UserID == ""}, out, nil
	default:
		return repository.PostFilter{}, nil, fmt.Errorf("unknown feed kind %d", view.Kind)
	}
}

func (s *feedService) Posts(ctx context.Context, view FeedView) ([]*model.Post, error) {
	filter, _, err := s.resolve(ctx, view)
	if err != nil {
		return nil, err
	}
	return s.postRepo.List(ctx, filter, 0, -1)
}

func (s *feedService) Page(ctx context.Context, view FeedView, pageSize, page int) (*FeedPage, error) {
	filter, out, err := s.resolve(ctx, view)
	if err != nil {
		return nil, err
	}
	total, err := s.postRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	w := pagination.NewWindow(int(total), pageSize, page)
	var posts []*model.Post
	if w.Limit > 0 {
		if posts, err = s.postRepo.List(ctx, filter, w.Offset, w.Limit); err != nil {
			return nil, err
		}
	}
	out.Page = pagination.Build(posts, w, int(total), pageSize)
	return out, nil
}
