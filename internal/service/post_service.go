package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/d60-Lab/gin-blog/internal/model"
	"github.com/d60-Lab/gin-blog/internal/repository"
	"github.com/d60-Lab/gin-blog/internal/storage"
	"github.com/d60-Lab/gin-blog/pkg/logger"
)

// PostInput 发帖/编辑表单
type PostInput struct {
	Text    string
	GroupID string
	// Image 为空时编辑保留原图
	Image *storage.Image
}

type PostService interface {
	Create(ctx context.Context, authorID string, in PostInput) (*model.Post, error)
	// Update 仅作者可编辑，否则返回 ErrForbidden
	Update(ctx context.Context, editorID, postID string, in PostInput) (*model.Post, error)
	Get(ctx context.Context, postID string) (*model.Post, error)
	Delete(ctx context.Context, postID string) error
	CountByAuthor(ctx context.Context, authorID string) (int64, error)
	AddComment(ctx context.Context, authorID, postID, text string) (*model.Comment, error)
	Comments(ctx context.Context, postID string) ([]*model.Comment, error)
	CommentCount(ctx context.Context, postID string) (int64, error)
	Groups(ctx context.Context) ([]*model.Group, error)
	ImageURL(key string) string
}

type postService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	groupRepo   repository.GroupRepository
	images      storage.Store
}

func NewPostService(postRepo repository.PostRepository, commentRepo repository.CommentRepository, groupRepo repository.GroupRepository, images storage.Store) PostService {
	return &postService{postRepo: postRepo, commentRepo: commentRepo, groupRepo: groupRepo, images: images}
}

func (s *postService) validate(ctx context.Context, in PostInput) (*string, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, fieldError("text", "This field is required.")
	}
	if in.GroupID == "" {
		return nil, nil
	}
	g, err := s.groupRepo.GetByID(ctx, in.GroupID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fieldError("group", "Select a valid choice.")
	}
	if err != nil {
		return nil, err
	}
	return &g.ID, nil
}

func (s *postService) saveImage(ctx context.Context, img *storage.Image) error {
	if img == nil {
		return nil
	}
	if s.images == nil {
		return &FieldError{Field: "image", Message: "Image uploads are disabled.", Err: ErrInvalidImage}
	}
	if err := storage.SaveImage(ctx, s.images, img); err != nil {
		return fmt.Errorf("save image %s: %w", img.Key, err)
	}
	return nil
}

func (s *postService) Create(ctx context.Context, authorID string, in PostInput) (*model.Post, error) {
	groupID, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := s.saveImage(ctx, in.Image); err != nil {
		return nil, err
	}
	p := &model.Post{Text: in.Text, AuthorID: authorID, GroupID: groupID}
	if in.Image != nil {
		p.Image = in.Image.Key
	}
	if err := s.postRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	logger.Info("post created", zap.String("post", p.ID), zap.String("author", authorID))
	return p, nil
}

func (s *postService) Update(ctx context.Context, editorID, postID string, in PostInput) (*model.Post, error) {
	p, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p.AuthorID != editorID {
		return p, ErrForbidden
	}
	groupID, err := s.validate(ctx, in)
	if err != nil {
		return p, err
	}
	if err := s.saveImage(ctx, in.Image); err != nil {
		return p, err
	}
	p.Text = in.Text
	p.GroupID = groupID
	if in.Image != nil {
		p.Image = in.Image.Key
	}
	if err := s.postRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, postID)
}

func (s *postService) Get(ctx context.Context, postID string) (*model.Post, error) {
	return s.postRepo.GetByID(ctx, postID)
}

func (s *postService) Delete(ctx context.Context, postID string) error {
	return s.postRepo.Delete(ctx, postID)
}

func (s *postService) CountByAuthor(ctx context.Context, authorID string) (int64, error) {
	return s.postRepo.Count(ctx, repository.PostFilter{AuthorID: authorID})
}

func (s *postService) AddComment(ctx context.Context, authorID, postID, text string) (*model.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, fieldError("text", "This field is required.")
	}
	c := &model.Comment{PostID: postID, AuthorID: authorID, Text: text}
	if err := s.commentRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *postService) Comments(ctx context.Context, postID string) ([]*model.Comment, error) {
	return s.commentRepo.ListByPost(ctx, postID)
}

func (s *postService) CommentCount(ctx context.Context, postID string) (int64, error) {
	return s.commentRepo.CountByPost(ctx, postID)
}

func (s *postService) Groups(ctx context.Context) ([]*model.Group, error) {
	return s.groupRepo.List(ctx)
}

func (s *postService) ImageURL(key string) string {
	if s.images == nil || key == "" {
		return ""
	}
	return s.images.URL(key)
}
