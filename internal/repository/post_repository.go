package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/gin-blog/internal/model"
)

// PostFilter 帖子列表过滤条件，零值表示不过滤
type PostFilter struct {
	GroupID  string
	AuthorID string
	// FollowerID 非空时只返回该用户关注的作者的帖子
	FollowerID string
	// None 为 true 时不匹配任何帖子
	None bool
}

func (f PostFilter) scope(db *gorm.DB) *gorm.DB {
	if f.None {
		return db.Where("1 = 0")
	}
	if f.GroupID != "" {
		db = db.Where("posts.group_id = ?", f.GroupID)
	}
	if f.AuthorID != "" {
		db = db.Where("posts.author_id = ?", f.AuthorID)
	}
	if f.FollowerID != "" {
		sub := db.Session(&gorm.Session{NewDB: true}).
			Model(&model.Follow{}).
			Select("author_id").
			Where("user_id = ?", f.FollowerID)
		db = db.Where("posts.author_id IN (?)", sub)
	}
	return db
}

type PostRepository interface {
	Create(ctx context.Context, p *model.Post) error
	Update(ctx context.Context, p *model.Post) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*model.Post, error)
	Count(ctx context.Context, f PostFilter) (int64, error)
	// List 按创建时间倒序，limit < 0 表示不限制
	List(ctx context.Context, f PostFilter, offset, limit int) ([]*model.Post, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) Create(ctx context.Context, p *model.Post) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Omit("Author", "Group").Create(p).Error
}

// Update 只更新正文、分组和图片，作者保持不变
func (r *postRepository) Update(ctx context.Context, p *model.Post) error {
	res := r.db.WithContext(ctx).
		Model(&model.Post{ID: p.ID}).
		Updates(map[string]any{
			"text":     p.Text,
			"group_id": p.GroupID,
			"image":    p.Image,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Post{}).Error
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
	var p model.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		Where("posts.id = ?", id).
		First(&p).Error
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *postRepository) Count(ctx context.Context, f PostFilter) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.Post{}).Scopes(f.scope).Count(&cnt).Error
	return cnt, err
}

func (r *postRepository) List(ctx context.Context, f PostFilter, offset, limit int) ([]*model.Post, error) {
	var res []*model.Post
	err := r.db.WithContext(ctx).
		Model(&model.Post{}).
		Scopes(f.scope).
		Preload("Author").
		Preload("Group").
		Order("posts.created_at DESC, posts.id DESC").
		Offset(offset).
		Limit(limit).
		Find(&res).Error
	return res, err
}
