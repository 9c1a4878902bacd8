package model

import (
	"time"
)

// Follow 关注关系（UserID 关注 AuthorID）
type Follow struct {
	ID       string `gorm:"primaryKey;type:varchar(36)"`
	UserID   string `gorm:"type:varchar(36);index:idx_follow_user;index:idx_follow_pair,unique;not null;check:chk_follow_self,user_id <> author_id"`
	AuthorID string `gorm:"type:varchar(36);index:idx_follow_author;index:idx_follow_pair,unique;not null"`
	// 复合唯一键，避免重复关注
	// idx_follow_pair = (user_id, author_id)
	CreatedAt time.Time
}

func (Follow) TableName() string { return "follows" }

// All 全部模型，用于迁移
func All() []any {
	return []any{&User{}, &Group{}, &Post{}, &Comment{}, &Follow{}}
}
