package model

import "time"

// Comment 评论，创建后不可编辑
type Comment struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	PostID    string    `gorm:"type:varchar(36);index:idx_comment_post;not null"`
	Post      *Post     `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	AuthorID  string    `gorm:"type:varchar(36);index;not null"`
	Author    *User     `gorm:"foreignKey:AuthorID"`
	Text      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"index:idx_comment_post"`
}

func (Comment) TableName() string { return "comments" }
