package model

import "time"

// PostTitleLen String() 截取的字符数
const PostTitleLen = 15

// Post 帖子，作者创建后不可变更
type Post struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	Text      string    `gorm:"type:text;not null"`
	AuthorID  string    `gorm:"type:varchar(36);index:idx_post_author;not null"`
	Author    *User     `gorm:"foreignKey:AuthorID"`
	GroupID   *string   `gorm:"type:varchar(36);index:idx_post_group"`
	Group     *Group    `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL"`
	Image     string    `gorm:"type:varchar(255)"`
	CreatedAt time.Time `gorm:"index:idx_post_created"`
	UpdatedAt time.Time
}

func (Post) TableName() string { return "posts" }

func (p *Post) String() string {
	r := []rune(p.Text)
	if len(r) > PostTitleLen {
		r = r[:PostTitleLen]
	}
	return string(r)
}
