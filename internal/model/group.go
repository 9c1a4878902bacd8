package model

// Group 社区分组
type Group struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title       string `json:"title" gorm:"type:varchar(200);not null"`
	Slug        string `json:"slug" gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string `json:"description" gorm:"type:text"`
}

func (Group) TableName() string { return "post_groups" }

func (g *Group) String() string { return g.Title }
