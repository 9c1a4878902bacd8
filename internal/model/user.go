package model

import (
	"strings"
	"time"
)

// User 用户
type User struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username     string    `json:"username" gorm:"type:varchar(150);uniqueIndex;not null"`
	FirstName    string    `json:"first_name" gorm:"type:varchar(150)"`
	LastName     string    `json:"last_name" gorm:"type:varchar(150)"`
	Email        string    `json:"email" gorm:"type:varchar(254)"`
	PasswordHash string    `json:"-" gorm:"type:varchar(100);not null"`
	IsStaff      bool      `json:"-" gorm:"not null;default:false"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"-"`
}

func (User) TableName() string { return "users" }

// FullName 姓名，为空时回退到用户名
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

func (u *User) String() string { return u.Username }
