package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User 用户模型
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;comment:用户标识" json:"id"`
	Username  string    `gorm:"size:255;not null;uniqueIndex;comment:用户名" json:"username"`
	FullName  string    `gorm:"size:255;not null;comment:昵称" json:"fullName"`
	Avatar    string    `gorm:"size:500;comment:用户头像" json:"avatar"`
	Password  string    `gorm:"size:255;not null;comment:密码" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
