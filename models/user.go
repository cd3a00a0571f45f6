package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a Telegram account that submitted at least one report.
// The primary key is the Telegram user id, assigned externally.
type User struct {
	UserID    int64          `json:"telegram_user_id" gorm:"column:user_id;primaryKey;autoIncrement:false"`
	Username  string         `json:"telegram_username" gorm:"size:255"`
	FirstName string         `json:"first_name" gorm:"size:255"`
	LastName  string         `json:"last_name" gorm:"size:255"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}
