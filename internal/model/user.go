package model

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	FirstName           string     `gorm:"column:first_name;not null"`
	LastName            string     `gorm:"column:last_name;not null"`
	Phone               string     `gorm:"column:phone"`
	Email               string     `gorm:"column:email;uniqueIndex;not null"`
	Password            string     `gorm:"column:password;not null"`
	Role                string     `gorm:"column:role;size:20;default:user;not null;index"`
	Status              string     `gorm:"column:status;size:20;default:active;not null;index"`
	LastLogin           *time.Time `gorm:"column:last_login"`
	TokenVersion        int        `gorm:"column:token_version;default:1;not null"`
	RefreshTokenHash    string     `gorm:"column:refresh_token_hash;default:null"`
	RefreshTokenExpires *time.Time `gorm:"column:refresh_token_expires_at;default:null"`
}

func (User) TableName() string {
	return "users"
}
