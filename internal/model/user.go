package model

import (
	"strings"
	"time"
)

// swagger:model User
type User struct {
	BaseModel
	Username  string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Avatar    string    `gorm:"size:8" json:"avatar"`
	JoinDate  time.Time `json:"joinDate"`
	LastLogin time.Time `json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}

// AvatarInitials derives the display initials from a username: the
// first two characters, uppercased.
func AvatarInitials(username string) string {
	r := []rune(username)
	if len(r) > 2 {
		r = r[:2]
	}
	return strings.ToUpper(string(r))
}
