package models

import "gorm.io/gorm"

// User is a registered customer. The Password column holds a bcrypt hash and
// is never serialised; callers expose users through views.UserView.
type User struct {
	gorm.Model
	Name     string  `gorm:"size:100;not null" json:"name"`
	Email    string  `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password string  `gorm:"size:200;not null" json:"-"`
	Address  string  `gorm:"size:200" json:"address"`
	Orders   []Order `json:"-"`
}
