package models

import (
	"strings"
	"tawheed/src/types"
	"time"
)

type User struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	Username    string     `gorm:"uniqueIndex" json:"username"`
	Email       string     `gorm:"uniqueIndex" json:"email"`
	Password    string     `json:"-"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Phone       string     `json:"phone,omitempty"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	Address     string     `json:"address,omitempty"`
	Role        Role       `gorm:"type:text;default:'user'" json:"role"`
	IsVerified  bool       `json:"is_verified"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`

	Bookings   []Booking      `gorm:"foreignKey:user_id" json:"bookings,omitempty"`
	Activities []UserActivity `gorm:"foreignKey:user_id" json:"activities,omitempty"`

	types.Timestamps
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
