package models

import "time"

// UserActivity rows are append-only. Nothing in the API updates or deletes
// them once written.
type UserActivity struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	UserID      uint      `json:"user"`
	Action      string    `json:"action"`
	Description string    `json:"description,omitempty"`
	IPAddress   string    `json:"ip_address,omitempty"`
	Timestamp   time.Time `gorm:"autoCreateTime" json:"timestamp"`

	User *User `gorm:"foreignKey:user_id" json:"-"`
}

const (
	ActionUserRegistered  = "USER_REGISTERED"
	ActionUserLogin       = "USER_LOGIN"
	ActionUserLogout      = "USER_LOGOUT"
	ActionTokenVerified   = "TOKEN_VERIFIED"
	ActionUserCreated     = "USER_CREATED"
	ActionUserUpdated     = "USER_UPDATED"
	ActionUserDeleted     = "USER_DELETED"
	ActionPasswordChanged = "PASSWORD_CHANGED"
	ActionUserActivated   = "USER_ACTIVATED"
	ActionUserDeactivated = "USER_DEACTIVATED"
	ActionUsersViewed     = "USERS_VIEWED"
)
