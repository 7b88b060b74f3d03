package models

import "tawheed/src/types"

type ContactUs struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	PackageType string `json:"package_type,omitempty"`
	Message     string `json:"message"`
	IsProcessed bool   `json:"is_processed"`

	types.Timestamps
}

func (c *ContactUs) TableName() string { return "contact_us" }
