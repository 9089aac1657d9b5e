package models

import "time"

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Name         string `gorm:"size:100;not null" json:"name"`
	Phone        string `gorm:"size:20;not null" json:"phone"`
	IdentityID   string `gorm:"size:20;uniqueIndex;not null" json:"-"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
