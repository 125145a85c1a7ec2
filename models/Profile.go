package models

import (
	"time"

	"gorm.io/gorm"
)

// Profile holds the public identity record for a user, separate from the
// User model which handles authentication. There is exactly one per user.
type Profile struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"userID" gorm:"not null;uniqueIndex"`
	User      User           `json:"-" gorm:"foreignKey:UserID"`
	FullName  string         `json:"fullName" gorm:"size:200"`
	Email     string         `json:"email" gorm:"size:256"`
	Phone     string         `json:"phone" gorm:"size:20"`
	Bio       string         `json:"bio" gorm:"type:text"`
	Location  string         `json:"location" gorm:"size:200"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"deletedAt" gorm:"index"`
}
