package models

import "time"

// Favorite is a user-owned join record; one row per (user, property).
type Favorite struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"userID" gorm:"not null;uniqueIndex:idx_favorites_user_property"`
	PropertyID uint      `json:"propertyID" gorm:"not null;uniqueIndex:idx_favorites_user_property"`
	CreatedAt  time.Time `json:"createdAt"`

	Property Property `json:"property" gorm:"foreignKey:PropertyID;references:ID"`
}
