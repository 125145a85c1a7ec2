package models

import (
	"time"

	"gorm.io/datatypes"
)

// SavedSearch stores a named set of listing filter criteria for a user.
type SavedSearch struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"userID" gorm:"not null;index"`
	Name      string         `json:"name" gorm:"not null;size:200"`
	Criteria  datatypes.JSON `json:"criteria"`
	CreatedAt time.Time      `json:"createdAt"`
}
