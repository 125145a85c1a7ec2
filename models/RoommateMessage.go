package models

import "time"

// RoommateMessage is a directed message between two users scoped to a
// property. Rows are never deleted; only the read flag is flipped.
type RoommateMessage struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	SenderID    uint      `json:"senderID" gorm:"not null;index"`
	RecipientID uint      `json:"recipientID" gorm:"not null;index"`
	PropertyID  uint      `json:"propertyID" gorm:"not null;index"`
	Message     string    `json:"message" gorm:"type:text;not null"`
	Read        bool      `json:"read" gorm:"default:false"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
