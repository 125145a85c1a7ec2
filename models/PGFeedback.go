package models

import "gorm.io/gorm"

// PGFeedback is a resident's rating of a PG property itself.
type PGFeedback struct {
	gorm.Model
	UserID     uint     `json:"userID" gorm:"not null;index"`
	PropertyID uint     `json:"propertyID" gorm:"not null;index"`
	Rating     int      `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Feedback   string   `json:"feedback" gorm:"type:text"`
	Property   Property `json:"property,omitempty" gorm:"foreignKey:PropertyID;references:ID"`
}
