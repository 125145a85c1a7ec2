package models

import "gorm.io/gorm"

// RoommateReview is a rating one resident leaves for another, scoped to the
// property they shared.
type RoommateReview struct {
	gorm.Model
	ReviewerID uint   `json:"reviewerID" gorm:"not null;index"`
	RoommateID uint   `json:"roommateID" gorm:"not null;index"`
	PropertyID uint   `json:"propertyID" gorm:"not null;index"`
	Rating     int    `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Feedback   string `json:"feedback" gorm:"type:text"`
}
