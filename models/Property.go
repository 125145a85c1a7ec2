package models

import (
	"encoding/json"

	"gorm.io/gorm"
)

// Listing categories and statuses. PG ("paying guest") listings feed the
// student vertical; sale/rent listings are the standard marketplace.
const (
	ListingSale = "sale"
	ListingRent = "rent"
	ListingPG   = "pg"

	StatusActive      = "active"
	StatusUnderReview = "under_review"
	StatusInactive    = "inactive"
)

type Property struct {
	gorm.Model
	UserID       uint    `json:"userID" gorm:"not null;index"`
	Title        string  `json:"title" gorm:"not null"`
	Description  string  `json:"description" gorm:"type:text"`
	Location     string  `json:"location" gorm:"index"`
	Price        float64 `json:"price" gorm:"index"`
	PropertyType string  `json:"propertyType" gorm:"type:varchar(20);index"` // apartment, house, villa, pg, plot
	ListingType  string  `json:"listingType" gorm:"type:varchar(10);index"`  // sale, rent, pg
	Bedrooms     int     `json:"bedrooms"`
	Bathrooms    int     `json:"bathrooms"`
	AreaSqft     float64 `json:"areaSqft"`
	Amenities    string  `json:"amenities"` // JSON object of amenity -> bool
	Images       string  `json:"images"`    // JSON array of URLs

	// Owner contact details shown on the listing
	OwnerName        string `json:"ownerName" gorm:"size:200"`
	OwnerPhone       string `json:"ownerPhone" gorm:"size:20"`
	OwnerEmail       string `json:"ownerEmail" gorm:"size:256"`
	OwnerAddress     string `json:"ownerAddress" gorm:"size:500"`
	OwnerDescription string `json:"ownerDescription" gorm:"type:text"`

	Status string `json:"status" gorm:"type:varchar(20);default:'active';index"` // active, under_review, inactive

	Owner          User            `json:"owner" gorm:"foreignKey:UserID;references:ID"`
	StudentDetails []StudentDetail `json:"studentDetails,omitempty" gorm:"foreignKey:PropertyID"`
}

// Custom JSON marshaling to convert the Images and Amenities string columns
// to their structured forms and to break the owner/properties cycle.
func (p *Property) MarshalJSON() ([]byte, error) {
	type Alias Property
	aux := &struct {
		*Alias
		Images    []string        `json:"images"`
		Amenities map[string]bool `json:"amenities"`
		Owner     *User           `json:"owner,omitempty"`
	}{
		Alias:     (*Alias)(p),
		Images:    []string{},
		Amenities: map[string]bool{},
	}

	if p.Images != "" {
		var images []string
		if err := json.Unmarshal([]byte(p.Images), &images); err == nil {
			aux.Images = images
		}
	}

	if p.Amenities != "" {
		var amenities map[string]bool
		if err := json.Unmarshal([]byte(p.Amenities), &amenities); err == nil {
			aux.Amenities = amenities
		}
	}

	if p.Owner.ID > 0 {
		ownerCopy := p.Owner
		ownerCopy.Properties = nil
		aux.Owner = &ownerCopy
	}

	return json.Marshal(aux)
}
