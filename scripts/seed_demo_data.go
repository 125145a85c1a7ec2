package main

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"homefind-server/models"
	"homefind-server/storage"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm/clause"
)

// Seeds a handful of PG listings and resident profiles so the roommate
// matching endpoints have data to work with during local development.
func main() {
	godotenv.Load()
	storage.InitializeDB()

	if err := seed(); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}

	fmt.Println("Demo data seeded successfully")
}

func seed() error {
	password, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []models.User{
		{FullName: "Asha Verma", Email: "asha@example.com", Password: string(password), Role: "user"},
		{FullName: "Rohan Mehta", Email: "rohan@example.com", Password: string(password), Role: "user"},
		{FullName: "Priya Nair", Email: "priya@example.com", Password: string(password), Role: "user"},
		{FullName: "Admin", Email: "admin@example.com", Password: string(password), Role: "admin"},
	}
	for i := range users {
		if err := storage.DB.Where("email = ?", users[i].Email).
			FirstOrCreate(&users[i]).Error; err != nil {
			return err
		}
	}

	property := models.Property{
		UserID:       users[0].ID,
		Title:        "Sunrise PG for Students",
		Description:  "Furnished rooms near the engineering college, meals included.",
		Location:     "Koramangala, Bengaluru",
		Price:        8500,
		PropertyType: "pg",
		ListingType:  models.ListingPG,
		Bedrooms:     1,
		Bathrooms:    1,
		Status:       models.StatusActive,
	}
	if err := storage.DB.Where("title = ? AND user_id = ?", property.Title, property.UserID).
		FirstOrCreate(&property).Error; err != nil {
		return err
	}

	moveIn := time.Now().AddDate(0, 1, 0)
	routines := []models.DailyRoutine{
		{WakeUpTime: "6:00", SleepTime: "22:00", StudyHours: "4-6 hours"},
		{WakeUpTime: "7:00", SleepTime: "23:00", StudyHours: "2-4 hours"},
		{WakeUpTime: "9:00", SleepTime: "1:00", StudyHours: "4-6 hours"},
	}
	colleges := []string{"RV College of Engineering", "Christ University", "PES University"}

	for i, routine := range routines {
		payload, marshalErr := json.Marshal(routine)
		if marshalErr != nil {
			return marshalErr
		}

		detail := models.StudentDetail{
			UserID:       users[i].ID,
			PropertyID:   property.ID,
			CollegeName:  colleges[i],
			Degree:       "B.Tech",
			Branch:       "Computer Science",
			YearOfStudy:  "2nd Year",
			MoveInDate:   &moveIn,
			DailyRoutine: datatypes.JSON(payload),
			HasBookedPG:  true,
		}
		if err := storage.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "property_id"}},
			UpdateAll: true,
		}).Create(&detail).Error; err != nil {
			return err
		}
	}

	return nil
}
