package routes

import (
	"fmt"
	"net/http"
	"testing"

	"homefind-server/models"
	"homefind-server/storage"

	"github.com/go-redis/redis/v8"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupBookingStore backs storage.DB with an in-memory database so the
// handler's conflict clause runs against a real unique index. The Redis
// client points nowhere; cache invalidation failures are tolerated.
func setupBookingStore(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Property{},
		&models.StudentDetail{},
	); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	storage.DB = db
	storage.Redis = redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	return db
}

func TestUpsertBookingStoresSingleRecord(t *testing.T) {
	db := setupBookingStore(t)

	owner := models.User{FullName: "Owner", Email: "owner@example.com"}
	if err := db.Create(&owner).Error; err != nil {
		t.Fatalf("creating owner: %v", err)
	}
	property := models.Property{
		UserID:      owner.ID,
		Title:       "Sunrise PG",
		ListingType: models.ListingPG,
		Status:      models.StatusActive,
	}
	if err := db.Create(&property).Error; err != nil {
		t.Fatalf("creating property: %v", err)
	}

	app := buildBookingTestApp()
	body := fmt.Sprintf(`{"propertyID":%d,"moveInDate":"2026-09-01","collegeName":"RVCE","degree":"B.Tech","branch":"CSE","sleepTime":"23:00"}`, property.ID)

	// Submitting identical data twice must leave exactly one record for
	// the (user, property) pair.
	for i := 0; i < 2; i++ {
		resp := postBooking(t, app, body)
		if resp.Code != http.StatusOK {
			t.Fatalf("submission %d: expected 200, got %d: %s", i+1, resp.Code, resp.Body.String())
		}
	}

	var count int64
	if err := db.Model(&models.StudentDetail{}).Count(&count).Error; err != nil {
		t.Fatalf("counting records: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one stored record, got %d", count)
	}

	// A changed resubmission replaces the record rather than adding one.
	changed := fmt.Sprintf(`{"propertyID":%d,"moveInDate":"2026-09-01","collegeName":"Christ University","degree":"B.Tech","branch":"CSE"}`, property.ID)
	resp := postBooking(t, app, changed)
	if resp.Code != http.StatusOK {
		t.Fatalf("resubmission: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	if err := db.Model(&models.StudentDetail{}).Count(&count).Error; err != nil {
		t.Fatalf("counting records: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one record after resubmission, got %d", count)
	}

	var detail models.StudentDetail
	if err := db.Where("property_id = ?", property.ID).First(&detail).Error; err != nil {
		t.Fatalf("loading record: %v", err)
	}
	if detail.CollegeName != "Christ University" {
		t.Fatalf("expected resubmission to replace college, got %q", detail.CollegeName)
	}
	if !detail.HasBookedPG {
		t.Fatal("expected stored record to be marked as booked")
	}
}
