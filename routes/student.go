package routes

import (
	"encoding/json"
	"fmt"
	"time"

	"homefind-server/models"
	"homefind-server/services"
	"homefind-server/storage"
	"homefind-server/utils"

	"github.com/kataras/iris/v12"
	jsonWT "github.com/kataras/iris/v12/middleware/jwt"
	"gorm.io/datatypes"
	"gorm.io/gorm/clause"
)

const bookingCacheTTL = 5 * time.Minute

func bookingCacheKey(userID uint, propertyID uint) string {
	return fmt.Sprintf("booking:%d:%d", userID, propertyID)
}

func studentDetailsCacheKey(userID uint) string {
	return fmt.Sprintf("studentdetails:%d", userID)
}

// UpsertBooking creates or replaces the requester's booking for a property.
// The (user, property) pair is the conflict target, so resubmitting the form
// overwrites the prior record instead of duplicating it.
func UpsertBooking(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	var input BookingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if msg, ok := validateBookingInput(input); !ok {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", msg, ctx)
		return
	}

	moveInDate, err := parseBookingDate(input.MoveInDate)
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Please select a move-in date", ctx)
		return
	}

	var moveOutDate *time.Time
	if input.MoveOutDate != "" {
		parsed, parseErr := parseBookingDate(input.MoveOutDate)
		if parseErr != nil {
			utils.CreateError(iris.StatusBadRequest, "Validation Error", "Move-out date is not a valid date", ctx)
			return
		}
		moveOutDate = &parsed
	}

	var property models.Property
	if err := storage.DB.First(&property, input.PropertyID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Property not found", ctx)
		return
	}

	routineJSON, _ := json.Marshal(models.DailyRoutine{
		WakeUpTime:                input.WakeUpTime,
		SleepTime:                 input.SleepTime,
		StudyHours:                input.StudyHours,
		WorkSchedule:              input.WorkSchedule,
		ExtracurricularActivities: input.ExtracurricularActivities,
	})
	prefsJSON, _ := json.Marshal(models.StayPreferences{
		RoomType:        input.RoomType,
		SpecialRequests: input.SpecialRequests,
		Cleanliness:     input.Cleanliness,
		NoiseTolerance:  input.NoiseTolerance,
		SleepSchedule:   input.SleepSchedule,
		GuestFrequency:  input.GuestFrequency,
	})

	booking := models.StudentDetail{
		UserID:       claims.ID,
		PropertyID:   input.PropertyID,
		CollegeName:  input.CollegeName,
		Degree:       input.Degree,
		Branch:       input.Branch,
		Course:       input.Course,
		YearOfStudy:  input.YearOfStudy,
		MoveInDate:   &moveInDate,
		MoveOutDate:  moveOutDate,
		DailyRoutine: datatypes.JSON(routineJSON),
		Preferences:  datatypes.JSON(prefsJSON),
		HasBookedPG:  true,
	}

	// Single atomic insert-or-replace on the unique pair; concurrent
	// submissions resolve last-write-wins without a read-then-write race.
	upsert := storage.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "property_id"}},
		UpdateAll: true,
	}).Create(&booking)
	if upsert.Error != nil {
		utils.CreateError(iris.StatusInternalServerError, "Internal Server Error", upsert.Error.Error(), ctx)
		return
	}

	// Dependent cached views are stale now
	storage.Redis.Del(ctx, bookingCacheKey(claims.ID, input.PropertyID))
	storage.Redis.Del(ctx, studentDetailsCacheKey(claims.ID))

	var student models.Profile
	studentName := "A student"
	if err := storage.DB.Where("user_id = ?", claims.ID).First(&student).Error; err == nil && student.FullName != "" {
		studentName = student.FullName
	}
	notificationService := services.NewNotificationService()
	go notificationService.SendBookingNotificationToOwner(property.UserID, claims.ID, property.ID, studentName, property.Title)

	ctx.JSON(iris.Map{"success": true, "booking": booking})
}

// GetMyBooking returns the requester's booking for one property, read
// through a short-lived Redis cache.
func GetMyBooking(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	propertyID, err := ctx.Params().GetUint("propertyID")
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		return
	}

	cacheKey := bookingCacheKey(claims.ID, propertyID)
	if cached, cacheErr := storage.Redis.Get(ctx, cacheKey).Result(); cacheErr == nil {
		ctx.ContentType("application/json")
		ctx.WriteString(cached)
		return
	}

	var booking models.StudentDetail
	found := storage.DB.Where("user_id = ? AND property_id = ?", claims.ID, propertyID).Find(&booking)
	if found.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var payload []byte
	if found.RowsAffected == 0 {
		payload, _ = json.Marshal(iris.Map{"success": true, "booking": nil})
	} else {
		payload, _ = json.Marshal(iris.Map{"success": true, "booking": booking})
	}

	storage.Redis.Set(ctx, cacheKey, string(payload), bookingCacheTTL)
	ctx.ContentType("application/json")
	ctx.Write(payload)
}

// GetMyStudentDetails returns the requester's student record with the booked
// property attached, if any.
func GetMyStudentDetails(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	cacheKey := studentDetailsCacheKey(claims.ID)
	if cached, cacheErr := storage.Redis.Get(ctx, cacheKey).Result(); cacheErr == nil {
		ctx.ContentType("application/json")
		ctx.WriteString(cached)
		return
	}

	var details models.StudentDetail
	found := storage.DB.Where("user_id = ?", claims.ID).Preload("Property").Find(&details)
	if found.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var payload []byte
	if found.RowsAffected == 0 {
		payload, _ = json.Marshal(iris.Map{"success": true, "studentDetails": nil})
	} else {
		payload, _ = json.Marshal(iris.Map{"success": true, "studentDetails": details})
	}

	storage.Redis.Set(ctx, cacheKey, string(payload), bookingCacheTTL)
	ctx.ContentType("application/json")
	ctx.Write(payload)
}

// GetPropertyResidents lists the students who booked a property, each with a
// resolved display identity. A profile join that fails or comes back empty
// degrades to sentinels instead of failing the request.
func GetPropertyResidents(ctx iris.Context) {
	propertyID, err := ctx.Params().GetUint("propertyID")
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		return
	}

	var students []models.StudentDetail
	if dbErr := storage.DB.Where("property_id = ? AND has_booked_pg = ?", propertyID, true).
		Find(&students).Error; dbErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	residents := make([]iris.Map, 0, len(students))
	for _, student := range students {
		identity := services.ResolveProfile(services.FetchProfileRelation(student.UserID))
		residents = append(residents, iris.Map{
			"student": student,
			"user":    identity,
		})
	}

	ctx.JSON(iris.Map{"success": true, "residents": residents})
}

// validateBookingInput applies the booking form's required-field checks in
// their fixed order, returning the first failure's user-facing message.
func validateBookingInput(input BookingInput) (string, bool) {
	if input.MoveInDate == "" {
		return "Please select a move-in date", false
	}
	if input.CollegeName == "" {
		return "Please enter your college name", false
	}
	if input.Degree == "" {
		return "Please enter your degree", false
	}
	if input.Branch == "" {
		return "Please enter your branch", false
	}
	return "", true
}

func parseBookingDate(value string) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", value)
}

type BookingInput struct {
	PropertyID  uint   `json:"propertyID" validate:"required"`
	MoveInDate  string `json:"moveInDate"`
	MoveOutDate string `json:"moveOutDate"`
	CollegeName string `json:"collegeName" validate:"max=200"`
	Degree      string `json:"degree" validate:"max=100"`
	Branch      string `json:"branch" validate:"max=100"`
	Course      string `json:"course" validate:"max=100"`
	YearOfStudy string `json:"yearOfStudy" validate:"max=20"`

	WakeUpTime                string `json:"wakeUpTime" validate:"max=20"`
	SleepTime                 string `json:"sleepTime" validate:"max=20"`
	StudyHours                string `json:"studyHours" validate:"max=100"`
	WorkSchedule              string `json:"workSchedule" validate:"max=200"`
	ExtracurricularActivities string `json:"extracurricularActivities" validate:"max=1000"`

	RoomType        string `json:"roomType" validate:"omitempty,oneof=shared single double"`
	SpecialRequests string `json:"specialRequests" validate:"max=2000"`
	Cleanliness     int    `json:"cleanliness" validate:"omitempty,min=1,max=5"`
	NoiseTolerance  int    `json:"noiseTolerance" validate:"omitempty,min=1,max=5"`
	SleepSchedule   string `json:"sleepSchedule" validate:"omitempty,oneof=early normal late"`
	GuestFrequency  string `json:"guestFrequency" validate:"omitempty,oneof=never rarely sometimes often"`
}
