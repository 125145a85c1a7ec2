package routes

import (
	"homefind-server/models"
	"homefind-server/services"
	"homefind-server/storage"
	"homefind-server/utils"

	"github.com/kataras/iris/v12"
	jsonWT "github.com/kataras/iris/v12/middleware/jwt"
)

// ListRoommateMatches returns booked students (other than the requester)
// narrowed by the sleep/study filters, each with a resolved identity and a
// compatibility score relative to the requester's own booking record.
func ListRoommateMatches(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	filters := services.FilterOptions{
		SleepSchedule: ctx.URLParamDefault("sleepSchedule", "any"),
		StudyHabits:   ctx.URLParamDefault("studyHabits", "any"),
	}

	query := storage.DB.Where("has_booked_pg = ?", true)
	if propertyID, err := ctx.URLParamInt("propertyID"); err == nil && propertyID > 0 {
		query = query.Where("property_id = ?", propertyID)
	}

	var students []models.StudentDetail
	if dbErr := query.Find(&students).Error; dbErr != nil {
		utils.CreateError(iris.StatusInternalServerError, "Internal Server Error", "Failed to fetch students", ctx)
		return
	}

	// The requester's own record is the scoring baseline; without one every
	// candidate sits at the neutral score.
	var current models.StudentDetail
	storage.DB.Where("user_id = ? AND has_booked_pg = ?", claims.ID, true).Limit(1).Find(&current)

	others := make([]models.StudentDetail, 0, len(students))
	for _, student := range students {
		if student.UserID == claims.ID {
			continue
		}
		others = append(others, student)
	}

	matches := make([]iris.Map, 0, len(others))
	for _, student := range services.FilterStudents(others, filters) {
		identity := services.ResolveProfile(services.FetchProfileRelation(student.UserID))
		matches = append(matches, iris.Map{
			"student":            student,
			"user":               identity,
			"compatibilityScore": services.CompatibilityScore(current, student),
		})
	}

	ctx.JSON(iris.Map{"success": true, "matches": matches})
}

// ListRoommateReviews returns the reviews residents left for each other at a
// property, with reviewer and roommate identities resolved.
func ListRoommateReviews(ctx iris.Context) {
	propertyID, err := ctx.Params().GetUint("propertyID")
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		return
	}

	var reviews []models.RoommateReview
	if dbErr := storage.DB.Where("property_id = ?", propertyID).
		Order("created_at DESC").
		Find(&reviews).Error; dbErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	out := make([]iris.Map, 0, len(reviews))
	for _, review := range reviews {
		out = append(out, iris.Map{
			"review":   review,
			"reviewer": services.ResolveProfile(services.FetchProfileRelation(review.ReviewerID)),
			"roommate": services.ResolveProfile(services.FetchProfileRelation(review.RoommateID)),
		})
	}

	ctx.JSON(iris.Map{"success": true, "reviews": out})
}

func CreateRoommateReview(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	var input RoommateReviewInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.RoommateID == claims.ID {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "You cannot review yourself", ctx)
		return
	}

	review := models.RoommateReview{
		ReviewerID: claims.ID,
		RoommateID: input.RoommateID,
		PropertyID: input.PropertyID,
		Rating:     input.Rating,
		Feedback:   input.Feedback,
	}
	if err := storage.DB.Create(&review).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(review)
}

func DeleteRoommateReview(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	id := ctx.Params().Get("id")

	result := storage.DB.Where("id = ? AND reviewer_id = ?", id, claims.ID).Delete(&models.RoommateReview{})
	if result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if result.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Review not found", ctx)
		return
	}

	ctx.JSON(iris.Map{"deleted": true})
}

type RoommateReviewInput struct {
	RoommateID uint   `json:"roommateID" validate:"required"`
	PropertyID uint   `json:"propertyID" validate:"required"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	Feedback   string `json:"feedback" validate:"max=2000"`
}
