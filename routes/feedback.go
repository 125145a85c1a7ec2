package routes

import (
	"homefind-server/models"
	"homefind-server/services"
	"homefind-server/storage"
	"homefind-server/utils"

	"github.com/kataras/iris/v12"
	jsonWT "github.com/kataras/iris/v12/middleware/jwt"
)

// ListPGFeedback returns all feedback for a property newest first, with the
// author's display identity resolved alongside each entry.
func ListPGFeedback(ctx iris.Context) {
	propertyID, err := ctx.Params().GetUint("propertyID")
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		return
	}

	var feedback []models.PGFeedback
	if dbErr := storage.DB.Where("property_id = ?", propertyID).
		Order("created_at DESC").Find(&feedback).Error; dbErr != nil {
		utils.CreateError(iris.StatusInternalServerError, "Internal Server Error", "Failed to load feedback", ctx)
		return
	}

	type feedbackEntry struct {
		models.PGFeedback
		Author services.DisplayIdentity `json:"author"`
	}
	entries := make([]feedbackEntry, 0, len(feedback))
	for _, fb := range feedback {
		entries = append(entries, feedbackEntry{
			PGFeedback: fb,
			Author:     services.ResolveProfile(services.FetchProfileRelation(fb.UserID)),
		})
	}

	ctx.JSON(iris.Map{"success": true, "feedback": entries})
}

// CreatePGFeedback records the requester's rating of a property. One row per
// resident per property: posting again replaces the earlier entry.
func CreatePGFeedback(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	var input PGFeedbackInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var property models.Property
	if dbErr := storage.DB.First(&property, input.PropertyID).Error; dbErr != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var existing models.PGFeedback
	result := storage.DB.Where("user_id = ? AND property_id = ?", claims.ID, input.PropertyID).
		First(&existing)
	if result.Error == nil {
		existing.Rating = input.Rating
		existing.Feedback = input.Feedback
		if dbErr := storage.DB.Save(&existing).Error; dbErr != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
		ctx.JSON(existing)
		return
	}

	feedback := models.PGFeedback{
		UserID:     claims.ID,
		PropertyID: input.PropertyID,
		Rating:     input.Rating,
		Feedback:   input.Feedback,
	}
	if dbErr := storage.DB.Create(&feedback).Error; dbErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(feedback)
}

// DeletePGFeedback removes the requester's own feedback entry.
func DeletePGFeedback(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		return
	}

	result := storage.DB.Where("id = ? AND user_id = ?", id, claims.ID).
		Delete(&models.PGFeedback{})
	if result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if result.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Feedback not found", ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true})
}

type PGFeedbackInput struct {
	PropertyID uint   `json:"propertyID" validate:"required"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	Feedback   string `json:"feedback" validate:"max=5000"`
}
