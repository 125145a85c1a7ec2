package routes

import (
	"homefind-server/models"
	"homefind-server/storage"
	"homefind-server/utils"

	"github.com/kataras/iris/v12"
	jsonWT "github.com/kataras/iris/v12/middleware/jwt"
)

// GetMyProfile returns the requester's identity record. A user who has not
// filled anything in yet gets an empty profile shell rather than a 404.
func GetMyProfile(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	var profile models.Profile
	if err := storage.DB.Where("user_id = ?", claims.ID).First(&profile).Error; err != nil {
		ctx.JSON(iris.Map{
			"success": true,
			"profile": models.Profile{UserID: claims.ID},
		})
		return
	}

	ctx.JSON(iris.Map{
		"success": true,
		"profile": profile,
	})
}

// UpsertMyProfile creates or updates the requester's identity record.
func UpsertMyProfile(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	var input UpsertProfileInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.Phone != "" && !utils.ValidatePhoneNumber(input.Phone) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Phone number must be a valid 10 digit mobile number.", ctx)
		return
	}

	phone := input.Phone
	if phone != "" {
		phone = utils.NormalizePhoneNumber(phone)
	}

	var profile models.Profile
	err := storage.DB.Where("user_id = ?", claims.ID).First(&profile).Error
	if err != nil {
		profile = models.Profile{
			UserID:   claims.ID,
			FullName: input.FullName,
			Email:    input.Email,
			Phone:    phone,
			Bio:      input.Bio,
			Location: input.Location,
		}
		if createErr := storage.DB.Create(&profile).Error; createErr != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
	} else {
		profile.FullName = input.FullName
		profile.Email = input.Email
		profile.Phone = phone
		profile.Bio = input.Bio
		profile.Location = input.Location
		if saveErr := storage.DB.Save(&profile).Error; saveErr != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
	}

	ctx.JSON(iris.Map{
		"success": true,
		"profile": profile,
	})
}

type UpsertProfileInput struct {
	FullName string `json:"fullName" validate:"required,min=2,max=200"`
	Email    string `json:"email" validate:"required,email,max=256"`
	Phone    string `json:"phone" validate:"required,min=10,max=20"`
	Location string `json:"location" validate:"required,min=2,max=200"`
	Bio      string `json:"bio" validate:"max=2000"`
}
