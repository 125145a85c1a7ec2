package routes

import (
	"homefind-server/models"
	"homefind-server/storage"
	"homefind-server/utils"

	"github.com/kataras/iris/v12"
	jsonWT "github.com/kataras/iris/v12/middleware/jwt"
	"gorm.io/gorm/clause"
)

// ListFavorites returns the requester's favorites with the listing attached.
func ListFavorites(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	var favorites []models.Favorite
	if err := storage.DB.Where("user_id = ?", claims.ID).
		Preload(clause.Associations).
		Order("created_at DESC").
		Find(&favorites).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "favorites": favorites})
}

// AddFavorite marks a property as a favorite; repeat adds are no-ops thanks
// to the unique (user, property) index.
func AddFavorite(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	var input FavoriteInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var property models.Property
	if err := storage.DB.First(&property, input.PropertyID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Property not found", ctx)
		return
	}

	favorite := models.Favorite{UserID: claims.ID, PropertyID: input.PropertyID}
	if err := storage.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&favorite).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(favorite)
}

func RemoveFavorite(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	propertyID := ctx.Params().Get("propertyID")

	if err := storage.DB.Where("user_id = ? AND property_id = ?", claims.ID, propertyID).
		Delete(&models.Favorite{}).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"deleted": true})
}

// CheckFavorite reports whether a property is in the requester's favorites.
func CheckFavorite(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	propertyID := ctx.Params().Get("propertyID")

	var count int64
	storage.DB.Model(&models.Favorite{}).
		Where("user_id = ? AND property_id = ?", claims.ID, propertyID).
		Count(&count)

	ctx.JSON(iris.Map{"isFavorite": count > 0})
}

type FavoriteInput struct {
	PropertyID uint `json:"propertyID" validate:"required"`
}
