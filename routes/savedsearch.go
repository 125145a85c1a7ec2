package routes

import (
	"encoding/json"

	"homefind-server/models"
	"homefind-server/storage"
	"homefind-server/utils"

	"github.com/kataras/iris/v12"
	jsonWT "github.com/kataras/iris/v12/middleware/jwt"
	"gorm.io/datatypes"
)

func ListSavedSearches(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	var searches []models.SavedSearch
	if err := storage.DB.Where("user_id = ?", claims.ID).
		Order("created_at DESC").
		Find(&searches).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "savedSearches": searches})
}

func CreateSavedSearch(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	var input SavedSearchInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	criteriaJSON, marshalErr := json.Marshal(input.Criteria)
	if marshalErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	search := models.SavedSearch{
		UserID:   claims.ID,
		Name:     input.Name,
		Criteria: datatypes.JSON(criteriaJSON),
	}
	if err := storage.DB.Create(&search).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(search)
}

func UpdateSavedSearch(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	id := ctx.Params().Get("id")

	var search models.SavedSearch
	found := storage.DB.Where("id = ? AND user_id = ?", id, claims.ID).Find(&search)
	if found.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if found.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Saved search not found", ctx)
		return
	}

	var input SavedSearchInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	criteriaJSON, marshalErr := json.Marshal(input.Criteria)
	if marshalErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	search.Name = input.Name
	search.Criteria = datatypes.JSON(criteriaJSON)
	if err := storage.DB.Save(&search).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(search)
}

func DeleteSavedSearch(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	id := ctx.Params().Get("id")

	result := storage.DB.Where("id = ? AND user_id = ?", id, claims.ID).Delete(&models.SavedSearch{})
	if result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if result.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Saved search not found", ctx)
		return
	}

	ctx.JSON(iris.Map{"deleted": true})
}

type SavedSearchInput struct {
	Name     string                 `json:"name" validate:"required,max=200"`
	Criteria map[string]interface{} `json:"criteria" validate:"required"`
}
