package routes

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"homefind-server/models"
	"homefind-server/storage"
	"homefind-server/utils"

	"github.com/kataras/iris/v12"
	jsonWT "github.com/kataras/iris/v12/middleware/jwt"
	"golang.org/x/exp/slices"
)

var propertyTypes = []string{"apartment", "house", "villa", "pg", "plot"}
var listingTypes = []string{models.ListingSale, models.ListingRent, models.ListingPG}

func CreateProperty(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	var input CreateListingInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	amenities := input.Amenities
	if amenities == nil {
		amenities = map[string]bool{}
	}
	amenitiesJSON, _ := json.Marshal(amenities)

	images := insertImages(claims.ID, input.Images)
	imagesJSON, _ := json.Marshal(images)

	ownerPhone := input.OwnerPhone
	if ownerPhone != "" {
		ownerPhone = utils.NormalizePhoneNumber(ownerPhone)
	}

	property := models.Property{
		UserID:           claims.ID,
		Title:            input.Title,
		Description:      input.Description,
		Location:         input.Location,
		Price:            input.Price,
		PropertyType:     input.PropertyType,
		ListingType:      input.ListingType,
		Bedrooms:         input.Bedrooms,
		Bathrooms:        input.Bathrooms,
		AreaSqft:         input.AreaSqft,
		Amenities:        string(amenitiesJSON),
		Images:           string(imagesJSON),
		OwnerName:        input.OwnerName,
		OwnerPhone:       ownerPhone,
		OwnerEmail:       input.OwnerEmail,
		OwnerAddress:     input.OwnerAddress,
		OwnerDescription: input.OwnerDescription,
		Status:           models.StatusActive,
	}

	result := storage.DB.Create(&property)
	if result.Error != nil {
		utils.CreateError(iris.StatusInternalServerError, "Internal Server Error", "Failed to create property", ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(property)
}

func GetProperty(ctx iris.Context) {
	id := ctx.Params().Get("id")

	property := getPropertyByID(id, ctx)
	if property == nil {
		return
	}

	ctx.JSON(property)
}

// GetUserProperties lists the requester's own listings.
func GetUserProperties(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	var properties []models.Property
	propertiesExist := storage.DB.Where("user_id = ?", claims.ID).Find(&properties)
	if propertiesExist.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(properties)
}

func UpdateProperty(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	id := ctx.Params().Get("id")

	property := getPropertyByID(id, ctx)
	if property == nil {
		return
	}

	if property.UserID != claims.ID {
		utils.CreateError(iris.StatusForbidden, "Forbidden", "You are not authorized to update this property", ctx)
		return
	}

	var input UpdateListingInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	amenities := input.Amenities
	if amenities == nil {
		amenities = map[string]bool{}
	}
	amenitiesJSON, _ := json.Marshal(amenities)

	images := insertImages(claims.ID, input.Images)
	imagesJSON, _ := json.Marshal(images)

	ownerPhone := input.OwnerPhone
	if ownerPhone != "" {
		ownerPhone = utils.NormalizePhoneNumber(ownerPhone)
	}

	property.Title = input.Title
	property.Description = input.Description
	property.Location = input.Location
	property.Price = input.Price
	property.PropertyType = input.PropertyType
	property.ListingType = input.ListingType
	property.Bedrooms = input.Bedrooms
	property.Bathrooms = input.Bathrooms
	property.AreaSqft = input.AreaSqft
	property.Amenities = string(amenitiesJSON)
	property.Images = string(imagesJSON)
	property.OwnerName = input.OwnerName
	property.OwnerPhone = ownerPhone
	property.OwnerEmail = input.OwnerEmail
	property.OwnerAddress = input.OwnerAddress
	property.OwnerDescription = input.OwnerDescription

	if saveErr := storage.DB.Save(property).Error; saveErr != nil {
		utils.CreateError(iris.StatusInternalServerError, "Internal Server Error", "Failed to update property", ctx)
		return
	}

	ctx.JSON(property)
}

// UpdatePropertyStatus lets the owner soft-remove or restore a listing.
func UpdatePropertyStatus(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	id := ctx.Params().Get("id")

	property := getPropertyByID(id, ctx)
	if property == nil {
		return
	}

	if property.UserID != claims.ID {
		utils.CreateError(iris.StatusForbidden, "Forbidden", "You are not authorized to update this property", ctx)
		return
	}

	var input UpdateStatusInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	property.Status = input.Status
	if saveErr := storage.DB.Save(property).Error; saveErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(property)
}

func DeleteProperty(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	id := ctx.Params().Get("id")

	property := getPropertyByID(id, ctx)
	if property == nil {
		return
	}

	if property.UserID != claims.ID {
		utils.CreateError(iris.StatusForbidden, "Forbidden", "You are not authorized to delete this property", ctx)
		return
	}

	// Remove hosted images before the row disappears
	if property.Images != "" {
		var images []string
		if err := json.Unmarshal([]byte(property.Images), &images); err == nil {
			for _, imageURL := range images {
				if !storage.DeleteImage(imageURL) {
					log.Println("failed to remove hosted image:", imageURL)
				}
			}
		}
	}

	if deleteErr := storage.DB.Delete(property).Error; deleteErr != nil {
		utils.CreateError(iris.StatusInternalServerError, "Internal Server Error", "Failed to delete property", ctx)
		return
	}

	ctx.JSON(iris.Map{"deleted": true})
}

// ListProperties returns active listings matching the query-param filters.
func ListProperties(ctx iris.Context) {
	query := storage.DB.Model(&models.Property{}).Where("status = ?", models.StatusActive)

	if location := ctx.URLParam("location"); location != "" {
		query = query.Where("location ILIKE ?", "%"+location+"%")
	}
	if minPrice, err := strconv.ParseFloat(ctx.URLParam("min_price"), 64); err == nil {
		query = query.Where("price >= ?", minPrice)
	}
	if maxPrice, err := strconv.ParseFloat(ctx.URLParam("max_price"), 64); err == nil {
		query = query.Where("price <= ?", maxPrice)
	}
	if propertyType := ctx.URLParam("property_type"); propertyType != "" {
		types := splitAndKeep(propertyType, propertyTypes)
		if len(types) > 0 {
			query = query.Where("property_type IN ?", types)
		}
	}
	if listingType := ctx.URLParam("listing_type"); listingType != "" && slices.Contains(listingTypes, listingType) {
		query = query.Where("listing_type = ?", listingType)
	}
	if bedrooms := ctx.URLParam("bedrooms"); bedrooms != "" {
		counts := make([]int, 0)
		for _, raw := range strings.Split(bedrooms, ",") {
			if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
				counts = append(counts, n)
			}
		}
		if len(counts) > 0 {
			query = query.Where("bedrooms IN ?", counts)
		}
	}
	if search := ctx.URLParam("q"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 20)
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 || perPage > 100 {
		perPage = 20
	}

	var total int64
	query.Count(&total)

	var properties []models.Property
	if err := query.Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&properties).Error; err != nil {
		utils.CreateError(iris.StatusInternalServerError, "Internal Server Error", "Failed to fetch properties", ctx)
		return
	}

	utils.JSONPage(ctx, properties, page, perPage, total)
}

func getPropertyByID(id string, ctx iris.Context) *models.Property {
	var property models.Property
	propertyExists := storage.DB.Where("id = ?", id).Find(&property)

	if propertyExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return nil
	}

	if propertyExists.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Property not found", ctx)
		return nil
	}

	return &property
}

// insertImages uploads incoming base64 images and passes through URLs that
// are already hosted.
func insertImages(userID uint, images []string) []string {
	urls := make([]string, 0, len(images))

	for i, image := range images {
		if image == "" {
			continue
		}
		if strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") {
			urls = append(urls, image)
			continue
		}

		publicID := fmt.Sprintf("properties/%d/%d_%d", userID, time.Now().UnixMilli(), i)
		if url := storage.UploadBase64Image(image, publicID); url != "" {
			urls = append(urls, url)
		}
	}

	return urls
}

func splitAndKeep(csv string, allowed []string) []string {
	kept := make([]string, 0)
	for _, raw := range strings.Split(csv, ",") {
		value := strings.TrimSpace(raw)
		if slices.Contains(allowed, value) {
			kept = append(kept, value)
		}
	}
	return kept
}

type CreateListingInput struct {
	Title            string          `json:"title" validate:"required,max=256"`
	Description      string          `json:"description" validate:"max=10000"`
	Location         string          `json:"location" validate:"required,max=256"`
	Price            float64         `json:"price" validate:"required,gt=0"`
	PropertyType     string          `json:"propertyType" validate:"required,oneof=apartment house villa pg plot"`
	ListingType      string          `json:"listingType" validate:"required,oneof=sale rent pg"`
	Bedrooms         int             `json:"bedrooms" validate:"gte=0"`
	Bathrooms        int             `json:"bathrooms" validate:"gte=0"`
	AreaSqft         float64         `json:"areaSqft" validate:"gte=0"`
	Amenities        map[string]bool `json:"amenities"`
	Images           []string        `json:"images"`
	OwnerName        string          `json:"ownerName" validate:"max=200"`
	OwnerPhone       string          `json:"ownerPhone" validate:"max=20"`
	OwnerEmail       string          `json:"ownerEmail" validate:"omitempty,email"`
	OwnerAddress     string          `json:"ownerAddress" validate:"max=500"`
	OwnerDescription string          `json:"ownerDescription" validate:"max=5000"`
}

type UpdateListingInput struct {
	Title            string          `json:"title" validate:"required,max=256"`
	Description      string          `json:"description" validate:"max=10000"`
	Location         string          `json:"location" validate:"required,max=256"`
	Price            float64         `json:"price" validate:"required,gt=0"`
	PropertyType     string          `json:"propertyType" validate:"required,oneof=apartment house villa pg plot"`
	ListingType      string          `json:"listingType" validate:"required,oneof=sale rent pg"`
	Bedrooms         int             `json:"bedrooms" validate:"gte=0"`
	Bathrooms        int             `json:"bathrooms" validate:"gte=0"`
	AreaSqft         float64         `json:"areaSqft" validate:"gte=0"`
	Amenities        map[string]bool `json:"amenities"`
	Images           []string        `json:"images"`
	OwnerName        string          `json:"ownerName" validate:"max=200"`
	OwnerPhone       string          `json:"ownerPhone" validate:"max=20"`
	OwnerEmail       string          `json:"ownerEmail" validate:"omitempty,email"`
	OwnerAddress     string          `json:"ownerAddress" validate:"max=500"`
	OwnerDescription string          `json:"ownerDescription" validate:"max=5000"`
}

type UpdateStatusInput struct {
	Status string `json:"status" validate:"required,oneof=active under_review inactive"`
}
