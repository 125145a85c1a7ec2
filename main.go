package main

import (
	"fmt"
	"log"
	"os"

	"homefind-server/routes"
	"homefind-server/storage"
	"homefind-server/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	// Only load .env in development
	if os.Getenv("RENDER") == "" {
		godotenv.Load()
	}

	storage.InitializeDB()
	storage.InitializeRedis()
	storage.InitializeCloudinary()

	app := iris.New()
	app.Validator = validator.New()

	// CORS configuration
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	// JWT Verifiers
	resetTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("EMAIL_TOKEN_SECRET")))
	resetTokenVerifier.WithDefaultBlocklist()
	resetTokenVerifierMiddleware := resetTokenVerifier.Verify(func() interface{} {
		return new(utils.ForgotPasswordToken)
	})

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput utils.RefreshTokenInput
		err := ctx.ReadJSON(&tokenInput)
		if err != nil {
			return ""
		}
		return tokenInput.RefreshToken
	})

	app.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"status": "ok"})
	})

	user := app.Party("/api/user")
	{
		user.Post("/register", routes.Register)
		user.Post("/login", routes.Login)
		user.Post("/google", routes.GoogleLoginOrSignUp)
		user.Post("/forgotpassword", routes.ForgotPassword)
		user.Post("/resetpassword", resetTokenVerifierMiddleware, routes.ResetPassword)
		user.Patch("/{id}/pushtoken", accessTokenVerifierMiddleware, utils.UserIDMiddleware, routes.AlterPushToken)
		user.Patch("/{id}/settings/notifications", accessTokenVerifierMiddleware, utils.UserIDMiddleware, routes.AllowsNotifications)
	}

	profile := app.Party("/api/profile", accessTokenVerifierMiddleware)
	{
		profile.Get("/", routes.GetMyProfile)
		profile.Post("/", routes.UpsertMyProfile)
		profile.Put("/", routes.UpsertMyProfile)
	}

	property := app.Party("/api/property")
	{
		property.Get("/", routes.ListProperties)
		property.Post("/", accessTokenVerifierMiddleware, routes.CreateProperty)
		property.Get("/mine", accessTokenVerifierMiddleware, routes.GetUserProperties)
		property.Get("/{id}", routes.GetProperty)
		property.Patch("/{id}", accessTokenVerifierMiddleware, routes.UpdateProperty)
		property.Patch("/{id}/status", accessTokenVerifierMiddleware, routes.UpdatePropertyStatus)
		property.Delete("/{id}", accessTokenVerifierMiddleware, routes.DeleteProperty)
	}

	favorites := app.Party("/api/favorites", accessTokenVerifierMiddleware)
	{
		favorites.Get("/", routes.ListFavorites)
		favorites.Post("/", routes.AddFavorite)
		favorites.Get("/{propertyID}", routes.CheckFavorite)
		favorites.Delete("/{propertyID}", routes.RemoveFavorite)
	}

	savedSearches := app.Party("/api/saved-searches", accessTokenVerifierMiddleware)
	{
		savedSearches.Get("/", routes.ListSavedSearches)
		savedSearches.Post("/", routes.CreateSavedSearch)
		savedSearches.Put("/{id}", routes.UpdateSavedSearch)
		savedSearches.Delete("/{id}", routes.DeleteSavedSearch)
	}

	student := app.Party("/api/student", accessTokenVerifierMiddleware)
	{
		student.Post("/booking", routes.UpsertBooking)
		student.Get("/booking/{propertyID:uint}", routes.GetMyBooking)
		student.Get("/details", routes.GetMyStudentDetails)
		student.Get("/residents/{propertyID:uint}", routes.GetPropertyResidents)
	}

	roommate := app.Party("/api/roommate", accessTokenVerifierMiddleware)
	{
		roommate.Get("/matches", routes.ListRoommateMatches)
		roommate.Get("/reviews/{propertyID:uint}", routes.ListRoommateReviews)
		roommate.Post("/reviews", routes.CreateRoommateReview)
		roommate.Delete("/reviews/{id}", routes.DeleteRoommateReview)

		// Chat
		roommate.Post("/messages", routes.SendRoommateMessage)
		roommate.Get("/messages/{propertyID:uint}", routes.ListRoommateMessages)
		roommate.Get("/messages/{propertyID:uint}/stream", routes.StreamRoommateMessages)
		roommate.Patch("/messages/{id:uint}/read", routes.MarkMessageRead)
		roommate.Post("/typing/{propertyID:uint}", routes.Typing)
		roommate.Get("/typing/{propertyID:uint}/{userID:uint}", routes.IsTyping)
	}

	feedback := app.Party("/api/feedback")
	{
		feedback.Get("/{propertyID:uint}", routes.ListPGFeedback)
		feedback.Post("/", accessTokenVerifierMiddleware, routes.CreatePGFeedback)
		feedback.Delete("/{id:uint}", accessTokenVerifierMiddleware, routes.DeletePGFeedback)
	}

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Get("/users", routes.AdminListUsers)
		admin.Get("/properties", routes.AdminListProperties)
		admin.Patch("/properties/{id:uint}/status", routes.AdminUpdatePropertyStatus)
	}

	app.Post("/api/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	addr := "0.0.0.0:" + port

	fmt.Printf("Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
