package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"askstack/internal/auth"
	"askstack/internal/config"
	"askstack/internal/handler"
	"askstack/internal/repository"
)

// Register wires routes and middleware. Reads on questions are public;
// everything that writes or is user-scoped sits behind the session cookie.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	userRepo repository.UserRepository,
	tokenStore auth.RevocationStore,
	authHandler *handler.AuthHandler,
	questionHandler *handler.QuestionHandler,
	answerHandler *handler.AnswerHandler,
	notificationHandler *handler.NotificationHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/signup", authHandler.Signup)
	api.POST("/login", authHandler.Login)
	api.POST("/logout", authHandler.Logout)
	api.GET("/questions", questionHandler.List)
	api.GET("/questions/:id", questionHandler.Get)

	// Secured routes: the JWT middleware verifies the cookie signature, then
	// ResolveUser checks revocation and loads the live user.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.SessionSecret),
		TokenLookup: "cookie:" + auth.CookieName,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return &auth.Claims{}
		},
	}), auth.ResolveUser(userRepo, tokenStore))

	secured.GET("/me", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"user_id":  auth.UserID(c),
			"username": auth.Username(c),
		})
	})

	// Question routes
	secured.POST("/questions", questionHandler.Create)
	secured.PUT("/questions/:id", questionHandler.Update)

	// Answer routes
	secured.POST("/questions/:id/answers", answerHandler.Create)
	secured.POST("/questions/:id/answers/:answerId/accept", answerHandler.Accept)
	secured.POST("/answers/:id/vote", answerHandler.Vote)

	// Notification routes
	secured.GET("/notifications", notificationHandler.List)
	secured.GET("/notifications/unread-count", notificationHandler.UnreadCount)
	secured.POST("/notifications/read-all", notificationHandler.MarkAllRead)
	secured.POST("/notifications/:id/read", notificationHandler.MarkRead)
	secured.POST("/notifications/answer", notificationHandler.NotifyAnswer)
	secured.POST("/notifications/mention", notificationHandler.NotifyMention)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
