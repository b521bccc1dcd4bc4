package main

import (
	"log"
	"net/http"
	"os"

	_ "askstack/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"askstack/internal/auth"
	"askstack/internal/cache"
	"askstack/internal/config"
	"askstack/internal/db"
	"askstack/internal/handler"
	"askstack/internal/model"
	"askstack/internal/repository"
	"askstack/internal/router"
	"askstack/internal/service"
	"askstack/internal/upload"
)

// @title AskStack API
// @version 1.0
// @description Q&A forum API with cookie sessions, voting, answer acceptance and notifications.
// @host localhost:8080
// @BasePath /api
// @schemes http
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Notification{},
			&model.Vote{},
			&model.Answer{},
			&model.Question{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Question{},
		&model.Answer{},
		&model.Vote{},
		&model.Notification{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	questionRepo := repository.NewQuestionRepository(gormDB)
	answerRepo := repository.NewAnswerRepository(gormDB)
	voteRepo := repository.NewVoteRepository(gormDB)
	notificationRepo := repository.NewNotificationRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.SessionSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	uploader := upload.New(cfg.AssetHostURL, cfg.AssetHostKey)
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	questionService := service.NewQuestionService(questionRepo, answerRepo, userRepo, cacheClient)
	notificationService := service.NewNotificationService(notificationRepo, userRepo, questionRepo, answerRepo, cacheClient)
	answerService := service.NewAnswerService(questionRepo, answerRepo, notificationService, uploader, cacheClient)
	voteService := service.NewVoteService(questionRepo, answerRepo, voteRepo, notificationService, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	questionHandler := handler.NewQuestionHandler(questionService)
	answerHandler := handler.NewAnswerHandler(answerService, voteService)
	notificationHandler := handler.NewNotificationHandler(notificationService)

	// Register routes
	router.Register(
		e,
		cfg,
		userRepo,
		tokenStore,
		authHandler,
		questionHandler,
		answerHandler,
		notificationHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
