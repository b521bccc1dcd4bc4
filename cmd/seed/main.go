package main

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"askstack/internal/config"
	"askstack/internal/db"
	"askstack/internal/model"
)

// seedPassword is shared by every demo user.
const seedPassword = "password123"

type seedUser struct {
	Username string
	Email    string
	Role     model.Role
}

var seedUsers = []seedUser{
	{Username: "alice", Email: "alice@example.com", Role: model.RoleUser},
	{Username: "bob", Email: "bob@example.com", Role: model.RoleUser},
	{Username: "carol", Email: "carol@example.com", Role: model.RoleAdmin},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Question{},
		&model.Answer{},
		&model.Vote{},
		&model.Notification{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	users, err := seedDemoUsers(gormDB)
	if err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}

	if err := seedDemoContent(gormDB, users); err != nil {
		log.Fatalf("Failed to seed content: %v", err)
	}

	log.Println("Seed completed")
}

// seedDemoUsers inserts the demo users, skipping any username that already
// exists so the script can be re-run safely.
func seedDemoUsers(gormDB *gorm.DB) (map[string]*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make(map[string]*model.User, len(seedUsers))
	for _, s := range seedUsers {
		user := &model.User{
			Username:     s.Username,
			Email:        s.Email,
			PasswordHash: string(hash),
			Role:         s.Role,
		}
		result := gormDB.Where(model.User{Username: s.Username}).FirstOrCreate(user)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected > 0 {
			log.Printf("Created user %s", s.Username)
		} else {
			log.Printf("User %s already exists, skipping", s.Username)
		}
		users[s.Username] = user
	}
	return users, nil
}

// seedDemoContent inserts one question with two answers. Content is only
// created once, keyed on the question title.
func seedDemoContent(gormDB *gorm.DB, users map[string]*model.User) error {
	question := &model.Question{
		UserID:      users["alice"].ID,
		Title:       "How do I connect GORM to MySQL?",
		Description: "I keep getting a connection refused error when opening the DSN. What am I missing?",
		Tags:        model.Tags{"go", "gorm", "mysql"},
	}
	result := gormDB.Where(model.Question{Title: question.Title}).FirstOrCreate(question)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		log.Println("Demo question already exists, skipping content")
		return nil
	}
	log.Printf("Created question %d", question.ID)

	answers := []model.Answer{
		{
			QuestionID:  question.ID,
			UserID:      users["bob"].ID,
			Description: "Check that parseTime=True is in the DSN and that MySQL is listening on the port you configured.",
			Tags:        model.Tags{"gorm"},
		},
		{
			QuestionID:  question.ID,
			UserID:      users["carol"].ID,
			Description: "@bob is right. Also make sure the user has been granted access from your host, not just localhost.",
			Tags:        model.Tags{},
		},
	}
	for i := range answers {
		if err := gormDB.Create(&answers[i]).Error; err != nil {
			return err
		}
		log.Printf("Created answer %d", answers[i].ID)
	}
	return nil
}
