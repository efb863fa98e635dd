package database

import (
	"fmt"
	"log"

	config "quizz_backend/configs"
	"quizz_backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the Postgres handle. Callers pass it down to the handlers;
// there is no package-level connection.
func Connect() (*gorm.DB, error) {
	dsn := config.Config("DATABASE_URL")

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	fmt.Println("✅ Database connected successfully")
	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Quiz{},
		&models.Question{},
		&models.Attempt{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	fmt.Println("✅ Database migration successful")
	return nil
}

// SeedDefaultUsers creates one account per role when the users table is
// empty, so a fresh install can be logged into right away.
func SeedDefaultUsers(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check for existing users: %w", err)
	}
	if count > 0 {
		return nil
	}

	defaults := []struct {
		username string
		email    string
		password string
		role     string
	}{
		{"Admin", config.ConfigOr("ADMIN_EMAIL", "admin@quizz.com"), config.ConfigOr("ADMIN_PASSWORD", "admin123"), models.RoleAdmin},
		{"Teacher", config.ConfigOr("TEACHER_EMAIL", "teacher@quizz.com"), config.ConfigOr("TEACHER_PASSWORD", "teacher123"), models.RoleTeacher},
		{"Student", config.ConfigOr("STUDENT_EMAIL", "student@quizz.com"), config.ConfigOr("STUDENT_PASSWORD", "student123"), models.RoleStudent},
	}

	for _, d := range defaults {
		hashed, err := bcrypt.GenerateFromPassword([]byte(d.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash seed password: %w", err)
		}
		user := models.User{
			Username: d.username,
			Email:    d.email,
			Password: string(hashed),
			Role:     d.role,
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to seed %s user: %w", d.role, err)
		}
		log.Printf("Default %s user created: email=%s", d.role, d.email)
	}

	return nil
}
