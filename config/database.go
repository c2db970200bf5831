package config

import (
	"fmt"

	"github.com/akhil-8601/JobNest/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB initializes the database connection and runs migrations
func InitDB(config *Config) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to database: %v", err))
	}

	DB = db

	if err := Migrate(DB); err != nil {
		panic(fmt.Sprintf("Failed to migrate database: %v", err))
	}
}

// Migrate runs the schema migrations. Split out so tests can run it against
// their own database handle.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.CandidateProfile{},
		&models.Company{},
		&models.CompanyMember{},
		&models.Job{},
		&models.Resume{},
		&models.Application{},
		&models.RefreshToken{},
		&models.BlacklistedToken{},
	)
}
