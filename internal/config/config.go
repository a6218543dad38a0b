package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/campusmart/campus_market/internal/models"
)

type Config struct {
	DB_HOST        string
	DB_PORT        string
	DB_USER        string
	DB_PASSWORD    string
	DB_NAME        string
	ES_URL         string
	ES_USER        string
	ES_PASSWORD    string
	JWT_SECRET     string
	REFRESH_SECRET string
	KAFKA_ADDRESS  string
	LOG_LEVEL      string
	SERVER_PORT    string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		DB_HOST:        os.Getenv("DB_HOST"),
		DB_PORT:        os.Getenv("DB_PORT"),
		DB_USER:        os.Getenv("DB_USER"),
		DB_PASSWORD:    os.Getenv("DB_PASSWORD"),
		DB_NAME:        os.Getenv("DB_NAME"),
		ES_URL:         os.Getenv("ES_URL"),
		ES_USER:        os.Getenv("ES_USER"),
		ES_PASSWORD:    os.Getenv("ES_PASSWORD"),
		JWT_SECRET:     os.Getenv("JWT_SECRET"),
		REFRESH_SECRET: os.Getenv("REFRESH_SECRET"),
		KAFKA_ADDRESS:  os.Getenv("KAFKA_ADDRESS"),
		LOG_LEVEL:      os.Getenv("LOG_LEVEL"),
		SERVER_PORT:    os.Getenv("SERVER_PORT"),
	}

	return config, nil
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.DB_USER, cfg.DB_PASSWORD, cfg.DB_HOST, cfg.DB_PORT, cfg.DB_NAME,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("db migrate: %w", err)
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Product{},
		&models.CartItem{},
		&models.Purchase{},
		&models.Notification{},
		&models.Report{},
		&models.Message{},
	)
}
