package database

import (
	"fmt"
	"os"

	"khata-backend/models"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect() {
	if err := godotenv.Load(); err != nil {
		zap.L().Warn(".env file not found, relying on process environment")
	}

	host := os.Getenv("DB_HOST")
	if host == "" {
		host = "db"
	}
	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "5432"
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Asia/Kolkata",
		host, os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), os.Getenv("DB_NAME"), port)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		zap.L().Fatal("could not connect to database", zap.Error(err))
	}
}

func AutoMigrate() {
	if err := DB.AutoMigrate(
		&models.Transaction{},
		&models.StockItem{},
		&models.StockAdjustment{},
		&models.IdempotencyKey{},
	); err != nil {
		zap.L().Fatal("automigrate failed", zap.Error(err))
	}
}
