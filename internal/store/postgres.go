package store

import (
	"github.com/dcyoung23/balance-web/configs"
	"github.com/dcyoung23/balance-web/internal/logger"
	"github.com/dcyoung23/balance-web/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func NewDB() {
	dsn := configs.AppConfig.DB.DSN
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: false,
	}), &gorm.Config{})
	if err != nil {
		logger.Log.Fatal("failed to connect to database", zap.Error(err))
	}
	DB = db
	logger.Log.Info("connected to the database")
}

func DBMigrate() {
	DB.AutoMigrate(
		&models.User{},
		&models.Balance{},
		&models.Type{},
		&models.Frequency{},
		&models.Code{},
		&models.ScheduleItem{},
	)
	logger.Log.Info("migrations loaded")
}
