package store

import (
	"errors"
	"fmt"

	"github.com/dcyoung23/balance-web/internal/apperr"
	"github.com/dcyoung23/balance-web/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreateUser inserts a user and their zero-valued balance row in one
// transaction. Fails with apperr.ErrDuplicateUsername without creating
// either row when the username is taken.
func CreateUser(username, passwordHash string) (*models.User, error) {
	user := models.User{Username: username, Password: passwordHash}

	err := DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperr.ErrDuplicateUsername
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		balance := models.Balance{
			UserID:    uint64(user.ID),
			Current:   decimal.Zero,
			Available: decimal.Zero,
		}
		return tx.Create(&balance).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

func FindUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func GetUser(userID uint64) (*models.User, error) {
	var user models.User
	if err := DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
