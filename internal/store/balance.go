package store

import (
	"errors"

	"github.com/dcyoung23/balance-web/internal/apperr"
	"github.com/dcyoung23/balance-web/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func GetBalance(userID uint64) (*models.Balance, error) {
	var balance models.Balance
	if err := DB.Where("user_id = ?", userID).First(&balance).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &balance, nil
}

func SetBalance(userID uint64, current, available decimal.Decimal) error {
	res := DB.Model(&models.Balance{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"current":   current,
			"available": available,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
