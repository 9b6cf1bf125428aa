package store

import (
	"errors"
	"time"

	"github.com/dcyoung23/balance-web/internal/apperr"
	"github.com/dcyoung23/balance-web/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ListActiveScheduleItems returns the user's uncompleted items with their
// Type and Frequency rows loaded, soonest due first.
func ListActiveScheduleItems(userID uint64) ([]models.ScheduleItem, error) {
	var items []models.ScheduleItem
	err := DB.Preload("Type").Preload("Frequency").
		Where("user_id = ? AND completed_dt IS NULL", userID).
		Order("current_dt").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func GetScheduleItem(id uint) (*models.ScheduleItem, error) {
	var item models.ScheduleItem
	err := DB.Preload("Type").Preload("Frequency").First(&item, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func InsertScheduleItem(item *models.ScheduleItem) error {
	return DB.Create(item).Error
}

// ScheduleItemFields carries the replaceable fields of an item for edits.
type ScheduleItemFields struct {
	Name        string
	TypeID      uint
	FrequencyID uint
	Repeat      int
	Amount      decimal.Decimal
	CurrentDt   time.Time
	PmtSource   string
	PmtMethod   string
}

// UpdateScheduleItem replaces all editable fields and clears any snooze.
func UpdateScheduleItem(id uint, f ScheduleItemFields) error {
	res := DB.Model(&models.ScheduleItem{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":         f.Name,
			"type_id":      f.TypeID,
			"frequency_id": f.FrequencyID,
			"repeat":       f.Repeat,
			"amount":       f.Amount,
			"current_dt":   f.CurrentDt,
			"snoozed_dt":   nil,
			"pmt_source":   f.PmtSource,
			"pmt_method":   f.PmtMethod,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// AdvanceScheduleItem moves a recurring item forward: the old due date is
// kept as previous_dt and the snooze is cleared.
func AdvanceScheduleItem(id uint, next time.Time) error {
	res := DB.Model(&models.ScheduleItem{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"previous_dt": gorm.Expr("current_dt"),
			"current_dt":  next,
			"snoozed_dt":  nil,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// CompleteScheduleItem removes the item from the active schedule. Terminal.
func CompleteScheduleItem(id uint, completedAt time.Time) error {
	res := DB.Model(&models.ScheduleItem{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"completed_dt": completedAt,
			"snoozed_dt":   nil,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func SnoozeScheduleItem(id uint, date time.Time) error {
	res := DB.Model(&models.ScheduleItem{}).
		Where("id = ?", id).
		Update("snoozed_dt", date)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
