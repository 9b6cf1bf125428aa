package seed

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dcyoung23/balance-web/configs"
	"github.com/dcyoung23/balance-web/internal/logger"
	"github.com/dcyoung23/balance-web/internal/models"
	"github.com/dcyoung23/balance-web/internal/store"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	demoUsername = "demo"
	demoPassword = "password123"
)

var types = []models.Type{
	{Label: "Bill", Factor: -1},
	{Label: "Deposit", Factor: 1},
}

// Weekly and Bi-Weekly are defined in day units so advancing by repeat
// occurrences lands on the same date as repeat weeks. One Time carries a
// zero step; posting completes it before any interval is computed.
var frequencies = []models.Frequency{
	{Frequency: "One Time", Modifier: "days", N: 0},
	{Frequency: "Daily", Modifier: "days", N: 1},
	{Frequency: "Weekly", Modifier: "days", N: 7},
	{Frequency: "Bi-Weekly", Modifier: "days", N: 14},
	{Frequency: "Monthly", Modifier: "months", N: 1},
	{Frequency: "Quarterly", Modifier: "months", N: 3},
	{Frequency: "Yearly", Modifier: "years", N: 1},
}

var codes = []models.Code{
	{CdGroup: "pmt-source", Cd: "CHK", CdDesc: "Checking"},
	{CdGroup: "pmt-source", Cd: "SAV", CdDesc: "Savings"},
	{CdGroup: "pmt-source", Cd: "CC", CdDesc: "Credit Card"},
	{CdGroup: "pmt-method", Cd: "ACH", CdDesc: "Bank Transfer"},
	{CdGroup: "pmt-method", Cd: "CHECK", CdDesc: "Paper Check"},
	{CdGroup: "pmt-method", Cd: "CARD", CdDesc: "Debit Card"},
	{CdGroup: "pmt-method", Cd: "AUTO", CdDesc: "Autopay"},
}

func Run() {
	if err := Lookups(store.DB); err != nil {
		logger.Log.Fatal("lookup seed failed", zap.Error(err))
	}

	if configs.AppConfig.Seed.Demo {
		if err := demoUser(store.DB); err != nil {
			logger.Log.Fatal("demo seed failed", zap.Error(err))
		}
	}
}

// Lookups inserts the reference rows (types, frequencies, codes) when they
// are not present yet. Idempotent.
func Lookups(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Type{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Log.Info("lookup seed already applied, skipping")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for i := range types {
			if err := tx.Create(&types[i]).Error; err != nil {
				return err
			}
		}
		for i := range frequencies {
			if err := tx.Create(&frequencies[i]).Error; err != nil {
				return err
			}
		}
		for i := range codes {
			if err := tx.Create(&codes[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func demoUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", demoUsername).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Log.Info("demo seed already applied, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	var bill, deposit models.Type
	if err := db.Where("label = ?", "Bill").First(&bill).Error; err != nil {
		return err
	}
	if err := db.Where("label = ?", "Deposit").First(&deposit).Error; err != nil {
		return err
	}
	var monthly, biweekly, oneTime models.Frequency
	if err := db.Where("frequency = ?", "Monthly").First(&monthly).Error; err != nil {
		return err
	}
	if err := db.Where("frequency = ?", "Bi-Weekly").First(&biweekly).Error; err != nil {
		return err
	}
	if err := db.Where("frequency = ?", "One Time").First(&oneTime).Error; err != nil {
		return err
	}

	now := time.Now().UTC()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	err = db.Transaction(func(tx *gorm.DB) error {
		user := models.User{Username: demoUsername, Password: string(hash)}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		balance := models.Balance{
			UserID:    uint64(user.ID),
			Current:   decimal.RequireFromString("1000.00"),
			Available: decimal.RequireFromString("800.00"),
		}
		if err := tx.Create(&balance).Error; err != nil {
			return err
		}

		items := []models.ScheduleItem{
			{
				UserID: uint64(user.ID), Name: "Rent", TypeID: bill.ID,
				FrequencyID: monthly.ID, Repeat: 1,
				Amount:    decimal.RequireFromString("950.00"),
				CurrentDt: firstOfMonth.AddDate(0, 1, 0),
				PmtSource: "CHK", PmtMethod: "ACH",
			},
			{
				UserID: uint64(user.ID), Name: "Paycheck", TypeID: deposit.ID,
				FrequencyID: biweekly.ID, Repeat: 1,
				Amount:    decimal.RequireFromString("1500.00"),
				CurrentDt: firstOfMonth.AddDate(0, 0, 14),
				PmtSource: "CHK", PmtMethod: "ACH",
			},
			{
				UserID: uint64(user.ID), Name: "Car Registration", TypeID: bill.ID,
				FrequencyID: oneTime.ID, Repeat: 1,
				Amount:    decimal.RequireFromString("120.00"),
				CurrentDt: firstOfMonth.AddDate(0, 2, 0),
				PmtSource: "CHK", PmtMethod: "CARD",
			},
		}
		for i := range items {
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Log.Info("seeded demo user", zap.String("username", demoUsername), zap.String("password", demoPassword))
	return nil
}
