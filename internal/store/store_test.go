package store

import (
	"errors"
	"testing"
	"time"

	"github.com/dcyoung23/balance-web/internal/apperr"
	"github.com/dcyoung23/balance-web/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB swaps the package DB for an in-memory sqlite handle. One open
// connection, or each pooled connection would get its own empty database.
func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Balance{},
		&models.Type{},
		&models.Frequency{},
		&models.Code{},
		&models.ScheduleItem{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	DB = db
	t.Cleanup(func() {
		sqlDB.Close()
		DB = nil
	})
}

func seedLookups(t *testing.T) (bill models.Type, monthly, oneTime models.Frequency) {
	t.Helper()
	bill = models.Type{Label: "Bill", Factor: -1}
	deposit := models.Type{Label: "Deposit", Factor: 1}
	monthly = models.Frequency{Frequency: "Monthly", Modifier: "months", N: 1}
	oneTime = models.Frequency{Frequency: "One Time", Modifier: "days", N: 0}

	for _, m := range []any{&bill, &deposit, &monthly, &oneTime} {
		if err := DB.Create(m).Error; err != nil {
			t.Fatalf("seed lookups: %v", err)
		}
	}
	return bill, monthly, oneTime
}

func mustCreateUser(t *testing.T, username string) *models.User {
	t.Helper()
	user, err := CreateUser(username, "not-a-real-hash")
	if err != nil {
		t.Fatalf("CreateUser(%q): %v", username, err)
	}
	return user
}

func mustInsertItem(t *testing.T, userID uint64, typeID, freqID uint, due time.Time) *models.ScheduleItem {
	t.Helper()
	item := models.ScheduleItem{
		UserID:      userID,
		Name:        "Rent",
		TypeID:      typeID,
		FrequencyID: freqID,
		Repeat:      1,
		Amount:      decimal.RequireFromString("950.00"),
		CurrentDt:   due,
		PmtSource:   "CHK",
		PmtMethod:   "ACH",
	}
	if err := InsertScheduleItem(&item); err != nil {
		t.Fatalf("InsertScheduleItem: %v", err)
	}
	return &item
}

func TestCreateUser_DuplicateLeavesNoRow(t *testing.T) {
	setupTestDB(t)

	mustCreateUser(t, "alice")

	_, err := CreateUser("alice", "other-hash")
	if !errors.Is(err, apperr.ErrDuplicateUsername) {
		t.Fatalf("CreateUser duplicate error = %v, want ErrDuplicateUsername", err)
	}

	var users, balances int64
	DB.Model(&models.User{}).Where("username = ?", "alice").Count(&users)
	DB.Model(&models.Balance{}).Count(&balances)
	if users != 1 {
		t.Errorf("user rows = %d, want 1", users)
	}
	if balances != 1 {
		t.Errorf("balance rows = %d, want 1 (failed registration must not leave a balance)", balances)
	}
}

func TestCreateUser_StartsWithZeroBalance(t *testing.T) {
	setupTestDB(t)

	user := mustCreateUser(t, "bob")
	balance, err := GetBalance(uint64(user.ID))
	if err != nil {
		t.Fatalf("GetBalance: %v", err)
	}
	if !balance.Current.IsZero() || !balance.Available.IsZero() {
		t.Errorf("new balance = %s/%s, want 0/0", balance.Current, balance.Available)
	}
}

func TestFindUserByUsername(t *testing.T) {
	setupTestDB(t)
	mustCreateUser(t, "alice")

	user, err := FindUserByUsername("alice")
	if err != nil {
		t.Fatalf("FindUserByUsername: %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("username = %q, want alice", user.Username)
	}

	if _, err := FindUserByUsername("nobody"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("FindUserByUsername(nobody) error = %v, want ErrNotFound", err)
	}
}

func TestSetBalance_PendingDerivable(t *testing.T) {
	setupTestDB(t)
	user := mustCreateUser(t, "alice")

	current := decimal.RequireFromString("1000.00")
	available := decimal.RequireFromString("800.00")
	if err := SetBalance(uint64(user.ID), current, available); err != nil {
		t.Fatalf("SetBalance: %v", err)
	}

	balance, err := GetBalance(uint64(user.ID))
	if err != nil {
		t.Fatalf("GetBalance: %v", err)
	}
	pending := balance.Current.Sub(balance.Available)
	if !pending.Equal(decimal.RequireFromString("200.00")) {
		t.Errorf("pending = %s, want 200.00", pending)
	}
}

func TestListActiveScheduleItems_FiltersCompleted(t *testing.T) {
	setupTestDB(t)
	bill, monthly, _ := seedLookups(t)
	user := mustCreateUser(t, "alice")

	due := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	active := mustInsertItem(t, uint64(user.ID), bill.ID, monthly.ID, due)
	done := mustInsertItem(t, uint64(user.ID), bill.ID, monthly.ID, due.AddDate(0, 0, 5))
	if err := CompleteScheduleItem(done.ID, due); err != nil {
		t.Fatalf("CompleteScheduleItem: %v", err)
	}

	items, err := ListActiveScheduleItems(uint64(user.ID))
	if err != nil {
		t.Fatalf("ListActiveScheduleItems: %v", err)
	}
	if len(items) != 1 || items[0].ID != active.ID {
		t.Fatalf("active items = %d, want only the uncompleted one", len(items))
	}
	if items[0].Type.Label != "Bill" || items[0].Frequency.Frequency != "Monthly" {
		t.Errorf("item not enriched: type=%q frequency=%q", items[0].Type.Label, items[0].Frequency.Frequency)
	}
}

func TestAdvanceScheduleItem(t *testing.T) {
	setupTestDB(t)
	bill, monthly, _ := seedLookups(t)
	user := mustCreateUser(t, "alice")

	due := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	item := mustInsertItem(t, uint64(user.ID), bill.ID, monthly.ID, due)

	snoozed := due.AddDate(0, 0, 3)
	if err := SnoozeScheduleItem(item.ID, snoozed); err != nil {
		t.Fatalf("SnoozeScheduleItem: %v", err)
	}

	next := due.AddDate(0, 1, 0)
	if err := AdvanceScheduleItem(item.ID, next); err != nil {
		t.Fatalf("AdvanceScheduleItem: %v", err)
	}

	got, err := GetScheduleItem(item.ID)
	if err != nil {
		t.Fatalf("GetScheduleItem: %v", err)
	}
	if !got.CurrentDt.Equal(next) {
		t.Errorf("current_dt = %v, want %v", got.CurrentDt, next)
	}
	if got.PreviousDt == nil || !got.PreviousDt.Equal(due) {
		t.Errorf("previous_dt = %v, want old current_dt %v", got.PreviousDt, due)
	}
	if got.SnoozedDt != nil {
		t.Errorf("snoozed_dt = %v, want cleared after advance", got.SnoozedDt)
	}
}

func TestCompleteScheduleItem_Terminal(t *testing.T) {
	setupTestDB(t)
	bill, _, oneTime := seedLookups(t)
	user := mustCreateUser(t, "alice")

	due := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	item := mustInsertItem(t, uint64(user.ID), bill.ID, oneTime.ID, due)

	snoozed := due.AddDate(0, 0, 2)
	if err := SnoozeScheduleItem(item.ID, snoozed); err != nil {
		t.Fatalf("SnoozeScheduleItem: %v", err)
	}

	completedAt := due.AddDate(0, 0, 1)
	if err := CompleteScheduleItem(item.ID, completedAt); err != nil {
		t.Fatalf("CompleteScheduleItem: %v", err)
	}

	got, err := GetScheduleItem(item.ID)
	if err != nil {
		t.Fatalf("GetScheduleItem: %v", err)
	}
	if got.CompletedDt == nil {
		t.Fatal("completed_dt not set")
	}
	if got.SnoozedDt != nil {
		t.Errorf("snoozed_dt = %v, want cleared on completion", got.SnoozedDt)
	}
	// Completing never touches the due date.
	if !got.CurrentDt.Equal(due) {
		t.Errorf("current_dt = %v, want untouched %v", got.CurrentDt, due)
	}
}

func TestUpdateScheduleItem_ClearsSnooze(t *testing.T) {
	setupTestDB(t)
	bill, monthly, _ := seedLookups(t)
	user := mustCreateUser(t, "alice")

	due := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	item := mustInsertItem(t, uint64(user.ID), bill.ID, monthly.ID, due)

	snoozed := due.AddDate(0, 0, 4)
	if err := SnoozeScheduleItem(item.ID, snoozed); err != nil {
		t.Fatalf("SnoozeScheduleItem: %v", err)
	}

	newDue := due.AddDate(0, 0, 10)
	err := UpdateScheduleItem(item.ID, ScheduleItemFields{
		Name:        "Rent Updated",
		TypeID:      bill.ID,
		FrequencyID: monthly.ID,
		Repeat:      2,
		Amount:      decimal.RequireFromString("975.00"),
		CurrentDt:   newDue,
		PmtSource:   "CHK",
		PmtMethod:   "CHECK",
	})
	if err != nil {
		t.Fatalf("UpdateScheduleItem: %v", err)
	}

	got, err := GetScheduleItem(item.ID)
	if err != nil {
		t.Fatalf("GetScheduleItem: %v", err)
	}
	if got.SnoozedDt != nil {
		t.Errorf("snoozed_dt = %v, want cleared by edit", got.SnoozedDt)
	}
	if got.Name != "Rent Updated" || got.Repeat != 2 || !got.CurrentDt.Equal(newDue) {
		t.Errorf("edit did not replace fields: %+v", got)
	}
}

func TestGetScheduleItem_NotFound(t *testing.T) {
	setupTestDB(t)
	if _, err := GetScheduleItem(9999); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("GetScheduleItem(9999) error = %v, want ErrNotFound", err)
	}
	if err := SnoozeScheduleItem(9999, time.Now()); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("SnoozeScheduleItem(9999) error = %v, want ErrNotFound", err)
	}
}

func TestListLookups(t *testing.T) {
	setupTestDB(t)
	seedLookups(t)
	DB.Create(&models.Code{CdGroup: "pmt-source", Cd: "CHK", CdDesc: "Checking"})

	types, err := ListTypes()
	if err != nil || len(types) != 2 {
		t.Errorf("ListTypes() = %d items, err %v; want 2", len(types), err)
	}
	frequencies, err := ListFrequencies()
	if err != nil || len(frequencies) != 2 {
		t.Errorf("ListFrequencies() = %d items, err %v; want 2", len(frequencies), err)
	}
	codes, err := ListCodes()
	if err != nil || len(codes) != 1 {
		t.Errorf("ListCodes() = %d items, err %v; want 1", len(codes), err)
	}
}
