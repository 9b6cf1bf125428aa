package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username string `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Password string `gorm:"size:255;not null" json:"-"`
}

// Balance holds the single checking balance per user. Pending is derived as
// current - available and never stored.
type Balance struct {
	gorm.Model
	UserID    uint64          `gorm:"uniqueIndex;not null" json:"user_id"`
	Current   decimal.Decimal `gorm:"not null" json:"current"`
	Available decimal.Decimal `gorm:"not null" json:"available"`
}

// Type is reference data: Bill or Deposit. Factor converts a stored positive
// amount into its signed balance impact (-1 bill, +1 deposit).
type Type struct {
	gorm.Model
	Label  string `gorm:"uniqueIndex;size:20;not null" json:"label"`
	Factor int    `gorm:"not null" json:"factor"`
}

// Frequency is reference data describing a recurrence unit. Advancing an item
// by one occurrence moves its due date by repeat*N units of Modifier. Weekly
// is seeded as 7 days so repeat weeks equals repeat*7 days.
type Frequency struct {
	gorm.Model
	Frequency string `gorm:"uniqueIndex;size:20;not null" json:"frequency"`
	Modifier  string `gorm:"size:10;not null" json:"modifier"` // days | weeks | months | years
	N         int    `gorm:"not null" json:"n"`
}

// Code is grouped reference data (pmt-source, pmt-method).
type Code struct {
	gorm.Model
	CdGroup string `gorm:"size:20;not null;uniqueIndex:idx_cd_group_cd" json:"cd_group"`
	Cd      string `gorm:"size:10;not null;uniqueIndex:idx_cd_group_cd" json:"cd"`
	CdDesc  string `gorm:"size:50" json:"cd_desc"`
}

// ScheduleItem is a recurring or one-time scheduled bill/deposit. An item is
// active while CompletedDt is nil. SnoozedDt, when set, overrides CurrentDt
// as the effective due date but never changes the basis for advancing.
type ScheduleItem struct {
	gorm.Model
	UserID      uint64          `gorm:"index;not null" json:"user_id"`
	Name        string          `gorm:"size:100;not null" json:"name"`
	TypeID      uint            `gorm:"not null" json:"type_id"`
	FrequencyID uint            `gorm:"not null" json:"frequency_id"`
	Repeat      int             `gorm:"not null" json:"repeat"`
	Amount      decimal.Decimal `gorm:"not null" json:"amount"`
	CurrentDt   time.Time       `gorm:"not null" json:"current_dt"`
	SnoozedDt   *time.Time      `json:"snoozed_dt,omitempty"`
	PreviousDt  *time.Time      `json:"previous_dt,omitempty"`
	CompletedDt *time.Time      `json:"completed_dt,omitempty"`
	PmtSource   string          `gorm:"size:10" json:"pmt_source"`
	PmtMethod   string          `gorm:"size:10" json:"pmt_method"`

	Type      Type      `json:"type"`
	Frequency Frequency `json:"frequency"`
}

// Active reports whether the item still participates in classification and
// balance projection.
func (s ScheduleItem) Active() bool {
	return s.CompletedDt == nil
}
