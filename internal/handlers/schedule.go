package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/dcyoung23/balance-web/internal/apperr"
	"github.com/dcyoung23/balance-web/internal/httputil"
	appmw "github.com/dcyoung23/balance-web/internal/middleware"
	"github.com/dcyoung23/balance-web/internal/models"
	"github.com/dcyoung23/balance-web/internal/schedule"
	"github.com/dcyoung23/balance-web/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// AddItemRequest carries a new schedule item. All fields are required.
type AddItemRequest struct {
	Name        string           `json:"name"`
	TypeID      uint             `json:"type_id"`
	FrequencyID uint             `json:"frequency_id"`
	Repeat      int              `json:"repeat"`
	Amount      *decimal.Decimal `json:"amount"`
	CurrentDt   string           `json:"current_dt"`
	PmtSource   string           `json:"pmt_source"`
	PmtMethod   string           `json:"pmt_method"`
}

// EditItemRequest replaces every editable field of an item and clears any
// snooze.
type EditItemRequest AddItemRequest

type SnoozeItemRequest struct {
	Snoozed string `json:"snoozed"`
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", apperr.ErrValidation, s)
	}
	return t, nil
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (req AddItemRequest) validate() (store.ScheduleItemFields, error) {
	var f store.ScheduleItemFields
	if req.Name == "" || req.TypeID == 0 || req.FrequencyID == 0 ||
		req.Amount == nil || req.CurrentDt == "" || req.PmtSource == "" || req.PmtMethod == "" {
		return f, fmt.Errorf("%w: please complete all fields", apperr.ErrValidation)
	}
	if req.Repeat < 1 {
		return f, fmt.Errorf("%w: repeat must be at least 1", apperr.ErrValidation)
	}
	dt, err := parseDate(req.CurrentDt)
	if err != nil {
		return f, err
	}
	f = store.ScheduleItemFields{
		Name:        req.Name,
		TypeID:      req.TypeID,
		FrequencyID: req.FrequencyID,
		Repeat:      req.Repeat,
		Amount:      *req.Amount,
		CurrentDt:   dt,
		PmtSource:   req.PmtSource,
		PmtMethod:   req.PmtMethod,
	}
	return f, nil
}

// ownedItem loads the {id} route param and enforces that the item belongs to
// the authenticated user. Foreign items are indistinguishable from missing
// ones.
func ownedItem(r *http.Request) (*models.ScheduleItem, error) {
	userID, ok := appmw.UserID(r.Context())
	if !ok {
		return nil, apperr.ErrAuthentication
	}
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid item id", apperr.ErrValidation)
	}
	item, err := store.GetScheduleItem(uint(id))
	if err != nil {
		return nil, err
	}
	if item.UserID != userID {
		return nil, apperr.ErrNotFound
	}
	return item, nil
}

// ownedActiveItem additionally rejects completed items. Completion is
// terminal; only reads accept a completed id.
func ownedActiveItem(r *http.Request) (*models.ScheduleItem, error) {
	item, err := ownedItem(r)
	if err != nil {
		return nil, err
	}
	if !item.Active() {
		return nil, fmt.Errorf("%w: item already completed", apperr.ErrValidation)
	}
	return item, nil
}

// GetScheduleHandler lists the active schedule classified into
// Current/Next/Future buckets, soonest effective due date first.
func GetScheduleHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := appmw.UserID(r.Context())
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	items, err := store.ListActiveScheduleItems(userID)
	if err != nil {
		writeAppError(w, err)
		return
	}

	classified := schedule.Classify(items)

	codes, err := store.ListCodes()
	if err != nil {
		writeAppError(w, err)
		return
	}
	schedule.AttachCodeDescriptions(classified, codes)

	httputil.WriteJSON(w, http.StatusOK, classified)
}

func AddScheduleItemHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := appmw.UserID(r.Context())
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	f, err := req.validate()
	if err != nil {
		writeAppError(w, err)
		return
	}

	item := models.ScheduleItem{
		UserID:      userID,
		Name:        f.Name,
		TypeID:      f.TypeID,
		FrequencyID: f.FrequencyID,
		Repeat:      f.Repeat,
		Amount:      f.Amount,
		CurrentDt:   f.CurrentDt,
		PmtSource:   f.PmtSource,
		PmtMethod:   f.PmtMethod,
	}
	if err := store.InsertScheduleItem(&item); err != nil {
		writeAppError(w, err)
		return
	}

	created, err := store.GetScheduleItem(item.ID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, created)
}

func GetScheduleItemHandler(w http.ResponseWriter, r *http.Request) {
	item, err := ownedItem(r)
	if err != nil {
		writeAppError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, item)
}

func EditScheduleItemHandler(w http.ResponseWriter, r *http.Request) {
	item, err := ownedActiveItem(r)
	if err != nil {
		writeAppError(w, err)
		return
	}

	var req EditItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	f, err := AddItemRequest(req).validate()
	if err != nil {
		writeAppError(w, err)
		return
	}

	if err := store.UpdateScheduleItem(item.ID, f); err != nil {
		writeAppError(w, err)
		return
	}

	updated, err := store.GetScheduleItem(item.ID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, updated)
}

// PostScheduleItemHandler marks a due item handled: one-time items complete,
// recurring items advance by repeat*n frequency units. An interval that
// cannot be computed aborts the mutation with nothing applied.
func PostScheduleItemHandler(w http.ResponseWriter, r *http.Request) {
	item, err := ownedActiveItem(r)
	if err != nil {
		writeAppError(w, err)
		return
	}

	if item.Frequency.Frequency == schedule.FrequencyOneTime {
		if err := store.CompleteScheduleItem(item.ID, today()); err != nil {
			writeAppError(w, err)
			return
		}
	} else {
		next, err := schedule.NextDue(*item)
		if err != nil {
			writeAppError(w, err)
			return
		}
		if err := store.AdvanceScheduleItem(item.ID, next); err != nil {
			writeAppError(w, err)
			return
		}
	}

	updated, err := store.GetScheduleItem(item.ID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, updated)
}

func SnoozeScheduleItemHandler(w http.ResponseWriter, r *http.Request) {
	item, err := ownedActiveItem(r)
	if err != nil {
		writeAppError(w, err)
		return
	}

	var req SnoozeItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Snoozed == "" {
		httputil.WriteError(w, http.StatusBadRequest, "snooze date is required")
		return
	}
	snoozed, err := parseDate(req.Snoozed)
	if err != nil {
		writeAppError(w, err)
		return
	}

	if err := store.SnoozeScheduleItem(item.ID, snoozed); err != nil {
		writeAppError(w, err)
		return
	}

	updated, err := store.GetScheduleItem(item.ID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, updated)
}

// CompleteScheduleItemHandler retires an item directly, bypassing date
// arithmetic. No transition leads back out.
func CompleteScheduleItemHandler(w http.ResponseWriter, r *http.Request) {
	item, err := ownedActiveItem(r)
	if err != nil {
		writeAppError(w, err)
		return
	}

	if err := store.CompleteScheduleItem(item.ID, today()); err != nil {
		writeAppError(w, err)
		return
	}

	updated, err := store.GetScheduleItem(item.ID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, updated)
}
