package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dcyoung23/balance-web/internal/httputil"
	appmw "github.com/dcyoung23/balance-web/internal/middleware"
	"github.com/dcyoung23/balance-web/internal/schedule"
	"github.com/dcyoung23/balance-web/internal/store"
	"github.com/shopspring/decimal"
)

type UpdateBalanceRequest struct {
	Current   *decimal.Decimal `json:"current"`
	Available *decimal.Decimal `json:"available"`
}

func projectBalance(userID uint64) (*schedule.Projection, error) {
	balance, err := store.GetBalance(userID)
	if err != nil {
		return nil, err
	}
	items, err := store.ListActiveScheduleItems(userID)
	if err != nil {
		return nil, err
	}
	proj := schedule.Project(*balance, schedule.Classify(items))
	return &proj, nil
}

// GetBalanceHandler returns the stored balance with the derived pending
// amount and the net/next-net projections over the classified schedule.
func GetBalanceHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := appmw.UserID(r.Context())
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	proj, err := projectBalance(userID)
	if err != nil {
		writeAppError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, proj)
}

// UpdateBalanceHandler sets current and available. Available defaults to
// current when omitted.
func UpdateBalanceHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := appmw.UserID(r.Context())
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req UpdateBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Current == nil {
		httputil.WriteError(w, http.StatusBadRequest, "current amount is required")
		return
	}
	available := req.Current
	if req.Available != nil {
		available = req.Available
	}

	if err := store.SetBalance(userID, *req.Current, *available); err != nil {
		writeAppError(w, err)
		return
	}

	proj, err := projectBalance(userID)
	if err != nil {
		writeAppError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, proj)
}
