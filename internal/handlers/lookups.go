package handlers

import (
	"net/http"

	"github.com/dcyoung23/balance-web/internal/httputil"
	"github.com/dcyoung23/balance-web/internal/models"
	"github.com/dcyoung23/balance-web/internal/store"
)

type LookupsResponse struct {
	Types       []models.Type      `json:"types"`
	Frequencies []models.Frequency `json:"frequencies"`
	Codes       []models.Code      `json:"codes"`
}

// LookupsHandler returns the reference data the add/edit forms are built
// from.
func LookupsHandler(w http.ResponseWriter, r *http.Request) {
	types, err := store.ListTypes()
	if err != nil {
		writeAppError(w, err)
		return
	}
	frequencies, err := store.ListFrequencies()
	if err != nil {
		writeAppError(w, err)
		return
	}
	codes, err := store.ListCodes()
	if err != nil {
		writeAppError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, LookupsResponse{
		Types:       types,
		Frequencies: frequencies,
		Codes:       codes,
	})
}
