package handlers

import (
	"errors"
	"net/http"

	"github.com/dcyoung23/balance-web/internal/apperr"
	"github.com/dcyoung23/balance-web/internal/httputil"
	"github.com/dcyoung23/balance-web/internal/logger"
	"go.uber.org/zap"
)

// writeAppError maps the shared error kinds onto HTTP statuses. Validation
// failures are recoverable; the client is expected to correct and resubmit.
func writeAppError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperr.ErrAuthentication):
		httputil.WriteError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, apperr.ErrNotFound):
		httputil.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, apperr.ErrDuplicateUsername):
		httputil.WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, apperr.ErrInvalidSchedule):
		httputil.WriteError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		logger.Log.Error("internal error", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
