package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dcyoung23/balance-web/configs"
	"github.com/dcyoung23/balance-web/internal/apperr"
	"github.com/dcyoung23/balance-web/internal/httputil"
	"github.com/dcyoung23/balance-web/internal/logger"
	appmw "github.com/dcyoung23/balance-web/internal/middleware"
	"github.com/dcyoung23/balance-web/internal/store"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	Confirmation string `json:"confirmation"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

func signToken(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(24 * time.Hour).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.AppConfig.JWT.SECRET))
}

// RegisterHandler creates the user and their empty balance row, then logs
// them straight in. The next step for a fresh account is setting balances.
func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Username == "" || req.Password == "" || req.Confirmation == "" {
		httputil.WriteError(w, http.StatusBadRequest, "username, password and confirmation are required")
		return
	}
	if req.Password != req.Confirmation {
		httputil.WriteError(w, http.StatusBadRequest, "passwords do not match")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	user, err := store.CreateUser(req.Username, string(hash))
	if err != nil {
		writeAppError(w, err)
		return
	}

	signed, err := signToken(user.ID)
	if err != nil {
		logger.Log.Error("failed to sign jwt", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to create token")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, TokenResponse{Token: signed})
}

func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Username == "" || req.Password == "" {
		httputil.WriteError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := store.FindUserByUsername(req.Username)
	if err != nil {
		writeAppError(w, apperr.ErrAuthentication)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		writeAppError(w, apperr.ErrAuthentication)
		return
	}

	signed, err := signToken(user.ID)
	if err != nil {
		logger.Log.Error("failed to sign jwt", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to create token")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, TokenResponse{Token: signed})
}

func MeHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := appmw.UserID(r.Context())
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := store.GetUser(userID)
	if err != nil {
		writeAppError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, user)
}
