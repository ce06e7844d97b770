package handler

import (
	"encoding/json"
	"net/http"

	"active-teams-api/common"
	"active-teams-api/logger"
	"active-teams-api/model"
	"active-teams-api/service"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Signup godoc
// @Summary      Register a new account
// @Description  Creates a user with the default role "user". Does not log the user in.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body model.SignupRequest true "signup payload"
// @Success      201  {object}  model.User
// @Failure      400  {object}  common.AppError
// @Router       /signup [post]
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.SignupRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	user, err := h.auth.Signup(&req)
	if err != nil {
		return common.ToAppError(err)
	}

	logger.Log.WithField("email", user.Email).Info("User registered")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(user)
	return nil
}

// Login godoc
// @Summary      Authenticate and receive a token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body model.LoginRequest true "login payload"
// @Success      200  {object}  service.TokenPair
// @Failure      401  {object}  common.AppError
// @Router       /login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.LoginRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	pair, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		return common.ToAppError(err)
	}

	logger.Log.WithField("email", req.Email).Info("User logged in")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(pair)
	return nil
}

// Refresh godoc
// @Summary      Exchange a refresh pair for a new token pair
// @Description  Rotates the refresh token: the presented pair is invalid afterwards.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body model.RefreshRequest true "refresh payload"
// @Success      200  {object}  service.TokenPair
// @Failure      401  {object}  common.AppError
// @Router       /token/refresh [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.RefreshRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	pair, err := h.auth.Refresh(req.RefreshTokenID, req.RefreshTokenSecret)
	if err != nil {
		return common.ToAppError(err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(pair)
	return nil
}

// Logout godoc
// @Summary      Revoke the caller's refresh token
// @Description  The current access token stays valid until it expires on its own.
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  common.AppError
// @Router       /api/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) *common.AppError {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Authentication required", nil)
	}

	if err := h.auth.Logout(claims.UserID); err != nil {
		return common.ToAppError(err)
	}

	logger.Log.WithField("user_id", claims.UserID).Info("User logged out")

	w.WriteHeader(http.StatusNoContent)
	return nil
}
