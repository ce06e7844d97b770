package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"active-teams-api/common"
	"active-teams-api/model"
	"active-teams-api/service"
)

type UserHandler struct {
	service *service.UserService
}

func NewUserHandler(service *service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// ListUsers returns every registered account. Admin only.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) *common.AppError {
	users, err := h.service.ListUsers()
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve users", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(users)
	return nil
}

// UpdateUserRole changes a user's role. Admin only.
func (h *UserHandler) UpdateUserRole(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, appErr := pathID(r, "id")
	if appErr != nil {
		return appErr
	}

	var req model.UpdateUserRoleRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	if err := h.service.UpdateUserRole(userID, req.Role); err != nil {
		return common.ToAppError(err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

// pathID extracts a positive numeric path parameter.
func pathID(r *http.Request, name string) (int, *common.AppError) {
	id, err := strconv.Atoi(r.PathValue(name))
	if err != nil || id <= 0 {
		return 0, common.NewAppError(http.StatusBadRequest, "Invalid id in path", nil)
	}
	return id, nil
}
