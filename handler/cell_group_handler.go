package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"active-teams-api/common"
	"active-teams-api/logger"
	"active-teams-api/model"
	"active-teams-api/repository"
	"active-teams-api/service"
)

type CellGroupHandler struct {
	service *service.CellGroupService
}

func NewCellGroupHandler(service *service.CellGroupService) *CellGroupHandler {
	return &CellGroupHandler{service: service}
}

// CreateCellGroup creates a group with the caller as leader.
func (h *CellGroupHandler) CreateCellGroup(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.CreateCellGroupRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Authentication required", nil)
	}

	group := &model.CellGroup{
		Name:          req.Name,
		LeaderID:      claims.UserID,
		Weekday:       req.Weekday,
		IntervalWeeks: req.IntervalWeeks,
	}

	if err := h.service.CreateCellGroup(group); err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not create cell group", err)
	}

	logger.Log.WithField("group_id", group.ID).Info("Cell group created")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(group)
	return nil
}

// ListCellGroups lists groups visible to the caller.
func (h *CellGroupHandler) ListCellGroups(w http.ResponseWriter, r *http.Request) *common.AppError {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Authentication required", nil)
	}

	groups, err := h.service.ListCellGroups(claims.UserID, claims.Role)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve cell groups", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(groups)
	return nil
}

// UpcomingMeetings returns the next meeting dates for a group.
func (h *CellGroupHandler) UpcomingMeetings(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := pathID(r, "id")
	if appErr != nil {
		return appErr
	}

	count := 4
	if raw := r.URL.Query().Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 52 {
			return common.NewAppError(http.StatusBadRequest, "count must be between 1 and 52", nil)
		}
		count = parsed
	}

	dates, err := h.service.GetUpcomingMeetings(id, count)
	if err != nil {
		return common.ToAppError(err)
	}

	formatted := make([]string, len(dates))
	for i, d := range dates {
		formatted[i] = d.Format("2006-01-02")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{"group_id": id, "dates": formatted})
	return nil
}

// AddMember adds a person to the group roster.
func (h *CellGroupHandler) AddMember(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := pathID(r, "id")
	if appErr != nil {
		return appErr
	}

	var req model.AddCellGroupMemberRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Authentication required", nil)
	}

	err := h.service.AddMember(id, req.PersonID, claims.UserID, claims.Role)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyMember) {
			return common.NewAppError(http.StatusConflict, err.Error(), nil)
		}
		return common.ToAppError(err)
	}

	w.WriteHeader(http.StatusCreated)
	return nil
}

// RemoveMember drops a person from the group roster.
func (h *CellGroupHandler) RemoveMember(w http.ResponseWriter, r *http.Request) *common.AppError {
	groupID, appErr := pathID(r, "id")
	if appErr != nil {
		return appErr
	}
	personID, appErr := pathID(r, "personID")
	if appErr != nil {
		return appErr
	}

	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Authentication required", nil)
	}

	if err := h.service.RemoveMember(groupID, personID, claims.UserID, claims.Role); err != nil {
		return common.ToAppError(err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

// ListMembers returns the group roster.
func (h *CellGroupHandler) ListMembers(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := pathID(r, "id")
	if appErr != nil {
		return appErr
	}

	members, err := h.service.GetMembers(id)
	if err != nil {
		return common.ToAppError(err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(members)
	return nil
}
