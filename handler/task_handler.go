package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"active-teams-api/common"
	"active-teams-api/model"
	"active-teams-api/service"
)

type TaskHandler struct {
	service *service.TaskService
}

func NewTaskHandler(service *service.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// CreateTask assigns a follow-up task to the caller.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.CreateTaskRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Authentication required", nil)
	}

	followUp, err := time.Parse("2006-01-02", req.FollowUpDate)
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "follow_up_date must be YYYY-MM-DD", nil)
	}

	task := &model.Task{
		PersonID:     req.PersonID,
		AssignedTo:   claims.UserID,
		Kind:         model.TaskKind(req.Kind),
		Status:       model.TaskPending,
		FollowUpDate: followUp,
		Notes:        req.Notes,
	}

	if err := h.service.CreateTask(task); err != nil {
		return common.ToAppError(err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(task)
	return nil
}

// ListTasks serves the open-task list, or a date window when the "window"
// query parameter is present (day/last-7-days/this-week/previous-month).
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) *common.AppError {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Authentication required", nil)
	}

	var (
		tasks []*model.Task
		err   error
	)

	switch window := r.URL.Query().Get("window"); window {
	case "":
		tasks, err = h.service.ListOpenTasks(claims.UserID, claims.Role)
	case "day":
		var day time.Time
		day, err = time.Parse("2006-01-02", r.URL.Query().Get("date"))
		if err != nil {
			return common.NewAppError(http.StatusBadRequest, "date must be YYYY-MM-DD", nil)
		}
		tasks, err = h.service.TasksForDay(claims.UserID, claims.Role, day)
	case "last-7-days":
		tasks, err = h.service.TasksLastSevenDays(claims.UserID, claims.Role, time.Now())
	case "this-week":
		tasks, err = h.service.TasksThisWeek(claims.UserID, claims.Role, time.Now())
	case "previous-month":
		tasks, err = h.service.TasksPreviousMonth(claims.UserID, claims.Role, time.Now())
	default:
		return common.NewAppError(http.StatusBadRequest, "unknown window", nil)
	}
	if err != nil {
		return common.ToAppError(err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(tasks)
	return nil
}

// CompleteTask marks a task done.
func (h *TaskHandler) CompleteTask(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := pathID(r, "id")
	if appErr != nil {
		return appErr
	}

	if err := h.service.CompleteTask(id); err != nil {
		return common.ToAppError(err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}
