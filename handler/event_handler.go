package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"active-teams-api/common"
	"active-teams-api/logger"
	"active-teams-api/model"
	"active-teams-api/repository"
	"active-teams-api/service"

	"github.com/sirupsen/logrus"
)

type EventHandler struct {
	service *service.EventService
}

func NewEventHandler(service *service.EventService) *EventHandler {
	return &EventHandler{service: service}
}

// CreateEvent handles the request to create a new event. Registrant or admin.
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.CreateEventRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "starts_at must be an RFC3339 timestamp", nil)
	}

	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Authentication required", nil)
	}

	event := &model.Event{
		Name:        req.Name,
		Category:    req.Category,
		StartsAt:    startsAt,
		Location:    req.Location,
		Description: req.Description,
		IsTicketed:  req.IsTicketed,
		CreatedBy:   claims.UserID,
	}

	if err := h.service.CreateEvent(event); err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not create event", err)
	}

	logger.Log.WithFields(logrus.Fields{
		"event_id":   event.ID,
		"created_by": claims.UserID,
	}).Info("Event created")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(event)
	return nil
}

// ListEvents godoc
// @Summary      List events
// @Description  Optional filters: category (comma-separated), search (regex over name/location/description), is_ticketed.
// @Tags         events
// @Security     BearerAuth
// @Success      200  {array}  model.Event
// @Router       /api/events [get]
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) *common.AppError {
	filter := model.EventFilter{
		Search: r.URL.Query().Get("search"),
	}

	// "category" and "event_types" are accepted interchangeably for
	// compatibility with the existing frontend.
	category := r.URL.Query().Get("category")
	if category == "" {
		category = r.URL.Query().Get("event_types")
	}
	if category != "" {
		for _, c := range strings.Split(category, ",") {
			if c = strings.TrimSpace(c); c != "" {
				filter.Categories = append(filter.Categories, c)
			}
		}
	}

	if raw := r.URL.Query().Get("is_ticketed"); raw != "" {
		ticketed := raw == "true" || raw == "1"
		filter.IsTicketed = &ticketed
	}

	events, err := h.service.ListEvents(filter)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve events", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(events)
	return nil
}

func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := pathID(r, "id")
	if appErr != nil {
		return appErr
	}

	event, err := h.service.GetEvent(id)
	if err != nil {
		return common.ToAppError(err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(event)
	return nil
}

// CheckIn records a person's attendance at an event.
func (h *EventHandler) CheckIn(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.CheckInRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Authentication required", nil)
	}

	err := h.service.CheckIn(req.EventID, req.PersonID, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyCheckedIn) {
			return common.NewAppError(http.StatusConflict, err.Error(), nil)
		}
		return common.ToAppError(err)
	}

	logger.Log.WithFields(logrus.Fields{
		"event_id":     req.EventID,
		"person_id":    req.PersonID,
		"performed_by": claims.UserID,
	}).Info("Person checked in")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "checked in successfully"})
	return nil
}

// CheckOut removes a prior check-in.
func (h *EventHandler) CheckOut(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.CheckInRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	if err := h.service.CheckOut(req.EventID, req.PersonID); err != nil {
		return common.ToAppError(err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "removed from check-ins"})
	return nil
}

// ListCheckins returns an event's attendees and total attendance.
func (h *EventHandler) ListCheckins(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := pathID(r, "id")
	if appErr != nil {
		return appErr
	}

	event, attendees, err := h.service.GetCheckins(id)
	if err != nil {
		return common.ToAppError(err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"event_id":         event.ID,
		"name":             event.Name,
		"attendees":        attendees,
		"total_attendance": event.TotalAttendance,
	})
	return nil
}
