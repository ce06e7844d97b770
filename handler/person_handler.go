package handler

import (
	"encoding/json"
	"net/http"

	"active-teams-api/common"
	"active-teams-api/logger"
	"active-teams-api/model"
	"active-teams-api/service"

	"github.com/sirupsen/logrus"
)

type PersonHandler struct {
	service *service.PersonService
}

func NewPersonHandler(service *service.PersonService) *PersonHandler {
	return &PersonHandler{service: service}
}

// CreatePerson adds a person to the registry. Registrant or admin.
func (h *PersonHandler) CreatePerson(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.CreatePersonRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Authentication required", nil)
	}

	person := &model.Person{
		Name:        req.Name,
		Surname:     req.Surname,
		DateOfBirth: req.DateOfBirth,
		HomeAddress: req.HomeAddress,
		PhoneNumber: req.PhoneNumber,
		Gender:      req.Gender,
		InvitedBy:   req.InvitedBy,
		Email:       req.Email,
		CreatedBy:   claims.UserID,
	}

	if err := h.service.CreatePerson(person); err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not create person", err)
	}

	logger.Log.WithFields(logrus.Fields{
		"person_id":  person.ID,
		"created_by": claims.UserID,
	}).Info("Person created")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(person)
	return nil
}

// SearchPeople godoc
// @Summary      Search people by name
// @Description  Case-insensitive regular expression match on name and surname.
// @Tags         people
// @Security     BearerAuth
// @Param        name query string true "search pattern"
// @Success      200  {array}  model.Person
// @Router       /api/people/search [get]
func (h *PersonHandler) SearchPeople(w http.ResponseWriter, r *http.Request) *common.AppError {
	pattern := r.URL.Query().Get("name")
	if pattern == "" {
		return common.NewAppError(http.StatusBadRequest, "Query parameter 'name' is required", nil)
	}

	people, err := h.service.SearchPeople(pattern)
	if err != nil {
		return common.ToAppError(err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{"results": people})
	return nil
}

func (h *PersonHandler) ListPeople(w http.ResponseWriter, r *http.Request) *common.AppError {
	people, err := h.service.ListPeople()
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve people", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(people)
	return nil
}

// UpdatePerson overwrites a person's identity fields. Registrant or admin.
func (h *PersonHandler) UpdatePerson(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := pathID(r, "id")
	if appErr != nil {
		return appErr
	}

	var req model.CreatePersonRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	person := &model.Person{
		ID:          id,
		Name:        req.Name,
		Surname:     req.Surname,
		DateOfBirth: req.DateOfBirth,
		HomeAddress: req.HomeAddress,
		PhoneNumber: req.PhoneNumber,
		Gender:      req.Gender,
		InvitedBy:   req.InvitedBy,
		Email:       req.Email,
	}

	if err := h.service.UpdatePerson(person); err != nil {
		return common.ToAppError(err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(person)
	return nil
}

// DeletePerson removes a person and, via cascading constraints, their
// attendance and membership rows. Registrant or admin.
func (h *PersonHandler) DeletePerson(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := pathID(r, "id")
	if appErr != nil {
		return appErr
	}

	if err := h.service.DeletePerson(id); err != nil {
		return common.ToAppError(err)
	}

	logger.Log.WithField("person_id", id).Info("Person deleted")

	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (h *PersonHandler) GetPerson(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := pathID(r, "id")
	if appErr != nil {
		return appErr
	}

	person, err := h.service.GetPerson(id)
	if err != nil {
		return common.ToAppError(err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(person)
	return nil
}
