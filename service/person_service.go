package service

import (
	"database/sql"
	"errors"
	"net/http"
	"regexp"

	"active-teams-api/common"
	"active-teams-api/model"
	"active-teams-api/repository"
)

// PersonService handles the people registry.
type PersonService struct {
	repo repository.IPersonRepository
}

func NewPersonService(repo repository.IPersonRepository) *PersonService {
	return &PersonService{repo: repo}
}

func (s *PersonService) CreatePerson(person *model.Person) error {
	return s.repo.CreatePerson(person)
}

func (s *PersonService) GetPerson(id int) (*model.Person, error) {
	person, err := s.repo.GetPersonByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return person, nil
}

func (s *PersonService) UpdatePerson(person *model.Person) error {
	if err := s.repo.UpdatePerson(person); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrNotFound
		}
		return err
	}
	return nil
}

func (s *PersonService) DeletePerson(id int) error {
	if err := s.repo.DeletePerson(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrNotFound
		}
		return err
	}
	return nil
}

// SearchPeople runs a case-insensitive regex match over names. The pattern
// is compiled here first so a malformed one becomes a clean 400 instead of
// a database error.
func (s *PersonService) SearchPeople(pattern string) ([]*model.Person, error) {
	if _, err := regexp.Compile(pattern); err != nil {
		return nil, common.NewAppError(http.StatusBadRequest, "invalid search pattern", nil)
	}
	return s.repo.SearchPeopleByName(pattern)
}

func (s *PersonService) ListPeople() ([]*model.Person, error) {
	return s.repo.GetAllPeople()
}
