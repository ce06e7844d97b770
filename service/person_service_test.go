package service

import (
	"database/sql"
	"testing"

	"active-teams-api/common"
	"active-teams-api/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestPersonService_SearchPeople(t *testing.T) {
	t.Run("valid pattern hits the repository", func(t *testing.T) {
		mockRepo := new(mockPersonRepo)
		mockRepo.On("SearchPeopleByName", "smi").
			Return([]*model.Person{{ID: 1, Name: "John", Surname: "Smith"}}, nil).Once()

		svc := NewPersonService(mockRepo)
		people, err := svc.SearchPeople("smi")

		assert.NoError(t, err)
		assert.Len(t, people, 1)
		mockRepo.AssertExpectations(t)
	})

	t.Run("malformed pattern is rejected before the query", func(t *testing.T) {
		mockRepo := new(mockPersonRepo)
		svc := NewPersonService(mockRepo)

		_, err := svc.SearchPeople("[unclosed")

		var appErr *common.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
		mockRepo.AssertNotCalled(t, "SearchPeopleByName")
	})
}

func TestPersonService_GetPerson_NotFound(t *testing.T) {
	mockRepo := new(mockPersonRepo)
	mockRepo.On("GetPersonByID", 42).Return(nil, sql.ErrNoRows).Once()

	svc := NewPersonService(mockRepo)
	_, err := svc.GetPerson(42)

	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestPersonService_UpdateAndDelete_NotFound(t *testing.T) {
	mockRepo := new(mockPersonRepo)
	mockRepo.On("UpdatePerson", mock.AnythingOfType("*model.Person")).Return(sql.ErrNoRows).Once()
	mockRepo.On("DeletePerson", 42).Return(sql.ErrNoRows).Once()

	svc := NewPersonService(mockRepo)

	assert.ErrorIs(t, svc.UpdatePerson(&model.Person{ID: 42}), common.ErrNotFound)
	assert.ErrorIs(t, svc.DeletePerson(42), common.ErrNotFound)
	mockRepo.AssertExpectations(t)
}
