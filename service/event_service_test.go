package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"active-teams-api/common"
	"active-teams-api/model"
	"active-teams-api/repository"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockEventRepo struct{ mock.Mock }

func (m *mockEventRepo) CreateEvent(event *model.Event) error {
	args := m.Called(event)
	return args.Error(0)
}
func (m *mockEventRepo) GetEventByID(id int) (*model.Event, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}
func (m *mockEventRepo) ListEvents(filter model.EventFilter) ([]*model.Event, error) {
	args := m.Called(filter)
	return args.Get(0).([]*model.Event), args.Error(1)
}
func (m *mockEventRepo) CheckIn(eventID, personID, performedBy int) error {
	args := m.Called(eventID, personID, performedBy)
	return args.Error(0)
}
func (m *mockEventRepo) CheckOut(eventID, personID int) error {
	args := m.Called(eventID, personID)
	return args.Error(0)
}
func (m *mockEventRepo) GetAttendees(eventID int) ([]*model.Attendee, error) {
	args := m.Called(eventID)
	return args.Get(0).([]*model.Attendee), args.Error(1)
}

type mockPersonRepo struct{ mock.Mock }

func (m *mockPersonRepo) CreatePerson(person *model.Person) error {
	args := m.Called(person)
	return args.Error(0)
}
func (m *mockPersonRepo) GetPersonByID(id int) (*model.Person, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Person), args.Error(1)
}
func (m *mockPersonRepo) UpdatePerson(person *model.Person) error {
	args := m.Called(person)
	return args.Error(0)
}
func (m *mockPersonRepo) DeletePerson(id int) error {
	args := m.Called(id)
	return args.Error(0)
}
func (m *mockPersonRepo) SearchPeopleByName(pattern string) ([]*model.Person, error) {
	args := m.Called(pattern)
	return args.Get(0).([]*model.Person), args.Error(1)
}
func (m *mockPersonRepo) GetAllPeople() ([]*model.Person, error) {
	args := m.Called()
	return args.Get(0).([]*model.Person), args.Error(1)
}

// fakeCache is an in-memory stand-in for the Redis client.
type fakeCache struct {
	store map[string]string
	sets  int
	dels  int
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string]string)}
}

func (c *fakeCache) Get(ctx context.Context, key string) *redis.StringCmd {
	if v, ok := c.store[key]; ok {
		return redis.NewStringResult(v, nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	c.store[key] = string(value.([]byte))
	c.sets++
	return redis.NewStatusResult("OK", nil)
}

func (c *fakeCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := c.store[k]; ok {
			delete(c.store, k)
			n++
		}
	}
	c.dels++
	return redis.NewIntResult(n, nil)
}

func TestEventService_ListEvents_CacheAside(t *testing.T) {
	mockRepo := new(mockEventRepo)
	cache := newFakeCache()
	svc := NewEventService(mockRepo, nil, cache)

	events := []*model.Event{{ID: 1, Name: "Sunday Service"}}
	mockRepo.On("ListEvents", model.EventFilter{}).Return(events, nil).Once()

	// First call misses the cache and hits the repository.
	got, err := svc.ListEvents(model.EventFilter{})
	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, 1, cache.sets)

	// Second call is served from cache; the repository expectation above
	// is Once(), so another repo hit would fail AssertExpectations.
	got, err = svc.ListEvents(model.EventFilter{})
	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "Sunday Service", got[0].Name)

	mockRepo.AssertExpectations(t)
}

func TestEventService_ListEvents_FilteredBypassesCache(t *testing.T) {
	mockRepo := new(mockEventRepo)
	cache := newFakeCache()
	svc := NewEventService(mockRepo, nil, cache)

	filter := model.EventFilter{Search: "youth"}
	mockRepo.On("ListEvents", filter).Return([]*model.Event{}, nil).Twice()

	_, err := svc.ListEvents(filter)
	assert.NoError(t, err)
	_, err = svc.ListEvents(filter)
	assert.NoError(t, err)

	assert.Equal(t, 0, cache.sets)
	mockRepo.AssertExpectations(t)
}

func TestEventService_CreateEvent_InvalidatesCache(t *testing.T) {
	mockRepo := new(mockEventRepo)
	cache := newFakeCache()
	cache.store["events:all"] = "[]"
	svc := NewEventService(mockRepo, nil, cache)

	event := &model.Event{Name: "Prayer Night"}
	mockRepo.On("CreateEvent", event).Return(nil).Once()

	err := svc.CreateEvent(event)

	assert.NoError(t, err)
	assert.NotContains(t, cache.store, "events:all")
	mockRepo.AssertExpectations(t)
}

func TestEventService_CheckIn(t *testing.T) {
	t.Run("records attendance and invalidates cache", func(t *testing.T) {
		mockRepo := new(mockEventRepo)
		mockPeople := new(mockPersonRepo)
		cache := newFakeCache()
		cache.store["events:all"] = "[]"
		svc := NewEventService(mockRepo, mockPeople, cache)

		mockRepo.On("GetEventByID", 1).Return(&model.Event{ID: 1}, nil).Once()
		mockPeople.On("GetPersonByID", 7).Return(&model.Person{ID: 7}, nil).Once()
		mockRepo.On("CheckIn", 1, 7, 99).Return(nil).Once()

		err := svc.CheckIn(1, 7, 99)

		assert.NoError(t, err)
		assert.NotContains(t, cache.store, "events:all")
		mockRepo.AssertExpectations(t)
		mockPeople.AssertExpectations(t)
	})

	t.Run("unknown event", func(t *testing.T) {
		mockRepo := new(mockEventRepo)
		svc := NewEventService(mockRepo, new(mockPersonRepo), newFakeCache())

		mockRepo.On("GetEventByID", 42).Return(nil, sql.ErrNoRows).Once()

		err := svc.CheckIn(42, 7, 99)

		assert.ErrorIs(t, err, common.ErrNotFound)
	})

	t.Run("unknown person", func(t *testing.T) {
		mockRepo := new(mockEventRepo)
		mockPeople := new(mockPersonRepo)
		svc := NewEventService(mockRepo, mockPeople, newFakeCache())

		mockRepo.On("GetEventByID", 1).Return(&model.Event{ID: 1}, nil).Once()
		mockPeople.On("GetPersonByID", 404).Return(nil, sql.ErrNoRows).Once()

		err := svc.CheckIn(1, 404, 99)

		assert.ErrorIs(t, err, common.ErrNotFound)
	})

	t.Run("duplicate check-in surfaces conflict", func(t *testing.T) {
		mockRepo := new(mockEventRepo)
		mockPeople := new(mockPersonRepo)
		svc := NewEventService(mockRepo, mockPeople, newFakeCache())

		mockRepo.On("GetEventByID", 1).Return(&model.Event{ID: 1}, nil).Once()
		mockPeople.On("GetPersonByID", 7).Return(&model.Person{ID: 7}, nil).Once()
		mockRepo.On("CheckIn", 1, 7, 99).Return(repository.ErrAlreadyCheckedIn).Once()

		err := svc.CheckIn(1, 7, 99)

		assert.ErrorIs(t, err, repository.ErrAlreadyCheckedIn)
	})
}

func TestEventService_CheckOut(t *testing.T) {
	t.Run("removes attendance", func(t *testing.T) {
		mockRepo := new(mockEventRepo)
		cache := newFakeCache()
		cache.store["events:all"] = "[]"
		svc := NewEventService(mockRepo, nil, cache)

		mockRepo.On("CheckOut", 1, 7).Return(nil).Once()

		err := svc.CheckOut(1, 7)

		assert.NoError(t, err)
		assert.NotContains(t, cache.store, "events:all")
	})

	t.Run("no prior check-in", func(t *testing.T) {
		mockRepo := new(mockEventRepo)
		svc := NewEventService(mockRepo, nil, newFakeCache())

		mockRepo.On("CheckOut", 1, 7).Return(sql.ErrNoRows).Once()

		err := svc.CheckOut(1, 7)

		assert.ErrorIs(t, err, common.ErrNotFound)
	})
}
