// file: service/event_service.go

package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"active-teams-api/common"
	"active-teams-api/model"
	"active-teams-api/repository"
)

// eventsCacheKey caches the unfiltered listing only; filtered queries go
// straight to the database. Any event or attendance mutation invalidates it.
const eventsCacheKey = "events:all"

// EventService handles events and attendance, with a cache-aside strategy
// on the main listing.
type EventService struct {
	repo        repository.IEventRepository
	personRepo  repository.IPersonRepository
	cacheClient ICacheClient
}

func NewEventService(repo repository.IEventRepository, personRepo repository.IPersonRepository, cacheClient ICacheClient) *EventService {
	return &EventService{
		repo:        repo,
		personRepo:  personRepo,
		cacheClient: cacheClient,
	}
}

// CreateEvent saves the event and invalidates the listing cache.
func (s *EventService) CreateEvent(event *model.Event) error {
	if err := s.repo.CreateEvent(event); err != nil {
		return err
	}
	s.cacheClient.Del(context.Background(), eventsCacheKey)
	return nil
}

// ListEvents serves the unfiltered listing from cache when possible.
func (s *EventService) ListEvents(filter model.EventFilter) ([]*model.Event, error) {
	filtered := len(filter.Categories) > 0 || filter.Search != "" || filter.IsTicketed != nil
	ctx := context.Background()

	if !filtered {
		cached, err := s.cacheClient.Get(ctx, eventsCacheKey).Result()
		if err == nil {
			var events []*model.Event
			if err := json.Unmarshal([]byte(cached), &events); err == nil {
				return events, nil
			}
		}
	}

	events, err := s.repo.ListEvents(filter)
	if err != nil {
		return nil, err
	}

	if !filtered {
		if data, err := json.Marshal(events); err == nil {
			s.cacheClient.Set(ctx, eventsCacheKey, data, 10*time.Minute)
		}
	}

	return events, nil
}

func (s *EventService) GetEvent(eventID int) (*model.Event, error) {
	event, err := s.repo.GetEventByID(eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return event, nil
}

// CheckIn verifies both sides of the relationship exist before recording
// attendance. performedBy comes from the caller's access-token claims.
func (s *EventService) CheckIn(eventID, personID, performedBy int) error {
	if _, err := s.repo.GetEventByID(eventID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrNotFound
		}
		return err
	}
	if _, err := s.personRepo.GetPersonByID(personID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrNotFound
		}
		return err
	}

	if err := s.repo.CheckIn(eventID, personID, performedBy); err != nil {
		return err
	}
	s.cacheClient.Del(context.Background(), eventsCacheKey)
	return nil
}

// CheckOut removes a prior check-in ("uncapture").
func (s *EventService) CheckOut(eventID, personID int) error {
	if err := s.repo.CheckOut(eventID, personID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrNotFound
		}
		return err
	}
	s.cacheClient.Del(context.Background(), eventsCacheKey)
	return nil
}

// GetCheckins returns the event together with its attendee list.
func (s *EventService) GetCheckins(eventID int) (*model.Event, []*model.Attendee, error) {
	event, err := s.repo.GetEventByID(eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, common.ErrNotFound
		}
		return nil, nil, err
	}
	attendees, err := s.repo.GetAttendees(eventID)
	if err != nil {
		return nil, nil, err
	}
	return event, attendees, nil
}
