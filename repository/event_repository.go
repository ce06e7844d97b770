package repository

import (
	"database/sql"
	"errors"
	"strconv"

	"active-teams-api/logger"
	"active-teams-api/model"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

// ErrAlreadyCheckedIn is returned when a person is checked into the same
// event twice. Backed by the UNIQUE (event_id, person_id) constraint.
var ErrAlreadyCheckedIn = errors.New("person already checked in")

type IEventRepository interface {
	CreateEvent(event *model.Event) error
	GetEventByID(id int) (*model.Event, error)
	ListEvents(filter model.EventFilter) ([]*model.Event, error)

	CheckIn(eventID, personID, performedBy int) error
	CheckOut(eventID, personID int) error
	GetAttendees(eventID int) ([]*model.Attendee, error)
}

type EventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{DB: db}
}

const eventColumns = `e.id, e.name, e.category, e.starts_at, e.location, e.description, e.is_ticketed,
	(SELECT COUNT(*) FROM attendance a WHERE a.event_id = e.id) AS total_attendance,
	e.created_by, e.created_at`

func (r *EventRepository) CreateEvent(event *model.Event) error {
	log := logger.Log.WithFields(logrus.Fields{
		"name":     event.Name,
		"category": event.Category,
	})
	log.Info("Executing query to create a new event")

	query := `INSERT INTO events (name, category, starts_at, location, description, is_ticketed, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at`
	err := r.DB.QueryRow(query,
		event.Name, event.Category, event.StartsAt, event.Location,
		event.Description, event.IsTicketed, event.CreatedBy,
	).Scan(&event.ID, &event.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create event query")
		return err
	}
	return nil
}

func (r *EventRepository) GetEventByID(id int) (*model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events e WHERE e.id = $1`
	event := &model.Event{}
	err := r.DB.QueryRow(query, id).Scan(
		&event.ID, &event.Name, &event.Category, &event.StartsAt, &event.Location,
		&event.Description, &event.IsTicketed, &event.TotalAttendance,
		&event.CreatedBy, &event.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return event, nil
}

// ListEvents applies the optional filters. The search term is a
// case-insensitive regular expression matched against name, location and
// description, mirroring what the people search does.
func (r *EventRepository) ListEvents(filter model.EventFilter) ([]*model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events e WHERE 1=1`
	args := []interface{}{}

	if len(filter.Categories) > 0 {
		args = append(args, pq.Array(filter.Categories))
		query += ` AND e.category = ANY($1)`
	}
	if filter.Search != "" {
		args = append(args, filter.Search)
		query += ` AND (e.name ~* $` + strconv.Itoa(len(args)) + ` OR e.location ~* $` + strconv.Itoa(len(args)) + ` OR e.description ~* $` + strconv.Itoa(len(args)) + `)`
	}
	if filter.IsTicketed != nil {
		args = append(args, *filter.IsTicketed)
		query += ` AND e.is_ticketed = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY e.starts_at DESC`

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute list events query")
		return nil, err
	}
	defer rows.Close()

	var events []*model.Event
	for rows.Next() {
		event := &model.Event{}
		if err := rows.Scan(
			&event.ID, &event.Name, &event.Category, &event.StartsAt, &event.Location,
			&event.Description, &event.IsTicketed, &event.TotalAttendance,
			&event.CreatedBy, &event.CreatedAt,
		); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// CheckIn records attendance. The unique constraint turns a double
// check-in into ErrAlreadyCheckedIn instead of a second row.
func (r *EventRepository) CheckIn(eventID, personID, performedBy int) error {
	log := logger.Log.WithFields(logrus.Fields{
		"event_id":  eventID,
		"person_id": personID,
	})
	log.Info("Executing query to check person in")

	query := `INSERT INTO attendance (event_id, person_id, performed_by) VALUES ($1, $2, $3)`
	_, err := r.DB.Exec(query, eventID, personID, performedBy)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrAlreadyCheckedIn
		}
		log.WithError(err).Error("Failed to execute check-in query")
		return err
	}
	return nil
}

// CheckOut removes an attendance row. sql.ErrNoRows signals that the
// person was not checked in to begin with.
func (r *EventRepository) CheckOut(eventID, personID int) error {
	query := `DELETE FROM attendance WHERE event_id = $1 AND person_id = $2`
	result, err := r.DB.Exec(query, eventID, personID)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute check-out query")
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *EventRepository) GetAttendees(eventID int) ([]*model.Attendee, error) {
	query := `SELECT a.person_id, p.name, p.surname, a.checked_in_at, a.performed_by
		FROM attendance a
		JOIN people p ON p.id = a.person_id
		WHERE a.event_id = $1
		ORDER BY a.checked_in_at`
	rows, err := r.DB.Query(query, eventID)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute attendee query")
		return nil, err
	}
	defer rows.Close()

	var attendees []*model.Attendee
	for rows.Next() {
		a := &model.Attendee{}
		if err := rows.Scan(&a.PersonID, &a.Name, &a.Surname, &a.CheckedInAt, &a.PerformedBy); err != nil {
			return nil, err
		}
		attendees = append(attendees, a)
	}
	return attendees, rows.Err()
}
