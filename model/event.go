package model

import "time"

type Event struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	StartsAt    time.Time `json:"starts_at"`
	Location    string    `json:"location"`
	Description string    `json:"description,omitempty"`
	IsTicketed  bool      `json:"is_ticketed"`
	// TotalAttendance is derived from the attendance table, not stored.
	TotalAttendance int       `json:"total_attendance"`
	CreatedBy       int       `json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`
}

// EventFilter narrows the event listing. Zero values mean "no filter".
type EventFilter struct {
	Categories []string
	Search     string
	IsTicketed *bool
}

// Attendee is one check-in row for an event.
type Attendee struct {
	PersonID    int       `json:"person_id"`
	Name        string    `json:"name"`
	Surname     string    `json:"surname"`
	CheckedInAt time.Time `json:"checked_in_at"`
	PerformedBy int       `json:"performed_by"`
}
