package model

import "time"

// CellGroup is a recurring small-group meeting. Weekday follows time.Weekday
// numbering (Sunday = 0) and IntervalWeeks is the recurrence period, so a
// group with Weekday=3, IntervalWeeks=2 meets every other Wednesday.
type CellGroup struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	LeaderID      int       `json:"leader_id"`
	Weekday       int       `json:"weekday"`
	IntervalWeeks int       `json:"interval_weeks"`
	CreatedAt     time.Time `json:"created_at"`
}

type CellGroupMember struct {
	GroupID  int       `json:"group_id"`
	PersonID int       `json:"person_id"`
	Name     string    `json:"name"`
	Surname  string    `json:"surname"`
	AddedAt  time.Time `json:"added_at"`
}
