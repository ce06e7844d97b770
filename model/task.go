package model

import "time"

type TaskKind string

const (
	TaskCalling  TaskKind = "calling"
	TaskVisiting TaskKind = "visiting"
)

type TaskStatus string

const (
	TaskPending TaskStatus = "pending"
	TaskDone    TaskStatus = "done"
)

// Task is a follow-up action (call or visit) owed to a person.
type Task struct {
	ID           int        `json:"id"`
	PersonID     int        `json:"person_id"`
	AssignedTo   int        `json:"assigned_to"`
	Kind         TaskKind   `json:"kind"`
	Status       TaskStatus `json:"status"`
	FollowUpDate time.Time  `json:"follow_up_date"`
	Notes        string     `json:"notes,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
