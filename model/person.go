package model

import "time"

// Person is a member of the congregation. People are tracked independently
// of user accounts: most people never log in, they only get checked in.
type Person struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Surname     string    `json:"surname"`
	DateOfBirth string    `json:"date_of_birth,omitempty"`
	HomeAddress string    `json:"home_address,omitempty"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	Gender      string    `json:"gender,omitempty"`
	InvitedBy   string    `json:"invited_by,omitempty"`
	Email       string    `json:"email,omitempty"`
	CreatedBy   int       `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}
